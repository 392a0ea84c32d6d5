package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"budgeteer/internal/core"
	"budgeteer/internal/repo"
	"budgeteer/internal/services"
)

var (
	txPeriodID   string
	txCategoryID string
	txDate       string
	txAmount     string
	txMerchant   string
	txNote       string
	txPending    bool
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Manage transactions",
}

var txAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction (negative amount = spend)",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx := context.Background()
		p, err := resolvePeriod(ctx, txPeriodID)
		if err != nil {
			return err
		}
		amount, err := core.ParseAmountToCents(txAmount)
		if err != nil {
			return err
		}
		date := core.DateString(txDate)
		if date == "" {
			date = todayDate()
		}
		status := core.StatusPosted
		if txPending {
			status = core.StatusPending
		}
		t, err := a.transactions.AddTransaction(ctx, services.TransactionInput{
			Date:        date,
			AmountCents: amount,
			CategoryID:  txCategoryID,
			PeriodID:    p.ID,
			Merchant:    txMerchant,
			Note:        txNote,
			Status:      status,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Recorded %s %s at %s (%s)\n", core.FormatCents(t.AmountCents), t.Date, t.Merchant, t.ID)
		return nil
	},
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx := context.Background()
		p, err := resolvePeriod(ctx, txPeriodID)
		if err != nil {
			return err
		}
		list, err := a.transactions.ListTransactions(ctx, repo.TransactionFilter{
			PeriodID:   p.ID,
			CategoryID: txCategoryID,
		})
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tAMOUNT\tCATEGORY\tMERCHANT\tSTATUS")
		for _, t := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				t.ID, t.Date, core.FormatCents(t.AmountCents), t.CategoryID, t.Merchant, t.Status)
		}
		return w.Flush()
	},
}

var txRmCmd = &cobra.Command{
	Use:   "rm <transaction-id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := a.transactions.DeleteTransaction(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted transaction %s\n", args[0])
		return nil
	},
}

func init() {
	txAddCmd.Flags().StringVar(&txPeriodID, "period", "", "Period id (defaults to the current period)")
	txAddCmd.Flags().StringVar(&txCategoryID, "category", "", "Category id")
	txAddCmd.Flags().StringVar(&txDate, "date", "", "Date YYYY-MM-DD (defaults to today)")
	txAddCmd.Flags().StringVar(&txAmount, "amount", "", "Amount, e.g. -12.50")
	txAddCmd.Flags().StringVar(&txMerchant, "merchant", "", "Merchant name")
	txAddCmd.Flags().StringVar(&txNote, "note", "", "Free-form note")
	txAddCmd.Flags().BoolVar(&txPending, "pending", false, "Mark as pending instead of posted")
	txListCmd.Flags().StringVar(&txPeriodID, "period", "", "Period id (defaults to the current period)")
	txListCmd.Flags().StringVar(&txCategoryID, "category", "", "Filter by category id")
	txCmd.AddCommand(txAddCmd, txListCmd, txRmCmd)
	rootCmd.AddCommand(txCmd)
}
