package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	csvPeriodID string
	csvOutFile  string
	csvBudgets  bool
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import transactions from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		p, err := resolvePeriod(ctx, csvPeriodID)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read csv file: %w", err)
		}
		res, err := a.csv.ImportTransactions(ctx, string(content), p.ID)
		if err != nil {
			return err
		}
		fmt.Printf("Batch %s: imported %d, skipped %d duplicates, %d errors\n",
			res.BatchID, res.Imported, res.DuplicatesSkipped, len(res.Errors))
		for _, e := range res.Errors {
			fmt.Printf("  %s\n", e)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export transactions (or budgets) as CSV",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx := context.Background()
		p, err := resolvePeriod(ctx, csvPeriodID)
		if err != nil {
			return err
		}
		var content string
		if csvBudgets {
			content, err = a.csv.ExportBudgetSnapshot(ctx, p.ID)
		} else {
			content, err = a.csv.ExportTransactions(ctx, p.ID)
		}
		if err != nil {
			return err
		}
		if csvOutFile == "" {
			fmt.Print(content)
			return nil
		}
		if err := os.WriteFile(csvOutFile, []byte(content), 0644); err != nil {
			return fmt.Errorf("write csv file: %w", err)
		}
		fmt.Printf("Wrote %s\n", csvOutFile)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&csvPeriodID, "period", "", "Period id (defaults to the current period)")
	exportCmd.Flags().StringVar(&csvPeriodID, "period", "", "Period id (defaults to the current period)")
	exportCmd.Flags().StringVar(&csvOutFile, "out", "", "Output file (defaults to stdout)")
	exportCmd.Flags().BoolVar(&csvBudgets, "budgets", false, "Export the budget snapshot instead of transactions")
	rootCmd.AddCommand(importCmd, exportCmd)
}
