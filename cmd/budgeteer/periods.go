package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"budgeteer/internal/core"
)

var periodCmd = &cobra.Command{
	Use:   "period",
	Short: "Manage budgeting periods",
}

var periodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all periods, newest first",
	RunE: func(_ *cobra.Command, _ []string) error {
		periods, err := a.periods.ListPeriods(context.Background())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCYCLE\tSTART\tEND\tINCOME\tSTATE")
		for _, p := range periods {
			state := "open"
			if !p.Open() {
				state = "closed"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				p.ID, p.CycleType, p.StartDate, p.EndDate, core.FormatCents(p.IncomeCents), state)
		}
		return w.Flush()
	},
}

var periodCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current period, creating it if absent",
	RunE: func(_ *cobra.Command, _ []string) error {
		p, err := a.periods.GetCurrentPeriod(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s .. %s  income %s\n", p.ID, p.StartDate, p.EndDate, core.FormatCents(p.IncomeCents))
		return nil
	},
}

var periodNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Open the period following the latest one",
	RunE: func(_ *cobra.Command, _ []string) error {
		p, err := a.periods.CreateNextPeriod(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Created period %s  %s .. %s\n", p.ID, p.StartDate, p.EndDate)
		return nil
	},
}

var periodCloseCmd = &cobra.Command{
	Use:   "close <period-id>",
	Short: "Close a period",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		p, err := a.periods.ClosePeriod(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Closed period %s at %s\n", p.ID, p.ClosedAt)
		return nil
	},
}

func init() {
	periodCmd.AddCommand(periodListCmd, periodCurrentCmd, periodNextCmd, periodCloseCmd)
	rootCmd.AddCommand(periodCmd)
}
