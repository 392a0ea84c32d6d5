package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"budgeteer/internal/core"
	"budgeteer/internal/services"
)

var (
	budgetPeriodID string
	budgetCadence  string
	budgetAmount   string
	budgetRollover string
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage per-category budgets",
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <category-id>",
	Short: "Create or edit the budget for a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		p, err := resolvePeriod(ctx, budgetPeriodID)
		if err != nil {
			return err
		}
		amount, err := core.ParseAmountToCents(budgetAmount)
		if err != nil {
			return err
		}
		b, err := a.budgets.UpsertBudget(ctx, services.UpsertBudgetInput{
			PeriodID:     p.ID,
			CategoryID:   args[0],
			Cadence:      core.Cadence(budgetCadence),
			AmountCents:  amount,
			RolloverRule: core.RolloverRule(budgetRollover),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Budget %s: %s %s, rollover %s, carryover %s\n",
			b.ID, core.FormatCents(b.AmountCents), b.Cadence, b.RolloverRule, core.FormatCents(b.CarryoverCents))
		return nil
	},
}

var rolloverCmd = &cobra.Command{
	Use:   "rollover <from-period-id> <to-period-id>",
	Short: "Carry period remainders forward per each budget's rule",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := a.budgets.ApplyRollovers(context.Background(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Applied rollovers from %s to %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	budgetSetCmd.Flags().StringVar(&budgetPeriodID, "period", "", "Period id (defaults to the current period)")
	budgetSetCmd.Flags().StringVar(&budgetCadence, "cadence", "monthly", "Budget cadence: monthly or weekly")
	budgetSetCmd.Flags().StringVar(&budgetAmount, "amount", "", "Amount, e.g. 500 or 499.99")
	budgetSetCmd.Flags().StringVar(&budgetRollover, "rollover", "reset", "Rollover rule: reset, pos or pos_neg")
	budgetCmd.AddCommand(budgetSetCmd)
	rootCmd.AddCommand(budgetCmd, rolloverCmd)
}
