package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"budgeteer/internal/core"
)

var (
	alertPeriodID string
	alertEvaluate bool
	rulePercent   int
	ruleDisabled  bool
)

var alertCmd = &cobra.Command{
	Use:   "alert",
	Short: "Budget alerts",
}

var alertListCmd = &cobra.Command{
	Use:   "list",
	Short: "List open alerts, optionally evaluating first",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx := context.Background()
		p, err := resolvePeriod(ctx, alertPeriodID)
		if err != nil {
			return err
		}
		if alertEvaluate {
			raised, err := a.alerts.EvaluateAlerts(ctx, p.ID, todayDate())
			if err != nil {
				return err
			}
			fmt.Printf("Evaluation raised %d new alerts\n", len(raised))
		}
		open, err := a.alerts.ListOpenAlerts(ctx, p.ID)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCATEGORY\tTYPE\tTHRESHOLD\tTRIGGERED")
		for _, al := range open {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d%%\t%s\n",
				al.ID, al.CategoryID, al.Type, al.ThresholdPercent, al.TriggeredAt)
		}
		return w.Flush()
	},
}

var alertDismissCmd = &cobra.Command{
	Use:   "dismiss <alert-id>",
	Short: "Dismiss an alert",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		al, err := a.alerts.DismissAlert(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Dismissed alert %s (%s)\n", al.ID, al.Type)
		return nil
	},
}

var alertRuleCmd = &cobra.Command{
	Use:   "rule <category-id>",
	Short: "Set the approaching-limit rule for a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		rule := core.AlertRule{
			CategoryID:              args[0],
			ApproachingLimitPercent: rulePercent,
			Enabled:                 !ruleDisabled,
		}
		if err := a.alerts.SetAlertRule(context.Background(), rule); err != nil {
			return err
		}
		fmt.Printf("Rule for %s: alert at %d%%, enabled=%t\n", rule.CategoryID, rule.ApproachingLimitPercent, rule.Enabled)
		return nil
	},
}

func init() {
	alertListCmd.Flags().StringVar(&alertPeriodID, "period", "", "Period id (defaults to the current period)")
	alertListCmd.Flags().BoolVar(&alertEvaluate, "evaluate", false, "Evaluate alert conditions before listing")
	alertRuleCmd.Flags().IntVar(&rulePercent, "percent", 80, "Approaching-limit threshold percent")
	alertRuleCmd.Flags().BoolVar(&ruleDisabled, "disabled", false, "Disable alerts for this category")
	alertCmd.AddCommand(alertListCmd, alertDismissCmd, alertRuleCmd)
	rootCmd.AddCommand(alertCmd)
}
