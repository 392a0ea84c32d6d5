package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"budgeteer/internal/core"
)

var summaryPeriodID string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Budget summary with left-to-spend per category",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryPeriodID, "period", "", "Period id (defaults to the current period)")
	rootCmd.AddCommand(summaryCmd)
}

// resolvePeriod returns the period named by id, or the current one
// (creating it if needed) when id is empty.
func resolvePeriod(ctx context.Context, id string) (core.Period, error) {
	if id != "" {
		return a.periods.GetPeriod(ctx, id)
	}
	return a.periods.GetCurrentPeriod(ctx)
}

func todayDate() core.DateString {
	return core.FormatDate(time.Now().UTC())
}

func runSummary(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	p, err := resolvePeriod(ctx, summaryPeriodID)
	if err != nil {
		return err
	}
	settings, err := a.settings.GetSettings(ctx)
	if err != nil {
		return err
	}

	date := todayDate()
	if !core.IsDateWithinRange(date, p.Range()) {
		// For a past or future period, evaluate at the period start.
		date = p.StartDate
	}
	s, err := a.budgets.GetBudgetSummary(ctx, p.ID, date, settings.WeekStart)
	if err != nil {
		return err
	}

	categories, err := a.categories.ListCategories(ctx, true)
	if err != nil {
		return err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	fmt.Printf("Period %s (%s .. %s)\n", p.ID, p.StartDate, p.EndDate)
	fmt.Printf("Income %s  Allocated %s  Unallocated %s\n\n",
		core.FormatCents(s.IncomeCents), core.FormatCents(s.AllocatedCents), core.FormatCents(s.UnallocatedCents))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tBUDGETED\tSPENT\tREMAINING\tTODAY\tTHIS WEEK\tPACE")
	for _, c := range s.Categories {
		name := names[c.CategoryID]
		if name == "" {
			name = c.CategoryID
		}
		left := c.LeftToSpend
		pace := string(c.Pace)
		if left.IsOverspent {
			pace = fmt.Sprintf("over by %s", core.FormatCents(left.OverspentCents))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			name,
			core.FormatCents(c.BudgetedPeriodCents),
			core.FormatCents(c.SpentCents),
			core.FormatCents(c.RemainingCents),
			core.FormatCents(left.LeftTodayCents),
			core.FormatCents(left.LeftThisWeekCents),
			pace)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nTotal spent %s, remaining %s\n",
		core.FormatCents(s.SpentCents), core.FormatCents(s.RemainingCents))
	return nil
}
