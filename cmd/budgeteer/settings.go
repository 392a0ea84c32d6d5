package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"budgeteer/internal/core"
	"budgeteer/internal/services"
)

var (
	settingCycle     string
	settingWeekStart int
	settingCurrency  string
	settingAnchor    string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	RunE: func(_ *cobra.Command, _ []string) error {
		s, err := a.settings.GetSettings(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("cycle=%s week_start=%d currency=%s locale=%s anchor=%s\n",
			s.CycleType, s.WeekStart, s.Currency, s.Locale, s.BiweeklyAnchorDate)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update settings; unset flags keep their current value",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var patch services.SettingsPatch
		if cmd.Flags().Changed("cycle") {
			c := core.CycleType(settingCycle)
			patch.CycleType = &c
		}
		if cmd.Flags().Changed("week-start") {
			patch.WeekStart = &settingWeekStart
		}
		if cmd.Flags().Changed("currency") {
			patch.Currency = &settingCurrency
		}
		if cmd.Flags().Changed("anchor") {
			d := core.DateString(settingAnchor)
			patch.BiweeklyAnchorDate = &d
		}
		s, err := a.settings.UpdateSettings(context.Background(), patch)
		if err != nil {
			return err
		}
		fmt.Printf("cycle=%s week_start=%d currency=%s anchor=%s\n",
			s.CycleType, s.WeekStart, s.Currency, s.BiweeklyAnchorDate)
		return nil
	},
}

func init() {
	settingsSetCmd.Flags().StringVar(&settingCycle, "cycle", "monthly", "Cycle type: monthly or biweekly")
	settingsSetCmd.Flags().IntVar(&settingWeekStart, "week-start", 1, "First weekday of the week, 0=Sunday..6=Saturday")
	settingsSetCmd.Flags().StringVar(&settingCurrency, "currency", "EUR", "Display currency code")
	settingsSetCmd.Flags().StringVar(&settingAnchor, "anchor", "", "Biweekly anchor date YYYY-MM-DD")
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
