package core

import "testing"

func TestComputeLeftToSpendMonthly(t *testing.T) {
	// Mid-April with half the month left: 18000 remaining over 15 days,
	// 4 of them in the current Monday week.
	got := ComputeLeftToSpend(LeftToSpendInput{
		Cadence:             CadenceMonthly,
		AmountCents:         30000,
		BudgetedPeriodCents: 30000,
		SpentPeriodCents:    12000,
		PeriodStartDate:     "2026-04-01",
		PeriodEndDate:       "2026-04-30",
		Date:                "2026-04-16",
		WeekStart:           1,
	})
	if got.IsOverspent {
		t.Fatal("should not be overspent")
	}
	if got.RemainingPeriodCents != 18000 {
		t.Errorf("RemainingPeriodCents = %d, want 18000", got.RemainingPeriodCents)
	}
	if got.LeftThisWeekCents != 4800 {
		t.Errorf("LeftThisWeekCents = %d, want 4800", got.LeftThisWeekCents)
	}
	if got.LeftTodayCents != 1200 {
		t.Errorf("LeftTodayCents = %d, want 1200", got.LeftTodayCents)
	}
}

func TestComputeLeftToSpendMonthlyOverspent(t *testing.T) {
	got := ComputeLeftToSpend(LeftToSpendInput{
		Cadence:             CadenceMonthly,
		AmountCents:         10000,
		BudgetedPeriodCents: 10000,
		SpentPeriodCents:    11000,
		PeriodStartDate:     "2026-04-01",
		PeriodEndDate:       "2026-04-30",
		Date:                "2026-04-16",
		WeekStart:           1,
	})
	if !got.IsOverspent {
		t.Fatal("should be overspent")
	}
	if got.OverspentCents != 1000 {
		t.Errorf("OverspentCents = %d, want 1000", got.OverspentCents)
	}
	if got.LeftTodayCents != 0 || got.LeftThisWeekCents != 0 {
		t.Errorf("left amounts should be zero when overspent, got today=%d week=%d",
			got.LeftTodayCents, got.LeftThisWeekCents)
	}
	if got.RemainingPeriodCents != -1000 {
		t.Errorf("RemainingPeriodCents = %d, want -1000", got.RemainingPeriodCents)
	}
}

func TestComputeLeftToSpendMonthlyCarryoverInflatesRemaining(t *testing.T) {
	// Carryover joins the remainder before apportionment, so every
	// remaining week shares it evenly.
	got := ComputeLeftToSpend(LeftToSpendInput{
		Cadence:             CadenceMonthly,
		AmountCents:         30000,
		CarryoverCents:      1500,
		BudgetedPeriodCents: 30000,
		SpentPeriodCents:    12000,
		PeriodStartDate:     "2026-04-01",
		PeriodEndDate:       "2026-04-30",
		Date:                "2026-04-16",
		WeekStart:           1,
	})
	if got.RemainingPeriodCents != 19500 {
		t.Errorf("RemainingPeriodCents = %d, want 19500", got.RemainingPeriodCents)
	}
	if got.LeftThisWeekCents != 5200 {
		t.Errorf("LeftThisWeekCents = %d, want 5200", got.LeftThisWeekCents)
	}
	if got.LeftTodayCents != 1300 {
		t.Errorf("LeftTodayCents = %d, want 1300", got.LeftTodayCents)
	}
}

func TestComputeLeftToSpendMonthlyLastDay(t *testing.T) {
	got := ComputeLeftToSpend(LeftToSpendInput{
		Cadence:             CadenceMonthly,
		AmountCents:         30000,
		BudgetedPeriodCents: 30000,
		SpentPeriodCents:    29000,
		PeriodStartDate:     "2026-04-01",
		PeriodEndDate:       "2026-04-30",
		Date:                "2026-04-30",
		WeekStart:           1,
	})
	// One day left: the whole remainder is available today.
	if got.LeftThisWeekCents != 1000 || got.LeftTodayCents != 1000 {
		t.Errorf("last day should release the full remainder, got week=%d today=%d",
			got.LeftThisWeekCents, got.LeftTodayCents)
	}
}

func TestComputeLeftToSpendMonthlyAfterPeriodEnd(t *testing.T) {
	got := ComputeLeftToSpend(LeftToSpendInput{
		Cadence:             CadenceMonthly,
		AmountCents:         30000,
		BudgetedPeriodCents: 30000,
		SpentPeriodCents:    10000,
		PeriodStartDate:     "2026-04-01",
		PeriodEndDate:       "2026-04-30",
		Date:                "2026-05-02",
		WeekStart:           1,
	})
	if got.LeftThisWeekCents != 0 || got.LeftTodayCents != 0 {
		t.Errorf("past the period end both amounts should be zero, got week=%d today=%d",
			got.LeftThisWeekCents, got.LeftTodayCents)
	}
}

func TestComputeLeftToSpendWeekly(t *testing.T) {
	tests := []struct {
		name      string
		in        LeftToSpendInput
		wantWeek  Cents
		wantToday Cents
	}{
		{
			name: "allowance minus week spend",
			in: LeftToSpendInput{
				Cadence:             CadenceWeekly,
				AmountCents:         12000,
				SpentWeekCents:      7000,
				SpentPeriodCents:    7000,
				BudgetedPeriodCents: 60000,
				PeriodStartDate:     "2026-04-01",
				PeriodEndDate:       "2026-04-30",
				Date:                "2026-04-16", // Thursday, 4 days left in Monday week
				WeekStart:           1,
			},
			wantWeek:  5000,
			wantToday: 1250,
		},
		{
			name: "week overspend clamps to zero",
			in: LeftToSpendInput{
				Cadence:             CadenceWeekly,
				AmountCents:         12000,
				SpentWeekCents:      13000,
				SpentPeriodCents:    13000,
				BudgetedPeriodCents: 60000,
				PeriodStartDate:     "2026-04-01",
				PeriodEndDate:       "2026-04-30",
				Date:                "2026-04-16",
				WeekStart:           1,
			},
			wantWeek:  0,
			wantToday: 0,
		},
		{
			name: "week clipped to period end",
			in: LeftToSpendInput{
				Cadence:             CadenceWeekly,
				AmountCents:         12000,
				SpentWeekCents:      0,
				SpentPeriodCents:    48000,
				BudgetedPeriodCents: 60000,
				PeriodStartDate:     "2026-04-01",
				PeriodEndDate:       "2026-04-30",
				Date:                "2026-04-29", // Wednesday; week runs to May 3 but period ends Apr 30
				WeekStart:           1,
			},
			wantWeek:  12000,
			wantToday: 6000, // 12000 over the 2 in-period days
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLeftToSpend(tt.in)
			if got.IsOverspent {
				t.Fatal("should not be overspent")
			}
			if got.LeftThisWeekCents != tt.wantWeek {
				t.Errorf("LeftThisWeekCents = %d, want %d", got.LeftThisWeekCents, tt.wantWeek)
			}
			if got.LeftTodayCents != tt.wantToday {
				t.Errorf("LeftTodayCents = %d, want %d", got.LeftTodayCents, tt.wantToday)
			}
		})
	}
}

func TestComputeLeftToSpendWeeklyPeriodOverspend(t *testing.T) {
	// A negative period remainder forces zeros even when this week's
	// allowance is untouched.
	got := ComputeLeftToSpend(LeftToSpendInput{
		Cadence:             CadenceWeekly,
		AmountCents:         12000,
		SpentWeekCents:      0,
		SpentPeriodCents:    70000,
		BudgetedPeriodCents: 60000,
		PeriodStartDate:     "2026-04-01",
		PeriodEndDate:       "2026-04-30",
		Date:                "2026-04-16",
		WeekStart:           1,
	})
	if !got.IsOverspent || got.OverspentCents != 10000 {
		t.Errorf("expected overspent by 10000, got %+v", got)
	}
	if got.LeftThisWeekCents != 0 || got.LeftTodayCents != 0 {
		t.Error("left amounts should be zero when the period is overspent")
	}
}
