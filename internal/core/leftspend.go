package core

// LeftToSpendInput carries everything the proration algorithm needs.
// BudgetedPeriodCents is the full-period allowance: for weekly cadence
// the per-week amount already expanded across overlapping weeks, for
// monthly the amount verbatim.
type LeftToSpendInput struct {
	Cadence             Cadence
	AmountCents         Cents
	CarryoverCents      Cents
	SpentPeriodCents    Cents
	SpentWeekCents      Cents
	BudgetedPeriodCents Cents
	PeriodStartDate     DateString
	PeriodEndDate       DateString
	Date                DateString
	WeekStart           int
}

// LeftToSpend is the algorithm's answer to "how much can I safely
// spend today / this week".
type LeftToSpend struct {
	RemainingPeriodCents Cents
	LeftTodayCents       Cents
	LeftThisWeekCents    Cents
	IsOverspent          bool
	OverspentCents       Cents
}

// ComputeLeftToSpend prorates the remaining period budget into safe
// daily and weekly spending amounts.
//
// Both cadences share the first step: remaining = carryover + budgeted
// − spent. A negative remainder means the category is overspent and no
// proration is attempted.
//
// Weekly cadence subtracts this week's spend from the per-week
// allowance. Monthly cadence apportions the remainder in two stages,
// period→week→day, which keeps "left today" stable from one day to the
// next instead of spiking whenever a week or period boundary is crossed
// unevenly.
func ComputeLeftToSpend(in LeftToSpendInput) LeftToSpend {
	remaining := Add(in.CarryoverCents, Sub(in.BudgetedPeriodCents, in.SpentPeriodCents))
	out := LeftToSpend{RemainingPeriodCents: remaining}
	if remaining < 0 {
		out.IsOverspent = true
		out.OverspentCents = Abs(remaining)
		return out
	}

	period := DateRange{StartDate: in.PeriodStartDate, EndDate: in.PeriodEndDate}
	week := WeekRange(in.Date, in.WeekStart)

	if in.Cadence == CadenceWeekly {
		left := Max(0, Sub(in.AmountCents, in.SpentWeekCents))
		out.LeftThisWeekCents = left
		weekEnd := week.EndDate
		if CompareDateStrings(weekEnd, in.PeriodEndDate) > 0 {
			weekEnd = in.PeriodEndDate
		}
		days := CountDaysInclusive(in.Date, weekEnd)
		if days > 0 {
			out.LeftTodayCents = Div(left, int64(days))
		}
		return out
	}

	if CountDaysInclusive(in.Date, in.PeriodEndDate) <= 0 {
		return out
	}
	weekLeft, okWeek := IntersectRanges(DateRange{StartDate: in.Date, EndDate: week.EndDate}, period)
	periodLeft, okPeriod := IntersectRanges(DateRange{StartDate: in.Date, EndDate: in.PeriodEndDate}, period)
	if !okWeek || !okPeriod {
		return out
	}
	daysLeftInPeriodThisWeek := CountDaysInclusive(weekLeft.StartDate, weekLeft.EndDate)
	daysLeftInWeek := daysLeftInPeriodThisWeek
	daysLeftInPeriod := CountDaysInclusive(periodLeft.StartDate, periodLeft.EndDate)
	if daysLeftInPeriodThisWeek <= 0 || daysLeftInWeek <= 0 || daysLeftInPeriod <= 0 {
		return out
	}

	weekRaw := int64(remaining) * int64(daysLeftInPeriodThisWeek) / int64(daysLeftInPeriod)
	out.LeftThisWeekCents = floorPositive(weekRaw)
	out.LeftTodayCents = floorPositive(weekRaw / int64(daysLeftInWeek))
	return out
}

// floorPositive clamps to a non-negative integer cent amount.
func floorPositive(v int64) Cents {
	if v < 0 {
		return 0
	}
	return Cents(v)
}
