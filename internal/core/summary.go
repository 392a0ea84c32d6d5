package core

// PaceStatus classifies how a category is tracking against its budget.
type PaceStatus string

const (
	PaceOnTrack   PaceStatus = "on_track"
	PaceNearLimit PaceStatus = "near_limit"
	PaceOver      PaceStatus = "over"
)

// nearLimitPercent is the spent/budgeted ratio above which a category
// is considered near its limit.
const nearLimitPercent = 80

// CategorySummary is the per-category view of one period.
type CategorySummary struct {
	CategoryID          string
	BudgetID            string
	Cadence             Cadence
	AmountCents         Cents
	CarryoverCents      Cents
	BudgetedPeriodCents Cents
	SpentCents          Cents
	RemainingCents      Cents
	LeftToSpend         LeftToSpend
	Pace                PaceStatus
}

// BudgetSummary aggregates all category summaries plus period-wide
// totals.
type BudgetSummary struct {
	PeriodID         string
	IncomeCents      Cents
	AllocatedCents   Cents
	SpentCents       Cents
	RemainingCents   Cents
	UnallocatedCents Cents
	Categories       []CategorySummary
}

// BudgetedPeriodCents expands a budget's amount to a full-period
// allowance: weekly cadence multiplies the per-week amount by the
// number of week windows overlapping the period, monthly passes the
// amount through verbatim.
func BudgetedPeriodCents(b Budget, period DateRange, weekStart int) Cents {
	if b.Cadence == CadenceWeekly {
		weeks := WeekRangesOverlappingRange(period, weekStart)
		return Mul(b.AmountCents, int64(len(weeks)))
	}
	return b.AmountCents
}

// BuildCategorySummary composes a budget, its period and the spend
// totals into a category summary. spentPeriod and spentWeek are
// positive totals of spend (negated negative transaction amounts).
func BuildCategorySummary(b Budget, p Period, spentPeriod, spentWeek Cents, date DateString, weekStart int) CategorySummary {
	budgeted := BudgetedPeriodCents(b, p.Range(), weekStart)
	lts := ComputeLeftToSpend(LeftToSpendInput{
		Cadence:             b.Cadence,
		AmountCents:         b.AmountCents,
		CarryoverCents:      b.CarryoverCents,
		SpentPeriodCents:    spentPeriod,
		SpentWeekCents:      spentWeek,
		BudgetedPeriodCents: budgeted,
		PeriodStartDate:     p.StartDate,
		PeriodEndDate:       p.EndDate,
		Date:                date,
		WeekStart:           weekStart,
	})
	return CategorySummary{
		CategoryID:          b.CategoryID,
		BudgetID:            b.ID,
		Cadence:             b.Cadence,
		AmountCents:         b.AmountCents,
		CarryoverCents:      b.CarryoverCents,
		BudgetedPeriodCents: budgeted,
		SpentCents:          spentPeriod,
		RemainingCents:      lts.RemainingPeriodCents,
		LeftToSpend:         lts,
		Pace:                paceFor(lts, spentPeriod, budgeted),
	}
}

// BuildBudgetSummary rolls category summaries up into period totals.
// Unallocated is income not covered by any category budget.
func BuildBudgetSummary(p Period, categories []CategorySummary) BudgetSummary {
	s := BudgetSummary{
		PeriodID:    p.ID,
		IncomeCents: p.IncomeCents,
		Categories:  categories,
	}
	for _, c := range categories {
		s.AllocatedCents = Add(s.AllocatedCents, c.BudgetedPeriodCents)
		s.SpentCents = Add(s.SpentCents, c.SpentCents)
		s.RemainingCents = Add(s.RemainingCents, c.RemainingCents)
	}
	s.UnallocatedCents = Sub(p.IncomeCents, s.AllocatedCents)
	return s
}

func paceFor(lts LeftToSpend, spent, budgeted Cents) PaceStatus {
	if lts.IsOverspent {
		return PaceOver
	}
	if budgeted > 0 && int64(spent)*100 >= int64(budgeted)*nearLimitPercent {
		return PaceNearLimit
	}
	return PaceOnTrack
}
