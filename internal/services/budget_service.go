package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"budgeteer/internal/core"
	"budgeteer/internal/repo"
)

// BudgetService manages per-category allowances and composes the
// period summaries. Budgets are unique per (period, category); upserts
// preserve the existing row's identity and carryover.
type BudgetService struct {
	budgets      repo.BudgetRepository
	periods      repo.PeriodRepository
	categories   repo.CategoryRepository
	transactions repo.TransactionRepository
	settings     *SettingsService
	now          Clock
}

func NewBudgetService(budgets repo.BudgetRepository, periods repo.PeriodRepository, categories repo.CategoryRepository, transactions repo.TransactionRepository, settings *SettingsService) *BudgetService {
	return &BudgetService{
		budgets:      budgets,
		periods:      periods,
		categories:   categories,
		transactions: transactions,
		settings:     settings,
		now:          time.Now,
	}
}

func (s *BudgetService) WithClock(now Clock) *BudgetService {
	s.now = now
	return s
}

type UpsertBudgetInput struct {
	PeriodID     string
	CategoryID   string
	Cadence      core.Cadence
	AmountCents  core.Cents
	RolloverRule core.RolloverRule
}

// UpsertBudget creates or edits the budget for a (period, category)
// pair. A plain edit never resets carryover; only ApplyRollovers
// recomputes it.
func (s *BudgetService) UpsertBudget(ctx context.Context, in UpsertBudgetInput) (core.Budget, error) {
	if _, err := s.periods.GetByID(ctx, in.PeriodID); err != nil {
		return core.Budget{}, err
	}
	if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
		return core.Budget{}, err
	}

	existing, err := s.budgets.GetByPeriodCategory(ctx, in.PeriodID, in.CategoryID)
	if err != nil {
		return core.Budget{}, fmt.Errorf("look up budget: %w", err)
	}

	b := core.Budget{
		PeriodID:     in.PeriodID,
		CategoryID:   in.CategoryID,
		Cadence:      in.Cadence,
		AmountCents:  in.AmountCents,
		RolloverRule: in.RolloverRule,
	}
	if existing != nil {
		b.ID = existing.ID
		b.CreatedAt = existing.CreatedAt
		b.CarryoverCents = existing.CarryoverCents
	} else {
		b.ID = newID()
		b.CreatedAt = timestamp(s.now)
	}
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	if existing != nil {
		if err := s.budgets.Update(ctx, b); err != nil {
			return core.Budget{}, fmt.Errorf("update budget: %w", err)
		}
	} else {
		if err := s.budgets.Insert(ctx, b); err != nil {
			return core.Budget{}, fmt.Errorf("insert budget: %w", err)
		}
	}
	return b, nil
}

// GetCategorySummary builds the summary for one category on a given
// date.
func (s *BudgetService) GetCategorySummary(ctx context.Context, periodID, categoryID string, date core.DateString, weekStart int) (core.CategorySummary, error) {
	period, err := s.periods.GetByID(ctx, periodID)
	if err != nil {
		return core.CategorySummary{}, err
	}
	budget, err := s.budgets.GetByPeriodCategory(ctx, periodID, categoryID)
	if err != nil {
		return core.CategorySummary{}, fmt.Errorf("look up budget: %w", err)
	}
	if budget == nil {
		return core.CategorySummary{}, core.NotFoundf("budget for period %s category %s", periodID, categoryID)
	}
	return s.buildCategorySummary(ctx, *budget, period, date, weekStart)
}

// GetBudgetSummary builds the full period summary across every
// budgeted category.
func (s *BudgetService) GetBudgetSummary(ctx context.Context, periodID string, date core.DateString, weekStart int) (core.BudgetSummary, error) {
	period, err := s.periods.GetByID(ctx, periodID)
	if err != nil {
		return core.BudgetSummary{}, err
	}
	budgets, err := s.budgets.ListByPeriod(ctx, periodID)
	if err != nil {
		return core.BudgetSummary{}, fmt.Errorf("list budgets: %w", err)
	}
	summaries := make([]core.CategorySummary, 0, len(budgets))
	for _, b := range budgets {
		cs, err := s.buildCategorySummary(ctx, b, period, date, weekStart)
		if err != nil {
			return core.BudgetSummary{}, err
		}
		summaries = append(summaries, cs)
	}
	return core.BuildBudgetSummary(period, summaries), nil
}

func (s *BudgetService) buildCategorySummary(ctx context.Context, b core.Budget, p core.Period, date core.DateString, weekStart int) (core.CategorySummary, error) {
	spentPeriod, err := s.transactions.SumSpentInPeriod(ctx, p.ID, b.CategoryID)
	if err != nil {
		return core.CategorySummary{}, fmt.Errorf("sum period spend: %w", err)
	}
	week := core.WeekRange(date, weekStart)
	spentWeek, err := s.transactions.SumSpentInDateRange(ctx, p.ID, b.CategoryID, week)
	if err != nil {
		return core.CategorySummary{}, fmt.Errorf("sum week spend: %w", err)
	}
	return core.BuildCategorySummary(b, p, spentPeriod, spentWeek, date, weekStart), nil
}

// ApplyRollovers carries each source-period budget's end-of-period
// remainder into the target period per its rollover rule. Upserting by
// (period, category) makes re-runs idempotent: carryover is overwritten,
// never accumulated, and an existing target budget keeps its own
// cadence, amount and rule.
func (s *BudgetService) ApplyRollovers(ctx context.Context, fromPeriodID, toPeriodID string) error {
	from, err := s.periods.GetByID(ctx, fromPeriodID)
	if err != nil {
		return err
	}
	if _, err := s.periods.GetByID(ctx, toPeriodID); err != nil {
		return err
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return err
	}

	budgets, err := s.budgets.ListByPeriod(ctx, fromPeriodID)
	if err != nil {
		return fmt.Errorf("list budgets: %w", err)
	}
	for _, b := range budgets {
		spent, err := s.transactions.SumSpentInPeriod(ctx, fromPeriodID, b.CategoryID)
		if err != nil {
			return fmt.Errorf("sum period spend: %w", err)
		}
		budgeted := core.BudgetedPeriodCents(b, from.Range(), settings.WeekStart)
		remaining := core.Add(b.CarryoverCents, core.Sub(budgeted, spent))
		carry := core.CarryoverFromRemaining(b.RolloverRule, remaining)

		target, err := s.budgets.GetByPeriodCategory(ctx, toPeriodID, b.CategoryID)
		if err != nil {
			return fmt.Errorf("look up target budget: %w", err)
		}
		if target != nil {
			target.CarryoverCents = carry
			if err := s.budgets.Update(ctx, *target); err != nil {
				return fmt.Errorf("update target budget: %w", err)
			}
		} else {
			next := core.Budget{
				ID:             newID(),
				PeriodID:       toPeriodID,
				CategoryID:     b.CategoryID,
				Cadence:        b.Cadence,
				AmountCents:    b.AmountCents,
				RolloverRule:   b.RolloverRule,
				CarryoverCents: carry,
				CreatedAt:      timestamp(s.now),
			}
			if err := s.budgets.Insert(ctx, next); err != nil {
				return fmt.Errorf("insert target budget: %w", err)
			}
		}
		slog.InfoContext(ctx, "Applied rollover",
			"category", b.CategoryID, "rule", b.RolloverRule,
			"remaining_cents", int64(remaining), "carryover_cents", int64(carry))
	}
	return nil
}
