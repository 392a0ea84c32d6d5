package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"budgeteer/internal/core"
	"budgeteer/internal/repo"
)

// AlertService evaluates budget alerts. Each alert type is raised at
// most once while open per category, so evaluation is idempotent until
// the existing alert is dismissed.
type AlertService struct {
	alerts     repo.AlertRepository
	categories repo.CategoryRepository
	budgets    *BudgetService
	settings   *SettingsService
	now        Clock
}

func NewAlertService(alerts repo.AlertRepository, categories repo.CategoryRepository, budgets *BudgetService, settings *SettingsService) *AlertService {
	return &AlertService{
		alerts:     alerts,
		categories: categories,
		budgets:    budgets,
		settings:   settings,
		now:        time.Now,
	}
}

func (s *AlertService) WithClock(now Clock) *AlertService {
	s.now = now
	return s
}

// EvaluateAlerts checks every non-archived category with an enabled
// rule against its summary on the given date and returns the alerts it
// inserted. An overspend suppresses the approaching-limit check for
// that category on this pass.
func (s *AlertService) EvaluateAlerts(ctx context.Context, periodID string, date core.DateString) ([]core.Alert, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	var raised []core.Alert
	for _, c := range categories {
		rule, err := s.GetAlertRule(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if !rule.Enabled {
			continue
		}

		summary, err := s.budgets.GetCategorySummary(ctx, periodID, c.ID, date, settings.WeekStart)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				// No budget for this category in the period.
				continue
			}
			return nil, err
		}

		if summary.LeftToSpend.IsOverspent {
			a, err := s.raiseIfAbsent(ctx, periodID, c.ID, core.AlertOverspent, 100)
			if err != nil {
				return nil, err
			}
			if a != nil {
				raised = append(raised, *a)
			}
			continue
		}

		if summary.BudgetedPeriodCents > 0 &&
			int64(summary.SpentCents)*100 >= int64(summary.BudgetedPeriodCents)*int64(rule.ApproachingLimitPercent) {
			a, err := s.raiseIfAbsent(ctx, periodID, c.ID, core.AlertApproachingLimit, rule.ApproachingLimitPercent)
			if err != nil {
				return nil, err
			}
			if a != nil {
				raised = append(raised, *a)
			}
		}
	}
	return raised, nil
}

func (s *AlertService) raiseIfAbsent(ctx context.Context, periodID, categoryID string, t core.AlertType, threshold int) (*core.Alert, error) {
	open, err := s.alerts.FindOpenAlert(ctx, periodID, categoryID, t)
	if err != nil {
		return nil, fmt.Errorf("find open alert: %w", err)
	}
	if open != nil {
		return nil, nil
	}
	a := core.Alert{
		ID:               newID(),
		CategoryID:       categoryID,
		PeriodID:         periodID,
		Type:             t,
		ThresholdPercent: threshold,
		TriggeredAt:      timestamp(s.now),
	}
	if err := s.alerts.InsertAlert(ctx, a); err != nil {
		return nil, fmt.Errorf("insert alert: %w", err)
	}
	slog.InfoContext(ctx, "Raised budget alert",
		"type", a.Type, "category", categoryID, "period", periodID, "threshold_percent", threshold)
	return &a, nil
}

// DismissAlert closes an open alert; dismissing twice is a no-op.
func (s *AlertService) DismissAlert(ctx context.Context, id string) (core.Alert, error) {
	a, err := s.alerts.GetAlert(ctx, id)
	if err != nil {
		return core.Alert{}, err
	}
	if !a.OpenAlert() {
		return a, nil
	}
	a.DismissedAt = timestamp(s.now)
	if err := s.alerts.UpdateAlert(ctx, a); err != nil {
		return core.Alert{}, fmt.Errorf("dismiss alert: %w", err)
	}
	return a, nil
}

// GetAlertRule returns the persisted rule for a category, or the
// default {80, enabled} when none has been saved.
func (s *AlertService) GetAlertRule(ctx context.Context, categoryID string) (core.AlertRule, error) {
	rule, err := s.alerts.GetRule(ctx, categoryID)
	if err != nil {
		return core.AlertRule{}, fmt.Errorf("get alert rule: %w", err)
	}
	if rule == nil {
		return core.DefaultAlertRule(categoryID), nil
	}
	return *rule, nil
}

func (s *AlertService) SetAlertRule(ctx context.Context, rule core.AlertRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	if _, err := s.categories.GetByID(ctx, rule.CategoryID); err != nil {
		return err
	}
	if err := s.alerts.SaveRule(ctx, rule); err != nil {
		return fmt.Errorf("save alert rule: %w", err)
	}
	return nil
}

// ListOpenAlerts returns the undismissed alerts for a period.
func (s *AlertService) ListOpenAlerts(ctx context.Context, periodID string) ([]core.Alert, error) {
	return s.alerts.ListOpenByPeriod(ctx, periodID)
}
