package services

import (
	"context"
	"testing"

	"budgeteer/internal/core"
)

func alertSetup(t *testing.T) (*fixture, core.Period, core.Category) {
	t.Helper()
	f := newFixture(t)
	p := f.mustPeriod(t, "2026-04-01", "2026-04-30", 0)
	c := f.mustCategory(t, "Groceries")
	if _, err := f.budgets.UpsertBudget(context.Background(), UpsertBudgetInput{
		PeriodID:     p.ID,
		CategoryID:   c.ID,
		Cadence:      core.CadenceMonthly,
		AmountCents:  50000,
		RolloverRule: core.RolloverReset,
	}); err != nil {
		t.Fatalf("upsert budget: %v", err)
	}
	return f, p, c
}

func TestEvaluateAlertsApproachingLimit(t *testing.T) {
	f, p, c := alertSetup(t)
	ctx := context.Background()
	f.mustSpend(t, p.ID, c.ID, "2026-04-10", -45000) // 90% of 50000

	raised, err := f.alerts.EvaluateAlerts(ctx, p.ID, "2026-04-16")
	if err != nil {
		t.Fatalf("EvaluateAlerts: %v", err)
	}
	if len(raised) != 1 {
		t.Fatalf("raised %d alerts, want 1", len(raised))
	}
	if raised[0].Type != core.AlertApproachingLimit {
		t.Errorf("type = %q, want approaching_limit", raised[0].Type)
	}
	if raised[0].ThresholdPercent != 80 {
		t.Errorf("threshold = %d, want 80", raised[0].ThresholdPercent)
	}
}

func TestEvaluateAlertsAtMostOnceWhileOpen(t *testing.T) {
	f, p, c := alertSetup(t)
	ctx := context.Background()
	f.mustSpend(t, p.ID, c.ID, "2026-04-10", -45000)

	if _, err := f.alerts.EvaluateAlerts(ctx, p.ID, "2026-04-16"); err != nil {
		t.Fatalf("first EvaluateAlerts: %v", err)
	}
	again, err := f.alerts.EvaluateAlerts(ctx, p.ID, "2026-04-17")
	if err != nil {
		t.Fatalf("second EvaluateAlerts: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second pass raised %d alerts, want 0", len(again))
	}

	open, err := f.alerts.ListOpenAlerts(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListOpenAlerts: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("open alerts = %d, want 1", len(open))
	}

	// After a dismiss the condition fires again.
	if _, err := f.alerts.DismissAlert(ctx, open[0].ID); err != nil {
		t.Fatalf("DismissAlert: %v", err)
	}
	reraised, err := f.alerts.EvaluateAlerts(ctx, p.ID, "2026-04-18")
	if err != nil {
		t.Fatalf("third EvaluateAlerts: %v", err)
	}
	if len(reraised) != 1 {
		t.Errorf("post-dismiss pass raised %d alerts, want 1", len(reraised))
	}
}

func TestEvaluateAlertsOverspent(t *testing.T) {
	f, p, c := alertSetup(t)
	ctx := context.Background()
	f.mustSpend(t, p.ID, c.ID, "2026-04-10", -60000)

	raised, err := f.alerts.EvaluateAlerts(ctx, p.ID, "2026-04-16")
	if err != nil {
		t.Fatalf("EvaluateAlerts: %v", err)
	}
	if len(raised) != 1 {
		t.Fatalf("raised %d alerts, want 1", len(raised))
	}
	if raised[0].Type != core.AlertOverspent {
		t.Errorf("type = %q, want overspent", raised[0].Type)
	}
}

func TestEvaluateAlertsDisabledRule(t *testing.T) {
	f, p, c := alertSetup(t)
	ctx := context.Background()
	f.mustSpend(t, p.ID, c.ID, "2026-04-10", -60000)

	if err := f.alerts.SetAlertRule(ctx, core.AlertRule{
		CategoryID:              c.ID,
		ApproachingLimitPercent: 80,
		Enabled:                 false,
	}); err != nil {
		t.Fatalf("SetAlertRule: %v", err)
	}

	raised, err := f.alerts.EvaluateAlerts(ctx, p.ID, "2026-04-16")
	if err != nil {
		t.Fatalf("EvaluateAlerts: %v", err)
	}
	if len(raised) != 0 {
		t.Errorf("disabled rule raised %d alerts, want 0", len(raised))
	}
}

func TestEvaluateAlertsCustomThreshold(t *testing.T) {
	f, p, c := alertSetup(t)
	ctx := context.Background()
	f.mustSpend(t, p.ID, c.ID, "2026-04-10", -30000) // 60% of 50000

	if err := f.alerts.SetAlertRule(ctx, core.AlertRule{
		CategoryID:              c.ID,
		ApproachingLimitPercent: 50,
		Enabled:                 true,
	}); err != nil {
		t.Fatalf("SetAlertRule: %v", err)
	}

	raised, err := f.alerts.EvaluateAlerts(ctx, p.ID, "2026-04-16")
	if err != nil {
		t.Fatalf("EvaluateAlerts: %v", err)
	}
	if len(raised) != 1 {
		t.Fatalf("raised %d alerts, want 1", len(raised))
	}
	if raised[0].ThresholdPercent != 50 {
		t.Errorf("threshold = %d, want 50", raised[0].ThresholdPercent)
	}
}

func TestDismissAlertIdempotent(t *testing.T) {
	f, p, c := alertSetup(t)
	ctx := context.Background()
	f.mustSpend(t, p.ID, c.ID, "2026-04-10", -60000)

	raised, err := f.alerts.EvaluateAlerts(ctx, p.ID, "2026-04-16")
	if err != nil || len(raised) != 1 {
		t.Fatalf("EvaluateAlerts: %v (%d raised)", err, len(raised))
	}

	first, err := f.alerts.DismissAlert(ctx, raised[0].ID)
	if err != nil {
		t.Fatalf("DismissAlert: %v", err)
	}
	second, err := f.alerts.DismissAlert(ctx, raised[0].ID)
	if err != nil {
		t.Fatalf("second DismissAlert: %v", err)
	}
	if second.DismissedAt != first.DismissedAt {
		t.Errorf("second dismiss changed DismissedAt")
	}
}

func TestGetAlertRuleDefault(t *testing.T) {
	f, _, c := alertSetup(t)
	rule, err := f.alerts.GetAlertRule(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("GetAlertRule: %v", err)
	}
	if rule.ApproachingLimitPercent != 80 || !rule.Enabled {
		t.Errorf("default rule = %+v, want {80 true}", rule)
	}
}
