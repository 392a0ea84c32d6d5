package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"budgeteer/internal/core"
	"budgeteer/internal/repo"
)

// PeriodService owns the period lifecycle: resolution of the current
// window, creation of the next one, and the one-way open → closed
// transition.
type PeriodService struct {
	periods  repo.PeriodRepository
	settings *SettingsService
	now      Clock
}

func NewPeriodService(periods repo.PeriodRepository, settings *SettingsService) *PeriodService {
	return &PeriodService{periods: periods, settings: settings, now: time.Now}
}

// WithClock overrides the service clock, for tests.
func (s *PeriodService) WithClock(now Clock) *PeriodService {
	s.now = now
	return s
}

// CreatePeriodInput describes an explicitly created period.
type CreatePeriodInput struct {
	CycleType   core.CycleType
	StartDate   core.DateString
	EndDate     core.DateString
	IncomeCents core.Cents
}

// GetCurrentPeriod returns the open period containing today, creating
// one from the configured cycle when none exists yet.
func (s *PeriodService) GetCurrentPeriod(ctx context.Context) (core.Period, error) {
	day := today(s.now)
	existing, err := s.periods.FindOpenContaining(ctx, day)
	if err != nil {
		return core.Period{}, fmt.Errorf("find current period: %w", err)
	}
	if existing != nil {
		return *existing, nil
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return core.Period{}, err
	}
	r := core.ResolveCurrentPeriodRange(settings.CycleType, day, settings.BiweeklyAnchorDate)
	p := core.Period{
		ID:        newID(),
		CycleType: settings.CycleType,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		CreatedAt: timestamp(s.now),
	}
	if err := s.periods.Insert(ctx, p); err != nil {
		return core.Period{}, fmt.Errorf("insert period: %w", err)
	}
	slog.InfoContext(ctx, "Opened new budgeting period",
		"id", p.ID, "cycle", p.CycleType, "start", p.StartDate, "end", p.EndDate)
	return p, nil
}

func (s *PeriodService) GetPeriod(ctx context.Context, id string) (core.Period, error) {
	return s.periods.GetByID(ctx, id)
}

func (s *PeriodService) CreatePeriod(ctx context.Context, in CreatePeriodInput) (core.Period, error) {
	if in.IncomeCents < 0 {
		return core.Period{}, core.Validationf("income must be >= 0, got %d", in.IncomeCents)
	}
	p := core.Period{
		ID:          newID(),
		CycleType:   in.CycleType,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		IncomeCents: in.IncomeCents,
		CreatedAt:   timestamp(s.now),
	}
	if err := p.Validate(); err != nil {
		return core.Period{}, err
	}
	if err := s.periods.Insert(ctx, p); err != nil {
		return core.Period{}, fmt.Errorf("insert period: %w", err)
	}
	return p, nil
}

// CreateNextPeriod opens the period that follows the latest one,
// carrying its income figure forward.
func (s *PeriodService) CreateNextPeriod(ctx context.Context) (core.Period, error) {
	latest, err := s.periods.Latest(ctx)
	if err != nil {
		return core.Period{}, fmt.Errorf("find latest period: %w", err)
	}
	if latest == nil {
		return core.Period{}, core.NotFoundf("no period to advance from")
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return core.Period{}, err
	}
	r := core.CreateNextPeriodRange(latest.CycleType, latest.Range(), settings.BiweeklyAnchorDate)
	p := core.Period{
		ID:          newID(),
		CycleType:   latest.CycleType,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		IncomeCents: latest.IncomeCents,
		CreatedAt:   timestamp(s.now),
	}
	if err := s.periods.Insert(ctx, p); err != nil {
		return core.Period{}, fmt.Errorf("insert period: %w", err)
	}
	slog.InfoContext(ctx, "Created next period",
		"id", p.ID, "start", p.StartDate, "end", p.EndDate, "after", latest.ID)
	return p, nil
}

// ClosePeriod performs the one-way open → closed transition.
func (s *PeriodService) ClosePeriod(ctx context.Context, id string) (core.Period, error) {
	p, err := s.periods.GetByID(ctx, id)
	if err != nil {
		return core.Period{}, err
	}
	if !p.Open() {
		return core.Period{}, core.Validationf("period %s is already closed", id)
	}
	p.ClosedAt = timestamp(s.now)
	if err := s.periods.Update(ctx, p); err != nil {
		return core.Period{}, fmt.Errorf("close period: %w", err)
	}
	slog.InfoContext(ctx, "Closed period", "id", p.ID, "closed_at", p.ClosedAt)
	return p, nil
}

func (s *PeriodService) ListPeriods(ctx context.Context) ([]core.Period, error) {
	return s.periods.List(ctx)
}
