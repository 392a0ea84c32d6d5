package services

import (
	"context"
	"fmt"

	"budgeteer/internal/core"
	"budgeteer/internal/repo"
)

// SettingsService manages the singleton configuration record. Reads
// fall back to defaults until the user saves something.
type SettingsService struct {
	settings repo.SettingsRepository
}

func NewSettingsService(settings repo.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// SettingsPatch carries partial updates; nil fields are untouched.
type SettingsPatch struct {
	CycleType          *core.CycleType
	WeekStart          *int
	Currency           *string
	Locale             *string
	BiweeklyAnchorDate *core.DateString
	AppLockEnabled     *bool
}

func (s *SettingsService) GetSettings(ctx context.Context) (core.Settings, error) {
	stored, err := s.settings.Get(ctx)
	if err != nil {
		return core.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	if stored == nil {
		return core.DefaultSettings(), nil
	}
	return *stored, nil
}

func (s *SettingsService) UpdateSettings(ctx context.Context, patch SettingsPatch) (core.Settings, error) {
	current, err := s.GetSettings(ctx)
	if err != nil {
		return core.Settings{}, err
	}
	if patch.CycleType != nil {
		current.CycleType = *patch.CycleType
	}
	if patch.WeekStart != nil {
		current.WeekStart = *patch.WeekStart
	}
	if patch.Currency != nil {
		current.Currency = *patch.Currency
	}
	if patch.Locale != nil {
		current.Locale = *patch.Locale
	}
	if patch.BiweeklyAnchorDate != nil {
		current.BiweeklyAnchorDate = *patch.BiweeklyAnchorDate
	}
	if patch.AppLockEnabled != nil {
		current.AppLockEnabled = *patch.AppLockEnabled
	}
	if err := current.Validate(); err != nil {
		return core.Settings{}, err
	}
	if err := s.settings.Save(ctx, current); err != nil {
		return core.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return current, nil
}
