// Package repo defines the persistence ports the services depend on.
// Any storage engine satisfying these interfaces is interchangeable;
// the module ships a SQLite implementation and an in-memory one used
// by the tests.
package repo

import (
	"context"

	"budgeteer/internal/core"
)

// TransactionFilter narrows transaction listings. Zero-value fields are
// ignored. Soft-deleted rows are excluded from every read regardless of
// the filter.
type TransactionFilter struct {
	PeriodID   string
	CategoryID string
	StartDate  core.DateString
	EndDate    core.DateString
}

type (
	PeriodRepository interface {
		Insert(ctx context.Context, p core.Period) error
		Update(ctx context.Context, p core.Period) error
		GetByID(ctx context.Context, id string) (core.Period, error)
		// List returns all periods ordered by start date descending.
		List(ctx context.Context) ([]core.Period, error)
		// FindOpenContaining returns the open period whose range contains
		// date, or nil when there is none.
		FindOpenContaining(ctx context.Context, date core.DateString) (*core.Period, error)
		// Latest returns the period with the greatest start date, or nil.
		Latest(ctx context.Context) (*core.Period, error)
	}

	CategoryRepository interface {
		Insert(ctx context.Context, c core.Category) error
		Update(ctx context.Context, c core.Category) error
		GetByID(ctx context.Context, id string) (core.Category, error)
		// List returns categories ordered by name; archived ones only
		// when includeArchived is set.
		List(ctx context.Context, includeArchived bool) ([]core.Category, error)
	}

	BudgetRepository interface {
		Insert(ctx context.Context, b core.Budget) error
		Update(ctx context.Context, b core.Budget) error
		GetByID(ctx context.Context, id string) (core.Budget, error)
		// GetByPeriodCategory returns the unique budget for the
		// (period, category) pair, or nil when none exists.
		GetByPeriodCategory(ctx context.Context, periodID, categoryID string) (*core.Budget, error)
		ListByPeriod(ctx context.Context, periodID string) ([]core.Budget, error)
	}

	TransactionRepository interface {
		Insert(ctx context.Context, t core.Transaction) error
		Update(ctx context.Context, t core.Transaction) error
		// GetByID never returns soft-deleted rows.
		GetByID(ctx context.Context, id string) (core.Transaction, error)
		SoftDelete(ctx context.Context, id string, deletedAt core.Timestamp) error
		// List returns matching transactions ordered by date then
		// creation time.
		List(ctx context.Context, f TransactionFilter) ([]core.Transaction, error)
		// SumSpentInPeriod totals spend (negated negative amounts) for
		// one category in one period, as positive cents.
		SumSpentInPeriod(ctx context.Context, periodID, categoryID string) (core.Cents, error)
		// SumSpentInDateRange totals spend for one category in one
		// period restricted to a date range.
		SumSpentInDateRange(ctx context.Context, periodID, categoryID string, r core.DateRange) (core.Cents, error)
	}

	SettingsRepository interface {
		// Get returns the singleton settings row, or nil when the user
		// has never saved one.
		Get(ctx context.Context) (*core.Settings, error)
		Save(ctx context.Context, s core.Settings) error
	}

	AlertRepository interface {
		InsertAlert(ctx context.Context, a core.Alert) error
		UpdateAlert(ctx context.Context, a core.Alert) error
		GetAlert(ctx context.Context, id string) (core.Alert, error)
		// FindOpenAlert returns the undismissed alert of the given type
		// for a (period, category) pair, or nil.
		FindOpenAlert(ctx context.Context, periodID, categoryID string, t core.AlertType) (*core.Alert, error)
		ListOpenByPeriod(ctx context.Context, periodID string) ([]core.Alert, error)
		// GetRule returns the persisted rule for a category, or nil when
		// the default applies.
		GetRule(ctx context.Context, categoryID string) (*core.AlertRule, error)
		SaveRule(ctx context.Context, r core.AlertRule) error
	}

	ImportBatchRepository interface {
		Insert(ctx context.Context, b core.ImportBatch) error
		Update(ctx context.Context, b core.ImportBatch) error
		GetByID(ctx context.Context, id string) (core.ImportBatch, error)
	}
)

// Repositories bundles every port for wiring convenience.
type Repositories struct {
	Periods       PeriodRepository
	Categories    CategoryRepository
	Budgets       BudgetRepository
	Transactions  TransactionRepository
	Settings      SettingsRepository
	Alerts        AlertRepository
	ImportBatches ImportBatchRepository
}
