// Package core holds the pure budgeting domain: entity types, calendar
// arithmetic, integer-cent money helpers, the left-to-spend proration
// algorithm and rollover rules. Nothing in this package touches storage.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy. Services wrap these with context so callers can
// discriminate with errors.Is.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence failure")
)

// Validationf wraps ErrValidation with a formatted reason.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

// NotFoundf wraps ErrNotFound with a formatted reason.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Persistencef wraps ErrPersistence with a formatted reason.
func Persistencef(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrPersistence)
}

type (
	// Cents is a monetary amount in integer cents. Negative = spend,
	// positive = income.
	Cents int64

	// DateString is a calendar date in YYYY-MM-DD form. The fixed-width
	// zero-padded format makes lexicographic comparison valid.
	DateString string

	// Timestamp is an ISO-8601 instant. Empty means "not set" for
	// optional columns such as closed_at and deleted_at.
	Timestamp string

	CycleType    string
	Cadence      string
	RolloverRule string
	CategoryKind string
	TxSource     string
	TxStatus     string
	AlertType    string
)

const (
	CycleMonthly  CycleType = "monthly"
	CycleBiweekly CycleType = "biweekly"

	CadenceMonthly Cadence = "monthly"
	CadenceWeekly  Cadence = "weekly"

	RolloverReset  RolloverRule = "reset"
	RolloverPos    RolloverRule = "pos"
	RolloverPosNeg RolloverRule = "pos_neg"

	KindNeed CategoryKind = "need"
	KindWant CategoryKind = "want"

	SourceManual TxSource = "manual"
	SourceImport TxSource = "import"

	StatusPosted  TxStatus = "posted"
	StatusPending TxStatus = "pending"

	AlertApproachingLimit AlertType = "approaching_limit"
	AlertOverspent        AlertType = "overspent"
)

// Period is one budgeting window: a calendar month or a 14-day biweekly
// tile. Closing is soft (ClosedAt set); periods are never deleted.
type Period struct {
	ID          string
	CycleType   CycleType
	StartDate   DateString
	EndDate     DateString
	IncomeCents Cents
	CreatedAt   Timestamp
	ClosedAt    Timestamp
}

// Open reports whether the period has not been closed yet.
func (p Period) Open() bool { return p.ClosedAt == "" }

// Range returns the period's inclusive date range.
func (p Period) Range() DateRange {
	return DateRange{StartDate: p.StartDate, EndDate: p.EndDate}
}

func (p Period) Validate() error {
	switch p.CycleType {
	case CycleMonthly, CycleBiweekly:
	default:
		return Validationf("invalid cycle type %q", p.CycleType)
	}
	if err := p.StartDate.Validate(); err != nil {
		return err
	}
	if err := p.EndDate.Validate(); err != nil {
		return err
	}
	if CompareDateStrings(p.StartDate, p.EndDate) > 0 {
		return Validationf("period start %s after end %s", p.StartDate, p.EndDate)
	}
	return nil
}

// Category groups transactions. Archiving is soft so historical
// transactions keep their reference.
type Category struct {
	ID         string
	Name       string
	Kind       CategoryKind
	Icon       string
	Color      string
	ArchivedAt Timestamp
}

func (c Category) Archived() bool { return c.ArchivedAt != "" }

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return Validationf("category name is empty")
	}
	switch c.Kind {
	case KindNeed, KindWant:
	default:
		return Validationf("invalid category kind %q", c.Kind)
	}
	return nil
}

// Budget is the allowance for one (period, category) pair. With weekly
// cadence AmountCents is a per-week allowance expanded across the weeks
// overlapping the period.
type Budget struct {
	ID             string
	PeriodID       string
	CategoryID     string
	Cadence        Cadence
	AmountCents    Cents
	RolloverRule   RolloverRule
	CarryoverCents Cents
	CreatedAt      Timestamp
}

func (b Budget) Validate() error {
	if b.AmountCents < 0 {
		return Validationf("budget amount must be >= 0, got %d", b.AmountCents)
	}
	switch b.Cadence {
	case CadenceMonthly, CadenceWeekly:
	default:
		return Validationf("invalid cadence %q", b.Cadence)
	}
	switch b.RolloverRule {
	case RolloverReset, RolloverPos, RolloverPosNeg:
	default:
		return Validationf("invalid rollover rule %q", b.RolloverRule)
	}
	return nil
}

// Transaction records one movement of money. Negative amounts are spend,
// positive are income. Deletion is soft via DeletedAt.
type Transaction struct {
	ID          string
	Date        DateString
	AmountCents Cents
	CategoryID  string
	PeriodID    string
	Merchant    string
	Note        string
	Source      TxSource
	ExternalID  string
	Status      TxStatus
	CreatedAt   Timestamp
	UpdatedAt   Timestamp
	DeletedAt   Timestamp
}

func (t Transaction) Deleted() bool { return t.DeletedAt != "" }

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if t.AmountCents == 0 {
		return Validationf("transaction amount must be non-zero")
	}
	if t.CategoryID == "" {
		return Validationf("transaction category is empty")
	}
	if t.PeriodID == "" {
		return Validationf("transaction period is empty")
	}
	switch t.Source {
	case SourceManual, SourceImport:
	default:
		return Validationf("invalid transaction source %q", t.Source)
	}
	switch t.Status {
	case StatusPosted, StatusPending:
	default:
		return Validationf("invalid transaction status %q", t.Status)
	}
	return nil
}

// Settings is the singleton configuration record. WeekStart defines
// which weekday begins a week (0=Sunday..6=Saturday) for every
// week-bucketed calculation.
type Settings struct {
	CycleType          CycleType
	WeekStart          int
	Currency           string
	Locale             string
	BiweeklyAnchorDate DateString
	AppLockEnabled     bool
}

// DefaultSettings returns the configuration used before the user has
// saved anything.
func DefaultSettings() Settings {
	return Settings{
		CycleType: CycleMonthly,
		WeekStart: 1,
		Currency:  "EUR",
		Locale:    "en-US",
	}
}

func (s Settings) Validate() error {
	switch s.CycleType {
	case CycleMonthly, CycleBiweekly:
	default:
		return Validationf("invalid cycle type %q", s.CycleType)
	}
	if s.WeekStart < 0 || s.WeekStart > 6 {
		return Validationf("week start must be 0-6, got %d", s.WeekStart)
	}
	if s.BiweeklyAnchorDate != "" {
		if err := s.BiweeklyAnchorDate.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AlertRule configures the approaching-limit threshold for one category.
type AlertRule struct {
	CategoryID              string
	ApproachingLimitPercent int
	Enabled                 bool
}

// DefaultAlertRule is the implicit rule for categories without a
// persisted one. It is not written to storage until explicitly set.
func DefaultAlertRule(categoryID string) AlertRule {
	return AlertRule{CategoryID: categoryID, ApproachingLimitPercent: 80, Enabled: true}
}

func (r AlertRule) Validate() error {
	if r.CategoryID == "" {
		return Validationf("alert rule category is empty")
	}
	if r.ApproachingLimitPercent < 1 || r.ApproachingLimitPercent > 100 {
		return Validationf("approaching limit percent must be 1-100, got %d", r.ApproachingLimitPercent)
	}
	return nil
}

// Alert is one entry in the append-only alert log. Open means not yet
// dismissed.
type Alert struct {
	ID               string
	CategoryID       string
	PeriodID         string
	Type             AlertType
	ThresholdPercent int
	TriggeredAt      Timestamp
	DismissedAt      Timestamp
}

func (a Alert) OpenAlert() bool { return a.DismissedAt == "" }

// ImportBatch is the audit record for one CSV import run.
type ImportBatch struct {
	ID              string
	Source          string
	PeriodID        string
	StartedAt       Timestamp
	FinishedAt      Timestamp
	ImportedCount   int
	DuplicatesCount int
	ErrorCount      int
	Notes           string
}
