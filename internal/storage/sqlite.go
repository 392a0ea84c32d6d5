// Package storage is the SQLite persistence layer. Dates and
// timestamps are stored as TEXT in the same canonical formats the core
// package uses, so range queries are plain string comparisons.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"budgeteer/internal/core"
	"budgeteer/internal/repo"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Repositories returns the full set of ports backed by this database.
func (r *SQLiteRepository) Repositories() repo.Repositories {
	return repo.Repositories{
		Periods:       sqlPeriodRepo{db: r.db},
		Categories:    sqlCategoryRepo{db: r.db},
		Budgets:       sqlBudgetRepo{db: r.db},
		Transactions:  sqlTransactionRepo{db: r.db},
		Settings:      sqlSettingsRepo{db: r.db},
		Alerts:        sqlAlertRepo{db: r.db},
		ImportBatches: sqlBatchRepo{db: r.db},
	}
}

// nullTS maps the empty Timestamp to SQL NULL and back.
func nullTS(t core.Timestamp) sql.NullString {
	if t == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: string(t), Valid: true}
}

func tsFrom(n sql.NullString) core.Timestamp {
	if !n.Valid {
		return ""
	}
	return core.Timestamp(n.String)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// mustAffect converts a zero-row UPDATE into a NotFound.
func mustAffect(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.NotFoundf("%s %s", what, id)
	}
	return nil
}

// --- periods ---

type sqlPeriodRepo struct{ db *sql.DB }

const periodColumns = "id, cycle_type, start_date, end_date, income_cents, created_at, closed_at"

func scanPeriod(row interface{ Scan(...any) error }) (core.Period, error) {
	var p core.Period
	var closedAt sql.NullString
	err := row.Scan(&p.ID, &p.CycleType, &p.StartDate, &p.EndDate, &p.IncomeCents, &p.CreatedAt, &closedAt)
	if err != nil {
		return core.Period{}, err
	}
	p.ClosedAt = tsFrom(closedAt)
	return p, nil
}

func (r sqlPeriodRepo) Insert(ctx context.Context, p core.Period) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO periods (id, cycle_type, start_date, end_date, income_cents, created_at, closed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.CycleType, p.StartDate, p.EndDate, p.IncomeCents, p.CreatedAt, nullTS(p.ClosedAt))
	if err != nil {
		return fmt.Errorf("insert period: %w", err)
	}
	return nil
}

func (r sqlPeriodRepo) Update(ctx context.Context, p core.Period) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE periods SET cycle_type = ?, start_date = ?, end_date = ?, income_cents = ?, closed_at = ?
		 WHERE id = ?`,
		p.CycleType, p.StartDate, p.EndDate, p.IncomeCents, nullTS(p.ClosedAt), p.ID)
	if err != nil {
		return fmt.Errorf("update period: %w", err)
	}
	return mustAffect(res, "period", p.ID)
}

func (r sqlPeriodRepo) GetByID(ctx context.Context, id string) (core.Period, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+periodColumns+` FROM periods WHERE id = ?`, id)
	p, err := scanPeriod(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Period{}, core.NotFoundf("period %s", id)
	}
	if err != nil {
		return core.Period{}, fmt.Errorf("get period: %w", err)
	}
	return p, nil
}

func (r sqlPeriodRepo) List(ctx context.Context) ([]core.Period, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+periodColumns+` FROM periods ORDER BY start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	defer rows.Close()
	var out []core.Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r sqlPeriodRepo) FindOpenContaining(ctx context.Context, date core.DateString) (*core.Period, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+periodColumns+` FROM periods
		 WHERE closed_at IS NULL AND start_date <= ? AND end_date >= ?
		 ORDER BY start_date DESC LIMIT 1`, date, date)
	p, err := scanPeriod(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find open period: %w", err)
	}
	return &p, nil
}

func (r sqlPeriodRepo) Latest(ctx context.Context) (*core.Period, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+periodColumns+` FROM periods ORDER BY start_date DESC LIMIT 1`)
	p, err := scanPeriod(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest period: %w", err)
	}
	return &p, nil
}

// --- categories ---

type sqlCategoryRepo struct{ db *sql.DB }

const categoryColumns = "id, name, kind, icon, color, archived_at"

func scanCategory(row interface{ Scan(...any) error }) (core.Category, error) {
	var c core.Category
	var archivedAt sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.Kind, &c.Icon, &c.Color, &archivedAt)
	if err != nil {
		return core.Category{}, err
	}
	c.ArchivedAt = tsFrom(archivedAt)
	return c, nil
}

func (r sqlCategoryRepo) Insert(ctx context.Context, c core.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, kind, icon, color, archived_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Kind, c.Icon, c.Color, nullTS(c.ArchivedAt))
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r sqlCategoryRepo) Update(ctx context.Context, c core.Category) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, kind = ?, icon = ?, color = ?, archived_at = ? WHERE id = ?`,
		c.Name, c.Kind, c.Icon, c.Color, nullTS(c.ArchivedAt), c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return mustAffect(res, "category", c.ID)
}

func (r sqlCategoryRepo) GetByID(ctx context.Context, id string) (core.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, core.NotFoundf("category %s", id)
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r sqlCategoryRepo) List(ctx context.Context, includeArchived bool) ([]core.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var out []core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// --- budgets ---

type sqlBudgetRepo struct{ db *sql.DB }

const budgetColumns = "id, period_id, category_id, cadence, amount_cents, rollover_rule, carryover_cents, created_at"

func scanBudget(row interface{ Scan(...any) error }) (core.Budget, error) {
	var b core.Budget
	err := row.Scan(&b.ID, &b.PeriodID, &b.CategoryID, &b.Cadence, &b.AmountCents,
		&b.RolloverRule, &b.CarryoverCents, &b.CreatedAt)
	return b, err
}

func (r sqlBudgetRepo) Insert(ctx context.Context, b core.Budget) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (id, period_id, category_id, cadence, amount_cents, rollover_rule, carryover_cents, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.PeriodID, b.CategoryID, b.Cadence, b.AmountCents, b.RolloverRule, b.CarryoverCents, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

func (r sqlBudgetRepo) Update(ctx context.Context, b core.Budget) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE budgets SET cadence = ?, amount_cents = ?, rollover_rule = ?, carryover_cents = ?
		 WHERE id = ?`,
		b.Cadence, b.AmountCents, b.RolloverRule, b.CarryoverCents, b.ID)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return mustAffect(res, "budget", b.ID)
}

func (r sqlBudgetRepo) GetByID(ctx context.Context, id string) (core.Budget, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE id = ?`, id)
	b, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, core.NotFoundf("budget %s", id)
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

func (r sqlBudgetRepo) GetByPeriodCategory(ctx context.Context, periodID, categoryID string) (*core.Budget, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE period_id = ? AND category_id = ?`,
		periodID, categoryID)
	b, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get budget by period and category: %w", err)
	}
	return &b, nil
}

func (r sqlBudgetRepo) ListByPeriod(ctx context.Context, periodID string) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE period_id = ? ORDER BY category_id`, periodID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()
	var out []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// --- transactions ---

type sqlTransactionRepo struct{ db *sql.DB }

const transactionColumns = "id, date, amount_cents, category_id, period_id, merchant, note, source, external_id, status, created_at, updated_at, deleted_at"

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
	var t core.Transaction
	var deletedAt sql.NullString
	err := row.Scan(&t.ID, &t.Date, &t.AmountCents, &t.CategoryID, &t.PeriodID, &t.Merchant,
		&t.Note, &t.Source, &t.ExternalID, &t.Status, &t.CreatedAt, &t.UpdatedAt, &deletedAt)
	if err != nil {
		return core.Transaction{}, err
	}
	t.DeletedAt = tsFrom(deletedAt)
	return t, nil
}

func (r sqlTransactionRepo) Insert(ctx context.Context, t core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, date, amount_cents, category_id, period_id, merchant, note, source, external_id, status, created_at, updated_at, deleted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Date, t.AmountCents, t.CategoryID, t.PeriodID, t.Merchant, t.Note,
		t.Source, t.ExternalID, t.Status, t.CreatedAt, t.UpdatedAt, nullTS(t.DeletedAt))
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r sqlTransactionRepo) Update(ctx context.Context, t core.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		 SET date = ?, amount_cents = ?, category_id = ?, period_id = ?, merchant = ?, note = ?,
		     source = ?, external_id = ?, status = ?, updated_at = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		t.Date, t.AmountCents, t.CategoryID, t.PeriodID, t.Merchant, t.Note,
		t.Source, t.ExternalID, t.Status, t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return mustAffect(res, "transaction", t.ID)
}

func (r sqlTransactionRepo) GetByID(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ? AND deleted_at IS NULL`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.NotFoundf("transaction %s", id)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r sqlTransactionRepo) SoftDelete(ctx context.Context, id string, deletedAt core.Timestamp) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		nullTS(deletedAt), id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return mustAffect(res, "transaction", id)
}

func (r sqlTransactionRepo) List(ctx context.Context, f repo.TransactionFilter) ([]core.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE deleted_at IS NULL`
	var args []any
	if f.PeriodID != "" {
		query += ` AND period_id = ?`
		args = append(args, f.PeriodID)
	}
	if f.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.StartDate != "" {
		query += ` AND date >= ?`
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		query += ` AND date <= ?`
		args = append(args, f.EndDate)
	}
	query += ` ORDER BY date, created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r sqlTransactionRepo) SumSpentInPeriod(ctx context.Context, periodID, categoryID string) (core.Cents, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(-amount_cents), 0) FROM transactions
		 WHERE period_id = ? AND category_id = ? AND amount_cents < 0 AND deleted_at IS NULL`,
		periodID, categoryID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum period spend: %w", err)
	}
	return core.Cents(total), nil
}

func (r sqlTransactionRepo) SumSpentInDateRange(ctx context.Context, periodID, categoryID string, dr core.DateRange) (core.Cents, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(-amount_cents), 0) FROM transactions
		 WHERE period_id = ? AND category_id = ? AND amount_cents < 0 AND deleted_at IS NULL
		   AND date >= ? AND date <= ?`,
		periodID, categoryID, dr.StartDate, dr.EndDate).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum range spend: %w", err)
	}
	return core.Cents(total), nil
}

// --- settings ---

type sqlSettingsRepo struct{ db *sql.DB }

func (r sqlSettingsRepo) Get(ctx context.Context) (*core.Settings, error) {
	var s core.Settings
	var appLock int
	err := r.db.QueryRowContext(ctx,
		`SELECT cycle_type, week_start, currency, locale, biweekly_anchor_date, app_lock_enabled
		 FROM settings WHERE id = 1`).
		Scan(&s.CycleType, &s.WeekStart, &s.Currency, &s.Locale, &s.BiweeklyAnchorDate, &appLock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	s.AppLockEnabled = appLock != 0
	return &s, nil
}

func (r sqlSettingsRepo) Save(ctx context.Context, s core.Settings) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (id, cycle_type, week_start, currency, locale, biweekly_anchor_date, app_lock_enabled)
		 VALUES (1, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   cycle_type = excluded.cycle_type,
		   week_start = excluded.week_start,
		   currency = excluded.currency,
		   locale = excluded.locale,
		   biweekly_anchor_date = excluded.biweekly_anchor_date,
		   app_lock_enabled = excluded.app_lock_enabled`,
		s.CycleType, s.WeekStart, s.Currency, s.Locale, s.BiweeklyAnchorDate, boolToInt(s.AppLockEnabled))
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// --- alerts ---

type sqlAlertRepo struct{ db *sql.DB }

const alertColumns = "id, category_id, period_id, type, threshold_percent, triggered_at, dismissed_at"

func scanAlert(row interface{ Scan(...any) error }) (core.Alert, error) {
	var a core.Alert
	var dismissedAt sql.NullString
	err := row.Scan(&a.ID, &a.CategoryID, &a.PeriodID, &a.Type, &a.ThresholdPercent,
		&a.TriggeredAt, &dismissedAt)
	if err != nil {
		return core.Alert{}, err
	}
	a.DismissedAt = tsFrom(dismissedAt)
	return a, nil
}

func (r sqlAlertRepo) InsertAlert(ctx context.Context, a core.Alert) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO alerts (id, category_id, period_id, type, threshold_percent, triggered_at, dismissed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.CategoryID, a.PeriodID, a.Type, a.ThresholdPercent, a.TriggeredAt, nullTS(a.DismissedAt))
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

func (r sqlAlertRepo) UpdateAlert(ctx context.Context, a core.Alert) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE alerts SET dismissed_at = ? WHERE id = ?`,
		nullTS(a.DismissedAt), a.ID)
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	return mustAffect(res, "alert", a.ID)
}

func (r sqlAlertRepo) GetAlert(ctx context.Context, id string) (core.Alert, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE id = ?`, id)
	a, err := scanAlert(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Alert{}, core.NotFoundf("alert %s", id)
	}
	if err != nil {
		return core.Alert{}, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

func (r sqlAlertRepo) FindOpenAlert(ctx context.Context, periodID, categoryID string, t core.AlertType) (*core.Alert, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+alertColumns+` FROM alerts
		 WHERE period_id = ? AND category_id = ? AND type = ? AND dismissed_at IS NULL
		 LIMIT 1`,
		periodID, categoryID, t)
	a, err := scanAlert(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find open alert: %w", err)
	}
	return &a, nil
}

func (r sqlAlertRepo) ListOpenByPeriod(ctx context.Context, periodID string) ([]core.Alert, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+alertColumns+` FROM alerts
		 WHERE period_id = ? AND dismissed_at IS NULL
		 ORDER BY triggered_at, id`, periodID)
	if err != nil {
		return nil, fmt.Errorf("list open alerts: %w", err)
	}
	defer rows.Close()
	var out []core.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r sqlAlertRepo) GetRule(ctx context.Context, categoryID string) (*core.AlertRule, error) {
	var rule core.AlertRule
	var enabled int
	err := r.db.QueryRowContext(ctx,
		`SELECT category_id, approaching_limit_percent, enabled FROM alert_rules WHERE category_id = ?`,
		categoryID).Scan(&rule.CategoryID, &rule.ApproachingLimitPercent, &enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get alert rule: %w", err)
	}
	rule.Enabled = enabled != 0
	return &rule, nil
}

func (r sqlAlertRepo) SaveRule(ctx context.Context, rule core.AlertRule) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO alert_rules (category_id, approaching_limit_percent, enabled)
		 VALUES (?, ?, ?)
		 ON CONFLICT (category_id) DO UPDATE SET
		   approaching_limit_percent = excluded.approaching_limit_percent,
		   enabled = excluded.enabled`,
		rule.CategoryID, rule.ApproachingLimitPercent, boolToInt(rule.Enabled))
	if err != nil {
		return fmt.Errorf("save alert rule: %w", err)
	}
	return nil
}

// --- import batches ---

type sqlBatchRepo struct{ db *sql.DB }

func (r sqlBatchRepo) Insert(ctx context.Context, b core.ImportBatch) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO import_batches (id, source, period_id, started_at, finished_at, imported_count, duplicates_count, error_count, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Source, b.PeriodID, b.StartedAt, nullTS(b.FinishedAt),
		b.ImportedCount, b.DuplicatesCount, b.ErrorCount, b.Notes)
	if err != nil {
		return fmt.Errorf("insert import batch: %w", err)
	}
	return nil
}

func (r sqlBatchRepo) Update(ctx context.Context, b core.ImportBatch) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE import_batches
		 SET finished_at = ?, imported_count = ?, duplicates_count = ?, error_count = ?, notes = ?
		 WHERE id = ?`,
		nullTS(b.FinishedAt), b.ImportedCount, b.DuplicatesCount, b.ErrorCount, b.Notes, b.ID)
	if err != nil {
		return fmt.Errorf("update import batch: %w", err)
	}
	return mustAffect(res, "import batch", b.ID)
}

func (r sqlBatchRepo) GetByID(ctx context.Context, id string) (core.ImportBatch, error) {
	var b core.ImportBatch
	var finishedAt sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, source, period_id, started_at, finished_at, imported_count, duplicates_count, error_count, notes
		 FROM import_batches WHERE id = ?`, id).
		Scan(&b.ID, &b.Source, &b.PeriodID, &b.StartedAt, &finishedAt,
			&b.ImportedCount, &b.DuplicatesCount, &b.ErrorCount, &b.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ImportBatch{}, core.NotFoundf("import batch %s", id)
	}
	if err != nil {
		return core.ImportBatch{}, fmt.Errorf("get import batch: %w", err)
	}
	b.FinishedAt = tsFrom(finishedAt)
	return b, nil
}
