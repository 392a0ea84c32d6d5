package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"budgeteer/internal/core"
	"budgeteer/internal/repo"
)

// transactionCSVHeader is the fixed column order for transaction
// exports and the canonical column names for imports.
var transactionCSVHeader = []string{
	"id", "date", "amount_cents", "category_id", "period_id", "merchant",
	"note", "source", "external_id", "status", "created_at", "updated_at", "deleted_at",
}

var budgetSnapshotHeader = []string{
	"period_id", "category_id", "category_name", "cadence", "amount_cents",
	"rollover_rule", "carryover_cents", "created_at",
}

var csvDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// CSVService handles transaction import and export. Import is the one
// operation that collects per-row errors instead of propagating them:
// a single bad row never aborts the batch.
type CSVService struct {
	transactions repo.TransactionRepository
	categories   repo.CategoryRepository
	periods      repo.PeriodRepository
	budgets      repo.BudgetRepository
	batches      repo.ImportBatchRepository
	now          Clock
}

func NewCSVService(transactions repo.TransactionRepository, categories repo.CategoryRepository, periods repo.PeriodRepository, budgets repo.BudgetRepository, batches repo.ImportBatchRepository) *CSVService {
	return &CSVService{
		transactions: transactions,
		categories:   categories,
		periods:      periods,
		budgets:      budgets,
		batches:      batches,
		now:          time.Now,
	}
}

func (s *CSVService) WithClock(now Clock) *CSVService {
	s.now = now
	return s
}

// ImportResult reports a mixed-outcome batch to the caller.
type ImportResult struct {
	BatchID           string
	Imported          int
	DuplicatesSkipped int
	Errors            []string
}

// ExportTransactions renders transactions as RFC 4180 CSV, all periods
// when periodID is empty.
func (s *CSVService) ExportTransactions(ctx context.Context, periodID string) (string, error) {
	if periodID != "" {
		if _, err := s.periods.GetByID(ctx, periodID); err != nil {
			return "", err
		}
	}
	transactions, err := s.transactions.List(ctx, repo.TransactionFilter{PeriodID: periodID})
	if err != nil {
		return "", fmt.Errorf("list transactions: %w", err)
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(transactionCSVHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range transactions {
		rec := []string{
			t.ID,
			string(t.Date),
			strconv.FormatInt(int64(t.AmountCents), 10),
			t.CategoryID,
			t.PeriodID,
			t.Merchant,
			t.Note,
			string(t.Source),
			t.ExternalID,
			string(t.Status),
			string(t.CreatedAt),
			string(t.UpdatedAt),
			string(t.DeletedAt),
		}
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return sb.String(), nil
}

// ExportBudgetSnapshot renders every budget of a period with its
// category name resolved.
func (s *CSVService) ExportBudgetSnapshot(ctx context.Context, periodID string) (string, error) {
	if _, err := s.periods.GetByID(ctx, periodID); err != nil {
		return "", err
	}
	budgets, err := s.budgets.ListByPeriod(ctx, periodID)
	if err != nil {
		return "", fmt.Errorf("list budgets: %w", err)
	}
	categories, err := s.categories.List(ctx, true)
	if err != nil {
		return "", fmt.Errorf("list categories: %w", err)
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(budgetSnapshotHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, b := range budgets {
		rec := []string{
			b.PeriodID,
			b.CategoryID,
			names[b.CategoryID],
			string(b.Cadence),
			strconv.FormatInt(int64(b.AmountCents), 10),
			string(b.RolloverRule),
			strconv.FormatInt(int64(b.CarryoverCents), 10),
			string(b.CreatedAt),
		}
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return sb.String(), nil
}

// ImportTransactions parses CSV content and inserts the valid rows
// into the period. Rows are processed strictly in order so duplicates
// inside the same file are caught, not just duplicates of existing
// data. Duplicates (external-id or fuzzy date|amount|merchant match)
// are skipped silently; every other row failure is recorded as
// "row N: message" and processing continues.
func (s *CSVService) ImportTransactions(ctx context.Context, csvContent, periodID string) (ImportResult, error) {
	if _, err := s.periods.GetByID(ctx, periodID); err != nil {
		return ImportResult{}, err
	}

	r := csv.NewReader(strings.NewReader(csvContent))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return ImportResult{}, core.Validationf("malformed csv: %v", err)
	}
	if len(records) == 0 {
		return ImportResult{}, core.Validationf("csv content is empty")
	}

	// Header names are matched case-insensitively.
	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	existing, err := s.transactions.List(ctx, repo.TransactionFilter{PeriodID: periodID})
	if err != nil {
		return ImportResult{}, fmt.Errorf("list existing transactions: %w", err)
	}
	seenExternal := make(map[string]bool)
	seenFuzzy := make(map[string]bool)
	for _, t := range existing {
		if t.ExternalID != "" {
			seenExternal[t.ExternalID] = true
		}
		seenFuzzy[fuzzyKey(t.Date, t.AmountCents, t.Merchant)] = true
	}

	categories, err := s.categories.List(ctx, true)
	if err != nil {
		return ImportResult{}, fmt.Errorf("list categories: %w", err)
	}
	categoryIDs := make(map[string]bool, len(categories))
	categoryByName := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryIDs[c.ID] = true
		categoryByName[strings.ToLower(strings.TrimSpace(c.Name))] = c.ID
	}

	batch := core.ImportBatch{
		ID:        newID(),
		Source:    "csv",
		PeriodID:  periodID,
		StartedAt: timestamp(s.now),
	}
	if err := s.batches.Insert(ctx, batch); err != nil {
		return ImportResult{}, fmt.Errorf("insert import batch: %w", err)
	}

	result := ImportResult{BatchID: batch.ID}
	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	for i, rec := range records[1:] {
		rowNum := i + 2 // 1-indexed, header is row 1
		t, dup, rowErr := s.parseRow(rec, field, periodID, categoryIDs, categoryByName, seenExternal, seenFuzzy)
		if rowErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, rowErr))
			continue
		}
		if dup {
			result.DuplicatesSkipped++
			continue
		}
		if err := s.transactions.Insert(ctx, t); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: insert: %v", rowNum, err))
			continue
		}
		result.Imported++
		if t.ExternalID != "" {
			seenExternal[t.ExternalID] = true
		}
		seenFuzzy[fuzzyKey(t.Date, t.AmountCents, t.Merchant)] = true
	}

	batch.FinishedAt = timestamp(s.now)
	batch.ImportedCount = result.Imported
	batch.DuplicatesCount = result.DuplicatesSkipped
	batch.ErrorCount = len(result.Errors)
	if err := s.batches.Update(ctx, batch); err != nil {
		return result, fmt.Errorf("finalize import batch: %w", err)
	}

	slog.InfoContext(ctx, "CSV import finished",
		"batch", batch.ID, "period", periodID,
		"imported", result.Imported,
		"duplicates", result.DuplicatesSkipped,
		"errors", len(result.Errors))
	return result, nil
}

func (s *CSVService) parseRow(rec []string, field func([]string, string) string, periodID string, categoryIDs map[string]bool, categoryByName map[string]string, seenExternal, seenFuzzy map[string]bool) (core.Transaction, bool, error) {
	date := core.DateString(field(rec, "date"))
	if !csvDatePattern.MatchString(string(date)) {
		return core.Transaction{}, false, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	if err := date.Validate(); err != nil {
		return core.Transaction{}, false, fmt.Errorf("invalid date %q", date)
	}

	amount, err := parseCSVAmount(field(rec, "amount_cents"), field(rec, "amount"))
	if err != nil {
		return core.Transaction{}, false, err
	}

	categoryID := field(rec, "category_id")
	if categoryID != "" {
		if !categoryIDs[categoryID] {
			return core.Transaction{}, false, fmt.Errorf("unknown category id %q", categoryID)
		}
	} else {
		name := field(rec, "category_name")
		if name == "" {
			name = field(rec, "category")
		}
		if name == "" {
			return core.Transaction{}, false, fmt.Errorf("missing category")
		}
		id, ok := categoryByName[strings.ToLower(name)]
		if !ok {
			return core.Transaction{}, false, fmt.Errorf("unknown category %q", name)
		}
		categoryID = id
	}

	status := core.TxStatus(strings.ToLower(field(rec, "status")))
	switch status {
	case "":
		status = core.StatusPosted
	case core.StatusPosted, core.StatusPending:
	default:
		return core.Transaction{}, false, fmt.Errorf("invalid status %q", status)
	}

	externalID := field(rec, "external_id")
	merchant := field(rec, "merchant")

	if externalID != "" && seenExternal[externalID] {
		return core.Transaction{}, true, nil
	}
	if seenFuzzy[fuzzyKey(date, amount, merchant)] {
		return core.Transaction{}, true, nil
	}

	return core.Transaction{
		ID:          newID(),
		Date:        date,
		AmountCents: amount,
		CategoryID:  categoryID,
		PeriodID:    periodID,
		Merchant:    merchant,
		Note:        field(rec, "note"),
		Source:      core.SourceImport,
		ExternalID:  externalID,
		Status:      status,
		CreatedAt:   timestamp(s.now),
		UpdatedAt:   timestamp(s.now),
	}, false, nil
}

// parseCSVAmount accepts an integer cents column or a decimal,
// currency-formatted amount. Zero is rejected: a transaction must move
// money.
func parseCSVAmount(centsRaw, amountRaw string) (core.Cents, error) {
	var (
		amount core.Cents
		err    error
	)
	switch {
	case centsRaw != "":
		v, intErr := strconv.ParseInt(centsRaw, 10, 64)
		if intErr == nil {
			amount = core.Cents(v)
		} else {
			amount, err = core.ParseAmountToCents(centsRaw)
		}
	case amountRaw != "":
		amount, err = core.ParseAmountToCents(amountRaw)
	default:
		return 0, fmt.Errorf("missing amount")
	}
	if err != nil {
		return 0, fmt.Errorf("invalid amount")
	}
	if amount == 0 {
		return 0, fmt.Errorf("amount must be non-zero")
	}
	return amount, nil
}

// fuzzyKey identifies a transaction without a stable external id:
// date, amount and normalized merchant.
func fuzzyKey(date core.DateString, amount core.Cents, merchant string) string {
	return fmt.Sprintf("%s|%d|%s", date, int64(amount), strings.ToLower(strings.TrimSpace(merchant)))
}
