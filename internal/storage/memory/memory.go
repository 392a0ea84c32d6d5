// Package memory provides an in-memory implementation of the
// repository contract. It backs the service tests and the "memory"
// data backend.
package memory

import (
	"context"
	"sort"
	"sync"

	"budgeteer/internal/core"
	"budgeteer/internal/repo"
)

// Store keeps every entity in maps guarded by one mutex. Reads hand out
// copies so callers cannot mutate shared state.
type Store struct {
	mu           sync.Mutex
	periods      map[string]core.Period
	categories   map[string]core.Category
	budgets      map[string]core.Budget
	transactions map[string]core.Transaction
	alerts       map[string]core.Alert
	rules        map[string]core.AlertRule
	batches      map[string]core.ImportBatch
	settings     *core.Settings
}

func New() *Store {
	return &Store{
		periods:      make(map[string]core.Period),
		categories:   make(map[string]core.Category),
		budgets:      make(map[string]core.Budget),
		transactions: make(map[string]core.Transaction),
		alerts:       make(map[string]core.Alert),
		rules:        make(map[string]core.AlertRule),
		batches:      make(map[string]core.ImportBatch),
	}
}

// Repositories exposes the store through the port interfaces.
func (s *Store) Repositories() repo.Repositories {
	return repo.Repositories{
		Periods:       periodRepo{s},
		Categories:    categoryRepo{s},
		Budgets:       budgetRepo{s},
		Transactions:  transactionRepo{s},
		Settings:      settingsRepo{s},
		Alerts:        alertRepo{s},
		ImportBatches: batchRepo{s},
	}
}

type periodRepo struct{ s *Store }

func (r periodRepo) Insert(_ context.Context, p core.Period) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.periods[p.ID] = p
	return nil
}

func (r periodRepo) Update(_ context.Context, p core.Period) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.periods[p.ID]; !ok {
		return core.NotFoundf("period %s", p.ID)
	}
	r.s.periods[p.ID] = p
	return nil
}

func (r periodRepo) GetByID(_ context.Context, id string) (core.Period, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.periods[id]
	if !ok {
		return core.Period{}, core.NotFoundf("period %s", id)
	}
	return p, nil
}

func (r periodRepo) List(_ context.Context) ([]core.Period, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]core.Period, 0, len(r.s.periods))
	for _, p := range r.s.periods {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return core.CompareDateStrings(out[i].StartDate, out[j].StartDate) > 0
	})
	return out, nil
}

func (r periodRepo) FindOpenContaining(_ context.Context, date core.DateString) (*core.Period, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.periods {
		if p.Open() && core.IsDateInPeriod(date, p) {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (r periodRepo) Latest(_ context.Context) (*core.Period, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var latest *core.Period
	for _, p := range r.s.periods {
		if latest == nil || core.CompareDateStrings(p.StartDate, latest.StartDate) > 0 {
			found := p
			latest = &found
		}
	}
	return latest, nil
}

type categoryRepo struct{ s *Store }

func (r categoryRepo) Insert(_ context.Context, c core.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.categories[c.ID] = c
	return nil
}

func (r categoryRepo) Update(_ context.Context, c core.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return core.NotFoundf("category %s", c.ID)
	}
	r.s.categories[c.ID] = c
	return nil
}

func (r categoryRepo) GetByID(_ context.Context, id string) (core.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return core.Category{}, core.NotFoundf("category %s", id)
	}
	return c, nil
}

func (r categoryRepo) List(_ context.Context, includeArchived bool) ([]core.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]core.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		if !includeArchived && c.Archived() {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type budgetRepo struct{ s *Store }

func (r budgetRepo) Insert(_ context.Context, b core.Budget) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.budgets {
		if existing.PeriodID == b.PeriodID && existing.CategoryID == b.CategoryID {
			return core.Persistencef("budget for period %s category %s already exists", b.PeriodID, b.CategoryID)
		}
	}
	r.s.budgets[b.ID] = b
	return nil
}

func (r budgetRepo) Update(_ context.Context, b core.Budget) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.budgets[b.ID]; !ok {
		return core.NotFoundf("budget %s", b.ID)
	}
	r.s.budgets[b.ID] = b
	return nil
}

func (r budgetRepo) GetByID(_ context.Context, id string) (core.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.budgets[id]
	if !ok {
		return core.Budget{}, core.NotFoundf("budget %s", id)
	}
	return b, nil
}

func (r budgetRepo) GetByPeriodCategory(_ context.Context, periodID, categoryID string) (*core.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.budgets {
		if b.PeriodID == periodID && b.CategoryID == categoryID {
			found := b
			return &found, nil
		}
	}
	return nil, nil
}

func (r budgetRepo) ListByPeriod(_ context.Context, periodID string) ([]core.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []core.Budget
	for _, b := range r.s.budgets {
		if b.PeriodID == periodID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryID < out[j].CategoryID })
	return out, nil
}

type transactionRepo struct{ s *Store }

func (r transactionRepo) Insert(_ context.Context, t core.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactions[t.ID] = t
	return nil
}

func (r transactionRepo) Update(_ context.Context, t core.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transactions[t.ID]; !ok {
		return core.NotFoundf("transaction %s", t.ID)
	}
	r.s.transactions[t.ID] = t
	return nil
}

func (r transactionRepo) GetByID(_ context.Context, id string) (core.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok || t.Deleted() {
		return core.Transaction{}, core.NotFoundf("transaction %s", id)
	}
	return t, nil
}

func (r transactionRepo) SoftDelete(_ context.Context, id string, deletedAt core.Timestamp) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok || t.Deleted() {
		return core.NotFoundf("transaction %s", id)
	}
	t.DeletedAt = deletedAt
	r.s.transactions[id] = t
	return nil
}

func (r transactionRepo) List(_ context.Context, f repo.TransactionFilter) ([]core.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []core.Transaction
	for _, t := range r.s.transactions {
		if t.Deleted() || !matches(t, f) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r transactionRepo) SumSpentInPeriod(_ context.Context, periodID, categoryID string) (core.Cents, error) {
	return r.sumSpent(periodID, categoryID, nil)
}

func (r transactionRepo) SumSpentInDateRange(_ context.Context, periodID, categoryID string, dr core.DateRange) (core.Cents, error) {
	return r.sumSpent(periodID, categoryID, &dr)
}

func (r transactionRepo) sumSpent(periodID, categoryID string, dr *core.DateRange) (core.Cents, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var total core.Cents
	for _, t := range r.s.transactions {
		if t.Deleted() || t.PeriodID != periodID || t.CategoryID != categoryID || t.AmountCents >= 0 {
			continue
		}
		if dr != nil && !core.IsDateWithinRange(t.Date, *dr) {
			continue
		}
		total = core.Add(total, core.Abs(t.AmountCents))
	}
	return total, nil
}

func matches(t core.Transaction, f repo.TransactionFilter) bool {
	if f.PeriodID != "" && t.PeriodID != f.PeriodID {
		return false
	}
	if f.CategoryID != "" && t.CategoryID != f.CategoryID {
		return false
	}
	if f.StartDate != "" && core.CompareDateStrings(t.Date, f.StartDate) < 0 {
		return false
	}
	if f.EndDate != "" && core.CompareDateStrings(t.Date, f.EndDate) > 0 {
		return false
	}
	return true
}

type settingsRepo struct{ s *Store }

func (r settingsRepo) Get(_ context.Context) (*core.Settings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.settings == nil {
		return nil, nil
	}
	found := *r.s.settings
	return &found, nil
}

func (r settingsRepo) Save(_ context.Context, settings core.Settings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.settings = &settings
	return nil
}

type alertRepo struct{ s *Store }

func (r alertRepo) InsertAlert(_ context.Context, a core.Alert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.alerts[a.ID] = a
	return nil
}

func (r alertRepo) UpdateAlert(_ context.Context, a core.Alert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.alerts[a.ID]; !ok {
		return core.NotFoundf("alert %s", a.ID)
	}
	r.s.alerts[a.ID] = a
	return nil
}

func (r alertRepo) GetAlert(_ context.Context, id string) (core.Alert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.alerts[id]
	if !ok {
		return core.Alert{}, core.NotFoundf("alert %s", id)
	}
	return a, nil
}

func (r alertRepo) FindOpenAlert(_ context.Context, periodID, categoryID string, t core.AlertType) (*core.Alert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.alerts {
		if a.PeriodID == periodID && a.CategoryID == categoryID && a.Type == t && a.OpenAlert() {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (r alertRepo) ListOpenByPeriod(_ context.Context, periodID string) ([]core.Alert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []core.Alert
	for _, a := range r.s.alerts {
		if a.PeriodID == periodID && a.OpenAlert() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TriggeredAt < out[j].TriggeredAt })
	return out, nil
}

func (r alertRepo) GetRule(_ context.Context, categoryID string) (*core.AlertRule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rule, ok := r.s.rules[categoryID]
	if !ok {
		return nil, nil
	}
	return &rule, nil
}

func (r alertRepo) SaveRule(_ context.Context, rule core.AlertRule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.rules[rule.CategoryID] = rule
	return nil
}

type batchRepo struct{ s *Store }

func (r batchRepo) Insert(_ context.Context, b core.ImportBatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.batches[b.ID] = b
	return nil
}

func (r batchRepo) Update(_ context.Context, b core.ImportBatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.batches[b.ID]; !ok {
		return core.NotFoundf("import batch %s", b.ID)
	}
	r.s.batches[b.ID] = b
	return nil
}

func (r batchRepo) GetByID(_ context.Context, id string) (core.ImportBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.batches[id]
	if !ok {
		return core.ImportBatch{}, core.NotFoundf("import batch %s", id)
	}
	return b, nil
}
