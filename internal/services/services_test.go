package services

import (
	"context"
	"testing"
	"time"

	"budgeteer/internal/core"
	"budgeteer/internal/repo"
	"budgeteer/internal/storage/memory"
)

// fixture wires every service over the in-memory store with a frozen
// clock, Thursday 2026-04-16.
type fixture struct {
	repos        repo.Repositories
	settings     *SettingsService
	periods      *PeriodService
	categories   *CategoryService
	transactions *TransactionService
	budgets      *BudgetService
	alerts       *AlertService
	csv          *CSVService
}

const testNow = "2026-04-16T12:00:00Z"

func frozenClock(value string) Clock {
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return at }
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	r := memory.New().Repositories()
	clock := frozenClock(testNow)
	settings := NewSettingsService(r.Settings)
	budgets := NewBudgetService(r.Budgets, r.Periods, r.Categories, r.Transactions, settings).WithClock(clock)
	return &fixture{
		repos:        r,
		settings:     settings,
		periods:      NewPeriodService(r.Periods, settings).WithClock(clock),
		categories:   NewCategoryService(r.Categories).WithClock(clock),
		transactions: NewTransactionService(r.Transactions, r.Categories, r.Periods).WithClock(clock),
		budgets:      budgets,
		alerts:       NewAlertService(r.Alerts, r.Categories, budgets, settings).WithClock(clock),
		csv:          NewCSVService(r.Transactions, r.Categories, r.Periods, r.Budgets, r.ImportBatches).WithClock(clock),
	}
}

func (f *fixture) mustPeriod(t *testing.T, start, end core.DateString, income core.Cents) core.Period {
	t.Helper()
	p, err := f.periods.CreatePeriod(context.Background(), CreatePeriodInput{
		CycleType:   core.CycleMonthly,
		StartDate:   start,
		EndDate:     end,
		IncomeCents: income,
	})
	if err != nil {
		t.Fatalf("create period: %v", err)
	}
	return p
}

func (f *fixture) mustCategory(t *testing.T, name string) core.Category {
	t.Helper()
	c, err := f.categories.CreateCategory(context.Background(), CategoryInput{Name: name, Kind: core.KindNeed})
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return c
}

func (f *fixture) mustSpend(t *testing.T, periodID, categoryID string, date core.DateString, amount core.Cents) core.Transaction {
	t.Helper()
	tx, err := f.transactions.AddTransaction(context.Background(), TransactionInput{
		Date:        date,
		AmountCents: amount,
		CategoryID:  categoryID,
		PeriodID:    periodID,
		Merchant:    "test merchant",
	})
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	return tx
}
