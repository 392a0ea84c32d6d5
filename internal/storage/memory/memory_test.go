package memory

import (
	"context"
	"errors"
	"testing"

	"budgeteer/internal/core"
	"budgeteer/internal/repo"
)

func TestPeriodRepoOrderingAndLookups(t *testing.T) {
	ctx := context.Background()
	r := New().Repositories()

	periods := []core.Period{
		{ID: "p-apr", CycleType: core.CycleMonthly, StartDate: "2026-04-01", EndDate: "2026-04-30", CreatedAt: "2026-04-01T00:00:00Z"},
		{ID: "p-may", CycleType: core.CycleMonthly, StartDate: "2026-05-01", EndDate: "2026-05-31", CreatedAt: "2026-05-01T00:00:00Z"},
		{ID: "p-mar", CycleType: core.CycleMonthly, StartDate: "2026-03-01", EndDate: "2026-03-31", CreatedAt: "2026-03-01T00:00:00Z"},
	}
	for _, p := range periods {
		if err := r.Periods.Insert(ctx, p); err != nil {
			t.Fatalf("insert %s: %v", p.ID, err)
		}
	}

	list, err := r.Periods.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].ID != "p-may" || list[2].ID != "p-mar" {
		t.Fatalf("unexpected order: %v", list)
	}

	latest, err := r.Periods.Latest(ctx)
	if err != nil || latest == nil || latest.ID != "p-may" {
		t.Fatalf("latest = %v, err %v", latest, err)
	}

	open, err := r.Periods.FindOpenContaining(ctx, "2026-04-15")
	if err != nil || open == nil || open.ID != "p-apr" {
		t.Fatalf("open containing = %v, err %v", open, err)
	}

	// Closed periods are not candidates.
	closed := periods[0]
	closed.ClosedAt = "2026-05-01T00:00:00Z"
	if err := r.Periods.Update(ctx, closed); err != nil {
		t.Fatalf("update: %v", err)
	}
	open, err = r.Periods.FindOpenContaining(ctx, "2026-04-15")
	if err != nil || open != nil {
		t.Fatalf("expected no open period, got %v, err %v", open, err)
	}
}

func TestTransactionRepoSumsAndSoftDelete(t *testing.T) {
	ctx := context.Background()
	r := New().Repositories()

	insert := func(id string, date core.DateString, amount core.Cents) {
		t.Helper()
		err := r.Transactions.Insert(ctx, core.Transaction{
			ID: id, Date: date, AmountCents: amount,
			CategoryID: "c1", PeriodID: "p1",
			Source: core.SourceManual, Status: core.StatusPosted,
			CreatedAt: "2026-04-16T00:00:00Z", UpdatedAt: "2026-04-16T00:00:00Z",
		})
		if err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}
	insert("t1", "2026-04-10", -1500)
	insert("t2", "2026-04-14", -2500)
	insert("t3", "2026-04-14", 9000) // income, never counted as spend

	spent, err := r.Transactions.SumSpentInPeriod(ctx, "p1", "c1")
	if err != nil || spent != 4000 {
		t.Fatalf("period spend = %d, err %v, want 4000", spent, err)
	}

	spent, err = r.Transactions.SumSpentInDateRange(ctx, "p1", "c1",
		core.DateRange{StartDate: "2026-04-13", EndDate: "2026-04-19"})
	if err != nil || spent != 2500 {
		t.Fatalf("range spend = %d, err %v, want 2500", spent, err)
	}

	if err := r.Transactions.SoftDelete(ctx, "t2", "2026-04-16T00:00:00Z"); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	spent, _ = r.Transactions.SumSpentInPeriod(ctx, "p1", "c1")
	if spent != 1500 {
		t.Fatalf("spend after delete = %d, want 1500", spent)
	}
	if _, err := r.Transactions.GetByID(ctx, "t2"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("get deleted err = %v, want ErrNotFound", err)
	}
	if err := r.Transactions.SoftDelete(ctx, "t2", "2026-04-16T00:00:00Z"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestTransactionRepoFilters(t *testing.T) {
	ctx := context.Background()
	r := New().Repositories()

	rows := []core.Transaction{
		{ID: "t1", Date: "2026-04-10", AmountCents: -100, CategoryID: "c1", PeriodID: "p1", Source: core.SourceManual, Status: core.StatusPosted, CreatedAt: "a", UpdatedAt: "a"},
		{ID: "t2", Date: "2026-04-12", AmountCents: -100, CategoryID: "c2", PeriodID: "p1", Source: core.SourceManual, Status: core.StatusPosted, CreatedAt: "a", UpdatedAt: "a"},
		{ID: "t3", Date: "2026-04-14", AmountCents: -100, CategoryID: "c1", PeriodID: "p2", Source: core.SourceManual, Status: core.StatusPosted, CreatedAt: "a", UpdatedAt: "a"},
	}
	for _, tx := range rows {
		if err := r.Transactions.Insert(ctx, tx); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	cases := []struct {
		name   string
		filter repo.TransactionFilter
		want   []string
	}{
		{"by period", repo.TransactionFilter{PeriodID: "p1"}, []string{"t1", "t2"}},
		{"by category", repo.TransactionFilter{CategoryID: "c1"}, []string{"t1", "t3"}},
		{"by date range", repo.TransactionFilter{StartDate: "2026-04-11", EndDate: "2026-04-13"}, []string{"t2"}},
		{"all", repo.TransactionFilter{}, []string{"t1", "t2", "t3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.Transactions.List(ctx, tc.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %d rows, want %d", len(got), len(tc.want))
			}
			for i, id := range tc.want {
				if got[i].ID != id {
					t.Errorf("row %d = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestBudgetRepoUniquePerPeriodCategory(t *testing.T) {
	ctx := context.Background()
	r := New().Repositories()

	b := core.Budget{
		ID: "b1", PeriodID: "p1", CategoryID: "c1",
		Cadence: core.CadenceMonthly, AmountCents: 50000,
		RolloverRule: core.RolloverReset, CreatedAt: "a",
	}
	if err := r.Budgets.Insert(ctx, b); err != nil {
		t.Fatalf("insert: %v", err)
	}
	dup := b
	dup.ID = "b2"
	if err := r.Budgets.Insert(ctx, dup); err == nil {
		t.Fatal("duplicate (period, category) insert should fail")
	}

	got, err := r.Budgets.GetByPeriodCategory(ctx, "p1", "c1")
	if err != nil || got == nil || got.ID != "b1" {
		t.Fatalf("lookup = %v, err %v", got, err)
	}
	missing, err := r.Budgets.GetByPeriodCategory(ctx, "p1", "c9")
	if err != nil || missing != nil {
		t.Fatalf("missing lookup = %v, err %v", missing, err)
	}
}

func TestSettingsRepoSingleton(t *testing.T) {
	ctx := context.Background()
	r := New().Repositories()

	got, err := r.Settings.Get(ctx)
	if err != nil || got != nil {
		t.Fatalf("unset settings = %v, err %v", got, err)
	}

	s := core.DefaultSettings()
	s.Currency = "USD"
	if err := r.Settings.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = r.Settings.Get(ctx)
	if err != nil || got == nil || got.Currency != "USD" {
		t.Fatalf("settings = %v, err %v", got, err)
	}
}
