package services

import (
	"context"
	"fmt"
	"time"

	"budgeteer/internal/core"
	"budgeteer/internal/repo"
)

// TransactionService records money movements. Negative amounts are
// spend, positive income; deletes are soft and deleted rows vanish from
// every read.
type TransactionService struct {
	transactions repo.TransactionRepository
	categories   repo.CategoryRepository
	periods      repo.PeriodRepository
	now          Clock
}

func NewTransactionService(transactions repo.TransactionRepository, categories repo.CategoryRepository, periods repo.PeriodRepository) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		categories:   categories,
		periods:      periods,
		now:          time.Now,
	}
}

func (s *TransactionService) WithClock(now Clock) *TransactionService {
	s.now = now
	return s
}

type TransactionInput struct {
	Date        core.DateString
	AmountCents core.Cents
	CategoryID  string
	PeriodID    string
	Merchant    string
	Note        string
	Source      core.TxSource
	ExternalID  string
	Status      core.TxStatus
}

func (s *TransactionService) AddTransaction(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	if in.Source == "" {
		in.Source = core.SourceManual
	}
	if in.Status == "" {
		in.Status = core.StatusPosted
	}
	t := core.Transaction{
		ID:          newID(),
		Date:        in.Date,
		AmountCents: in.AmountCents,
		CategoryID:  in.CategoryID,
		PeriodID:    in.PeriodID,
		Merchant:    in.Merchant,
		Note:        in.Note,
		Source:      in.Source,
		ExternalID:  in.ExternalID,
		Status:      in.Status,
		CreatedAt:   timestamp(s.now),
		UpdatedAt:   timestamp(s.now),
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
		return core.Transaction{}, err
	}
	if _, err := s.periods.GetByID(ctx, in.PeriodID); err != nil {
		return core.Transaction{}, err
	}
	if err := s.transactions.Insert(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return t, nil
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, in TransactionInput) (core.Transaction, error) {
	t, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return core.Transaction{}, err
	}
	if in.Source == "" {
		in.Source = t.Source
	}
	if in.Status == "" {
		in.Status = t.Status
	}
	t.Date = in.Date
	t.AmountCents = in.AmountCents
	t.CategoryID = in.CategoryID
	t.PeriodID = in.PeriodID
	t.Merchant = in.Merchant
	t.Note = in.Note
	t.Source = in.Source
	t.ExternalID = in.ExternalID
	t.Status = in.Status
	t.UpdatedAt = timestamp(s.now)
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if _, err := s.categories.GetByID(ctx, t.CategoryID); err != nil {
		return core.Transaction{}, err
	}
	if _, err := s.periods.GetByID(ctx, t.PeriodID); err != nil {
		return core.Transaction{}, err
	}
	if err := s.transactions.Update(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	return t, nil
}

// DeleteTransaction soft-deletes; re-deleting is a NotFound because the
// row is already gone from every read.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.transactions.SoftDelete(ctx, id, timestamp(s.now)); err != nil {
		return err
	}
	return nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	return s.transactions.GetByID(ctx, id)
}

func (s *TransactionService) ListTransactions(ctx context.Context, f repo.TransactionFilter) ([]core.Transaction, error) {
	return s.transactions.List(ctx, f)
}
