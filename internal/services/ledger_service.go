package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ledgerly/internal/cache"
	"ledgerly/internal/core"
	"ledgerly/internal/log"
	"ledgerly/internal/store"
)

const (
	filterCacheSize = 64
	filterCacheTTL  = 5 * time.Minute
)

// TransactionInput carries the caller-validated fields of a transaction
// being created or edited. The ID is never part of the input.
type TransactionInput struct {
	Title    string
	Amount   float64
	Type     core.TransactionType
	Category string
	Date     core.Date
}

// LedgerService exposes the transaction log: CRUD plus the derived views
// consumed by the dashboard.
type LedgerService struct {
	store  *store.Store
	cache  *cache.LRU[[]core.Transaction]
	logger *log.Logger
	now    func() time.Time
}

func NewLedgerService(st *store.Store, logger *log.Logger) *LedgerService {
	return &LedgerService{
		store:  st,
		cache:  cache.NewLRU[[]core.Transaction](filterCacheSize, filterCacheTTL),
		logger: logger.WithComponent(log.ComponentLedger),
		now:    time.Now,
	}
}

// ListTransactions returns the active subset for the given selectors,
// ordered most recent first. Results are memoized on the exact input
// identity (store revision, selectors, calendar day); any mutation bumps the
// revision, so a stale hit is impossible.
func (s *LedgerService) ListTransactions(timeFilter core.TimeFilter, categoryFilter string) ([]core.Transaction, error) {
	if !timeFilter.Valid() {
		return nil, fmt.Errorf("list transactions: unknown time filter %q", timeFilter)
	}

	now := s.now()
	key := fmt.Sprintf("%d|%s|%s|%s", s.store.Revision(), timeFilter, categoryFilter, core.DateOf(now))
	if cached, ok := s.cache.Get(key); ok {
		return append([]core.Transaction(nil), cached...), nil
	}

	result := core.Filter(s.store.Transactions(), timeFilter, categoryFilter, now)
	s.cache.Set(key, result)
	return append([]core.Transaction(nil), result...), nil
}

// Stats reduces the active subset to its dashboard totals.
func (s *LedgerService) Stats(timeFilter core.TimeFilter, categoryFilter string) (core.DashboardStats, error) {
	txs, err := s.ListTransactions(timeFilter, categoryFilter)
	if err != nil {
		return core.DashboardStats{}, err
	}
	return core.Stats(txs), nil
}

// ExpenseDistribution buckets the active subset's expenses by category.
func (s *LedgerService) ExpenseDistribution(timeFilter core.TimeFilter, categoryFilter string) ([]core.CategoryAmount, error) {
	txs, err := s.ListTransactions(timeFilter, categoryFilter)
	if err != nil {
		return nil, err
	}
	return core.ExpenseDistribution(txs), nil
}

// Trend returns the 30-day daily series. It always consumes the full
// unfiltered log, regardless of the active selectors.
func (s *LedgerService) Trend() []core.TrendPoint {
	return core.Trend(s.store.Transactions(), s.now())
}

// Snapshot returns the full transaction log. This is the sole input handed
// to the advisory-text generator.
func (s *LedgerService) Snapshot() []core.Transaction {
	return s.store.Transactions()
}

// CreateTransaction validates the input, assigns a fresh ID and appends the
// transaction to the log.
func (s *LedgerService) CreateTransaction(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	tx := core.Transaction{
		ID:       uuid.NewString(),
		Title:    in.Title,
		Amount:   in.Amount,
		Type:     in.Type,
		Category: in.Category,
		Date:     in.Date,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	txs := append(s.store.Transactions(), tx)
	s.store.ReplaceTransactions(ctx, txs, store.Change{
		Entity: store.EntityTransaction, Op: store.OpCreated, ID: tx.ID,
	})

	s.logger.InfoContext(ctx, "Transaction created",
		log.FieldTransactionID, tx.ID,
		log.FieldType, string(tx.Type),
		log.FieldAmount, tx.Amount,
		log.FieldCategoryName, tx.Category)

	return tx, nil
}

// UpdateTransaction replaces every field of the transaction except its ID.
func (s *LedgerService) UpdateTransaction(ctx context.Context, id string, in TransactionInput) (core.Transaction, error) {
	updated := core.Transaction{
		ID:       id,
		Title:    in.Title,
		Amount:   in.Amount,
		Type:     in.Type,
		Category: in.Category,
		Date:     in.Date,
	}
	if err := updated.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	txs := s.store.Transactions()
	found := false
	for i := range txs {
		if txs[i].ID == id {
			txs[i] = updated
			found = true
			break
		}
	}
	if !found {
		return core.Transaction{}, fmt.Errorf("update transaction %s: %w", id, core.ErrNotFound)
	}

	s.store.ReplaceTransactions(ctx, txs, store.Change{
		Entity: store.EntityTransaction, Op: store.OpUpdated, ID: id,
	})

	s.logger.InfoContext(ctx, "Transaction updated", log.FieldTransactionID, id)
	return updated, nil
}

// DeleteTransaction removes the transaction with the given ID.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) error {
	txs := s.store.Transactions()
	kept := txs[:0:0]
	for _, tx := range txs {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	if len(kept) == len(txs) {
		return fmt.Errorf("delete transaction %s: %w", id, core.ErrNotFound)
	}

	s.store.ReplaceTransactions(ctx, kept, store.Change{
		Entity: store.EntityTransaction, Op: store.OpDeleted, ID: id,
	})

	s.logger.InfoContext(ctx, "Transaction deleted", log.FieldTransactionID, id)
	return nil
}
