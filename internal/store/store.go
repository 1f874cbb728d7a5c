// Package store owns the in-memory transaction log, category list and
// display preferences, mirrored to durable key-value persistence. Mutations
// replace whole collections so every read is a consistent snapshot; persist
// failures are logged and never surfaced, since loss of durability does not
// corrupt in-memory state.
package store

import (
	"context"
	"sync"

	"ledgerly/internal/core"
	"ledgerly/internal/log"
	"ledgerly/internal/storage"
)

// KV is the durable persistence capability the store consumes.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	Close() error
}

// Entity identifies which collection a change touched.
type Entity string

const (
	EntityTransaction Entity = "transaction"
	EntityCategory    Entity = "category"
	EntityPreference  Entity = "preference"
)

// Op is the kind of mutation applied.
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// Change describes a single store mutation, delivered synchronously to
// subscribers after the in-memory state and write-back have been handled.
type Change struct {
	Entity Entity
	Op     Op
	ID     string
}

const (
	// DefaultCurrency is the display label used when no preference exists.
	DefaultCurrency = "BDT"
	// DefaultDarkMode matches the original first-run preference.
	DefaultDarkMode = true
)

type Store struct {
	mu       sync.RWMutex
	kv       KV
	logger   *log.Logger
	revision uint64

	transactions []core.Transaction
	categories   []core.Category
	currency     string
	darkMode     bool

	subscribers []func(Change)
}

// Open loads all persisted state. A missing or malformed blob falls back to
// its default (empty log, default category set, default preferences); Open
// fails only when the KV itself errors out.
func Open(ctx context.Context, kv KV, logger *log.Logger) (*Store, error) {
	s := &Store{
		kv:       kv,
		logger:   logger.WithComponent(log.ComponentStore),
		currency: DefaultCurrency,
		darkMode: DefaultDarkMode,
	}

	if raw, ok, err := kv.Load(ctx, storage.KeyTransactions); err != nil {
		return nil, err
	} else if ok {
		var txs []core.Transaction
		if decode(raw, &txs) {
			s.transactions = txs
		} else {
			s.logger.Warn("Discarding malformed transactions blob, starting empty",
				log.FieldKey, storage.KeyTransactions)
		}
	}

	s.categories = core.DefaultCategories()
	if raw, ok, err := kv.Load(ctx, storage.KeyCategories); err != nil {
		return nil, err
	} else if ok {
		var cats []core.Category
		if decode(raw, &cats) {
			s.categories = cats
		} else {
			s.logger.Warn("Discarding malformed categories blob, seeding defaults",
				log.FieldKey, storage.KeyCategories)
		}
	}

	if raw, ok, err := kv.Load(ctx, storage.KeyCurrency); err != nil {
		return nil, err
	} else if ok {
		var currency string
		if decode(raw, &currency) && currency != "" {
			s.currency = currency
		}
	}

	if raw, ok, err := kv.Load(ctx, storage.KeyDarkMode); err != nil {
		return nil, err
	} else if ok {
		var dark bool
		if decode(raw, &dark) {
			s.darkMode = dark
		}
	}

	s.logger.InfoContext(ctx, "Store loaded",
		log.FieldCount, len(s.transactions),
		"categories", len(s.categories))

	return s, nil
}

// Subscribe registers fn to be called synchronously for every mutation.
func (s *Store) Subscribe(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Revision increments on every mutation; derived-state caches key on it.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Transactions returns a snapshot copy of the transaction log.
func (s *Store) Transactions() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Transaction(nil), s.transactions...)
}

// Categories returns a snapshot copy of the category list, in registry order.
func (s *Store) Categories() []core.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Category(nil), s.categories...)
}

func (s *Store) Currency() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currency
}

func (s *Store) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode
}

// ReplaceTransactions swaps in a new transaction log and persists it.
func (s *Store) ReplaceTransactions(ctx context.Context, txs []core.Transaction, change Change) {
	s.mu.Lock()
	s.transactions = append([]core.Transaction(nil), txs...)
	s.revision++
	subs := append(([]func(Change))(nil), s.subscribers...)
	s.mu.Unlock()

	s.persist(ctx, storage.KeyTransactions, txs)
	for _, fn := range subs {
		fn(change)
	}
}

// ReplaceCategories swaps in a new category list and persists it.
func (s *Store) ReplaceCategories(ctx context.Context, cats []core.Category, change Change) {
	s.mu.Lock()
	s.categories = append([]core.Category(nil), cats...)
	s.revision++
	subs := append(([]func(Change))(nil), s.subscribers...)
	s.mu.Unlock()

	s.persist(ctx, storage.KeyCategories, cats)
	for _, fn := range subs {
		fn(change)
	}
}

func (s *Store) SetCurrency(ctx context.Context, currency string) {
	s.mu.Lock()
	s.currency = currency
	s.revision++
	subs := append(([]func(Change))(nil), s.subscribers...)
	s.mu.Unlock()

	s.persist(ctx, storage.KeyCurrency, currency)
	for _, fn := range subs {
		fn(Change{Entity: EntityPreference, Op: OpUpdated, ID: storage.KeyCurrency})
	}
}

func (s *Store) SetDarkMode(ctx context.Context, dark bool) {
	s.mu.Lock()
	s.darkMode = dark
	s.revision++
	subs := append(([]func(Change))(nil), s.subscribers...)
	s.mu.Unlock()

	s.persist(ctx, storage.KeyDarkMode, dark)
	for _, fn := range subs {
		fn(Change{Entity: EntityPreference, Op: OpUpdated, ID: storage.KeyDarkMode})
	}
}

// persist mirrors a mutation to durable storage. Write failures are logged
// and swallowed: the in-memory state stays authoritative for this process.
func (s *Store) persist(ctx context.Context, key string, v any) {
	raw, err := encode(v)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to encode state for persistence",
			log.FieldKey, key, log.FieldError, err)
		return
	}
	if err := s.kv.Save(ctx, key, raw); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist state",
			log.FieldKey, key, log.FieldError, err)
	}
}

func (s *Store) Close() error {
	return s.kv.Close()
}
