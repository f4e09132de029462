// Package budget implements the budget store: a single reactive state
// container holding all transactions and categories, persisted as a
// snapshot to durable storage after every mutation.
package budget

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/digital-byte-innovations/StackWise/internal/model"
	"github.com/google/uuid"
)

// Persister is the durable storage contract for store snapshots.
// Load returning (nil, nil) means no snapshot exists yet; the store
// treats that as an empty initial state.
type Persister interface {
	Load(ctx context.Context) (*model.Snapshot, error)
	Save(ctx context.Context, snapshot *model.Snapshot) error
	Close() error
}

// Status describes the store lifecycle. The store starts
// uninitialized, hydrates from durable storage exactly once, and then
// stays ready for the rest of the process lifetime.
type Status int

const (
	// StatusUninitialized means Hydrate has not been called yet.
	StatusUninitialized Status = iota
	// StatusHydrating means the initial load from storage is in progress.
	StatusHydrating
	// StatusReady means hydration finished (successfully or not).
	StatusReady
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusHydrating:
		return "hydrating"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Store is the single process-wide state container for transactions
// and categories. All mutations complete synchronously against memory;
// persistence happens afterwards on a background goroutine. Mutations
// never return errors and never panic across the public boundary:
// internal failures are logged and degrade to no-ops.
type Store struct {
	persister Persister
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
	rng       *rand.Rand

	mu           sync.RWMutex
	transactions []model.Transaction
	categories   []model.Category
	status       Status

	hydrateOnce sync.Once

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int

	writes sync.WaitGroup
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock overrides the timestamp source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides ID generation. Used in tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithRand sets the randomness source for category color assignment,
// making color picks deterministic in tests.
func WithRand(rng *rand.Rand) Option {
	return func(s *Store) { s.rng = rng }
}

// New creates a store backed by the given persister. The store is
// empty and uninitialized until Hydrate is called.
func New(persister Persister, opts ...Option) *Store {
	s := &Store{
		persister:    persister,
		logger:       slog.Default(),
		now:          time.Now,
		newID:        uuid.NewString,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // display colors, not security
		transactions: []model.Transaction{},
		categories:   []model.Category{},
		subs:         make(map[int]func()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate loads the persisted snapshot into memory. It runs at most
// once per store; later calls are no-ops. Hydration always completes:
// a missing or unreadable snapshot yields an empty initial state, and
// the status reaches ready either way.
func (s *Store) Hydrate(ctx context.Context) {
	s.hydrateOnce.Do(func() {
		s.mu.Lock()
		s.status = StatusHydrating
		s.mu.Unlock()

		snapshot, err := s.persister.Load(ctx)
		if err != nil {
			s.logger.Error("failed to load snapshot, starting empty", "error", err)
			snapshot = nil
		}
		if snapshot == nil {
			snapshot = &model.Snapshot{}
		}
		snapshot.Normalize()

		s.mu.Lock()
		s.transactions = snapshot.Transactions
		s.categories = snapshot.Categories
		s.status = StatusReady
		s.mu.Unlock()

		s.logger.Debug("store hydrated",
			"transactions", len(snapshot.Transactions),
			"categories", len(snapshot.Categories))
		s.notify()
	})
}

// Status returns the current lifecycle status.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Hydrated reports whether the initial load has completed. Reads
// before this returns true are provisional; consumers should show a
// loading state instead.
func (s *Store) Hydrated() bool {
	return s.Status() == StatusReady
}

// Transactions returns a copy of the transaction list, most recent
// first (store-level insertion order).
func (s *Store) Transactions() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Categories returns a copy of the category list in insertion order.
func (s *Store) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// CategoryByID returns the category with the given id, or nil.
func (s *Store) CategoryByID(id string) *model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			cat := s.categories[i]
			return &cat
		}
	}
	return nil
}

// CategoryByName returns the first category whose name matches after
// trimming, or nil.
func (s *Store) CategoryByName(name string) *model.Category {
	want := strings.TrimSpace(name)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.categories {
		if s.categories[i].Name == want {
			cat := s.categories[i]
			return &cat
		}
	}
	return nil
}

// AddIncome records an income transaction. The amount is coerced to
// its absolute value; a blank description defaults to "Income". The
// new record is prepended so the list stays most-recent-first.
func (s *Store) AddIncome(amount float64, description string) {
	s.guard("add income", func() {
		txn := s.newTransaction(amount, description, model.TypeIncome, "")

		s.mu.Lock()
		s.transactions = append([]model.Transaction{txn}, s.transactions...)
		s.mu.Unlock()

		s.logger.Debug("added income", "id", txn.ID, "amount", txn.Amount)
		s.afterMutation()
	})
}

// AddExpense records an expense transaction against a category. The
// category id is stored verbatim: no existence check is performed, and
// a dangling reference is simply treated as uncategorized by the
// aggregation side.
func (s *Store) AddExpense(amount float64, description, categoryID string) {
	s.guard("add expense", func() {
		txn := s.newTransaction(amount, description, model.TypeExpense, categoryID)

		s.mu.Lock()
		s.transactions = append([]model.Transaction{txn}, s.transactions...)
		s.mu.Unlock()

		s.logger.Debug("added expense", "id", txn.ID, "amount", txn.Amount, "category_id", categoryID)
		s.afterMutation()
	})
}

// AddCategory creates a spending category with the given monthly
// budget. The name is trimmed; a name that is empty after trimming
// makes the whole call a silent no-op. Categories are appended, so
// insertion order is preserved.
func (s *Store) AddCategory(name string, budget float64) {
	s.guard("add category", func() {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			s.logger.Debug("ignoring category with blank name")
			return
		}

		s.mu.Lock()
		cat := model.Category{
			ID:     s.newID(),
			Name:   trimmed,
			Budget: math.Abs(budget),
			Color:  pickColor(s.rng),
		}
		s.categories = append(s.categories, cat)
		s.mu.Unlock()

		s.logger.Debug("added category", "id", cat.ID, "name", cat.Name, "budget", cat.Budget)
		s.afterMutation()
	})
}

// DeleteTransaction removes the transaction with the given id. Absent
// ids are a no-op.
func (s *Store) DeleteTransaction(id string) {
	s.guard("delete transaction", func() {
		s.mu.Lock()
		kept := s.transactions[:0:0]
		for _, txn := range s.transactions {
			if txn.ID != id {
				kept = append(kept, txn)
			}
		}
		removed := len(s.transactions) - len(kept)
		s.transactions = kept
		if s.transactions == nil {
			s.transactions = []model.Transaction{}
		}
		s.mu.Unlock()

		if removed == 0 {
			return
		}
		s.logger.Debug("deleted transaction", "id", id)
		s.afterMutation()
	})
}

// DeleteCategory removes the category with the given id and cascades:
// every transaction referencing it is removed as well. Orphaned
// expense records are never left behind; that cascade is a deliberate
// contract, not incidental filtering. The transaction pass runs even
// when the category id does not exist.
func (s *Store) DeleteCategory(id string) {
	s.guard("delete category", func() {
		s.mu.Lock()
		cats := s.categories[:0:0]
		for _, cat := range s.categories {
			if cat.ID != id {
				cats = append(cats, cat)
			}
		}
		catRemoved := len(s.categories) - len(cats)
		s.categories = cats
		if s.categories == nil {
			s.categories = []model.Category{}
		}

		txns := s.transactions[:0:0]
		for _, txn := range s.transactions {
			if txn.CategoryID != id {
				txns = append(txns, txn)
			}
		}
		txnRemoved := len(s.transactions) - len(txns)
		s.transactions = txns
		if s.transactions == nil {
			s.transactions = []model.Transaction{}
		}
		s.mu.Unlock()

		if catRemoved == 0 && txnRemoved == 0 {
			return
		}
		s.logger.Debug("deleted category", "id", id, "cascaded_transactions", txnRemoved)
		s.afterMutation()
	})
}

// Subscribe registers a callback invoked after every mutation and
// after hydration completes. The returned function unsubscribes.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Flush waits for all in-flight background writes to finish.
func (s *Store) Flush() {
	s.writes.Wait()
}

// Close flushes pending writes and releases the persister.
func (s *Store) Close() error {
	s.Flush()
	return s.persister.Close()
}

// Snapshot returns a copy of the current state suitable for
// persistence or export.
func (s *Store) Snapshot() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := &model.Snapshot{
		Transactions: make([]model.Transaction, len(s.transactions)),
		Categories:   make([]model.Category, len(s.categories)),
	}
	copy(snap.Transactions, s.transactions)
	copy(snap.Categories, s.categories)
	return snap
}

func (s *Store) newTransaction(amount float64, description string, txnType model.TransactionType, categoryID string) model.Transaction {
	desc := strings.TrimSpace(description)
	if desc == "" {
		if txnType == model.TypeIncome {
			desc = "Income"
		} else {
			desc = "Expense"
		}
	}
	return model.Transaction{
		ID:          s.newID(),
		Amount:      math.Abs(amount),
		Description: desc,
		Date:        s.now(),
		Type:        txnType,
		CategoryID:  categoryID,
	}
}

// guard keeps unexpected internal failures from crossing the store
// boundary: the mutation degrades to a no-op and the panic is logged.
func (s *Store) guard(op string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("store mutation failed", "op", op, "panic", r)
		}
	}()
	fn()
}

// afterMutation notifies subscribers, then kicks off the background
// persistence write. Callers must not hold s.mu.
func (s *Store) afterMutation() {
	s.notify()
	s.persistAsync()
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// persistAsync saves the current snapshot on a background goroutine.
// Write failures are logged and never surfaced: the in-memory state is
// the source of truth, the disk copy is best effort.
func (s *Store) persistAsync() {
	snapshot := s.Snapshot()

	s.writes.Add(1)
	go func() {
		defer s.writes.Done()
		if err := s.persister.Save(context.Background(), snapshot); err != nil {
			s.logger.Error("failed to persist snapshot", "error", err)
		}
	}()
}
