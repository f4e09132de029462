// Package testutil provides test doubles and builders for budget
// store tests: an in-memory persister and deterministic stores with
// fixed clocks, sequential ids, and seeded randomness.
package testutil

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/digital-byte-innovations/StackWise/internal/budget"
	"github.com/digital-byte-innovations/StackWise/internal/model"
)

// MemoryPersister is an in-memory budget.Persister. Error fields make
// load and save failures injectable.
type MemoryPersister struct {
	LoadErr error
	SaveErr error

	mu       sync.Mutex
	snapshot *model.Snapshot
	saves    int
	closed   bool
}

// Load returns the stored snapshot, or (nil, nil) when none was saved.
func (p *MemoryPersister) Load(_ context.Context) (*model.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.LoadErr != nil {
		return nil, p.LoadErr
	}
	return p.snapshot, nil
}

// Save stores a snapshot.
func (p *MemoryPersister) Save(_ context.Context, snapshot *model.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SaveErr != nil {
		return p.SaveErr
	}
	p.snapshot = snapshot
	p.saves++
	return nil
}

// Close marks the persister closed.
func (p *MemoryPersister) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Saved returns the last saved snapshot.
func (p *MemoryPersister) Saved() *model.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

// SaveCount returns how many saves succeeded.
func (p *MemoryPersister) SaveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}

// Seed preloads a snapshot for the next Load.
func (p *MemoryPersister) Seed(snapshot *model.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshot = snapshot
}

// SequentialIDs returns an id generator producing id-1, id-2, ...
func SequentialIDs() func() string {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// FixedClock returns a clock stuck at the given time.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// NewStore creates a hydrated store over a fresh MemoryPersister with
// deterministic ids, clock, and color randomness.
func NewStore(t *testing.T, opts ...budget.Option) (*budget.Store, *MemoryPersister) {
	t.Helper()

	persister := &MemoryPersister{}
	base := []budget.Option{
		budget.WithIDGenerator(SequentialIDs()),
		budget.WithClock(FixedClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))),
		budget.WithRand(rand.New(rand.NewSource(1))), //nolint:gosec // deterministic test colors
	}
	store := budget.New(persister, append(base, opts...)...)
	store.Hydrate(context.Background())

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store, persister
}
