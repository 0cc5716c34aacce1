package economy

import (
	"context"
	"fmt"

	"github.com/chidionyema/verdict-sub009/internal/storage"
)

// Engine implements the reviewer reputation and credit economy policy over a
// transactional store. It is safe for concurrent use: all mutations run
// inside store transactions and the engine itself holds no mutable state.
type Engine struct {
	store Storage
	clock Clock
}

// Deps holds dependencies for constructing an Engine.
type Deps struct {
	Store Storage
	Clock Clock
}

// New opens the SQLite store at dbPath and returns a ready engine.
func New(dbPath string) (*Engine, error) {
	store, err := storage.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open credit store: %w", err)
	}
	return NewWithStore(store), nil
}

// NewWithStore wraps an already-open store, letting callers share its
// database handle with other collaborators.
func NewWithStore(store *storage.Store) *Engine {
	return &Engine{
		store: sqliteStorage{store: store},
		clock: realClock{},
	}
}

// NewWithDeps creates an engine with explicit dependencies (for testing).
func NewWithDeps(deps Deps) *Engine {
	e := &Engine{store: deps.Store, clock: deps.Clock}
	if e.clock == nil {
		e.clock = realClock{}
	}
	return e
}

// Close releases the underlying store.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Balance returns an actor's current spendable credit balance.
func (e *Engine) Balance(ctx context.Context, actorID string) (int, error) {
	return e.store.Balance(ctx, actorID)
}

// Entries returns an actor's ledger history, most recent first.
func (e *Engine) Entries(ctx context.Context, actorID string, limit int) ([]storage.LedgerEntry, error) {
	return e.store.Entries(ctx, actorID, limit)
}

// sqliteStorage adapts storage.Store to the engine's Storage interface.
type sqliteStorage struct {
	store *storage.Store
}

func (s sqliteStorage) Transact(ctx context.Context, fn func(Tx) error) error {
	return s.store.Transact(ctx, func(tx *storage.Tx) error {
		return fn(tx)
	})
}

func (s sqliteStorage) GetReviewer(ctx context.Context, reviewerID string) (*storage.ReviewerRecord, error) {
	return s.store.GetReviewer(ctx, reviewerID)
}

func (s sqliteStorage) Balance(ctx context.Context, actorID string) (int, error) {
	return s.store.Balance(ctx, actorID)
}

func (s sqliteStorage) Entries(ctx context.Context, actorID string, limit int) ([]storage.LedgerEntry, error) {
	return s.store.Entries(ctx, actorID, limit)
}

func (s sqliteStorage) Close() error {
	return s.store.Close()
}
