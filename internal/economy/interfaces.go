package economy

import (
	"context"
	"time"

	"github.com/chidionyema/verdict-sub009/internal/storage"
)

// Storage is the transactional persistence the engine runs against.
// Implementations: storage.Store (SQLite).
type Storage interface {
	// Transact runs fn atomically: either every mutation fn performs is
	// applied, or none are. Mutations for the same actor serialize.
	Transact(ctx context.Context, fn func(Tx) error) error

	// GetReviewer reads a reviewer record outside a transaction.
	GetReviewer(ctx context.Context, reviewerID string) (*storage.ReviewerRecord, error)

	// Balance returns an actor's current credit balance.
	Balance(ctx context.Context, actorID string) (int, error)

	// Entries returns an actor's ledger history, most recent first.
	Entries(ctx context.Context, actorID string, limit int) ([]storage.LedgerEntry, error)

	Close() error
}

// Tx is the set of operations available inside one transaction.
// Implementations: storage.Tx.
type Tx interface {
	Reviewer(reviewerID string) (*storage.ReviewerRecord, error)
	SaveReviewer(r *storage.ReviewerRecord) error
	AppendEntry(e *storage.LedgerEntry) error
	Balance(actorID string) (int, error)
}

// Clock supplies the current time so streak date arithmetic is testable.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
