package economy

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chidionyema/verdict-sub009/internal/storage"
)

// Common test errors
var (
	ErrMockSave   = errors.New("mock save error")
	ErrMockAppend = errors.New("mock append error")
	ErrMockBegin  = errors.New("mock begin error")
)

// fakeClock returns a fixed instant and can be advanced by tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// memStore implements Storage over in-memory maps with snapshot/rollback
// transactionality, plus fail switches for error-path tests.
type memStore struct {
	mu        sync.Mutex
	reviewers map[string]storage.ReviewerRecord
	entries   []storage.LedgerEntry

	FailTransact     bool
	FailSaveReviewer bool
	FailAppendEntry  bool
}

func newMemStore() *memStore {
	return &memStore{reviewers: make(map[string]storage.ReviewerRecord)}
}

func (m *memStore) Transact(ctx context.Context, fn func(Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailTransact {
		return ErrMockBegin
	}

	// Snapshot state so a failed fn leaves nothing applied.
	savedReviewers := make(map[string]storage.ReviewerRecord, len(m.reviewers))
	for k, v := range m.reviewers {
		savedReviewers[k] = v
	}
	savedEntries := make([]storage.LedgerEntry, len(m.entries))
	copy(savedEntries, m.entries)

	if err := fn(&memTx{store: m}); err != nil {
		m.reviewers = savedReviewers
		m.entries = savedEntries
		return err
	}
	return nil
}

func (m *memStore) GetReviewer(ctx context.Context, reviewerID string) (*storage.ReviewerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.reviewers[reviewerID]
	if !ok {
		return nil, storage.ErrReviewerNotFound
	}
	return &rec, nil
}

func (m *memStore) Balance(ctx context.Context, actorID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balanceLocked(actorID), nil
}

func (m *memStore) Entries(ctx context.Context, actorID string, limit int) ([]storage.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storage.LedgerEntry
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if m.entries[i].ActorID == actorID {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

func (m *memStore) Close() error { return nil }

func (m *memStore) balanceLocked(actorID string) int {
	sum := 0
	for _, e := range m.entries {
		if e.ActorID == actorID {
			sum += e.Amount
		}
	}
	return sum
}

// entriesFor returns all ledger entries for an actor, oldest first.
func (m *memStore) entriesFor(actorID string) []storage.LedgerEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storage.LedgerEntry
	for _, e := range m.entries {
		if e.ActorID == actorID {
			out = append(out, e)
		}
	}
	return out
}

// memTx operates on the parent store directly; Transact handles rollback.
type memTx struct {
	store *memStore
}

func (t *memTx) Reviewer(reviewerID string) (*storage.ReviewerRecord, error) {
	rec, ok := t.store.reviewers[reviewerID]
	if !ok {
		return nil, storage.ErrReviewerNotFound
	}
	return &rec, nil
}

func (t *memTx) SaveReviewer(r *storage.ReviewerRecord) error {
	if t.store.FailSaveReviewer {
		return ErrMockSave
	}
	t.store.reviewers[r.ReviewerID] = *r
	return nil
}

func (t *memTx) AppendEntry(e *storage.LedgerEntry) error {
	if t.store.FailAppendEntry {
		return ErrMockAppend
	}
	if e.ID == "" {
		e.ID = storage.GenerateID()
	}
	t.store.entries = append(t.store.entries, *e)
	return nil
}

func (t *memTx) Balance(actorID string) (int, error) {
	return t.store.balanceLocked(actorID), nil
}
