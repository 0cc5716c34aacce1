// Package ratelimit provides the "has actor X exceeded N actions per window
// W" capability the engine's callers throttle with. Counters live in the
// shared database rather than process memory, so limits hold across
// instances.
package ratelimit

import (
	"context"
	"database/sql"
	"time"
)

// Limiter answers whether an actor may perform one more action.
type Limiter interface {
	// Allow records an attempt and reports whether it is within limit
	// actions per window.
	Allow(ctx context.Context, actorID, action string, limit int, window time.Duration) (bool, error)
}

// SQLLimiter is a fixed-window counter over the engine's database.
type SQLLimiter struct {
	db *sql.DB
}

// NewSQLLimiter shares the given database handle; the rate_limit_counters
// table is created by the storage schema.
func NewSQLLimiter(db *sql.DB) *SQLLimiter {
	return &SQLLimiter{db: db}
}

// Allow increments the counter for the current window and checks it against
// the limit. The increment is a single atomic upsert, so concurrent callers
// cannot both sneak under the limit.
func (l *SQLLimiter) Allow(ctx context.Context, actorID, action string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return false, nil
	}

	windowStart := time.Now().UTC().Truncate(window).Unix()

	var count int
	err := l.db.QueryRowContext(ctx, `
		INSERT INTO rate_limit_counters (actor_id, action, window_start, count)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(actor_id, action, window_start) DO UPDATE SET count = count + 1
		RETURNING count
	`, actorID, action, windowStart).Scan(&count)
	if err != nil {
		return false, err
	}

	return count <= limit, nil
}

// Prune deletes counters for windows that ended before cutoff. Callers run
// it periodically; correctness does not depend on it.
func (l *SQLLimiter) Prune(ctx context.Context, cutoff time.Time) error {
	_, err := l.db.ExecContext(ctx,
		`DELETE FROM rate_limit_counters WHERE window_start < ?`, cutoff.UTC().Unix())
	return err
}
