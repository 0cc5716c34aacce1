package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrReviewerNotFound is returned by reads for reviewers with no record yet.
var ErrReviewerNotFound = errors.New("reviewer not found")

// Store handles SQLite persistence for reputation records and the credit
// ledger. All mutations go through Transact so the award pipeline and spends
// are atomic per actor.
type Store struct {
	db *sql.DB
}

// NewStore opens the database at dbPath and returns a ready store.
func NewStore(dbPath string) (*Store, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying handle so collaborators (e.g. the rate limiter)
// can share the same database file.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Transact runs fn inside a single database transaction. The transaction is
// rolled back unless fn returns nil; partial application of a multi-step
// mutation is therefore impossible.
func (s *Store) Transact(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&Tx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetReviewer reads a reviewer record outside any transaction.
func (s *Store) GetReviewer(ctx context.Context, reviewerID string) (*ReviewerRecord, error) {
	return scanReviewer(s.db.QueryRowContext(ctx, reviewerSelect+` WHERE reviewer_id = ?`, reviewerID))
}

// Balance returns the materialized credit balance for an actor. Actors with
// no ledger history have balance 0.
func (s *Store) Balance(ctx context.Context, actorID string) (int, error) {
	var balance int
	err := s.db.QueryRowContext(ctx,
		`SELECT balance FROM user_credits WHERE user_id = ?`, actorID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Entries returns an actor's ledger entries, most recent first.
func (s *Store) Entries(ctx context.Context, actorID string, limit int) ([]LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, actor_id, amount, type, source_id, description, created_at
		FROM credit_ledger
		WHERE actor_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, actorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LedgerEntry
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Amount, &e.Type, &e.SourceID, &e.Description, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecomputeBalance sums the ledger directly, bypassing the materialized
// balance. The ledger is the source of truth; this is used by integrity
// checks and tests.
func (s *Store) RecomputeBalance(ctx context.Context, actorID string) (int, error) {
	var sum sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT SUM(amount) FROM credit_ledger WHERE actor_id = ?`, actorID).Scan(&sum)
	if err != nil {
		return 0, err
	}
	return int(sum.Int64), nil
}

// Tx wraps a single database transaction with typed operations. Obtained
// only through Store.Transact.
type Tx struct {
	tx *sql.Tx
}

const reviewerSelect = `
	SELECT reviewer_id, quality_score, tier, status,
	       current_streak_days, longest_streak_days, COALESCE(last_judgment_date, ''),
	       total_judgments, consensus_total, consensus_matches,
	       helpfulness_sum, helpfulness_count, report_count,
	       response_minutes_sum, response_samples, created_at, last_active
	FROM reviewer_reputation`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReviewer(row rowScanner) (*ReviewerRecord, error) {
	var r ReviewerRecord
	err := row.Scan(
		&r.ReviewerID, &r.QualityScore, &r.Tier, &r.Status,
		&r.CurrentStreakDays, &r.LongestStreakDays, &r.LastJudgmentDate,
		&r.TotalJudgments, &r.ConsensusTotal, &r.ConsensusMatches,
		&r.HelpfulnessSum, &r.HelpfulnessCount, &r.ReportCount,
		&r.ResponseMinutesSum, &r.ResponseSamples, &r.CreatedAt, &r.LastActive,
	)
	if err == sql.ErrNoRows {
		return nil, ErrReviewerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Reviewer reads a reviewer record within the transaction. Returns
// ErrReviewerNotFound when no record exists yet.
func (t *Tx) Reviewer(reviewerID string) (*ReviewerRecord, error) {
	return scanReviewer(t.tx.QueryRow(reviewerSelect+` WHERE reviewer_id = ?`, reviewerID))
}

// SaveReviewer upserts a reviewer record.
func (t *Tx) SaveReviewer(r *ReviewerRecord) error {
	lastJudgment := sql.NullString{String: r.LastJudgmentDate, Valid: r.LastJudgmentDate != ""}

	_, err := t.tx.Exec(`
		INSERT INTO reviewer_reputation (
			reviewer_id, quality_score, tier, status,
			current_streak_days, longest_streak_days, last_judgment_date,
			total_judgments, consensus_total, consensus_matches,
			helpfulness_sum, helpfulness_count, report_count,
			response_minutes_sum, response_samples, created_at, last_active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(reviewer_id) DO UPDATE SET
			quality_score = excluded.quality_score,
			tier = excluded.tier,
			status = excluded.status,
			current_streak_days = excluded.current_streak_days,
			longest_streak_days = excluded.longest_streak_days,
			last_judgment_date = excluded.last_judgment_date,
			total_judgments = excluded.total_judgments,
			consensus_total = excluded.consensus_total,
			consensus_matches = excluded.consensus_matches,
			helpfulness_sum = excluded.helpfulness_sum,
			helpfulness_count = excluded.helpfulness_count,
			report_count = excluded.report_count,
			response_minutes_sum = excluded.response_minutes_sum,
			response_samples = excluded.response_samples,
			last_active = excluded.last_active
	`, r.ReviewerID, r.QualityScore, string(r.Tier), string(r.Status),
		r.CurrentStreakDays, r.LongestStreakDays, lastJudgment,
		r.TotalJudgments, r.ConsensusTotal, r.ConsensusMatches,
		r.HelpfulnessSum, r.HelpfulnessCount, r.ReportCount,
		r.ResponseMinutesSum, r.ResponseSamples, r.CreatedAt, r.LastActive)

	return err
}

// AppendEntry appends a ledger entry and updates the materialized balance in
// the same transaction. The schema-level balance check backstops overspends
// that slip past the caller's affordability check.
func (t *Tx) AppendEntry(e *LedgerEntry) error {
	if e.ID == "" {
		e.ID = GenerateID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := t.tx.Exec(`
		INSERT INTO credit_ledger (id, actor_id, amount, type, source_id, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.ActorID, e.Amount, e.Type, e.SourceID, e.Description, e.CreatedAt)
	if err != nil {
		return err
	}

	_, err = t.tx.Exec(`
		INSERT INTO user_credits (user_id, balance) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET balance = balance + excluded.balance
	`, e.ActorID, e.Amount)
	return err
}

// Balance returns the actor's materialized balance within the transaction.
func (t *Tx) Balance(actorID string) (int, error) {
	var balance int
	err := t.tx.QueryRow(`SELECT balance FROM user_credits WHERE user_id = ?`, actorID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}
