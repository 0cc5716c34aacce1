package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (or creates) the SQLite database backing the engine and applies
// the schema. Write transactions are opened immediate so concurrent mutators
// for the same actor serialize instead of failing mid-transaction.
func Open(dbPath string) (*sql.DB, error) {
	// Expand ~ in path
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_fk=1&_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

func migrate(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS reviewer_reputation (
			reviewer_id TEXT PRIMARY KEY,
			quality_score INTEGER NOT NULL DEFAULT 0,
			tier TEXT NOT NULL DEFAULT 'new',
			status TEXT NOT NULL DEFAULT 'active',
			current_streak_days INTEGER NOT NULL DEFAULT 0,
			longest_streak_days INTEGER NOT NULL DEFAULT 0,
			last_judgment_date TEXT,
			total_judgments INTEGER NOT NULL DEFAULT 0,
			consensus_total INTEGER NOT NULL DEFAULT 0,
			consensus_matches INTEGER NOT NULL DEFAULT 0,
			helpfulness_sum REAL NOT NULL DEFAULT 0,
			helpfulness_count INTEGER NOT NULL DEFAULT 0,
			report_count INTEGER NOT NULL DEFAULT 0,
			response_minutes_sum REAL NOT NULL DEFAULT 0,
			response_samples INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			last_active DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS credit_ledger (
			id TEXT PRIMARY KEY,
			actor_id TEXT NOT NULL,
			amount INTEGER NOT NULL,
			type TEXT NOT NULL,
			source_id TEXT,
			description TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS user_credits (
			user_id TEXT PRIMARY KEY,
			balance INTEGER NOT NULL DEFAULT 0 CHECK (balance >= 0)
		);

		CREATE TABLE IF NOT EXISTS rate_limit_counters (
			actor_id TEXT NOT NULL,
			action TEXT NOT NULL,
			window_start INTEGER NOT NULL,
			count INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (actor_id, action, window_start)
		);

		CREATE INDEX IF NOT EXISTS idx_ledger_actor ON credit_ledger(actor_id);
		CREATE INDEX IF NOT EXISTS idx_ledger_source ON credit_ledger(source_id);
		CREATE INDEX IF NOT EXISTS idx_reputation_status ON reviewer_reputation(status);
	`

	_, err := db.Exec(schema)
	return err
}
