// Package sqlite provides SQLite-based persistent storage for Stride.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Reward aggregate: key-value store for the scalar fields
		// (streak, xp, level, coins, last activity).
		`CREATE TABLE IF NOT EXISTS reward_state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Unlocked achievements, append-only.
		`CREATE TABLE IF NOT EXISTS achievements (
			id          TEXT PRIMARY KEY,
			unlocked_at INTEGER NOT NULL
		)`,

		// Idempotency ledger for externally-sourced events.
		`CREATE TABLE IF NOT EXISTS processed_sources (
			source_id    TEXT PRIMARY KEY,
			processed_at INTEGER NOT NULL
		)`,

		// Per-day activity journal: one row per (day, activity type),
		// backing the aggregate day counters and the in-app duplicate
		// policy check.
		`CREATE TABLE IF NOT EXISTS activity_days (
			day      TEXT NOT NULL,
			activity TEXT NOT NULL,
			in_app   BOOLEAN NOT NULL DEFAULT 0,
			PRIMARY KEY (day, activity)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_days_day ON activity_days(day)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// setState stores a reward state key-value pair.
func (d *DB) setState(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO reward_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// getState retrieves a reward state value, "" when the key is unset.
func (d *DB) getState(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM reward_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}
