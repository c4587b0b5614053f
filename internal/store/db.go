package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// migrations are idempotent; Open re-runs all of them on every start.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS time_entries (
		id               TEXT PRIMARY KEY,
		position         INTEGER NOT NULL,
		week_beginning   TEXT NOT NULL,
		category         TEXT NOT NULL,
		client           TEXT NOT NULL DEFAULT '',
		hours            REAL NOT NULL,
		opportunity_id   TEXT NOT NULL DEFAULT '',
		comments         TEXT NOT NULL DEFAULT '',
		external_domains TEXT NOT NULL DEFAULT '',
		needs_review     INTEGER NOT NULL DEFAULT 0,
		is_autofilled    INTEGER NOT NULL DEFAULT 0,
		status           TEXT NOT NULL DEFAULT 'NEW',
		created_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_week ON time_entries(week_beginning)`,
}

// Open opens the preview database at the given path, creating the parent
// directory as needed. ":memory:" opens an in-memory database. WAL mode and
// foreign key enforcement are enabled and migrations run automatically.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
