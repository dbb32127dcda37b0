package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL migration statements.
// Each entry is applied once in order. New migrations are appended at the end.
var migrations = []string{
	// Migration 0: initial schema
	`CREATE TABLE IF NOT EXISTS runs (
		id                TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
		source            TEXT NOT NULL,
		original_bytes    INTEGER NOT NULL,
		compressed_bytes  INTEGER NOT NULL,
		original_tokens   INTEGER NOT NULL,
		compressed_tokens INTEGER NOT NULL,
		ratio             REAL NOT NULL,
		target_ratio      REAL NOT NULL,
		quality_score     REAL,
		format            TEXT NOT NULL DEFAULT 'text',
		created_at        DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	// Migrations 1 and 2: lookup indexes
	`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_source  ON runs(source)`,
}

// applyMigrations runs any migrations that have not yet been applied.
func applyMigrations(conn *sql.DB) error {
	// Ensure the migration tracking table exists first.
	if _, err := conn.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for i, stmt := range migrations {
		var count int
		row := conn.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, i)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("check migration %d: %w", i, err)
		}
		if count > 0 {
			continue
		}

		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration %d: %w", i, err)
		}

		if _, err := conn.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, i); err != nil {
			return fmt.Errorf("record migration %d: %w", i, err)
		}
	}

	return nil
}
