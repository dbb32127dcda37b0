// Package db persists compression run history in SQLite.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// History is the run-history store backing the stats command and the
// batch/watch accounting.
type History struct {
	conn *sql.DB
}

// startupPragmas are applied to every freshly opened history database.
// WAL lets a watch daemon append while a stats invocation reads.
var startupPragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 5000",
}

// OpenHistory opens (or creates) the run-history database at path and
// applies migrations.
func OpenHistory(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("db: create history directory: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("db: resolve history path: %w", err)
	}

	conn, err := sql.Open("sqlite3", "file:"+absPath)
	if err != nil {
		return nil, fmt.Errorf("db: open history: %w", err)
	}

	// Run rows are tiny and writes are one-per-compression; a single
	// connection avoids writer contention between CLI invocations.
	conn.SetMaxOpenConns(1)

	for _, pragma := range startupPragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("db: %s: %w", pragma, err)
		}
	}

	if err := applyMigrations(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("db: apply migrations: %w", err)
	}

	return &History{conn: conn}, nil
}

// Close closes the database connection.
func (h *History) Close() error {
	return h.conn.Close()
}
