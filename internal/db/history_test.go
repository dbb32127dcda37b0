package db

import (
	"path/filepath"
	"testing"
)

func TestOpenHistory_CreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	history, err := OpenHistory(path)
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	defer history.Close()

	if err := history.conn.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestOpenHistory_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "nested", "history.db")
	history, err := OpenHistory(path)
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	defer history.Close()
}

func TestOpenHistory_TablesExist(t *testing.T) {
	history := openTestDB(t)

	for _, table := range []string{"runs", "schema_migrations"} {
		var name string
		row := history.conn.QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table)
		if err := row.Scan(&name); err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestOpenHistory_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	history, err := OpenHistory(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	history.Close()

	// Migrations must be idempotent across reopens.
	history, err = OpenHistory(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	history.Close()
}
