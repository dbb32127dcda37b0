package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Run is one recorded compression.
type Run struct {
	ID               string
	Source           string
	OriginalBytes    int
	CompressedBytes  int
	OriginalTokens   int
	CompressedTokens int
	Ratio            float64
	TargetRatio      float64
	QualityScore     sql.NullFloat64
	Format           string
	CreatedAt        time.Time
}

// Summary aggregates the run history.
type Summary struct {
	RunCount        int
	TokensSaved     int
	AvgRatio        float64
	AvgQualityScore sql.NullFloat64
	LastRunAt       sql.NullTime
}

// InsertRun records a compression run and returns its ID.
func (h *History) InsertRun(r Run) (string, error) {
	row := h.conn.QueryRow(
		`INSERT INTO runs (source, original_bytes, compressed_bytes,
			original_tokens, compressed_tokens, ratio, target_ratio,
			quality_score, format)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`,
		r.Source, r.OriginalBytes, r.CompressedBytes,
		r.OriginalTokens, r.CompressedTokens, r.Ratio, r.TargetRatio,
		r.QualityScore, r.Format,
	)

	var id string
	if err := row.Scan(&id); err != nil {
		return "", fmt.Errorf("db: insert run: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (h *History) ListRuns(limit int) ([]Run, error) {
	rows, err := h.conn.Query(
		`SELECT id, source, original_bytes, compressed_bytes,
			original_tokens, compressed_tokens, ratio, target_ratio,
			quality_score, format, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("db: list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Source, &r.OriginalBytes, &r.CompressedBytes,
			&r.OriginalTokens, &r.CompressedTokens, &r.Ratio, &r.TargetRatio,
			&r.QualityScore, &r.Format, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("db: scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Summarize aggregates all recorded runs.
func (h *History) Summarize() (Summary, error) {
	var s Summary
	// MAX() drops the column's DATETIME type, so the driver returns text.
	var lastRun sql.NullString
	row := h.conn.QueryRow(
		`SELECT COUNT(*),
			COALESCE(SUM(original_tokens - compressed_tokens), 0),
			COALESCE(AVG(ratio), 0),
			AVG(quality_score),
			MAX(created_at)
		 FROM runs`)
	if err := row.Scan(&s.RunCount, &s.TokensSaved, &s.AvgRatio,
		&s.AvgQualityScore, &lastRun); err != nil {
		return s, fmt.Errorf("db: summarize: %w", err)
	}
	if lastRun.Valid {
		t, err := time.Parse("2006-01-02 15:04:05", lastRun.String)
		if err != nil {
			return s, fmt.Errorf("db: summarize: parse last run time: %w", err)
		}
		s.LastRunAt = sql.NullTime{Time: t, Valid: true}
	}
	return s, nil
}
