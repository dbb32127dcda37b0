package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *History {
	t.Helper()
	database, err := OpenHistory(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func sampleRun(source string) Run {
	return Run{
		Source:           source,
		OriginalBytes:    4000,
		CompressedBytes:  2100,
		OriginalTokens:   1000,
		CompressedTokens: 520,
		Ratio:            0.52,
		TargetRatio:      0.5,
		QualityScore:     sql.NullFloat64{Float64: 0.89, Valid: true},
		Format:           "text",
	}
}

func TestInsertRun_ReturnsID(t *testing.T) {
	database := openTestDB(t)

	id, err := database.InsertRun(sampleRun("a.txt"))
	if err != nil {
		t.Fatalf("InsertRun: %v", err)
	}
	if id == "" {
		t.Error("empty id")
	}
}

func TestListRuns_RespectsLimit(t *testing.T) {
	database := openTestDB(t)

	for _, src := range []string{"a.txt", "b.txt", "c.txt"} {
		if _, err := database.InsertRun(sampleRun(src)); err != nil {
			t.Fatalf("InsertRun: %v", err)
		}
	}

	runs, err := database.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
}

func TestListRuns_Fields(t *testing.T) {
	database := openTestDB(t)

	if _, err := database.InsertRun(sampleRun("doc.md")); err != nil {
		t.Fatalf("InsertRun: %v", err)
	}

	runs, err := database.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs", len(runs))
	}

	r := runs[0]
	if r.Source != "doc.md" || r.OriginalTokens != 1000 || r.CompressedTokens != 520 {
		t.Errorf("round-trip mismatch: %+v", r)
	}
	if !r.QualityScore.Valid || r.QualityScore.Float64 != 0.89 {
		t.Errorf("quality score %+v", r.QualityScore)
	}
	if r.CreatedAt.IsZero() {
		t.Error("created_at not populated")
	}
}

func TestSummarize(t *testing.T) {
	database := openTestDB(t)

	summary, err := database.Summarize()
	if err != nil {
		t.Fatalf("Summarize empty: %v", err)
	}
	if summary.RunCount != 0 || summary.TokensSaved != 0 {
		t.Errorf("empty summary: %+v", summary)
	}

	for i := 0; i < 3; i++ {
		if _, err := database.InsertRun(sampleRun("x.txt")); err != nil {
			t.Fatalf("InsertRun: %v", err)
		}
	}

	summary, err = database.Summarize()
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.RunCount != 3 {
		t.Errorf("run count %d", summary.RunCount)
	}
	if summary.TokensSaved != 3*480 {
		t.Errorf("tokens saved %d", summary.TokensSaved)
	}
	if !summary.LastRunAt.Valid {
		t.Error("last run timestamp missing")
	}
}
