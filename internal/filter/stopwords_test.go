package filter

import "testing"

func TestPosScore_Base(t *testing.T) {
	f := New(DefaultConfig())

	cases := []struct {
		tok  string
		want float64
	}{
		{"the", 0.1},       // stopword
		{"Server", 1.0},    // starts uppercase
		{"database", 0.7},  // long word
		{"query", 0.5},     // regular word
		{"el", 0.1},        // Spanish stopword
		{"der", 0.1},       // German stopword
		{"の", 0.1},         // Japanese particle
	}
	for _, c := range cases {
		if got := f.posScore(c.tok, "", ""); got != c.want {
			t.Errorf("posScore(%q) = %f, want %f", c.tok, got, c.want)
		}
	}
}

func TestPosScore_StopwordCaseInsensitive(t *testing.T) {
	f := New(DefaultConfig())
	if got := f.posScore("The", "", ""); got != 0.1 {
		t.Errorf("posScore(The) = %f, want stopword score 0.1", got)
	}
}

func TestPosScore_ContextualTo(t *testing.T) {
	f := New(DefaultConfig())

	if got := f.posScore("to", "how", "install"); got != 0.7 {
		t.Errorf("'how to' should keep 'to': got %f", got)
	}
	if got := f.posScore("to", "went", "town"); got != 0.1 {
		t.Errorf("'went to' should drop 'to': got %f", got)
	}
}

func TestPosScore_ContextualPreposition(t *testing.T) {
	f := New(DefaultConfig())

	cases := []struct {
		tok, next string
		want      float64
	}{
		{"in", "src/main.go", 0.7},  // next contains a slash
		{"on", "Linux", 0.7},        // next starts uppercase
		{"at", "run_loop", 0.7},     // next contains underscore
		{"in", "file.txt", 0.7},     // next contains a dot
		{"in", "town", 0.1},
	}
	for _, c := range cases {
		if got := f.posScore(c.tok, "", c.next); got != c.want {
			t.Errorf("posScore(%q next %q) = %f, want %f", c.tok, c.next, got, c.want)
		}
	}
}

func TestPosScore_ContextualCopula(t *testing.T) {
	f := New(DefaultConfig())

	if got := f.posScore("is", "Server", "down"); got != 0.7 {
		t.Errorf("'Server is' should keep 'is': got %f", got)
	}
	if got := f.posScore("is", "database", "down"); got != 0.7 {
		t.Errorf("long prev should keep 'is': got %f", got)
	}
	if got := f.posScore("is", "max_size", "zero"); got != 0.7 {
		t.Errorf("underscore prev should keep 'is': got %f", got)
	}
	if got := f.posScore("is", "it", "ok"); got != 0.1 {
		t.Errorf("'it is' should drop 'is': got %f", got)
	}
}

func TestPosScore_ContextualConjunction(t *testing.T) {
	f := New(DefaultConfig())

	if got := f.posScore("and", "Redis", "Postgres"); got != 0.7 {
		t.Errorf("conjunction between proper nouns kept: got %f", got)
	}
	if got := f.posScore("and", "Redis", "it"); got != 0.1 {
		t.Errorf("conjunction needs both sides important: got %f", got)
	}
}

func TestPosScore_ContextualDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableContextualStopwords = false
	f := New(cfg)

	if got := f.posScore("to", "how", "install"); got != 0.1 {
		t.Errorf("exceptions disabled: got %f, want 0.1", got)
	}
}
