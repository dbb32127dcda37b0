package filter

import (
	"regexp"
	"strings"
)

// SpanKind identifies which pattern produced a protected span.
type SpanKind int

const (
	SpanCodeBlock SpanKind = iota
	SpanJSONBlock
	SpanPath
	SpanIdentifier
	SpanHashOrNumber
	SpanBracket
)

// Span is a byte range of the input that must never be removed.
// Spans from different patterns may overlap; only the union matters.
type Span struct {
	Start int
	End   int
	Kind  SpanKind
}

type protectPattern struct {
	re   *regexp.Regexp
	kind SpanKind

	// requireUnderscore filters matches of the snake_case pattern, which
	// RE2 cannot express with a lookahead.
	requireUnderscore bool
}

// protectPatterns is compiled once at package init; the pattern set is
// fixed, so compilation is infallible.
var protectPatterns = []protectPattern{
	// Triple-backtick fenced code, non-greedy, dotall.
	{re: regexp.MustCompile("(?s)```.*?```"), kind: SpanCodeBlock},

	// {...} containing at least one ':' and no nested '}'.
	{re: regexp.MustCompile(`\{[^}]*:[^}]*\}`), kind: SpanJSONBlock},

	// URLs with an explicit scheme.
	{re: regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.-]*://\S+`), kind: SpanPath},

	// Slash- or backslash-separated paths ending in a 1-5 char extension.
	{re: regexp.MustCompile(`[\w.~-]*(?:[/\\][\w.~-]+)+\.[A-Za-z0-9]{1,5}`), kind: SpanPath},

	// CamelCase identifiers with two capitalized humps (ParseRequest). The
	// match starts at an uppercase letter, so parseRequest is not matched.
	{re: regexp.MustCompile(`[A-Z][a-z0-9]+[A-Z][A-Za-z0-9]+`), kind: SpanIdentifier},

	// snake_case identifiers (must contain an underscore).
	{re: regexp.MustCompile(`[a-z_][a-z0-9_]{2,}`), kind: SpanIdentifier, requireUnderscore: true},

	// UPPER_SNAKE identifiers.
	{re: regexp.MustCompile(`[A-Z][A-Z0-9_]+`), kind: SpanIdentifier},

	// Hex runs of 7+ chars (hashes) and decimal runs of 3+ digits.
	{re: regexp.MustCompile(`[0-9a-fA-F]{7,}`), kind: SpanHashOrNumber},
	{re: regexp.MustCompile(`[0-9]{3,}`), kind: SpanHashOrNumber},

	// Bracketed substrings without the matching closer inside.
	{re: regexp.MustCompile(`\{[^}]*\}`), kind: SpanBracket},
	{re: regexp.MustCompile(`\[[^\]]*\]`), kind: SpanBracket},
	{re: regexp.MustCompile(`\([^)]*\)`), kind: SpanBracket},
}

// DetectSpans scans text with the fixed pattern set and returns every
// matching byte range. Duplicates and overlaps are kept as-is; the
// overlap test against tokens happens at fusion time.
func DetectSpans(text string) []Span {
	var spans []Span
	for _, p := range protectPatterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			if p.requireUnderscore && !strings.Contains(text[loc[0]:loc[1]], "_") {
				continue
			}
			spans = append(spans, Span{Start: loc[0], End: loc[1], Kind: p.kind})
		}
	}
	return spans
}

// overlapsAny reports whether the token byte range [start,end) has a
// non-empty overlap with any span.
func overlapsAny(spans []Span, start, end int) bool {
	for _, s := range spans {
		if start < s.End && end > s.Start {
			return true
		}
	}
	return false
}
