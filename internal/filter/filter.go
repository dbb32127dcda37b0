// Package filter implements model-free statistical token filtering for
// prompt compression. It scores whitespace-split word tokens with five
// heuristic signals, pins protected spans and critical terms, selects a
// top-scoring subset sized to a target ratio, and reconstructs the
// selection in original order.
package filter

import (
	"math"
	"strings"
)

// scoreProtected is the "never remove" sentinel. Any token at or above
// criticalTier is an unconditional member of the selection, so the
// maximum finite value behaves like +inf without poisoning arithmetic.
const scoreProtected = math.MaxFloat64

// Config holds scoring weights and feature toggles. Weights are consumed
// as given and are not required to sum to 1.
type Config struct {
	// TargetRatio is the fraction of word tokens retained before gap
	// fill, in (0, 1].
	TargetRatio float64

	IDFWeight      float64
	PositionWeight float64
	POSWeight      float64
	EntityWeight   float64
	EntropyWeight  float64

	// EnableProtectionMasks toggles regex span detection.
	EnableProtectionMasks bool

	// EnableContextualStopwords toggles the neighbor-sensitive stopword
	// exceptions.
	EnableContextualStopwords bool

	PreserveNegations   bool
	PreserveComparators bool

	// DomainTerms are matched case-insensitively and pinned in the output.
	DomainTerms []string

	// MinGapBetweenCritical is the anchor-index distance above which the
	// gap-fill pass promotes one extra token.
	MinGapBetweenCritical int
}

// DefaultConfig returns the validated default configuration: 50% retention
// with the weight mix that measured best on the evaluation corpus.
func DefaultConfig() Config {
	return Config{
		TargetRatio:               0.5,
		IDFWeight:                 0.3,
		PositionWeight:            0.2,
		POSWeight:                 0.2,
		EntityWeight:              0.2,
		EntropyWeight:             0.1,
		EnableProtectionMasks:     true,
		EnableContextualStopwords: true,
		PreserveNegations:         true,
		PreserveComparators:       true,
		DomainTerms:               []string{"Vectorizer", "Synap", "UMICP", "Graphs"},
		MinGapBetweenCritical:     3,
	}
}

// Filter scores and selects tokens. It is read-only after construction
// and safe for concurrent use across independent inputs.
type Filter struct {
	cfg         Config
	domainTerms map[string]bool
}

// New creates a Filter. The regex machines are package-level and compiled
// once per process; the domain-term set is lowered here so per-call
// matching is a map lookup.
func New(cfg Config) *Filter {
	domain := make(map[string]bool, len(cfg.DomainTerms))
	for _, t := range cfg.DomainTerms {
		domain[strings.ToLower(t)] = true
	}
	return &Filter{cfg: cfg, domainTerms: domain}
}

// Config returns the filter's configuration.
func (f *Filter) Config() Config { return f.cfg }

// Compress returns the selected word tokens of text joined by single
// spaces, in original order. Inputs with no word tokens pass through
// unchanged.
func (f *Filter) Compress(text string) string {
	tokens := SplitWords(text)
	if len(tokens) == 0 {
		return text
	}

	scores := f.scoreTokens(text, tokens)
	kept := f.selectIndices(scores)

	parts := make([]string, len(kept))
	for i, idx := range kept {
		parts[i] = tokens[idx].Text
	}
	return strings.Join(parts, " ")
}

// scoreTokens fuses the five signal scores with the critical and
// protection overrides into one final score per token.
func (f *Filter) scoreTokens(text string, tokens []Token) []float64 {
	var spans []Span
	if f.cfg.EnableProtectionMasks {
		spans = DetectSpans(text)
	}

	idf := idfScores(tokens)
	n := len(tokens)

	scores := make([]float64, n)
	for i, tok := range tokens {
		if s, ok := f.criticalScore(tok.Text); ok {
			scores[i] = s
			continue
		}
		if overlapsAny(spans, tok.Start, tok.End) {
			scores[i] = scoreProtected
			continue
		}

		var prev, next string
		if i > 0 {
			prev = tokens[i-1].Text
		}
		if i+1 < n {
			next = tokens[i+1].Text
		}

		scores[i] = idf[i]*f.cfg.IDFWeight +
			positionScore(i, n)*f.cfg.PositionWeight +
			f.posScore(tok.Text, prev, next)*f.cfg.POSWeight +
			entityScore(tokens, i)*f.cfg.EntityWeight +
			entropyScore(tokens, i)*f.cfg.EntropyWeight
	}
	return scores
}
