package filter

import (
	"math"
	"strings"
)

// idfScores builds a frequency map over exact-case token strings and
// scores each token ln(N/f). The token itself is always counted, so f >= 1.
func idfScores(tokens []Token) []float64 {
	freq := make(map[string]int, len(tokens))
	for _, t := range tokens {
		freq[t.Text]++
	}

	n := float64(len(tokens))
	scores := make([]float64, len(tokens))
	for i, t := range tokens {
		scores[i] = math.Log(n / float64(freq[t.Text]))
	}
	return scores
}

// positionScore is U-shaped: document start and end matter most.
func positionScore(index, n int) float64 {
	p := float64(index) / float64(n)
	switch {
	case p < 0.1 || p > 0.9:
		return 1.0
	case p < 0.2 || p > 0.8:
		return 0.7
	default:
		return 0.3
	}
}

// entityScore detects named-entity shapes: capitalization, titles,
// emails/URLs, acronyms. Clamped to 1.0.
func entityScore(tokens []Token, i int) float64 {
	tok := tokens[i].Text
	score := 0.0

	if startsUpper(tok) {
		score += 0.3
	}
	if i > 0 {
		prev := strings.ToLower(tokens[i-1].Text)
		if strings.HasPrefix(prev, "mr.") || strings.HasPrefix(prev, "dr.") {
			score += 0.5
		}
	}
	if strings.Contains(tok, "@") || strings.HasPrefix(tok, "http") {
		score += 0.6
	}
	if len(tok) > 1 && tok == strings.ToUpper(tok) {
		score += 0.4
	}

	return math.Min(score, 1.0)
}

// entropyWindowRadius bounds the local vocabulary-diversity window.
const entropyWindowRadius = 5

// entropyScore is the distinct-token ratio in the window around i,
// inclusive of the center token.
func entropyScore(tokens []Token, i int) float64 {
	start := i - entropyWindowRadius
	if start < 0 {
		start = 0
	}
	end := i + entropyWindowRadius
	if end > len(tokens) {
		end = len(tokens)
	}

	distinct := make(map[string]bool, end-start)
	for _, t := range tokens[start:end] {
		distinct[t.Text] = true
	}
	return float64(len(distinct)) / float64(end-start)
}
