package filter

import "strings"

// Score tiers for critical terms. Domain terms get scoreProtected and are
// pinned like protected spans; negations and comparators outrank modals.
const (
	criticalNegation   = 10.0
	criticalComparator = 10.0
	criticalModal      = 5.0

	// criticalTier is the threshold at or above which a token is an
	// unconditional member of the selection.
	criticalTier = 5.0
)

// negationWords flip the meaning of a sentence; dropping one inverts the
// instruction.
var negationWords = map[string]bool{
	"no": true, "not": true, "never": true, "none": true, "nothing": true,
	"neither": true, "nor": true, "cannot": true, "can't": true,
	"don't": true, "doesn't": true, "didn't": true, "won't": true,
	"wouldn't": true, "shouldn't": true, "couldn't": true,
	"isn't": true, "aren't": true, "wasn't": true, "weren't": true,
	"without": true,
}

// comparatorTokens are matched case-sensitively and exactly.
var comparatorTokens = map[string]bool{
	"!=": true, "!==": true, "<=": true, ">=": true,
	"<": true, ">": true, "==": true, "===": true, "!": true,
}

// modalWords qualify or bound an instruction.
var modalWords = map[string]bool{
	"only": true, "except": true, "must": true, "should": true,
	"may": true, "might": true, "at": true, "least": true, "most": true,
}

// criticalScore returns the override score for a token, if any.
// Priority: domain terms, negations, comparators, modals.
func (f *Filter) criticalScore(tok string) (float64, bool) {
	lower := strings.ToLower(tok)

	if f.domainTerms[lower] {
		return scoreProtected, true
	}
	if f.cfg.PreserveNegations && negationWords[lower] {
		return criticalNegation, true
	}
	if f.cfg.PreserveComparators && comparatorTokens[tok] {
		return criticalComparator, true
	}
	if modalWords[lower] {
		return criticalModal, true
	}
	return 0, false
}
