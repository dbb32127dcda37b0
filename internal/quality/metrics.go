// Package quality measures how well compressed text preserves important
// information, without calling a model. Used only for after-the-fact
// evaluation; the compression pipeline never consults it.
package quality

import (
	"fmt"
	"strings"
	"unicode"
)

// Metrics is a model-free quality assessment of a compression.
type Metrics struct {
	// KeywordRetention is the fraction of important keywords preserved.
	KeywordRetention float64

	// EntityRetention is the fraction of named entities preserved.
	EntityRetention float64

	// VocabularyRatio is compressed vocabulary size / original vocabulary size.
	VocabularyRatio float64

	// InformationDensity is unique words / total words in the compressed text.
	InformationDensity float64

	// OverallScore is the weighted blend of the above.
	OverallScore float64
}

// metricStopWords is the reduced English set used only for keyword
// extraction here; the filter package owns the multilingual table.
var metricStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "was": true,
	"are": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "will": true, "would": true, "should": true, "could": true,
	"may": true, "might": true, "must": true, "can": true, "this": true,
	"that": true, "these": true, "those": true, "we": true, "they": true,
	"it": true,
}

// Calculate compares original and compressed text.
func Calculate(original, compressed string) Metrics {
	origWords := strings.Fields(original)
	compWords := strings.Fields(compressed)

	keywordRetention := retention(extractKeywords(origWords), extractKeywords(compWords))
	entityRetention := retention(extractEntities(origWords), extractEntities(compWords))

	origVocab := vocabulary(origWords)
	compVocab := vocabulary(compWords)

	denom := len(origVocab)
	if denom == 0 {
		denom = 1
	}
	vocabularyRatio := float64(len(compVocab)) / float64(denom)

	density := 0.0
	if len(compWords) > 0 {
		density = float64(len(compVocab)) / float64(len(compWords))
	}

	overall := keywordRetention*0.4 + entityRetention*0.3 + vocabularyRatio*0.2 + density*0.1

	return Metrics{
		KeywordRetention:   keywordRetention,
		EntityRetention:    entityRetention,
		VocabularyRatio:    vocabularyRatio,
		InformationDensity: density,
		OverallScore:       overall,
	}
}

func vocabulary(words []string) map[string]bool {
	vocab := make(map[string]bool, len(words))
	for _, w := range words {
		vocab[strings.ToLower(w)] = true
	}
	return vocab
}

// extractKeywords keeps non-stopwords that are long, capitalized, or
// compound-looking.
func extractKeywords(words []string) map[string]bool {
	keywords := make(map[string]bool)
	for _, w := range words {
		lower := strings.ToLower(w)
		if metricStopWords[lower] {
			continue
		}
		if len(w) > 5 || startsUpper(w) || strings.ContainsAny(w, "-_") {
			keywords[lower] = true
		}
	}
	return keywords
}

// extractEntities collects emails, URLs, acronyms, capitalized words, and
// adjacent capitalized pairs ("John Smith").
func extractEntities(words []string) map[string]bool {
	entities := make(map[string]bool)
	for i, w := range words {
		if strings.Contains(w, "@") || strings.HasPrefix(w, "http") {
			entities[strings.ToLower(w)] = true
		}

		if len(w) > 1 && isAcronym(w) {
			entities[w] = true
		}

		if startsUpper(w) && len(w) > 2 {
			if i+1 < len(words) && startsUpper(words[i+1]) {
				entities[w+" "+words[i+1]] = true
			}
			entities[w] = true
		}
	}
	return entities
}

func isAcronym(w string) bool {
	for _, r := range w {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func retention(original, compressed map[string]bool) float64 {
	if len(original) == 0 {
		return 1.0
	}
	preserved := 0
	for k := range original {
		if compressed[k] {
			preserved++
		}
	}
	return float64(preserved) / float64(len(original))
}

// Format renders the metrics as a human-readable block.
func (m Metrics) Format() string {
	return fmt.Sprintf(
		"Quality Metrics:\n"+
			"  Keyword Retention: %.1f%%\n"+
			"  Entity Retention:  %.1f%%\n"+
			"  Vocabulary Ratio:  %.1f%%\n"+
			"  Info Density:      %.3f\n"+
			"  Overall Score:     %.1f%%",
		m.KeywordRetention*100,
		m.EntityRetention*100,
		m.VocabularyRatio*100,
		m.InformationDensity,
		m.OverallScore*100,
	)
}
