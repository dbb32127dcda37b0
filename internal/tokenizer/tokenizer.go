// Package tokenizer provides token counting for compression accounting.
// Counts feed the size gating and the reported ratio only; selection
// always operates on whitespace-split word tokens.
package tokenizer

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Tokenizer counts tokens the way the downstream model bills them.
type Tokenizer interface {
	// CountTokens returns a non-negative token count for text.
	CountTokens(text string) int

	// Name identifies the tokenizer for stats output.
	Name() string
}

// Tiktoken counts with the cl100k_base encoding (used by GPT-4 and a good
// approximation for Claude).
type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

// NewTiktoken creates a Tiktoken counter.
func NewTiktoken() (*Tiktoken, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("tokenizer: get encoding: %w", err)
	}
	return &Tiktoken{enc: enc}, nil
}

// CountTokens returns the number of cl100k_base tokens in text.
func (t *Tiktoken) CountTokens(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}

// Name returns the encoding name.
func (t *Tiktoken) Name() string { return "cl100k_base" }

// Heuristic estimates tokens as max(1, ceil(bytes/4)), the usual
// rule of thumb for English prose. It needs no encoding data files.
type Heuristic struct{}

// CountTokens returns the byte-length estimate for text.
func (Heuristic) CountTokens(text string) int {
	n := (len(text) + 3) / 4
	if n < 1 {
		n = 1
	}
	return n
}

// Name returns the estimator name.
func (Heuristic) Name() string { return "heuristic" }

// Default returns the tiktoken counter, falling back to the heuristic
// when the encoding cannot be loaded.
func Default() Tokenizer {
	if t, err := NewTiktoken(); err == nil {
		return t
	}
	return Heuristic{}
}
