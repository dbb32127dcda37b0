// Package eval scores compression fidelity with an LLM judge: the model
// sees the original and the compressed text and rates how much of the
// original's actionable content survives.
package eval

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hivellm/compression-prompt/internal/adapter"
)

const judgeSystemPrompt = `You are evaluating a prompt compression system.
You will receive an ORIGINAL text and a COMPRESSED version of it.
The compressed version drops low-value words but must keep identifiers,
code, numbers, negations, and domain terms intact.

Rate how faithfully the compressed version preserves the original's
meaning and actionable content on a scale from 0 to 100, where 100 means
a reader could act on the compressed text exactly as on the original.

Reply with the numeric score on the first line, then one short paragraph
of justification.`

// Verdict is the judge's assessment of one compression.
type Verdict struct {
	// Score is the fidelity rating in [0, 100].
	Score int

	// Justification is the judge's explanation.
	Justification string
}

// Evaluator drives the judge model.
type Evaluator struct {
	llm   adapter.LLMAdapter
	model string
}

// New creates an Evaluator. model may be empty to use the adapter default.
func New(llm adapter.LLMAdapter, model string) *Evaluator {
	return &Evaluator{llm: llm, model: model}
}

// Judge asks the model to rate the compression of original into compressed.
func (e *Evaluator) Judge(ctx context.Context, original, compressed string) (Verdict, error) {
	resp, err := e.llm.Complete(ctx, adapter.CompletionRequest{
		SystemPrompt: judgeSystemPrompt,
		UserMessage:  BuildJudgePrompt(original, compressed),
		Model:        e.model,
		MaxTokens:    512,
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("eval: judge: %w", err)
	}
	return ParseVerdict(resp)
}

// BuildJudgePrompt formats the A/B comparison message.
func BuildJudgePrompt(original, compressed string) string {
	var sb strings.Builder
	sb.WriteString("ORIGINAL:\n<<<\n")
	sb.WriteString(original)
	sb.WriteString("\n>>>\n\nCOMPRESSED:\n<<<\n")
	sb.WriteString(compressed)
	sb.WriteString("\n>>>\n")
	return sb.String()
}

var scoreRe = regexp.MustCompile(`\d{1,3}`)

// ParseVerdict extracts the numeric score from the judge's reply. The
// first number in the reply is taken; scores above 100 are clamped.
func ParseVerdict(resp string) (Verdict, error) {
	m := scoreRe.FindString(resp)
	if m == "" {
		return Verdict{}, fmt.Errorf("eval: no score in judge reply %q", firstLine(resp))
	}

	score, err := strconv.Atoi(m)
	if err != nil {
		return Verdict{}, fmt.Errorf("eval: parse score: %w", err)
	}
	if score > 100 {
		score = 100
	}

	justification := strings.TrimSpace(resp)
	if i := strings.IndexByte(justification, '\n'); i >= 0 {
		justification = strings.TrimSpace(justification[i+1:])
	}

	return Verdict{Score: score, Justification: justification}, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
