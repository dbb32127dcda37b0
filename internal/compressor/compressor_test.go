package compressor

import (
	"errors"
	"strings"
	"testing"
)

// wordCounter counts whitespace-split words, the reference counter for
// the end-to-end scenarios.
type wordCounter struct{}

func (wordCounter) CountTokens(text string) int { return len(strings.Fields(text)) }
func (wordCounter) Name() string                { return "words" }

// constantCounter reports the same count for every input, to force the
// negative-gain path.
type constantCounter struct{ n int }

func (c constantCounter) CountTokens(string) int { return c.n }
func (constantCounter) Name() string             { return "constant" }

func testInput() string {
	var sb strings.Builder
	for i := 0; i < 60; i++ {
		sb.WriteString("the pipeline removes low value words while keeping important content safe ")
	}
	return strings.TrimSpace(sb.String())
}

func TestCompress_Succeeds(t *testing.T) {
	comp := New(DefaultConfig(), wordCounter{})

	result, err := comp.Compress(testInput())
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	if result.Ratio >= 1.0 {
		t.Errorf("ratio %f, want < 1.0", result.Ratio)
	}
	if result.CompressedTokens >= result.OriginalTokens {
		t.Errorf("tokens %d -> %d, expected reduction", result.OriginalTokens, result.CompressedTokens)
	}
	if result.TokensRemoved != result.OriginalTokens-result.CompressedTokens {
		t.Error("TokensRemoved inconsistent")
	}
	if result.Format != FormatText {
		t.Error("default format should be text")
	}
	if result.ImageBytes != nil {
		t.Error("text format should carry no image bytes")
	}
}

func TestCompress_InputTooShortBytes(t *testing.T) {
	comp := New(DefaultConfig(), wordCounter{})

	_, err := comp.Compress("tiny input")
	var tooShort *InputTooShortError
	if !errors.As(err, &tooShort) {
		t.Fatalf("expected InputTooShortError, got %v", err)
	}
	if tooShort.Unit != "bytes" {
		t.Errorf("unit %q, want bytes", tooShort.Unit)
	}
	if tooShort.Minimum != DefaultConfig().MinInputBytes {
		t.Errorf("minimum %d", tooShort.Minimum)
	}
}

func TestCompress_InputTooShortTokens(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinInputBytes = 10
	cfg.MinInputTokens = 500
	comp := New(cfg, wordCounter{})

	_, err := comp.Compress(strings.Repeat("word ", 100))
	var tooShort *InputTooShortError
	if !errors.As(err, &tooShort) {
		t.Fatalf("expected InputTooShortError, got %v", err)
	}
	if tooShort.Unit != "tokens" {
		t.Errorf("unit %q, want tokens", tooShort.Unit)
	}
}

func TestCompress_NegativeGain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Filter.TargetRatio = 1.0
	comp := New(cfg, constantCounter{n: 500})

	// The constant counter reports compressed == original, so the gain
	// check must reject the run.
	_, err := comp.Compress(testInput())
	var noGain *NegativeGainError
	if !errors.As(err, &noGain) {
		t.Fatalf("expected NegativeGainError, got %v", err)
	}
	if noGain.Ratio < 1.0 {
		t.Errorf("ratio %f, want >= 1.0", noGain.Ratio)
	}
}

func TestCompress_NoPartialResultOnFailure(t *testing.T) {
	comp := New(DefaultConfig(), wordCounter{})

	result, err := comp.Compress("too small")
	if err == nil {
		t.Fatal("expected error")
	}
	if result != nil {
		t.Error("failed run must not return a result")
	}
}

func TestCompress_PNGFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = FormatPNG
	comp := New(cfg, wordCounter{})

	result, err := comp.Compress(testInput())
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if result.Format != FormatPNG {
		t.Error("format not propagated")
	}
	if len(result.ImageBytes) == 0 {
		t.Fatal("expected image bytes")
	}
	// PNG signature.
	sig := []byte{137, 80, 78, 71, 13, 10, 26, 10}
	for i, b := range sig {
		if result.ImageBytes[i] != b {
			t.Fatalf("byte %d = %d, want %d", i, result.ImageBytes[i], b)
		}
	}
}

func TestCompress_Deterministic(t *testing.T) {
	comp := New(DefaultConfig(), wordCounter{})
	input := testInput()

	first, err := comp.Compress(input)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	second, err := comp.Compress(input)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if first.Compressed != second.Compressed {
		t.Error("repeated runs differ")
	}
}
