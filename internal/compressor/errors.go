package compressor

import "fmt"

// InputTooShortError reports an input that failed size gating. Callers
// typically recover by passing the input through unchanged.
type InputTooShortError struct {
	Size    int
	Minimum int
	Unit    string // "bytes" or "tokens"
}

func (e *InputTooShortError) Error() string {
	return fmt.Sprintf("compressor: input too short (%d %s, minimum %d)", e.Size, e.Unit, e.Minimum)
}

// NegativeGainError reports that the compressed representation would be
// as large as or larger than the original, per the external tokenizer.
type NegativeGainError struct {
	Ratio float64
}

func (e *NegativeGainError) Error() string {
	return fmt.Sprintf("compressor: ratio %.2f >= 1.0, compression would not shrink input", e.Ratio)
}

// RenderError wraps a failure on the image-output path. It never surfaces
// from the text pipeline.
type RenderError struct {
	Cause error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("compressor: render image: %v", e.Cause)
}

func (e *RenderError) Unwrap() error { return e.Cause }
