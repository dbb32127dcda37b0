// Package compressor drives the compression pipeline: size gating,
// statistical filtering, token accounting, gain gating, and optional
// rasterization of the compressed text for vision models.
package compressor

import (
	"github.com/hivellm/compression-prompt/internal/filter"
	"github.com/hivellm/compression-prompt/internal/render"
	"github.com/hivellm/compression-prompt/internal/tokenizer"
)

// OutputFormat selects the representation of the compressed prompt.
type OutputFormat int

const (
	FormatText OutputFormat = iota
	FormatPNG
	FormatJPEG
)

// Config holds pipeline settings on top of the filter configuration.
type Config struct {
	Filter filter.Config

	// MinInputTokens rejects inputs below this estimated token count.
	MinInputTokens int

	// MinInputBytes rejects inputs below this byte length.
	MinInputBytes int

	Format OutputFormat

	// JPEGQuality applies only to FormatJPEG (1-100).
	JPEGQuality int
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Filter:         filter.DefaultConfig(),
		MinInputTokens: 100,
		MinInputBytes:  1024,
		Format:         FormatText,
		JPEGQuality:    85,
	}
}

// Result is the outcome of one successful compression.
type Result struct {
	// Compressed is the whitespace-joined subsequence of input word tokens.
	Compressed string

	OriginalTokens   int
	CompressedTokens int

	// Ratio is compressed/original per the external tokenizer, < 1.0.
	Ratio float64

	TokensRemoved int

	Format OutputFormat

	// ImageBytes holds the encoded image when Format is PNG or JPEG.
	ImageBytes []byte
}

// Compressor runs the pipeline. It holds no per-call state and is safe
// for concurrent use.
type Compressor struct {
	cfg      Config
	filter   *filter.Filter
	counter  tokenizer.Tokenizer
	renderer *render.Renderer
}

// New creates a Compressor with the given config and token counter.
func New(cfg Config, counter tokenizer.Tokenizer) *Compressor {
	return &Compressor{
		cfg:      cfg,
		filter:   filter.New(cfg.Filter),
		counter:  counter,
		renderer: render.New(render.DefaultConfig()),
	}
}

// Compress validates input, filters it, and returns the result with token
// accounting. Returns *InputTooShortError or *NegativeGainError on the
// text path, *RenderError only when an image format is requested.
func (c *Compressor) Compress(input string) (*Result, error) {
	if len(input) < c.cfg.MinInputBytes {
		return nil, &InputTooShortError{Size: len(input), Minimum: c.cfg.MinInputBytes, Unit: "bytes"}
	}

	originalTokens := c.counter.CountTokens(input)
	if originalTokens < c.cfg.MinInputTokens {
		return nil, &InputTooShortError{Size: originalTokens, Minimum: c.cfg.MinInputTokens, Unit: "tokens"}
	}

	compressed := c.filter.Compress(input)

	compressedTokens := c.counter.CountTokens(compressed)
	ratio := float64(compressedTokens) / float64(originalTokens)
	if ratio >= 1.0 {
		return nil, &NegativeGainError{Ratio: ratio}
	}

	result := &Result{
		Compressed:       compressed,
		OriginalTokens:   originalTokens,
		CompressedTokens: compressedTokens,
		Ratio:            ratio,
		TokensRemoved:    originalTokens - compressedTokens,
		Format:           c.cfg.Format,
	}

	switch c.cfg.Format {
	case FormatPNG:
		img, err := c.renderer.RenderPNG(compressed)
		if err != nil {
			return nil, &RenderError{Cause: err}
		}
		result.ImageBytes = img
	case FormatJPEG:
		img, err := c.renderer.RenderJPEG(compressed, c.cfg.JPEGQuality)
		if err != nil {
			return nil, &RenderError{Cause: err}
		}
		result.ImageBytes = img
	}

	return result, nil
}
