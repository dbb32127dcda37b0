// Package render rasterizes compressed text into fixed-size monospace
// images for vision-model consumption, in the style of optical context
// compression.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Config controls the rendered canvas and typography.
type Config struct {
	Width  int
	Height int

	// FontSize is the starting size; the renderer shrinks it in 0.5pt
	// steps down to MinFontSize until the text fits.
	FontSize    float64
	MinFontSize float64

	// LineSpacing multiplies the font size to give the line height.
	LineSpacing float64

	MarginX int
	MarginY int

	Background color.RGBA
	Foreground color.RGBA
}

// DefaultConfig returns a 1024x1024 white canvas with black text.
func DefaultConfig() Config {
	return Config{
		Width:       1024,
		Height:      1024,
		FontSize:    12.5,
		MinFontSize: 7.0,
		LineSpacing: 1.2,
		MarginX:     20,
		MarginY:     20,
		Background:  color.RGBA{255, 255, 255, 255},
		Foreground:  color.RGBA{0, 0, 0, 255},
	}
}

// TextTooLargeError reports text that cannot fit the canvas even at the
// minimum font size.
type TextTooLargeError struct {
	Lines    int
	MaxLines int
}

func (e *TextTooLargeError) Error() string {
	return fmt.Sprintf("render: text too large (%d lines, max %d)", e.Lines, e.MaxLines)
}

// Renderer rasterizes text with the embedded Go Mono face. The parsed
// font is shared; faces are built per call for the chosen size.
type Renderer struct {
	cfg  Config
	font *opentype.Font
}

// New creates a Renderer. The embedded font is fixed, so parsing is
// infallible for the shipped data.
func New(cfg Config) *Renderer {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		panic(fmt.Sprintf("render: parse embedded font: %v", err))
	}
	return &Renderer{cfg: cfg, font: f}
}

// RenderPNG renders text and encodes it as PNG.
func (r *Renderer) RenderPNG(text string) ([]byte, error) {
	img, err := r.rasterize(text)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderJPEG renders text and encodes it as JPEG at the given quality
// (1-100).
func (r *Renderer) RenderJPEG(text string, quality int) ([]byte, error) {
	img, err := r.rasterize(text)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("render: encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) rasterize(text string) (image.Image, error) {
	size, lines, err := r.fitText(text)
	if err != nil {
		return nil, err
	}

	face, err := r.face(size)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	img := image.NewRGBA(image.Rect(0, 0, r.cfg.Width, r.cfg.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.cfg.Background), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.cfg.Foreground),
		Face: face,
	}

	lineHeight := int(size * r.cfg.LineSpacing)
	ascent := face.Metrics().Ascent.Ceil()
	y := r.cfg.MarginY + ascent

	for _, line := range lines {
		if y >= r.cfg.Height {
			break
		}
		drawer.Dot = fixed.P(r.cfg.MarginX, y)
		drawer.DrawString(line)
		y += lineHeight
	}

	return img, nil
}

// fitText finds the largest font size at which the wrapped text fits the
// canvas, returning the size and the wrapped lines.
func (r *Renderer) fitText(text string) (float64, []string, error) {
	for size := r.cfg.FontSize; size >= r.cfg.MinFontSize; size -= 0.5 {
		face, err := r.face(size)
		if err != nil {
			return 0, nil, err
		}
		lines := r.wrap(text, face)
		face.Close()

		if len(lines) <= r.maxLines(size) {
			return size, lines, nil
		}
	}

	face, err := r.face(r.cfg.MinFontSize)
	if err != nil {
		return 0, nil, err
	}
	lines := r.wrap(text, face)
	face.Close()
	return 0, nil, &TextTooLargeError{Lines: len(lines), MaxLines: r.maxLines(r.cfg.MinFontSize)}
}

func (r *Renderer) face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("render: build face: %w", err)
	}
	return face, nil
}

func (r *Renderer) maxLines(size float64) int {
	lineHeight := int(size * r.cfg.LineSpacing)
	if lineHeight == 0 {
		return 0
	}
	return (r.cfg.Height - 2*r.cfg.MarginY) / lineHeight
}

// wrap breaks text into lines that fit the canvas width, splitting on
// explicit newlines and at the character where a line would overflow.
func (r *Renderer) wrap(text string, face font.Face) []string {
	available := fixed.I(r.cfg.Width - 2*r.cfg.MarginX)

	var lines []string
	var current []rune
	width := fixed.Int26_6(0)

	for _, ch := range text {
		if ch == '\n' {
			lines = append(lines, string(current))
			current = current[:0]
			width = 0
			continue
		}

		advance, ok := face.GlyphAdvance(ch)
		if !ok {
			advance, _ = face.GlyphAdvance('?')
		}

		if width+advance > available && len(current) > 0 {
			lines = append(lines, string(current))
			current = current[:0]
			width = 0
		}

		current = append(current, ch)
		width += advance
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	return lines
}
