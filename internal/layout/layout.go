// Package layout reconstructs reading-order text lines from the unordered,
// position-tagged tokens a recognition engine emits. Tokens are bucketed into
// quantized vertical bands and sorted left-to-right within each band; the
// quantization tolerates vertical jitter without assuming a fixed row pitch.
package layout

import (
	"math"
	"sort"
	"strings"
)

// Point is a coordinate in the recognized image, origin top-left.
type Point struct {
	X float64
	Y float64
}

// Quad is the four-corner bounding region of a recognized token.
type Quad [4]Point

// Center returns the mean of the four corners.
func (q Quad) Center() Point {
	var cx, cy float64
	for _, p := range q {
		cx += p.X
		cy += p.Y
	}
	return Point{X: cx / 4, Y: cy / 4}
}

// Token is a single text fragment produced by a recognition engine.
type Token struct {
	Text       string
	Bounds     Quad
	Confidence float64 // 0..1
}

// Item is one token placed inside a reconstructed line, ordered by X.
type Item struct {
	Text       string  `json:"text"`
	X          float64 `json:"x_pos"`
	Confidence float64 `json:"conf"`
}

// Line is a reconstructed reading-order line. Lines are emitted in ascending
// Key order and are immutable once built.
type Line struct {
	Text  string  `json:"text"`
	Key   float64 `json:"y_pos"` // quantized vertical band
	Items []Item  `json:"items"`
}

// Options control line reconstruction.
type Options struct {
	// ConfidenceFloor drops tokens with confidence <= this value.
	ConfidenceFloor float64
	// BandHeight is the vertical quantization step used to group tokens
	// that belong to the same visual line.
	BandHeight float64
}

// DefaultOptions match the tuning the recognition pipeline was calibrated
// against.
func DefaultOptions() Options {
	return Options{ConfidenceFloor: 0.2, BandHeight: 15}
}

// Reconstruct groups tokens into ordered lines. Tokens at or below the
// confidence floor are discarded. Two tokens with near-equal centers that
// straddle a band boundary may land in adjacent lines; that is an accepted
// approximation of the quantization, not a defect.
func Reconstruct(tokens []Token, opts Options) []Line {
	if opts.BandHeight <= 0 {
		opts.BandHeight = DefaultOptions().BandHeight
	}

	bands := make(map[float64][]Item)
	for _, tok := range tokens {
		if tok.Confidence <= opts.ConfidenceFloor {
			continue
		}
		c := tok.Bounds.Center()
		key := math.Round(c.Y/opts.BandHeight) * opts.BandHeight
		bands[key] = append(bands[key], Item{
			Text:       tok.Text,
			X:          c.X,
			Confidence: tok.Confidence,
		})
	}

	keys := make([]float64, 0, len(bands))
	for k := range bands {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	lines := make([]Line, 0, len(keys))
	for _, key := range keys {
		items := bands[key]
		sort.SliceStable(items, func(i, j int) bool { return items[i].X < items[j].X })

		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = it.Text
		}
		lines = append(lines, Line{
			Text:  strings.Join(parts, " "),
			Key:   key,
			Items: items,
		})
	}
	return lines
}

// FullText joins line texts with newlines, in reading order.
func FullText(lines []Line) string {
	parts := make([]string, len(lines))
	for i, ln := range lines {
		parts[i] = ln.Text
	}
	return strings.Join(parts, "\n")
}

// RectQuad builds an axis-aligned Quad from two corners, a convenience for
// engines that report rectangular boxes.
func RectQuad(x0, y0, x1, y1 float64) Quad {
	return Quad{
		{X: x0, Y: y0},
		{X: x1, Y: y0},
		{X: x1, Y: y1},
		{X: x0, Y: y1},
	}
}
