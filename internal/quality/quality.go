// Package quality gates document photos before recognition: resolution floor
// per document type, sharpness via Laplacian variance, and mean brightness.
// A failing gate stops the pipeline with a message the caller surfaces
// verbatim.
package quality

import (
	"bytes"
	"fmt"
	"image"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"veridoc/internal/domain"
)

// Options are the sharpness and exposure thresholds.
type Options struct {
	BlurThreshold float64 `mapstructure:"blur_threshold"`
	MinBrightness float64 `mapstructure:"min_brightness"`
	MaxBrightness float64 `mapstructure:"max_brightness"`
}

// DefaultOptions returns the calibrated thresholds.
func DefaultOptions() Options {
	return Options{BlurThreshold: 100, MinBrightness: 30, MaxBrightness: 240}
}

type requirement struct {
	minWidth  int
	minHeight int
}

var docRequirements = map[domain.DocType]requirement{
	domain.DocTypePassport: {minWidth: 600, minHeight: 400},
	domain.DocTypeCIN:      {minWidth: 500, minHeight: 300},
}

var defaultRequirement = requirement{minWidth: 600, minHeight: 400}

// Decode parses raw image bytes in any of the registered formats (JPEG, PNG,
// TIFF, BMP).
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Check evaluates the quality gate. It returns ok plus a human-readable
// message; a bright but otherwise sharp image passes with a warning message.
func Check(img image.Image, docType domain.DocType, opts Options) (bool, string) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	req, found := docRequirements[docType]
	if !found {
		req = defaultRequirement
	}
	if w < req.minWidth || h < req.minHeight {
		return false, fmt.Sprintf("resolution too low (%dx%d)", w, h)
	}

	gray := grayscale(img)

	if score := laplacianVariance(gray, w, h); score < opts.BlurThreshold {
		return false, fmt.Sprintf("image too blurry (score: %.2f)", score)
	}

	if mean := meanBrightness(gray); mean < opts.MinBrightness {
		return false, "image too dark"
	} else if mean > opts.MaxBrightness {
		return true, "image bright, but usable"
	}

	return true, "image quality acceptable"
}

// grayscale flattens the image into a row-major luminance buffer.
func grayscale(img image.Image) []float64 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	gray := make([]float64, w*h)

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// 16-bit channels scaled to the 0-255 range.
			gray[i] = (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 257.0
			i++
		}
	}
	return gray
}

// laplacianVariance convolves the 3x3 Laplacian kernel over the interior and
// returns the variance of the responses; low variance means few edges, i.e. a
// blurry image.
func laplacianVariance(gray []float64, w, h int) float64 {
	if w < 3 || h < 3 {
		return 0
	}

	n := (w - 2) * (h - 2)
	responses := make([]float64, 0, n)
	var sum float64
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			v := gray[(y-1)*w+x] + gray[(y+1)*w+x] + gray[y*w+x-1] + gray[y*w+x+1] - 4*gray[y*w+x]
			responses = append(responses, v)
			sum += v
		}
	}

	mean := sum / float64(n)
	var variance float64
	for _, v := range responses {
		d := v - mean
		variance += d * d
	}
	return variance / float64(n)
}

func meanBrightness(gray []float64) float64 {
	if len(gray) == 0 {
		return 0
	}
	var sum float64
	for _, v := range gray {
		sum += v
	}
	return sum / float64(len(gray))
}
