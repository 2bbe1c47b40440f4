// Package recognize wraps the Tesseract engine via gosseract and converts
// its word-level output into positioned tokens for layout reconstruction.
//
// Tesseract is a cgo dependency, so the real engine is compiled in only with
// the "ocr" build tag; without it every call returns ErrOCRNotEnabled. To
// enable recognition, install Tesseract (apt-get install tesseract-ocr
// tesseract-ocr-ara) and rebuild with:
//
//	go build -tags ocr
package recognize

import (
	"context"
	"errors"
	"sync"

	"veridoc/internal/layout"
)

// ErrOCRNotEnabled is returned when recognition is invoked but engine support
// was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Engine produces positioned tokens from an encoded image. Implementations
// are safe for concurrent use.
type Engine interface {
	Recognize(ctx context.Context, image []byte) ([]layout.Token, error)
	Close() error
}

var (
	defaultOnce sync.Once
	defaultEng  Engine
	defaultErr  error
)

// Default returns the process-wide engine, constructing it on first call.
// The engine is expensive to initialize, so concurrent first calls share a
// single construction; the language list of later calls is ignored.
func Default(languages string) (Engine, error) {
	defaultOnce.Do(func() {
		defaultEng, defaultErr = New(languages)
	})
	return defaultEng, defaultErr
}
