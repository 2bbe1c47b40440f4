package port

import (
	"context"

	"veridoc/internal/layout"
)

// Recognizer abstracts the OCR engine so services can be tested without
// Tesseract installed.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) ([]layout.Token, error)
}
