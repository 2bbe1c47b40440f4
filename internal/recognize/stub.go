//go:build !ocr

package recognize

import (
	"context"

	"veridoc/internal/layout"
)

// stubEngine is the no-op engine compiled in when the "ocr" build tag is not
// set; it fails every recognition call with ErrOCRNotEnabled.
type stubEngine struct{}

// New constructs the stub engine. The languages argument is accepted for
// signature parity with the real engine and ignored.
func New(languages string) (Engine, error) {
	return stubEngine{}, nil
}

func (stubEngine) Recognize(ctx context.Context, image []byte) ([]layout.Token, error) {
	return nil, ErrOCRNotEnabled
}

func (stubEngine) Close() error { return nil }
