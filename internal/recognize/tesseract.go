//go:build ocr

package recognize

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"veridoc/internal/layout"
)

// tesseractEngine wraps a single gosseract client. The client is stateful
// (SetImage then read), so calls are serialized with a mutex.
type tesseractEngine struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// New constructs a Tesseract-backed engine. languages is a "+"-separated
// list of trained-data names, e.g. "ara+eng"; empty keeps the engine default.
func New(languages string) (Engine, error) {
	client := gosseract.NewClient()
	if languages != "" {
		if err := client.SetLanguage(strings.Split(languages, "+")...); err != nil {
			client.Close()
			return nil, fmt.Errorf("set languages %q: %w", languages, err)
		}
	}
	return &tesseractEngine{client: client}, nil
}

func (e *tesseractEngine) Recognize(ctx context.Context, image []byte) ([]layout.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.client.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("get bounding boxes: %w", err)
	}

	tokens := make([]layout.Token, 0, len(boxes))
	for _, box := range boxes {
		tokens = append(tokens, layout.Token{
			Text: box.Word,
			Bounds: layout.RectQuad(
				float64(box.Box.Min.X), float64(box.Box.Min.Y),
				float64(box.Box.Max.X), float64(box.Box.Max.Y),
			),
			// Tesseract reports confidence as 0-100.
			Confidence: box.Confidence / 100,
		})
	}
	return tokens, nil
}

func (e *tesseractEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.client.Close()
}
