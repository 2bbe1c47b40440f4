package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"veridoc/internal/layout"
)

// MockRecognizer is a mock implementation of port.Recognizer.
type MockRecognizer struct {
	mock.Mock
}

func (m *MockRecognizer) Recognize(ctx context.Context, image []byte) ([]layout.Token, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]layout.Token), args.Error(1)
}
