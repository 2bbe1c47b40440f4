package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"veridoc/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendVerificationSummary(ctx context.Context, toEmail, toName string, report domain.VerificationReport) error {
	args := m.Called(ctx, toEmail, toName, report)
	return args.Error(0)
}
