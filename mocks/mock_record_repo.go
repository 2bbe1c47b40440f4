package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"veridoc/internal/domain"
)

// MockRecordRepo is a mock implementation of port.RecordRepository.
type MockRecordRepo struct {
	mock.Mock
}

func (m *MockRecordRepo) Create(ctx context.Context, record *domain.VerificationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepo) GetByID(ctx context.Context, userID, recordID uuid.UUID) (*domain.VerificationRecord, error) {
	args := m.Called(ctx, userID, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationRecord), args.Error(1)
}

func (m *MockRecordRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.VerificationRecord, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.VerificationRecord), args.Int(1), args.Error(2)
}

func (m *MockRecordRepo) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	args := m.Called(ctx, userID, recordID)
	return args.Error(0)
}
