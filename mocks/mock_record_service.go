package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"veridoc/internal/domain"
)

// MockRecordService is a mock implementation of service.RecordService.
type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) Get(ctx context.Context, scopeUserID, recordID uuid.UUID) (*domain.VerificationRecord, error) {
	args := m.Called(ctx, scopeUserID, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationRecord), args.Error(1)
}

func (m *MockRecordService) List(ctx context.Context, scopeUserID uuid.UUID, offset, limit int) ([]domain.VerificationRecord, int, error) {
	args := m.Called(ctx, scopeUserID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.VerificationRecord), args.Int(1), args.Error(2)
}

func (m *MockRecordService) Delete(ctx context.Context, scopeUserID, recordID uuid.UUID) error {
	args := m.Called(ctx, scopeUserID, recordID)
	return args.Error(0)
}

func (m *MockRecordService) FileURL(ctx context.Context, scopeUserID, recordID uuid.UUID) (string, error) {
	args := m.Called(ctx, scopeUserID, recordID)
	return args.String(0), args.Error(1)
}

func (m *MockRecordService) ExportCSV(ctx context.Context, w io.Writer, records []domain.VerificationRecord) error {
	args := m.Called(ctx, w, records)
	return args.Error(0)
}

func (m *MockRecordService) ExportXLSX(ctx context.Context, records []domain.VerificationRecord) ([]byte, error) {
	args := m.Called(ctx, records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
