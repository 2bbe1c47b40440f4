package port

import (
	"context"

	"github.com/google/uuid"

	"veridoc/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// RecordRepository defines the contract for verification record persistence.
// Query methods scope by userID so a user only ever reads their own records;
// an admin caller passes uuid.Nil to drop the scope.
type RecordRepository interface {
	Create(ctx context.Context, record *domain.VerificationRecord) error
	GetByID(ctx context.Context, userID, recordID uuid.UUID) (*domain.VerificationRecord, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.VerificationRecord, int, error)
	Delete(ctx context.Context, userID, recordID uuid.UUID) error
}
