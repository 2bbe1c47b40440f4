package service

import (
	"context"

	"github.com/google/uuid"

	"veridoc/internal/domain"
	"veridoc/internal/port"
)

// UpdateUserInput is the DTO for admin user updates. Nil fields are left
// unchanged.
type UpdateUserInput struct {
	FullName *string          `json:"full_name"`
	Role     *domain.UserRole `json:"role" binding:"omitempty,oneof=admin member"`
	IsActive *bool            `json:"is_active"`
}

// UserService defines the admin user-management contract.
type UserService interface {
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, callerID, userID uuid.UUID) error
}

type userService struct {
	userRepo port.UserRepository
}

// NewUserService creates a new UserService implementation.
func NewUserService(userRepo port.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	return s.userRepo.List(ctx, offset, limit)
}

func (s *userService) Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, callerID, userID uuid.UUID) error {
	// An admin cannot delete their own account.
	if callerID == userID {
		return domain.ErrForbidden
	}
	return s.userRepo.Delete(ctx, userID)
}
