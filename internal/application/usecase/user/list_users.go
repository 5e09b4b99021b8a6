package user

import (
	"context"
	"fmt"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
)

// ListUsersOutput represents the output of listing users.
type ListUsersOutput struct {
	Users []*entity.User
}

// ListUsersUseCase lists every user.
type ListUsersUseCase struct {
	userRepo adapter.UserRepository
}

// NewListUsersUseCase creates a new ListUsersUseCase instance.
func NewListUsersUseCase(userRepo adapter.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

// Execute lists the users.
func (uc *ListUsersUseCase) Execute(ctx context.Context) (*ListUsersOutput, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return &ListUsersOutput{Users: users}, nil
}
