package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// GetUserInput represents the input for fetching a user.
type GetUserInput struct {
	UserID uuid.UUID
}

// GetUserOutput represents the output of fetching a user.
type GetUserOutput struct {
	User *entity.User
}

// GetUserUseCase fetches a single user.
type GetUserUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetUserUseCase creates a new GetUserUseCase instance.
func NewGetUserUseCase(userRepo adapter.UserRepository) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo}
}

// Execute fetches the user.
func (uc *GetUserUseCase) Execute(ctx context.Context, input GetUserInput) (*GetUserOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.UserErrorFrom(err)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &GetUserOutput{User: user}, nil
}
