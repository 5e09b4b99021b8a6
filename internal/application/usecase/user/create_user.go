// Package user contains user and balance use cases.
package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// CreateUserInput represents the input for user creation.
type CreateUserInput struct {
	Name           string
	Email          string // Optional
	InitialBalance decimal.Decimal
}

// CreateUserOutput represents the output of user creation.
type CreateUserOutput struct {
	User *entity.User
}

// CreateUserUseCase handles user creation.
type CreateUserUseCase struct {
	userRepo adapter.UserRepository
}

// NewCreateUserUseCase creates a new CreateUserUseCase instance.
func NewCreateUserUseCase(userRepo adapter.UserRepository) *CreateUserUseCase {
	return &CreateUserUseCase{userRepo: userRepo}
}

// Execute performs the user creation.
func (uc *CreateUserUseCase) Execute(ctx context.Context, input CreateUserInput) (*CreateUserOutput, error) {
	user, err := entity.NewUser(input.Name, input.InitialBalance)
	if err != nil {
		return nil, domainerror.UserErrorFrom(err)
	}
	user.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &CreateUserOutput{User: user}, nil
}
