package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// DepositBalanceInput represents the input for a balance top-up.
type DepositBalanceInput struct {
	UserID uuid.UUID
	Amount decimal.Decimal
}

// DepositBalanceOutput represents the output of a balance top-up.
type DepositBalanceOutput struct {
	User *entity.User
}

// DepositBalanceUseCase tops up a user's prepaid balance.
type DepositBalanceUseCase struct {
	userRepo adapter.UserRepository
	locker   adapter.UserLocker
}

// NewDepositBalanceUseCase creates a new DepositBalanceUseCase instance.
func NewDepositBalanceUseCase(userRepo adapter.UserRepository, locker adapter.UserLocker) *DepositBalanceUseCase {
	return &DepositBalanceUseCase{
		userRepo: userRepo,
		locker:   locker,
	}
}

// Execute performs the top-up under the user's settlement lock.
func (uc *DepositBalanceUseCase) Execute(ctx context.Context, input DepositBalanceInput) (*DepositBalanceOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.UserErrorFrom(domainerror.ErrNonPositiveAmount)
	}

	release, err := uc.locker.LockUsers(ctx, []uuid.UUID{input.UserID})
	if err != nil {
		if errors.Is(err, domainerror.ErrSettlementInProgress) {
			return nil, domainerror.NewSettlementError(
				domainerror.ErrCodeSettlementInProgress,
				"a settlement is in progress for this user",
				err,
			)
		}
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}
	defer release()

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.UserErrorFrom(err)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := user.AddBalance(input.Amount); err != nil {
		return nil, domainerror.UserErrorFrom(err)
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	slog.Info("balance deposited", "user_id", user.ID, "amount", input.Amount.String())

	return &DepositBalanceOutput{User: user}, nil
}
