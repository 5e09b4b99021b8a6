package coupon

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// ListCouponsInput represents the input for listing a user's coupons.
type ListCouponsInput struct {
	UserID uuid.UUID
}

// ListCouponsOutput represents the output of listing coupons.
type ListCouponsOutput struct {
	Coupons []*entity.CouponWithStore
}

// ListCouponsUseCase lists a user's stamp cards.
type ListCouponsUseCase struct {
	userRepo   adapter.UserRepository
	couponRepo adapter.CouponRepository
}

// NewListCouponsUseCase creates a new ListCouponsUseCase instance.
func NewListCouponsUseCase(userRepo adapter.UserRepository, couponRepo adapter.CouponRepository) *ListCouponsUseCase {
	return &ListCouponsUseCase{
		userRepo:   userRepo,
		couponRepo: couponRepo,
	}
}

// Execute lists the coupons.
func (uc *ListCouponsUseCase) Execute(ctx context.Context, input ListCouponsInput) (*ListCouponsOutput, error) {
	if _, err := uc.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.UserErrorFrom(err)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	coupons, err := uc.couponRepo.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}

	return &ListCouponsOutput{Coupons: coupons}, nil
}
