// Package coupon contains coupon stamp use cases.
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

// AwardCouponInput represents the input for awarding a coupon stamp.
type AwardCouponInput struct {
	UserID  uuid.UUID
	StoreID uuid.UUID
}

// AwardCouponOutput represents the output of awarding a coupon stamp.
type AwardCouponOutput struct {
	Awarded   bool
	Completed bool
	Coupon    *entity.Coupon
}

// AwardCouponUseCase stamps a user's card after a paid purchase at a store.
type AwardCouponUseCase struct {
	storeRepo  adapter.StoreRepository
	couponRepo adapter.CouponRepository
}

// NewAwardCouponUseCase creates a new AwardCouponUseCase instance.
func NewAwardCouponUseCase(storeRepo adapter.StoreRepository, couponRepo adapter.CouponRepository) *AwardCouponUseCase {
	return &AwardCouponUseCase{
		storeRepo:  storeRepo,
		couponRepo: couponRepo,
	}
}

// Execute awards the stamp. A missing store or a disabled programme is a no-op.
func (uc *AwardCouponUseCase) Execute(ctx context.Context, input AwardCouponInput) (*AwardCouponOutput, error) {
	store, err := uc.storeRepo.FindByID(ctx, input.StoreID)
	if err != nil {
		if errors.Is(err, domainerror.ErrStoreNotFound) {
			return &AwardCouponOutput{}, nil
		}
		return nil, fmt.Errorf("failed to find store: %w", err)
	}
	if !store.CouponEnabled {
		return &AwardCouponOutput{}, nil
	}

	coupon, completed, err := uc.couponRepo.Increment(ctx, input.UserID, input.StoreID, store.CouponGoal)
	if err != nil {
		return nil, fmt.Errorf("failed to increment coupon: %w", err)
	}

	return &AwardCouponOutput{
		Awarded:   true,
		Completed: completed,
		Coupon:    coupon,
	}, nil
}
