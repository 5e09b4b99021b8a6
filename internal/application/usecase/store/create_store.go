// Package store contains store and coupon programme use cases.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// CreateStoreInput represents the input for store creation.
type CreateStoreInput struct {
	Name          string
	CouponEnabled bool
	CouponGoal    *int // Optional
}

// CreateStoreOutput represents the output of store creation.
type CreateStoreOutput struct {
	Store *entity.Store
}

// CreateStoreUseCase handles store creation.
type CreateStoreUseCase struct {
	storeRepo adapter.StoreRepository
}

// NewCreateStoreUseCase creates a new CreateStoreUseCase instance.
func NewCreateStoreUseCase(storeRepo adapter.StoreRepository) *CreateStoreUseCase {
	return &CreateStoreUseCase{storeRepo: storeRepo}
}

// Execute performs the store creation.
func (uc *CreateStoreUseCase) Execute(ctx context.Context, input CreateStoreInput) (*CreateStoreOutput, error) {
	store, err := entity.NewStore(input.Name)
	if err != nil {
		return nil, domainerror.StoreErrorFrom(err)
	}

	if input.CouponGoal != nil {
		if err := store.SetCouponGoal(*input.CouponGoal); err != nil {
			return nil, domainerror.StoreErrorFrom(err)
		}
	}
	if input.CouponEnabled {
		store.EnableCouponSystem()
	}

	if err := uc.storeRepo.Create(ctx, store); err != nil {
		if errors.Is(err, domainerror.ErrStoreAlreadyExists) {
			return nil, domainerror.StoreErrorFrom(err)
		}
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	return &CreateStoreOutput{Store: store}, nil
}
