package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// ConfigureCouponInput represents the input for changing a store's coupon programme.
// Nil fields are left unchanged.
type ConfigureCouponInput struct {
	StoreID uuid.UUID
	Enabled *bool
	Goal    *int
}

// ConfigureCouponOutput represents the output of changing a coupon programme.
type ConfigureCouponOutput struct {
	Store *entity.Store
}

// ConfigureCouponUseCase enables, disables or retargets a store's coupon programme.
type ConfigureCouponUseCase struct {
	storeRepo adapter.StoreRepository
}

// NewConfigureCouponUseCase creates a new ConfigureCouponUseCase instance.
func NewConfigureCouponUseCase(storeRepo adapter.StoreRepository) *ConfigureCouponUseCase {
	return &ConfigureCouponUseCase{storeRepo: storeRepo}
}

// Execute applies the configuration.
func (uc *ConfigureCouponUseCase) Execute(ctx context.Context, input ConfigureCouponInput) (*ConfigureCouponOutput, error) {
	store, err := findStore(ctx, uc.storeRepo, input.StoreID)
	if err != nil {
		return nil, err
	}

	if input.Goal != nil {
		if err := store.SetCouponGoal(*input.Goal); err != nil {
			return nil, domainerror.StoreErrorFrom(err)
		}
	}
	if input.Enabled != nil {
		if *input.Enabled {
			store.EnableCouponSystem()
		} else {
			store.DisableCouponSystem()
		}
	}

	if err := uc.storeRepo.Update(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to update store: %w", err)
	}

	return &ConfigureCouponOutput{Store: store}, nil
}
