package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// GetStoreInput represents the input for fetching a store.
type GetStoreInput struct {
	StoreID uuid.UUID
}

// GetStoreOutput represents the output of fetching a store.
type GetStoreOutput struct {
	Store *entity.Store
}

// GetStoreUseCase fetches a single store.
type GetStoreUseCase struct {
	storeRepo adapter.StoreRepository
}

// NewGetStoreUseCase creates a new GetStoreUseCase instance.
func NewGetStoreUseCase(storeRepo adapter.StoreRepository) *GetStoreUseCase {
	return &GetStoreUseCase{storeRepo: storeRepo}
}

// Execute fetches the store.
func (uc *GetStoreUseCase) Execute(ctx context.Context, input GetStoreInput) (*GetStoreOutput, error) {
	store, err := findStore(ctx, uc.storeRepo, input.StoreID)
	if err != nil {
		return nil, err
	}
	return &GetStoreOutput{Store: store}, nil
}

func findStore(ctx context.Context, repo adapter.StoreRepository, id uuid.UUID) (*entity.Store, error) {
	store, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrStoreNotFound) {
			return nil, domainerror.StoreErrorFrom(err)
		}
		return nil, fmt.Errorf("failed to find store: %w", err)
	}
	return store, nil
}
