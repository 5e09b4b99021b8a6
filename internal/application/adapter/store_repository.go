package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/domain/entity"
)

// StoreRepository defines the interface for store persistence operations.
type StoreRepository interface {
	// Create creates a new store. Returns ErrStoreAlreadyExists on a duplicate name.
	Create(ctx context.Context, store *entity.Store) error

	// FindByID retrieves a store by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// Update saves the store's coupon configuration.
	Update(ctx context.Context, store *entity.Store) error
}
