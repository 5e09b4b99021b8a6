package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/domain/entity"
)

// CouponRepository defines the interface for coupon persistence operations.
type CouponRepository interface {
	// Increment stamps the user's card at the store under a row lock, creating
	// the card on first use. Returns the card and whether it was completed.
	Increment(ctx context.Context, userID, storeID uuid.UUID, goal int) (*entity.Coupon, bool, error)

	// FindByUserAndStore retrieves a user's card at a store.
	FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*entity.Coupon, error)

	// ListByUser retrieves every card of a user with the store name.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CouponWithStore, error)
}
