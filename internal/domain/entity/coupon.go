package entity

import (
	"time"

	"github.com/google/uuid"
)

// Coupon represents a user's stamp card at a store.
type Coupon struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	StoreID   uuid.UUID
	Count     int
	Goal      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCoupon creates an empty stamp card.
func NewCoupon(userID, storeID uuid.UUID) *Coupon {
	now := time.Now().UTC()
	return &Coupon{
		ID:        uuid.New(),
		UserID:    userID,
		StoreID:   storeID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Stamp adds one stamp. When goal is positive and the count reaches it, the
// card resets to zero and Stamp returns true.
func (c *Coupon) Stamp(goal int) bool {
	c.Goal = goal
	c.Count++
	c.UpdatedAt = time.Now().UTC()

	if goal > 0 && c.Count >= goal {
		c.Count = 0
		return true
	}
	return false
}

// CouponWithStore represents a coupon with its store name.
type CouponWithStore struct {
	Coupon    *Coupon
	StoreName string
}
