package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// Store represents a shop whose receipts may earn coupon stamps.
type Store struct {
	ID            uuid.UUID
	Name          string
	CouponEnabled bool
	CouponGoal    int // Stamps needed to complete a card, 0 when unset
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewStore creates a new Store with the coupon programme disabled.
func NewStore(name string) (*Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerror.ErrEmptyStoreName
	}

	now := time.Now().UTC()
	return &Store{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// EnableCouponSystem turns on coupon stamps for the store.
func (s *Store) EnableCouponSystem() {
	s.CouponEnabled = true
	s.UpdatedAt = time.Now().UTC()
}

// DisableCouponSystem turns off coupon stamps for the store.
func (s *Store) DisableCouponSystem() {
	s.CouponEnabled = false
	s.UpdatedAt = time.Now().UTC()
}

// SetCouponGoal sets the number of stamps needed to complete a card.
func (s *Store) SetCouponGoal(goal int) error {
	if goal <= 0 {
		return domainerror.ErrInvalidCouponGoal
	}
	s.CouponGoal = goal
	s.UpdatedAt = time.Now().UTC()
	return nil
}
