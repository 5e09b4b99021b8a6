package dto

import (
	"time"

	"github.com/receipt-split/backend/internal/domain/entity"
)

// CreateStoreRequest represents the request body for store creation.
type CreateStoreRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=100"`
	CouponEnabled bool   `json:"coupon_enabled"`
	CouponGoal    *int   `json:"coupon_goal,omitempty"`
}

// ConfigureCouponRequest represents the request body for updating a coupon programme.
// Omitted fields are left unchanged.
type ConfigureCouponRequest struct {
	Enabled *bool `json:"enabled,omitempty"`
	Goal    *int  `json:"goal,omitempty"`
}

// StoreResponse represents a store in API responses.
type StoreResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CouponEnabled bool      `json:"coupon_enabled"`
	CouponGoal    int       `json:"coupon_goal"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToStoreResponse converts a domain Store entity to a StoreResponse DTO.
func ToStoreResponse(s *entity.Store) StoreResponse {
	return StoreResponse{
		ID:            s.ID.String(),
		Name:          s.Name,
		CouponEnabled: s.CouponEnabled,
		CouponGoal:    s.CouponGoal,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
