package dto

import (
	"time"

	"github.com/receipt-split/backend/internal/domain/entity"
)

// CouponResponse represents a stamp card in API responses.
type CouponResponse struct {
	StoreID   string    `json:"store_id"`
	StoreName string    `json:"store_name"`
	Count     int       `json:"count"`
	Goal      int       `json:"goal"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CouponListResponse represents the response for listing a user's coupons.
type CouponListResponse struct {
	Coupons []CouponResponse `json:"coupons"`
}

// ToCouponListResponse converts coupons to a CouponListResponse DTO.
func ToCouponListResponse(coupons []*entity.CouponWithStore) CouponListResponse {
	response := CouponListResponse{
		Coupons: make([]CouponResponse, 0, len(coupons)),
	}
	for _, c := range coupons {
		response.Coupons = append(response.Coupons, CouponResponse{
			StoreID:   c.Coupon.StoreID.String(),
			StoreName: c.StoreName,
			Count:     c.Coupon.Count,
			Goal:      c.Coupon.Goal,
			UpdatedAt: c.Coupon.UpdatedAt,
		})
	}
	return response
}
