package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/domain/entity"
)

// CouponModel represents the coupons table in the database.
// One row per (user, store) pair.
type CouponModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_coupons_user_store"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_coupons_user_store"`
	Count     int       `gorm:"not null;default:0"`
	Goal      int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the CouponModel.
func (CouponModel) TableName() string {
	return "coupons"
}

// ToEntity converts a CouponModel to a domain Coupon entity.
// Negative stored counts are clamped to zero.
func (m *CouponModel) ToEntity() *entity.Coupon {
	count := m.Count
	if count < 0 {
		count = 0
	}
	return &entity.Coupon{
		ID:        m.ID,
		UserID:    m.UserID,
		StoreID:   m.StoreID,
		Count:     count,
		Goal:      m.Goal,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CouponModelFromEntity creates a CouponModel from a domain Coupon entity.
func CouponModelFromEntity(coupon *entity.Coupon) *CouponModel {
	return &CouponModel{
		ID:        coupon.ID,
		UserID:    coupon.UserID,
		StoreID:   coupon.StoreID,
		Count:     coupon.Count,
		Goal:      coupon.Goal,
		CreatedAt: coupon.CreatedAt,
		UpdatedAt: coupon.UpdatedAt,
	}
}

// CouponWithStoreRow is the scan target for coupons joined with their store.
type CouponWithStoreRow struct {
	CouponModel
	StoreName string
}
