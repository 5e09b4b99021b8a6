package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/domain/entity"
)

// StoreModel represents the stores table in the database.
type StoreModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	CouponEnabled bool      `gorm:"not null;default:false"`
	CouponGoal    int       `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the StoreModel.
func (StoreModel) TableName() string {
	return "stores"
}

// ToEntity converts a StoreModel to a domain Store entity.
func (m *StoreModel) ToEntity() *entity.Store {
	return &entity.Store{
		ID:            m.ID,
		Name:          m.Name,
		CouponEnabled: m.CouponEnabled,
		CouponGoal:    m.CouponGoal,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// StoreModelFromEntity creates a StoreModel from a domain Store entity.
func StoreModelFromEntity(store *entity.Store) *StoreModel {
	return &StoreModel{
		ID:            store.ID,
		Name:          store.Name,
		CouponEnabled: store.CouponEnabled,
		CouponGoal:    store.CouponGoal,
		CreatedAt:     store.CreatedAt,
		UpdatedAt:     store.UpdatedAt,
	}
}
