// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/receipt-split/backend/internal/domain/entity"
)

// UserModel represents the user table in the database.
type UserModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Email     string          `gorm:"type:varchar(255);index"`
	Balance   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Balance:   m.Balance,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// UserModelFromEntity creates a UserModel from a domain User entity.
func UserModelFromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Balance:   user.Balance,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
