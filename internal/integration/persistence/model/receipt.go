package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/receipt-split/backend/internal/domain/entity"
)

// ReceiptModel represents the receipts table in the database.
type ReceiptModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UploaderID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	StoreID      *uuid.UUID `gorm:"type:uuid;index"`
	PurchaseDate *time.Time `gorm:"type:date"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

// TableName returns the table name for the ReceiptModel.
func (ReceiptModel) TableName() string {
	return "receipts"
}

// ReceiptItemModel represents the receipt_items table in the database.
type ReceiptItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ReceiptID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	Name      string          `gorm:"type:varchar(255);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Quantity  int             `gorm:"not null"`
}

// TableName returns the table name for the ReceiptItemModel.
func (ReceiptItemModel) TableName() string {
	return "receipt_items"
}

// ItemAssignmentModel links a receipt item to one of its assignees.
// Position keeps assignment order, which decides who absorbs split remainders.
type ItemAssignmentModel struct {
	ItemID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position int       `gorm:"not null"`
}

// TableName returns the table name for the ItemAssignmentModel.
func (ItemAssignmentModel) TableName() string {
	return "receipt_item_assignments"
}

// ReceiptParticipantModel links a receipt to one of its participants.
type ReceiptParticipantModel struct {
	ReceiptID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"not null"`
}

// TableName returns the table name for the ReceiptParticipantModel.
func (ReceiptParticipantModel) TableName() string {
	return "receipt_participants"
}

// ReceiptModelFromEntity creates a ReceiptModel from a domain Receipt entity.
func ReceiptModelFromEntity(receipt *entity.Receipt) *ReceiptModel {
	return &ReceiptModel{
		ID:           receipt.ID,
		UploaderID:   receipt.Uploader.ID,
		StoreID:      receipt.StoreID,
		PurchaseDate: receipt.PurchaseDate,
		CreatedAt:    receipt.CreatedAt,
		UpdatedAt:    receipt.UpdatedAt,
	}
}

// ReceiptItemModelsFromEntity creates the item rows of a receipt in item order.
func ReceiptItemModelsFromEntity(receipt *entity.Receipt) []ReceiptItemModel {
	items := make([]ReceiptItemModel, 0, len(receipt.Items))
	for i, item := range receipt.Items {
		items = append(items, ReceiptItemModel{
			ID:        item.ID,
			ReceiptID: receipt.ID,
			Position:  i,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return items
}

// ItemAssignmentModelsFromEntity creates the assignment rows of a receipt.
func ItemAssignmentModelsFromEntity(receipt *entity.Receipt) []ItemAssignmentModel {
	var rows []ItemAssignmentModel
	for _, item := range receipt.Items {
		for i, user := range item.AssignedUsers() {
			rows = append(rows, ItemAssignmentModel{
				ItemID:   item.ID,
				UserID:   user.ID,
				Position: i,
			})
		}
	}
	return rows
}

// ReceiptParticipantModelsFromEntity creates the participant rows of a receipt.
func ReceiptParticipantModelsFromEntity(receipt *entity.Receipt) []ReceiptParticipantModel {
	rows := make([]ReceiptParticipantModel, 0, len(receipt.Participants))
	for i, user := range receipt.Participants {
		rows = append(rows, ReceiptParticipantModel{
			ReceiptID: receipt.ID,
			UserID:    user.ID,
			Position:  i,
		})
	}
	return rows
}
