package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/receipt-split/backend/internal/domain/entity"
)

// SettlementModel represents the settlements table in the database.
type SettlementModel struct {
	ID          uuid.UUID              `gorm:"type:uuid;primaryKey"`
	ReceiptID   uuid.UUID              `gorm:"type:uuid;not null;index"`
	StoreID     *uuid.UUID             `gorm:"type:uuid"`
	Policy      string                 `gorm:"type:varchar(20);not null"`
	UseDeposit  bool                   `gorm:"not null"`
	RequestedBy *uuid.UUID             `gorm:"type:uuid"`
	CreatedAt   time.Time              `gorm:"not null;index"`
	Entries     []SettlementEntryModel `gorm:"foreignKey:SettlementID"`
}

// TableName returns the table name for the SettlementModel.
func (SettlementModel) TableName() string {
	return "settlements"
}

// SettlementEntryModel represents the settlement_entries table in the database.
type SettlementEntryModel struct {
	SettlementID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;primaryKey;index"`
	Position     int             `gorm:"not null"`
	Owed         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Success      bool            `gorm:"not null"`
	AmountPaid   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DepositUsed  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CashPaid     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
}

// TableName returns the table name for the SettlementEntryModel.
func (SettlementEntryModel) TableName() string {
	return "settlement_entries"
}

// ToEntity converts a SettlementModel and its loaded entries to a domain Settlement.
func (m *SettlementModel) ToEntity() *entity.Settlement {
	settlement := &entity.Settlement{
		ID:          m.ID,
		ReceiptID:   m.ReceiptID,
		StoreID:     m.StoreID,
		Policy:      entity.SettlementPolicy(m.Policy),
		UseDeposit:  m.UseDeposit,
		RequestedBy: m.RequestedBy,
		CreatedAt:   m.CreatedAt,
		Entries:     make([]entity.SettlementEntry, 0, len(m.Entries)),
	}
	for _, e := range m.Entries {
		settlement.Entries = append(settlement.Entries, entity.SettlementEntry{
			UserID: e.UserID,
			Owed:   e.Owed,
			Result: entity.TransactionResult{
				Success:     e.Success,
				AmountPaid:  e.AmountPaid,
				DepositUsed: e.DepositUsed,
				CashPaid:    e.CashPaid,
			},
		})
	}
	return settlement
}

// SettlementModelFromEntity creates a SettlementModel with its entries.
func SettlementModelFromEntity(s *entity.Settlement) *SettlementModel {
	m := &SettlementModel{
		ID:          s.ID,
		ReceiptID:   s.ReceiptID,
		StoreID:     s.StoreID,
		Policy:      string(s.Policy),
		UseDeposit:  s.UseDeposit,
		RequestedBy: s.RequestedBy,
		CreatedAt:   s.CreatedAt,
		Entries:     make([]SettlementEntryModel, 0, len(s.Entries)),
	}
	for i, e := range s.Entries {
		m.Entries = append(m.Entries, SettlementEntryModel{
			SettlementID: s.ID,
			UserID:       e.UserID,
			Position:     i,
			Owed:         e.Owed,
			Success:      e.Result.Success,
			AmountPaid:   e.Result.AmountPaid,
			DepositUsed:  e.Result.DepositUsed,
			CashPaid:     e.Result.CashPaid,
		})
	}
	return m
}
