package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
	"github.com/receipt-split/backend/internal/integration/persistence/model"
)

// settlementRepository implements the adapter.SettlementRepository interface.
type settlementRepository struct {
	db *gorm.DB
}

// NewSettlementRepository creates a new settlement repository instance.
func NewSettlementRepository(db *gorm.DB) adapter.SettlementRepository {
	return &settlementRepository{
		db: db,
	}
}

// Record writes the debited balances and the settlement in one transaction.
func (r *settlementRepository) Record(ctx context.Context, settlement *entity.Settlement, debited []*entity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, user := range debited {
			result := tx.Model(&model.UserModel{}).
				Where("id = ?", user.ID).
				Updates(map[string]any{
					"balance":    user.Balance,
					"updated_at": user.UpdatedAt,
				})
			if result.Error != nil {
				return fmt.Errorf("failed to update balance of user %s: %w", user.ID, result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("failed to update balance of user %s: %w", user.ID, domainerror.ErrUserNotFound)
			}
		}

		if err := tx.Create(model.SettlementModelFromEntity(settlement)).Error; err != nil {
			return fmt.Errorf("failed to insert settlement: %w", err)
		}
		return nil
	})
}

// ListByUser retrieves the settlements that include the user, newest first.
func (r *settlementRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Settlement, error) {
	var models []model.SettlementModel
	err := r.db.WithContext(ctx).
		Preload("Entries", orderByPosition).
		Where("id IN (?)", r.db.Model(&model.SettlementEntryModel{}).Select("settlement_id").Where("user_id = ?", userID)).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toSettlements(models), nil
}

// ListByReceipt retrieves the settlements of a receipt, newest first.
func (r *settlementRepository) ListByReceipt(ctx context.Context, receiptID uuid.UUID) ([]*entity.Settlement, error) {
	var models []model.SettlementModel
	err := r.db.WithContext(ctx).
		Preload("Entries", orderByPosition).
		Where("receipt_id = ?", receiptID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toSettlements(models), nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func toSettlements(models []model.SettlementModel) []*entity.Settlement {
	settlements := make([]*entity.Settlement, len(models))
	for i := range models {
		settlements[i] = models[i].ToEntity()
	}
	return settlements
}
