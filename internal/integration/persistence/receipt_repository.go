package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
	"github.com/receipt-split/backend/internal/integration/persistence/model"
)

// receiptRepository implements the adapter.ReceiptRepository interface.
type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository instance.
func NewReceiptRepository(db *gorm.DB) adapter.ReceiptRepository {
	return &receiptRepository{
		db: db,
	}
}

// Create stores a new receipt with its items, participants and assignments.
func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.ReceiptModelFromEntity(receipt)).Error; err != nil {
			return fmt.Errorf("failed to insert receipt: %w", err)
		}
		if items := model.ReceiptItemModelsFromEntity(receipt); len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to insert receipt items: %w", err)
			}
		}
		return writeLinks(tx, receipt)
	})
}

// FindByID retrieves a receipt and hydrates every related user once.
func (r *receiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	db := r.db.WithContext(ctx)

	var receiptModel model.ReceiptModel
	if err := db.Where("id = ?", id).First(&receiptModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrReceiptNotFound
		}
		return nil, err
	}

	var items []model.ReceiptItemModel
	if err := db.Where("receipt_id = ?", id).Order("position ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	var participants []model.ReceiptParticipantModel
	if err := db.Where("receipt_id = ?", id).Order("position ASC").Find(&participants).Error; err != nil {
		return nil, err
	}

	itemIDs := make([]uuid.UUID, len(items))
	for i := range items {
		itemIDs[i] = items[i].ID
	}
	var assignments []model.ItemAssignmentModel
	if len(itemIDs) > 0 {
		err := db.Where("item_id IN ?", itemIDs).
			Order("item_id ASC, position ASC").
			Find(&assignments).Error
		if err != nil {
			return nil, err
		}
	}

	users, err := r.loadUsers(db, receiptModel.UploaderID, participants, assignments)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		ID:           receiptModel.ID,
		Uploader:     users[receiptModel.UploaderID],
		StoreID:      receiptModel.StoreID,
		PurchaseDate: receiptModel.PurchaseDate,
		CreatedAt:    receiptModel.CreatedAt,
		UpdatedAt:    receiptModel.UpdatedAt,
	}
	if receipt.Uploader == nil {
		return nil, fmt.Errorf("receipt %s references missing uploader %s", id, receiptModel.UploaderID)
	}

	for _, p := range participants {
		if u, ok := users[p.UserID]; ok {
			receipt.AddParticipant(u)
		}
	}

	assigned := make(map[uuid.UUID][]model.ItemAssignmentModel)
	for _, a := range assignments {
		assigned[a.ItemID] = append(assigned[a.ItemID], a)
	}

	for _, m := range items {
		item := &entity.ReceiptItem{
			ID:        m.ID,
			Name:      m.Name,
			UnitPrice: m.UnitPrice,
			Quantity:  m.Quantity,
		}
		for _, a := range assigned[m.ID] {
			if u, ok := users[a.UserID]; ok {
				item.AssignToUser(u)
			}
		}
		receipt.Items = append(receipt.Items, item)
	}

	return receipt, nil
}

// Update replaces the receipt's participants and item assignments.
func (r *receiptRepository) Update(ctx context.Context, receipt *entity.Receipt) error {
	receipt.UpdatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.ReceiptModel{}).
			Where("id = ?", receipt.ID).
			Update("updated_at", receipt.UpdatedAt)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrReceiptNotFound
		}

		if err := tx.Where("receipt_id = ?", receipt.ID).Delete(&model.ReceiptParticipantModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear participants: %w", err)
		}
		itemIDs := make([]uuid.UUID, len(receipt.Items))
		for i, item := range receipt.Items {
			itemIDs[i] = item.ID
		}
		if len(itemIDs) > 0 {
			if err := tx.Where("item_id IN ?", itemIDs).Delete(&model.ItemAssignmentModel{}).Error; err != nil {
				return fmt.Errorf("failed to clear assignments: %w", err)
			}
		}
		return writeLinks(tx, receipt)
	})
}

// writeLinks inserts the participant and assignment rows of receipt.
func writeLinks(tx *gorm.DB, receipt *entity.Receipt) error {
	if participants := model.ReceiptParticipantModelsFromEntity(receipt); len(participants) > 0 {
		if err := tx.Create(&participants).Error; err != nil {
			return fmt.Errorf("failed to insert participants: %w", err)
		}
	}
	if assignments := model.ItemAssignmentModelsFromEntity(receipt); len(assignments) > 0 {
		if err := tx.Create(&assignments).Error; err != nil {
			return fmt.Errorf("failed to insert assignments: %w", err)
		}
	}
	return nil
}

// loadUsers fetches the uploader, participants and assignees in one query.
func (r *receiptRepository) loadUsers(
	db *gorm.DB,
	uploaderID uuid.UUID,
	participants []model.ReceiptParticipantModel,
	assignments []model.ItemAssignmentModel,
) (map[uuid.UUID]*entity.User, error) {
	ids := map[uuid.UUID]struct{}{uploaderID: {}}
	for _, p := range participants {
		ids[p.UserID] = struct{}{}
	}
	for _, a := range assignments {
		ids[a.UserID] = struct{}{}
	}

	list := make([]uuid.UUID, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}

	var models []model.UserModel
	if err := db.Where("id IN ?", list).Find(&models).Error; err != nil {
		return nil, err
	}

	users := make(map[uuid.UUID]*entity.User, len(models))
	for i := range models {
		users[models[i].ID] = models[i].ToEntity()
	}
	return users, nil
}
