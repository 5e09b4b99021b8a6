package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
	"github.com/receipt-split/backend/internal/integration/persistence/model"
)

// storeRepository implements the adapter.StoreRepository interface.
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository instance.
func NewStoreRepository(db *gorm.DB) adapter.StoreRepository {
	return &storeRepository{
		db: db,
	}
}

// Create creates a new store in the database.
func (r *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	err := r.db.WithContext(ctx).Create(model.StoreModelFromEntity(store)).Error
	if err != nil {
		if isUniqueViolation(err) {
			return domainerror.ErrStoreAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID retrieves a store by its ID.
func (r *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var storeModel model.StoreModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&storeModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrStoreNotFound
		}
		return nil, result.Error
	}
	return storeModel.ToEntity(), nil
}

// Update saves the store's coupon configuration.
func (r *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	result := r.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Where("id = ?", store.ID).
		Updates(map[string]any{
			"coupon_enabled": store.CouponEnabled,
			"coupon_goal":    store.CouponGoal,
			"updated_at":     store.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrStoreNotFound
	}
	return nil
}
