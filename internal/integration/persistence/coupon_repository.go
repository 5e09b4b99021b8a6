package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
	"github.com/receipt-split/backend/internal/integration/persistence/model"
)

// couponRepository implements the adapter.CouponRepository interface.
type couponRepository struct {
	db *gorm.DB
}

// NewCouponRepository creates a new coupon repository instance.
func NewCouponRepository(db *gorm.DB) adapter.CouponRepository {
	return &couponRepository{
		db: db,
	}
}

// Increment stamps the card inside a transaction holding the row lock.
func (r *couponRepository) Increment(ctx context.Context, userID, storeID uuid.UUID, goal int) (*entity.Coupon, bool, error) {
	var (
		coupon    *entity.Coupon
		completed bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.CouponModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND store_id = ?", userID, storeID).
			First(&row).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			coupon = entity.NewCoupon(userID, storeID)
			completed = coupon.Stamp(goal)
			return tx.Create(model.CouponModelFromEntity(coupon)).Error
		case err != nil:
			return err
		}

		coupon = row.ToEntity()
		completed = coupon.Stamp(goal)
		return tx.Model(&model.CouponModel{}).
			Where("id = ?", coupon.ID).
			Updates(map[string]any{
				"count":      coupon.Count,
				"goal":       coupon.Goal,
				"updated_at": coupon.UpdatedAt,
			}).Error
	})
	if err != nil {
		return nil, false, err
	}

	return coupon, completed, nil
}

// FindByUserAndStore retrieves a user's card at a store.
func (r *couponRepository) FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*entity.Coupon, error) {
	var row model.CouponModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCouponNotFound
		}
		return nil, result.Error
	}
	return row.ToEntity(), nil
}

// ListByUser retrieves every card of a user with the store name.
func (r *couponRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CouponWithStore, error) {
	var rows []model.CouponWithStoreRow
	err := r.db.WithContext(ctx).
		Table("coupons").
		Select("coupons.*, stores.name AS store_name").
		Joins("JOIN stores ON stores.id = coupons.store_id").
		Where("coupons.user_id = ?", userID).
		Order("stores.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	coupons := make([]*entity.CouponWithStore, len(rows))
	for i := range rows {
		coupons[i] = &entity.CouponWithStore{
			Coupon:    rows[i].CouponModel.ToEntity(),
			StoreName: rows[i].StoreName,
		}
	}
	return coupons, nil
}
