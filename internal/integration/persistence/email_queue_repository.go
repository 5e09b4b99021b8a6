package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
	"github.com/receipt-split/backend/internal/integration/persistence/model"
)

type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates the gorm-backed notification outbox.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{db: db}
}

func (r *emailQueueRepository) Enqueue(ctx context.Context, job *entity.EmailJob) error {
	row, err := model.EmailQueueModelFromEntity(job)
	if err == nil {
		err = r.db.WithContext(ctx).Create(row).Error
	}
	if err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "failed to enqueue email", err)
	}
	return nil
}

func (r *emailQueueRepository) ClaimDue(ctx context.Context, now, leaseUntil time.Time, limit int) ([]*entity.EmailJob, error) {
	var claimed []*entity.EmailJob

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []model.EmailQueueModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status IN ?", []entity.EmailStatus{entity.EmailStatusPending, entity.EmailStatusProcessing}).
			Where("scheduled_at <= ?", now).
			Order("scheduled_at ASC").
			Limit(limit).
			Find(&rows).Error
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, 0, len(rows))
		for i := range rows {
			job, err := rows[i].ToEntity()
			if err != nil {
				return err
			}
			job.Claim(leaseUntil)
			claimed = append(claimed, job)
			ids = append(ids, job.ID)
		}

		return tx.Model(&model.EmailQueueModel{}).
			Where("id IN ?", ids).
			Updates(map[string]any{
				"status":       entity.EmailStatusProcessing,
				"scheduled_at": leaseUntil,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *emailQueueRepository) Save(ctx context.Context, job *entity.EmailJob) error {
	row, err := model.EmailQueueModelFromEntity(job)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *emailQueueRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	var row model.EmailQueueModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerror.NewEmailError(domainerror.ErrCodeEmailJobNotFound, "email job not found", domainerror.ErrEmailJobNotFound)
	}
	if err != nil {
		return nil, err
	}
	return row.ToEntity()
}

func (r *emailQueueRepository) ListByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error) {
	var rows []model.EmailQueueModel
	err := r.db.WithContext(ctx).
		Where("recipient_email = ?", email).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*entity.EmailJob, 0, len(rows))
	for i := range rows {
		job, err := rows[i].ToEntity()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (r *emailQueueRepository) PurgeSent(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND processed_at < ?", entity.EmailStatusSent, cutoff).
		Delete(&model.EmailQueueModel{})
	return result.RowsAffected, result.Error
}
