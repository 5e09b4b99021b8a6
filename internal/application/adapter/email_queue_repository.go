package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/domain/entity"
)

// EmailQueueRepository is the outbox of settlement notifications.
type EmailQueueRepository interface {
	Enqueue(ctx context.Context, job *entity.EmailJob) error

	// ClaimDue marks up to limit due jobs as processing until leaseUntil and
	// returns them, oldest schedule first. A job is claimed by one caller only.
	ClaimDue(ctx context.Context, now, leaseUntil time.Time, limit int) ([]*entity.EmailJob, error)

	Save(ctx context.Context, job *entity.EmailJob) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error)
	ListByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error)

	// PurgeSent removes sent jobs processed before cutoff and returns how many.
	PurgeSent(ctx context.Context, cutoff time.Time) (int64, error)
}
