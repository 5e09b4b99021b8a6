package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/domain/entity"
)

// ReceiptRepository defines the interface for receipt persistence operations.
// Receipts are stored with their items, participants and item assignments.
type ReceiptRepository interface {
	// Create stores a new receipt with its items, participants and assignments.
	Create(ctx context.Context, receipt *entity.Receipt) error

	// FindByID retrieves a receipt with every related user hydrated once,
	// so the same user ID always maps to the same *entity.User.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)

	// Update replaces the receipt's participants and item assignments.
	Update(ctx context.Context, receipt *entity.Receipt) error
}
