package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/domain/entity"
)

// SettlementRepository defines the interface for settlement persistence operations.
type SettlementRepository interface {
	// Record saves the debited users' balances and the settlement record in one
	// database transaction. Nothing is written when any step fails.
	Record(ctx context.Context, settlement *entity.Settlement, debited []*entity.User) error

	// ListByUser retrieves the settlements that include the user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Settlement, error)

	// ListByReceipt retrieves the settlements of a receipt, newest first.
	ListByReceipt(ctx context.Context, receiptID uuid.UUID) ([]*entity.Settlement, error)
}
