package settlement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
)

const defaultHistoryLimit = 50

// ListSettlementsInput represents the input for listing a user's settlements.
type ListSettlementsInput struct {
	UserID uuid.UUID
	Limit  int // Optional, defaults to 50
}

// ListSettlementsOutput represents the output of listing settlements.
type ListSettlementsOutput struct {
	Settlements []*entity.Settlement
}

// ListSettlementsUseCase returns the settlement history of a user.
type ListSettlementsUseCase struct {
	settlementRepo adapter.SettlementRepository
}

// NewListSettlementsUseCase creates a new ListSettlementsUseCase instance.
func NewListSettlementsUseCase(settlementRepo adapter.SettlementRepository) *ListSettlementsUseCase {
	return &ListSettlementsUseCase{settlementRepo: settlementRepo}
}

// Execute lists the settlements.
func (uc *ListSettlementsUseCase) Execute(ctx context.Context, input ListSettlementsInput) (*ListSettlementsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	settlements, err := uc.settlementRepo.ListByUser(ctx, input.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	return &ListSettlementsOutput{Settlements: settlements}, nil
}
