package split

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// CalculateSplitInput represents the input for a split calculation.
type CalculateSplitInput struct {
	ReceiptID uuid.UUID
	Policy    string // Optional, defaults to assignment
}

// CalculateSplitOutput represents the output of a split calculation.
type CalculateSplitOutput struct {
	Receipt          *entity.Receipt
	Policy           entity.SplitPolicy
	Split            *entity.Split
	Total            decimal.Decimal
	AllItemsAssigned bool
	UnassignedItems  []uuid.UUID
}

// CalculateSplitUseCase computes who owes what for a stored receipt.
type CalculateSplitUseCase struct {
	receiptRepo adapter.ReceiptRepository
	splitter    *Service
}

// NewCalculateSplitUseCase creates a new CalculateSplitUseCase instance.
func NewCalculateSplitUseCase(receiptRepo adapter.ReceiptRepository, splitter *Service) *CalculateSplitUseCase {
	return &CalculateSplitUseCase{
		receiptRepo: receiptRepo,
		splitter:    splitter,
	}
}

// Execute performs the split calculation.
func (uc *CalculateSplitUseCase) Execute(ctx context.Context, input CalculateSplitInput) (*CalculateSplitOutput, error) {
	policy, err := entity.ParseSplitPolicy(input.Policy)
	if err != nil {
		return nil, domainerror.ReceiptErrorFrom(err)
	}

	receipt, err := uc.receiptRepo.FindByID(ctx, input.ReceiptID)
	if err != nil {
		if errors.Is(err, domainerror.ErrReceiptNotFound) {
			return nil, domainerror.ReceiptErrorFrom(err)
		}
		return nil, fmt.Errorf("failed to find receipt: %w", err)
	}

	unassigned := make([]uuid.UUID, 0)
	for _, item := range receipt.UnassignedItems() {
		unassigned = append(unassigned, item.ID)
	}

	return &CalculateSplitOutput{
		Receipt:          receipt,
		Policy:           policy,
		Split:            uc.splitter.SplitByPolicy(receipt, policy),
		Total:            receipt.CalculateTotal(),
		AllItemsAssigned: uc.splitter.ValidateAllItemsAssigned(receipt),
		UnassignedItems:  unassigned,
	}, nil
}
