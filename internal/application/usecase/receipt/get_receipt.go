package receipt

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// GetReceiptInput represents the input for fetching a receipt.
type GetReceiptInput struct {
	ReceiptID uuid.UUID
}

// GetReceiptOutput represents the output of fetching a receipt.
type GetReceiptOutput struct {
	Receipt *entity.Receipt
}

// GetReceiptUseCase fetches a receipt with its items and assignments.
type GetReceiptUseCase struct {
	receiptRepo adapter.ReceiptRepository
}

// NewGetReceiptUseCase creates a new GetReceiptUseCase instance.
func NewGetReceiptUseCase(receiptRepo adapter.ReceiptRepository) *GetReceiptUseCase {
	return &GetReceiptUseCase{receiptRepo: receiptRepo}
}

// Execute fetches the receipt.
func (uc *GetReceiptUseCase) Execute(ctx context.Context, input GetReceiptInput) (*GetReceiptOutput, error) {
	receipt, err := findReceipt(ctx, uc.receiptRepo, input.ReceiptID)
	if err != nil {
		return nil, err
	}
	return &GetReceiptOutput{Receipt: receipt}, nil
}

func findReceipt(ctx context.Context, repo adapter.ReceiptRepository, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrReceiptNotFound) {
			return nil, domainerror.ReceiptErrorFrom(err)
		}
		return nil, fmt.Errorf("failed to find receipt: %w", err)
	}
	return receipt, nil
}
