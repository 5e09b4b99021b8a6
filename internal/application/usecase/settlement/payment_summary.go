package settlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/application/usecase/split"
	"github.com/receipt-split/backend/internal/domain/entity"
)

// GetPaymentSummaryInput represents the input for a payment summary.
type GetPaymentSummaryInput struct {
	ReceiptID uuid.UUID
}

// PaymentLine is one user's position before settling.
type PaymentLine struct {
	User            *entity.User
	Owed            decimal.Decimal
	Balance         decimal.Decimal
	Shortage        decimal.Decimal
	CanPayByDeposit bool
}

// GetPaymentSummaryOutput represents the output of a payment summary.
type GetPaymentSummaryOutput struct {
	ReceiptID          uuid.UUID
	Total              decimal.Decimal
	Lines              []PaymentLine
	AllItemsAssigned   bool
	AllCanPayByDeposit bool
}

// GetPaymentSummaryUseCase previews who can pay their share from their balance.
type GetPaymentSummaryUseCase struct {
	receiptRepo adapter.ReceiptRepository
	splitter    *split.Service
}

// NewGetPaymentSummaryUseCase creates a new GetPaymentSummaryUseCase instance.
func NewGetPaymentSummaryUseCase(receiptRepo adapter.ReceiptRepository, splitter *split.Service) *GetPaymentSummaryUseCase {
	return &GetPaymentSummaryUseCase{
		receiptRepo: receiptRepo,
		splitter:    splitter,
	}
}

// Execute builds the payment summary.
func (uc *GetPaymentSummaryUseCase) Execute(ctx context.Context, input GetPaymentSummaryInput) (*GetPaymentSummaryOutput, error) {
	receipt, err := findReceipt(ctx, uc.receiptRepo, input.ReceiptID)
	if err != nil {
		return nil, err
	}

	owed := uc.splitter.SplitByUserAssignment(receipt)
	output := &GetPaymentSummaryOutput{
		ReceiptID:          receipt.ID,
		Total:              receipt.CalculateTotal(),
		Lines:              make([]PaymentLine, 0, owed.Len()),
		AllItemsAssigned:   uc.splitter.ValidateAllItemsAssigned(receipt),
		AllCanPayByDeposit: true,
	}

	for _, user := range owed.Users() {
		amount := owed.Amount(user.ID)
		line := PaymentLine{
			User:            user,
			Owed:            amount,
			Balance:         user.Balance,
			Shortage:        user.Shortage(amount),
			CanPayByDeposit: user.CanAfford(amount),
		}
		if !line.CanPayByDeposit {
			output.AllCanPayByDeposit = false
		}
		output.Lines = append(output.Lines, line)
	}

	return output, nil
}
