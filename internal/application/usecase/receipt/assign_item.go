package receipt

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// AssignItemInput represents the input for assigning users to an item.
type AssignItemInput struct {
	ReceiptID uuid.UUID
	ItemID    uuid.UUID
	UserIDs   []uuid.UUID
}

// AssignItemOutput represents the output of an assignment.
type AssignItemOutput struct {
	Receipt *entity.Receipt
	Item    *entity.ReceiptItem
	Added   []uuid.UUID
}

// AssignItemUseCase adds assignees to a receipt item. Existing assignees are kept.
type AssignItemUseCase struct {
	receiptRepo adapter.ReceiptRepository
	userRepo    adapter.UserRepository
}

// NewAssignItemUseCase creates a new AssignItemUseCase instance.
func NewAssignItemUseCase(receiptRepo adapter.ReceiptRepository, userRepo adapter.UserRepository) *AssignItemUseCase {
	return &AssignItemUseCase{
		receiptRepo: receiptRepo,
		userRepo:    userRepo,
	}
}

// Execute performs the assignment.
func (uc *AssignItemUseCase) Execute(ctx context.Context, input AssignItemInput) (*AssignItemOutput, error) {
	receipt, err := findReceipt(ctx, uc.receiptRepo, input.ReceiptID)
	if err != nil {
		return nil, err
	}

	item, ok := receipt.FindItem(input.ItemID)
	if !ok {
		return nil, domainerror.ReceiptErrorFrom(domainerror.ErrReceiptItemNotFound)
	}

	// Reuse the receipt's own user values so one ID maps to one *entity.User.
	known := make(map[uuid.UUID]*entity.User)
	for _, u := range receipt.Users() {
		known[u.ID] = u
	}

	var missing []uuid.UUID
	for _, id := range uniqueIDs(input.UserIDs) {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		found, err := uc.userRepo.FindByIDs(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("failed to find users: %w", err)
		}
		for _, u := range found {
			known[u.ID] = u
		}
	}

	added := make([]uuid.UUID, 0, len(input.UserIDs))
	for _, id := range uniqueIDs(input.UserIDs) {
		user, ok := known[id]
		if !ok {
			return nil, domainerror.NewReceiptError(
				domainerror.ErrCodeUnknownAssignee,
				fmt.Sprintf("user %s does not exist", id),
				domainerror.ErrUserNotFound,
			)
		}
		if item.AssignToUser(user) {
			added = append(added, id)
		}
		receipt.AddParticipant(user)
	}

	if len(added) > 0 {
		if err := uc.receiptRepo.Update(ctx, receipt); err != nil {
			return nil, fmt.Errorf("failed to update receipt: %w", err)
		}
	}

	return &AssignItemOutput{
		Receipt: receipt,
		Item:    item,
		Added:   added,
	}, nil
}
