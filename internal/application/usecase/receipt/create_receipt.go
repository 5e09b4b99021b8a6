// Package receipt contains receipt use cases.
package receipt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// Options controls receipt creation defaults.
type Options struct {
	UploaderIsParticipant bool
}

// ItemInput describes one line item of a new receipt.
type ItemInput struct {
	Name        string
	UnitPrice   decimal.Decimal
	Quantity    int
	AssigneeIDs []uuid.UUID // Optional
}

// CreateReceiptInput represents the input for receipt creation.
type CreateReceiptInput struct {
	UploaderID     uuid.UUID
	StoreID        *uuid.UUID // Optional
	PurchaseDate   *time.Time // Optional
	ParticipantIDs []uuid.UUID
	Items          []ItemInput
}

// CreateReceiptOutput represents the output of receipt creation.
type CreateReceiptOutput struct {
	Receipt *entity.Receipt
}

// CreateReceiptUseCase handles receipt creation.
type CreateReceiptUseCase struct {
	receiptRepo adapter.ReceiptRepository
	userRepo    adapter.UserRepository
	storeRepo   adapter.StoreRepository
	options     Options
}

// NewCreateReceiptUseCase creates a new CreateReceiptUseCase instance.
func NewCreateReceiptUseCase(
	receiptRepo adapter.ReceiptRepository,
	userRepo adapter.UserRepository,
	storeRepo adapter.StoreRepository,
	options Options,
) *CreateReceiptUseCase {
	return &CreateReceiptUseCase{
		receiptRepo: receiptRepo,
		userRepo:    userRepo,
		storeRepo:   storeRepo,
		options:     options,
	}
}

// Execute performs the receipt creation. Assignees become participants.
func (uc *CreateReceiptUseCase) Execute(ctx context.Context, input CreateReceiptInput) (*CreateReceiptOutput, error) {
	if input.UploaderID == uuid.Nil {
		return nil, domainerror.ReceiptErrorFrom(domainerror.ErrMissingUploader)
	}

	users, err := uc.loadUsers(ctx, input)
	if err != nil {
		return nil, err
	}

	if input.StoreID != nil {
		if _, err := uc.storeRepo.FindByID(ctx, *input.StoreID); err != nil {
			if errors.Is(err, domainerror.ErrStoreNotFound) {
				return nil, domainerror.StoreErrorFrom(err)
			}
			return nil, fmt.Errorf("failed to find store: %w", err)
		}
	}

	receipt, err := entity.NewReceipt(users[input.UploaderID], input.StoreID)
	if err != nil {
		return nil, domainerror.ReceiptErrorFrom(err)
	}
	receipt.PurchaseDate = input.PurchaseDate

	if uc.options.UploaderIsParticipant {
		receipt.AddParticipant(receipt.Uploader)
	}
	for _, id := range input.ParticipantIDs {
		receipt.AddParticipant(users[id])
	}

	for _, in := range input.Items {
		item, err := receipt.AddItem(in.Name, in.UnitPrice, in.Quantity)
		if err != nil {
			return nil, domainerror.ReceiptErrorFrom(err)
		}
		for _, id := range in.AssigneeIDs {
			item.AssignToUser(users[id])
			receipt.AddParticipant(users[id])
		}
	}

	if err := uc.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}

	return &CreateReceiptOutput{Receipt: receipt}, nil
}

// loadUsers fetches every referenced user once so the receipt shares one
// *entity.User per ID.
func (uc *CreateReceiptUseCase) loadUsers(ctx context.Context, input CreateReceiptInput) (map[uuid.UUID]*entity.User, error) {
	ids := []uuid.UUID{input.UploaderID}
	ids = append(ids, input.ParticipantIDs...)
	for _, item := range input.Items {
		ids = append(ids, item.AssigneeIDs...)
	}

	found, err := uc.userRepo.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	users := make(map[uuid.UUID]*entity.User, len(found))
	for _, u := range found {
		users[u.ID] = u
	}

	if _, ok := users[input.UploaderID]; !ok {
		return nil, domainerror.UserErrorFrom(domainerror.ErrUserNotFound)
	}
	for _, id := range ids {
		if _, ok := users[id]; !ok {
			return nil, domainerror.NewReceiptError(
				domainerror.ErrCodeUnknownAssignee,
				fmt.Sprintf("user %s does not exist", id),
				domainerror.ErrUserNotFound,
			)
		}
	}
	return users, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}
