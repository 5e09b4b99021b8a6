package receipt

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

func mustUser(t *testing.T, name string) *entity.User {
	t.Helper()
	u, err := entity.NewUser(name, decimal.NewFromInt(10000))
	require.NoError(t, err)
	return u
}

func TestCreateReceiptUseCase_Execute(t *testing.T) {
	uploader := mustUser(t, "철수")
	friend := mustUser(t, "영희")
	eater := mustUser(t, "민수")

	t.Run("assignees join the participants", func(t *testing.T) {
		receipts := new(MockReceiptRepo)
		users := new(MockUserRepo)
		stores := new(MockStoreRepo)
		users.On("FindByIDs", mock.Anything, []uuid.UUID{uploader.ID, friend.ID, eater.ID}).
			Return([]*entity.User{uploader, friend, eater}, nil)
		receipts.On("Create", mock.Anything, mock.AnythingOfType("*entity.Receipt")).Return(nil)

		uc := NewCreateReceiptUseCase(receipts, users, stores, Options{UploaderIsParticipant: true})
		output, err := uc.Execute(context.Background(), CreateReceiptInput{
			UploaderID:     uploader.ID,
			ParticipantIDs: []uuid.UUID{friend.ID},
			Items: []ItemInput{
				{Name: "떡볶이", UnitPrice: decimal.NewFromInt(4000), Quantity: 2, AssigneeIDs: []uuid.UUID{friend.ID, eater.ID}},
				{Name: "순대", UnitPrice: decimal.NewFromInt(3000), Quantity: 1},
			},
		})

		require.NoError(t, err)
		receipt := output.Receipt
		assert.Equal(t, uploader, receipt.Uploader)
		assert.Equal(t, []*entity.User{uploader, friend, eater}, receipt.Participants)
		require.Len(t, receipt.Items, 2)
		assert.True(t, receipt.CalculateTotal().Equal(decimal.NewFromInt(11000)))
		assert.Equal(t, []*entity.User{friend, eater}, receipt.Items[0].AssignedUsers())
		assert.False(t, receipt.Items[1].IsAssigned())
		stores.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("uploader not a participant when disabled", func(t *testing.T) {
		receipts := new(MockReceiptRepo)
		users := new(MockUserRepo)
		users.On("FindByIDs", mock.Anything, mock.Anything).Return([]*entity.User{uploader}, nil)
		receipts.On("Create", mock.Anything, mock.Anything).Return(nil)

		output, err := NewCreateReceiptUseCase(receipts, users, new(MockStoreRepo), Options{}).
			Execute(context.Background(), CreateReceiptInput{UploaderID: uploader.ID})

		require.NoError(t, err)
		assert.Empty(t, output.Receipt.Participants)
	})

	t.Run("validates store", func(t *testing.T) {
		users := new(MockUserRepo)
		stores := new(MockStoreRepo)
		storeID := uuid.New()
		users.On("FindByIDs", mock.Anything, mock.Anything).Return([]*entity.User{uploader}, nil)
		stores.On("FindByID", mock.Anything, storeID).Return(nil, domainerror.ErrStoreNotFound)

		_, err := NewCreateReceiptUseCase(new(MockReceiptRepo), users, stores, Options{}).
			Execute(context.Background(), CreateReceiptInput{UploaderID: uploader.ID, StoreID: &storeID})

		var storeErr *domainerror.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, domainerror.ErrCodeStoreNotFound, storeErr.Code)
	})

	tests := []struct {
		name         string
		input        CreateReceiptInput
		found        []*entity.User
		expectedCode domainerror.ReceiptErrorCode
	}{
		{
			name:         "missing uploader",
			input:        CreateReceiptInput{},
			expectedCode: domainerror.ErrCodeMissingUploader,
		},
		{
			name:         "unknown assignee",
			input:        CreateReceiptInput{UploaderID: uploader.ID, Items: []ItemInput{{Name: "김밥", UnitPrice: decimal.NewFromInt(3000), Quantity: 1, AssigneeIDs: []uuid.UUID{uuid.New()}}}},
			found:        []*entity.User{uploader},
			expectedCode: domainerror.ErrCodeUnknownAssignee,
		},
		{
			name:         "negative price",
			input:        CreateReceiptInput{UploaderID: uploader.ID, Items: []ItemInput{{Name: "김밥", UnitPrice: decimal.NewFromInt(-1), Quantity: 1}}},
			found:        []*entity.User{uploader},
			expectedCode: domainerror.ErrCodeNegativePrice,
		},
		{
			name:         "zero quantity",
			input:        CreateReceiptInput{UploaderID: uploader.ID, Items: []ItemInput{{Name: "김밥", UnitPrice: decimal.NewFromInt(3000), Quantity: 0}}},
			found:        []*entity.User{uploader},
			expectedCode: domainerror.ErrCodeInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			receipts := new(MockReceiptRepo)
			users := new(MockUserRepo)
			users.On("FindByIDs", mock.Anything, mock.Anything).Return(tt.found, nil).Maybe()

			_, err := NewCreateReceiptUseCase(receipts, users, new(MockStoreRepo), Options{}).Execute(context.Background(), tt.input)

			var receiptErr *domainerror.ReceiptError
			require.ErrorAs(t, err, &receiptErr)
			assert.Equal(t, tt.expectedCode, receiptErr.Code)
			receipts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAssignItemUseCase_Execute(t *testing.T) {
	setup := func(t *testing.T) (*entity.Receipt, *entity.ReceiptItem, *entity.User, *entity.User) {
		uploader := mustUser(t, "철수")
		friend := mustUser(t, "영희")
		receipt, err := entity.NewReceipt(uploader, nil)
		require.NoError(t, err)
		receipt.AddParticipant(uploader)
		item, err := receipt.AddItem("치킨", decimal.NewFromInt(18000), 1)
		require.NoError(t, err)
		item.AssignToUser(uploader)
		return receipt, item, uploader, friend
	}

	t.Run("adds new assignee and keeps existing", func(t *testing.T) {
		receipt, item, uploader, friend := setup(t)
		receipts := new(MockReceiptRepo)
		users := new(MockUserRepo)
		receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
		users.On("FindByIDs", mock.Anything, []uuid.UUID{friend.ID}).Return([]*entity.User{friend}, nil)
		receipts.On("Update", mock.Anything, receipt).Return(nil)

		output, err := NewAssignItemUseCase(receipts, users).Execute(context.Background(), AssignItemInput{
			ReceiptID: receipt.ID,
			ItemID:    item.ID,
			UserIDs:   []uuid.UUID{uploader.ID, friend.ID, friend.ID},
		})

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{friend.ID}, output.Added)
		assert.Equal(t, []*entity.User{uploader, friend}, output.Item.AssignedUsers())
		assert.True(t, receipt.HasParticipant(friend.ID))
		receipts.AssertExpectations(t)
	})

	t.Run("no-op assignment skips the update", func(t *testing.T) {
		receipt, item, uploader, _ := setup(t)
		receipts := new(MockReceiptRepo)
		users := new(MockUserRepo)
		receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)

		output, err := NewAssignItemUseCase(receipts, users).Execute(context.Background(), AssignItemInput{
			ReceiptID: receipt.ID,
			ItemID:    item.ID,
			UserIDs:   []uuid.UUID{uploader.ID},
		})

		require.NoError(t, err)
		assert.Empty(t, output.Added)
		receipts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		users.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
	})

	t.Run("unknown item", func(t *testing.T) {
		receipt, _, uploader, _ := setup(t)
		receipts := new(MockReceiptRepo)
		receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)

		_, err := NewAssignItemUseCase(receipts, new(MockUserRepo)).Execute(context.Background(), AssignItemInput{
			ReceiptID: receipt.ID,
			ItemID:    uuid.New(),
			UserIDs:   []uuid.UUID{uploader.ID},
		})

		var receiptErr *domainerror.ReceiptError
		require.ErrorAs(t, err, &receiptErr)
		assert.Equal(t, domainerror.ErrCodeReceiptItemNotFound, receiptErr.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		receipt, item, _, _ := setup(t)
		receipts := new(MockReceiptRepo)
		users := new(MockUserRepo)
		stranger := uuid.New()
		receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
		users.On("FindByIDs", mock.Anything, []uuid.UUID{stranger}).Return([]*entity.User{}, nil)

		_, err := NewAssignItemUseCase(receipts, users).Execute(context.Background(), AssignItemInput{
			ReceiptID: receipt.ID,
			ItemID:    item.ID,
			UserIDs:   []uuid.UUID{stranger},
		})

		var receiptErr *domainerror.ReceiptError
		require.ErrorAs(t, err, &receiptErr)
		assert.Equal(t, domainerror.ErrCodeUnknownAssignee, receiptErr.Code)
		receipts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("receipt not found", func(t *testing.T) {
		receipts := new(MockReceiptRepo)
		receipts.On("FindByID", mock.Anything, mock.Anything).Return(nil, domainerror.ErrReceiptNotFound)

		_, err := NewGetReceiptUseCase(receipts).Execute(context.Background(), GetReceiptInput{ReceiptID: uuid.New()})

		var receiptErr *domainerror.ReceiptError
		require.ErrorAs(t, err, &receiptErr)
		assert.Equal(t, domainerror.ErrCodeReceiptNotFound, receiptErr.Code)
	})
}
