package split

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

type MockReceiptRepo struct {
	mock.Mock
}

func (m *MockReceiptRepo) Create(ctx context.Context, receipt *entity.Receipt) error {
	return m.Called(ctx, receipt).Error(0)
}

func (m *MockReceiptRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Receipt), args.Error(1)
}

func (m *MockReceiptRepo) Update(ctx context.Context, receipt *entity.Receipt) error {
	return m.Called(ctx, receipt).Error(0)
}

func TestCalculateSplitUseCase_Execute(t *testing.T) {
	tests := []struct {
		name     string
		policy   string
		expected map[string]int64
	}{
		{"default policy is assignment", "", map[string]int64{"철수": 3334, "영희": 7833, "민수": 9333}},
		{"individual items only", "individual", map[string]int64{"영희": 4500, "민수": 6000}},
		{"shared items only", "shared", map[string]int64{"철수": 3334, "영희": 3333, "민수": 3333}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLunch(t, true)
			repo := new(MockReceiptRepo)
			repo.On("FindByID", mock.Anything, l.receipt.ID).Return(l.receipt, nil)

			output, err := NewCalculateSplitUseCase(repo, NewService()).Execute(context.Background(), CalculateSplitInput{
				ReceiptID: l.receipt.ID,
				Policy:    tt.policy,
			})

			require.NoError(t, err)
			assert.Equal(t, len(tt.expected), output.Split.Len())
			for _, u := range output.Split.Users() {
				want, ok := tt.expected[u.Name]
				require.True(t, ok, "unexpected user %s", u.Name)
				assert.True(t, output.Split.Amount(u.ID).Equal(decimal.NewFromInt(want)), "%s: got %s", u.Name, output.Split.Amount(u.ID))
			}
			assert.True(t, output.Total.Equal(decimal.NewFromInt(23500)))
			assert.False(t, output.AllItemsAssigned)
			assert.Equal(t, []uuid.UUID{l.unassigned.ID}, output.UnassignedItems)
		})
	}
}

func TestCalculateSplitUseCase_Errors(t *testing.T) {
	t.Run("invalid policy", func(t *testing.T) {
		repo := new(MockReceiptRepo)

		_, err := NewCalculateSplitUseCase(repo, NewService()).Execute(context.Background(), CalculateSplitInput{
			ReceiptID: uuid.New(),
			Policy:    "evenly",
		})

		var receiptErr *domainerror.ReceiptError
		require.ErrorAs(t, err, &receiptErr)
		assert.Equal(t, domainerror.ErrCodeInvalidSplitPolicy, receiptErr.Code)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("receipt not found", func(t *testing.T) {
		repo := new(MockReceiptRepo)
		repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, domainerror.ErrReceiptNotFound)

		_, err := NewCalculateSplitUseCase(repo, NewService()).Execute(context.Background(), CalculateSplitInput{ReceiptID: uuid.New()})

		var receiptErr *domainerror.ReceiptError
		require.ErrorAs(t, err, &receiptErr)
		assert.Equal(t, domainerror.ErrCodeReceiptNotFound, receiptErr.Code)
	})
}
