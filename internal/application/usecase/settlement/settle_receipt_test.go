package settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/application/usecase/coupon"
	"github.com/receipt-split/backend/internal/application/usecase/split"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

type settleFixture struct {
	receipts    *MockReceiptRepo
	settlements *MockSettlementRepo
	locker      *MockLocker
	coupons     *MockCouponAwarder
	emails      *MockEmailService
	observer    *MockObserver
	useCase     *SettleReceiptUseCase
}

func newSettleFixture(options Options) *settleFixture {
	f := &settleFixture{
		receipts:    new(MockReceiptRepo),
		settlements: new(MockSettlementRepo),
		locker:      new(MockLocker),
		coupons:     new(MockCouponAwarder),
		emails:      new(MockEmailService),
		observer:    new(MockObserver),
	}
	splitter := split.NewService()
	f.useCase = NewSettleReceiptUseCase(
		f.receipts,
		f.settlements,
		f.locker,
		NewService(splitter),
		splitter,
		f.coupons,
		f.emails,
		f.observer,
		options,
	)
	return f
}

// sharedPizza is a 10000 pizza shared by 철수 (uploader, 10000) and 영희 (2000), bought at a store.
func sharedPizza(t *testing.T) (*entity.Receipt, *entity.User, *entity.User) {
	t.Helper()
	chulsoo := newUser(t, "철수", 10000)
	chulsoo.Email = "chulsoo@example.com"
	younghee := newUser(t, "영희", 2000)
	younghee.Email = "younghee@example.com"

	storeID := uuid.New()
	receipt, err := entity.NewReceipt(chulsoo, &storeID)
	require.NoError(t, err)
	receipt.AddParticipant(younghee)
	addItem(t, receipt, "피자", 10000, chulsoo, younghee)
	return receipt, chulsoo, younghee
}

func TestSettleReceiptUseCase_BestEffort(t *testing.T) {
	f := newSettleFixture(Options{})
	receipt, chulsoo, younghee := sharedPizza(t)

	f.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil).Twice()
	f.locker.On("LockUsers", mock.Anything, []uuid.UUID{chulsoo.ID, younghee.ID}).Return(nil)
	f.settlements.On("ListByReceipt", mock.Anything, receipt.ID).Return([]*entity.Settlement(nil), nil)
	f.settlements.On("Record", mock.Anything, mock.AnythingOfType("*entity.Settlement"), []*entity.User{chulsoo}).Return(nil)
	f.coupons.On("Execute", mock.Anything, coupon.AwardCouponInput{UserID: chulsoo.ID, StoreID: *receipt.StoreID}).
		Return(&coupon.AwardCouponOutput{Awarded: true}, nil).Once()
	f.emails.On("QueueSettlementReceipt", mock.Anything, mock.MatchedBy(func(in adapter.QueueSettlementReceiptInput) bool {
		return in.UserEmail == chulsoo.Email && in.DepositUsed == "5000" && in.Balance == "5000"
	})).Return(nil).Once()
	f.emails.On("QueueShortageNotice", mock.Anything, adapter.QueueShortageNoticeInput{
		UserEmail: younghee.Email,
		UserName:  younghee.Name,
		ReceiptID: receipt.ID.String(),
		Owed:      "5000",
		Balance:   "2000",
		Shortage:  "3000",
	}).Return(nil).Once()
	f.observer.On("ObserveSettlement", mock.AnythingOfType("*entity.Settlement")).Return().Once()

	output, err := f.useCase.Execute(context.Background(), SettleReceiptInput{
		ReceiptID:  receipt.ID,
		Policy:     "best_effort",
		UseDeposit: true,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.SettlementBestEffort, output.Settlement.Policy)
	assert.False(t, output.Settlement.Succeeded())
	assert.Len(t, output.Settlement.Entries, 2)
	assert.True(t, chulsoo.Balance.Equal(decimal.NewFromInt(5000)))
	assert.True(t, younghee.Balance.Equal(decimal.NewFromInt(2000)))
	assert.True(t, output.Shortages[younghee.ID].Equal(decimal.NewFromInt(3000)))
	assert.NotContains(t, output.Shortages, chulsoo.ID)
	assert.Equal(t, 1, f.locker.released)

	f.receipts.AssertExpectations(t)
	f.settlements.AssertExpectations(t)
	f.coupons.AssertExpectations(t)
	f.emails.AssertExpectations(t)
	f.observer.AssertExpectations(t)
}

func TestSettleReceiptUseCase_SinglePayerCash(t *testing.T) {
	tests := []struct {
		name             string
		cashEarnsCoupons bool
		expectCoupon     bool
	}{
		{"cash earns no coupon by default", false, false},
		{"cash earns coupon when enabled", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSettleFixture(Options{CashEarnsCoupons: tt.cashEarnsCoupons})
			receipt, chulsoo, _ := sharedPizza(t)

			f.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
			f.locker.On("LockUsers", mock.Anything, mock.Anything).Return(nil)
			f.settlements.On("ListByReceipt", mock.Anything, receipt.ID).Return([]*entity.Settlement(nil), nil)
			f.settlements.On("Record", mock.Anything, mock.Anything, []*entity.User(nil)).Return(nil)
			f.emails.On("QueueSettlementReceipt", mock.Anything, mock.Anything).Return(nil)
			f.observer.On("ObserveSettlement", mock.Anything).Return()
			if tt.expectCoupon {
				f.coupons.On("Execute", mock.Anything, mock.Anything).Return(&coupon.AwardCouponOutput{Awarded: true}, nil).Once()
			}

			output, err := f.useCase.Execute(context.Background(), SettleReceiptInput{
				ReceiptID:  receipt.ID,
				Policy:     "single_payer",
				UseDeposit: false,
			})

			require.NoError(t, err)
			result, ok := output.Results.Get(chulsoo.ID)
			require.True(t, ok)
			assert.True(t, result.CashPaid.Equal(decimal.NewFromInt(10000)))
			assert.True(t, chulsoo.Balance.Equal(decimal.NewFromInt(10000)))
			if tt.expectCoupon {
				f.coupons.AssertExpectations(t)
			} else {
				f.coupons.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestSettleReceiptUseCase_AllOrNothingRollsBack(t *testing.T) {
	f := newSettleFixture(Options{})
	receipt, chulsoo, younghee := sharedPizza(t)

	f.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
	f.locker.On("LockUsers", mock.Anything, mock.Anything).Return(nil)
	f.settlements.On("ListByReceipt", mock.Anything, receipt.ID).Return([]*entity.Settlement(nil), nil)
	f.settlements.On("Record", mock.Anything, mock.Anything, []*entity.User(nil)).Return(nil)
	f.emails.On("QueueShortageNotice", mock.Anything, mock.Anything).Return(nil).Once()
	f.observer.On("ObserveSettlement", mock.Anything).Return()

	output, err := f.useCase.Execute(context.Background(), SettleReceiptInput{
		ReceiptID:  receipt.ID,
		Policy:     "all_or_nothing",
		UseDeposit: true,
	})

	require.NoError(t, err)
	assert.False(t, output.Results.AllSucceeded())
	assert.True(t, chulsoo.Balance.Equal(decimal.NewFromInt(10000)))
	assert.True(t, younghee.Balance.Equal(decimal.NewFromInt(2000)))
	assert.Len(t, output.Shortages, 1)
	f.coupons.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	f.emails.AssertNotCalled(t, "QueueSettlementReceipt", mock.Anything, mock.Anything)
}

func TestSettleReceiptUseCase_Errors(t *testing.T) {
	t.Run("invalid policy", func(t *testing.T) {
		f := newSettleFixture(Options{})

		_, err := f.useCase.Execute(context.Background(), SettleReceiptInput{ReceiptID: uuid.New(), Policy: "split"})

		var settlementErr *domainerror.SettlementError
		require.ErrorAs(t, err, &settlementErr)
		assert.Equal(t, domainerror.ErrCodeInvalidSettlementPolicy, settlementErr.Code)
		f.receipts.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("receipt not found", func(t *testing.T) {
		f := newSettleFixture(Options{})
		f.receipts.On("FindByID", mock.Anything, mock.Anything).Return(nil, domainerror.ErrReceiptNotFound)

		_, err := f.useCase.Execute(context.Background(), SettleReceiptInput{ReceiptID: uuid.New(), Policy: "best_effort"})

		var receiptErr *domainerror.ReceiptError
		require.ErrorAs(t, err, &receiptErr)
		assert.Equal(t, domainerror.ErrCodeReceiptNotFound, receiptErr.Code)
	})

	t.Run("lock contention", func(t *testing.T) {
		f := newSettleFixture(Options{})
		receipt, _, _ := sharedPizza(t)
		f.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil).Once()
		f.locker.On("LockUsers", mock.Anything, mock.Anything).Return(domainerror.ErrSettlementInProgress)

		_, err := f.useCase.Execute(context.Background(), SettleReceiptInput{ReceiptID: receipt.ID, Policy: "best_effort"})

		var settlementErr *domainerror.SettlementError
		require.ErrorAs(t, err, &settlementErr)
		assert.Equal(t, domainerror.ErrCodeSettlementInProgress, settlementErr.Code)
		f.settlements.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("receipt users changed while locking", func(t *testing.T) {
		f := newSettleFixture(Options{})
		chulsoo := newUser(t, "철수", 10000)
		before, err := entity.NewReceipt(chulsoo, nil)
		require.NoError(t, err)
		addItem(t, before, "피자", 10000, chulsoo)
		after, _, _ := sharedPizza(t)
		after.ID = before.ID
		after.Uploader = chulsoo
		f.receipts.On("FindByID", mock.Anything, before.ID).Return(before, nil).Once()
		f.receipts.On("FindByID", mock.Anything, before.ID).Return(after, nil).Once()
		f.locker.On("LockUsers", mock.Anything, []uuid.UUID{chulsoo.ID}).Return(nil)

		_, err = f.useCase.Execute(context.Background(), SettleReceiptInput{ReceiptID: before.ID, Policy: "best_effort", UseDeposit: true})

		var settlementErr *domainerror.SettlementError
		require.ErrorAs(t, err, &settlementErr)
		assert.Equal(t, domainerror.ErrCodeSettlementInProgress, settlementErr.Code)
		assert.Equal(t, 1, f.locker.released)
		f.settlements.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unassigned items", func(t *testing.T) {
		f := newSettleFixture(Options{})
		receipt, chulsoo, _ := sharedPizza(t)
		addItem(t, receipt, "콜라", 2000)
		f.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
		f.locker.On("LockUsers", mock.Anything, mock.Anything).Return(nil)

		_, err := f.useCase.Execute(context.Background(), SettleReceiptInput{ReceiptID: receipt.ID, Policy: "best_effort", UseDeposit: true})

		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerror.ErrUnassignedItems))
		assert.True(t, domainerror.IsPrecondition(err))
		assert.True(t, chulsoo.Balance.Equal(decimal.NewFromInt(10000)))
		assert.Equal(t, 1, f.locker.released)
	})

	t.Run("record failure surfaces", func(t *testing.T) {
		f := newSettleFixture(Options{})
		receipt, _, _ := sharedPizza(t)
		f.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
		f.locker.On("LockUsers", mock.Anything, mock.Anything).Return(nil)
		f.settlements.On("ListByReceipt", mock.Anything, receipt.ID).Return([]*entity.Settlement(nil), nil)
		f.settlements.On("Record", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection reset"))

		_, err := f.useCase.Execute(context.Background(), SettleReceiptInput{ReceiptID: receipt.ID, Policy: "best_effort", UseDeposit: true})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to record settlement")
		f.observer.AssertNotCalled(t, "ObserveSettlement", mock.Anything)
	})
}

// earlierSettlement records one earlier run over receipt with the given per-user outcomes.
func earlierSettlement(receipt *entity.Receipt, policy entity.SettlementPolicy, results map[*entity.User]entity.TransactionResult) *entity.Settlement {
	s := &entity.Settlement{ID: uuid.New(), ReceiptID: receipt.ID, Policy: policy, UseDeposit: true}
	for user, result := range results {
		s.Entries = append(s.Entries, entity.SettlementEntry{UserID: user.ID, Result: result})
	}
	return s
}

func TestSettleReceiptUseCase_EarlierSettlements(t *testing.T) {
	tests := []struct {
		name    string
		policy  string
		earlier func(receipt *entity.Receipt, chulsoo, younghee *entity.User) *entity.Settlement
	}{
		{
			name:   "fully settled receipt",
			policy: "all_or_nothing",
			earlier: func(r *entity.Receipt, chulsoo, younghee *entity.User) *entity.Settlement {
				return earlierSettlement(r, entity.SettlementAllOrNothing, map[*entity.User]entity.TransactionResult{
					chulsoo:  entity.DepositTransaction(decimal.NewFromInt(5000)),
					younghee: entity.DepositTransaction(decimal.NewFromInt(5000)),
				})
			},
		},
		{
			name:   "single payer after a cash settlement",
			policy: "single_payer",
			earlier: func(r *entity.Receipt, chulsoo, _ *entity.User) *entity.Settlement {
				return earlierSettlement(r, entity.SettlementSinglePayer, map[*entity.User]entity.TransactionResult{
					chulsoo: entity.CashTransaction(decimal.NewFromInt(10000)),
				})
			},
		},
		{
			name:   "single payer after a partial settlement",
			policy: "single_payer",
			earlier: func(r *entity.Receipt, chulsoo, younghee *entity.User) *entity.Settlement {
				return earlierSettlement(r, entity.SettlementBestEffort, map[*entity.User]entity.TransactionResult{
					chulsoo:  entity.DepositTransaction(decimal.NewFromInt(5000)),
					younghee: entity.FailedTransaction(),
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSettleFixture(Options{})
			receipt, chulsoo, younghee := sharedPizza(t)
			f.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
			f.locker.On("LockUsers", mock.Anything, mock.Anything).Return(nil)
			f.settlements.On("ListByReceipt", mock.Anything, receipt.ID).
				Return([]*entity.Settlement{tt.earlier(receipt, chulsoo, younghee)}, nil)

			_, err := f.useCase.Execute(context.Background(), SettleReceiptInput{ReceiptID: receipt.ID, Policy: tt.policy, UseDeposit: true})

			var settlementErr *domainerror.SettlementError
			require.ErrorAs(t, err, &settlementErr)
			assert.Equal(t, domainerror.ErrCodeReceiptAlreadySettled, settlementErr.Code)
			assert.ErrorIs(t, err, domainerror.ErrReceiptAlreadySettled)
			assert.True(t, chulsoo.Balance.Equal(decimal.NewFromInt(10000)))
			assert.True(t, younghee.Balance.Equal(decimal.NewFromInt(2000)))
			assert.Equal(t, 1, f.locker.released)
			f.settlements.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSettleReceiptUseCase_RetryAfterFailedAllOrNothing(t *testing.T) {
	f := newSettleFixture(Options{})
	receipt, chulsoo, younghee := sharedPizza(t)
	require.NoError(t, younghee.AddBalance(decimal.NewFromInt(3000)))
	failed := earlierSettlement(receipt, entity.SettlementAllOrNothing, map[*entity.User]entity.TransactionResult{
		chulsoo:  entity.FailedTransaction(),
		younghee: entity.FailedTransaction(),
	})

	f.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
	f.locker.On("LockUsers", mock.Anything, mock.Anything).Return(nil)
	f.settlements.On("ListByReceipt", mock.Anything, receipt.ID).Return([]*entity.Settlement{failed}, nil)
	f.settlements.On("Record", mock.Anything, mock.Anything, []*entity.User{chulsoo, younghee}).Return(nil)
	f.coupons.On("Execute", mock.Anything, mock.Anything).Return(&coupon.AwardCouponOutput{Awarded: true}, nil)
	f.emails.On("QueueSettlementReceipt", mock.Anything, mock.Anything).Return(nil)
	f.observer.On("ObserveSettlement", mock.Anything).Return()

	output, err := f.useCase.Execute(context.Background(), SettleReceiptInput{ReceiptID: receipt.ID, Policy: "all_or_nothing", UseDeposit: true})

	require.NoError(t, err)
	assert.True(t, output.Settlement.Succeeded())
	assert.True(t, chulsoo.Balance.Equal(decimal.NewFromInt(5000)))
	assert.True(t, younghee.Balance.Equal(decimal.Zero))
}

func TestSettleReceiptUseCase_RetryChargesOnlyUnpaidUsers(t *testing.T) {
	f := newSettleFixture(Options{})
	receipt, chulsoo, younghee := sharedPizza(t)
	require.NoError(t, younghee.AddBalance(decimal.NewFromInt(4000)))
	partial := earlierSettlement(receipt, entity.SettlementBestEffort, map[*entity.User]entity.TransactionResult{
		chulsoo:  entity.DepositTransaction(decimal.NewFromInt(5000)),
		younghee: entity.FailedTransaction(),
	})

	f.receipts.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
	f.locker.On("LockUsers", mock.Anything, mock.Anything).Return(nil)
	f.settlements.On("ListByReceipt", mock.Anything, receipt.ID).Return([]*entity.Settlement{partial}, nil)
	f.settlements.On("Record", mock.Anything, mock.Anything, []*entity.User{younghee}).Return(nil)
	f.coupons.On("Execute", mock.Anything, coupon.AwardCouponInput{UserID: younghee.ID, StoreID: *receipt.StoreID}).
		Return(&coupon.AwardCouponOutput{Awarded: true}, nil).Once()
	f.emails.On("QueueSettlementReceipt", mock.Anything, mock.MatchedBy(func(in adapter.QueueSettlementReceiptInput) bool {
		return in.UserEmail == younghee.Email
	})).Return(nil).Once()
	f.observer.On("ObserveSettlement", mock.Anything).Return()

	output, err := f.useCase.Execute(context.Background(), SettleReceiptInput{ReceiptID: receipt.ID, Policy: "best_effort", UseDeposit: true})

	require.NoError(t, err)
	require.Len(t, output.Settlement.Entries, 1)
	assert.Equal(t, younghee.ID, output.Settlement.Entries[0].UserID)
	assert.False(t, output.Owed.Has(chulsoo.ID))
	assert.True(t, chulsoo.Balance.Equal(decimal.NewFromInt(10000)))
	assert.True(t, younghee.Balance.Equal(decimal.NewFromInt(1000)))
	f.coupons.AssertExpectations(t)
	f.emails.AssertExpectations(t)
}
