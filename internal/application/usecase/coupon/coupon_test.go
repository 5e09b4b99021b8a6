package coupon

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

type MockStoreRepo struct {
	mock.Mock
}

func (m *MockStoreRepo) Create(ctx context.Context, store *entity.Store) error {
	return m.Called(ctx, store).Error(0)
}

func (m *MockStoreRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *MockStoreRepo) Update(ctx context.Context, store *entity.Store) error {
	return m.Called(ctx, store).Error(0)
}

type MockCouponRepo struct {
	mock.Mock
}

func (m *MockCouponRepo) Increment(ctx context.Context, userID, storeID uuid.UUID, goal int) (*entity.Coupon, bool, error) {
	args := m.Called(ctx, userID, storeID, goal)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*entity.Coupon), args.Bool(1), args.Error(2)
}

func (m *MockCouponRepo) FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*entity.Coupon, error) {
	args := m.Called(ctx, userID, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Coupon), args.Error(1)
}

func (m *MockCouponRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CouponWithStore, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CouponWithStore), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func couponStore(t *testing.T, enabled bool, goal int) *entity.Store {
	t.Helper()
	store, err := entity.NewStore("동네빵집")
	require.NoError(t, err)
	if goal > 0 {
		require.NoError(t, store.SetCouponGoal(goal))
	}
	if enabled {
		store.EnableCouponSystem()
	}
	return store
}

func TestAwardCouponUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("stamps card when programme enabled", func(t *testing.T) {
		store := couponStore(t, true, 10)
		stores := new(MockStoreRepo)
		coupons := new(MockCouponRepo)
		card := entity.NewCoupon(userID, store.ID)
		card.Count = 3
		stores.On("FindByID", mock.Anything, store.ID).Return(store, nil)
		coupons.On("Increment", mock.Anything, userID, store.ID, 10).Return(card, false, nil)

		output, err := NewAwardCouponUseCase(stores, coupons).Execute(context.Background(), AwardCouponInput{UserID: userID, StoreID: store.ID})

		require.NoError(t, err)
		assert.True(t, output.Awarded)
		assert.False(t, output.Completed)
		assert.Equal(t, 3, output.Coupon.Count)
		coupons.AssertExpectations(t)
	})

	t.Run("reports completed card", func(t *testing.T) {
		store := couponStore(t, true, 2)
		stores := new(MockStoreRepo)
		coupons := new(MockCouponRepo)
		stores.On("FindByID", mock.Anything, store.ID).Return(store, nil)
		coupons.On("Increment", mock.Anything, userID, store.ID, 2).Return(entity.NewCoupon(userID, store.ID), true, nil)

		output, err := NewAwardCouponUseCase(stores, coupons).Execute(context.Background(), AwardCouponInput{UserID: userID, StoreID: store.ID})

		require.NoError(t, err)
		assert.True(t, output.Completed)
	})

	t.Run("disabled programme is a no-op", func(t *testing.T) {
		store := couponStore(t, false, 10)
		stores := new(MockStoreRepo)
		coupons := new(MockCouponRepo)
		stores.On("FindByID", mock.Anything, store.ID).Return(store, nil)

		output, err := NewAwardCouponUseCase(stores, coupons).Execute(context.Background(), AwardCouponInput{UserID: userID, StoreID: store.ID})

		require.NoError(t, err)
		assert.False(t, output.Awarded)
		coupons.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown store is a no-op", func(t *testing.T) {
		stores := new(MockStoreRepo)
		coupons := new(MockCouponRepo)
		stores.On("FindByID", mock.Anything, mock.Anything).Return(nil, domainerror.ErrStoreNotFound)

		output, err := NewAwardCouponUseCase(stores, coupons).Execute(context.Background(), AwardCouponInput{UserID: userID, StoreID: uuid.New()})

		require.NoError(t, err)
		assert.False(t, output.Awarded)
	})

	t.Run("increment failure", func(t *testing.T) {
		store := couponStore(t, true, 0)
		stores := new(MockStoreRepo)
		coupons := new(MockCouponRepo)
		stores.On("FindByID", mock.Anything, store.ID).Return(store, nil)
		coupons.On("Increment", mock.Anything, userID, store.ID, 0).Return(nil, false, errors.New("deadlock"))

		_, err := NewAwardCouponUseCase(stores, coupons).Execute(context.Background(), AwardCouponInput{UserID: userID, StoreID: store.ID})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to increment coupon")
	})
}

func TestListCouponsUseCase_Execute(t *testing.T) {
	t.Run("lists cards of an existing user", func(t *testing.T) {
		user, err := entity.NewUser("하늘", decimal.Zero)
		require.NoError(t, err)
		users := new(MockUserRepo)
		coupons := new(MockCouponRepo)
		cards := []*entity.CouponWithStore{{Coupon: entity.NewCoupon(user.ID, uuid.New()), StoreName: "동네빵집"}}
		users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		coupons.On("ListByUser", mock.Anything, user.ID).Return(cards, nil)

		output, err := NewListCouponsUseCase(users, coupons).Execute(context.Background(), ListCouponsInput{UserID: user.ID})

		require.NoError(t, err)
		assert.Equal(t, cards, output.Coupons)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(MockUserRepo)
		coupons := new(MockCouponRepo)
		users.On("FindByID", mock.Anything, mock.Anything).Return(nil, domainerror.ErrUserNotFound)

		_, err := NewListCouponsUseCase(users, coupons).Execute(context.Background(), ListCouponsInput{UserID: uuid.New()})

		var userErr *domainerror.UserError
		require.ErrorAs(t, err, &userErr)
		assert.Equal(t, domainerror.ErrCodeUserNotFound, userErr.Code)
		coupons.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
	})
}
