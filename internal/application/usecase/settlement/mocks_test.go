package settlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/application/usecase/coupon"
	"github.com/receipt-split/backend/internal/domain/entity"
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

type MockSettlementRepo struct {
	mock.Mock
}

func (m *MockSettlementRepo) Record(ctx context.Context, settlement *entity.Settlement, debited []*entity.User) error {
	return m.Called(ctx, settlement, debited).Error(0)
}

func (m *MockSettlementRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Settlement, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]*entity.Settlement), args.Error(1)
}

func (m *MockSettlementRepo) ListByReceipt(ctx context.Context, receiptID uuid.UUID) ([]*entity.Settlement, error) {
	args := m.Called(ctx, receiptID)
	return args.Get(0).([]*entity.Settlement), args.Error(1)
}

type MockLocker struct {
	mock.Mock
	released int
}

func (m *MockLocker) LockUsers(ctx context.Context, userIDs []uuid.UUID) (func(), error) {
	args := m.Called(ctx, userIDs)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func() { m.released++ }, nil
}

type MockCouponAwarder struct {
	mock.Mock
}

func (m *MockCouponAwarder) Execute(ctx context.Context, input coupon.AwardCouponInput) (*coupon.AwardCouponOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.AwardCouponOutput), args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) QueueSettlementReceipt(ctx context.Context, input adapter.QueueSettlementReceiptInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockEmailService) QueueShortageNotice(ctx context.Context, input adapter.QueueShortageNoticeInput) error {
	return m.Called(ctx, input).Error(0)
}

type MockObserver struct {
	mock.Mock
}

func (m *MockObserver) ObserveSettlement(settlement *entity.Settlement) {
	m.Called(settlement)
}
