package receipt

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

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
