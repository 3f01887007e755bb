package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
)

// MockAccountRepository is a testify mock for persistence.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a new MockAccountRepository that asserts
// its expectations when the test finishes
func NewMockAccountRepository(t *testing.T) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountRepository) GetByTgID(ctx context.Context, tgID int64) (*entity.Account, error) {
	args := m.Called(ctx, tgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) GetOrCreateForUpdate(ctx context.Context, tgID int64) (*entity.Account, error) {
	args := m.Called(ctx, tgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}
