package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	persistenceport "github.com/Alex-KostPy/roofnn/internal/domain/port/persistence"
)

// MockUnitOfWork is a testify mock for persistence.UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

// NewMockUnitOfWork creates a new MockUnitOfWork that asserts its
// expectations when the test finishes
func NewMockUnitOfWork(t *testing.T) *MockUnitOfWork {
	m := &MockUnitOfWork{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) GetAccountRepository(ctx context.Context) persistenceport.AccountRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistenceport.AccountRepository)
}

func (m *MockUnitOfWork) GetSpotRepository(ctx context.Context) persistenceport.SpotRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistenceport.SpotRepository)
}

func (m *MockUnitOfWork) GetAccessRepository(ctx context.Context) persistenceport.AccessRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistenceport.AccessRepository)
}
