package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
)

// MockSpotRepository is a testify mock for persistence.SpotRepository
type MockSpotRepository struct {
	mock.Mock
}

// NewMockSpotRepository creates a new MockSpotRepository that asserts its
// expectations when the test finishes
func NewMockSpotRepository(t *testing.T) *MockSpotRepository {
	m := &MockSpotRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSpotRepository) GetByID(ctx context.Context, id uint64) (*entity.Spot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Spot), args.Error(1)
}

func (m *MockSpotRepository) GetActive(ctx context.Context, id uint64) (*entity.Spot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Spot), args.Error(1)
}

func (m *MockSpotRepository) Create(ctx context.Context, spot *entity.Spot) error {
	args := m.Called(ctx, spot)
	return args.Error(0)
}

func (m *MockSpotRepository) Activate(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSpotRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSpotRepository) ListActive(ctx context.Context) ([]*entity.Spot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Spot), args.Error(1)
}

func (m *MockSpotRepository) ListActiveIDsByAuthor(ctx context.Context, tgID int64) ([]uint64, error) {
	args := m.Called(ctx, tgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint64), args.Error(1)
}
