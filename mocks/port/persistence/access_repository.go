package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockAccessRepository is a testify mock for persistence.AccessRepository
type MockAccessRepository struct {
	mock.Mock
}

// NewMockAccessRepository creates a new MockAccessRepository that asserts
// its expectations when the test finishes
func NewMockAccessRepository(t *testing.T) *MockAccessRepository {
	m := &MockAccessRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccessRepository) Has(ctx context.Context, tgID int64, spotID uint64) (bool, error) {
	args := m.Called(ctx, tgID, spotID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccessRepository) Grant(ctx context.Context, tgID int64, spotID uint64) error {
	args := m.Called(ctx, tgID, spotID)
	return args.Error(0)
}
