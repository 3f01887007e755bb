package notify

import (
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
)

// MockDispatcher is a testify mock for notify.Dispatcher
type MockDispatcher struct {
	mock.Mock
}

// NewMockDispatcher creates a new MockDispatcher that asserts its
// expectations when the test finishes
func NewMockDispatcher(t *testing.T) *MockDispatcher {
	m := &MockDispatcher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDispatcher) Dispatch(spot *entity.Spot) {
	m.Called(spot)
}
