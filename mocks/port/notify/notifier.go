package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
)

// MockModeratorNotifier is a testify mock for notify.ModeratorNotifier
type MockModeratorNotifier struct {
	mock.Mock
}

// NewMockModeratorNotifier creates a new MockModeratorNotifier that asserts
// its expectations when the test finishes
func NewMockModeratorNotifier(t *testing.T) *MockModeratorNotifier {
	m := &MockModeratorNotifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockModeratorNotifier) NotifyNewSpot(ctx context.Context, spot *entity.Spot) error {
	args := m.Called(ctx, spot)
	return args.Error(0)
}
