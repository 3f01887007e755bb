package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockTimeProvider is a testify mock for the core.TimeProvider port
type MockTimeProvider struct {
	mock.Mock
}

// NewMockTimeProvider creates a new MockTimeProvider that asserts its
// expectations when the test finishes
func NewMockTimeProvider(t *testing.T) *MockTimeProvider {
	m := &MockTimeProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTimeProvider) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

func (m *MockTimeProvider) Since(t time.Time) time.Duration {
	args := m.Called(t)
	return args.Get(0).(time.Duration)
}
