package core

import (
	"testing"

	"github.com/stretchr/testify/mock"

	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
)

// MockLogger is a testify mock for the core.Logger port
type MockLogger struct {
	mock.Mock
}

// NewMockLogger creates a new MockLogger that asserts its expectations when
// the test finishes
func NewMockLogger(t *testing.T) *MockLogger {
	m := &MockLogger{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLogger) SetLevel(level coreport.LogLevel) {
	m.Called(level)
}

func (m *MockLogger) GetLevel() coreport.LogLevel {
	args := m.Called()
	return args.Get(0).(coreport.LogLevel)
}

func (m *MockLogger) Debug(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Info(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Warn(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Error(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Flush() error {
	args := m.Called()
	return args.Error(0)
}
