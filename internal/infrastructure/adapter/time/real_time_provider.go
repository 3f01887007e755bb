package time

import (
	stdtime "time"

	"github.com/Alex-KostPy/roofnn/internal/domain/port/core"
)

// RealTimeProvider implements core.TimeProvider with the system clock
type RealTimeProvider struct{}

// NewRealTimeProvider creates a new real time provider
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{}
}

// Now returns the current UTC time
func (p *RealTimeProvider) Now() stdtime.Time {
	return stdtime.Now().UTC()
}

// Since returns the elapsed time since t
func (p *RealTimeProvider) Since(t stdtime.Time) stdtime.Duration {
	return stdtime.Since(t)
}
