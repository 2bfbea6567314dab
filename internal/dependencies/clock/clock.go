package clock

import (
	"time"

	"github.com/mcoot/elotrack/internal/model"
)

// Clock supplies the current time so that "today" can be fixed in tests
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the current calendar day according to c, as UTC midnight
func Today(c Clock) time.Time {
	return model.DateOf(c.Now())
}
