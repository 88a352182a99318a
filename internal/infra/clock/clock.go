// Package clock provides the system implementation of the domain Clock.
package clock

import (
	"time"

	"market/internal/domain/service"
)

type systemClock struct{}

// New returns a Clock backed by the system time, normalized to UTC.
func New() service.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed returns a Clock frozen at the given instant. Intended for tests.
func Fixed(at time.Time) service.Clock {
	return fixedClock{at: at.UTC()}
}

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time {
	return c.at
}
