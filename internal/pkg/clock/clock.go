// Package clock abstracts the time source. Session expiry and the story
// typed-reveal are computed from Now(), so tests inject a fixed clock
// instead of sleeping.
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=clockmock github.com/fractalshard/game-api/internal/pkg/clock Clock

// Clock is the time source
type Clock interface {
	Now() time.Time
}

// Real reads the system clock
type Real struct{}

// Now returns the current system time
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns the system clock
func New() Clock {
	return &Real{}
}
