// Package clock abstracts the current time so recorded baselines can be
// tested deterministically.
package clock

import "time"

// Clock provides the current time.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system time.
type RealClock struct{}

// Now returns the current system time in UTC, truncated to whole seconds so it
// is stable once written to the hash database.
func (c *RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// FakeClock implements Clock with a fixed time for testing.
type FakeClock struct {
	current time.Time
}

// NewFakeClock creates a new FakeClock with the given time.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{current: t}
}

// Now returns the fixed time.
func (c *FakeClock) Now() time.Time {
	return c.current
}

// Advance moves the fixed time forward by the given duration.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
