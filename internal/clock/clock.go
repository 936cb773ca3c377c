// Package clock abstracts wall-clock time so callers can be tested with
// a deterministic fake.
package clock

import (
	"sync"
	"time"
)

// Clock supplies the current time. Implementations must be safe for
// concurrent use and non-decreasing between calls.
type Clock interface {
	Now() time.Time
}

// Unix returns the clock's current time as epoch seconds.
func Unix(c Clock) int64 {
	return c.Now().Unix()
}

type realClock struct{}

// Real returns a Clock backed by time.Now.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

// FakeClock is a manually driven Clock. Time stands still until Advance
// or Set is called.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
}

// Fake returns a FakeClock starting at initial.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Advance moves the fake time forward by d. Negative durations are ignored.
func (c *FakeClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}

// Set jumps to t if it is not before the current fake time.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	if !t.Before(c.current) {
		c.current = t
	}
	c.mu.Unlock()
}
