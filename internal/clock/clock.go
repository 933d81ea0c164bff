package clock

import (
	"sync"
	"time"
)

// Clock is the single source of "now" for every time-sensitive component
type Clock interface {
	Now() time.Time
}

// SystemClock passes through to the system clock
type SystemClock struct{}

// NewSystemClock creates a clock backed by time.Now
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns the current system time
func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// ControllableClock is a clock whose time can be moved forwards and backwards.
// It starts at the real time and keeps returning that instant until moved.
type ControllableClock struct {
	mu      sync.RWMutex
	current time.Time
	real    func() time.Time
}

// NewControllableClock creates a controllable clock frozen at the current real time
func NewControllableClock() *ControllableClock {
	return &ControllableClock{current: time.Now(), real: time.Now}
}

// NewControllableClockAt creates a controllable clock frozen at t
func NewControllableClockAt(t time.Time) *ControllableClock {
	return &ControllableClock{current: t, real: time.Now}
}

// Now returns the controlled time
func (c *ControllableClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Advance moves the clock forward by d
func (c *ControllableClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Rewind moves the clock backward by d
func (c *ControllableClock) Rewind(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(-d)
}

// Set pins the clock to t
func (c *ControllableClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// Reset puts the clock back to the real time
func (c *ControllableClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.real()
}
