package testutil

import (
	"sync"
	"time"
)

// Clock is a settable clock that keeps ticking from the time it was set to.
type Clock struct {
	mu               sync.Mutex
	currentStartTime time.Time
	updatedAt        time.Time
}

// NewClock creates a clock reading the real time.
func NewClock() *Clock {
	now := time.Now()
	return &Clock{
		currentStartTime: now,
		updatedAt:        now,
	}
}

// SetCurrentTime moves the clock to currentTime.
func (c *Clock) SetCurrentTime(currentTime time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentStartTime = currentTime
	c.updatedAt = time.Now()
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentStartTime = c.currentStartTime.Add(d)
}

// Now returns the clock's current time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentStartTime.Add(time.Since(c.updatedAt))
}
