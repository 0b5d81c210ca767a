package queue

import "time"

// runClock tracks the remaining run budget of a bounded listen. The budget
// shrinks by measured wall-clock time between Ticks, never below zero. An
// unbounded clock never expires.
type runClock struct {
	unbounded bool
	remaining time.Duration
	mark      time.Time
	now       func() time.Time
}

func newRunClock(timeout time.Duration, now func() time.Time) *runClock {
	if now == nil {
		now = time.Now
	}
	if timeout < 0 {
		return &runClock{unbounded: true, now: now}
	}
	return &runClock{remaining: timeout, mark: now(), now: now}
}

// Budget returns the remaining wait allowance and whether the clock is
// bounded at all.
func (c *runClock) Budget() (time.Duration, bool) {
	if c.unbounded {
		return 0, false
	}
	return c.remaining, true
}

// Tick charges the wall-clock time elapsed since the previous Tick (or
// construction) against the budget and returns what is left.
func (c *runClock) Tick() time.Duration {
	if c.unbounded {
		return 0
	}
	now := c.now()
	c.remaining -= now.Sub(c.mark)
	if c.remaining < 0 {
		c.remaining = 0
	}
	c.mark = now
	return c.remaining
}

// Expired reports whether a bounded budget has run out.
func (c *runClock) Expired() bool {
	return !c.unbounded && c.remaining <= 0
}
