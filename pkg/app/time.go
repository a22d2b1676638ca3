package app

import "time"

// Clock tracks frame timing for an app: the time since the previous tick
// and since the app started.
type Clock struct {
	start time.Time
	last  time.Time
	delta float64
}

// NewClock creates a clock starting now.
func NewClock() *Clock {
	now := time.Now()
	return &Clock{start: now, last: now}
}

// Tick advances the clock to the current time. The host calls this once
// per update.
func (c *Clock) Tick() {
	now := time.Now()
	c.delta = now.Sub(c.last).Seconds()
	c.last = now

	// Clamp pauses (window dragged, machine asleep) so physics don't jump.
	if c.delta > 0.1 {
		c.delta = 0.1
	}
}

// Delta returns the seconds elapsed between the last two ticks.
func (c *Clock) Delta() float64 {
	return c.delta
}

// Elapsed returns the seconds since the clock was created.
func (c *Clock) Elapsed() float64 {
	return time.Since(c.start).Seconds()
}
