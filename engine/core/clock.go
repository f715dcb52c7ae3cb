package core

import "time"

// Clock measures elapsed time in milliseconds since Start. The time source is
// injectable so loops driven by it can be stepped deterministically.
type Clock struct {
	now       func() time.Time
	startTime time.Time
	started   bool
	elapsed   float64
}

func NewClock() *Clock {
	return NewClockWithSource(time.Now)
}

func NewClockWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if c.started {
		c.elapsed = float64(c.now().Sub(c.startTime)) / float64(time.Millisecond)
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = c.now()
	c.started = true
	c.elapsed = 0
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.started = false
}

// Elapsed returns the milliseconds between Start and the last Update.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}
