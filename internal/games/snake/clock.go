package snake

import "time"

// maxCatchUpTicks bounds how many ticks a single Update may run after a stall.
const maxCatchUpTicks = 8

// Clock accumulates real elapsed time and releases it in whole ticks.
// Rendering frame rate never changes how many ticks a span of time yields.
type Clock struct {
	acc time.Duration
}

// Add accumulates elapsed time. Negative spans are ignored.
func (c *Clock) Add(elapsed time.Duration) {
	if elapsed > 0 {
		c.acc += elapsed
	}
}

// Take consumes one tick of length interval if enough time has accumulated.
func (c *Clock) Take(interval time.Duration) bool {
	if interval <= 0 || c.acc < interval {
		return false
	}
	c.acc -= interval
	return true
}

// Pending returns the accumulated time not yet spent on ticks.
func (c *Clock) Pending() time.Duration {
	return c.acc
}

// Reset drops any accumulated time.
func (c *Clock) Reset() {
	c.acc = 0
}
