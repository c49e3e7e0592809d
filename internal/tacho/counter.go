// Package tacho estimates the driven fan's rotation rate from its
// tachometer pulse stream.
package tacho

import "sync/atomic"

// PulseCounter accumulates tachometer edges. Increment is called from
// the asynchronous edge handler, Count from the control loop; the
// counter is the only state shared between the two.
type PulseCounter struct {
	count atomic.Uint64
}

func NewPulseCounter() *PulseCounter {
	return &PulseCounter{}
}

// Increment records a single qualifying edge. Edges are not debounced,
// every qualifying edge counts.
func (c *PulseCounter) Increment() {
	c.count.Add(1)
}

func (c *PulseCounter) Count() uint64 {
	return c.count.Load()
}
