package synext

import "sync/atomic"

// AtomicCounter is a Counter safe for concurrent use. The zero value starts
// at zero.
type AtomicCounter struct {
	n atomic.Uint64
}

// Next returns the current value and advances the counter.
func (c *AtomicCounter) Next() uint64 {
	return c.n.Add(1) - 1
}

// processCounter backs the package-level UniqueifyWith.
var processCounter = &AtomicCounter{}
