// Package roundrobin provides a small, mutex-protected rotation cursor.
//
// It generalizes the teacher library's pool.Pool channel-rotation technique
// (pool/fixed.go hands out and reclaims interchangeable poolable objects via
// buffered channels) to the shape Orion actually needs in two places:
// NodeRegistry.PickNode and the local Scheduler's worker placement. Neither
// rotates over *recyclable* items — workers and nodes are long-lived,
// addressable, and never returned to a pool — so the Get/Put object-recycling
// half of pool.Pool doesn't fit. What survives is the rotation itself: an
// index that advances once per call and wraps around the current size,
// exactly as pool/fixed.go's available/all channels implicitly rotate
// through a fixed capacity.
package roundrobin

import "sync"

// Cursor advances an index modulo a size supplied at call time, so it can
// rotate over a set whose membership changes between calls (e.g. a snapshot
// of currently-alive nodes) while still advancing exactly once per call.
type Cursor struct {
	mu sync.Mutex
	n  uint64
}

// Next returns the next index in [0, size) and advances the cursor. It
// panics if size <= 0; callers must check for an empty set first.
func (c *Cursor) Next(size int) int {
	if size <= 0 {
		panic("roundrobin: Next called with non-positive size")
	}
	c.mu.Lock()
	idx := int(c.n % uint64(size))
	c.n++
	c.mu.Unlock()
	return idx
}
