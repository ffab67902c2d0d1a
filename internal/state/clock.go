package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

var siteID = uuid.NewString()

// SiteID identifies this process among peers editing the same scene.
func SiteID() string {
	return siteID
}

// Clock is a Lamport clock counting scene revisions.
type Clock struct {
	counter atomic.Uint64
}

// Tick advances the clock and returns the new value.
func (c *Clock) Tick() uint64 {
	return c.counter.Add(1)
}

// Observe moves the clock forward to a revision seen from a peer.
func (c *Clock) Observe(remote uint64) {
	for {
		cur := c.counter.Load()
		if remote <= cur || c.counter.CompareAndSwap(cur, remote) {
			return
		}
	}
}

// Now returns the current value without advancing.
func (c *Clock) Now() uint64 {
	return c.counter.Load()
}
