// Package gc implements the stop-the-world, conservative mark-sweep
// collector that a heap.Arena invokes when it cannot satisfy an allocation.
package gc

import (
	"github.com/jlondono223/memory-allocator/internal/debug"
	"github.com/jlondono223/memory-allocator/pkg/heap"
	"github.com/jlondono223/memory-allocator/pkg/platform"
)

// Collector walks an arena's roots and block graph to reclaim everything
// unreachable. It implements heap.Collector, so a heap.Arena can invoke it
// without this package's heap dependency becoming a cycle.
type Collector struct {
	Probe platform.Probe
}

// New returns a Collector that derives its roots from p on every Collect.
func New(p platform.Probe) *Collector {
	return &Collector{Probe: p}
}

// Collect runs one full mark-sweep-coalesce pass over a.
func (c *Collector) Collect(a *heap.Arena) {
	debug.Log(nil, "collect", "starting collection")
	marked := c.mark(a)
	reclaimed := sweep(a)
	merged := coalesce(a)
	debug.Log(nil, "collect", "marked %d, reclaimed %d, coalesced %d", marked, reclaimed, merged)
}
