package gc

import "github.com/jlondono223/memory-allocator/pkg/heap"

// coalesce merges every run of adjacent free blocks left by sweep into a
// single free block, so that a later allocation can see the full
// contiguous span rather than being defeated by header overhead between
// fragments. It returns the number of blocks absorbed.
func coalesce(a *heap.Arena) int {
	merged := 0

	b, ok := a.First(), true
	for ok {
		if b.Allocated() {
			b, ok = a.Next(b)
			continue
		}

		for {
			next, hasNext := a.Next(b)
			if !hasNext || next.Allocated() {
				break
			}
			b.Absorb(next)
			merged++
		}

		b, ok = a.Next(b)
	}

	return merged
}
