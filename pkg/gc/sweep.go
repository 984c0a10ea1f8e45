package gc

import "github.com/jlondono223/memory-allocator/pkg/heap"

// sweep reclaims every allocated block that mark left unmarked, invoking
// its finalizer first if it has one, zeroing the payload so a later
// allocation never observes a freed block's old contents, and clears every
// mark bit in preparation for the next collection. It returns the number
// of blocks reclaimed.
func sweep(a *heap.Arena) int {
	reclaimed := 0

	for b := range a.Blocks() {
		if b.Allocated() && !b.Marked() {
			if fin := b.Finalizer(); fin != 0 {
				fin.Get()(b.PayloadPointer())
			}
			clear(a.Bytes(a.PayloadView(b)))
			b.SetFinalizer(nil)
			b.SetAllocated(false)
			reclaimed++
		}
		b.SetMarked(false)
	}

	return reclaimed
}
