package heap

import (
	"unsafe"

	"github.com/jlondono223/memory-allocator/internal/debug"
)

// Allocate reserves words WordSize-sized units from the arena and returns a
// pointer to the reserved payload, or nil if no block is large enough even
// after a collection.
//
// The search is first-fit over the block chain: the first free block
// strictly larger than the request plus one header is split into an allocated block of
// exactly the requested size and a new free block holding the remainder. A
// free block that fits exactly is deliberately not used — it is left for a
// future coalesce to absorb, rather than being handed out with a zero-sized
// remainder block.
//
// If no free block fits, Allocate runs the arena's collector exactly once
// and retries; if the retry also fails, it gives up and returns nil rather
// than collecting repeatedly.
//
// Allocate panics if called reentrantly — most commonly because a
// finalizer invoked during the collector's sweep itself calls Allocate. The
// heap's walk state is not safe to resume once this happens, so the panic
// is meant to be fatal, not recovered from.
func (a *Arena) Allocate(words int, finalizer Finalizer) unsafe.Pointer {
	debug.Assert(words >= 1, "allocate: words must be >= 1, got %d", words)

	if a.busy {
		panic("heap: finalizer attempted to call Allocate on the arena it was invoked from (reentrant allocation)")
	}
	a.busy = true
	defer func() { a.busy = false }()

	requestBytes := words * WordSize
	total := HeaderSize + requestBytes
	collected := false

	for {
		if p, ok := a.tryAllocate(total, requestBytes, finalizer); ok {
			return p
		}

		if collected {
			a.log("allocate", "no fit for %d words after collection, returning nil", words)
			return nil
		}

		a.collector.Collect(a)
		collected = true
	}
}

// tryAllocate makes one first-fit pass over the block chain.
func (a *Arena) tryAllocate(total, requestBytes int, finalizer Finalizer) (unsafe.Pointer, bool) {
	for b, ok := a.First(), true; ok; b, ok = a.Next(b) {
		if b.Allocated() {
			continue
		}
		if b.Size() <= total {
			continue
		}

		remainder := blockAt(b.Addr().ByteAdd(total))
		remainder.SetSize(b.Size() - total)
		remainder.SetAllocated(false)
		remainder.SetMarked(false)
		remainder.SetFinalizer(nil)

		b.SetSize(requestBytes)
		b.SetAllocated(true)
		b.SetMarked(false)
		b.SetFinalizer(finalizer)

		a.log("allocate", "%d bytes at %v", requestBytes, b.PayloadAddr())
		return b.PayloadPointer(), true
	}
	return nil, false
}
