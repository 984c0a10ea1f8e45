package gc

import (
	"github.com/jlondono223/memory-allocator/pkg/heap"
	"github.com/jlondono223/memory-allocator/pkg/xunsafe"
)

// mark walks the root set — global data, the active stack range, and the
// designated registers — plus everything transitively reachable from
// allocated blocks those roots point into, setting the mark bit on every
// block found. It returns the number of blocks marked.
//
// The scan uses an explicit work list rather than recursion: each new block
// discovered is pushed once, and the loop below pops and scans it exactly
// like any other root. This keeps stack depth independent of how deeply
// blocks reference each other, which matters because the reference graph
// is attacker-and-bug-controlled data, not call structure.
func (c *Collector) mark(a *heap.Arena) int {
	var work []heap.Block
	marked := 0

	push := func(addr xunsafe.Addr[byte]) {
		b, ok := a.BlockContaining(addr)
		if !ok || b.Marked() {
			return
		}
		b.SetMarked(true)
		marked++
		work = append(work, b)
	}

	scanRange := func(lo, hi xunsafe.Addr[byte]) {
		if hi.Less(lo) {
			lo, hi = hi, lo
		}
		span := hi.ByteSub(lo)
		for off := 0; off+heap.WordSize <= span; off += heap.WordSize {
			// Warm the cache line for the next word before processing this
			// one; scans walk sequentially, so this is a free prefetch.
			if next := off + heap.WordSize; next+heap.WordSize <= span {
				xunsafe.Ping(lo.ByteAdd(next).AssertValid())
			}
			push(xunsafe.Addr[byte](wordAt(lo.ByteAdd(off))))
		}
	}

	globalsStart, globalsEnd := c.Probe.Globals()
	scanRange(globalsStart, globalsEnd)

	sp, fp := c.Probe.Stack()
	scanRange(sp, fp)

	for _, reg := range c.Probe.Registers() {
		push(reg)
	}

	for len(work) > 0 {
		b := work[len(work)-1]
		work = work[:len(work)-1]
		scanRange(b.PayloadAddr(), b.PayloadEnd())
	}

	return marked
}

// wordAt reads one pointer-sized word at addr, interpreting it as a
// candidate pointer value rather than dereferencing through it.
func wordAt(addr xunsafe.Addr[byte]) uintptr {
	return *xunsafe.Cast[uintptr](addr.AssertValid())
}
