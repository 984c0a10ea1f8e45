// Package dump renders a human-readable snapshot of an arena's roots and
// heap, annotating every word that plausibly points into an allocated
// block. It performs only read-only queries: it never allocates or
// triggers a collection.
package dump

import (
	"fmt"
	"io"

	"github.com/jlondono223/memory-allocator/pkg/heap"
	"github.com/jlondono223/memory-allocator/pkg/platform"
	"github.com/jlondono223/memory-allocator/pkg/xiter"
	"github.com/jlondono223/memory-allocator/pkg/xunsafe"
)

// Dump writes, in order, the global data range, the active stack range, the
// designated registers, and the full block chain of a to w. Every address
// and word value is formatted as 16 hex digits; allocated blocks have their
// payload grouped seven words per line, each word annotated with "* " when
// it looks like a pointer into an allocated block and "  " otherwise.
func Dump(w io.Writer, a *heap.Arena, p platform.Probe) {
	dumpGlobals(w, a, p)
	dumpStack(w, a, p)
	dumpRegisters(w, a, p)
	dumpHeap(w, a)
}

func dumpGlobals(w io.Writer, a *heap.Arena, p platform.Probe) {
	start, end := p.Globals()
	length := 0
	if !end.Less(start) {
		length = end.ByteSub(start) / heap.WordSize
	}

	fmt.Fprintf(w, "Global Memory: start=%016x end=%016x length=%d words\n", uintptr(start), uintptr(end), length)

	for addr := start; addr.ByteAdd(heap.WordSize) <= end; addr = addr.ByteAdd(heap.WordSize) {
		value := wordAt(addr)
		mark := byte(' ')
		if _, ok := a.BlockContaining(xunsafe.Addr[byte](value)); ok {
			mark = '*'
		}
		fmt.Fprintf(w, "%016x %016x%c\n", uintptr(addr), value, mark)
	}
	fmt.Fprintln(w)
}

func dumpStack(w io.Writer, a *heap.Arena, p platform.Probe) {
	sp, fp := p.Stack()
	lo, hi := sp, fp
	if hi.Less(lo) {
		lo, hi = hi, lo
	}

	fmt.Fprintf(w, "Stack Memory\n\n")
	for addr := lo; addr.ByteAdd(heap.WordSize) <= hi; addr = addr.ByteAdd(heap.WordSize) {
		fmt.Fprintf(w, "[%016x]: %016x\n", uintptr(addr), wordAt(addr))
	}
	fmt.Fprintln(w)
}

func dumpRegisters(w io.Writer, a *heap.Arena, p platform.Probe) {
	fmt.Fprintf(w, "Registers\n\n")
	for i, reg := range p.Registers() {
		annotation := "  "
		if _, ok := a.BlockContaining(reg); ok {
			annotation = "* "
		}
		fmt.Fprintf(w, "reg%d %016x%s", i+1, uintptr(reg), annotation)
	}
	fmt.Fprintf(w, "\n\n")
}

func dumpHeap(w io.Writer, a *heap.Arena) {
	fmt.Fprintf(w, "Heap\n")
	fmt.Fprintf(w, "(%d word header, %d allocated)\n",
		heap.HeaderSize/heap.WordSize,
		xiter.Count(xiter.Filter(a.Blocks(), heap.Block.Allocated)))

	xiter.ForEach(a.Blocks(), func(b heap.Block) {
		allocStatus := "Free"
		if b.Allocated() {
			allocStatus = "Allocated"
		}
		markStatus := "Unmarked"
		if b.Marked() {
			markStatus = "Marked"
		}

		var finalizer uint64
		if b.Allocated() {
			finalizer = uint64(b.Finalizer())
		}

		fmt.Fprintf(w, "Block %d %s %s %016x\n", b.Size()/heap.WordSize, allocStatus, markStatus, finalizer)

		if !b.Allocated() {
			return
		}

		words := b.Size() / heap.WordSize
		for i := 0; i < words; i++ {
			addr := b.PayloadAddr().ByteAdd(i * heap.WordSize)
			if i%7 == 0 {
				fmt.Fprintf(w, "%016x : ", uintptr(addr))
			}

			value := wordAt(addr)
			fmt.Fprintf(w, "%016x", value)
			if _, ok := a.BlockContaining(xunsafe.Addr[byte](value)); ok {
				fmt.Fprint(w, "* ")
			} else {
				fmt.Fprint(w, "  ")
			}

			if (i+1)%7 == 0 || i == words-1 {
				fmt.Fprintln(w)
			}
		}
	})

	fmt.Fprintf(w, "\n\n")
}

func wordAt(addr xunsafe.Addr[byte]) uintptr {
	return *xunsafe.Cast[uintptr](addr.AssertValid())
}
