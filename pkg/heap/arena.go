package heap

import (
	"errors"
	"iter"

	"github.com/jlondono223/memory-allocator/internal/debug"
	"github.com/jlondono223/memory-allocator/pkg/xunsafe"
	"github.com/jlondono223/memory-allocator/pkg/zc"
)

// Errors returned by TryInitialize.
var (
	// ErrAlreadyInitialized is returned when Initialize is called on an
	// Arena that has already been given a backing buffer.
	ErrAlreadyInitialized = errors.New("heap: arena already initialized")

	// ErrHostAllocFailed is returned when the host's allocator could not
	// provide the backing buffer.
	ErrHostAllocFailed = errors.New("heap: host allocator failed to provide backing storage")
)

// TooSmallError is returned when the words requested of Initialize cannot
// hold even a single block header. It carries the numbers a caller needs to
// report a useful message, rather than just the fact that sizing failed.
type TooSmallError struct {
	Requested int // words requested
	Minimum   int // minimum words that would satisfy a single header
}

func (e *TooSmallError) Error() string {
	return "heap: requested size too small to hold a block header"
}

// Collector performs a collection pass over an Arena: it marks every block
// reachable from the arena's roots, reclaims everything left unmarked, and
// coalesces adjacent free blocks. Arena depends only on this interface, not
// on any concrete collector, so that the collector (which must walk and
// mutate block headers) can live in its own package without an import
// cycle.
type Collector interface {
	Collect(a *Arena)
}

// Arena is a single contiguous region of memory, carved by Initialize into
// one free block spanning the whole buffer, and thereafter managed
// exclusively through Allocate and a Collector. An Arena must not be copied
// after Initialize.
type Arena struct {
	_ xunsafe.NoCopy

	raw       []byte
	base, end xunsafe.Addr[byte]
	busy      bool
	collector Collector
}

// Initialize carves a words-sized buffer (in WordSize units) into a single
// free block and wires up the collector that Allocate will invoke on a
// miss. It returns false if the arena was already initialized, if words is
// too small to hold a single header, or if the host allocator failed.
//
// Initialize is not safe to call concurrently with itself or with Allocate.
func (a *Arena) Initialize(words int, collector Collector) bool {
	if a.base != 0 {
		return false
	}
	if words <= 0 {
		return false
	}

	totalBytes := words * WordSize
	if totalBytes < HeaderSize {
		return false
	}

	raw, ok := acquire(totalBytes)
	if !ok {
		return false
	}

	a.raw = raw
	a.base = xunsafe.AddrOf(&raw[0])
	a.end = xunsafe.EndOf(raw)
	a.collector = collector

	first := blockAt(a.base)
	first.SetSize(totalBytes - HeaderSize)
	first.SetAllocated(false)
	first.SetMarked(false)
	first.SetFinalizer(nil)

	a.log("initialize", "%d words (%d bytes), 1 free block", words, totalBytes)
	return true
}

// TryInitialize is Initialize with its failure modes distinguished as
// errors (the sentinels above, or a *TooSmallError), for callers that want
// to report why initialization failed rather than just that it did.
func (a *Arena) TryInitialize(words int, collector Collector) error {
	if a.base != 0 {
		return ErrAlreadyInitialized
	}
	if words <= 0 || words*WordSize < HeaderSize {
		minimum := HeaderSize / WordSize
		if HeaderSize%WordSize != 0 {
			minimum++
		}
		return &TooSmallError{Requested: words, Minimum: minimum}
	}
	if !a.Initialize(words, collector) {
		return ErrHostAllocFailed
	}
	return nil
}

// acquire asks the host allocator for n bytes, reporting failure instead of
// letting an out-of-memory condition escape as a runtime fatal error.
func acquire(n int) (raw []byte, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	raw = make([]byte, n)
	return raw, true
}

// Base returns the address of the arena's first block header.
func (a *Arena) Base() xunsafe.Addr[byte] {
	return a.base
}

// End returns the one-past-the-end address of the arena's backing buffer.
func (a *Arena) End() xunsafe.Addr[byte] {
	return a.end
}

// First returns the handle to the arena's first block.
func (a *Arena) First() Block {
	return blockAt(a.base)
}

// Next returns the block immediately following b, and false if b is the
// last block in the chain.
func (a *Arena) Next(b Block) (Block, bool) {
	next := b.Addr().ByteAdd(b.totalBytes())
	if !next.Less(a.end) {
		return Block{}, false
	}
	return blockAt(next), true
}

// Blocks iterates every block in the arena, in address order, from First to
// the last block before End.
func (a *Arena) Blocks() iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for b, ok := a.First(), true; ok; b, ok = a.Next(b) {
			if !yield(b) {
				return
			}
		}
	}
}

// BlockContaining returns the allocated block whose payload contains addr,
// if any. Used by the collector to resolve a conservative root or pointer
// candidate to the block it would keep alive.
func (a *Arena) BlockContaining(addr xunsafe.Addr[byte]) (Block, bool) {
	if addr.Less(a.base) || !addr.Less(a.end) {
		return Block{}, false
	}
	for b := range a.Blocks() {
		if !b.Allocated() {
			continue
		}
		if !addr.Less(b.PayloadAddr()) && addr.Less(b.PayloadEnd()) {
			return b, true
		}
	}
	return Block{}, false
}

// PayloadView returns b's payload as a zero-copy view relative to the
// arena's backing buffer, rather than a bare Go slice: a block's payload is
// exactly "a slice relative to some larger byte array" in the same sense
// pkg/zc.View was built to represent.
func (a *Arena) PayloadView(b Block) zc.View {
	return zc.New(&a.raw[0], b.PayloadAddr().AssertValid(), b.Size())
}

// Bytes resolves a View produced by PayloadView back into a byte slice
// backed by this arena.
func (a *Arena) Bytes(v zc.View) []byte {
	return v.Bytes(&a.raw[0])
}

// Collect runs one collection pass using the arena's configured collector,
// under the same reentrancy guard Allocate uses. A host that wants to force
// a collection outside of an allocation miss — a REPL "gc" command, say —
// must call this rather than reaching into the collector directly, or a
// finalizer that calls Allocate would go unguarded.
//
// Collect panics if called reentrantly, for the same reason Allocate does.
func (a *Arena) Collect() {
	if a.busy {
		panic("heap: Collect called on an arena that is already collecting or allocating (reentrant collection)")
	}
	a.busy = true
	defer func() { a.busy = false }()

	a.collector.Collect(a)
}

func (a *Arena) log(op, format string, args ...any) {
	debug.Log([]any{"arena %v base:%v end:%v", a, a.base, a.end}, op, format, args...)
}
