package heap

import (
	"unsafe"

	"github.com/jlondono223/memory-allocator/pkg/xunsafe"
)

// Block is a handle to one block's header within an Arena's backing bytes.
// It is a thin wrapper around the header's address; copying a Block copies
// the handle, not the block.
type Block struct {
	addr xunsafe.Addr[byte]
}

func blockAt(addr xunsafe.Addr[byte]) Block {
	return Block{addr}
}

// IsZero reports whether b is the zero Block, returned by lookups that find
// nothing.
func (b Block) IsZero() bool {
	return b.addr == 0
}

func (b Block) header() *Header {
	return xunsafe.Cast[Header](b.addr.AssertValid())
}

// Addr returns the address of this block's header.
func (b Block) Addr() xunsafe.Addr[byte] {
	return b.addr
}

// Size returns the payload size, in bytes, not counting the header.
func (b Block) Size() int {
	return int(b.header().size)
}

// SetSize overwrites the payload size recorded in the header.
func (b Block) SetSize(n int) {
	b.header().size = uint32(n)
}

// Allocated reports whether this block is currently handed out to a caller.
func (b Block) Allocated() bool {
	return b.header().allocated
}

// SetAllocated overwrites the allocated bit.
func (b Block) SetAllocated(v bool) {
	b.header().allocated = v
}

// Marked reports whether the last collection found this block reachable.
func (b Block) Marked() bool {
	return b.header().marked
}

// SetMarked overwrites the mark bit.
func (b Block) SetMarked(v bool) {
	b.header().marked = v
}

// Finalizer returns the block's finalizer, or a zero PC if none is set.
func (b Block) Finalizer() xunsafe.PC[Finalizer] {
	return b.header().finalizer
}

// SetFinalizer overwrites the block's finalizer. Passing nil clears it.
func (b Block) SetFinalizer(f Finalizer) {
	if f == nil {
		b.header().finalizer = 0
		return
	}
	b.header().finalizer = xunsafe.NewPC(f)
}

// PayloadAddr returns the address immediately following this block's header:
// the payload is exactly the variable-length array xunsafe.VLA models as
// trailing a fixed header.
func (b Block) PayloadAddr() xunsafe.Addr[byte] {
	return xunsafe.AddrOf(xunsafe.Beyond[byte](b.header()).Get(0))
}

// PayloadEnd returns the one-past-the-end address of this block's payload.
func (b Block) PayloadEnd() xunsafe.Addr[byte] {
	return b.PayloadAddr().ByteAdd(b.Size())
}

// PayloadPointer returns the payload as an unsafe.Pointer, suitable for
// handing back to a caller of Arena.Allocate.
func (b Block) PayloadPointer() unsafe.Pointer {
	return unsafe.Pointer(b.PayloadAddr().AssertValid())
}

// totalBytes is the header plus payload size, i.e. the stride to the next
// block in the chain.
func (b Block) totalBytes() int {
	return HeaderSize + b.Size()
}

// Absorb folds next, which must immediately follow b and be free, into b by
// growing b's size to cover next's header and payload. Used by coalescing to
// merge adjacent free blocks after a sweep.
func (b Block) Absorb(next Block) {
	b.SetSize(b.Size() + next.totalBytes())
}
