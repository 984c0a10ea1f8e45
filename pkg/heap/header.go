// Package heap implements the conservatively-scanned arena that backs the
// collector: a single contiguous byte buffer partitioned into a singly
// linked chain of in-band blocks, each prefixed by a fixed-size header.
package heap

import (
	"unsafe"

	"github.com/jlondono223/memory-allocator/pkg/xunsafe"
	"github.com/jlondono223/memory-allocator/pkg/xunsafe/layout"
)

// Finalizer is invoked exactly once when a block it is attached to is
// reclaimed by a collection. It must not capture any variables: the header
// stores only the finalizer's code address (see xunsafe.PC), matching the
// single machine word the block layout budgets for it. Wrapping does not
// check for captures: a closure literal with a non-empty capture list is
// stored as its code address alone, and its captured variables are not
// available when it runs.
//
// A finalizer must never call Arena.Allocate on the arena that is being
// swept; doing so is treated as a fatal reentrant allocation.
type Finalizer func(unsafe.Pointer)

// WordSize is the width, in bytes, of the host's pointer-sized machine word.
// Block sizes, allocation requests and conservative scans are all expressed
// in units of WordSize.
const WordSize = int(unsafe.Sizeof(uintptr(0)))

// Header is the in-band metadata prefixing every block in an Arena. Its
// layout is whatever the platform's struct alignment rules produce; nothing
// in this package assumes a packed or C-compatible layout, only that
// HeaderSize bytes are reserved before every block's payload.
type Header struct {
	size      uint32
	allocated bool
	marked    bool
	finalizer xunsafe.PC[Finalizer]
}

// HeaderSize is the number of bytes a Header occupies, as laid out by this
// platform's compiler. Computed once via layout rather than hardcoded so
// that alignment padding is always accounted for.
var HeaderSize = layout.Size[Header]()
