package platform

import (
	"unsafe"

	"github.com/jlondono223/memory-allocator/pkg/xunsafe"
)

// RegisterGlobals tells the default probe where the host's global/static
// data lives. Go does not expose the linker's data-segment symbols
// portably the way the original C host's extern __data_start/_end pair
// did, so the default probe instead asks the host to declare the range of
// package-level state it wants scanned as a root — typically a single
// backing array the host's global variables are carved out of.
//
// Calling it more than once replaces the previously registered range; it
// is meant to be called once, during host startup, before the first
// collection.
func RegisterGlobals(start unsafe.Pointer, size int) {
	registeredStart = xunsafe.Addr[byte](uintptr(start))
	registeredEnd = registeredStart.ByteAdd(size)
}

var (
	registeredStart xunsafe.Addr[byte]
	registeredEnd   xunsafe.Addr[byte]
)
