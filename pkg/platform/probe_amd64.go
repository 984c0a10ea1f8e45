//go:build amd64

package platform

import "github.com/jlondono223/memory-allocator/pkg/xunsafe"

// Default is the real, assembly-backed probe for amd64 hosts. It reads the
// stack and frame pointers and the three designated general-purpose
// registers directly out of the hardware at the point it is called, the
// same way the original host's getSP/getFP/getRBX/getRSI/getRDI externs
// did. Global bounds still come from RegisterGlobals, since Go's own
// global data is not something this package's collector is scanning.
type Default struct{}

// NewDefault returns the real amd64 probe.
func NewDefault() Probe {
	return Default{}
}

// Globals implements Probe.
func (Default) Globals() (start, end xunsafe.Addr[byte]) {
	return registeredStart, registeredEnd
}

// Stack implements Probe. The pair is returned as (sp, fp) but, as
// documented on Probe, callers must treat it as a min/max rather than
// assuming sp <= fp: on amd64 the stack grows downward, so the frame
// pointer of the calling function is numerically above the current stack
// pointer.
func (Default) Stack() (sp, fp xunsafe.Addr[byte]) {
	return xunsafe.Addr[byte](stackPointer()), xunsafe.Addr[byte](framePointer())
}

// Registers implements Probe, returning the three designated
// general-purpose registers (mirroring the original host's RBX/RSI/RDI) as
// individual root candidates.
func (Default) Registers() [3]xunsafe.Addr[byte] {
	return [3]xunsafe.Addr[byte]{
		xunsafe.Addr[byte](register1()),
		xunsafe.Addr[byte](register2()),
		xunsafe.Addr[byte](register3()),
	}
}

//go:noescape
func stackPointer() uintptr

//go:noescape
func framePointer() uintptr

//go:noescape
func register1() uintptr

//go:noescape
func register2() uintptr

//go:noescape
func register3() uintptr
