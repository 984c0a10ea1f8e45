// Package platform supplies the collector's view of a running process: the
// bounds of its global data, its current stack range, and the handful of
// registers the host's calling convention might be spilling pointers into.
// None of this is derivable from inside the Go runtime in a fully portable
// way, so it is modeled as a small interface with a real, architecture-
// specific implementation and a manually-driven one for tests and hosts
// this package does not yet cover.
package platform

import "github.com/jlondono223/memory-allocator/pkg/xunsafe"

// Probe answers the three questions a conservative collector needs about
// the running process in order to compute its root set.
type Probe interface {
	// Globals returns the bounds of the host's global/static data segment.
	Globals() (start, end xunsafe.Addr[byte])

	// Stack returns the currently active stack range. The two ends are not
	// assumed to be ordered: a host whose stack grows downward will
	// generally have sp < fp in address terms, but callers must treat the
	// pair as a min/max rather than a start/end.
	Stack() (sp, fp xunsafe.Addr[byte])

	// Registers returns the designated set of registers to treat as
	// individual root candidates, in addition to the stack and globals.
	Registers() [3]xunsafe.Addr[byte]
}
