package platform

import "github.com/jlondono223/memory-allocator/pkg/xunsafe"

// Manual is a Probe whose answers are set directly by the caller rather
// than sampled from a running process. It is the probe used by tests (where
// deterministic, reproducible roots matter more than a faithful register
// dump) and is also the Probe returned by NewDefault on architectures this
// package has no assembly stubs for.
type Manual struct {
	globalsStart, globalsEnd xunsafe.Addr[byte]
	sp, fp                   xunsafe.Addr[byte]
	regs                     [3]xunsafe.Addr[byte]
}

// NewManual returns a Manual probe with every range empty.
func NewManual() *Manual {
	return &Manual{}
}

// SetGlobals records the bounds Globals will report.
func (m *Manual) SetGlobals(start, end xunsafe.Addr[byte]) {
	m.globalsStart, m.globalsEnd = start, end
}

// SetStack records the range Stack will report.
func (m *Manual) SetStack(sp, fp xunsafe.Addr[byte]) {
	m.sp, m.fp = sp, fp
}

// SetRegisters records the values Registers will report.
func (m *Manual) SetRegisters(regs [3]xunsafe.Addr[byte]) {
	m.regs = regs
}

// Globals implements Probe.
func (m *Manual) Globals() (start, end xunsafe.Addr[byte]) {
	return m.globalsStart, m.globalsEnd
}

// Stack implements Probe.
func (m *Manual) Stack() (sp, fp xunsafe.Addr[byte]) {
	return m.sp, m.fp
}

// Registers implements Probe.
func (m *Manual) Registers() [3]xunsafe.Addr[byte] {
	return m.regs
}
