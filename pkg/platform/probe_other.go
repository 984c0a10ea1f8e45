//go:build !amd64

package platform

// NewDefault returns a Manual probe on architectures this package has no
// assembly stubs for. Porting Default to a new arch means adding a
// probe_<arch>.s with stack/frame/register reads for that ABI and a
// matching probe_<arch>.go, following probe_amd64.go.
func NewDefault() Probe {
	return NewManual()
}
