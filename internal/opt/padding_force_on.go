//go:build atomx_enable_padding

package opt

import (
	"unsafe"
)

// CounterStripe_ is one stripe of a striped statistics counter.
// Padding is force-enabled via the atomx_enable_padding build tag.
// Use: go build -tags=atomx_enable_padding
type CounterStripe_ struct {
	C uintptr // accessed atomically
	_ [(CacheLineSize_ - unsafe.Sizeof(struct {
		C uintptr
	}{})%CacheLineSize_) % CacheLineSize_]byte
}
