//go:build !(amd64 || 386 || arm || mips || mipsle || wasm) && !atomx_disable_padding && !atomx_enable_padding

package opt

import (
	"unsafe"
)

// CounterStripe_ is one stripe of a striped statistics counter.
// Stripes are padded to a full cache line on architectures that are NOT:
// - amd64 (x86_64)
// - 32-bit architectures (386, arm, mips, mipsle, wasm)
//
// Padded on: arm64, riscv64, loong64, ppc64, ppc64le, s390x, mips64, mips64le, etc.
type CounterStripe_ struct {
	C uintptr // accessed atomically
	_ [(CacheLineSize_ - unsafe.Sizeof(struct {
		C uintptr
	}{})%CacheLineSize_) % CacheLineSize_]byte
}
