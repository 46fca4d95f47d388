//go:build (amd64 || 386 || arm || mips || mipsle || wasm) && !atomx_disable_padding && !atomx_enable_padding

package opt

// CounterStripe_ is one stripe of a striped statistics counter.
// Stripes stay unpadded by default for:
// - amd64
// - 32-bit architectures (386, arm, mips, mipsle, wasm)
type CounterStripe_ struct {
	C uintptr // accessed atomically
}
