//go:build atomx_disable_padding

package opt

// CounterStripe_ is one stripe of a striped statistics counter.
// Padding is force-disabled via the atomx_disable_padding build tag.
// Use: go build -tags=atomx_disable_padding
type CounterStripe_ struct {
	C uintptr // accessed atomically
}
