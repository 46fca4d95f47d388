package atomx

import (
	"sync/atomic"

	"github.com/llxisdsh/atomx/internal/opt"
)

// Go exposes memory ordering only through sync/atomic, whose operations are
// sequentially consistent and are never reordered with surrounding memory
// accesses by the compiler. Each fence is therefore one atomic access to a
// private word kept on its own cache line.
var fence struct {
	_ [opt.CacheLineSize_]byte
	w atomic.Uint32
	_ [opt.CacheLineSize_ - 4]byte
}

// AcquireFence orders every load and store that follows it after the load
// that precedes it (fence r,rw).
//
//go:nosplit
func AcquireFence() {
	fence.w.Load()
}

// ReleaseFence makes every load and store that precedes it visible before
// the store that follows it (fence rw,w).
//
//go:nosplit
func ReleaseFence() {
	fence.w.Store(0)
}

// FullFence orders all preceding loads and stores before all following
// ones (fence rw,rw).
//
//go:nosplit
func FullFence() {
	fence.w.Add(0)
}
