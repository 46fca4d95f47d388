//go:build !(386 || arm || mips || mipsle) && !atomx_emulate64

package atomx

import (
	"github.com/llxisdsh/atomx/internal/opt"
	"github.com/llxisdsh/atomx/irq"
)

var _ Counter[int64] = (*Int64)(nil)

// Int64 is an atomic int64 counter.
//
// The zero value is zero. It occupies exactly one 64-bit word.
type Int64 struct {
	_ opt.NoCopy
	v int64
}

// FromInt64 returns an Int64 initialized to v, for static initialization.
//
//go:nosplit
func FromInt64(v int64) Int64 {
	return Int64{v: v}
}

// Init sets the initial value of a counter that is not yet shared.
//
//go:nosplit
func (i *Int64) Init(v int64) {
	i.v = v
}

// Load returns the current value. It is a single relaxed load.
//
//go:nosplit
func (i *Int64) Load() int64 {
	return loadWord(&i.v)
}

// Store sets the value. It is a single relaxed store.
//
//go:nosplit
func (i *Int64) Store(v int64) {
	storeWord(&i.v, v)
}

// RacyLoad reads the value without synchronization.
//
//go:nosplit
func (i *Int64) RacyLoad() int64 {
	return i.v
}

// RacyStore sets the value without synchronization.
//
//go:nosplit
func (i *Int64) RacyStore(v int64) {
	i.v = v
}

// LoadAcquire is Load followed by AcquireFence.
//
//go:nosplit
func (i *Int64) LoadAcquire() int64 {
	v := loadWord(&i.v)
	AcquireFence()
	return v
}

// StoreRelease is ReleaseFence followed by Store.
//
//go:nosplit
func (i *Int64) StoreRelease(v int64) {
	ReleaseFence()
	storeWord(&i.v, v)
}

// Add adds d to the value.
func (i *Int64) Add(d int64) { fetchOp(&i.v, addOp, d) }

// Sub subtracts d from the value.
func (i *Int64) Sub(d int64) { fetchOp(&i.v, addOp, -d) }

// And applies bitwise AND with m.
func (i *Int64) And(m int64) { fetchOp(&i.v, andOp, m) }

// Or applies bitwise OR with m.
func (i *Int64) Or(m int64) { fetchOp(&i.v, orOp, m) }

// Xor applies bitwise XOR with m.
func (i *Int64) Xor(m int64) { fetchOp(&i.v, xorOp, m) }

// Inc adds one.
func (i *Int64) Inc() { fetchOp(&i.v, addOp, 1) }

// Dec subtracts one.
func (i *Int64) Dec() { fetchOp(&i.v, addOp, -1) }

// FetchAdd adds d and returns the previous value.
func (i *Int64) FetchAdd(d int64) int64 {
	return fetchOp(&i.v, addOp, d)
}

// FetchSub subtracts d and returns the previous value.
func (i *Int64) FetchSub(d int64) int64 {
	return i.FetchAdd(-d)
}

// FetchAnd applies bitwise AND with m and returns the previous value.
func (i *Int64) FetchAnd(m int64) int64 {
	return fetchOp(&i.v, andOp, m)
}

// FetchOr applies bitwise OR with m and returns the previous value.
func (i *Int64) FetchOr(m int64) int64 {
	return fetchOp(&i.v, orOp, m)
}

// FetchXor applies bitwise XOR with m and returns the previous value.
func (i *Int64) FetchXor(m int64) int64 {
	return fetchOp(&i.v, xorOp, m)
}

// AddAndFetch adds d and returns the new value.
func (i *Int64) AddAndFetch(d int64) int64 {
	return i.FetchAdd(d) + d
}

// SubAndFetch subtracts d and returns the new value.
func (i *Int64) SubAndFetch(d int64) int64 {
	return i.AddAndFetch(-d)
}

// IncAndFetch adds one and returns the new value.
func (i *Int64) IncAndFetch() int64 {
	return i.AddAndFetch(1)
}

// DecAndFetch subtracts one and returns the new value.
func (i *Int64) DecAndFetch() int64 {
	return i.AddAndFetch(-1)
}

// AddMasked is Add for a caller that already holds g, the interrupt mask
// of the local core, such as an interrupt handler.
func (i *Int64) AddMasked(g irq.Guard, d int64) { fetchOpMasked(g, &i.v, addOp, d) }

// FetchAddMasked is FetchAdd for a caller that already holds g.
func (i *Int64) FetchAddMasked(g irq.Guard, d int64) int64 {
	return fetchOpMasked(g, &i.v, addOp, d)
}

// FetchAndMasked is FetchAnd for a caller that already holds g.
func (i *Int64) FetchAndMasked(g irq.Guard, m int64) int64 {
	return fetchOpMasked(g, &i.v, andOp, m)
}

// FetchOrMasked is FetchOr for a caller that already holds g.
func (i *Int64) FetchOrMasked(g irq.Guard, m int64) int64 {
	return fetchOpMasked(g, &i.v, orOp, m)
}

// FetchXorMasked is FetchXor for a caller that already holds g.
func (i *Int64) FetchXorMasked(g irq.Guard, m int64) int64 {
	return fetchOpMasked(g, &i.v, xorOp, m)
}

// FetchAddUnless adds a unless the value equals u, and returns the previous
// value. When the value equals u nothing is stored and u is returned.
// A committed update is a full barrier.
func (i *Int64) FetchAddUnless(a, u int64) int64 {
	old, _ := condUpdate(&i.v, addUnlessOp, a, u)
	return old
}

// AddUnless adds a unless the value equals u, and reports whether it did.
func (i *Int64) AddUnless(a, u int64) bool {
	return i.FetchAddUnless(a, u) != u
}

// IncNotZero increments the value unless it is zero, and reports whether
// it did.
func (i *Int64) IncNotZero() bool {
	return i.AddUnless(1, 0)
}

// IncUnlessNegative increments the value unless it is negative. It returns
// true iff the observed value was not negative.
func (i *Int64) IncUnlessNegative() bool {
	old, _ := condUpdate(&i.v, incUnlessNegativeOp, 0, 0)
	return !(old < 0)
}

// DecUnlessPositive decrements the value unless it is positive. It returns
// true iff the observed value was not positive.
func (i *Int64) DecUnlessPositive() bool {
	old, _ := condUpdate(&i.v, decUnlessPositiveOp, 0, 0)
	return !(old > 0)
}

// DecIfPositive decrements the value if the result is not negative, and
// returns the observed value minus one either way. A negative result means
// nothing was stored.
func (i *Int64) DecIfPositive() int64 {
	old, _ := condUpdate(&i.v, decIfPositiveOp, 0, 0)
	return old - 1
}

// Swap stores v and returns the previous value.
func (i *Int64) Swap(v int64) int64 {
	old, _ := condUpdate(&i.v, swapOp, v, 0)
	return old
}

// CompareAndSwap stores new if the value equals old, and reports whether it
// did.
func (i *Int64) CompareAndSwap(old, new int64) bool {
	_, ok := condUpdate(&i.v, casOp, new, old)
	return ok
}
