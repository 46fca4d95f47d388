// Package atomx provides atomic 32-bit and 64-bit counters for cores whose
// only conditional-update primitive is load-reserved/store-conditional.
//
// Plain compound updates (add, and, or, xor and their fetch forms) run as
// short critical sections with interrupts masked on the local core.
// Conditional updates (FetchAddUnless, IncUnlessNegative, DecUnlessPositive,
// DecIfPositive and the helpers built on them) run as a lock-free
// reserve/compute/commit loop and act as a full barrier when they commit.
//
// Load and Store are relaxed; pair them with AcquireFence and ReleaseFence,
// or use LoadAcquire and StoreRelease, when ordering is needed.
//
// A counter must only be accessed through its methods while other contexts
// may use it concurrently.
package atomx

import (
	"github.com/llxisdsh/atomx/internal/opt"
	"github.com/llxisdsh/atomx/irq"
)

// Counter is the operation set shared by Int32 and Int64. The 64-bit
// implementation is selected at build time; both satisfy Counter.
type Counter[T int32 | int64] interface {
	Init(v T)
	Load() T
	Store(v T)
	LoadAcquire() T
	StoreRelease(v T)

	Add(i T)
	Sub(i T)
	And(i T)
	Or(i T)
	Xor(i T)
	Inc()
	Dec()
	FetchAdd(i T) T
	FetchSub(i T) T
	FetchAnd(i T) T
	FetchOr(i T) T
	FetchXor(i T) T
	AddAndFetch(i T) T
	SubAndFetch(i T) T
	IncAndFetch() T
	DecAndFetch() T

	AddMasked(g irq.Guard, i T)
	FetchAddMasked(g irq.Guard, i T) T
	FetchAndMasked(g irq.Guard, i T) T
	FetchOrMasked(g irq.Guard, i T) T
	FetchXorMasked(g irq.Guard, i T) T

	FetchAddUnless(a, u T) T
	AddUnless(a, u T) bool
	IncNotZero() bool
	IncUnlessNegative() bool
	DecUnlessPositive() bool
	DecIfPositive() T
	Swap(v T) T
	CompareAndSwap(old, new T) bool
}

var _ Counter[int32] = (*Int32)(nil)

// Native64 reports whether Int64 uses native 64-bit atomic access. When it
// is false every Int64 operation runs under the interrupt mask.
const Native64 = opt.Native64_

// Int32 is an atomic int32 counter.
//
// The zero value is zero. It occupies exactly one 32-bit word.
type Int32 struct {
	_ opt.NoCopy
	v int32
}

// FromInt32 returns an Int32 initialized to v, for static initialization.
//
//go:nosplit
func FromInt32(v int32) Int32 {
	return Int32{v: v}
}

// Init sets the initial value of a counter that is not yet shared.
//
//go:nosplit
func (i *Int32) Init(v int32) {
	i.v = v
}

// Load returns the current value. It is a single relaxed load.
//
//go:nosplit
func (i *Int32) Load() int32 {
	return loadWord(&i.v)
}

// Store sets the value. It is a single relaxed store.
//
//go:nosplit
func (i *Int32) Store(v int32) {
	storeWord(&i.v, v)
}

// RacyLoad reads the value without synchronization.
//
//go:nosplit
func (i *Int32) RacyLoad() int32 {
	return i.v
}

// RacyStore sets the value without synchronization.
//
//go:nosplit
func (i *Int32) RacyStore(v int32) {
	i.v = v
}

// LoadAcquire is Load followed by AcquireFence.
//
//go:nosplit
func (i *Int32) LoadAcquire() int32 {
	v := loadWord(&i.v)
	AcquireFence()
	return v
}

// StoreRelease is ReleaseFence followed by Store.
//
//go:nosplit
func (i *Int32) StoreRelease(v int32) {
	ReleaseFence()
	storeWord(&i.v, v)
}

// Add adds d to the value.
func (i *Int32) Add(d int32) { fetchOp(&i.v, addOp, d) }

// Sub subtracts d from the value.
func (i *Int32) Sub(d int32) { fetchOp(&i.v, addOp, -d) }

// And applies bitwise AND with m.
func (i *Int32) And(m int32) { fetchOp(&i.v, andOp, m) }

// Or applies bitwise OR with m.
func (i *Int32) Or(m int32) { fetchOp(&i.v, orOp, m) }

// Xor applies bitwise XOR with m.
func (i *Int32) Xor(m int32) { fetchOp(&i.v, xorOp, m) }

// Inc adds one.
func (i *Int32) Inc() { fetchOp(&i.v, addOp, 1) }

// Dec subtracts one.
func (i *Int32) Dec() { fetchOp(&i.v, addOp, -1) }

// FetchAdd adds d and returns the previous value.
func (i *Int32) FetchAdd(d int32) int32 {
	return fetchOp(&i.v, addOp, d)
}

// FetchSub subtracts d and returns the previous value.
func (i *Int32) FetchSub(d int32) int32 {
	return i.FetchAdd(-d)
}

// FetchAnd applies bitwise AND with m and returns the previous value.
func (i *Int32) FetchAnd(m int32) int32 {
	return fetchOp(&i.v, andOp, m)
}

// FetchOr applies bitwise OR with m and returns the previous value.
func (i *Int32) FetchOr(m int32) int32 {
	return fetchOp(&i.v, orOp, m)
}

// FetchXor applies bitwise XOR with m and returns the previous value.
func (i *Int32) FetchXor(m int32) int32 {
	return fetchOp(&i.v, xorOp, m)
}

// AddAndFetch adds d and returns the new value.
func (i *Int32) AddAndFetch(d int32) int32 {
	return i.FetchAdd(d) + d
}

// SubAndFetch subtracts d and returns the new value.
func (i *Int32) SubAndFetch(d int32) int32 {
	return i.AddAndFetch(-d)
}

// IncAndFetch adds one and returns the new value.
func (i *Int32) IncAndFetch() int32 {
	return i.AddAndFetch(1)
}

// DecAndFetch subtracts one and returns the new value.
func (i *Int32) DecAndFetch() int32 {
	return i.AddAndFetch(-1)
}

// AddMasked is Add for a caller that already holds g, the interrupt mask
// of the local core, such as an interrupt handler.
func (i *Int32) AddMasked(g irq.Guard, d int32) { fetchOpMasked(g, &i.v, addOp, d) }

// FetchAddMasked is FetchAdd for a caller that already holds g.
func (i *Int32) FetchAddMasked(g irq.Guard, d int32) int32 {
	return fetchOpMasked(g, &i.v, addOp, d)
}

// FetchAndMasked is FetchAnd for a caller that already holds g.
func (i *Int32) FetchAndMasked(g irq.Guard, m int32) int32 {
	return fetchOpMasked(g, &i.v, andOp, m)
}

// FetchOrMasked is FetchOr for a caller that already holds g.
func (i *Int32) FetchOrMasked(g irq.Guard, m int32) int32 {
	return fetchOpMasked(g, &i.v, orOp, m)
}

// FetchXorMasked is FetchXor for a caller that already holds g.
func (i *Int32) FetchXorMasked(g irq.Guard, m int32) int32 {
	return fetchOpMasked(g, &i.v, xorOp, m)
}

// FetchAddUnless adds a unless the value equals u, and returns the previous
// value. When the value equals u nothing is stored and u is returned.
// A committed update is a full barrier.
func (i *Int32) FetchAddUnless(a, u int32) int32 {
	old, _ := condUpdate(&i.v, addUnlessOp, a, u)
	return old
}

// AddUnless adds a unless the value equals u, and reports whether it did.
func (i *Int32) AddUnless(a, u int32) bool {
	return i.FetchAddUnless(a, u) != u
}

// IncNotZero increments the value unless it is zero, and reports whether
// it did.
func (i *Int32) IncNotZero() bool {
	return i.AddUnless(1, 0)
}

// IncUnlessNegative increments the value unless it is negative. It returns
// true iff the observed value was not negative.
func (i *Int32) IncUnlessNegative() bool {
	old, _ := condUpdate(&i.v, incUnlessNegativeOp, 0, 0)
	return !(old < 0)
}

// DecUnlessPositive decrements the value unless it is positive. It returns
// true iff the observed value was not positive.
func (i *Int32) DecUnlessPositive() bool {
	old, _ := condUpdate(&i.v, decUnlessPositiveOp, 0, 0)
	return !(old > 0)
}

// DecIfPositive decrements the value if the result is not negative, and
// returns the observed value minus one either way. A negative result means
// nothing was stored.
func (i *Int32) DecIfPositive() int32 {
	old, _ := condUpdate(&i.v, decIfPositiveOp, 0, 0)
	return old - 1
}

// Swap stores v and returns the previous value.
func (i *Int32) Swap(v int32) int32 {
	old, _ := condUpdate(&i.v, swapOp, v, 0)
	return old
}

// CompareAndSwap stores new if the value equals old, and reports whether it
// did.
func (i *Int32) CompareAndSwap(old, new int32) bool {
	_, ok := condUpdate(&i.v, casOp, new, old)
	return ok
}
