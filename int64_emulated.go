//go:build 386 || arm || mips || mipsle || atomx_emulate64

package atomx

import (
	"sync/atomic"
	"unsafe"

	"github.com/llxisdsh/atomx/internal/opt"
	"github.com/llxisdsh/atomx/irq"
)

var _ Counter[int64] = (*Int64)(nil)

// Int64 is an atomic int64 counter for targets without native 64-bit
// atomic access.
//
// Every operation, including Load and Store, runs with interrupts masked on
// the local core and touches the payload with plain accesses. Conditional
// updates keep the full barrier on commit, so the observable contract is
// the same as on native targets. An interrupt handler already holds the
// mask, so it only uses the Masked methods.
type Int64 struct {
	_ opt.NoCopy
	_ [0]atomic.Int64
	v int64
}

// fetchOpFast applies op with one plain read and one plain write; the
// payload is never touched outside the mask.
func fetchOpFast(p *int64, op rmwOp, i int64) int64 {
	g := irq.Disable()
	defer g.Restore()
	return fetchOpFastMasked(g, p, op, i)
}

func fetchOpFastMasked(g irq.Guard, p *int64, op rmwOp, i int64) int64 {
	checkGuard(g)
	old := loadWordFast(p)
	if maskedHook != nil {
		maskedHook()
	}
	storeWordFast(p, apply(op, old, i))
	return old
}

func condUpdateFast(p *int64, op condOp, a, u int64) (old int64, committed bool) {
	g := irq.Disable()
	defer g.Restore()
	old = loadWordFast(p)
	n, ok := nextWord(op, old, a, u)
	if !ok {
		countStat(statAborts, unsafe.Pointer(p))
		return old, false
	}
	storeWordFast(p, n)
	ReleaseFence()
	FullFence()
	countStat(statCommits, unsafe.Pointer(p))
	return old, true
}

// FromInt64 returns an Int64 initialized to v, for static initialization.
func FromInt64(v int64) Int64 {
	return Int64{v: v}
}

// Init sets the initial value of a counter that is not yet shared.
func (i *Int64) Init(v int64) {
	i.v = v
}

// Load returns the current value, never a torn one.
func (i *Int64) Load() int64 {
	g := irq.Disable()
	v := loadWordFast(&i.v)
	g.Restore()
	return v
}

// Store sets the value.
func (i *Int64) Store(v int64) {
	g := irq.Disable()
	storeWordFast(&i.v, v)
	g.Restore()
}

// RacyLoad reads the value without synchronization. It may observe a torn
// value on 32-bit targets.
func (i *Int64) RacyLoad() int64 {
	return i.v
}

// RacyStore sets the value without synchronization.
func (i *Int64) RacyStore(v int64) {
	i.v = v
}

// LoadAcquire is Load followed by AcquireFence.
func (i *Int64) LoadAcquire() int64 {
	v := i.Load()
	AcquireFence()
	return v
}

// StoreRelease is ReleaseFence followed by Store.
func (i *Int64) StoreRelease(v int64) {
	ReleaseFence()
	i.Store(v)
}

// Add adds d to the value.
func (i *Int64) Add(d int64) { fetchOpFast(&i.v, addOp, d) }

// Sub subtracts d from the value.
func (i *Int64) Sub(d int64) { fetchOpFast(&i.v, addOp, -d) }

// And applies bitwise AND with m.
func (i *Int64) And(m int64) { fetchOpFast(&i.v, andOp, m) }

// Or applies bitwise OR with m.
func (i *Int64) Or(m int64) { fetchOpFast(&i.v, orOp, m) }

// Xor applies bitwise XOR with m.
func (i *Int64) Xor(m int64) { fetchOpFast(&i.v, xorOp, m) }

// Inc adds one.
func (i *Int64) Inc() { fetchOpFast(&i.v, addOp, 1) }

// Dec subtracts one.
func (i *Int64) Dec() { fetchOpFast(&i.v, addOp, -1) }

// FetchAdd adds d and returns the previous value.
func (i *Int64) FetchAdd(d int64) int64 {
	return fetchOpFast(&i.v, addOp, d)
}

// FetchSub subtracts d and returns the previous value.
func (i *Int64) FetchSub(d int64) int64 {
	return i.FetchAdd(-d)
}

// FetchAnd applies bitwise AND with m and returns the previous value.
func (i *Int64) FetchAnd(m int64) int64 {
	return fetchOpFast(&i.v, andOp, m)
}

// FetchOr applies bitwise OR with m and returns the previous value.
func (i *Int64) FetchOr(m int64) int64 {
	return fetchOpFast(&i.v, orOp, m)
}

// FetchXor applies bitwise XOR with m and returns the previous value.
func (i *Int64) FetchXor(m int64) int64 {
	return fetchOpFast(&i.v, xorOp, m)
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
func (i *Int64) AddMasked(g irq.Guard, d int64) { fetchOpFastMasked(g, &i.v, addOp, d) }

// FetchAddMasked is FetchAdd for a caller that already holds g.
func (i *Int64) FetchAddMasked(g irq.Guard, d int64) int64 {
	return fetchOpFastMasked(g, &i.v, addOp, d)
}

// FetchAndMasked is FetchAnd for a caller that already holds g.
func (i *Int64) FetchAndMasked(g irq.Guard, m int64) int64 {
	return fetchOpFastMasked(g, &i.v, andOp, m)
}

// FetchOrMasked is FetchOr for a caller that already holds g.
func (i *Int64) FetchOrMasked(g irq.Guard, m int64) int64 {
	return fetchOpFastMasked(g, &i.v, orOp, m)
}

// FetchXorMasked is FetchXor for a caller that already holds g.
func (i *Int64) FetchXorMasked(g irq.Guard, m int64) int64 {
	return fetchOpFastMasked(g, &i.v, xorOp, m)
}

// FetchAddUnless adds a unless the value equals u, and returns the previous
// value.
func (i *Int64) FetchAddUnless(a, u int64) int64 {
	old, _ := condUpdateFast(&i.v, addUnlessOp, a, u)
	return old
}

// AddUnless adds a unless the value equals u, and reports whether it did.
func (i *Int64) AddUnless(a, u int64) bool {
	return i.FetchAddUnless(a, u) != u
}

// IncNotZero increments the value unless it is zero.
func (i *Int64) IncNotZero() bool {
	return i.AddUnless(1, 0)
}

// IncUnlessNegative increments the value unless it is negative. It returns
// true iff the observed value was not negative.
func (i *Int64) IncUnlessNegative() bool {
	old, _ := condUpdateFast(&i.v, incUnlessNegativeOp, 0, 0)
	return !(old < 0)
}

// DecUnlessPositive decrements the value unless it is positive. It returns
// true iff the observed value was not positive.
func (i *Int64) DecUnlessPositive() bool {
	old, _ := condUpdateFast(&i.v, decUnlessPositiveOp, 0, 0)
	return !(old > 0)
}

// DecIfPositive decrements the value if the result is not negative, and
// returns the observed value minus one either way.
func (i *Int64) DecIfPositive() int64 {
	old, _ := condUpdateFast(&i.v, decIfPositiveOp, 0, 0)
	return old - 1
}

// Swap stores v and returns the previous value.
func (i *Int64) Swap(v int64) int64 {
	old, _ := condUpdateFast(&i.v, swapOp, v, 0)
	return old
}

// CompareAndSwap stores new if the value equals old, and reports whether it
// did.
func (i *Int64) CompareAndSwap(old, new int64) bool {
	_, ok := condUpdateFast(&i.v, casOp, new, old)
	return ok
}
