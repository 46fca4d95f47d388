package atomx

import (
	"unsafe"

	"github.com/llxisdsh/atomx/irq"
)

// retryBudget is the number of store-conditional attempts a conditional
// update makes before it is completed through the critical-section engine.
// A reservation is only lost to a conflicting store on the same word, so an
// uncontended update commits on its first attempt and the budget is never
// reached in practice. Tests lower it.
var retryBudget = 1 << 20

// condOp selects the guard and the new value of a conditional update.
type condOp uint8

const (
	// addUnlessOp stores old+a unless old == u.
	addUnlessOp condOp = iota
	// incUnlessNegativeOp stores old+1 unless old < 0.
	incUnlessNegativeOp
	// decUnlessPositiveOp stores old-1 unless old > 0.
	decUnlessPositiveOp
	// decIfPositiveOp stores old-1 unless old-1 < 0.
	decIfPositiveOp
	// swapOp always stores a.
	swapOp
	// casOp stores a if old == u.
	casOp
)

// nextWord computes the value a conditional update would commit, and
// reports false when the guard rejects old. Arithmetic wraps at the width
// of T, like the hardware add.
//
//go:nosplit
func nextWord[T word](op condOp, old, a, u T) (T, bool) {
	switch op {
	case addUnlessOp:
		if old == u {
			return old, false
		}
		return old + a, true
	case incUnlessNegativeOp:
		if old < 0 {
			return old, false
		}
		return old + 1, true
	case decUnlessPositiveOp:
		if old > 0 {
			return old, false
		}
		return old - 1, true
	case decIfPositiveOp:
		// The minimum value wraps to the maximum one and is stored.
		n := old - 1
		if n < 0 {
			return old, false
		}
		return n, true
	case swapOp:
		return a, true
	case casOp:
		if old != u {
			return old, false
		}
		return a, true
	}
	return old, false
}

// reservation is the state held between load-reserved and
// store-conditional: the reserved address and the value observed there.
type reservation[T word] struct {
	p *T
	v T
}

//go:nosplit
func loadReserved[T word](p *T) reservation[T] {
	return reservation[T]{p: p, v: loadWord(p)}
}

// storeConditional stores v unless the reserved word changed since it was
// loaded.
//
//go:nosplit
func (r reservation[T]) storeConditional(v T) bool {
	return casWord(r.p, r.v, v)
}

// condUpdate runs one conditional update as a load-reserved /
// store-conditional loop:
//
//	Start -> ReadValue -> guard fails  -> Abort(old)
//	                   -> guard passes -> AttemptStore -> lost      -> ReadValue
//	                                                   -> committed -> Fence -> Done(old)
//
// The committing path is followed by a release fence and a full fence; the
// abort path carries no ordering.
func condUpdate[T word](p *T, op condOp, a, u T) (old T, committed bool) {
	for attempt := 0; attempt < retryBudget; attempt++ {
		r := loadReserved(p)
		n, ok := nextWord(op, r.v, a, u)
		if !ok {
			countStat(statAborts, unsafe.Pointer(p))
			return r.v, false
		}
		if reservedHook != nil {
			reservedHook()
		}
		if r.storeConditional(n) {
			ReleaseFence()
			FullFence()
			countStat(statCommits, unsafe.Pointer(p))
			return r.v, true
		}
		countStat(statLostReservations, unsafe.Pointer(p))
	}
	countStat(statFallbacks, unsafe.Pointer(p))
	return condUpdateMasked(p, op, a, u)
}

// condUpdateMasked completes a conditional update that ran out of attempts.
// Masking stops every critical-section writer; the loop below only repeats
// if another conditional update commits first.
func condUpdateMasked[T word](p *T, op condOp, a, u T) (old T, committed bool) {
	g := irq.Disable()
	defer g.Restore()
	for {
		old = loadWord(p)
		n, ok := nextWord(op, old, a, u)
		if !ok {
			countStat(statAborts, unsafe.Pointer(p))
			return old, false
		}
		if casWord(p, old, n) {
			ReleaseFence()
			FullFence()
			countStat(statCommits, unsafe.Pointer(p))
			return old, true
		}
		countStat(statLostReservations, unsafe.Pointer(p))
	}
}
