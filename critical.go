package atomx

import (
	"github.com/llxisdsh/atomx/internal/opt"
	"github.com/llxisdsh/atomx/irq"
)

// rmwOp selects the compound update applied by the critical-section engine.
type rmwOp uint8

const (
	addOp rmwOp = iota
	andOp
	orOp
	xorOp
)

//go:nosplit
func apply[T word](op rmwOp, old, i T) T {
	switch op {
	case andOp:
		return old & i
	case orOp:
		return old | i
	case xorOp:
		return old ^ i
	default:
		return old + i
	}
}

// fetchOp applies op to *p with interrupts masked on the local core and
// returns the value *p held before the update.
func fetchOp[T word](p *T, op rmwOp, i T) T {
	g := irq.Disable()
	defer g.Restore()
	return fetchOpMasked(g, p, op, i)
}

// fetchOpMasked is fetchOp for a caller that already holds g, the mask of
// the local core.
//
// Every critical-section caller is serialized by the mask, so the commit
// below succeeds on the first attempt unless a conditional update from an
// unmasked context landed after the read; the read is then repeated inside
// the same window. Such retries last only as long as unmasked conditional
// updates keep committing to the same word, so the window is not bounded
// by a constant the way it is on a core where masking stops every writer.
func fetchOpMasked[T word](g irq.Guard, p *T, op rmwOp, i T) T {
	checkGuard(g)
	for {
		old := loadWord(p)
		if maskedHook != nil {
			maskedHook()
		}
		if casWord(p, old, apply(op, old, i)) {
			return old
		}
	}
}

// checkGuard panics in debug builds when g does not hold the mask of the
// local core.
func checkGuard(g irq.Guard) {
	if opt.Debug_ && (g.Core() != irq.Local() || !g.Held()) {
		panic("atomx: masked update without the local interrupt mask")
	}
}
