package atomx

import (
	"sync/atomic"
	"unsafe"

	"github.com/llxisdsh/atomx/internal/opt"
)

// Stats is a snapshot of the conditional engine's retry counters.
// The counters only move in binaries built with -tags=atomx_stats.
type Stats struct {
	// Commits counts conditional updates that stored a new value.
	Commits uint64
	// Aborts counts conditional updates rejected by their guard.
	Aborts uint64
	// LostReservations counts store-conditional attempts that failed.
	LostReservations uint64
	// Fallbacks counts updates completed through the critical-section
	// engine after exhausting their attempt budget.
	Fallbacks uint64
}

type statKind uint8

const (
	statCommits statKind = iota
	statAborts
	statLostReservations
	statFallbacks
	statKinds
)

// statStripes must be a power of two.
const statStripes = 16

// Counters are striped by counter address so that unrelated counters do
// not contend on one statistics word.
var stats [statKinds][statStripes]opt.CounterStripe_

// StatsEnabled reports whether this binary counts engine statistics.
const StatsEnabled = opt.Stats_

//go:nosplit
func countStat(kind statKind, p unsafe.Pointer) {
	if !opt.Stats_ {
		return
	}
	idx := (uintptr(p) >> 3) & (statStripes - 1)
	atomic.AddUintptr(&stats[kind][idx].C, 1)
}

func sumStat(kind statKind) uint64 {
	var sum uint64
	for i := range statStripes {
		sum += uint64(atomic.LoadUintptr(&stats[kind][i].C))
	}
	return sum
}

// ReadStats returns the current engine statistics. Stripes are read one at
// a time, so a snapshot taken under concurrent updates is not atomic.
func ReadStats() Stats {
	return Stats{
		Commits:          sumStat(statCommits),
		Aborts:           sumStat(statAborts),
		LostReservations: sumStat(statLostReservations),
		Fallbacks:        sumStat(statFallbacks),
	}
}

// ResetStats zeroes all engine statistics.
func ResetStats() {
	for k := range statKinds {
		for i := range statStripes {
			atomic.StoreUintptr(&stats[k][i].C, 0)
		}
	}
}
