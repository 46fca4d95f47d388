// Package irq models the interrupt-enable state of a single core.
//
// A hosted Go process has no hardware interrupts, so a Core stands in for
// one hart: masking it grants the masking context exclusive occupancy of the
// core until the mask is restored, and interrupt lines raised while it is
// masked stay pending until then.
package irq

import (
	"sync/atomic"
	"time"

	"github.com/llxisdsh/pb"

	"github.com/llxisdsh/atomx/internal/opt"
)

// State is the interrupt-enable state saved by Disable.
type State uint32

const (
	// Disabled means interrupts were already masked by the caller.
	Disabled State = 0
	// Enabled means interrupts were deliverable before the mask was taken.
	Enabled State = 1
)

func (s State) String() string {
	if s == Enabled {
		return "enabled"
	}
	return "disabled"
}

const maskBit = 1

// Core is the interrupt controller of one execution core.
//
// The zero value is an unmasked core with no registered lines.
type Core struct {
	_ opt.NoCopy
	// mask 32-bit:
	//   bit 0: interrupts masked
	mask atomic.Uint32
	// pending holds one bit per raised, undelivered line.
	pending  atomic.Uint64
	spurious atomic.Uint64
	handlers pb.MapOf[Line, *action]
}

var local Core

// Local returns the core the calling context runs on.
// Hosted builds model a single core, so every context shares it.
func Local() *Core {
	return &local
}

// Guard is the capability of running with interrupts masked.
// It is obtained from Disable and given back with Restore. Interrupt
// handlers receive one for the duration of the handler.
type Guard struct {
	c     *Core
	saved State
}

// Disable saves the interrupt-enable state of the core and masks it.
// It spins while another context holds the mask.
//
// Critical sections do not nest through Disable: code that already holds
// a Guard, including an interrupt handler, passes one on with Guard.Disable
// or calls the guard-aware helpers instead.
//
//go:nosplit
func (c *Core) Disable() Guard {
	if c.mask.CompareAndSwap(0, maskBit) {
		return Guard{c: c, saved: Enabled}
	}
	c.slowDisable()
	return Guard{c: c, saved: Enabled}
}

func (c *Core) slowDisable() {
	var spins int
	var start time.Time
	for !c.mask.CompareAndSwap(0, maskBit) {
		if opt.Debug_ {
			if start.IsZero() {
				start = time.Now()
			} else if time.Since(start) > opt.MaxMaskHold_ {
				panic("irq: interrupt mask held too long (nested Disable or leaked Guard)")
			}
		}
		opt.Delay(&spins)
	}
}

// Enabled reports whether interrupts are currently deliverable.
//
//go:nosplit
func (c *Core) Enabled() bool {
	return c.mask.Load()&maskBit == 0
}

// Disable masks interrupts on the local core.
func Disable() Guard {
	return local.Disable()
}

// Disable hands out a nested guard for a region already running masked.
// Restoring the nested guard leaves the core masked.
//
//go:nosplit
func (g Guard) Disable() Guard {
	return Guard{c: g.c, saved: Disabled}
}

// State returns the interrupt-enable state saved when g was taken.
//
//go:nosplit
func (g Guard) State() State {
	return g.saved
}

// Core returns the core g masks.
//
//go:nosplit
func (g Guard) Core() *Core {
	return g.c
}

// Held reports whether g refers to a core that is currently masked.
//
//go:nosplit
func (g Guard) Held() bool {
	return g.c != nil && !g.c.Enabled()
}

// Restore puts back the interrupt-enable state saved in g and clears g, so
// restoring the same guard again does nothing. When that re-enables the
// core, lines raised during the masked window are delivered before Restore
// returns.
func (g *Guard) Restore() {
	c := g.c
	if c == nil {
		return
	}
	g.c = nil
	if g.saved == Disabled {
		return
	}
	if opt.Debug_ && c.mask.Load()&maskBit == 0 {
		panic("irq: restore of an unmasked core")
	}
	c.mask.Store(0)
	if c.pending.Load() != 0 {
		c.deliver()
	}
}
