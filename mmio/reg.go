// Package mmio provides ordered access to memory-mapped device registers.
//
// Loads are followed by an acquire fence and stores are preceded by a
// release fence, so register accesses stay ordered with the surrounding
// memory accesses of the driver. Read-modify-write helpers run with
// interrupts masked on the local core, which keeps an interrupt handler on
// the same core from interleaving with them; they do not protect against a
// device changing the register between the read and the write.
package mmio

import (
	"sync/atomic"

	"github.com/llxisdsh/atomx"
	"github.com/llxisdsh/atomx/internal/opt"
	"github.com/llxisdsh/atomx/irq"
)

func checkGuard(g irq.Guard) {
	if opt.Debug_ && !g.Held() {
		panic("mmio: masked register update without the interrupt mask")
	}
}

// Reg32 is a 32-bit device register.
type Reg32 struct {
	v uint32
}

// Load reads the register.
//
//go:nosplit
func (r *Reg32) Load() uint32 {
	v := atomic.LoadUint32(&r.v)
	atomx.AcquireFence()
	return v
}

// Store writes the register.
//
//go:nosplit
func (r *Reg32) Store(v uint32) {
	atomx.ReleaseFence()
	atomic.StoreUint32(&r.v, v)
}

// SetBits sets the bits of m.
func (r *Reg32) SetBits(m uint32) {
	r.ReplaceBits(m, m)
}

// ClearBits clears the bits of m.
func (r *Reg32) ClearBits(m uint32) {
	r.ReplaceBits(m, 0)
}

// ReplaceBits replaces the bits selected by mask with those of value and
// returns the previous register value.
func (r *Reg32) ReplaceBits(mask, value uint32) uint32 {
	g := irq.Disable()
	defer g.Restore()
	return r.ReplaceBitsMasked(g, mask, value)
}

// ReplaceBitsMasked is ReplaceBits for callers that already run masked and
// hold g, such as interrupt handlers.
func (r *Reg32) ReplaceBitsMasked(g irq.Guard, mask, value uint32) uint32 {
	checkGuard(g)
	old := r.Load()
	r.Store(old&^mask | value&mask)
	return old
}

// Reg64 is a 64-bit device register.
type Reg64 struct {
	v uint64
}

// Load reads the register.
//
//go:nosplit
func (r *Reg64) Load() uint64 {
	v := atomic.LoadUint64(&r.v)
	atomx.AcquireFence()
	return v
}

// Store writes the register.
//
//go:nosplit
func (r *Reg64) Store(v uint64) {
	atomx.ReleaseFence()
	atomic.StoreUint64(&r.v, v)
}

// SetBits sets the bits of m.
func (r *Reg64) SetBits(m uint64) {
	r.ReplaceBits(m, m)
}

// ClearBits clears the bits of m.
func (r *Reg64) ClearBits(m uint64) {
	r.ReplaceBits(m, 0)
}

// ReplaceBits replaces the bits selected by mask with those of value and
// returns the previous register value.
func (r *Reg64) ReplaceBits(mask, value uint64) uint64 {
	g := irq.Disable()
	defer g.Restore()
	return r.ReplaceBitsMasked(g, mask, value)
}

// ReplaceBitsMasked is ReplaceBits for callers that already run masked and
// hold g, such as interrupt handlers.
func (r *Reg64) ReplaceBitsMasked(g irq.Guard, mask, value uint64) uint64 {
	checkGuard(g)
	old := r.Load()
	r.Store(old&^mask | value&mask)
	return old
}
