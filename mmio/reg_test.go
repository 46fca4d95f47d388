package mmio

import (
	"sync"
	"testing"

	"github.com/llxisdsh/atomx/irq"
)

func TestReg32_Bits(t *testing.T) {
	var r Reg32
	r.Store(0xF0)
	r.SetBits(0x0F)
	if got := r.Load(); got != 0xFF {
		t.Fatalf("after SetBits: %#x, want 0xff", got)
	}
	r.ClearBits(0x3C)
	if got := r.Load(); got != 0xC3 {
		t.Fatalf("after ClearBits: %#x, want 0xc3", got)
	}
	if old := r.ReplaceBits(0xF0, 0x50); old != 0xC3 {
		t.Fatalf("ReplaceBits returned %#x, want 0xc3", old)
	}
	if got := r.Load(); got != 0x53 {
		t.Fatalf("after ReplaceBits: %#x, want 0x53", got)
	}
}

func TestReg64_Bits(t *testing.T) {
	var r Reg64
	r.SetBits(1 << 63)
	r.SetBits(1)
	r.ClearBits(1 << 63)
	if got := r.Load(); got != 1 {
		t.Fatalf("Load() = %#x, want 1", got)
	}
}

func TestReg32_ReplaceBitsMasked(t *testing.T) {
	var r Reg32
	g := irq.Disable()
	r.ReplaceBitsMasked(g, 0x1, 0x1)
	if irq.Local().Enabled() {
		t.Fatal("ReplaceBitsMasked unmasked the core")
	}
	g.Restore()
	if got := r.Load(); got != 1 {
		t.Fatalf("Load() = %#x, want 1", got)
	}
}

func TestReg32_ConcurrentSetBits(t *testing.T) {
	var r Reg32
	var wg sync.WaitGroup
	wg.Add(32)
	for i := range 32 {
		go func() {
			defer wg.Done()
			r.SetBits(1 << i)
		}()
	}
	wg.Wait()
	if got := r.Load(); got != 0xFFFFFFFF {
		t.Fatalf("Load() = %#x, want all bits set", got)
	}
}

func TestBlock_At(t *testing.T) {
	b := NewBlock(0x1C)
	if b.Size() != 0x20 {
		t.Fatalf("Size() = %#x, want 0x20", b.Size())
	}
	ctrl := At[Reg32](b, 0x04)
	data := At[Reg64](b, 0x08)
	ctrl.Store(0xA5)
	data.Store(0x1122334455667788)
	if At[Reg32](b, 0x04).Load() != 0xA5 {
		t.Fatal("register at 0x04 does not alias ctrl")
	}
	if At[Reg32](b, 0x00).Load() != 0 {
		t.Fatal("neighbouring register was written")
	}
	if data.Load() != 0x1122334455667788 {
		t.Fatalf("data = %#x", data.Load())
	}

	for _, c := range []struct {
		name string
		fn   func()
	}{
		{"misaligned", func() { At[Reg32](b, 0x02) }},
		{"misaligned64", func() { At[Reg64](b, 0x04) }},
		{"outside", func() { At[Reg64](b, 0x20) }},
	} {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("At did not panic")
				}
			}()
			c.fn()
		})
	}
}

// A handler updating a register through its guard never interleaves with a
// masked read-modify-write in task context.
func TestReg32_HandlerAndTaskUpdates(t *testing.T) {
	const line irq.Line = 21
	var r Reg32
	if err := irq.Register(line, t.Name(), func(g irq.Guard, _ irq.Line) {
		r.ReplaceBitsMasked(g, 0xFFFF, r.Load()+1)
	}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = irq.Free(line) })

	const m = 1000
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range m {
			r.ReplaceBits(0xFFFF0000, r.Load()+0x10000)
		}
	}()
	go func() {
		defer wg.Done()
		for range m {
			irq.Raise(line)
		}
	}()
	wg.Wait()
	for irq.Local().Pending() != 0 {
		g := irq.Disable()
		g.Restore()
	}

	if got, want := r.Load()&0xFFFF, uint32(irq.Local().Handled(line)); got != want {
		t.Fatalf("handler count bits = %d, want %d", got, want)
	}
	if got := r.Load() >> 16; got != m {
		t.Fatalf("task count bits = %d, want %d", got, m)
	}
}
