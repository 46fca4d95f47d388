package irq

import (
	"errors"
	"fmt"
	"math/bits"
	"sync/atomic"
)

// Line is an interrupt request line number.
type Line uint8

// MaxLines is the number of lines a Core can track.
const MaxLines = 64

var (
	// ErrInvalidLine is returned for line numbers outside [0, MaxLines).
	ErrInvalidLine = errors.New("invalid interrupt line")
	// ErrLineBusy is returned when a line already has a handler.
	ErrLineBusy = errors.New("interrupt line already registered")
	// ErrNotRegistered is returned by Free for a line without a handler.
	ErrNotRegistered = errors.New("interrupt line not registered")
	// ErrNilHandler is returned when registering a nil handler.
	ErrNilHandler = errors.New("nil interrupt handler")
)

// Handler services one interrupt. It runs with the core masked on its
// behalf, so no masked window of another context overlaps it, and it must
// not block. g is a nested guard for that mask: the handler hands it to
// guard-aware helpers and must not call Disable on the same core.
type Handler func(g Guard, line Line)

type action struct {
	name    string
	fn      Handler
	handled atomic.Uint64
}

// Register installs h as the handler of line.
func (c *Core) Register(line Line, name string, h Handler) error {
	if line >= MaxLines {
		return fmt.Errorf("irq: register %q on line %d: %w", name, line, ErrInvalidLine)
	}
	if h == nil {
		return fmt.Errorf("irq: register %q on line %d: %w", name, line, ErrNilHandler)
	}
	a := &action{name: name, fn: h}
	if prev, loaded := c.handlers.LoadOrStore(line, a); loaded {
		return fmt.Errorf("irq: register %q on line %d (owned by %q): %w",
			name, line, prev.name, ErrLineBusy)
	}
	return nil
}

// Free removes the handler of line and drops a pending request for it.
func (c *Core) Free(line Line) error {
	if line >= MaxLines {
		return fmt.Errorf("irq: free line %d: %w", line, ErrInvalidLine)
	}
	if _, loaded := c.handlers.LoadAndDelete(line); !loaded {
		return fmt.Errorf("irq: free line %d: %w", line, ErrNotRegistered)
	}
	c.pending.And(^(uint64(1) << line))
	return nil
}

// Raise requests an interrupt on line. If the core is unmasked the handler
// runs in the raising context before Raise returns; otherwise the request
// stays pending until the masking context restores the core.
func (c *Core) Raise(line Line) {
	if line >= MaxLines {
		c.spurious.Add(1)
		logger().WithField("line", line).Warn("irq: raise on invalid line")
		return
	}
	c.pending.Or(uint64(1) << line)
	if c.Enabled() {
		c.deliver()
	}
}

// Pending returns the bit set of raised, undelivered lines.
func (c *Core) Pending() uint64 {
	return c.pending.Load()
}

// Handled returns how many times the handler of line has run.
func (c *Core) Handled(line Line) uint64 {
	if a, ok := c.handlers.Load(line); ok {
		return a.handled.Load()
	}
	return 0
}

// Spurious returns the number of requests that found no handler.
func (c *Core) Spurious() uint64 {
	return c.spurious.Load()
}

// deliver runs pending handlers, lowest line first. The delivering
// context takes the mask for the handlers, so they run one at a time and
// never alongside a masked window. A context that cannot take the mask
// leaves the pending lines to the one holding it, which delivers them when
// it restores the core.
func (c *Core) deliver() {
	// A line raised after the last pass but before the mask was dropped is
	// picked up by the pending check here.
	for c.pending.Load() != 0 && c.mask.CompareAndSwap(0, maskBit) {
		c.drain()
	}
}

func (c *Core) drain() {
	defer c.mask.Store(0)
	g := Guard{c: c, saved: Disabled}
	for {
		p := c.pending.Load()
		if p == 0 {
			return
		}
		line := Line(bits.TrailingZeros64(p))
		bit := uint64(1) << line
		if c.pending.And(^bit)&bit == 0 {
			continue
		}
		c.handle(g, line)
	}
}

func (c *Core) handle(g Guard, line Line) {
	a, ok := c.handlers.Load(line)
	if !ok {
		c.spurious.Add(1)
		logger().WithField("line", line).Warn("irq: spurious interrupt")
		return
	}
	a.handled.Add(1)
	a.fn(g, line)
}

// Register installs h for line on the local core.
func Register(line Line, name string, h Handler) error {
	return local.Register(line, name, h)
}

// Free removes the handler of line on the local core.
func Free(line Line) error {
	return local.Free(line)
}

// Raise requests an interrupt on line of the local core.
func Raise(line Line) {
	local.Raise(line)
}
