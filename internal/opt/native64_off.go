//go:build 386 || arm || mips || mipsle || atomx_emulate64

package opt

// Native64_ reports whether 64-bit counters use native 64-bit atomic
// access. On 32-bit targets, or with -tags=atomx_emulate64, every 64-bit
// operation runs under the interrupt mask instead.
const Native64_ = false
