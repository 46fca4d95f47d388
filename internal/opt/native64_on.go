//go:build !(386 || arm || mips || mipsle) && !atomx_emulate64

package opt

// Native64_ reports whether 64-bit counters use native 64-bit atomic
// access. It is true on every 64-bit GOARCH unless the
// atomx_emulate64 build tag forces the software fallback.
const Native64_ = true
