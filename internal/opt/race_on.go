//go:build race

package opt

// Race_ reports whether the binary was built with the race detector.
// Under the race detector plain word accesses are replaced with atomic ones
// so that payload reads and writes inside a masked window are visible to it.
const Race_ = true
