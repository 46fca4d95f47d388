package opt

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize_ is the padding unit used to keep hot words (the fence word,
// statistics stripes) on their own cache line.
// It's taken from the `golang.org/x/sys/cpu` pad for the build target.
const CacheLineSize_ = unsafe.Sizeof(cpu.CacheLinePad{})
