//go:build !atomx_debug

package opt

import "time"

// Debug_ enables misuse assertions.
const Debug_ = false

// MaxMaskHold_ is unused unless built with atomx_debug.
const MaxMaskHold_ time.Duration = 0
