//go:build atomx_debug

package opt

import "time"

// Debug_ enables misuse assertions: nested interrupt masking and
// masked windows that outlive MaxMaskHold_.
// Use: go build -tags=atomx_debug
const Debug_ = true

// MaxMaskHold_ bounds how long a context may spin waiting for the
// interrupt mask before the wait is reported as a nested or leaked mask.
// Tests lower it.
var MaxMaskHold_ = 2 * time.Second
