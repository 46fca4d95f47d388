package atomx

// Internal test hooks. Production code never sets them; each is a nil check
// on the path it instruments.
var (
	// maskedHook runs inside every masked window after the payload has
	// been read and before the new value is committed.
	maskedHook func()
	// reservedHook runs in the conditional engine between load-reserved
	// and store-conditional.
	reservedHook func()
)
