//go:build !atomx_stats

package opt

// Stats_ enables the retry-loop counters of the conditional engine.
const Stats_ = false
