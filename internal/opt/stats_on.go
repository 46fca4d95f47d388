//go:build atomx_stats

package opt

// Stats_ enables the retry-loop counters of the conditional engine.
// Use: go build -tags=atomx_stats
const Stats_ = true
