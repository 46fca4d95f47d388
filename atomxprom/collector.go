// Package atomxprom exports atomx engine statistics and interrupt core
// state as Prometheus metrics.
package atomxprom

import (
	"math/bits"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/llxisdsh/atomx"
	"github.com/llxisdsh/atomx/irq"
)

// Collector implements prometheus.Collector over atomx.ReadStats and one
// interrupt core.
type Collector struct {
	core *irq.Core

	commits          *prometheus.Desc
	aborts           *prometheus.Desc
	lostReservations *prometheus.Desc
	fallbacks        *prometheus.Desc
	pendingLines     *prometheus.Desc
	spurious         *prometheus.Desc
}

// NewCollector returns a collector for the local interrupt core.
func NewCollector(namespace string) *Collector {
	return NewCoreCollector(namespace, irq.Local())
}

// NewCoreCollector returns a collector reporting the state of core.
func NewCoreCollector(namespace string, core *irq.Core) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil)
	}
	return &Collector{
		core:             core,
		commits:          desc("conditional_commits_total", "Conditional updates that stored a new value"),
		aborts:           desc("conditional_aborts_total", "Conditional updates rejected by their guard"),
		lostReservations: desc("lost_reservations_total", "Store-conditional attempts that lost their reservation"),
		fallbacks:        desc("masked_fallbacks_total", "Conditional updates completed under the interrupt mask after exhausting their attempt budget"),
		pendingLines:     desc("irq_pending_lines", "Interrupt lines raised and not yet delivered"),
		spurious:         desc("irq_spurious_total", "Interrupt requests that found no handler"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.commits
	ch <- c.aborts
	ch <- c.lostReservations
	ch <- c.fallbacks
	ch <- c.pendingLines
	ch <- c.spurious
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := atomx.ReadStats()
	ch <- prometheus.MustNewConstMetric(c.commits, prometheus.CounterValue, float64(s.Commits))
	ch <- prometheus.MustNewConstMetric(c.aborts, prometheus.CounterValue, float64(s.Aborts))
	ch <- prometheus.MustNewConstMetric(c.lostReservations, prometheus.CounterValue, float64(s.LostReservations))
	ch <- prometheus.MustNewConstMetric(c.fallbacks, prometheus.CounterValue, float64(s.Fallbacks))
	ch <- prometheus.MustNewConstMetric(c.pendingLines, prometheus.GaugeValue,
		float64(bits.OnesCount64(c.core.Pending())))
	ch <- prometheus.MustNewConstMetric(c.spurious, prometheus.CounterValue, float64(c.core.Spurious()))
}
