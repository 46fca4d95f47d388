package atomxprom

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/llxisdsh/atomx"
	"github.com/llxisdsh/atomx/irq"
)

func TestCollector(t *testing.T) {
	var core irq.Core
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(NewCoreCollector("atomx", &core)); err != nil {
		t.Fatal(err)
	}

	g := core.Disable()
	core.Raise(4)
	core.Raise(5)
	families, err := reg.Gather()
	g.Restore()
	if err != nil {
		t.Fatal(err)
	}

	got := make(map[string]float64)
	for _, f := range families {
		m := f.GetMetric()[0]
		if c := m.GetCounter(); c != nil {
			got[f.GetName()] = c.GetValue()
		} else {
			got[f.GetName()] = m.GetGauge().GetValue()
		}
	}
	for _, name := range []string{
		"atomx_conditional_commits_total",
		"atomx_conditional_aborts_total",
		"atomx_lost_reservations_total",
		"atomx_masked_fallbacks_total",
		"atomx_irq_pending_lines",
		"atomx_irq_spurious_total",
	} {
		if _, ok := got[name]; !ok {
			t.Errorf("metric %s not exported", name)
		}
	}
	if v := got["atomx_irq_pending_lines"]; v != 2 {
		t.Errorf("pending lines = %v, want 2", v)
	}
	// Both lines had no handler, so restoring the core dropped them.
	if core.Spurious() != 2 {
		t.Errorf("Spurious() = %d, want 2", core.Spurious())
	}
}

func TestCollectorTracksStats(t *testing.T) {
	if !atomx.StatsEnabled {
		t.Skip("built without -tags=atomx_stats")
	}
	atomx.ResetStats()
	var x atomx.Int32
	x.IncUnlessNegative()

	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector("atomx"))
	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range families {
		if f.GetName() == "atomx_conditional_commits_total" {
			if v := f.GetMetric()[0].GetCounter().GetValue(); v != 1 {
				t.Fatalf("commits = %v, want 1", v)
			}
			return
		}
	}
	t.Fatal("commits metric missing")
}
