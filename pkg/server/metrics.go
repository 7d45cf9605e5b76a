package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	edits       *prometheus.CounterVec
	submits     *prometheus.CounterVec
	reloads     *prometheus.CounterVec
	diagnostics prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pageblocks_edits_total",
			Help: "Working copy edits by operation and outcome.",
		}, []string{"op", "outcome"}),
		submits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pageblocks_submits_total",
			Help: "Submits to the content store by outcome.",
		}, []string{"outcome"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pageblocks_reloads_total",
			Help: "Content file changes seen by the host, by outcome.",
		}, []string{"outcome"}),
		diagnostics: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pageblocks_render_diagnostics_total",
			Help: "Blocks that could not be rendered.",
		}),
	}
	reg.MustRegister(m.edits, m.submits, m.reloads, m.diagnostics)
	return m
}

func (m *metrics) edit(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	m.edits.WithLabelValues(op, outcome).Inc()
}
