package diagnostics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes pipeline counters to a Prometheus registry. A nil
// *Metrics is always safe to use.
type Metrics struct {
	diagnosticsTotal *prometheus.CounterVec
}

// NewMetrics registers pipeline counters with reg and returns a *Metrics
// ready to pass in Options.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		diagnosticsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "redscript",
			Subsystem: "diagnostics",
			Name:      "findings_total",
			Help:      "Number of diagnostics raised by the pipeline, by severity.",
		}, []string{"severity"}),
	}
	reg.MustRegister(m.diagnosticsTotal)
	return m
}
