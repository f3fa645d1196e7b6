package emit

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes emission counters to a Prometheus registry. A nil
// *Metrics is always safe to use: every call site checks for nil before
// touching it, so Metrics is purely additive instrumentation and never
// alters emission behavior (spec §5, no observable side effects).
type Metrics struct {
	instructionsEmitted prometheus.Counter
	labelsMinted        prometheus.Counter
}

// NewMetrics registers emission counters with reg and returns a *Metrics
// ready to pass in Options. reg may be a *prometheus.Registry or
// prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		instructionsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "redscript",
			Subsystem: "emit",
			Name:      "instructions_emitted_total",
			Help:      "Number of bytecode instructions emitted, across all function bodies.",
		}),
		labelsMinted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "redscript",
			Subsystem: "emit",
			Name:      "labels_minted_total",
			Help:      "Number of symbolic labels minted by the emitter, across all function bodies.",
		}),
	}
	reg.MustRegister(m.instructionsEmitted, m.labelsMinted)
	return m
}
