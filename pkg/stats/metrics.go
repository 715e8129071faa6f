package stats

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the prometheus collectors updated by a [Tracker].
// They are opt-in, for long-lived hosts that expose a registry; one-shot commands
// don't need them. A nil *Metrics is valid and records nothing.
type Metrics struct {
	plays    prometheus.Counter
	resets   prometheus.Counter
	failures *prometheus.CounterVec
	degraded prometheus.Gauge
}

// NewMetrics creates the tracker collectors and registers them with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		plays: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "playstats",
			Name:      "plays_total",
			Help:      "Number of play events recorded.",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "playstats",
			Name:      "resets_total",
			Help:      "Number of times all statistics were reset.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "playstats",
			Name:      "failures_total",
			Help:      "Number of failed storage operations, by operation.",
		}, []string{"op"}),
		degraded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "playstats",
			Name:      "degraded",
			Help:      "1 if the tracker is running without storage, 0 otherwise.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.plays, m.resets, m.failures, m.degraded)
	}
	return m
}

func (m *Metrics) play() {
	if m != nil {
		m.plays.Inc()
	}
}

func (m *Metrics) reset() {
	if m != nil {
		m.resets.Inc()
	}
}

func (m *Metrics) failure(op string) {
	if m != nil {
		m.failures.WithLabelValues(op).Inc()
	}
}

func (m *Metrics) setDegraded(degraded bool) {
	if m == nil {
		return
	}
	if degraded {
		m.degraded.Set(1)
	} else {
		m.degraded.Set(0)
	}
}
