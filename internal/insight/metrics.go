package insight

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks insight fetch outcomes. A nil *Metrics records nothing.
type Metrics struct {
	outcomes *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics creates the insight collectors and registers them with reg when non-nil
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lovewall_insight_fetch_total",
				Help: "Insight fetches by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lovewall_insight_fetch_duration_seconds",
				Help:    "Insight fetch duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.outcomes, m.duration)
	}
	return m
}

func (m *Metrics) observe(outcome Outcome, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(outcome.String()).Inc()
	m.duration.Observe(elapsed.Seconds())
}
