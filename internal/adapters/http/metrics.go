package http

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the per-handler Prometheus collectors.
// Each server gets its own registry so tests can spin up handlers freely.
type metrics struct {
	registry   *prometheus.Registry
	executions *prometheus.CounterVec
	duration   prometheus.Histogram
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		executions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nbtest",
			Name:      "cell_executions_total",
			Help:      "Number of cell executions handled, by outcome.",
		}, []string{"status"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nbtest",
			Name:      "cell_execution_seconds",
			Help:      "Wall time of cell executions.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *metrics) observeExecution(err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.executions.WithLabelValues(status).Inc()
	m.duration.Observe(elapsed.Seconds())
}
