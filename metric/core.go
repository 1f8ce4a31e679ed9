package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains process-wide metrics that are not tied to one ring instance
type Metrics struct {
	ScenarioRuns    *prometheus.CounterVec
	OperationErrors *prometheus.CounterVec
	RingsLive       prometheus.Gauge
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		ScenarioRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ringpolicy",
				Subsystem: "demo",
				Name:      "scenario_runs_total",
				Help:      "Total number of scenario runs",
			},
			[]string{"scenario", "status"},
		),

		OperationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ringpolicy",
				Subsystem: "ring",
				Name:      "operation_errors_total",
				Help:      "Total number of failed ring operations by error class",
			},
			[]string{"ring", "operation", "class"},
		),

		RingsLive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "ringpolicy",
				Subsystem: "ring",
				Name:      "live",
				Help:      "Number of rings currently holding storage",
			},
		),
	}
}

func (c *Metrics) mustRegister(reg prometheus.Registerer) {
	reg.MustRegister(c.ScenarioRuns, c.OperationErrors, c.RingsLive)
}

// RecordScenario increments the scenario run counter
func (c *Metrics) RecordScenario(scenario string, ok bool) {
	status := "ok"
	if !ok {
		status = "failed"
	}
	c.ScenarioRuns.WithLabelValues(scenario, status).Inc()
}

// RecordOperationError increments the failed operation counter
func (c *Metrics) RecordOperationError(ring, operation, class string) {
	c.OperationErrors.WithLabelValues(ring, operation, class).Inc()
}

// RingAcquired records that a ring took ownership of storage
func (c *Metrics) RingAcquired() {
	c.RingsLive.Inc()
}

// RingReleased records that a ring gave up its storage
func (c *Metrics) RingReleased() {
	c.RingsLive.Dec()
}
