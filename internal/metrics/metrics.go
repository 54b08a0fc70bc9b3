package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the optimization pipeline.
type Metrics struct {
	recommendations *prometheus.CounterVec
	blocked         *prometheus.CounterVec
	executions      *prometheus.CounterVec
	runDuration     prometheus.Histogram
}

// New registers the collectors on the default registry.
func New() *Metrics {
	return &Metrics{
		recommendations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optimizer_recommendations_total",
				Help: "Total recommendations produced, by action type and risk tier",
			},
			[]string{"action_type", "risk_tier"},
		),
		blocked: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optimizer_blocked_total",
				Help: "Total recommendations blocked by a guardrail, by reason",
			},
			[]string{"reason"},
		),
		executions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optimizer_executions_total",
				Help: "Total execution results, by status",
			},
			[]string{"status"},
		),
		runDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "optimizer_run_duration_seconds",
				Help:    "Duration of one optimization run",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

func (m *Metrics) RecordRecommendation(actionType, riskTier string) {
	m.recommendations.WithLabelValues(actionType, riskTier).Inc()
}

func (m *Metrics) RecordBlocked(reason string) {
	m.blocked.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordExecution(status string) {
	m.executions.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveRunDuration(seconds float64) {
	m.runDuration.Observe(seconds)
}
