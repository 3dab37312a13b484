package observability

import (
	"context"
	"time"

	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the evaluator's Prometheus collectors.
type Metrics struct {
	NodeVisits  *prometheus.CounterVec
	Writes      *prometheus.CounterVec
	Draws       *prometheus.CounterVec
	Runs        *prometheus.CounterVec
	RunDuration prometheus.Histogram
}

// Run outcomes recorded by ObserveRun.
const (
	OutcomeCompleted = "completed"
	OutcomeCancelled = "cancelled"
	OutcomeFailed    = "failed"
)

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		NodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cyoa_node_visits_total",
				Help: "Total number of evaluated nodes",
			},
			[]string{"kind"},
		),
		Writes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cyoa_result_writes_total",
				Help: "Total number of result store writes",
			},
			[]string{"policy"},
		),
		Draws: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cyoa_random_draws_total",
				Help: "Total number of random draws",
			},
			[]string{"mode"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cyoa_runs_total",
				Help: "Total number of finished runs",
			},
			[]string{"outcome"},
		),
		RunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cyoa_run_duration_seconds",
				Help:    "Duration of document evaluations",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.NodeVisits, m.Writes, m.Draws, m.Runs, m.RunDuration)
	}
	return m
}

// Hooks returns lifecycle hooks that feed the counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(_ context.Context, e *domain.NodeEvent) {
			m.NodeVisits.WithLabelValues(e.Kind.String()).Inc()
		},
		OnWrite: func(_ context.Context, e *domain.WriteEvent) {
			m.Writes.WithLabelValues(policyLabel(e.Policy)).Inc()
		},
		OnDraw: func(_ context.Context, e *domain.DrawEvent) {
			m.Draws.WithLabelValues(e.Mode).Inc()
		},
	}
}

// ObserveRun records a finished run.
func (m *Metrics) ObserveRun(outcome string, d time.Duration) {
	m.Runs.WithLabelValues(outcome).Inc()
	m.RunDuration.Observe(d.Seconds())
}

// UnknownPolicy labels writes whose conflict policy is not a defined one.
// Raw policy names never become label values.
const UnknownPolicy = "unknown"

func policyLabel(p domain.ConflictPolicy) string {
	if !p.Known() {
		return UnknownPolicy
	}
	return string(p)
}
