package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/arbor/pkg/domain"
)

// Metrics holds the Prometheus collectors fed by the engine hooks.
type Metrics struct {
	Registry  *prometheus.Registry
	Passes    *prometheus.CounterVec
	Inputs    *prometheus.CounterVec
	Completed *prometheus.CounterVec
}

// NewMetrics creates the collectors on a dedicated registry, along with the standard
// Go and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_passes_total",
				Help: "Total number of traversal passes",
			},
			[]string{"schema"},
		),
		Inputs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_inputs_total",
				Help: "Submitted values by outcome",
			},
			[]string{"schema", "result"},
		),
		Completed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_sessions_completed_total",
				Help: "Sessions that reached completion",
			},
			[]string{"schema"},
		),
	}
	m.Registry.MustRegister(
		m.Passes,
		m.Inputs,
		m.Completed,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPass: func(_ context.Context, e *domain.PassEvent) {
			m.Passes.WithLabelValues(e.Schema).Inc()
		},
		OnApply: func(_ context.Context, e *domain.InputEvent) {
			m.Inputs.WithLabelValues(e.Schema, "applied").Inc()
		},
		OnReject: func(_ context.Context, e *domain.InputEvent) {
			m.Inputs.WithLabelValues(e.Schema, "rejected").Inc()
		},
		OnComplete: func(_ context.Context, e *domain.EventBase) {
			m.Completed.WithLabelValues(e.Schema).Inc()
		},
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
