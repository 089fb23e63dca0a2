package observability

import (
	"net/http"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records engine activity in a private Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	simulations *prometheus.CounterVec
	steps       *prometheus.HistogramVec
	duration    *prometheus.HistogramVec
	analyses    *prometheus.CounterVec
	diagnostics prometheus.Histogram
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		simulations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_simulations_total",
				Help: "Total number of simulated words",
			},
			[]string{"kind", "verdict"},
		),
		steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_simulation_steps",
				Help:    "Length of the witness path of each simulation",
				Buckets: prometheus.ExponentialBuckets(1, 2, 8),
			},
			[]string{"kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_simulation_duration_seconds",
				Help:    "Duration of simulations",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
			[]string{"kind"},
		),
		analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_analyses_total",
				Help: "Total number of static analysis runs",
			},
			[]string{"kind"},
		),
		diagnostics: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "automata_analysis_diagnostics",
				Help:    "Number of diagnostics per analysis",
				Buckets: prometheus.LinearBuckets(0, 1, 6),
			},
		),
	}
	m.registry.MustRegister(m.simulations, m.steps, m.duration, m.analyses, m.diagnostics)
	return m
}

// Registry exposes the registry, e.g. to add process collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSimulate: func(e *domain.SimulationEvent) {
			kind := string(e.Kind)
			m.simulations.WithLabelValues(kind, verdict(e.Accepted)).Inc()
			m.steps.WithLabelValues(kind).Observe(float64(e.Steps))
			m.duration.WithLabelValues(kind).Observe(e.Duration.Seconds())
		},
		OnAnalyze: func(e *domain.AnalysisEvent) {
			m.analyses.WithLabelValues(string(e.Kind)).Inc()
			m.diagnostics.Observe(float64(e.Diagnostics))
		},
	}
}

func verdict(accepted bool) string {
	if accepted {
		return "accepted"
	}
	return "rejected"
}
