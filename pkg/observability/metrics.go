package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

const namespace = "fxgen"

// Metrics holds the generator collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	passes      *prometheus.CounterVec
	duration    prometheus.Histogram
	warnings    prometheus.Counter
	layerStates *prometheus.GaugeVec
	layerEdges  *prometheus.GaugeVec
	cleaned     prometheus.Counter
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "passes_total",
				Help:      "Generation passes by result and layout.",
			},
			[]string{"result", "layout"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_duration_seconds",
			Help:      "Duration of generation passes.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Recoverable configuration problems found during passes.",
		}),
		layerStates: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "layer",
				Name:      "states",
				Help:      "States in the last emitted version of a layer.",
			},
			[]string{"layer"},
		),
		layerEdges: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "layer",
				Name:      "transitions",
				Help:      "Transitions in the last emitted version of a layer.",
			},
			[]string{"layer"},
		),
		cleaned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outputs_cleaned_total",
			Help:      "Stale outputs deleted.",
		}),
	}
	m.registry.MustRegister(m.passes, m.duration, m.warnings, m.layerStates, m.layerEdges, m.cleaned)
	return m
}

// Registry exposes the underlying registry, e.g. for tests or textfile export.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WriteToTextfile writes the current values for a node_exporter textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLayerEmitted: func(_ context.Context, e *domain.LayerEvent) {
			m.layerStates.WithLabelValues(e.Layer).Set(float64(e.States))
			m.layerEdges.WithLabelValues(e.Layer).Set(float64(e.Transitions))
		},
		OnPassFinished: func(_ context.Context, e *domain.PassEvent) {
			result := "success"
			if e.Err != nil {
				result = "failure"
			}
			layout := "normal"
			if e.Compressed {
				layout = "compressed"
			}
			m.passes.WithLabelValues(result, layout).Inc()
			m.duration.Observe(e.Duration.Seconds())
			m.warnings.Add(float64(e.Warnings))
		},
		OnCleaned: func(context.Context, *domain.CleanupEvent) {
			m.cleaned.Inc()
		},
	}
}
