// Package metrics exposes pipeline counters to Prometheus.
package metrics

import (
	"time"

	"github.com/natevvv/osm-road-export/pkg/pipeline"
	"github.com/natevvv/osm-road-export/pkg/road"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors of one registry.
type Metrics struct {
	Features    *prometheus.CounterVec
	Runs        *prometheus.CounterVec
	RunDuration prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Features: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roadexport",
			Subsystem: "pipeline",
			Name:      "features_total",
			Help:      "Features processed, by extraction outcome",
		}, []string{"outcome"}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roadexport",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Pipeline runs, by status",
		}, []string{"status"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "roadexport",
			Subsystem: "pipeline",
			Name:      "run_duration_seconds",
			Help:      "Duration of a pipeline run",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}),
	}
	reg.MustRegister(m.Features, m.Runs, m.RunDuration)

	// export every outcome from the start
	for _, o := range road.Outcomes() {
		m.Features.WithLabelValues(o.String())
	}
	return m
}

// ObserveRun records a finished run.
func (m *Metrics) ObserveRun(stats pipeline.Stats, elapsed time.Duration) {
	for _, o := range road.Outcomes() {
		m.Features.WithLabelValues(o.String()).Add(float64(stats.Count(o)))
	}
	m.Runs.WithLabelValues("ok").Inc()
	m.RunDuration.Observe(elapsed.Seconds())
}

// ObserveFailure records a run that did not produce output.
func (m *Metrics) ObserveFailure(reason string) {
	m.Runs.WithLabelValues(reason).Inc()
}
