package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the analysis engine
type Registry struct {
	// Graph Metrics
	GraphNodesTotal        prometheus.Gauge
	GraphEdgesTotal        prometheus.Gauge
	GraphDroppedEdgesTotal prometheus.Counter
	GraphNodesByRole       *prometheus.GaugeVec

	// Stage Metrics
	StageRunsTotal *prometheus.CounterVec
	StageDuration  *prometheus.HistogramVec

	// Analysis Metrics
	ClosurePasses      prometheus.Histogram
	PathwaysFound      prometheus.Histogram
	PairsAnalyzedTotal *prometheus.CounterVec
	TriplesFound       prometheus.Histogram

	// Outcome Metrics
	OutcomesTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initGraphMetrics()
	r.initStageMetrics()
	r.initAnalysisMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
