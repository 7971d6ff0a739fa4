package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "pathscope_graph_nodes_total",
			Help: "Total number of nodes in the analyzed graph",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "pathscope_graph_edges_total",
			Help: "Total number of kept edges in the analyzed graph",
		},
	)

	r.GraphDroppedEdgesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "pathscope_graph_dropped_edges_total",
			Help: "Total number of edges dropped for referencing unknown nodes",
		},
	)

	r.GraphNodesByRole = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pathscope_graph_nodes_by_role",
			Help: "Number of nodes per classified role",
		},
		[]string{"role"},
	)
}

func (r *Registry) initStageMetrics() {
	r.StageRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathscope_stage_runs_total",
			Help: "Total number of pipeline stage executions",
		},
		[]string{"stage", "status"},
	)

	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pathscope_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"stage"},
	)
}

func (r *Registry) initAnalysisMetrics() {
	r.ClosurePasses = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pathscope_closure_passes",
			Help:    "Fixed-point passes needed for the reachability closure to converge",
			Buckets: []float64{1, 2, 3, 5, 10, 25, 50, 100},
		},
	)

	r.PathwaysFound = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pathscope_pathways_found",
			Help:    "Number of enumerated origin-to-terminus pathways per run",
			Buckets: []float64{0, 1, 10, 100, 1000, 10000, 100000},
		},
	)

	r.PairsAnalyzedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathscope_pairs_analyzed_total",
			Help: "Origin-terminus pairs analyzed, by mediation verdict",
		},
		[]string{"verdict"},
	)

	r.TriplesFound = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pathscope_crossref_triples_found",
			Help:    "Number of cross-reference triples derived per run",
			Buckets: []float64{0, 1, 10, 100, 1000, 10000},
		},
	)

	r.OutcomesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathscope_outcomes_total",
			Help: "Recorded analysis outcomes by status",
		},
		[]string{"status"},
	)
}
