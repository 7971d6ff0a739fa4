package metrics

import (
	"time"
)

// RecordGraph records the size of a freshly built graph
func (r *Registry) RecordGraph(nodes, edges, droppedEdges int) {
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
	if droppedEdges > 0 {
		r.GraphDroppedEdgesTotal.Add(float64(droppedEdges))
	}
}

// RecordRoleCounts records per-role node counts after classification
func (r *Registry) RecordRoleCounts(counts map[string]int) {
	for role, count := range counts {
		r.GraphNodesByRole.WithLabelValues(role).Set(float64(count))
	}
}

// RecordStage records a pipeline stage execution with its duration
func (r *Registry) RecordStage(stage, status string, duration time.Duration) {
	r.StageRunsTotal.WithLabelValues(stage, status).Inc()
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordClosure records reachability closure convergence
func (r *Registry) RecordClosure(passes int) {
	if passes > 0 {
		r.ClosurePasses.Observe(float64(passes))
	}
}

// RecordPathways records the number of enumerated pathways
func (r *Registry) RecordPathways(count int) {
	r.PathwaysFound.Observe(float64(count))
}

// RecordPair records one analyzed origin-terminus pair
func (r *Registry) RecordPair(connected, mediated bool) {
	switch {
	case !connected:
		r.PairsAnalyzedTotal.WithLabelValues("disconnected").Inc()
	case mediated:
		r.PairsAnalyzedTotal.WithLabelValues("mediated").Inc()
	default:
		r.PairsAnalyzedTotal.WithLabelValues("unmediated").Inc()
	}
}

// RecordTriples records the number of derived cross-reference triples
func (r *Registry) RecordTriples(count int) {
	r.TriplesFound.Observe(float64(count))
}

// RecordOutcome records one named outcome by status
func (r *Registry) RecordOutcome(status string) {
	r.OutcomesTotal.WithLabelValues(status).Inc()
}
