package classify

import (
	"math"
	"sort"

	"github.com/pathscope/pathscope/pkg/graph"
)

// MediatorFraction is the share of interior nodes (positive in- and
// out-degree) promoted to mediator by the topology policy, rounded up.
const MediatorFraction = 0.05

// TopologyPolicy derives roles from graph structure alone, for graphs whose
// nodes carry no category labels. Nodes with no incoming edges become
// origins, nodes with no outgoing edges become termini, and the
// highest-out-degree interior nodes become mediators.
type TopologyPolicy struct{}

// NewTopologyPolicy returns the structure-driven classification policy.
func NewTopologyPolicy() *TopologyPolicy {
	return &TopologyPolicy{}
}

// Name returns the policy's configuration name.
func (p *TopologyPolicy) Name() string {
	return "topology"
}

// Classify assigns roles from degrees. A node with neither incoming nor
// outgoing edges qualifies as both origin and terminus; it is stored as
// origin and listed in the assignment's DualRole slice. Interior nodes are
// ranked by out-degree descending with ties broken by ascending node ID, and
// the top 5% (rounded up, minimum one) become mediators. The same graph
// always yields the same assignment.
func (p *TopologyPolicy) Classify(g *graph.Graph) *Assignment {
	assignment := newAssignment(p.Name(), g.NodeCount())
	inDegrees := g.InDegrees()

	var interior []string
	for _, id := range g.NodeIDs() {
		in := inDegrees[id]
		out := g.OutDegree(id)

		switch {
		case in == 0 && out == 0:
			assignment.set(id, graph.RoleOrigin)
			assignment.DualRole = append(assignment.DualRole, id)
		case in == 0:
			assignment.set(id, graph.RoleOrigin)
		case out == 0:
			assignment.set(id, graph.RoleTerminus)
		default:
			interior = append(interior, id)
		}
	}

	// Rank interior nodes by out-degree descending, ascending ID on ties.
	sort.Slice(interior, func(i, j int) bool {
		di, dj := g.OutDegree(interior[i]), g.OutDegree(interior[j])
		if di != dj {
			return di > dj
		}
		return interior[i] < interior[j]
	})

	mediators := mediatorQuota(len(interior))
	for i, id := range interior {
		if i < mediators {
			assignment.set(id, graph.RoleMediator)
		} else {
			assignment.set(id, graph.RoleOrdinary)
		}
	}

	return assignment
}

// mediatorQuota returns ceil(MediatorFraction * n), at least 1 when any
// candidate exists.
func mediatorQuota(n int) int {
	if n == 0 {
		return 0
	}
	quota := int(math.Ceil(float64(n) * MediatorFraction))
	if quota < 1 {
		quota = 1
	}
	return quota
}
