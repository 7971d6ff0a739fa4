// Package classify assigns pathway roles to graph nodes.
//
// Two interchangeable policies are provided: AttributePolicy maps externally
// supplied category labels to roles, TopologyPolicy derives roles from the
// graph structure alone. Which one runs is the caller's configuration choice.
package classify

import (
	"github.com/pathscope/pathscope/pkg/graph"
)

// Policy assigns exactly one role to every node of a graph.
// Classification never fails; the caller decides whether the resulting
// counts (e.g. zero origins) constitute a failed validation.
type Policy interface {
	// Name returns the policy's configuration name.
	Name() string
	// Classify computes a role assignment for every node. The graph is not
	// mutated; use Apply to write the assignment back.
	Classify(g *graph.Graph) *Assignment
}

// Assignment is the outcome of one classification pass: a role for every
// node, keyed by node ID, plus per-role counts.
type Assignment struct {
	Policy string
	Roles  map[string]graph.Role
	Counts map[graph.Role]int

	// DualRole lists nodes that qualified as both origin and terminus under
	// the topology policy (no incoming and no outgoing edges). The stored
	// role for such nodes is origin; callers needing the terminus reading
	// consult this list. Always empty under the attribute policy.
	DualRole []string
}

// Apply writes the assignment onto the graph, giving every node exactly one
// role.
func (a *Assignment) Apply(g *graph.Graph) error {
	for id, role := range a.Roles {
		if err := g.SetRole(id, role); err != nil {
			return err
		}
	}
	return nil
}

func newAssignment(policy string, size int) *Assignment {
	return &Assignment{
		Policy: policy,
		Roles:  make(map[string]graph.Role, size),
		Counts: make(map[graph.Role]int, 4),
	}
}

func (a *Assignment) set(id string, role graph.Role) {
	a.Roles[id] = role
	a.Counts[role]++
}
