package graph

import (
	"sort"

	"github.com/pathscope/pathscope/pkg/logging"
)

// Graph is the passive in-memory model the analysis stages operate on.
// It is built once per run; after Build only role assignment mutates it.
type Graph struct {
	nodes     map[string]*Node
	order     []string // node IDs in ascending order
	edges     []Edge
	adjacency map[string]NodeSet
	dropped   []Edge
}

// Build constructs a Graph from externally supplied node and edge specs.
// Duplicate node IDs keep their first occurrence. Edges referencing an
// unknown node are non-fatal: they are dropped and logged, and remain
// available via DroppedEdges for the caller to report.
func Build(nodes []NodeSpec, edges []EdgeSpec, logger logging.Logger) *Graph {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	g := &Graph{
		nodes:     make(map[string]*Node, len(nodes)),
		adjacency: make(map[string]NodeSet, len(nodes)),
	}

	for _, spec := range nodes {
		if spec.ID == "" {
			logger.Warn("skipping node with empty id", logging.Component("graph"))
			continue
		}
		if _, exists := g.nodes[spec.ID]; exists {
			logger.Debug("duplicate node id, keeping first occurrence",
				logging.Component("graph"),
				logging.NodeID(spec.ID))
			continue
		}
		g.nodes[spec.ID] = &Node{
			ID:       spec.ID,
			Category: spec.Category,
			Role:     RoleOrdinary,
		}
		g.adjacency[spec.ID] = make(NodeSet)
		g.order = append(g.order, spec.ID)
	}
	sort.Strings(g.order)

	for _, spec := range edges {
		edge := Edge{From: spec.From, To: spec.To, Interaction: spec.Interaction}
		_, fromOK := g.nodes[spec.From]
		_, toOK := g.nodes[spec.To]
		if !fromOK || !toOK {
			g.dropped = append(g.dropped, edge)
			logger.Warn("skipping edge with missing node",
				logging.Component("graph"),
				logging.String("from", spec.From),
				logging.String("to", spec.To))
			continue
		}
		if g.adjacency[spec.From].Add(spec.To) {
			g.edges = append(g.edges, edge)
		}
	}

	return g
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of kept (non-dropped, de-duplicated) edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, error) {
	node, ok := g.nodes[id]
	if !ok {
		return nil, newError("Node", "node", id, ErrNodeNotFound)
	}
	return node, nil
}

// NodeIDs returns all node IDs in ascending order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// Nodes returns all nodes in ascending ID order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns the kept edges in insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// DroppedEdges returns the edges dropped during Build because they referenced
// an unknown node.
func (g *Graph) DroppedEdges() []Edge {
	dropped := make([]Edge, len(g.dropped))
	copy(dropped, g.dropped)
	return dropped
}

// Neighbors returns the set of nodes directly reachable from id via one
// outgoing edge. The returned set is the graph's own; callers must not
// mutate it.
func (g *Graph) Neighbors(id string) NodeSet {
	return g.adjacency[id]
}

// Adjacency returns the full adjacency map. The returned map is the graph's
// own; callers must not mutate it.
func (g *Graph) Adjacency() map[string]NodeSet {
	return g.adjacency
}

// OutDegree returns the size of the node's direct-adjacency set.
func (g *Graph) OutDegree(id string) int {
	return len(g.adjacency[id])
}

// InDegree returns the number of distinct nodes with an edge into id.
func (g *Graph) InDegree(id string) int {
	degree := 0
	for _, targets := range g.adjacency {
		if targets.Contains(id) {
			degree++
		}
	}
	return degree
}

// InDegrees computes the in-degree of every node in one pass over the
// adjacency map.
func (g *Graph) InDegrees() map[string]int {
	degrees := make(map[string]int, len(g.nodes))
	for _, id := range g.order {
		degrees[id] = 0
	}
	for _, targets := range g.adjacency {
		for to := range targets {
			degrees[to]++
		}
	}
	return degrees
}

// NodesByRole returns the IDs of all nodes with the given role, ascending.
func (g *Graph) NodesByRole(role Role) []string {
	var ids []string
	for _, id := range g.order {
		if g.nodes[id].Role == role {
			ids = append(ids, id)
		}
	}
	return ids
}

// RoleCounts returns the number of nodes per role.
func (g *Graph) RoleCounts() map[Role]int {
	counts := make(map[Role]int, 4)
	for _, node := range g.nodes {
		counts[node.Role]++
	}
	return counts
}

// SetRole assigns a role to a single node.
func (g *Graph) SetRole(id string, role Role) error {
	if !role.Valid() {
		return newError("SetRole", "role", string(role), ErrInvalidRole)
	}
	node, ok := g.nodes[id]
	if !ok {
		return newError("SetRole", "node", id, ErrNodeNotFound)
	}
	node.Role = role
	return nil
}
