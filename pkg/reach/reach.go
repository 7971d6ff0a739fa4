// Package reach computes transitive reachability over a pathway graph.
package reach

import (
	"fmt"

	"github.com/pathscope/pathscope/pkg/graph"
)

// Map holds, for every node, the set of nodes reachable via one or more
// directed edges. A node reaches itself only when a cycle routes back to it.
type Map map[string]graph.NodeSet

// Reaches reports whether to is reachable from from.
func (m Map) Reaches(from, to string) bool {
	return m[from].Contains(to)
}

// Reachable returns the reachable set of id (possibly empty, never nil for
// nodes covered by the computation).
func (m Map) Reachable(id string) graph.NodeSet {
	return m[id]
}

// Equal reports whether both maps assign identical reachable sets to
// identical node IDs.
func (m Map) Equal(other Map) bool {
	if len(m) != len(other) {
		return false
	}
	for id, set := range m {
		if !set.Equal(other[id]) {
			return false
		}
	}
	return true
}

// Algorithm selects the closure computation strategy.
type Algorithm string

const (
	// AlgorithmFixedPoint iterates union passes until no reachable set grows.
	// O(V·E) to O(V³) depending on density; fine up to a few thousand nodes.
	AlgorithmFixedPoint Algorithm = "fixed-point"
	// AlgorithmBFS runs one breadth-first traversal per source node. Produces
	// the identical map and is the better choice for large sparse graphs.
	AlgorithmBFS Algorithm = "bfs"
)

// Options configures the reachability computation.
type Options struct {
	Algorithm Algorithm
	// Workers > 1 spreads per-source BFS traversals across a worker pool.
	// Only meaningful with AlgorithmBFS; the result is identical either way.
	Workers int
}

// DefaultOptions returns the serial fixed-point configuration.
func DefaultOptions() Options {
	return Options{Algorithm: AlgorithmFixedPoint, Workers: 1}
}

// Result holds a computed reachability map.
type Result struct {
	Map       Map
	Algorithm Algorithm
	Passes    int // fixed-point passes until convergence; 0 for BFS
}

// Compute produces the reachability map for the graph's adjacency using the
// configured algorithm. Both algorithms yield the same map; an empty graph
// yields an empty map.
func Compute(g *graph.Graph, opts Options) (*Result, error) {
	switch opts.Algorithm {
	case AlgorithmFixedPoint, "":
		m, passes := fixedPointClosure(g)
		return &Result{Map: m, Algorithm: AlgorithmFixedPoint, Passes: passes}, nil
	case AlgorithmBFS:
		var m Map
		if opts.Workers > 1 {
			m = parallelBFSClosure(g, opts.Workers)
		} else {
			m = bfsClosure(g)
		}
		return &Result{Map: m, Algorithm: AlgorithmBFS}, nil
	default:
		return nil, fmt.Errorf("unknown reachability algorithm %q", opts.Algorithm)
	}
}

// FixedPointClosure computes the transitive closure by repeated union passes.
func FixedPointClosure(g *graph.Graph) Map {
	m, _ := fixedPointClosure(g)
	return m
}

// fixedPointClosure repeatedly unions each node's neighbors' reachable sets
// into its own until a full pass changes nothing. Reachable sets only grow
// and are bounded by the node count, so the loop terminates within |V|
// passes regardless of iteration order.
func fixedPointClosure(g *graph.Graph) (Map, int) {
	m := make(Map, g.NodeCount())
	for id, neighbors := range g.Adjacency() {
		m[id] = neighbors.Clone()
	}

	passes := 0
	for {
		passes++
		changed := false
		for id := range m {
			reachable := m[id]
			// Snapshot the current frontier; unioning into reachable while
			// ranging over it would grow the iteration target.
			for _, neighbor := range reachable.Sorted() {
				if m[neighbor] != nil && reachable.AddAll(m[neighbor]) {
					changed = true
				}
			}
		}
		if !changed {
			return m, passes
		}
	}
}

// BFSClosure computes the same map with one breadth-first traversal per node.
func BFSClosure(g *graph.Graph) Map {
	return bfsClosure(g)
}

func bfsClosure(g *graph.Graph) Map {
	m := make(Map, g.NodeCount())
	for _, id := range g.NodeIDs() {
		m[id] = bfsFrom(g, id)
	}
	return m
}

// bfsFrom collects every node reachable from source via one or more edges.
// The source enters its own set only if an edge path leads back to it.
func bfsFrom(g *graph.Graph, source string) graph.NodeSet {
	reachable := make(graph.NodeSet)
	queue := make([]string, 0, g.OutDegree(source))
	for neighbor := range g.Neighbors(source) {
		if reachable.Add(neighbor) {
			queue = append(queue, neighbor)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for neighbor := range g.Neighbors(current) {
			if reachable.Add(neighbor) {
				queue = append(queue, neighbor)
			}
		}
	}

	return reachable
}
