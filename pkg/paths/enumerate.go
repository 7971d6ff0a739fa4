// Package paths enumerates simple directed pathways from origin nodes to
// terminus nodes.
package paths

import (
	"strings"

	"github.com/pathscope/pathscope/pkg/graph"
	"github.com/pathscope/pathscope/pkg/parallel"
)

// Pathway is an ordered sequence of distinct node IDs starting at an origin
// and ending at a terminus, with every consecutive pair joined by a direct
// edge.
type Pathway struct {
	Nodes []string
}

// Origin returns the pathway's first node.
func (p Pathway) Origin() string {
	return p.Nodes[0]
}

// Terminus returns the pathway's last node.
func (p Pathway) Terminus() string {
	return p.Nodes[len(p.Nodes)-1]
}

// Length returns the number of nodes in the pathway.
func (p Pathway) Length() int {
	return len(p.Nodes)
}

// String renders the pathway as "A -> B -> C".
func (p Pathway) String() string {
	return strings.Join(p.Nodes, " -> ")
}

// Options configures path enumeration. Path counts grow combinatorially with
// graph density; the limits below are the explicit safety knobs for dense
// graphs. Both default to 0, meaning unlimited, which matches the engine's
// documented behavior.
type Options struct {
	// MaxLength caps the number of nodes per pathway. 0 = unlimited.
	MaxLength int
	// MaxPaths caps the total number of emitted pathways. 0 = unlimited.
	MaxPaths int
	// Workers > 1 enumerates origins across a worker pool. Output order is
	// unchanged: results are assembled in ascending origin order.
	Workers int
}

// DefaultOptions returns the unlimited, serial configuration.
func DefaultOptions() Options {
	return Options{}
}

// Enumerate produces every simple pathway from each origin-role node to each
// terminus-role node, origins visited in ascending ID order. Cycles cannot
// trap the search: a node already on the partial path is never revisited, so
// paths strictly grow within a finite ID space.
func Enumerate(g *graph.Graph, opts Options) []Pathway {
	origins := g.NodesByRole(graph.RoleOrigin)
	termini := graph.NewNodeSet(g.NodesByRole(graph.RoleTerminus)...)
	if len(origins) == 0 || termini.Len() == 0 {
		return nil
	}

	var all []Pathway
	if opts.Workers > 1 {
		perOrigin := make([][]Pathway, len(origins))
		parallel.ForEach(opts.Workers, origins, func(i int, origin string) {
			perOrigin[i] = enumerateFrom(g, origin, termini, opts.MaxLength, 0)
		})
		for _, pathways := range perOrigin {
			all = append(all, pathways...)
		}
		if opts.MaxPaths > 0 && len(all) > opts.MaxPaths {
			all = all[:opts.MaxPaths]
		}
		return all
	}

	for _, origin := range origins {
		remaining := 0
		if opts.MaxPaths > 0 {
			remaining = opts.MaxPaths - len(all)
			if remaining <= 0 {
				break
			}
		}
		all = append(all, enumerateFrom(g, origin, termini, opts.MaxLength, remaining)...)
	}
	return all
}

// enumerateFrom runs a breadth-first expansion over partial paths rooted at
// origin. A path is emitted, and not expanded further, the moment it reaches
// any terminus. limit 0 means unlimited.
func enumerateFrom(g *graph.Graph, origin string, termini graph.NodeSet, maxLength, limit int) []Pathway {
	var found []Pathway
	queue := [][]string{{origin}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if maxLength > 0 && len(current) >= maxLength {
			continue
		}

		tip := current[len(current)-1]
		onPath := graph.NewNodeSet(current...)

		// Sorted neighbor expansion keeps emission order stable for a fixed
		// adjacency map.
		for _, neighbor := range g.Neighbors(tip).Sorted() {
			if onPath.Contains(neighbor) {
				continue
			}

			next := make([]string, len(current), len(current)+1)
			copy(next, current)
			next = append(next, neighbor)

			if termini.Contains(neighbor) {
				found = append(found, Pathway{Nodes: next})
				if limit > 0 && len(found) >= limit {
					return found
				}
				continue
			}
			queue = append(queue, next)
		}
	}

	return found
}
