// Package crossref derives (origin, mediator, terminus) triples from
// reachability, reporting which agents affect which downstream processes
// through which mediators.
package crossref

import (
	"github.com/pathscope/pathscope/pkg/graph"
	"github.com/pathscope/pathscope/pkg/reach"
)

// Triple records one origin -> mediator -> terminus relationship implied by
// reachability. Triples are independent of the concretely enumerated paths.
type Triple struct {
	Origin   string
	Mediator string
	Terminus string
}

// Derive emits a triple for every origin O and mediator M with M ∈ reach(O),
// combined with every terminus T with T ∈ reach(M). Output is ordered by
// ascending origin, then mediator, then terminus.
func Derive(g *graph.Graph, reachMap reach.Map) []Triple {
	origins := g.NodesByRole(graph.RoleOrigin)
	mediators := g.NodesByRole(graph.RoleMediator)
	termini := g.NodesByRole(graph.RoleTerminus)

	var triples []Triple
	for _, origin := range origins {
		for _, mediator := range mediators {
			if !reachMap.Reaches(origin, mediator) {
				continue
			}
			for _, terminus := range termini {
				if reachMap.Reaches(mediator, terminus) {
					triples = append(triples, Triple{
						Origin:   origin,
						Mediator: mediator,
						Terminus: terminus,
					})
				}
			}
		}
	}
	return triples
}
