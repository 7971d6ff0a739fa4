// Package mediation decides, for each connected (origin, terminus) pair,
// whether a mediator node lies between them.
//
// Two strictness policies exist because the source tooling this engine
// replaces applied both without reconciling them. StrictnessReachable asks
// whether any mediator sits anywhere in the reachable region between origin
// and terminus, regardless of which concrete path a flow takes. A pair can
// therefore be mediated even if no single simple path passes through a
// mediator. StrictnessEveryPath is the path-exhaustive reading: every
// enumerated simple pathway for the pair must contain a mediator. Callers
// must choose explicitly; the two policies disagree on real graphs.
package mediation

import (
	"fmt"

	"github.com/pathscope/pathscope/pkg/graph"
	"github.com/pathscope/pathscope/pkg/paths"
	"github.com/pathscope/pathscope/pkg/reach"
)

// Strictness names a mediation policy.
type Strictness string

const (
	// StrictnessReachable marks a pair mediated when some mediator m
	// satisfies m ∈ reach(origin) and terminus ∈ reach(m).
	StrictnessReachable Strictness = "reachable"
	// StrictnessEveryPath marks a pair mediated when at least one simple
	// pathway connects it and every such pathway passes through a mediator.
	StrictnessEveryPath Strictness = "every-path"
)

// Pair is the mediation verdict for one (origin, terminus) combination.
type Pair struct {
	Origin    string
	Terminus  string
	Connected bool
	Mediated  bool
	// Mediators lists the witnesses under StrictnessReachable, ascending.
	// Empty under StrictnessEveryPath.
	Mediators []string
}

// Options configures the analysis.
type Options struct {
	Strictness Strictness
	// Pathways supplies the enumerated simple paths StrictnessEveryPath
	// inspects. Ignored by StrictnessReachable.
	Pathways []paths.Pathway
}

// Analyze produces a verdict for every (origin, terminus) pair, ordered by
// ascending origin then ascending terminus. Unconnected pairs are reported
// with Connected and Mediated both false.
func Analyze(g *graph.Graph, reachMap reach.Map, opts Options) ([]Pair, error) {
	strictness := opts.Strictness
	if strictness == "" {
		strictness = StrictnessReachable
	}

	origins := g.NodesByRole(graph.RoleOrigin)
	termini := g.NodesByRole(graph.RoleTerminus)
	mediators := g.NodesByRole(graph.RoleMediator)

	var pairs []Pair
	for _, origin := range origins {
		for _, terminus := range termini {
			pair := Pair{Origin: origin, Terminus: terminus}
			pair.Connected = reachMap.Reaches(origin, terminus)
			if pair.Connected {
				switch strictness {
				case StrictnessReachable:
					pair.Mediators = reachableWitnesses(reachMap, origin, terminus, mediators)
					pair.Mediated = len(pair.Mediators) > 0
				case StrictnessEveryPath:
					pair.Mediated = everyPathMediated(opts.Pathways, origin, terminus, graph.NewNodeSet(mediators...))
				default:
					return nil, fmt.Errorf("unknown mediation strictness %q", strictness)
				}
			}
			pairs = append(pairs, pair)
		}
	}
	return pairs, nil
}

// reachableWitnesses returns every mediator reachable from origin that
// itself reaches terminus. mediators arrive sorted, so witnesses stay
// sorted.
func reachableWitnesses(reachMap reach.Map, origin, terminus string, mediators []string) []string {
	var witnesses []string
	for _, m := range mediators {
		if reachMap.Reaches(origin, m) && reachMap.Reaches(m, terminus) {
			witnesses = append(witnesses, m)
		}
	}
	return witnesses
}

// everyPathMediated reports whether the pair has at least one enumerated
// pathway and all of its pathways contain a mediator. A connected pair with
// no enumerated pathway (its only routes run through another terminus first)
// counts as unmediated, not vacuously mediated.
func everyPathMediated(pathways []paths.Pathway, origin, terminus string, mediators graph.NodeSet) bool {
	matched := false
	for _, p := range pathways {
		if p.Origin() != origin || p.Terminus() != terminus {
			continue
		}
		matched = true
		if !pathwayContainsAny(p, mediators) {
			return false
		}
	}
	return matched
}

func pathwayContainsAny(p paths.Pathway, nodes graph.NodeSet) bool {
	for _, id := range p.Nodes {
		if nodes.Contains(id) {
			return true
		}
	}
	return false
}
