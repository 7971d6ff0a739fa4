package reach

import (
	"github.com/pathscope/pathscope/pkg/graph"
	"github.com/pathscope/pathscope/pkg/parallel"
)

// parallelBFSClosure runs the per-source traversals across a worker pool.
// Sources are independent, so the assembled map is identical to the serial
// result.
func parallelBFSClosure(g *graph.Graph, workers int) Map {
	ids := g.NodeIDs()
	sets := make([]graph.NodeSet, len(ids))

	parallel.ForEach(workers, ids, func(i int, id string) {
		sets[i] = bfsFrom(g, id)
	})

	m := make(Map, len(ids))
	for i, id := range ids {
		m[id] = sets[i]
	}
	return m
}
