package reach

import (
	"testing"

	"github.com/pathscope/pathscope/pkg/graph"
	"github.com/pathscope/pathscope/pkg/logging"
)

func buildGraph(t *testing.T, nodes []string, edges [][2]string) *graph.Graph {
	t.Helper()
	specs := make([]graph.NodeSpec, len(nodes))
	for i, id := range nodes {
		specs[i] = graph.NodeSpec{ID: id}
	}
	edgeSpecs := make([]graph.EdgeSpec, len(edges))
	for i, e := range edges {
		edgeSpecs[i] = graph.EdgeSpec{From: e[0], To: e[1]}
	}
	return graph.Build(specs, edgeSpecs, logging.NewNopLogger())
}

// TestFixedPointClosure_Chain tests closure over a linear chain
func TestFixedPointClosure_Chain(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C"}, [][2]string{{"A", "B"}, {"B", "C"}})

	m := FixedPointClosure(g)

	if !m["A"].Equal(graph.NewNodeSet("B", "C")) {
		t.Errorf("reach(A) = %v, want [B C]", m["A"].Sorted())
	}
	if !m["B"].Equal(graph.NewNodeSet("C")) {
		t.Errorf("reach(B) = %v, want [C]", m["B"].Sorted())
	}
	if m["C"].Len() != 0 {
		t.Errorf("reach(C) = %v, want empty", m["C"].Sorted())
	}
}

// TestFixedPointClosure_NoSelfReachWithoutCycle tests a node never reaches itself acyclically
func TestFixedPointClosure_NoSelfReachWithoutCycle(t *testing.T) {
	g := buildGraph(t, []string{"A", "B"}, [][2]string{{"A", "B"}})

	m := FixedPointClosure(g)

	if m["A"].Contains("A") {
		t.Error("A should not reach itself without a cycle")
	}
}

// TestFixedPointClosure_CycleRoutesBack tests self-reachability through a cycle
func TestFixedPointClosure_CycleRoutesBack(t *testing.T) {
	// A -> B -> A plus A -> C
	g := buildGraph(t, []string{"A", "B", "C"},
		[][2]string{{"A", "B"}, {"B", "A"}, {"A", "C"}})

	m := FixedPointClosure(g)

	if !m["A"].Contains("A") {
		t.Error("A should reach itself through the A->B->A cycle")
	}
	if !m["B"].Contains("B") {
		t.Error("B should reach itself through the cycle")
	}
	if !m["B"].Contains("C") {
		t.Error("B should reach C via A")
	}
}

// TestFixedPointClosure_EmptyGraph tests the empty-graph contract
func TestFixedPointClosure_EmptyGraph(t *testing.T) {
	g := buildGraph(t, nil, nil)

	m := FixedPointClosure(g)

	if len(m) != 0 {
		t.Errorf("closure of empty graph has %d entries, want 0", len(m))
	}
}

// TestClosure_CoversEveryNode tests the map covers disconnected nodes too
func TestClosure_CoversEveryNode(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "LONE"}, [][2]string{{"A", "B"}})

	m := FixedPointClosure(g)

	if len(m) != 3 {
		t.Fatalf("closure has %d entries, want 3", len(m))
	}
	if m["LONE"] == nil || m["LONE"].Len() != 0 {
		t.Error("isolated node should have an empty, non-nil reachable set")
	}
}

// TestBFSClosure_MatchesFixedPoint tests the two algorithms agree
func TestBFSClosure_MatchesFixedPoint(t *testing.T) {
	g := buildGraph(t,
		[]string{"A", "B", "C", "D", "E"},
		[][2]string{{"A", "B"}, {"B", "C"}, {"C", "A"}, {"C", "D"}, {"E", "D"}})

	fixed := FixedPointClosure(g)
	bfs := BFSClosure(g)

	if !fixed.Equal(bfs) {
		t.Errorf("fixed-point and BFS closures differ:\nfixed = %v\nbfs = %v", fixed, bfs)
	}
}

// TestCompute_ParallelMatchesSerial tests worker-pool BFS produces the same map
func TestCompute_ParallelMatchesSerial(t *testing.T) {
	g := buildGraph(t,
		[]string{"A", "B", "C", "D", "E", "F"},
		[][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}, {"D", "B"}, {"E", "F"}, {"A", "F"}})

	serial, err := Compute(g, Options{Algorithm: AlgorithmBFS, Workers: 1})
	if err != nil {
		t.Fatalf("Compute serial failed: %v", err)
	}
	par, err := Compute(g, Options{Algorithm: AlgorithmBFS, Workers: 4})
	if err != nil {
		t.Fatalf("Compute parallel failed: %v", err)
	}

	if !serial.Map.Equal(par.Map) {
		t.Error("parallel closure differs from serial closure")
	}
}

// TestCompute_UnknownAlgorithm tests the error path
func TestCompute_UnknownAlgorithm(t *testing.T) {
	g := buildGraph(t, []string{"A"}, nil)

	if _, err := Compute(g, Options{Algorithm: "dijkstra"}); err == nil {
		t.Error("Compute should reject unknown algorithms")
	}
}

// TestCompute_ReportsPasses tests fixed-point convergence reporting
func TestCompute_ReportsPasses(t *testing.T) {
	// A chain forces multiple union passes before convergence.
	g := buildGraph(t, []string{"A", "B", "C", "D"},
		[][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}})

	result, err := Compute(g, DefaultOptions())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if result.Passes < 2 {
		t.Errorf("Passes = %d, want >= 2 (converge + verify)", result.Passes)
	}
	if !result.Map.Reaches("A", "D") {
		t.Error("A should reach D")
	}
}
