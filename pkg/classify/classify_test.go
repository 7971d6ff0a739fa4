package classify

import (
	"fmt"
	"testing"

	"github.com/pathscope/pathscope/pkg/graph"
	"github.com/pathscope/pathscope/pkg/logging"
)

func buildGraph(t *testing.T, nodes []graph.NodeSpec, edges []graph.EdgeSpec) *graph.Graph {
	t.Helper()
	return graph.Build(nodes, edges, logging.NewNopLogger())
}

// TestAttributePolicy_CategoryTable tests the category to role lookup
func TestAttributePolicy_CategoryTable(t *testing.T) {
	g := buildGraph(t, []graph.NodeSpec{
		{ID: "C00031", Category: "compound"},
		{ID: "map00010", Category: "pathway"},
		{ID: "E1.1.1.1", Category: "enzyme"},
		{ID: "R00001", Category: "reaction"},
		{ID: "G1", Category: "group"},
		{ID: "U1", Category: "unknown-thing"},
		{ID: "N1"},
	}, nil)

	assignment := NewAttributePolicy().Classify(g)

	tests := map[string]graph.Role{
		"C00031":   graph.RoleOrdinary,
		"map00010": graph.RoleTerminus,
		"E1.1.1.1": graph.RoleMediator,
		"R00001":   graph.RoleOrdinary,
		"G1":       graph.RoleOrdinary,
		"U1":       graph.RoleOrdinary, // unrecognized category
		"N1":       graph.RoleOrdinary, // missing category
	}
	for id, want := range tests {
		if got := assignment.Roles[id]; got != want {
			t.Errorf("role(%s) = %v, want %v", id, got, want)
		}
	}
}

// TestAttributePolicy_AgentPromotion tests origin promotion via the agent marker
func TestAttributePolicy_AgentPromotion(t *testing.T) {
	g := buildGraph(t, []graph.NodeSpec{
		{ID: "D00943_drug", Category: "compound"},
		{ID: "DRUG:D00944", Category: "compound"},
		{ID: "drug_enzyme", Category: "enzyme"},
		{ID: "C00031", Category: "compound"},
	}, nil)

	assignment := NewAttributePolicy().Classify(g)

	if assignment.Roles["D00943_drug"] != graph.RoleOrigin {
		t.Error("compound with drug marker should be promoted to origin")
	}
	if assignment.Roles["DRUG:D00944"] != graph.RoleOrigin {
		t.Error("marker match should be case-insensitive")
	}
	// Promotion only raises ordinary nodes; enzymes keep their mediator role.
	if assignment.Roles["drug_enzyme"] != graph.RoleMediator {
		t.Errorf("enzyme with drug marker = %v, want mediator", assignment.Roles["drug_enzyme"])
	}
	if assignment.Roles["C00031"] != graph.RoleOrdinary {
		t.Error("unmarked compound should stay ordinary")
	}
}

// TestAttributePolicy_RoleExclusivity tests that every node gets exactly one role
func TestAttributePolicy_RoleExclusivity(t *testing.T) {
	nodes := []graph.NodeSpec{
		{ID: "drugA", Category: "compound"},
		{ID: "E1", Category: "enzyme"},
		{ID: "map1", Category: "pathway"},
		{ID: "C1", Category: "compound"},
	}
	g := buildGraph(t, nodes, nil)

	assignment := NewAttributePolicy().Classify(g)

	if len(assignment.Roles) != len(nodes) {
		t.Fatalf("assignment covers %d nodes, want %d", len(assignment.Roles), len(nodes))
	}
	total := 0
	for _, count := range assignment.Counts {
		total += count
	}
	if total != len(nodes) {
		t.Errorf("role counts sum to %d, want %d", total, len(nodes))
	}
	if len(assignment.DualRole) != 0 {
		t.Errorf("attribute policy should never report dual roles, got %v", assignment.DualRole)
	}
}

// TestTopologyPolicy_Degrees tests origin/terminus assignment from degrees
func TestTopologyPolicy_Degrees(t *testing.T) {
	// A -> B -> C; A has no in-edges, C has no out-edges
	g := buildGraph(t,
		[]graph.NodeSpec{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		[]graph.EdgeSpec{{From: "A", To: "B"}, {From: "B", To: "C"}},
	)

	assignment := NewTopologyPolicy().Classify(g)

	if assignment.Roles["A"] != graph.RoleOrigin {
		t.Errorf("role(A) = %v, want origin", assignment.Roles["A"])
	}
	if assignment.Roles["C"] != graph.RoleTerminus {
		t.Errorf("role(C) = %v, want terminus", assignment.Roles["C"])
	}
	// B is the only interior node, so the minimum-one quota makes it a mediator.
	if assignment.Roles["B"] != graph.RoleMediator {
		t.Errorf("role(B) = %v, want mediator", assignment.Roles["B"])
	}
}

// TestTopologyPolicy_IsolatedNodeIsDualRole tests in=out=0 handling
func TestTopologyPolicy_IsolatedNodeIsDualRole(t *testing.T) {
	g := buildGraph(t,
		[]graph.NodeSpec{{ID: "A"}, {ID: "B"}, {ID: "LONE"}},
		[]graph.EdgeSpec{{From: "A", To: "B"}},
	)

	assignment := NewTopologyPolicy().Classify(g)

	if assignment.Roles["LONE"] != graph.RoleOrigin {
		t.Errorf("role(LONE) = %v, want origin", assignment.Roles["LONE"])
	}
	if len(assignment.DualRole) != 1 || assignment.DualRole[0] != "LONE" {
		t.Errorf("DualRole = %v, want [LONE]", assignment.DualRole)
	}
}

// TestTopologyPolicy_MediatorQuota tests the 5% ceiling with tie-breaking
func TestTopologyPolicy_MediatorQuota(t *testing.T) {
	// Build a graph with 1 source, 1 sink, and 40 interior nodes.
	// Interior node I00 gets the highest out-degree.
	nodes := []graph.NodeSpec{{ID: "src"}, {ID: "snk"}}
	var edges []graph.EdgeSpec
	for i := 0; i < 40; i++ {
		id := fmt.Sprintf("I%02d", i)
		nodes = append(nodes, graph.NodeSpec{ID: id})
		edges = append(edges, graph.EdgeSpec{From: "src", To: id})
		edges = append(edges, graph.EdgeSpec{From: id, To: "snk"})
	}
	// Boost I00's out-degree above everyone else's.
	edges = append(edges,
		graph.EdgeSpec{From: "I00", To: "I01"},
		graph.EdgeSpec{From: "I00", To: "I02"},
	)
	g := buildGraph(t, nodes, edges)

	assignment := NewTopologyPolicy().Classify(g)

	// ceil(40 * 0.05) = 2 mediators
	if assignment.Counts[graph.RoleMediator] != 2 {
		t.Fatalf("mediator count = %d, want 2", assignment.Counts[graph.RoleMediator])
	}
	if assignment.Roles["I00"] != graph.RoleMediator {
		t.Error("highest out-degree interior node should be a mediator")
	}
	// All other interior nodes tie at out-degree 1, so ascending ID breaks
	// the tie: I01 takes the second slot.
	if assignment.Roles["I01"] != graph.RoleMediator {
		t.Errorf("role(I01) = %v, want mediator via ID tie-break", assignment.Roles["I01"])
	}
}

// TestTopologyPolicy_Deterministic tests repeated runs yield identical assignments
func TestTopologyPolicy_Deterministic(t *testing.T) {
	var nodes []graph.NodeSpec
	var edges []graph.EdgeSpec
	for i := 0; i < 30; i++ {
		nodes = append(nodes, graph.NodeSpec{ID: fmt.Sprintf("N%02d", i)})
	}
	for i := 0; i < 29; i++ {
		edges = append(edges, graph.EdgeSpec{From: fmt.Sprintf("N%02d", i), To: fmt.Sprintf("N%02d", i+1)})
		edges = append(edges, graph.EdgeSpec{From: fmt.Sprintf("N%02d", i), To: "N29"})
	}
	g := buildGraph(t, nodes, edges)

	policy := NewTopologyPolicy()
	first := policy.Classify(g)
	for run := 0; run < 5; run++ {
		again := policy.Classify(g)
		for id, role := range first.Roles {
			if again.Roles[id] != role {
				t.Fatalf("run %d: role(%s) = %v, want %v", run, id, again.Roles[id], role)
			}
		}
	}
}

// TestAssignment_Apply tests writing an assignment back onto the graph
func TestAssignment_Apply(t *testing.T) {
	g := buildGraph(t,
		[]graph.NodeSpec{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		[]graph.EdgeSpec{{From: "A", To: "B"}, {From: "B", To: "C"}},
	)

	assignment := NewTopologyPolicy().Classify(g)
	if err := assignment.Apply(g); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	node, _ := g.Node("A")
	if node.Role != graph.RoleOrigin {
		t.Errorf("applied role(A) = %v, want origin", node.Role)
	}
	if got := g.NodesByRole(graph.RoleTerminus); len(got) != 1 || got[0] != "C" {
		t.Errorf("NodesByRole(terminus) = %v, want [C]", got)
	}
}
