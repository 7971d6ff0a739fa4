package classify

import (
	"strings"

	"github.com/pathscope/pathscope/pkg/graph"
)

// DefaultAgentMarker is the substring that marks a node ID as an externally
// administered agent (case-insensitive).
const DefaultAgentMarker = "drug"

// defaultCategoryRoles maps KEGG-style category labels to roles. Categories
// absent from the table classify as ordinary.
var defaultCategoryRoles = map[string]graph.Role{
	"compound": graph.RoleOrdinary,
	"pathway":  graph.RoleTerminus,
	"enzyme":   graph.RoleMediator,
	"reaction": graph.RoleOrdinary,
	"group":    graph.RoleOrdinary,
}

// AttributePolicy classifies nodes by their externally supplied category
// label. Ordinary nodes whose ID contains the agent marker are promoted to
// origin.
type AttributePolicy struct {
	// AgentMarker promotes ordinary nodes to origin when their ID contains
	// it (case-insensitive). Empty disables promotion.
	AgentMarker string

	// CategoryRoles overrides the default category lookup table when non-nil.
	CategoryRoles map[string]graph.Role
}

// NewAttributePolicy returns an attribute policy with the default category
// table and agent marker.
func NewAttributePolicy() *AttributePolicy {
	return &AttributePolicy{AgentMarker: DefaultAgentMarker}
}

// Name returns the policy's configuration name.
func (p *AttributePolicy) Name() string {
	return "attribute"
}

// Classify maps every node's category through the lookup table, then
// promotes agent-marked ordinary nodes to origin. Every node receives
// exactly one role.
func (p *AttributePolicy) Classify(g *graph.Graph) *Assignment {
	table := p.CategoryRoles
	if table == nil {
		table = defaultCategoryRoles
	}
	marker := strings.ToLower(p.AgentMarker)

	assignment := newAssignment(p.Name(), g.NodeCount())

	for _, node := range g.Nodes() {
		role, ok := table[strings.ToLower(node.Category)]
		if !ok {
			role = graph.RoleOrdinary
		}
		if role == graph.RoleOrdinary && marker != "" &&
			strings.Contains(strings.ToLower(node.ID), marker) {
			role = graph.RoleOrigin
		}
		assignment.set(node.ID, role)
	}

	return assignment
}
