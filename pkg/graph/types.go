package graph

import "sort"

// Role classifies a node's function within a pathway flow.
type Role string

const (
	// RoleOrigin marks a flow's starting point (externally administered agent
	// or a node with no incoming edges).
	RoleOrigin Role = "origin"
	// RoleTerminus marks a flow's ending point (pathway endpoint or a node
	// with no outgoing edges).
	RoleTerminus Role = "terminus"
	// RoleMediator marks an intermediary capable of handling a flow.
	RoleMediator Role = "mediator"
	// RoleOrdinary is the default role for all other nodes.
	RoleOrdinary Role = "ordinary"
)

// String returns the string representation of a role
func (r Role) String() string {
	return string(r)
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOrigin, RoleTerminus, RoleMediator, RoleOrdinary:
		return true
	}
	return false
}

// Node is a single vertex of the pathway graph.
type Node struct {
	ID       string
	Category string // externally supplied category label, may be empty
	Role     Role
}

// Edge is an ordered (from, to) pair with an optional interaction label.
type Edge struct {
	From        string
	To          string
	Interaction string
}

// NodeSpec is the externally supplied node description consumed by Build.
type NodeSpec struct {
	ID       string `json:"id" validate:"required,max=200"`
	Category string `json:"category" validate:"omitempty,max=100"`
}

// EdgeSpec is the externally supplied edge description consumed by Build.
type EdgeSpec struct {
	From        string `json:"from" validate:"required,max=200"`
	To          string `json:"to" validate:"required,max=200"`
	Interaction string `json:"interaction" validate:"omitempty,max=100"`
}

// NodeSet is a set of node IDs.
type NodeSet map[string]bool

// NewNodeSet creates a set containing the given IDs.
func NewNodeSet(ids ...string) NodeSet {
	s := make(NodeSet, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// Add inserts id into the set, reporting whether the set grew.
func (s NodeSet) Add(id string) bool {
	if s[id] {
		return false
	}
	s[id] = true
	return true
}

// Contains reports whether id is in the set.
func (s NodeSet) Contains(id string) bool {
	return s[id]
}

// Len returns the number of IDs in the set.
func (s NodeSet) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s NodeSet) Clone() NodeSet {
	c := make(NodeSet, len(s))
	for id := range s {
		c[id] = true
	}
	return c
}

// AddAll unions other into s, reporting whether s grew.
func (s NodeSet) AddAll(other NodeSet) bool {
	grew := false
	for id := range other {
		if !s[id] {
			s[id] = true
			grew = true
		}
	}
	return grew
}

// Equal reports whether both sets contain exactly the same IDs.
func (s NodeSet) Equal(other NodeSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other[id] {
			return false
		}
	}
	return true
}

// Sorted returns the set's IDs in ascending order.
func (s NodeSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
