package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNodeNotFound  = errors.New("node not found")
	ErrEmptyNodeID   = errors.New("empty node id")
	ErrInvalidRole   = errors.New("invalid role")
	ErrGraphNotBuilt = errors.New("graph not built")
)

// AnalysisError provides structured error information for engine operations.
type AnalysisError struct {
	Op     string // Operation that failed (e.g., "Build", "SetRole")
	Entity string // Entity type (e.g., "node", "edge", "assignment")
	ID     string // Entity ID (if applicable)
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *AnalysisError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func newError(op, entity, id string, cause error) *AnalysisError {
	return &AnalysisError{Op: op, Entity: entity, ID: id, Cause: cause}
}
