// Package validation checks externally supplied input specs and engine
// configuration before an analysis run starts.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pathscope/pathscope/pkg/graph"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// MaxMalformedReported caps how many malformed specs one error message
	// names before truncating.
	MaxMalformedReported = 10
)

func init() {
	validate = validator.New()
}

// ValidateNodeSpecs checks a node list from the parsing collaborator.
// Malformed specs are collected into a single error naming the offending
// indexes; a nil return means every spec is usable.
func ValidateNodeSpecs(specs []graph.NodeSpec) error {
	var bad []string
	for i, spec := range specs {
		if err := validate.Struct(spec); err != nil {
			bad = append(bad, fmt.Sprintf("node[%d] (%q): %s", i, spec.ID, formatValidationError(err)))
			if len(bad) >= MaxMalformedReported {
				bad = append(bad, "...")
				break
			}
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("invalid node specs: %s", strings.Join(bad, "; "))
	}
	return nil
}

// ValidateEdgeSpecs checks an edge list from the parsing collaborator.
// Edges referencing unknown nodes are NOT an error here; the graph builder
// tolerates and drops them. This only rejects structurally malformed specs.
func ValidateEdgeSpecs(specs []graph.EdgeSpec) error {
	var bad []string
	for i, spec := range specs {
		if err := validate.Struct(spec); err != nil {
			bad = append(bad, fmt.Sprintf("edge[%d] (%q -> %q): %s", i, spec.From, spec.To, formatValidationError(err)))
			if len(bad) >= MaxMalformedReported {
				bad = append(bad, "...")
				break
			}
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("invalid edge specs: %s", strings.Join(bad, "; "))
	}
	return nil
}

// ValidateStruct runs tag-based validation on any struct (used for configs).
func ValidateStruct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, fieldErr := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("%s failed %q validation", fieldErr.Field(), fieldErr.Tag()))
		}
		return errors.New(strings.Join(msgs, ", "))
	}
	return err
}
