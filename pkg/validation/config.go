package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigValidator provides a fluent interface for validating configuration
// values. It collects all validation errors rather than failing on the
// first one.
type ConfigValidator struct {
	errors []error
	name   string // config struct name for error messages
}

// NewConfigValidator creates a new config validator with the given config name.
func NewConfigValidator(configName string) *ConfigValidator {
	return &ConfigValidator{
		name:   configName,
		errors: make([]error, 0),
	}
}

// Required validates that a string field is not empty.
func (cv *ConfigValidator) Required(field, value string) *ConfigValidator {
	if value == "" {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: required field is empty", cv.name, field))
	}
	return cv
}

// NonNegative validates that an int field is zero or positive.
func (cv *ConfigValidator) NonNegative(field string, value int) *ConfigValidator {
	if value < 0 {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %d must not be negative", cv.name, field, value))
	}
	return cv
}

// MaxInt validates that an int field does not exceed the maximum value.
func (cv *ConfigValidator) MaxInt(field string, value, max int) *ConfigValidator {
	if value > max {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %d exceeds maximum %d", cv.name, field, value, max))
	}
	return cv
}

// OneOf validates that a string field is one of the allowed values. Empty
// values pass; pair with Required when the field is mandatory.
func (cv *ConfigValidator) OneOf(field, value string, allowed ...string) *ConfigValidator {
	if value == "" {
		return cv
	}
	for _, a := range allowed {
		if value == a {
			return cv
		}
	}
	cv.errors = append(cv.errors, fmt.Errorf("%s.%s: %q is not one of [%s]",
		cv.name, field, value, strings.Join(allowed, ", ")))
	return cv
}

// Check appends an error when ok is false.
func (cv *ConfigValidator) Check(ok bool, field, msg string) *ConfigValidator {
	if !ok {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: %s", cv.name, field, msg))
	}
	return cv
}

// Err returns all collected validation errors joined, or nil.
func (cv *ConfigValidator) Err() error {
	if len(cv.errors) == 0 {
		return nil
	}
	return errors.Join(cv.errors...)
}
