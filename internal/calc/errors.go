package calc

import (
	"fmt"
	"strings"
)

// FieldError describes a validation failure on a specific input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports invalid or incomplete calculation input. It is
// recoverable by the caller; the engine returns it before any result is
// produced.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "invalid calculation input"
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "invalid calculation input: " + strings.Join(parts, "; ")
}

// newValidationError builds a single-field ValidationError.
func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Errors: []FieldError{{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}}}
}

// InvariantError reports an internal table-shape violation after
// normalization. It indicates a defect in the engine rather than bad
// input and must not leak detail to clients.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "calculation invariant violated: " + e.Msg
}

func newInvariantError(format string, args ...interface{}) *InvariantError {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}
