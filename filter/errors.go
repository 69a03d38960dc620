package filter

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyExpression is returned when compiling a blank expression
	ErrEmptyExpression = errors.New("empty filter expression")

	// ErrUnknownPreset is returned when a named preset is not configured
	ErrUnknownPreset = errors.New("unknown filter preset")
)

// Error types for filter operations
type (
	// CompilationError indicates a filter expression could not be compiled
	CompilationError struct {
		Expression string
		Err        error
	}

	// EvaluationError indicates a filter could not be evaluated against a contact
	EvaluationError struct {
		Expression string
		ContactID  string
		Err        error
	}
)

func (e *CompilationError) Error() string {
	return fmt.Sprintf("compilation error in '%s': %v", e.Expression, e.Err)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error for filter '%s' on contact %s: %v", e.Expression, e.ContactID, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
