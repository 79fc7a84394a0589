package tool

import (
	"fmt"
)

// NotFoundError reports a missing descriptor source or an unknown tool.
type NotFoundError struct {
	Source string
	Tool   string
}

func (e *NotFoundError) Error() string {
	if e.Tool != "" {
		return fmt.Sprintf("unknown tool: %v", e.Tool)
	}
	return fmt.Sprintf("descriptor not found: %v", e.Source)
}

// InvalidInputError reports a descriptor source that cannot be used, or a
// request failing schema validation.
type InvalidInputError struct {
	Source string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Source == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid input %v: %v", e.Source, e.Reason)
}

// LoadError reports a descriptor the engine could not parse.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %v: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
