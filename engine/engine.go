package engine

import (
	"context"

	"github.com/coala-info/coala/cwl"
)

// Handle is an executable tool prepared by an Engine.
type Handle interface {
	// Source returns the descriptor location the handle was made from.
	Source() string
	// Descriptor returns the parsed tool descriptor.
	Descriptor() *cwl.Descriptor
}

// Engine parses tool descriptors and executes them.
type Engine interface {
	// Make parses the descriptor at source into an executable handle.
	Make(ctx context.Context, source string) (Handle, error)
	// Execute runs the tool with fully coerced parameters and returns the
	// output object, keyed by output name.
	Execute(ctx context.Context, handle Handle, params map[string]interface{}, options *ExecOptions) (map[string]interface{}, error)
}
