package tool

import (
	"github.com/coala-info/coala/cwl"
	"github.com/coala-info/coala/engine"
	"github.com/coala-info/coala/mcp/tool/conversion"
)

// Record is a registered tool. It is immutable once added to a Registry.
type Record struct {
	Name        string
	Source      string
	Handle      engine.Handle
	Label       string
	Doc         string
	Inputs      []cwl.Field
	Outputs     []cwl.Field
	Image       string
	ReadOutputs bool
	Digest      uint64
	Schema      *conversion.Schema
}

// Description returns the tool description exposed to callers.
func (r *Record) Description() string {
	return r.Schema.Description
}

// Version returns the container image reference, or an empty string.
func (r *Record) Version() string {
	return r.Image
}
