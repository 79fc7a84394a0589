// Package cwl parses Common Workflow Language CommandLineTool descriptors and
// maps their type expressions into field types.
package cwl
