// Package conversion synthesizes tool request schemas from descriptor
// fields. It produces an ordered JSON schema, a dynamically built Go struct
// acting as the validated request record and the human readable
// documentation used as tool description.
package conversion
