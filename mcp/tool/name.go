package tool

import (
	"path/filepath"
	"strings"

	"github.com/coala-info/coala/cwl"
)

// ResolveName returns the public tool name. An explicit name wins, then the
// descriptor id fragment, then the source file name without extension.
// Derived names are sanitized, explicit ones are used verbatim.
func ResolveName(explicit, id, source string) string {
	if explicit != "" {
		return explicit
	}
	if name := Sanitize(cwl.Fragment(id)); name != "" {
		return name
	}
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return Sanitize(base)
}

// Sanitize replaces characters outside [A-Za-z0-9_-] with '_'.
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
