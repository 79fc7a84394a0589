package conversion

import (
	"strings"

	"github.com/coala-info/coala/cwl"
)

// PropertyDescription combines the field doc with its type hint.
func PropertyDescription(field cwl.Field) string {
	hint := field.Type.TypeHint()
	switch {
	case field.Doc == "":
		return hint
	case hint == "":
		return field.Doc
	}
	return field.Doc + " (" + hint + ")"
}

// DocLine renders "name: doc, type, hint", skipping empty parts. The type
// is included for inputs only.
func DocLine(field cwl.Field, withType bool) string {
	var parts []string
	if field.Doc != "" {
		parts = append(parts, field.Doc)
	}
	if withType {
		parts = append(parts, field.Type.String())
	}
	if hint := field.Type.TypeHint(); hint != "" {
		parts = append(parts, hint)
	}
	return field.Name + ": " + strings.Join(parts, ", ")
}

// DocBlock joins the doc lines of fields with blank lines.
func DocBlock(fields []cwl.Field, withType bool) string {
	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		lines = append(lines, DocLine(field, withType))
	}
	return strings.Join(lines, "\n\n")
}

// Describe assembles the tool description from its metadata and doc blocks.
func Describe(meta Metadata, inputDoc, outputDoc string) string {
	header := meta.Name
	if meta.Label != "" {
		header += ": " + meta.Label
	}
	sections := []string{header}
	if meta.Doc != "" {
		sections = append(sections, meta.Doc)
	}
	sections = append(sections, "tool_version: "+meta.Image)
	if inputDoc != "" {
		sections = append(sections, "Args:", inputDoc)
	}
	if outputDoc != "" {
		sections = append(sections, "Returns:", outputDoc)
	}
	return strings.Join(sections, "\n\n")
}
