package cwl

import (
	"strings"
)

// Parameter is a declared tool input or output.
type Parameter struct {
	ID      string
	Type    interface{}
	Label   string
	Doc     string
	Default interface{}
}

// Requirement is a requirement or hint entry keyed by its class.
type Requirement struct {
	Class  string
	Fields map[string]interface{}
}

// Descriptor is the subset of a CommandLineTool document used to expose it
// as a callable tool.
type Descriptor struct {
	ID           string
	Class        string
	Version      string
	Label        string
	Doc          string
	Inputs       []*Parameter
	Outputs      []*Parameter
	Requirements []*Requirement
	Hints        []*Requirement
	// Digest is the xxhash of the raw document.
	Digest uint64
}

// Field is a named, typed tool input or output.
type Field struct {
	Name    string
	Type    FieldType
	Doc     string
	Default interface{}
}

// Required reports whether a caller must supply the field, i.e. it is
// neither optional nor declares a default.
func (f Field) Required() bool {
	return !f.Type.Optional && f.Default == nil
}

// Fields maps parameters into fields, preserving declaration order.
func Fields(params []*Parameter) []Field {
	ret := make([]Field, 0, len(params))
	for _, param := range params {
		doc := param.Doc
		if doc == "" {
			doc = param.Label
		}
		ret = append(ret, Field{Name: param.ID, Type: MapType(param.Type), Doc: doc, Default: param.Default})
	}
	return ret
}

// DockerImage returns the dockerPull image of a DockerRequirement.
// Requirements take precedence over hints.
func (d *Descriptor) DockerImage() string {
	if image := dockerPull(d.Requirements); image != "" {
		return image
	}
	return dockerPull(d.Hints)
}

func dockerPull(requirements []*Requirement) string {
	for _, requirement := range requirements {
		if requirement.Class != "DockerRequirement" {
			continue
		}
		if image, ok := requirement.Fields["dockerPull"].(string); ok && image != "" {
			return image
		}
	}
	return ""
}

// Fragment returns the trailing identifier of a CWL id, i.e. the part after
// the last '#' and then after the last '/'.
func Fragment(id string) string {
	if idx := strings.LastIndex(id, "#"); idx != -1 {
		id = id[idx+1:]
	}
	if idx := strings.LastIndex(id, "/"); idx != -1 {
		id = id[idx+1:]
	}
	return id
}
