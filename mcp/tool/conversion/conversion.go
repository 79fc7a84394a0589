package conversion

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/coala-info/coala/cwl"
	"github.com/coala-info/coala/internal/conv"
	"github.com/invopop/jsonschema"
	schema "github.com/viant/mcp-protocol/schema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"github.com/viant/x"
	"github.com/xeipuuv/gojsonschema"
)

// Schema is the synthesized request schema of a tool.
type Schema struct {
	// Input is the JSON schema of the request object, properties in
	// declaration order.
	Input *jsonschema.Schema
	// Type is the dynamic request record type.
	Type reflect.Type
	// InputDoc and OutputDoc summarize the declared fields.
	InputDoc  string
	OutputDoc string
	// Description is the tool description exposed to callers.
	Description string

	validator *gojsonschema.Schema
}

// Metadata carries descriptive tool attributes.
type Metadata struct {
	Name  string
	Label string
	Doc   string
	Image string
}

// Synthesize builds the request schema, the dynamic record and the
// documentation blocks for a tool. Unrecognized types are treated as strings.
func Synthesize(meta Metadata, inputs, outputs []cwl.Field) (*Schema, error) {
	ret := &Schema{
		Input:     InputSchema(inputs),
		InputDoc:  DocBlock(inputs, true),
		OutputDoc: DocBlock(outputs, false),
	}
	ret.Description = Describe(meta, ret.InputDoc, ret.OutputDoc)

	var err error
	if ret.Type, err = RecordType(inputs); err != nil {
		return nil, errors.Wrapf(err, "build request record for %v", meta.Name)
	}
	if ret.validator, err = gojsonschema.NewSchema(gojsonschema.NewGoLoader(ret.Input)); err != nil {
		return nil, errors.Wrapf(err, "compile request schema for %v", meta.Name)
	}
	return ret, nil
}

// InputSchema returns an object schema with one property per field.
func InputSchema(fields []cwl.Field) *jsonschema.Schema {
	properties := orderedmap.New[string, *jsonschema.Schema]()
	var required []string
	for _, field := range fields {
		properties.Set(field.Name, PropertySchema(field))
		if field.Required() {
			required = append(required, field.Name)
		}
	}
	return &jsonschema.Schema{Type: "object", Properties: properties, Required: required}
}

// PropertySchema returns the schema of a single field.
func PropertySchema(field cwl.Field) *jsonschema.Schema {
	item := scalarSchema(field.Type)
	ret := item
	if field.Type.Array {
		ret = &jsonschema.Schema{Type: "array", Items: item}
	}
	ret.Description = PropertyDescription(field)
	if isScalar(field.Default) {
		ret.Default = field.Default
	}
	return ret
}

func scalarSchema(fieldType cwl.FieldType) *jsonschema.Schema {
	ret := &jsonschema.Schema{Type: jsonType(fieldType.Kind)}
	for _, symbol := range fieldType.Symbols {
		ret.Enum = append(ret.Enum, symbol)
	}
	return ret
}

func jsonType(kind cwl.Kind) string {
	switch kind {
	case cwl.Int:
		return "integer"
	case cwl.Float:
		return "number"
	case cwl.Boolean:
		return "boolean"
	}
	return "string"
}

func isScalar(v interface{}) bool {
	switch v.(type) {
	case string, bool, int, int64, float64:
		return true
	}
	return false
}

// ToolInputSchema converts s.Input into the protocol schema type.
func (s *Schema) ToolInputSchema() (schema.ToolInputSchema, error) {
	var ret schema.ToolInputSchema
	if err := conv.Convert(s.Input, &ret); err != nil {
		return ret, errors.Wrap(err, "convert input schema")
	}
	if ret.Type == "" {
		ret.Type = "object"
	}
	return ret, nil
}

// typeRegistry holds dynamic request record types.
var typeRegistry = x.NewRegistry()

// Registry returns the registry of dynamic types.
func Registry() *x.Registry {
	return typeRegistry
}

// RegisterType registers a Go type for schema-based conversion.
func RegisterType(t reflect.Type, options ...x.Option) {
	typeRegistry.Register(x.NewType(t, options...))
}

// RecordType builds a struct type with one field per input, in declaration
// order. Scalars that may be omitted are pointers, arrays are slices.
func RecordType(fields []cwl.Field) (reflect.Type, error) {
	structFields := make([]reflect.StructField, 0, len(fields))
	used := make(map[string]bool, len(fields))
	for _, field := range fields {
		if field.Name == "" {
			return nil, errors.New("field name was empty")
		}
		tagName := field.Name
		if !field.Required() {
			tagName += ",omitempty"
		}
		tag := fmt.Sprintf("json:%q", tagName)
		if description := PropertyDescription(field); description != "" {
			tag += fmt.Sprintf(" description:%q", description)
		}
		for _, symbol := range field.Type.Symbols {
			tag += fmt.Sprintf(" choice:%q", symbol)
		}
		structFields = append(structFields, reflect.StructField{
			Name: goName(field.Name, used),
			Type: goType(field.Type, !field.Required()),
			Tag:  reflect.StructTag(tag),
		})
	}
	t := reflect.StructOf(structFields)
	RegisterType(t)
	return t, nil
}

func goType(fieldType cwl.FieldType, omittable bool) reflect.Type {
	var ret reflect.Type
	switch fieldType.Kind {
	case cwl.Int:
		ret = reflect.TypeOf(0)
	case cwl.Float:
		ret = reflect.TypeOf(float64(0))
	case cwl.Boolean:
		ret = reflect.TypeOf(true)
	default:
		ret = reflect.TypeOf("")
	}
	switch {
	case fieldType.Array:
		return reflect.SliceOf(ret)
	case omittable:
		return reflect.PointerTo(ret)
	}
	return ret
}

// goName derives a unique exported identifier from a field name.
func goName(name string, used map[string]bool) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		isLetter := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
		isDigit := r >= '0' && r <= '9'
		if !isLetter && !isDigit {
			upper = true
			continue
		}
		if upper && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		upper = false
		b.WriteRune(r)
	}
	ret := b.String()
	if ret == "" || ret[0] < 'A' || ret[0] > 'Z' {
		ret = "F" + ret
	}
	candidate := ret
	for i := 2; used[candidate]; i++ {
		candidate = ret + strconv.Itoa(i)
	}
	used[candidate] = true
	return candidate
}
