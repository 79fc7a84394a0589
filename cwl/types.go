package cwl

import (
	"fmt"
	"strings"
)

// Kind identifies the scalar kind of a field.
type Kind int

const (
	String Kind = iota
	File
	Int
	Float
	Boolean
)

func (k Kind) String() string {
	switch k {
	case File:
		return "File"
	case Int:
		return "int"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	}
	return "string"
}

// FieldType describes a mapped input or output type. Array items are always
// scalar.
type FieldType struct {
	Kind     Kind
	Optional bool
	Array    bool
	// Declared holds the scalar type name as it appeared in the descriptor.
	Declared string
	// Symbols lists allowed values for enum types.
	Symbols []string
}

// Item returns the scalar type of array members.
func (t FieldType) Item() FieldType {
	item := t
	item.Array = false
	item.Optional = false
	return item
}

// TypeHint returns the human readable hint for the declared type, or an empty
// string when the declared name was not recognized.
func (t FieldType) TypeHint() string {
	if _, ok := classify(t.Declared); !ok {
		return ""
	}
	switch t.Kind {
	case File:
		return "file path"
	case Int:
		return "int"
	case Float:
		return "float"
	case Boolean:
		return "bool"
	}
	return "str"
}

// String renders the type in descriptor shorthand, e.g. File[]?
func (t FieldType) String() string {
	ret := t.Kind.String()
	if t.Array {
		ret += "[]"
	}
	if t.Optional {
		ret += "?"
	}
	return ret
}

// MapType translates a descriptor type expression into a FieldType. The
// expression can be a scalar name, a sequence containing null, a name with a
// [] suffix or a structured {type: array, items: T} or {type: enum} mapping.
// Unrecognized types map to String.
func MapType(expr interface{}) FieldType {
	switch actual := expr.(type) {
	case []interface{}:
		return mapUnion(actual)
	case []string:
		items := make([]interface{}, len(actual))
		for i, v := range actual {
			items[i] = v
		}
		return mapUnion(items)
	case map[string]interface{}:
		return mapStructured(actual)
	case string:
		return mapName(actual)
	case nil:
		return FieldType{Kind: String, Optional: true}
	}
	return mapName(fmt.Sprint(expr))
}

func mapUnion(items []interface{}) FieldType {
	optional := false
	var rest []interface{}
	for _, item := range items {
		if isNull(item) {
			optional = true
			continue
		}
		rest = append(rest, item)
	}
	var ret FieldType
	switch len(rest) {
	case 0:
		ret = FieldType{Kind: String}
	case 1:
		ret = MapType(rest[0])
	default:
		ret = mapName(fmt.Sprint(rest))
	}
	ret.Optional = ret.Optional || optional
	return ret
}

func mapStructured(expr map[string]interface{}) FieldType {
	typeName, _ := expr["type"].(string)
	switch typeName {
	case "array":
		ret := MapType(expr["items"])
		ret.Array = true
		ret.Optional = false
		return ret
	case "enum":
		return FieldType{Kind: String, Declared: "string", Symbols: symbols(expr["symbols"])}
	}
	if typeName == "" {
		if inner, ok := expr["type"]; ok && inner != nil {
			return MapType(inner)
		}
	}
	return mapName(typeName)
}

func mapName(name string) FieldType {
	if strings.HasSuffix(name, "[]") {
		ret := mapName(strings.TrimSuffix(name, "[]"))
		ret.Array = true
		return ret
	}
	switch name {
	case "stdin", "stdout", "stderr":
		name = "File"
	}
	kind, _ := classify(name)
	return FieldType{Kind: kind, Declared: name}
}

// classify matches the name by substring in fixed precedence order.
func classify(name string) (Kind, bool) {
	switch {
	case strings.Contains(name, "File"):
		return File, true
	case strings.Contains(name, "string"):
		return String, true
	case strings.Contains(name, "double"), strings.Contains(name, "float"):
		return Float, true
	case strings.Contains(name, "int"):
		return Int, true
	case strings.Contains(name, "boolean"):
		return Boolean, true
	}
	return String, false
}

func isNull(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == "null"
}

func symbols(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	ret := make([]string, 0, len(items))
	for _, item := range items {
		ret = append(ret, Fragment(fmt.Sprint(item)))
	}
	return ret
}
