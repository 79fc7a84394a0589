package tool

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/coala-info/coala/cwl"
	"github.com/rs/zerolog"
)

const fileScheme = "file://"

// Coercer prepares loosely typed caller values for the execution engine.
// It never fails: values it cannot interpret are returned unchanged.
type Coercer struct {
	logger zerolog.Logger
}

// NewCoercer creates a coercer.
func NewCoercer(logger zerolog.Logger) *Coercer {
	return &Coercer{logger: logger}
}

// Coerce normalizes value for a field of the given type.
func (c *Coercer) Coerce(value interface{}, fieldType cwl.FieldType) interface{} {
	if value == nil {
		return nil
	}
	if fieldType.Array {
		items, ok := asList(value)
		if !ok {
			return c.coerceScalar(value, fieldType.Item())
		}
		ret := make([]interface{}, len(items))
		item := fieldType.Item()
		for i, v := range items {
			ret[i] = c.Coerce(v, item)
		}
		return ret
	}
	return c.coerceScalar(value, fieldType)
}

// CoerceAll coerces every request value that matches a declared field.
// Unknown keys are passed through.
func (c *Coercer) CoerceAll(request map[string]interface{}, fields []cwl.Field) map[string]interface{} {
	types := make(map[string]cwl.FieldType, len(fields))
	for _, field := range fields {
		types[field.Name] = field.Type
	}
	ret := make(map[string]interface{}, len(request))
	for name, value := range request {
		fieldType, ok := types[name]
		if !ok {
			ret[name] = value
			continue
		}
		ret[name] = c.Coerce(value, fieldType)
	}
	return ret
}

func (c *Coercer) coerceScalar(value interface{}, fieldType cwl.FieldType) interface{} {
	switch fieldType.Kind {
	case cwl.File:
		return c.coerceFile(value)
	case cwl.String:
		return c.coerceString(value)
	}
	return value
}

func (c *Coercer) coerceFile(value interface{}) interface{} {
	switch actual := value.(type) {
	case map[string]interface{}:
		if location, ok := actual["location"]; ok && location != nil {
			return fileObject(location)
		}
	case string:
		if hasScheme(actual) {
			return fileObject(actual)
		}
		info, err := os.Stat(actual)
		if err != nil || !info.Mode().IsRegular() {
			c.logger.Debug().Str("value", actual).Msg("file value unresolved, passing through")
			return actual
		}
		abs, err := filepath.Abs(actual)
		if err != nil {
			return actual
		}
		return fileObject(fileScheme + filepath.ToSlash(abs))
	}
	return value
}

func (c *Coercer) coerceString(value interface{}) interface{} {
	text, ok := value.(string)
	if !ok || !strings.ContainsAny(text, "/"+string(os.PathSeparator)) {
		return value
	}
	dir := filepath.Dir(text)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return value
	}
	base := filepath.Base(text)
	c.logger.Debug().Str("value", text).Str("base", base).Msg("reduced path to file name")
	return base
}

func fileObject(location interface{}) map[string]interface{} {
	return map[string]interface{}{"class": "File", "location": location}
}

// hasScheme reports whether s starts with a URI scheme followed by "://".
func hasScheme(s string) bool {
	idx := strings.Index(s, "://")
	if idx <= 0 {
		return false
	}
	for i, r := range s[:idx] {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

func asList(value interface{}) ([]interface{}, bool) {
	if items, ok := value.([]interface{}); ok {
		return items, true
	}
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, false
	}
	ret := make([]interface{}, v.Len())
	for i := range ret {
		ret[i] = v.Index(i).Interface()
	}
	return ret, true
}
