package cmd

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// ToolCmd prints metadata, input schema and the request record definition of
// a single tool.
type ToolCmd struct {
	Name string `short:"n" long:"name" description:"tool name" positional-arg-name:"name" required:"yes"`
	JSON bool   `long:"json" description:"print result as JSON"`
}

type toolInfo struct {
	Name        string      `json:"name"`
	Source      string      `json:"source"`
	Description string      `json:"description"`
	InputSchema interface{} `json:"inputSchema"`
	InputDef    string      `json:"inputDefinition,omitempty"`
}

func (c *ToolCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	record, ok := svc.Registry().Lookup(c.Name)
	if !ok {
		return fmt.Errorf("tool %q not found", c.Name)
	}
	info := &toolInfo{
		Name:        record.Name,
		Source:      record.Source,
		Description: record.Description(),
		InputSchema: record.Schema.Input,
		InputDef:    typeDefinition(record.Schema.Type, ""),
	}

	if c.JSON {
		data, _ := json.MarshalIndent(info, "", "  ")
		fmt.Println(string(data))
		return nil
	}
	fmt.Printf("Name   : %s\n", info.Name)
	fmt.Printf("Source : %s\n", info.Source)
	fmt.Printf("Desc   :\n%s\n", info.Description)
	js, _ := json.MarshalIndent(info.InputSchema, "", "  ")
	fmt.Printf("\nInputSchema:\n%s\n", string(js))
	if info.InputDef != "" {
		fmt.Printf("\nInput Definition:\n%s\n", info.InputDef)
	}
	return nil
}

// typeDefinition returns a Go-like struct definition for anonymous types or
// an empty string for named/builtin ones.
func typeDefinition(t reflect.Type, indent string) string {
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Pointer {
		return typeDefinition(t.Elem(), indent)
	}
	if t.Name() != "" || t.Kind() != reflect.Struct {
		return ""
	}
	var b strings.Builder
	b.WriteString("struct {\n")
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		b.WriteString(indent)
		b.WriteString("    ")
		b.WriteString(f.Name)
		b.WriteString(" ")
		b.WriteString(simpleTypeExpr(f.Type))
		if tag := strings.TrimSpace(string(f.Tag)); tag != "" {
			b.WriteString(" `")
			b.WriteString(tag)
			b.WriteString("`")
		}
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString("}")
	return b.String()
}

func simpleTypeExpr(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		return "*" + simpleTypeExpr(t.Elem())
	}
	if t.Name() != "" {
		return t.String()
	}
	if t.Kind() == reflect.Slice {
		return "[]" + simpleTypeExpr(t.Elem())
	}
	return t.String()
}
