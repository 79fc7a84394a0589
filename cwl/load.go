package cwl

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Load downloads and parses a descriptor from a local path or URL.
func Load(ctx context.Context, location string) (*Descriptor, error) {
	data, err := afs.New().DownloadWithURL(ctx, location)
	if err != nil {
		return nil, errors.Wrapf(err, "download descriptor %q", location)
	}
	ret, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse descriptor %q", location)
	}
	return ret, nil
}

// Parse decodes a YAML or JSON descriptor document. Packed documents with a
// $graph select the #main process, or the first CommandLineTool.
func Parse(data []byte) (*Descriptor, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, errors.New("empty descriptor document")
	}
	var doc map[string]interface{}
	if err := root.Decode(&doc); err != nil {
		return nil, err
	}
	if len(doc) == 0 {
		return nil, errors.New("empty descriptor document")
	}
	process := root.Content[0]
	if graph, ok := doc["$graph"]; ok {
		index, main, err := selectMain(graph)
		if err != nil {
			return nil, err
		}
		if _, ok := main["cwlVersion"]; !ok {
			main["cwlVersion"] = doc["cwlVersion"]
		}
		doc = main
		process = itemNode(mappingValue(process, "$graph"), index)
	}

	ret := &Descriptor{
		ID:      asString(doc["id"]),
		Class:   asString(doc["class"]),
		Version: asString(doc["cwlVersion"]),
		Label:   asString(doc["label"]),
		Doc:     joinDoc(doc["doc"]),
		Digest:  xxhash.Sum64(data),
	}
	var err error
	if ret.Inputs, err = parameters(doc["inputs"], mappingKeys(mappingValue(process, "inputs"))); err != nil {
		return nil, errors.Wrap(err, "inputs")
	}
	if ret.Outputs, err = parameters(doc["outputs"], mappingKeys(mappingValue(process, "outputs"))); err != nil {
		return nil, errors.Wrap(err, "outputs")
	}
	ret.Requirements = requirements(doc["requirements"])
	ret.Hints = requirements(doc["hints"])
	return ret, nil
}

func selectMain(graph interface{}) (int, map[string]interface{}, error) {
	items, ok := graph.([]interface{})
	if !ok || len(items) == 0 {
		return 0, nil, errors.New("$graph must be a non-empty list")
	}
	firstIndex := -1
	var first map[string]interface{}
	for i, item := range items {
		process, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if Fragment(asString(process["id"])) == "main" {
			return i, process, nil
		}
		if first == nil && asString(process["class"]) == "CommandLineTool" {
			firstIndex, first = i, process
		}
	}
	if first == nil {
		return 0, nil, errors.New("$graph has no CommandLineTool")
	}
	return firstIndex, first, nil
}

// mappingValue returns the value node stored under key, or nil when node is
// not a mapping or has no such key.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func itemNode(node *yaml.Node, index int) *yaml.Node {
	if node == nil || node.Kind != yaml.SequenceNode || index >= len(node.Content) {
		return nil
	}
	return node.Content[index]
}

// mappingKeys returns the keys of a mapping node in document order.
func mappingKeys(node *yaml.Node) []string {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	ret := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		ret = append(ret, node.Content[i].Value)
	}
	return ret
}

// parameters accepts both the list form (entries carrying id) and the map
// form (id keyed, value being a type expression or a parameter mapping).
// Map entries follow order, the keys as declared in the document.
func parameters(raw interface{}, order []string) ([]*Parameter, error) {
	switch actual := raw.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		ret := make([]*Parameter, 0, len(actual))
		for i, item := range actual {
			entry, ok := item.(map[string]interface{})
			if !ok {
				return nil, errors.Newf("entry %d is not a mapping", i)
			}
			id := asString(entry["id"])
			if id == "" {
				return nil, errors.Newf("entry %d has no id", i)
			}
			ret = append(ret, parameter(id, entry))
		}
		return ret, nil
	case map[string]interface{}:
		ret := make([]*Parameter, 0, len(actual))
		for _, id := range declaredKeys(actual, order) {
			value := actual[id]
			entry, ok := value.(map[string]interface{})
			if !ok || entry["type"] == nil && !isParameterMap(entry) {
				entry = map[string]interface{}{"type": value}
			}
			ret = append(ret, parameter(id, entry))
		}
		return ret, nil
	}
	return nil, errors.Newf("unsupported parameter list %T", raw)
}

// declaredKeys lists the keys of values in order, followed by any key order
// does not mention, sorted.
func declaredKeys(values map[string]interface{}, order []string) []string {
	ret := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, key := range order {
		if _, ok := values[key]; ok && !seen[key] {
			seen[key] = true
			ret = append(ret, key)
		}
	}
	var rest []string
	for key := range values {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(ret, rest...)
}

func isParameterMap(entry map[string]interface{}) bool {
	for _, key := range []string{"doc", "label", "default", "inputBinding", "outputBinding"} {
		if _, ok := entry[key]; ok {
			return true
		}
	}
	return false
}

func parameter(id string, entry map[string]interface{}) *Parameter {
	typeExpr := entry["type"]
	if name, ok := typeExpr.(string); ok && (name == "array" && entry["items"] != nil || name == "enum" && entry["symbols"] != nil) {
		typeExpr = map[string]interface{}{"type": name, "items": entry["items"], "symbols": entry["symbols"]}
	}
	return &Parameter{
		ID:      Fragment(id),
		Type:    normalizeType(typeExpr),
		Label:   asString(entry["label"]),
		Doc:     joinDoc(entry["doc"]),
		Default: entry["default"],
	}
}

// normalizeType expands the T? shorthand into a [null, T] union and the
// stdin, stdout and stderr shorthands into File.
func normalizeType(expr interface{}) interface{} {
	switch actual := expr.(type) {
	case string:
		if strings.HasSuffix(actual, "?") {
			return []interface{}{"null", normalizeType(strings.TrimSuffix(actual, "?"))}
		}
		switch actual {
		case "stdin", "stdout", "stderr":
			return "File"
		}
	case []interface{}:
		ret := make([]interface{}, len(actual))
		for i, item := range actual {
			ret[i] = normalizeType(item)
		}
		return ret
	case map[string]interface{}:
		if items, ok := actual["items"]; ok {
			actual["items"] = normalizeType(items)
		}
	}
	return expr
}

func requirements(raw interface{}) []*Requirement {
	var ret []*Requirement
	switch actual := raw.(type) {
	case []interface{}:
		for _, item := range actual {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			ret = append(ret, &Requirement{Class: Fragment(asString(entry["class"])), Fields: entry})
		}
	case map[string]interface{}:
		classes := make([]string, 0, len(actual))
		for class := range actual {
			classes = append(classes, class)
		}
		sort.Strings(classes)
		for _, class := range classes {
			entry, _ := actual[class].(map[string]interface{})
			ret = append(ret, &Requirement{Class: Fragment(class), Fields: entry})
		}
	}
	return ret
}

func joinDoc(v interface{}) string {
	switch actual := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(actual)
	case []interface{}:
		lines := make([]string, 0, len(actual))
		for _, line := range actual {
			lines = append(lines, fmt.Sprint(line))
		}
		return strings.TrimSpace(strings.Join(lines, "\n"))
	}
	return fmt.Sprint(v)
}

func asString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
