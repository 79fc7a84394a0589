package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/coala-info/coala/mcp/tool"
)

// ExecCmd executes a registered tool from the CLI. Arguments can be supplied
// either inline via -i/--input or loaded from a JSON file via --file.
type ExecCmd struct {
	Name       string `short:"n" long:"name" positional-arg-name:"tool" description:"Tool name" required:"yes"`
	Inline     string `short:"i" long:"input" description:"Inline JSON arguments (object)"`
	File       string `long:"file" description:"Path to JSON file with arguments (use - for stdin)"`
	TimeoutSec int    `long:"timeout" description:"Seconds to wait for completion, 0 waits indefinitely" default:"0"`
	JSON       bool   `long:"json" description:"Print result as JSON"`
}

func (c *ExecCmd) Execute(_ []string) error {
	if c.Inline != "" && c.File != "" {
		return fmt.Errorf("-i/--input and --file are mutually exclusive")
	}

	args, err := c.arguments(os.Stdin)
	if err != nil {
		return err
	}

	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	timeout := time.Duration(c.TimeoutSec) * time.Second
	result, err := svc.ExecuteTool(context.Background(), c.Name, args, timeout)
	if err != nil {
		return err
	}
	return printResult(os.Stdout, result, c.JSON)
}

// arguments builds the argument map from inline JSON, a file or stdin.
func (c *ExecCmd) arguments(stdin io.Reader) (map[string]interface{}, error) {
	var args map[string]interface{}
	switch {
	case c.Inline != "":
		if err := json.Unmarshal([]byte(c.Inline), &args); err != nil {
			return nil, fmt.Errorf("invalid inline JSON: %w", err)
		}
	case c.File != "":
		var rdr io.Reader
		if c.File == "-" {
			rdr = stdin
		} else {
			f, err := os.Open(c.File)
			if err != nil {
				return nil, fmt.Errorf("open input file: %w", err)
			}
			defer f.Close()
			rdr = f
		}
		data, err := io.ReadAll(rdr)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		if err := json.Unmarshal(data, &args); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	default:
		// no arguments supplied
	}
	return args, nil
}

// printResult writes the full envelope as JSON, or one output per line
// followed by the tool summary.
func printResult(w io.Writer, result *tool.Result, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(result.Map(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	names := make([]string, 0, len(result.Outputs))
	for name := range result.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := result.Outputs[name]
		switch actual := value.(type) {
		case string:
			fmt.Fprintf(w, "%s: %s\n", name, actual)
		default:
			data, _ := json.Marshal(actual)
			fmt.Fprintf(w, "%s: %s\n", name, data)
		}
	}
	fmt.Fprintf(w, "tool_name: %s\n", result.ToolName)
	_, err := fmt.Fprintf(w, "tool_version: %s\n", result.ToolVersion)
	return err
}
