package cmd

// Options is the root for the CLI. Struct tags are interpreted by
// github.com/jessevdk/go-flags. Global flags may appear before or after the
// sub-command name.
type Options struct {
	Config   string   `short:"f" long:"config" description:"service configuration YAML/JSON path"`
	Tools    []string `short:"t" long:"tool" description:"CWL descriptor to register as path[=name], repeatable"`
	Runner   string   `short:"r" long:"runner" description:"default container runner" choice:"docker" choice:"podman" choice:"singularity" choice:"udocker" choice:"none"`
	NoRead   bool     `long:"no-read" description:"return File outputs as location references instead of content"`
	LogLevel string   `long:"log-level" description:"log level overriding the configuration (trace, debug, info, warn, error)"`

	ListTools *ListToolsCmd `command:"list-tools" description:"List registered tools"`
	Tool      *ToolCmd      `command:"tool"       description:"Show detailed info about one tool"`
	Exec      *ExecCmd      `command:"exec"       description:"Invoke one tool"`
	Serve     *ServeCmd     `command:"serve"      description:"Start MCP server exposing the registered tools"`
}

// Init instantiates the sub-command referenced by the first positional argument
// so that go-flags can populate its fields.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "list-tools":
		o.ListTools = &ListToolsCmd{}
	case "tool":
		o.Tool = &ToolCmd{}
	case "exec":
		o.Exec = &ExecCmd{}
	case "serve":
		o.Serve = &ServeCmd{}
	}
}
