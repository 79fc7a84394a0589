package cmd

import (
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
)

var commands = []string{"list-tools", "tool", "exec", "serve"}

// Run is the entry point for the CLI. The function is separated from the main
// package to keep the command usable from tests as well.
func Run(args []string) {
	if err := RunWithArgs(args); err != nil {
		os.Exit(1)
	}
}

// RunWithArgs parses args and executes the selected sub-command.
func RunWithArgs(args []string) error {
	opts := &Options{}
	opts.Init(commandName(args))

	// sub-commands read global flags through the shared service state
	setOptions(opts)

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash|flags.PrintErrors)
	_, err := parser.ParseArgs(args)
	return err
}

// commandName returns the first argument naming a sub-command, skipping
// global flags and their values.
func commandName(args []string) string {
	for _, arg := range args {
		if arg == "--" {
			return ""
		}
		if strings.HasPrefix(arg, "-") {
			continue
		}
		for _, name := range commands {
			if arg == name {
				return name
			}
		}
	}
	return ""
}

// parseToolFlag splits a -t/--tool value of the form path[=name].
func parseToolFlag(value string) (path, name string) {
	if idx := strings.LastIndex(value, "="); idx != -1 {
		return value[:idx], value[idx+1:]
	}
	return value, ""
}
