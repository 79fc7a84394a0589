package cmd

import (
	"fmt"
	"strings"
)

// ListToolsCmd prints every registered tool with the first line of its
// description.
type ListToolsCmd struct {
	Pattern string `short:"p" long:"pattern" description:"name prefix or glob" default:"*"`
}

func (c *ListToolsCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	// MatchTools returns entries sorted by name.
	for _, t := range svc.MatchTools(c.Pattern) {
		desc := ""
		if t.Metadata.Description != nil {
			desc, _, _ = strings.Cut(*t.Metadata.Description, "\n")
		}
		fmt.Printf("%s\t%s\n", t.Metadata.Name, desc)
	}
	return nil
}
