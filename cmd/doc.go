// Package cmd implements the sub-commands of the coala command-line
// interface. Each file in this directory registers a single sub-command
// (serve, exec, list-tools, tool). Configuration loading, logger setup and
// service initialisation shared between commands live in shared.go.
package cmd
