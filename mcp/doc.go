// Package mcp wires the CWL tool registry with the MCP protocol
// implementation. Its central Service type loads configuration, builds the
// execution engine, registers the configured tool descriptors and can expose
// them over an MCP server.
package mcp
