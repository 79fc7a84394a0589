package mcp

import (
	"context"
	"time"

	"github.com/coala-info/coala/engine"
	"github.com/coala-info/coala/mcp/matcher"
	"github.com/coala-info/coala/mcp/tool"
	serverproto "github.com/viant/mcp-protocol/server"
)

// Tools returns a Server tool entry for every registered tool, sorted by name.
func (s *Service) Tools() serverproto.Tools {
	var result = make(serverproto.Tools, 0)
	for _, sig := range s.toolset.Methods() {
		entry, err := s.signatureToToolEntry(sig)
		if err != nil {
			s.logger.Warn().Err(err).Str("tool", sig.Name).Msg("skipping tool entry")
			continue
		}
		result = append(result, entry)
	}
	return result
}

// LookupTool returns the Server tool entry of a registered tool.
func (s *Service) LookupTool(name string) (*serverproto.ToolEntry, error) {
	sig := s.toolset.Methods().Lookup(name)
	if sig == nil {
		return nil, &tool.NotFoundError{Tool: name}
	}
	return s.signatureToToolEntry(*sig)
}

// MatchTools returns tool entries whose name satisfies pattern; see
// matcher.Match for the pattern semantics.
func (s *Service) MatchTools(pattern string) serverproto.Tools {
	var result = make(serverproto.Tools, 0)
	for _, entry := range s.Tools() {
		if matcher.Match(pattern, entry.Metadata.Name) {
			result = append(result, entry)
		}
	}
	return result
}

// ExecuteTool invokes a registered tool with protocol style arguments. A
// positive timeout bounds the execution.
func (s *Service) ExecuteTool(ctx context.Context, name string, args map[string]interface{}, timeout time.Duration, opts ...engine.ExecOption) (*tool.Result, error) {
	adapter, err := s.registry.Adapter(name)
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return adapter.Call(ctx, args, opts...)
}
