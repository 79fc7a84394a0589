package mcp

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/coala-info/coala/engine"
	"github.com/coala-info/coala/internal/conv"
	"github.com/coala-info/coala/mcp/tool"
	"github.com/viant/fluxor/model/types"
	"github.com/viant/jsonrpc"
	mcpschema "github.com/viant/mcp-protocol/schema"
	serverproto "github.com/viant/mcp-protocol/server"
)

// signatureToToolEntry converts one toolset method into a Server tool entry.
// The handler resolves the method at call time so replaced registrations take
// effect without rebuilding entries.
func (s *Service) signatureToToolEntry(sig types.Signature) (*serverproto.ToolEntry, error) {
	record, ok := s.registry.Lookup(sig.Name)
	if !ok {
		return nil, &tool.NotFoundError{Tool: sig.Name}
	}
	inputSchema, err := record.Schema.ToolInputSchema()
	if err != nil {
		return nil, err
	}
	description := sig.Description
	entry := &serverproto.ToolEntry{
		Metadata: mcpschema.Tool{
			Name:        sig.Name,
			Description: &description,
			InputSchema: inputSchema,
		},
	}
	name := sig.Name
	entry.Handler = func(ctx context.Context, request *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
		exec, err := s.toolset.Method(name)
		if err != nil {
			return nil, jsonrpc.NewError(jsonrpc.InvalidParams, err.Error(), nil)
		}
		var arguments map[string]interface{}
		if request.Params.Arguments != nil {
			arguments = map[string]interface{}(request.Params.Arguments)
		}
		var text string
		if err := exec(ctx, arguments, &text); err != nil {
			return errorResult(err), nil
		}
		return &mcpschema.CallToolResult{Content: []mcpschema.CallToolResultContentElem{{
			Type: "text",
			Text: text,
		}}}, nil
	}
	return entry, nil
}

// errorResult reports a failed invocation as tool output so that the calling
// agent can read it.
func errorResult(err error) *mcpschema.CallToolResult {
	payload := map[string]interface{}{"error": err.Error()}
	var execErr *engine.ExecutionError
	if errors.As(err, &execErr) {
		payload["exit_code"] = execErr.ExitCode
	}
	data, _ := json.Marshal(payload)
	return &mcpschema.CallToolResult{
		IsError: conv.Pointer(true),
		Content: []mcpschema.CallToolResultContentElem{{
			Type: "text",
			Text: string(data),
		}},
	}
}
