package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerName is the implementation name announced during MCP initialization.
const ServerName = "hubspot-mcp-server"

// NewMCPServer registers every dispatcher tool on a go-sdk MCP server.
// Arguments are handed to the dispatcher unvalidated; required-field checks
// happen in the handlers.
func NewMCPServer(d *Dispatcher, version string) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)
	for _, desc := range d.ListTools() {
		srv.AddTool(&mcp.Tool{
			Name:        desc.Name,
			Description: desc.Description,
			InputSchema: desc.InputSchema,
			Annotations: desc.Annotations,
		}, d.mcpHandler(desc.Name))
	}
	srv.AddReceivingMiddleware(d.unknownToolMiddleware)
	return srv
}

// unknownToolMiddleware answers tools/call for names no handler owns with an
// error-flagged result instead of the SDK's protocol error.
func (d *Dispatcher) unknownToolMiddleware(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		if method != "tools/call" {
			return next(ctx, method, req)
		}
		call, ok := req.(*mcp.CallToolRequest)
		if !ok || call.Params == nil || d.Owns(call.Params.Name) {
			return next(ctx, method, req)
		}
		return d.mcpHandler(call.Params.Name)(ctx, call)
	}
}

// RunStdio serves MCP over stdin/stdout until the client disconnects or ctx
// is cancelled.
func RunStdio(ctx context.Context, srv *mcp.Server) error {
	return srv.Run(ctx, &mcp.StdioTransport{})
}

func (d *Dispatcher) mcpHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := decodeArguments(req.Params.Arguments)
		if err != nil {
			return toMCPResult(errorResponse(fmt.Sprintf("Error executing tool %s: %v", name, err))), nil
		}
		return toMCPResult(d.CallTool(ctx, name, args)), nil
	}
}

func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	args := map[string]any{}
	if len(raw) == 0 || string(raw) == "null" {
		return args, nil
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return args, nil
}

func toMCPResult(resp CallResponse) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(resp.Content))
	for _, c := range resp.Content {
		content = append(content, &mcp.TextContent{Text: c.Text})
	}
	return &mcp.CallToolResult{Content: content, IsError: resp.IsError}
}
