package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewMCPServer builds a go-sdk MCP server exposing every tool currently in
// the registry. Namespaced IDs are published with "." in place of ":".
// Tools registered later are not picked up.
func NewMCPServer(ctx context.Context, r *Registry) (*mcp.Server, error) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    r.config.ServerInfo.Name,
		Version: r.config.ServerInfo.Version,
	}, nil)

	tools, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, tool := range tools {
		id := tool.ToolID()
		published := tool.Tool
		published.Name = sdkToolName(id)
		server.AddTool(&published, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var args map[string]any
			if err := decodeParams(req.Params.Arguments, &args); err != nil {
				return toolError(fmt.Errorf("%w: %v", ErrInvalidRequest, err)), nil
			}
			res, err := r.Execute(ctx, id, args)
			if err != nil {
				return toolError(err), nil
			}
			return toolResult(res)
		})
	}
	return server, nil
}

// NewStreamableHandler serves the go-sdk server over streamable HTTP.
func NewStreamableHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
}

func sdkToolName(id string) string {
	return strings.ReplaceAll(id, ":", ".")
}

func toolResult(res any) (*mcp.CallToolResult, error) {
	text, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("%w: encode result: %v", ErrExecutionFailed, err)
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(text)}},
		StructuredContent: map[string]any{"result": res},
	}, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
