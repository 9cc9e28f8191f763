package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonwraymond/toolfoundation/model"

	"github.com/jonwraymond/toolalgo/dispatch"
	"github.com/jonwraymond/toolalgo/index"
	"github.com/jonwraymond/toolalgo/tooldoc"
)

// MCPRequest represents an incoming MCP JSON-RPC request.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an MCP JSON-RPC response.
type MCPResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *MCPError `json:"error,omitempty"`
}

// MCPError is a JSON-RPC error object.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// defaultSearchLimit applies when tools/search omits limit.
const defaultSearchLimit = 10

// HandleRequest processes an MCP request and returns a response.
func (r *Registry) HandleRequest(ctx context.Context, req MCPRequest) MCPResponse {
	switch req.Method {
	case "initialize":
		return r.handleInitialize(ctx, req.ID, req.Params)
	case "ping":
		return result(req.ID, map[string]any{})
	case "tools/list":
		return r.handleToolsList(ctx, req.ID, req.Params)
	case "tools/call":
		return r.handleToolsCall(ctx, req.ID, req.Params)
	case "tools/search":
		return r.handleToolsSearch(ctx, req.ID, req.Params)
	case "tools/batch":
		return r.handleToolsBatch(ctx, req.ID, req.Params)
	case "tools/describe":
		return r.handleToolsDescribe(ctx, req.ID, req.Params)
	case "tools/examples":
		return r.handleToolsExamples(ctx, req.ID, req.Params)
	default:
		return failure(req.ID, &MCPError{
			Code:    ErrCodeMethodNotFound,
			Message: fmt.Sprintf("method %s not found", req.Method),
		})
	}
}

func result(id, res any) MCPResponse {
	return MCPResponse{JSONRPC: "2.0", ID: id, Result: res}
}

func failure(id any, err *MCPError) MCPResponse {
	return MCPResponse{JSONRPC: "2.0", ID: id, Error: err}
}

func execError(err error) *MCPError {
	return &MCPError{Code: errorCode(err), Message: err.Error(), Data: errorData(err)}
}

// decodeParams unmarshals params keeping numbers as json.Number, so integer
// arguments survive without float rounding. Empty params decode as {}.
func decodeParams(params json.RawMessage, v any) error {
	if len(bytes.TrimSpace(params)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(params))
	dec.UseNumber()
	return dec.Decode(v)
}

func (r *Registry) handleInitialize(ctx context.Context, id any, params json.RawMessage) MCPResponse {
	return result(id, map[string]any{
		"protocolVersion": model.MCPVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    r.config.ServerInfo.Name,
			"version": r.config.ServerInfo.Version,
		},
	})
}

func (r *Registry) handleToolsList(ctx context.Context, id any, params json.RawMessage) MCPResponse {
	tools, err := r.ListAll(ctx)
	if err != nil {
		return failure(id, &MCPError{Code: ErrCodeInternal, Message: err.Error()})
	}

	mcpTools := make([]map[string]any, 0, len(tools))
	for _, tool := range tools {
		mcpTools = append(mcpTools, toMCPTool(tool))
	}
	return result(id, map[string]any{"tools": mcpTools})
}

type toolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func (r *Registry) handleToolsCall(ctx context.Context, id any, params json.RawMessage) MCPResponse {
	var callParams toolsCallParams
	if err := decodeParams(params, &callParams); err != nil {
		return failure(id, &MCPError{Code: ErrCodeInvalidParams, Message: err.Error()})
	}
	if callParams.Name == "" {
		return failure(id, &MCPError{Code: ErrCodeInvalidParams, Message: "tool name is required"})
	}

	ctx = dispatch.WithRequestID(ctx, fmt.Sprint(id))
	res, err := r.Execute(ctx, callParams.Name, callParams.Arguments)
	if err != nil {
		return failure(id, execError(err))
	}
	return result(id, res)
}

type toolsSearchParams struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func (r *Registry) handleToolsSearch(ctx context.Context, id any, params json.RawMessage) MCPResponse {
	var p toolsSearchParams
	if err := decodeParams(params, &p); err != nil {
		return failure(id, &MCPError{Code: ErrCodeInvalidParams, Message: err.Error()})
	}
	if p.Limit <= 0 {
		p.Limit = defaultSearchLimit
	}
	summaries, err := r.SearchSummaries(ctx, p.Query, p.Limit)
	if err != nil {
		return failure(id, &MCPError{Code: ErrCodeInternal, Message: err.Error()})
	}
	if summaries == nil {
		summaries = []index.Summary{}
	}
	return result(id, map[string]any{"tools": summaries})
}

type toolsBatchParams struct {
	Calls []BatchCall `json:"calls"`
}

type batchEntry struct {
	Name   string    `json:"name"`
	Result any       `json:"result,omitempty"`
	Error  *MCPError `json:"error,omitempty"`
}

func (r *Registry) handleToolsBatch(ctx context.Context, id any, params json.RawMessage) MCPResponse {
	var p toolsBatchParams
	if err := decodeParams(params, &p); err != nil {
		return failure(id, &MCPError{Code: ErrCodeInvalidParams, Message: err.Error()})
	}

	results := r.ExecuteBatch(ctx, p.Calls)
	entries := make([]batchEntry, len(results))
	for i, res := range results {
		entries[i] = batchEntry{Name: res.Name, Result: res.Result}
		if res.Err != nil {
			entries[i].Error = execError(res.Err)
		}
	}
	return result(id, map[string]any{"results": entries})
}

type toolsDescribeParams struct {
	Name  string              `json:"name"`
	Level tooldoc.DetailLevel `json:"level"`
}

func (r *Registry) handleToolsDescribe(ctx context.Context, id any, params json.RawMessage) MCPResponse {
	var p toolsDescribeParams
	if err := decodeParams(params, &p); err != nil {
		return failure(id, &MCPError{Code: ErrCodeInvalidParams, Message: err.Error()})
	}
	if p.Level == "" {
		p.Level = tooldoc.DetailSummary
	}
	doc, err := r.DescribeTool(ctx, p.Name, p.Level)
	if err != nil {
		return failure(id, docError(err))
	}
	return result(id, doc)
}

type toolsExamplesParams struct {
	Name string `json:"name"`
	Max  int    `json:"max"`
}

func (r *Registry) handleToolsExamples(ctx context.Context, id any, params json.RawMessage) MCPResponse {
	var p toolsExamplesParams
	if err := decodeParams(params, &p); err != nil {
		return failure(id, &MCPError{Code: ErrCodeInvalidParams, Message: err.Error()})
	}
	examples, err := r.ListExamples(ctx, p.Name, p.Max)
	if err != nil {
		return failure(id, docError(err))
	}
	return result(id, map[string]any{"examples": examples})
}

func docError(err error) *MCPError {
	code := ErrCodeInternal
	switch {
	case errors.Is(err, ErrToolNotFound), errors.Is(err, tooldoc.ErrNotFound):
		code = ErrCodeToolNotFound
	case errors.Is(err, tooldoc.ErrInvalidDetail):
		code = ErrCodeInvalidParams
	}
	return &MCPError{Code: code, Message: err.Error()}
}

func toMCPTool(tool model.Tool) map[string]any {
	out := map[string]any{
		"name":        tool.ToolID(),
		"description": tool.Description,
		"inputSchema": tool.InputSchema,
	}
	if tool.Title != "" {
		out["title"] = tool.Title
	}
	if tool.Annotations != nil {
		out["annotations"] = tool.Annotations
	}
	return out
}
