// Package registry serves toolalgo operations as MCP tools.
//
// Registry combines the operation catalog, the dispatcher, the tool index
// and its lexical searcher, and optional remote MCP backends into a single
// server surface.
//
// Features:
//   - Local tools: every dispatcher operation, plus ad-hoc handlers
//   - Remote MCP backends (streamable HTTP, SSE, stdio) whose tools are
//     imported under the backend name and proxied on call
//   - Ranked tool search
//   - Progressive docs per tool (summary, schema, full) with worked examples
//   - JSON-RPC methods: initialize, ping, tools/list, tools/call,
//     tools/search, tools/batch, tools/describe, tools/examples
//   - Transports: stdio, HTTP (optionally rate limited), SSE, and a go-sdk
//     server for streamable HTTP clients
//
// Example usage:
//
//	reg := registry.New(registry.Config{
//	    ServerInfo: registry.ServerInfo{Name: "toolalgo", Version: "1.0.0"},
//	})
//	if err := reg.RegisterDispatcher(dispatch.New(), ""); err != nil {
//	    return err
//	}
//
//	ctx := context.Background()
//	if err := reg.Start(ctx); err != nil {
//	    return err
//	}
//	defer reg.Close()
//
//	out, err := reg.Execute(ctx, "quicksort", map[string]any{
//	    "numbers": []any{3.0, 1.0, 2.0},
//	})
//
// # Errors
//
// tools/call maps failures onto JSON-RPC codes: unknown tools -32001,
// invalid arguments -32602, and every other failure, domain violations
// included, -32002. Domain violations carry routine, index, value and
// reason in the error data.
package registry
