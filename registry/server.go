package registry

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/time/rate"
)

// maxMessageBytes bounds one JSON-RPC message on every transport.
const maxMessageBytes = 16 << 20

// ServeStdio runs the registry as an MCP server over stdio.
// Blocks until stdin is closed or context is cancelled.
func ServeStdio(ctx context.Context, r *Registry) error {
	return ServeStream(ctx, r, os.Stdin, os.Stdout)
}

// ServeStream serves newline-delimited JSON-RPC requests read from in,
// writing one response line per request to out.
func ServeStream(ctx context.Context, r *Registry, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageBytes)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if len(scanner.Bytes()) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			resp := failure(nil, &MCPError{Code: ErrCodeParseError, Message: err.Error()})
			if err := encoder.Encode(resp); err != nil {
				return fmt.Errorf("failed to encode error response: %w", err)
			}
			continue
		}

		resp := r.HandleRequest(ctx, req)
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("failed to encode response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// HTTPOption configures the HTTP and SSE handlers.
type HTTPOption func(*httpConfig)

type httpConfig struct {
	limiter *rate.Limiter
}

// WithRateLimiter rejects requests with 429 once l has no tokens left.
func WithRateLimiter(l *rate.Limiter) HTTPOption {
	return func(c *httpConfig) {
		c.limiter = l
	}
}

func applyHTTPOptions(opts []HTTPOption) httpConfig {
	var c httpConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c httpConfig) allow(w http.ResponseWriter) bool {
	if c.limiter == nil || c.limiter.Allow() {
		return true
	}
	w.Header().Set("Retry-After", "1")
	http.Error(w, "Too many requests", http.StatusTooManyRequests)
	return false
}

// ServeHTTP returns an http.Handler for streamable HTTP transport.
// Handles POST requests with JSON-RPC bodies, returns JSON responses.
func ServeHTTP(r *Registry, opts ...HTTPOption) http.Handler {
	cfg := applyHTTPOptions(opts)
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if !cfg.allow(w) {
			return
		}

		var mcpReq MCPRequest
		body := http.MaxBytesReader(w, req.Body, maxMessageBytes)
		if err := json.NewDecoder(body).Decode(&mcpReq); err != nil {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(failure(nil, &MCPError{Code: ErrCodeParseError, Message: err.Error()}))
			return
		}

		resp := r.HandleRequest(req.Context(), mcpReq)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
}

// ServeSSE returns an http.Handler for Server-Sent Events transport.
// Clients POST a request and receive the response as one SSE event.
func ServeSSE(r *Registry, opts ...HTTPOption) http.Handler {
	cfg := applyHTTPOptions(opts)
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !cfg.allow(w) {
			return
		}
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		var mcpReq MCPRequest
		body := http.MaxBytesReader(w, req.Body, maxMessageBytes)
		if err := json.NewDecoder(body).Decode(&mcpReq); err != nil {
			writeSSEEvent(w, flusher, "error", failure(nil, &MCPError{Code: ErrCodeParseError, Message: err.Error()}))
			return
		}

		resp := r.HandleRequest(req.Context(), mcpReq)
		writeSSEEvent(w, flusher, "message", resp)
	})
}

func writeSSEEvent(w http.ResponseWriter, f http.Flusher, event string, data any) {
	jsonData, _ := json.Marshal(data)
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return
	}
	f.Flush()
}
