package registry

import (
	"errors"

	"github.com/jonwraymond/toolalgo/dispatch"
	"github.com/jonwraymond/toolalgo/sorting"
)

// Sentinel errors for consistent error handling.
var (
	ErrNotStarted      = errors.New("registry: not started")
	ErrAlreadyStarted  = errors.New("registry: already started")
	ErrToolNotFound    = errors.New("registry: tool not found")
	ErrBackendNotFound = errors.New("registry: backend not found")
	ErrHandlerNotFound = errors.New("registry: handler not found")
	ErrExecutionFailed = errors.New("registry: tool execution failed")
	ErrInvalidRequest  = errors.New("registry: invalid request")
)

// MCP JSON-RPC 2.0 error codes.
const (
	ErrCodeParseError     = -32700
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternal       = -32603
	ErrCodeToolNotFound   = -32001
	ErrCodeToolExecFailed = -32002
)

// errorCode maps an Execute error onto a JSON-RPC code.
func errorCode(err error) int {
	switch {
	case errors.Is(err, ErrToolNotFound), errors.Is(err, dispatch.ErrUnknownOperation):
		return ErrCodeToolNotFound
	case errors.Is(err, dispatch.ErrInvalidParams):
		return ErrCodeInvalidParams
	default:
		return ErrCodeToolExecFailed
	}
}

// errorData exposes structured details for domain violations.
func errorData(err error) any {
	var de *sorting.DomainError
	if !errors.As(err, &de) {
		return nil
	}
	return map[string]any{
		"routine": de.Routine,
		"index":   de.Index,
		"value":   de.Value,
		"reason":  de.Reason,
	}
}
