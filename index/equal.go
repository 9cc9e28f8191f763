package index

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// sameMCPShape reports whether a and b describe the same MCP tool. Schemas
// compare by JSON value, so a map and an equivalent json.RawMessage match.
func sameMCPShape(a, b model.Tool) bool {
	if a.Name != b.Name || a.Title != b.Title || a.Description != b.Description {
		return false
	}
	if !jsonEqual(a.InputSchema, b.InputSchema) || !jsonEqual(a.OutputSchema, b.OutputSchema) {
		return false
	}
	return jsonEqual(annotationsOf(a.Tool), annotationsOf(b.Tool)) && jsonEqual(a.Icons, b.Icons)
}

func annotationsOf(t mcp.Tool) any {
	if t.Annotations == nil {
		return nil
	}
	return t.Annotations
}

func jsonEqual(a, b any) bool {
	av, aok := normalizeJSON(a)
	bv, bok := normalizeJSON(b)
	if !aok || !bok {
		return reflect.DeepEqual(a, b)
	}
	return reflect.DeepEqual(av, bv)
}

func normalizeJSON(v any) (any, bool) {
	var raw []byte
	switch x := v.(type) {
	case nil:
		return nil, true
	case json.RawMessage:
		raw = x
	case []byte:
		raw = x
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return nil, false
		}
		raw = b
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, true
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}
