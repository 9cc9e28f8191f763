package catalog

import (
	"strings"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// JSONSchema renders the JSON schema of a value of kind k.
func (k Kind) JSONSchema() map[string]any {
	switch k {
	case KindNumber:
		return map[string]any{"type": "number"}
	case KindInteger:
		return map[string]any{"type": "integer"}
	case KindNumbers:
		return map[string]any{"type": "array", "items": map[string]any{"type": "number"}}
	case KindIntegers:
		return map[string]any{"type": "array", "items": map[string]any{"type": "integer"}}
	case KindTree:
		return map[string]any{
			"type": "array",
			"items": map[string]any{
				"anyOf": []any{
					map[string]any{"type": "number"},
					map[string]any{"type": "array"},
				},
			},
		}
	default:
		return map[string]any{}
	}
}

// InputSchema renders the operation's inputs as a JSON-schema object that
// rejects unknown properties.
func (op Operation) InputSchema() map[string]any {
	props := make(map[string]any, len(op.Inputs))
	required := make([]string, 0, len(op.Inputs))
	for _, p := range op.Inputs {
		s := p.Kind.JSONSchema()
		if p.Description != "" {
			s["description"] = p.Description
		}
		props[p.Name] = s
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schema := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Tool builds the MCP tool published for op under namespace (may be empty).
func (op Operation) Tool(namespace string) model.Tool {
	desc := op.Description
	if op.Notes != "" {
		desc = strings.TrimSpace(desc + " " + op.Notes)
	}
	tags := append([]string{string(op.Category)}, op.Tags...)
	return model.Tool{
		Tool: mcp.Tool{
			Name:        op.Name,
			Title:       op.Title,
			Description: desc,
			InputSchema: op.InputSchema(),
			Annotations: &mcp.ToolAnnotations{
				Title:          op.Title,
				ReadOnlyHint:   true,
				IdempotentHint: op.Name != "binarysearch",
			},
		},
		Namespace: namespace,
		Tags:      model.NormalizeTags(tags),
	}
}
