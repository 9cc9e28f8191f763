package registry

import (
	"context"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolHandler executes a local tool. args is the decoded "arguments" object
// of the call; JSON numbers arrive as json.Number.
type ToolHandler func(ctx context.Context, args map[string]any) (any, error)

// LocalToolOption configures local tool registration.
type LocalToolOption func(*localToolConfig)

type localToolConfig struct {
	namespace string
	title     string
	tags      []string
	version   string
	readOnly  bool
}

// WithNamespace sets the namespace for a local tool.
func WithNamespace(ns string) LocalToolOption {
	return func(c *localToolConfig) {
		c.namespace = ns
	}
}

// WithTitle sets the display title for a local tool.
func WithTitle(title string) LocalToolOption {
	return func(c *localToolConfig) {
		c.title = title
	}
}

// WithTags sets the tags for a local tool.
func WithTags(tags ...string) LocalToolOption {
	return func(c *localToolConfig) {
		c.tags = tags
	}
}

// WithVersion sets the version for a local tool.
func WithVersion(v string) LocalToolOption {
	return func(c *localToolConfig) {
		c.version = v
	}
}

// ReadOnly marks a local tool as free of side effects.
func ReadOnly() LocalToolOption {
	return func(c *localToolConfig) {
		c.readOnly = true
	}
}

func applyLocalToolOptions(opts []LocalToolOption) localToolConfig {
	cfg := localToolConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func buildLocalTool(name, description string, inputSchema map[string]any, cfg localToolConfig) model.Tool {
	if inputSchema == nil {
		inputSchema = map[string]any{"type": "object"}
	}
	tool := model.Tool{
		Tool: mcp.Tool{
			Name:        name,
			Title:       cfg.title,
			Description: description,
			InputSchema: inputSchema,
		},
		Namespace: cfg.namespace,
		Version:   cfg.version,
		Tags:      model.NormalizeTags(cfg.tags),
	}
	if cfg.readOnly {
		tool.Annotations = &mcp.ToolAnnotations{ReadOnlyHint: true}
	}
	return tool
}
