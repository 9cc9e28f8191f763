package index

import (
	"fmt"
	"strings"

	"github.com/jonwraymond/toolfoundation/model"
)

// DefaultBackendSelector prefers local handlers, then providers, then MCP
// servers, keeping registration order within a kind.
func DefaultBackendSelector(backends []model.ToolBackend) model.ToolBackend {
	best := -1
	for i, b := range backends {
		if best < 0 || backendPriority(b.Kind) < backendPriority(backends[best].Kind) {
			best = i
		}
	}
	if best < 0 {
		return model.ToolBackend{}
	}
	return backends[best]
}

func backendPriority(kind model.BackendKind) int {
	switch kind {
	case model.BackendKindLocal:
		return 0
	case model.BackendKindProvider:
		return 1
	case model.BackendKindMCP:
		return 2
	default:
		return 3
	}
}

func validateBackend(b model.ToolBackend) error {
	switch b.Kind {
	case model.BackendKindLocal:
		if b.Local == nil || strings.TrimSpace(b.Local.Name) == "" {
			return fmt.Errorf("%w: local backend requires a name", ErrInvalidBackend)
		}
	case model.BackendKindMCP:
		if b.MCP == nil || strings.TrimSpace(b.MCP.ServerName) == "" {
			return fmt.Errorf("%w: mcp backend requires a server name", ErrInvalidBackend)
		}
	case model.BackendKindProvider:
		if b.Provider == nil || b.Provider.ProviderID == "" || b.Provider.ToolID == "" {
			return fmt.Errorf("%w: provider backend requires provider and tool ids", ErrInvalidBackend)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidBackend, b.Kind)
	}
	return nil
}

// backendKey identifies a backend within one tool. The kind prefix and
// length-prefixed provider parts keep distinct backends from colliding.
type backendKey struct {
	kind model.BackendKind
	id   string
}

func keyOf(b model.ToolBackend) backendKey {
	switch b.Kind {
	case model.BackendKindLocal:
		return backendKey{b.Kind, b.Local.Name}
	case model.BackendKindMCP:
		return backendKey{b.Kind, b.MCP.ServerName}
	case model.BackendKindProvider:
		return backendKey{b.Kind, providerID(b.Provider.ProviderID, b.Provider.ToolID)}
	}
	return backendKey{kind: b.Kind}
}

func providerID(provider, tool string) string {
	return fmt.Sprintf("%d:%s:%s", len(provider), provider, tool)
}

// ProviderBackendID formats the backendID UnregisterBackend expects for a
// provider backend.
func ProviderBackendID(provider, tool string) string {
	return providerID(provider, tool)
}
