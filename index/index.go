package index

import (
	"errors"

	"github.com/jonwraymond/toolfoundation/model"
)

// Error values for index operations.
var (
	ErrNotFound       = errors.New("index: tool not found")
	ErrInvalidTool    = errors.New("index: invalid tool")
	ErrInvalidBackend = errors.New("index: invalid backend")
	ErrAmbiguousName  = errors.New("index: tool name matches several namespaces")
)

// MaxShortDescriptionLen bounds Summary.ShortDescription.
const MaxShortDescriptionLen = 120

// Summary is the lightweight view of a tool returned by searches.
type Summary struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Namespace        string   `json:"namespace,omitempty"`
	ShortDescription string   `json:"shortDescription,omitempty"`
	Tags             []string `json:"tags,omitempty"`
}

// SearchDoc is what a Searcher ranks: the summary plus flattened text.
type SearchDoc struct {
	ID      string
	DocText string
	Summary Summary
}

// Searcher ranks docs against a query. Implementations must treat an empty
// query as "list everything" and break score ties by ID.
type Searcher interface {
	Search(query string, limit int, docs []SearchDoc) ([]Summary, error)
}

// BackendSelector picks the backend used to execute a tool.
type BackendSelector func([]model.ToolBackend) model.ToolBackend

// ToolRegistration pairs a tool with one of its backends.
type ToolRegistration struct {
	Tool    model.Tool
	Backend model.ToolBackend
}

// ChangeType classifies a ChangeEvent.
type ChangeType int

// Change types.
const (
	ChangeRegistered ChangeType = iota + 1
	ChangeUpdated
	ChangeBackendRemoved
	ChangeToolRemoved
)

func (c ChangeType) String() string {
	switch c {
	case ChangeRegistered:
		return "registered"
	case ChangeUpdated:
		return "updated"
	case ChangeBackendRemoved:
		return "backend_removed"
	case ChangeToolRemoved:
		return "tool_removed"
	default:
		return "unknown"
	}
}

// ChangeEvent reports a mutation of the index.
type ChangeEvent struct {
	Type    ChangeType
	ToolID  string
	Version uint64
}

// ChangeListener receives change events synchronously, after the index lock
// is released.
type ChangeListener func(ChangeEvent)

// IndexOptions configures an InMemoryIndex.
type IndexOptions struct {
	Searcher        Searcher
	BackendSelector BackendSelector
}
