package tooldoc

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jonwraymond/toolfoundation/model"
)

// Error values.
var (
	ErrNotFound      = errors.New("tooldoc: not found")
	ErrNoTool        = errors.New("tooldoc: tool not resolvable")
	ErrInvalidDetail = errors.New("tooldoc: invalid detail level")
	ErrArgsTooLarge  = errors.New("tooldoc: example args too large")
)

// Caps applied to registered docs.
const (
	MaxSummaryLen      = 200
	MaxArgsDepth       = 5
	MaxArgsKeys        = 50
	DefaultMaxExamples = 3
)

// DetailLevel selects how much documentation DescribeTool returns.
type DetailLevel string

// Detail levels, cheapest first.
const (
	DetailSummary DetailLevel = "summary"
	DetailSchema  DetailLevel = "schema"
	DetailFull    DetailLevel = "full"
)

// Valid reports whether l is a known level.
func (l DetailLevel) Valid() bool {
	switch l {
	case DetailSummary, DetailSchema, DetailFull:
		return true
	}
	return false
}

// ToolExample is one worked call.
type ToolExample struct {
	ID          string         `json:"id,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Args        map[string]any `json:"args"`
	ResultHint  string         `json:"resultHint,omitempty"`
}

// DocEntry is human-authored documentation for one tool.
type DocEntry struct {
	Summary      string        `json:"summary,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	Examples     []ToolExample `json:"examples,omitempty"`
	ExternalRefs []string      `json:"externalRefs,omitempty"`
}

// ValidateAndTruncate returns a copy with Summary and example descriptions
// cut to MaxSummaryLen bytes on a rune boundary.
func (e DocEntry) ValidateAndTruncate() DocEntry {
	out := e
	out.Summary = truncate(e.Summary, MaxSummaryLen)
	if len(e.Examples) > 0 {
		out.Examples = make([]ToolExample, len(e.Examples))
		for i, ex := range e.Examples {
			ex.Description = truncate(ex.Description, MaxSummaryLen)
			out.Examples[i] = ex
		}
	}
	return out
}

// SchemaInfo is a digest of an object input schema.
type SchemaInfo struct {
	Required []string            `json:"required,omitempty"`
	Defaults map[string]any      `json:"defaults,omitempty"`
	Types    map[string][]string `json:"types,omitempty"`
}

// ToolDoc is the result of DescribeTool. Fields beyond Summary are filled
// according to the requested level.
type ToolDoc struct {
	ID           string        `json:"id"`
	Level        DetailLevel   `json:"level"`
	Summary      string        `json:"summary"`
	Tool         *model.Tool   `json:"tool,omitempty"`
	SchemaInfo   *SchemaInfo   `json:"schemaInfo,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	Examples     []ToolExample `json:"examples,omitempty"`
	ExternalRefs []string      `json:"externalRefs,omitempty"`
}

// Index is the subset of index.Index the store resolves tools through.
type Index interface {
	GetTool(id string) (model.Tool, model.ToolBackend, error)
}

// StoreOptions configures an InMemoryStore. ToolResolver wins over Index
// when both are set.
type StoreOptions struct {
	Index        Index
	ToolResolver func(id string) (*model.Tool, error)
	// MaxExamples caps examples returned; defaults to DefaultMaxExamples.
	MaxExamples int
}

// InMemoryStore holds doc entries keyed by tool ID.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[string]DocEntry
	opts StoreOptions
}

// NewInMemoryStore returns an empty store.
func NewInMemoryStore(opts StoreOptions) *InMemoryStore {
	if opts.MaxExamples <= 0 {
		opts.MaxExamples = DefaultMaxExamples
	}
	return &InMemoryStore{docs: make(map[string]DocEntry), opts: opts}
}

// RegisterDoc stores entry for id, replacing any previous entry.
func (s *InMemoryStore) RegisterDoc(id string, entry DocEntry) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty tool id", ErrNotFound)
	}
	if err := checkExamples(entry.Examples); err != nil {
		return err
	}
	entry = entry.ValidateAndTruncate()
	entry.Examples = copyExamples(entry.Examples)
	entry.ExternalRefs = append([]string(nil), entry.ExternalRefs...)

	s.mu.Lock()
	s.docs[id] = entry
	s.mu.Unlock()
	return nil
}

// RegisterExamples replaces the examples of id, creating an entry if needed.
func (s *InMemoryStore) RegisterExamples(id string, examples []ToolExample) error {
	if err := checkExamples(examples); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.docs[id]
	entry.Examples = copyExamples(examples)
	s.docs[id] = entry.ValidateAndTruncate()
	return nil
}

// DescribeTool returns documentation for id at the given level.
func (s *InMemoryStore) DescribeTool(id string, level DetailLevel) (ToolDoc, error) {
	if !level.Valid() {
		return ToolDoc{}, fmt.Errorf("%w: %q", ErrInvalidDetail, level)
	}

	s.mu.RLock()
	entry, hasDoc := s.docs[id]
	s.mu.RUnlock()
	tool, toolErr := s.resolve(id)

	if !hasDoc && toolErr != nil {
		return ToolDoc{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	doc := ToolDoc{ID: id, Level: level, Summary: entry.Summary}
	if doc.Summary == "" && tool != nil {
		doc.Summary = truncate(firstLine(tool.Description), MaxSummaryLen)
	}
	if level == DetailSummary {
		return doc, nil
	}

	if toolErr != nil {
		return ToolDoc{}, fmt.Errorf("%w: %s: %v", ErrNoTool, id, toolErr)
	}
	doc.Tool = tool
	doc.SchemaInfo = deriveSchemaInfo(tool.InputSchema)
	if level == DetailSchema {
		return doc, nil
	}

	doc.Notes = entry.Notes
	doc.Examples = s.capExamples(entry.Examples, s.opts.MaxExamples)
	doc.ExternalRefs = append([]string(nil), entry.ExternalRefs...)
	return doc, nil
}

// ListExamples returns up to min(max, MaxExamples) examples for id.
func (s *InMemoryStore) ListExamples(id string, max int) ([]ToolExample, error) {
	s.mu.RLock()
	entry, ok := s.docs[id]
	s.mu.RUnlock()
	if !ok {
		if _, err := s.resolve(id); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return []ToolExample{}, nil
	}
	limit := s.opts.MaxExamples
	if max > 0 && max < limit {
		limit = max
	}
	return s.capExamples(entry.Examples, limit), nil
}

func (s *InMemoryStore) capExamples(examples []ToolExample, limit int) []ToolExample {
	if len(examples) > limit {
		examples = examples[:limit]
	}
	return copyExamples(examples)
}

func (s *InMemoryStore) resolve(id string) (*model.Tool, error) {
	if s.opts.ToolResolver != nil {
		return s.opts.ToolResolver(id)
	}
	if s.opts.Index != nil {
		tool, _, err := s.opts.Index.GetTool(id)
		if err != nil {
			return nil, err
		}
		return &tool, nil
	}
	return nil, ErrNoTool
}

func checkExamples(examples []ToolExample) error {
	for i, ex := range examples {
		if stats, ok := ValidateArgs(ex.Args); !ok {
			return fmt.Errorf("%w: example %d (%q): depth %d, keys %d", ErrArgsTooLarge, i, ex.Title, stats.Depth, stats.Keys)
		}
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
