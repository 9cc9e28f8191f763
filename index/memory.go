package index

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/jonwraymond/toolfoundation/model"
)

type toolEntry struct {
	tool     model.Tool
	backends []model.ToolBackend
}

// InMemoryIndex stores tools and their backends in memory. It is safe for
// concurrent use.
type InMemoryIndex struct {
	mu       sync.RWMutex
	tools    map[string]*toolEntry
	searcher Searcher
	selector BackendSelector
	version  uint64

	docs      []SearchDoc
	docsDirty bool

	listenerMu sync.RWMutex
	listeners  map[int]ChangeListener
	nextID     int
}

// NewInMemoryIndex creates an empty index. Only the first IndexOptions value
// is used.
func NewInMemoryIndex(opts ...IndexOptions) *InMemoryIndex {
	var o IndexOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Searcher == nil {
		o.Searcher = NewTermSearcher()
	}
	if o.BackendSelector == nil {
		o.BackendSelector = DefaultBackendSelector
	}
	return &InMemoryIndex{
		tools:     make(map[string]*toolEntry),
		searcher:  o.Searcher,
		selector:  o.BackendSelector,
		docsDirty: true,
		listeners: make(map[int]ChangeListener),
	}
}

// RegisterTool adds tool with backend, or adds backend to an existing tool.
// Re-registering a tool under a known backend replaces the tool's metadata;
// a different backend must describe the same MCP tool.
func (idx *InMemoryIndex) RegisterTool(tool model.Tool, backend model.ToolBackend) error {
	ev, err := idx.register(tool, backend)
	if err != nil {
		return err
	}
	idx.emit(ev)
	return nil
}

// RegisterTools registers each entry in order and stops at the first error.
func (idx *InMemoryIndex) RegisterTools(regs []ToolRegistration) error {
	for _, reg := range regs {
		if err := idx.RegisterTool(reg.Tool, reg.Backend); err != nil {
			return fmt.Errorf("register %s: %w", reg.Tool.ToolID(), err)
		}
	}
	return nil
}

// RegisterToolsFromMCP registers tools served by the MCP server serverName.
// Tools without a namespace are placed under serverName.
func (idx *InMemoryIndex) RegisterToolsFromMCP(serverName string, tools []model.Tool) error {
	backend := model.NewMCPBackend(serverName)
	regs := make([]ToolRegistration, 0, len(tools))
	for _, t := range tools {
		if t.Namespace == "" {
			t.Namespace = serverName
		}
		regs = append(regs, ToolRegistration{Tool: t, Backend: backend})
	}
	return idx.RegisterTools(regs)
}

func (idx *InMemoryIndex) register(tool model.Tool, backend model.ToolBackend) (ChangeEvent, error) {
	if err := tool.Validate(); err != nil {
		return ChangeEvent{}, fmt.Errorf("%w: %v", ErrInvalidTool, err)
	}
	if err := validateBackend(backend); err != nil {
		return ChangeEvent{}, err
	}
	tool.Tags = model.NormalizeTags(tool.Tags)
	id := tool.ToolID()

	idx.mu.Lock()
	defer idx.mu.Unlock()

	entry, ok := idx.tools[id]
	if !ok {
		idx.tools[id] = &toolEntry{tool: tool, backends: []model.ToolBackend{backend}}
		return idx.bumpLocked(ChangeRegistered, id), nil
	}

	key := keyOf(backend)
	for i, b := range entry.backends {
		if keyOf(b) == key {
			entry.backends[i] = backend
			entry.tool = tool
			return idx.bumpLocked(ChangeUpdated, id), nil
		}
	}
	if !sameMCPShape(entry.tool, tool) {
		return ChangeEvent{}, fmt.Errorf("%w: %s is registered with different MCP fields", ErrInvalidTool, id)
	}
	entry.backends = append(entry.backends, backend)
	entry.tool.Tags = tool.Tags
	return idx.bumpLocked(ChangeUpdated, id), nil
}

// UnregisterBackend removes one backend from a tool; the tool goes away with
// its last backend. For provider backends, backendID is ProviderBackendID.
func (idx *InMemoryIndex) UnregisterBackend(toolID string, kind model.BackendKind, backendID string) error {
	want := backendKey{kind: kind, id: backendID}

	idx.mu.Lock()
	entry, ok := idx.tools[toolID]
	if !ok {
		idx.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, toolID)
	}
	pos := slices.IndexFunc(entry.backends, func(b model.ToolBackend) bool { return keyOf(b) == want })
	if pos < 0 {
		idx.mu.Unlock()
		return fmt.Errorf("%w: %s has no %s backend %q", ErrNotFound, toolID, kind, backendID)
	}
	entry.backends = slices.Delete(entry.backends, pos, pos+1)
	var ev ChangeEvent
	if len(entry.backends) == 0 {
		delete(idx.tools, toolID)
		ev = idx.bumpLocked(ChangeToolRemoved, toolID)
	} else {
		ev = idx.bumpLocked(ChangeBackendRemoved, toolID)
	}
	idx.mu.Unlock()

	idx.emit(ev)
	return nil
}

// GetTool returns a tool and its selected backend. id is either a full tool
// ID or a bare name that is unique across namespaces.
func (idx *InMemoryIndex) GetTool(id string) (model.Tool, model.ToolBackend, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	entry, err := idx.resolveLocked(id)
	if err != nil {
		return model.Tool{}, model.ToolBackend{}, err
	}
	return entry.tool, idx.selector(slices.Clone(entry.backends)), nil
}

// GetAllBackends returns every backend registered for id.
func (idx *InMemoryIndex) GetAllBackends(id string) ([]model.ToolBackend, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	entry, err := idx.resolveLocked(id)
	if err != nil {
		return nil, err
	}
	return slices.Clone(entry.backends), nil
}

func (idx *InMemoryIndex) resolveLocked(id string) (*toolEntry, error) {
	if entry, ok := idx.tools[id]; ok {
		return entry, nil
	}
	if strings.Contains(id, ":") {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	var found *toolEntry
	for _, entry := range idx.tools {
		if entry.tool.Name != id {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousName, id)
		}
		found = entry
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return found, nil
}

// Search ranks tools against query with the configured Searcher.
func (idx *InMemoryIndex) Search(query string, limit int) ([]Summary, error) {
	return idx.searcher.Search(query, limit, idx.searchDocs())
}

// searchDocs returns the doc snapshot, rebuilding it after mutations.
func (idx *InMemoryIndex) searchDocs() []SearchDoc {
	idx.mu.RLock()
	if !idx.docsDirty {
		docs := idx.docs
		idx.mu.RUnlock()
		return docs
	}
	idx.mu.RUnlock()

	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.docsDirty {
		idx.docs = idx.buildDocsLocked()
		idx.docsDirty = false
	}
	return idx.docs
}

func (idx *InMemoryIndex) buildDocsLocked() []SearchDoc {
	docs := make([]SearchDoc, 0, len(idx.tools))
	for id, entry := range idx.tools {
		docs = append(docs, SearchDoc{
			ID:      id,
			DocText: docText(entry.tool),
			Summary: summarize(id, entry.tool),
		})
	}
	slices.SortFunc(docs, func(a, b SearchDoc) int { return strings.Compare(a.ID, b.ID) })
	return docs
}

func summarize(id string, t model.Tool) Summary {
	return Summary{
		ID:               id,
		Name:             t.Name,
		Namespace:        t.Namespace,
		ShortDescription: truncate(t.Description, MaxShortDescriptionLen),
		Tags:             slices.Clone(t.Tags),
	}
}

func docText(t model.Tool) string {
	parts := []string{t.Name, t.Namespace, t.Title, t.Description}
	parts = append(parts, t.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// ListNamespaces returns the sorted set of namespaces, including "" when
// un-namespaced tools exist.
func (idx *InMemoryIndex) ListNamespaces() ([]string, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, entry := range idx.tools {
		seen[entry.tool.Namespace] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for ns := range seen {
		out = append(out, ns)
	}
	slices.Sort(out)
	return out, nil
}

// Len returns the number of tools.
func (idx *InMemoryIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.tools)
}

// Version increases with every mutation.
func (idx *InMemoryIndex) Version() uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.version
}

// Refresh discards cached search docs and returns the new version.
func (idx *InMemoryIndex) Refresh() uint64 {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.docsDirty = true
	idx.version++
	return idx.version
}

// OnChange subscribes l to change events and returns its unsubscribe func.
func (idx *InMemoryIndex) OnChange(l ChangeListener) func() {
	if l == nil {
		return func() {}
	}
	idx.listenerMu.Lock()
	id := idx.nextID
	idx.nextID++
	idx.listeners[id] = l
	idx.listenerMu.Unlock()

	return func() {
		idx.listenerMu.Lock()
		delete(idx.listeners, id)
		idx.listenerMu.Unlock()
	}
}

func (idx *InMemoryIndex) bumpLocked(t ChangeType, id string) ChangeEvent {
	idx.version++
	idx.docsDirty = true
	return ChangeEvent{Type: t, ToolID: id, Version: idx.version}
}

func (idx *InMemoryIndex) emit(ev ChangeEvent) {
	idx.listenerMu.RLock()
	ids := make([]int, 0, len(idx.listeners))
	for id := range idx.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	ls := make([]ChangeListener, 0, len(ids))
	for _, id := range ids {
		ls = append(ls, idx.listeners[id])
	}
	idx.listenerMu.RUnlock()

	for _, l := range ls {
		l(ev)
	}
}
