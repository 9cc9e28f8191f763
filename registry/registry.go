package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/jonwraymond/toolfoundation/model"

	"github.com/jonwraymond/toolalgo/dispatch"
	"github.com/jonwraymond/toolalgo/index"
	"github.com/jonwraymond/toolalgo/lexical"
	"github.com/jonwraymond/toolalgo/tooldoc"
)

// Config configures a Registry.
type Config struct {
	ServerInfo ServerInfo
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Searcher ranks tools for Search; defaults to a lexical.Searcher.
	Searcher        index.Searcher
	BackendSelector index.BackendSelector
	// BatchWorkers bounds ExecuteBatch concurrency; defaults to GOMAXPROCS.
	BatchWorkers int
}

// ServerInfo describes this MCP server for initialize response.
type ServerInfo struct {
	Name    string
	Version string
}

// Registry is a high-level MCP tool registry with built-in search,
// local tool registration, and MCP backend connection.
type Registry struct {
	mu       sync.RWMutex
	index    *index.InMemoryIndex
	searcher index.Searcher
	docs     *tooldoc.InMemoryStore
	config   Config
	logger   *slog.Logger
	pool     pond.Pool

	handlers map[string]ToolHandler
	aliases  map[string]string
	backends map[string]*mcpBackend

	started bool
	stopCh  chan struct{}
}

// New creates a new Registry with the given config.
func New(cfg Config) *Registry {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = runtime.GOMAXPROCS(0)
	}
	searcher := cfg.Searcher
	if searcher == nil {
		searcher = lexical.NewSearcher(lexical.Config{})
	}

	idx := index.NewInMemoryIndex(index.IndexOptions{
		Searcher:        searcher,
		BackendSelector: cfg.BackendSelector,
	})

	return &Registry{
		index:    idx,
		searcher: searcher,
		docs:     tooldoc.NewInMemoryStore(tooldoc.StoreOptions{Index: idx}),
		config:   cfg,
		logger:   cfg.Logger.With("component", "registry"),
		pool:     pond.NewPool(cfg.BatchWorkers),
		handlers: make(map[string]ToolHandler),
		aliases:  make(map[string]string),
		backends: make(map[string]*mcpBackend),
		stopCh:   make(chan struct{}),
	}
}

// RegisterLocal registers a tool with a local execution handler.
func (r *Registry) RegisterLocal(tool model.Tool, handler ToolHandler) error {
	if err := tool.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	backend := model.NewLocalBackend(tool.Name)
	if err := r.index.RegisterTool(tool, backend); err != nil {
		return err
	}

	r.mu.Lock()
	r.handlers[tool.ToolID()] = handler
	r.mu.Unlock()

	return nil
}

// RegisterLocalFunc is a convenience for inline tool definition.
func (r *Registry) RegisterLocalFunc(
	name, description string,
	inputSchema map[string]any,
	handler ToolHandler,
	opts ...LocalToolOption,
) error {
	cfg := applyLocalToolOptions(opts)
	tool := buildLocalTool(name, description, inputSchema, cfg)
	return r.RegisterLocal(tool, handler)
}

// RegisterDispatcher publishes every operation d serves as a local tool
// under namespace (may be empty). Operation aliases become callable names
// for Execute without appearing in listings.
func (r *Registry) RegisterDispatcher(d *dispatch.Dispatcher, namespace string) error {
	for _, op := range d.Operations() {
		name := op.Name
		tool := op.Tool(namespace)
		err := r.RegisterLocal(tool, func(ctx context.Context, args map[string]any) (any, error) {
			return d.Call(ctx, name, args)
		})
		if err != nil {
			return fmt.Errorf("register %s: %w", name, err)
		}
		if err := r.docs.RegisterDoc(tool.ToolID(), tooldoc.FromOperation(op)); err != nil {
			return fmt.Errorf("register %s docs: %w", name, err)
		}
		r.mu.Lock()
		for _, alias := range op.Aliases {
			if namespace != "" {
				alias = namespace + ":" + alias
			}
			r.aliases[alias] = tool.ToolID()
		}
		r.mu.Unlock()
	}
	r.logger.Debug("registered operations", "count", len(d.Operations()), "namespace", namespace)
	return nil
}

// Search performs a ranked search and returns matching tools.
func (r *Registry) Search(ctx context.Context, query string, limit int) ([]model.Tool, error) {
	summaries, err := r.index.Search(query, limit)
	if err != nil {
		return nil, err
	}
	return r.toolsFor(summaries), nil
}

// SearchSummaries returns lightweight summaries (faster for listing).
func (r *Registry) SearchSummaries(ctx context.Context, query string, limit int) ([]index.Summary, error) {
	return r.index.Search(query, limit)
}

// ListAll returns all registered tools ordered by ID.
func (r *Registry) ListAll(ctx context.Context) ([]model.Tool, error) {
	summaries, err := r.index.Search("", 0)
	if err != nil {
		return nil, err
	}
	return r.toolsFor(summaries), nil
}

func (r *Registry) toolsFor(summaries []index.Summary) []model.Tool {
	tools := make([]model.Tool, 0, len(summaries))
	for _, summary := range summaries {
		tool, _, err := r.index.GetTool(summary.ID)
		if err != nil {
			continue
		}
		tools = append(tools, tool)
	}
	return tools
}

// ListNamespaces returns all tool namespaces.
func (r *Registry) ListNamespaces(ctx context.Context) ([]string, error) {
	return r.index.ListNamespaces()
}

// GetTool returns a tool by ID.
func (r *Registry) GetTool(ctx context.Context, id string) (model.Tool, error) {
	tool, _, err := r.resolve(id)
	if err != nil {
		return model.Tool{}, err
	}
	return tool, nil
}

func (r *Registry) resolve(name string) (model.Tool, model.ToolBackend, error) {
	tool, backend, err := r.index.GetTool(name)
	if errors.Is(err, index.ErrNotFound) {
		r.mu.RLock()
		canonical, ok := r.aliases[name]
		r.mu.RUnlock()
		if ok {
			tool, backend, err = r.index.GetTool(canonical)
		}
	}
	if err != nil {
		return model.Tool{}, model.ToolBackend{}, fmt.Errorf("%w: %s: %w", ErrToolNotFound, name, err)
	}
	return tool, backend, nil
}

// DescribeTool returns documentation for a tool at the given detail level.
// Aliases and unique bare names resolve as in Execute.
func (r *Registry) DescribeTool(ctx context.Context, name string, level tooldoc.DetailLevel) (tooldoc.ToolDoc, error) {
	tool, _, err := r.resolve(name)
	if err != nil {
		return tooldoc.ToolDoc{}, err
	}
	return r.docs.DescribeTool(tool.ToolID(), level)
}

// ListExamples returns up to max worked examples for a tool.
func (r *Registry) ListExamples(ctx context.Context, name string, max int) ([]tooldoc.ToolExample, error) {
	tool, _, err := r.resolve(name)
	if err != nil {
		return nil, err
	}
	return r.docs.ListExamples(tool.ToolID(), max)
}

// Execute runs a tool by name with the given arguments.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	tool, backend, err := r.resolve(name)
	if err != nil {
		return nil, err
	}

	switch backend.Kind {
	case model.BackendKindLocal:
		r.mu.RLock()
		handler, ok := r.handlers[tool.ToolID()]
		r.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrHandlerNotFound, tool.ToolID())
		}
		return handler(ctx, args)

	case model.BackendKindMCP:
		if backend.MCP == nil {
			return nil, fmt.Errorf("%w: MCP backend missing server name", ErrInvalidRequest)
		}
		r.mu.RLock()
		mcpBackend, ok := r.backends[backend.MCP.ServerName]
		r.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrBackendNotFound, backend.MCP.ServerName)
		}
		return mcpBackend.callTool(ctx, tool.Name, args)

	default:
		return nil, fmt.Errorf("%w: backend kind %s not supported", ErrInvalidRequest, backend.Kind)
	}
}

// Start initializes the registry and connects MCP backends.
func (r *Registry) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return ErrAlreadyStarted
	}
	r.started = true
	r.stopCh = make(chan struct{})
	backends := make(map[string]*mcpBackend, len(r.backends))
	for name, backend := range r.backends {
		backends[name] = backend
	}
	r.mu.Unlock()

	connected := make([]string, 0, len(backends))
	fail := func(err error) error {
		for _, name := range connected {
			_ = backends[name].disconnect()
		}
		r.mu.Lock()
		r.started = false
		r.mu.Unlock()
		return err
	}
	for name, backend := range backends {
		if err := backend.connect(ctx); err != nil {
			return fail(fmt.Errorf("failed to connect backend %s: %w", name, err))
		}
		connected = append(connected, name)
		if err := r.index.RegisterToolsFromMCP(name, backend.toolsSnapshot()); err != nil {
			return fail(fmt.Errorf("failed to register backend %s tools: %w", name, err))
		}
		r.logger.InfoContext(ctx, "backend connected", "backend", name, "tools", len(backend.toolsSnapshot()))
	}

	return nil
}

// Stop gracefully shuts down all backend connections.
func (r *Registry) Stop() error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return nil
	}
	r.started = false
	close(r.stopCh)
	backends := make(map[string]*mcpBackend, len(r.backends))
	for name, backend := range r.backends {
		backends[name] = backend
	}
	r.mu.Unlock()

	var errs []error
	for name, backend := range backends {
		if err := backend.disconnect(); err != nil {
			errs = append(errs, fmt.Errorf("failed to disconnect backend %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Done is closed when Stop is called.
func (r *Registry) Done() <-chan struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stopCh
}

// RegistryStats returns registry statistics.
type RegistryStats struct {
	TotalTools   int
	LocalTools   int
	MCPTools     int
	Backends     int
	IndexVersion uint64
}

// Stats returns registry statistics.
func (r *Registry) Stats() RegistryStats {
	tools, _ := r.index.Search("", 0)
	localCount := 0
	mcpCount := 0

	for _, summary := range tools {
		_, backend, err := r.index.GetTool(summary.ID)
		if err != nil {
			continue
		}
		switch backend.Kind {
		case model.BackendKindLocal:
			localCount++
		case model.BackendKindMCP:
			mcpCount++
		}
	}

	r.mu.RLock()
	backends := len(r.backends)
	r.mu.RUnlock()

	return RegistryStats{
		TotalTools:   len(tools),
		LocalTools:   localCount,
		MCPTools:     mcpCount,
		Backends:     backends,
		IndexVersion: r.index.Version(),
	}
}

// HealthCheck returns nil if the registry is healthy.
func (r *Registry) HealthCheck(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.started {
		return ErrNotStarted
	}

	for name, backend := range r.backends {
		if !backend.isConnected() {
			return fmt.Errorf("%w: %s not connected", ErrBackendNotFound, name)
		}
	}

	return nil
}

// OnChange subscribes l to index mutations and returns an unsubscribe func.
func (r *Registry) OnChange(l index.ChangeListener) func() {
	return r.index.OnChange(l)
}

// Refresh triggers a refresh of search indexes.
func (r *Registry) Refresh() uint64 {
	return r.index.Refresh()
}
