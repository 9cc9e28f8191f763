// Package index stores tools and the backends that execute them, and ranks
// them for discovery.
//
// # Index Types
//
//   - InMemoryIndex: map-backed storage with a pluggable Searcher
//
// # Usage
//
//	idx := index.NewInMemoryIndex()
//
//	tool := model.Tool{
//	    Tool: mcp.Tool{
//	        Name:        "quicksort",
//	        Description: "Sort a list of numbers ascending",
//	        InputSchema: map[string]any{"type": "object"},
//	    },
//	    Tags: []string{"sort"},
//	}
//	err := idx.RegisterTool(tool, model.NewLocalBackend("quicksort"))
//
//	results, err := idx.Search("sort", 10)
//
// # Identifiers
//
// A tool's ID is "namespace:name", or just "name" without a namespace.
// GetTool also accepts a bare name when exactly one namespace holds it, so
// tools imported from an MCP server (namespaced by server name) can be
// called by their plain name.
//
// # Backends
//
// A tool may be served by several backends. Registering a second backend
// requires the same MCP shape (name, title, description, schemas,
// annotations, icons). BackendSelector chooses which backend executes;
// DefaultBackendSelector prefers local over provider over MCP.
//
// # Pluggable Search
//
// Searcher receives the docs sorted by ID. The default TermSearcher needs no
// dependencies; the lexical package provides a bleve-backed ranker:
//
//	idx := index.NewInMemoryIndex(index.IndexOptions{
//	    Searcher: lexical.NewSearcher(lexical.Config{}),
//	})
//
// # Summaries
//
// Search returns Summary values, whose ShortDescription is truncated to
// MaxShortDescriptionLen runes.
//
// # Change Notifications
//
//	unsub := idx.OnChange(func(ev index.ChangeEvent) {
//	    log.Println(ev.Type, ev.ToolID, ev.Version)
//	})
//	defer unsub()
package index
