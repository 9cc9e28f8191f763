// Package lexical provides a bleve-backed index.Searcher.
//
// It lives outside index so that index stays dependency-light; callers that
// want ranked full-text search opt in:
//
//	idx := index.NewInMemoryIndex(index.IndexOptions{
//	    Searcher: lexical.NewSearcher(lexical.Config{}),
//	})
//
// # Configuration
//
// [Config] sets field boosts (name 3, namespace 2, tags 2 by default) and
// optional caps on the number of docs and the indexed text length.
//
// # Caching
//
// The in-memory bleve index is rebuilt only when the xxh3 fingerprint of the
// doc set changes, so repeated searches over an unchanged index reuse it.
//
// # Behavior
//
// Empty queries return the first docs in ID order. Other queries rank by
// bleve score, ties broken by ID ascending. Searcher is safe for concurrent
// use.
package lexical
