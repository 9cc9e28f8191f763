package lexical

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/jonwraymond/toolalgo/index"
)

// ErrClosed is returned when a search races with Close.
var ErrClosed = errors.New("lexical: searcher closed")

// Config tunes field boosts and document limits. Zero values take defaults.
type Config struct {
	NameBoost      float64
	NamespaceBoost float64
	TagsBoost      float64
	// MaxDocs caps the number of indexed docs (0 = unlimited).
	MaxDocs int
	// MaxDocTextLen truncates DocText before indexing (0 = unlimited).
	MaxDocTextLen int
}

func (c Config) withDefaults() Config {
	if c.NameBoost <= 0 {
		c.NameBoost = 3
	}
	if c.NamespaceBoost <= 0 {
		c.NamespaceBoost = 2
	}
	if c.TagsBoost <= 0 {
		c.TagsBoost = 2
	}
	return c
}

// Searcher is an index.Searcher backed by an in-memory bleve index.
type Searcher struct {
	cfg Config

	mu        sync.RWMutex
	idx       bleve.Index
	fp        uint64
	built     bool
	summaries map[string]index.Summary
}

var _ index.Searcher = (*Searcher)(nil)

// NewSearcher returns a Searcher with cfg.
func NewSearcher(cfg Config) *Searcher {
	return &Searcher{cfg: cfg.withDefaults()}
}

// Search implements index.Searcher.
func (s *Searcher) Search(q string, limit int, docs []index.SearchDoc) ([]index.Summary, error) {
	if s.cfg.MaxDocs > 0 && len(docs) > s.cfg.MaxDocs {
		docs = docs[:s.cfg.MaxDocs]
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return index.FirstSummaries(docs, limit), nil
	}
	if len(docs) == 0 {
		return nil, nil
	}

	if err := s.ensureIndex(docs); err != nil {
		return nil, err
	}

	size := limit
	if size <= 0 || size > len(docs) {
		size = len(docs)
	}
	req := bleve.NewSearchRequestOptions(s.buildQuery(q), size, 0, false)
	req.SortBy([]string{"-_score", "_id"})

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.idx == nil {
		return nil, ErrClosed
	}
	res, err := s.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("lexical: search: %w", err)
	}
	out := make([]index.Summary, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if sum, ok := s.summaries[hit.ID]; ok {
			out = append(out, sum)
		}
	}
	return out, nil
}

func (s *Searcher) buildQuery(q string) query.Query {
	field := func(name string, boost float64) query.Query {
		m := bleve.NewMatchQuery(q)
		m.SetField(name)
		m.SetBoost(boost)
		return m
	}
	return bleve.NewDisjunctionQuery(
		field("name", s.cfg.NameBoost),
		field("namespace", s.cfg.NamespaceBoost),
		field("tags", s.cfg.TagsBoost),
		field("text", 1),
	)
}

// ensureIndex rebuilds the bleve index when docs differ from the last build.
func (s *Searcher) ensureIndex(docs []index.SearchDoc) error {
	fp := fingerprint(docs)

	s.mu.RLock()
	fresh := s.built && s.fp == fp
	s.mu.RUnlock()
	if fresh {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.built && s.fp == fp {
		return nil
	}

	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return fmt.Errorf("lexical: create index: %w", err)
	}
	batch := idx.NewBatch()
	summaries := make(map[string]index.Summary, len(docs))
	for _, doc := range docs {
		text := doc.DocText
		if s.cfg.MaxDocTextLen > 0 && len(text) > s.cfg.MaxDocTextLen {
			text = text[:s.cfg.MaxDocTextLen]
		}
		err := batch.Index(doc.ID, map[string]any{
			"name":      splitName(doc.Summary.Name),
			"namespace": doc.Summary.Namespace,
			"tags":      strings.Join(doc.Summary.Tags, " "),
			"text":      text,
		})
		if err != nil {
			_ = idx.Close()
			return fmt.Errorf("lexical: index %s: %w", doc.ID, err)
		}
		summaries[doc.ID] = doc.Summary
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return fmt.Errorf("lexical: index batch: %w", err)
	}

	if s.idx != nil {
		_ = s.idx.Close()
	}
	s.idx = idx
	s.fp = fp
	s.built = true
	s.summaries = summaries
	return nil
}

// splitName indexes a name whole and by its separator-delimited parts, so
// "insertion_sort" matches both "insertion_sort" and "sort".
func splitName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ':'
	})
	if len(parts) <= 1 {
		return name
	}
	return name + " " + strings.Join(parts, " ")
}

// Close releases the bleve index.
func (s *Searcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idx == nil {
		return nil
	}
	err := s.idx.Close()
	s.idx = nil
	s.built = false
	return err
}
