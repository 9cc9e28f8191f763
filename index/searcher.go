package index

import (
	"cmp"
	"slices"
	"strings"
)

// TermSearcher is the dependency-free default Searcher. It scores each query
// term by where it occurs: name, then namespace and tags, then any text.
type TermSearcher struct{}

// NewTermSearcher returns a TermSearcher.
func NewTermSearcher() *TermSearcher { return &TermSearcher{} }

// Search implements Searcher. A limit of zero or less means no limit.
func (s *TermSearcher) Search(query string, limit int, docs []SearchDoc) ([]Summary, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return FirstSummaries(docs, limit), nil
	}

	type scored struct {
		score int
		doc   *SearchDoc
	}
	var hits []scored
	for i := range docs {
		d := &docs[i]
		score := 0
		for _, term := range terms {
			score += termScore(term, d)
		}
		if score > 0 {
			hits = append(hits, scored{score, d})
		}
	}
	slices.SortFunc(hits, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return strings.Compare(a.doc.ID, b.doc.ID)
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]Summary, len(hits))
	for i, h := range hits {
		out[i] = h.doc.Summary
	}
	return out, nil
}

func termScore(term string, d *SearchDoc) int {
	name := strings.ToLower(d.Summary.Name)
	score := 0
	switch {
	case name == term:
		score += 10
	case strings.Contains(name, term):
		score += 5
	}
	if strings.ToLower(d.Summary.Namespace) == term {
		score += 3
	}
	for _, tag := range d.Summary.Tags {
		if strings.ToLower(tag) == term {
			score += 3
			break
		}
	}
	if strings.Contains(d.DocText, term) {
		score++
	}
	return score
}

// FirstSummaries is the empty-query behavior every Searcher shares: the
// first limit docs, which the index hands over sorted by ID.
func FirstSummaries(docs []SearchDoc, limit int) []Summary {
	n := len(docs)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Summary, n)
	for i := range n {
		out[i] = docs[i].Summary
	}
	return out
}
