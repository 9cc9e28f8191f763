package lexical

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/toolalgo/index"
)

func sortDocs() []index.SearchDoc {
	mk := func(id, ns, text string, tags ...string) index.SearchDoc {
		return index.SearchDoc{
			ID:      id,
			DocText: text,
			Summary: index.Summary{ID: id, Name: id, Namespace: ns, Tags: tags},
		}
	}
	return []index.SearchDoc{
		mk("bucketsort", "", "bucket sort scatter values in zero one into buckets", "sort", "distribution"),
		mk("countingsort", "", "counting sort tally integer keys stable", "sort", "integer", "stable"),
		mk("geometry:pointat", "geometry", "point at parameter on a curve", "geometry"),
		mk("linearsearch", "", "linear search scan list for target", "search"),
		mk("mergesort", "", "merge sort stable divide and conquer", "sort", "stable"),
	}
}

func ids(sums []index.Summary) []string {
	out := make([]string, len(sums))
	for i, s := range sums {
		out[i] = s.ID
	}
	return out
}

func TestSearch_EmptyQueryReturnsFirstDocs(t *testing.T) {
	s := NewSearcher(Config{})
	defer func() { require.NoError(t, s.Close()) }()

	got, err := s.Search("  ", 2, sortDocs())
	require.NoError(t, err)
	assert.Equal(t, []string{"bucketsort", "countingsort"}, ids(got))
}

func TestSearch_NameOutranksText(t *testing.T) {
	s := NewSearcher(Config{})
	defer func() { require.NoError(t, s.Close()) }()

	got, err := s.Search("mergesort", 10, sortDocs())
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "mergesort", got[0].ID)
}

func TestSearch_TagMatches(t *testing.T) {
	s := NewSearcher(Config{})
	defer func() { require.NoError(t, s.Close()) }()

	got, err := s.Search("stable", 10, sortDocs())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"countingsort", "mergesort"}, ids(got))
}

func TestSearch_NamespaceMatches(t *testing.T) {
	s := NewSearcher(Config{})
	defer func() { require.NoError(t, s.Close()) }()

	got, err := s.Search("geometry", 10, sortDocs())
	require.NoError(t, err)
	assert.Equal(t, []string{"geometry:pointat"}, ids(got))
}

func TestSearch_LimitAndNoMatch(t *testing.T) {
	s := NewSearcher(Config{})
	defer func() { require.NoError(t, s.Close()) }()

	got, err := s.Search("sort", 2, sortDocs())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.Search("teleport", 10, sortDocs())
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.Search("sort", 10, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_EqualScoresOrderByID(t *testing.T) {
	s := NewSearcher(Config{})
	defer func() { require.NoError(t, s.Close()) }()

	docs := make([]index.SearchDoc, 0, 5)
	for _, id := range []string{"e", "c", "a", "d", "b"} {
		docs = append(docs, index.SearchDoc{ID: id, DocText: "same words", Summary: index.Summary{ID: id, Name: id}})
	}
	got, err := s.Search("words", 10, docs)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(got))
}

func TestSearch_RebuildsOnlyWhenDocsChange(t *testing.T) {
	s := NewSearcher(Config{})
	defer func() { require.NoError(t, s.Close()) }()

	docs := sortDocs()
	_, err := s.Search("sort", 10, docs)
	require.NoError(t, err)
	first := s.idx

	_, err = s.Search("merge", 10, docs)
	require.NoError(t, err)
	assert.Same(t, first, s.idx)

	docs = append(docs, index.SearchDoc{ID: "quicksort", DocText: "quick sort partition", Summary: index.Summary{ID: "quicksort", Name: "quicksort"}})
	got, err := s.Search("partition", 10, docs)
	require.NoError(t, err)
	assert.Equal(t, []string{"quicksort"}, ids(got))
	assert.NotSame(t, first, s.idx)
}

func TestSearch_MaxDocs(t *testing.T) {
	s := NewSearcher(Config{MaxDocs: 1})
	defer func() { require.NoError(t, s.Close()) }()

	got, err := s.Search("sort", 10, sortDocs())
	require.NoError(t, err)
	assert.Equal(t, []string{"bucketsort"}, ids(got))
}

func TestSplitName(t *testing.T) {
	assert.Equal(t, "quicksort", splitName("quicksort"))
	assert.Equal(t, "insertion_sort insertion sort", splitName("insertion_sort"))
}

func TestSearch_Concurrent(t *testing.T) {
	s := NewSearcher(Config{})
	defer func() { require.NoError(t, s.Close()) }()

	docs := sortDocs()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q := []string{"sort", "stable", "search"}[i%3]
			_, err := s.Search(q, 5, docs)
			assert.NoError(t, err, fmt.Sprint(i))
		}()
	}
	wg.Wait()
}

func TestSearcherWithIndex(t *testing.T) {
	s := NewSearcher(Config{})
	defer func() { require.NoError(t, s.Close()) }()
	idx := index.NewInMemoryIndex(index.IndexOptions{Searcher: s})
	_, err := idx.Search("anything", 5)
	require.NoError(t, err)
}
