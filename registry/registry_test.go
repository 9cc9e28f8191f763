package registry

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/toolalgo/dispatch"
	"github.com/jonwraymond/toolalgo/sorting"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := New(Config{ServerInfo: ServerInfo{Name: "test", Version: "1.0.0"}})
	require.NoError(t, reg.RegisterDispatcher(dispatch.New(), ""))
	t.Cleanup(func() { _ = reg.Close() })
	return reg
}

func TestNew(t *testing.T) {
	reg := New(Config{})
	defer func() { _ = reg.Close() }()

	assert.NotNil(t, reg.index)
	assert.NotNil(t, reg.searcher)
	assert.Positive(t, reg.config.BatchWorkers)
	assert.Zero(t, reg.Stats().TotalTools)
}

func TestRegisterDispatcher(t *testing.T) {
	reg := newTestRegistry(t)

	stats := reg.Stats()
	assert.Equal(t, 15, stats.TotalTools)
	assert.Equal(t, 15, stats.LocalTools)
	assert.Zero(t, stats.MCPTools)

	tool, err := reg.GetTool(context.Background(), "heapsort")
	require.NoError(t, err)
	assert.Equal(t, "Heap Sort", tool.Title)
}

func TestRegisterDispatcher_Namespaced(t *testing.T) {
	reg := New(Config{})
	defer func() { _ = reg.Close() }()
	require.NoError(t, reg.RegisterDispatcher(dispatch.New(), "algo"))

	ctx := context.Background()
	out, err := reg.Execute(ctx, "algo:countingsort2", map[string]any{"numbers": []any{3.0, 1.0}})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, out)

	out, err = reg.Execute(ctx, "quicksort", map[string]any{"numbers": []any{2.0, 1.0}})
	require.NoError(t, err, "bare names resolve when unique")
	assert.Equal(t, []float64{1, 2}, out)

	ns, err := reg.ListNamespaces(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"algo"}, ns)
}

func TestExecute(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	out, err := reg.Execute(ctx, "linearsearch", map[string]any{"target": 3.0, "numbers": []any{5.0, 3.0, 8.0, 1.0}})
	require.NoError(t, err)
	assert.Equal(t, 1, out)

	out, err = reg.Execute(ctx, "radixsort2", map[string]any{"numbers": []any{170.0, 45.0, 75.0, 90.0, 802.0, 24.0, 2.0, 66.0}})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 24, 45, 66, 75, 90, 170, 802}, out)

	_, err = reg.Execute(ctx, "bogosort", nil)
	assert.ErrorIs(t, err, ErrToolNotFound)

	_, err = reg.Execute(ctx, "countingsort", map[string]any{"numbers": []any{1.5}})
	assert.ErrorIs(t, err, dispatch.ErrInvalidParams)

	_, err = reg.Execute(ctx, "bucketsort", map[string]any{"numbers": []any{0.5}})
	assert.ErrorIs(t, err, sorting.ErrDomain)
}

func TestRegisterLocalFunc(t *testing.T) {
	reg := New(Config{})
	defer func() { _ = reg.Close() }()

	err := reg.RegisterLocalFunc("echo", "Echoes back the input", nil,
		func(ctx context.Context, args map[string]any) (any, error) { return args, nil },
		WithNamespace("util"), WithTitle("Echo"), WithTags("Debug"), WithVersion("1.2.0"), ReadOnly(),
	)
	require.NoError(t, err)

	tool, err := reg.GetTool(context.Background(), "util:echo")
	require.NoError(t, err)
	assert.Equal(t, "Echo", tool.Title)
	assert.Equal(t, "1.2.0", tool.Version)
	assert.Contains(t, tool.Tags, "debug")
	require.NotNil(t, tool.Annotations)
	assert.True(t, tool.Annotations.ReadOnlyHint)

	out, err := reg.Execute(context.Background(), "util:echo", map[string]any{"x": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 1}, out)

	assert.ErrorIs(t, reg.RegisterLocalFunc("", "nameless", nil, nil), ErrInvalidRequest)
}

func TestSearch(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	tools, err := reg.Search(ctx, "stable", 20)
	require.NoError(t, err)
	require.NotEmpty(t, tools)
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	assert.Contains(t, names, "mergesort")
	assert.NotContains(t, names, "quicksort")

	summaries, err := reg.SearchSummaries(ctx, "heapsort", 1)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "heapsort", summaries[0].ID)

	all, err := reg.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 15)
	assert.Equal(t, "add", all[0].Name, "listing is ordered by ID")
}

func TestExecuteBatch(t *testing.T) {
	reg := newTestRegistry(t)

	calls := []BatchCall{
		{Name: "quicksort", Args: map[string]any{"numbers": []any{3.0, 1.0, 2.0}}},
		{Name: "nosuchsort", Args: nil},
		{Name: "add", Args: map[string]any{"a": 1.0, "b": 2.0}},
	}
	for i := range 20 {
		calls = append(calls, BatchCall{Name: "mergesort", Args: map[string]any{"numbers": []any{float64(i), 0.0}}})
	}

	results := reg.ExecuteBatch(context.Background(), calls)
	require.Len(t, results, len(calls))
	assert.Equal(t, []float64{1, 2, 3}, results[0].Result)
	assert.ErrorIs(t, results[1].Err, ErrToolNotFound)
	assert.Equal(t, 3.0, results[2].Result)
	for i := range 20 {
		res := results[3+i]
		require.NoError(t, res.Err)
		assert.Equal(t, "mergesort", res.Name)
		assert.Equal(t, []float64{0, float64(i)}, res.Result, fmt.Sprint(i))
	}
}

func TestExecuteBatch_CanceledContext(t *testing.T) {
	reg := newTestRegistry(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := reg.ExecuteBatch(ctx, []BatchCall{{Name: "quicksort", Args: map[string]any{"numbers": []any{}}}})
	require.Len(t, results, 1)
	assert.True(t, errors.Is(results[0].Err, context.Canceled))
}

func TestLifecycle(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	assert.ErrorIs(t, reg.HealthCheck(ctx), ErrNotStarted)
	require.NoError(t, reg.Start(ctx))
	assert.ErrorIs(t, reg.Start(ctx), ErrAlreadyStarted)
	assert.NoError(t, reg.HealthCheck(ctx))

	done := reg.Done()
	require.NoError(t, reg.Stop())
	select {
	case <-done:
	default:
		t.Fatal("Done not closed after Stop")
	}
	assert.NoError(t, reg.Stop(), "second Stop is a no-op")
}

func TestRefresh(t *testing.T) {
	reg := newTestRegistry(t)
	v := reg.Stats().IndexVersion
	assert.Greater(t, reg.Refresh(), v)
}
