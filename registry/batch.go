package registry

import (
	"context"
	"errors"
	"io"
)

// BatchCall is one entry of an ExecuteBatch request.
type BatchCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"arguments"`
}

// BatchResult is the outcome of one BatchCall.
type BatchResult struct {
	Name   string `json:"name"`
	Result any    `json:"result,omitempty"`
	Err    error  `json:"-"`
}

// ExecuteBatch runs calls concurrently on the registry's worker pool and
// returns their results in input order. A failing call does not stop the
// others; calls not yet started when ctx ends fail with ctx.Err().
func (r *Registry) ExecuteBatch(ctx context.Context, calls []BatchCall) []BatchResult {
	results := make([]BatchResult, len(calls))
	ran := make([]bool, len(calls))
	group := r.pool.NewGroup()
	for i, c := range calls {
		results[i].Name = c.Name
		group.Submit(func() {
			ran[i] = true
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return
			}
			results[i].Result, results[i].Err = r.Execute(ctx, c.Name, c.Args)
		})
	}
	if err := group.Wait(); err != nil {
		for i := range results {
			if !ran[i] || (results[i].Err == nil && results[i].Result == nil) {
				results[i].Err = err
			}
		}
	}
	return results
}

// Close stops the worker pool and releases the searcher. The registry must
// not be used afterwards.
func (r *Registry) Close() error {
	stopErr := r.Stop()
	r.pool.StopAndWait()
	if c, ok := r.searcher.(io.Closer); ok {
		return errors.Join(stopErr, c.Close())
	}
	return stopErr
}
