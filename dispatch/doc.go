// Package dispatch validates call arguments against the operation catalog
// and routes them to the search and sorting routines.
//
// A Dispatcher is the single entry point transports use:
//
//	d := dispatch.New(dispatch.WithLogger(logger))
//	out, err := d.Call(ctx, "countingsort2", map[string]any{
//	    "numbers": []any{4.0, 2.0, 2.0, 8.0},
//	})
//
// Arguments arrive as decoded JSON: numbers are float64 or json.Number,
// lists are []any. Every call decodes into freshly allocated slices, so
// concurrent calls never share memory and the caller's argument values are
// never mutated.
//
// # Results
//
//   - searches: int (-1 when absent)
//   - sorts: []float64
//   - heapsort: HeapOutput
//   - add, binmult: float64
//
// # Errors
//
// Malformed arguments fail with ErrInvalidParams before any routine runs;
// the wrapped error joins one entry per offending parameter. Unknown names
// fail with ErrUnknownOperation. Domain violations surface as
// *sorting.DomainError.
package dispatch
