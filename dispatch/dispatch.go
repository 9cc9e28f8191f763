package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonwraymond/toolalgo/catalog"
	"github.com/jonwraymond/toolalgo/search"
	"github.com/jonwraymond/toolalgo/sorting"
)

// HeapOutput is the heapsort result.
type HeapOutput struct {
	Original []float64 `json:"original"`
	Sorted   []float64 `json:"sorted"`
}

type handler func(a args) (any, error)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithCatalog replaces the embedded catalog. Operations it declares without
// a built-in handler fail with ErrUnknownOperation.
func WithCatalog(c *catalog.Catalog) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.catalog = c
		}
	}
}

// Dispatcher routes named calls to routines. It is safe for concurrent use.
type Dispatcher struct {
	catalog  *catalog.Catalog
	logger   *slog.Logger
	handlers map[string]handler
}

// New returns a Dispatcher over the embedded catalog.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		catalog:  catalog.MustLoad(),
		logger:   slog.Default(),
		handlers: builtinHandlers(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Catalog returns the declarations the dispatcher serves.
func (d *Dispatcher) Catalog() *catalog.Catalog { return d.catalog }

// Operations returns the declared operations that have a handler.
func (d *Dispatcher) Operations() []catalog.Operation {
	ops := d.catalog.Operations()
	out := ops[:0]
	for _, op := range ops {
		if _, ok := d.handlers[op.Name]; ok {
			out = append(out, op)
		}
	}
	return out
}

// Call resolves name (aliases included), validates args and runs the
// operation.
func (d *Dispatcher) Call(ctx context.Context, name string, raw map[string]any) (any, error) {
	start := time.Now()
	reqID := requestIDFrom(ctx)

	op, ok := d.catalog.Lookup(name)
	h, hok := d.handlers[op.Name]
	if !ok || !hok {
		callsTotal.WithLabelValues(unknownOperation, outcomeUnknown).Inc()
		d.logger.WarnContext(ctx, "unknown operation", "operation", name, "request_id", reqID)
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}

	out, err := d.run(ctx, op, h, raw)
	elapsed := time.Since(start)
	callDuration.WithLabelValues(op.Name).Observe(elapsed.Seconds())
	callsTotal.WithLabelValues(op.Name, outcome(err)).Inc()

	if err != nil {
		d.logger.WarnContext(ctx, "operation failed",
			"operation", op.Name, "request_id", reqID, "duration", elapsed, "error", err)
		return nil, err
	}
	d.logger.DebugContext(ctx, "operation served",
		"operation", op.Name, "request_id", reqID, "duration", elapsed)
	return out, nil
}

func (d *Dispatcher) run(ctx context.Context, op catalog.Operation, h handler, raw map[string]any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a, err := decodeArgs(op, raw)
	if err != nil {
		return nil, err
	}
	return h(a)
}

func outcome(err error) string {
	var de *sorting.DomainError
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, ErrInvalidParams):
		return outcomeInvalidParams
	case errors.As(err, &de):
		return outcomeDomainError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	default:
		return "error"
	}
}

func builtinHandlers() map[string]handler {
	searchFlat := func(fn func(float64, []float64) int) handler {
		return func(a args) (any, error) {
			return fn(a.number("target"), a.numbers("numbers")), nil
		}
	}
	searchTree := func(fn func(float64, []search.Element) int) handler {
		return func(a args) (any, error) {
			return fn(a.number("target"), a.tree("numbers")), nil
		}
	}
	sortInPlace := func(fn func([]float64) []float64) handler {
		return func(a args) (any, error) {
			return fn(a.numbers("numbers")), nil
		}
	}
	sortChecked := func(fn func([]float64) ([]float64, error)) handler {
		return func(a args) (any, error) {
			return fn(a.numbers("numbers"))
		}
	}

	return map[string]handler{
		"linearsearch":       searchFlat(search.Linear),
		"binarysearch":       searchFlat(search.Binary),
		"depthfirstsearch":   searchTree(search.DepthFirst),
		"breadthfirstsearch": searchTree(search.BreadthFirst),
		"insertionsort":      sortInPlace(sorting.Insertion),
		"insertionsortadd": func(a args) (any, error) {
			return sorting.InsertionAdd(a.numbers("numbers"), a.number("number")), nil
		},
		"heapsort": func(a args) (any, error) {
			xs := a.numbers("numbers")
			dst := make([]float64, 0, len(xs))
			if a.has("accumulator") {
				dst = append(dst, a.numbers("accumulator")...)
			}
			return HeapOutput{Original: xs, Sorted: sorting.HeapInto(dst, xs)}, nil
		},
		"selectionsort": sortInPlace(sorting.Selection),
		"mergesort":     sortInPlace(sorting.Merge),
		"quicksort":     sortInPlace(sorting.Quick),
		"countingsort":  sortChecked(sorting.Counting),
		"radixsort":     sortChecked(sorting.Radix),
		"bucketsort":    sortChecked(sorting.Bucket),
		"add": func(a args) (any, error) {
			return a.number("a") + a.number("b"), nil
		},
		"binmult": func(a args) (any, error) {
			return a.number("a") * a.number("b"), nil
		},
	}
}
