package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/jonwraymond/toolalgo/catalog"
	"github.com/jonwraymond/toolalgo/search"
)

// args holds decoded parameters: float64 for number and integer kinds,
// []float64 for list kinds, []search.Element for trees.
type args map[string]any

func (a args) number(name string) float64 {
	v, _ := a[name].(float64)
	return v
}

func (a args) numbers(name string) []float64 {
	v, _ := a[name].([]float64)
	return v
}

func (a args) tree(name string) []search.Element {
	v, _ := a[name].([]search.Element)
	return v
}

func (a args) has(name string) bool {
	_, ok := a[name]
	return ok
}

// decodeArgs checks raw against op's inputs and converts every value. All
// problems are reported together.
func decodeArgs(op catalog.Operation, raw map[string]any) (args, error) {
	var errs []error

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if _, ok := op.Input(k); !ok {
			errs = append(errs, fmt.Errorf("unknown parameter %q", k))
		}
	}

	out := make(args, len(op.Inputs))
	for _, p := range op.Inputs {
		v, ok := raw[p.Name]
		if !ok || v == nil {
			if p.Required {
				errs = append(errs, fmt.Errorf("missing required parameter %q", p.Name))
			}
			continue
		}
		dec, err := decodeValue(p.Kind, v)
		if err != nil {
			errs = append(errs, fmt.Errorf("parameter %q: %w", p.Name, err))
			continue
		}
		out[p.Name] = dec
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, errors.Join(errs...))
	}
	return out, nil
}

func decodeValue(kind catalog.Kind, v any) (any, error) {
	switch kind {
	case catalog.KindNumber:
		return toNumber(v)
	case catalog.KindInteger:
		n, err := toNumber(v)
		if err != nil {
			return nil, err
		}
		if n != math.Trunc(n) {
			return nil, fmt.Errorf("%v is not an integer", n)
		}
		return n, nil
	case catalog.KindNumbers:
		return toNumbers(v, false)
	case catalog.KindIntegers:
		return toNumbers(v, true)
	case catalog.KindTree:
		return toTree(v)
	default:
		return nil, fmt.Errorf("unsupported kind %q", kind)
	}
}

func toNumber(v any) (float64, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", x.String())
		}
		f = n
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not finite", f)
	}
	return f, nil
}

func toNumbers(v any, integers bool) ([]float64, error) {
	var items []any
	switch x := v.(type) {
	case []float64:
		items = make([]any, len(x))
		for i, f := range x {
			items[i] = f
		}
	case []int:
		items = make([]any, len(x))
		for i, n := range x {
			items[i] = n
		}
	case []any:
		items = x
	default:
		return nil, fmt.Errorf("expected a list of numbers, got %T", v)
	}

	out := make([]float64, len(items))
	for i, item := range items {
		f, err := toNumber(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if integers && f != math.Trunc(f) {
			return nil, fmt.Errorf("item %d: %v is not an integer", i, f)
		}
		out[i] = f
	}
	return out, nil
}

// toTree converts nested []any lists into elements. Nesting depth is bounded
// by the JSON decoder that produced v.
func toTree(v any) ([]search.Element, error) {
	switch x := v.(type) {
	case []float64:
		return search.FromNumbers(x), nil
	case []any:
		out := make([]search.Element, len(x))
		for i, item := range x {
			if sub, ok := item.([]any); ok {
				children, err := toTree(sub)
				if err != nil {
					return nil, fmt.Errorf("item %d: %w", i, err)
				}
				out[i] = search.Nested(children...)
				continue
			}
			f, err := toNumber(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			out[i] = search.Number(f)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a nested list of numbers, got %T", v)
	}
}
