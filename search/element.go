package search

// Element is one entry of a nested sequence: either a number or a
// sub-sequence of further elements. The zero value is the number 0.
type Element struct {
	value    float64
	children []Element
	nested   bool
}

// Number returns a leaf element holding v.
func Number(v float64) Element {
	return Element{value: v}
}

// Nested returns an element holding the sub-sequence elems.
func Nested(elems ...Element) Element {
	return Element{children: elems, nested: true}
}

// IsNested reports whether e is a sub-sequence.
func (e Element) IsNested() bool { return e.nested }

// Value returns the number held by a leaf element, or 0 for a sub-sequence.
func (e Element) Value() float64 { return e.value }

// Children returns the sub-sequence of a nested element, or nil for a leaf.
func (e Element) Children() []Element { return e.children }

// FromNumbers wraps a flat slice as leaf elements.
func FromNumbers(xs []float64) []Element {
	out := make([]Element, len(xs))
	for i, v := range xs {
		out[i] = Number(v)
	}
	return out
}
