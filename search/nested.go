package search

// frame is a sequence being walked and the position of the next element
// to look at.
type frame struct {
	elems   []Element
	pos     int
	scanned bool
}

// DepthFirst scans elems in order and descends into each sub-sequence the
// moment it is met, resuming the parent scan only when the sub-sequence
// holds no match.
func DepthFirst(target float64, elems []Element) int {
	stack := []frame{{elems: elems}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.pos >= len(top.elems) {
			stack = stack[:len(stack)-1]
			continue
		}
		i := top.pos
		e := top.elems[i]
		top.pos++

		if e.nested {
			stack = append(stack, frame{elems: e.children})
			continue
		}
		if e.value == target {
			return i
		}
	}
	return NotFound
}

// BreadthFirst checks every number in elems first and only then descends
// into the sub-sequences in order, applying the same rule at each level.
func BreadthFirst(target float64, elems []Element) int {
	stack := []frame{{elems: elems}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if !top.scanned {
			for i, e := range top.elems {
				if !e.nested && e.value == target {
					return i
				}
			}
			top.scanned = true
		}

		for top.pos < len(top.elems) && !top.elems[top.pos].nested {
			top.pos++
		}
		if top.pos >= len(top.elems) {
			stack = stack[:len(stack)-1]
			continue
		}
		child := top.elems[top.pos].children
		top.pos++
		stack = append(stack, frame{elems: child})
	}
	return NotFound
}
