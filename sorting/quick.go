package sorting

// span is an inclusive subrange still waiting to be partitioned.
type span struct {
	lo, hi int
}

// Quick sorts xs in place with Lomuto partitioning: the pivot is always the
// last element of the current subrange and values <= pivot go left.
// Pending subranges live on an explicit stack; the smaller side is handled
// first so the stack stays O(log n) deep.
func Quick(xs []float64) []float64 {
	if len(xs) < 2 {
		return xs
	}
	stack := []span{{lo: 0, hi: len(xs) - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.lo >= s.hi {
			continue
		}
		p := partition(xs, s.lo, s.hi)
		left, right := span{lo: s.lo, hi: p - 1}, span{lo: p + 1, hi: s.hi}
		if left.hi-left.lo < right.hi-right.lo {
			stack = append(stack, right, left)
		} else {
			stack = append(stack, left, right)
		}
	}
	return xs
}

// partition places xs[hi] at its final position within [lo, hi] and returns
// that position.
func partition(xs []float64, lo, hi int) int {
	pivot := xs[hi]
	i := lo - 1
	for j := lo; j < hi; j++ {
		if xs[j] <= pivot {
			i++
			xs[i], xs[j] = xs[j], xs[i]
		}
	}
	xs[i+1], xs[hi] = xs[hi], xs[i+1]
	return i + 1
}
