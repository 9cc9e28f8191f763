package sorting

// Insertion sorts xs in place by shifting each element left past every
// larger predecessor. Equal elements keep their relative order.
func Insertion(xs []float64) []float64 {
	for i := 1; i < len(xs); i++ {
		key := xs[i]
		j := i - 1
		for j >= 0 && key < xs[j] {
			xs[j+1] = xs[j]
			j--
		}
		xs[j+1] = key
	}
	return xs
}

// InsertionAdd appends v to xs and insertion-sorts the result. Like append,
// the returned slice may or may not share xs's backing array; callers should
// use the return value.
func InsertionAdd(xs []float64, v float64) []float64 {
	return Insertion(append(xs, v))
}
