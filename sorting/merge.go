package sorting

// Merge sorts xs in place with a top-down merge sort. When the heads of the
// two runs are equal the left one is taken first, so the sort is stable.
// Recursion depth is log2(len(xs)).
func Merge(xs []float64) []float64 {
	if len(xs) > 1 {
		mergeSort(xs, make([]float64, len(xs)))
	}
	return xs
}

// mergeSort sorts xs using buf (same length) as scratch space.
func mergeSort(xs, buf []float64) {
	if len(xs) < 2 {
		return
	}
	mid := len(xs) / 2
	mergeSort(xs[:mid], buf[:mid])
	mergeSort(xs[mid:], buf[mid:])

	copy(buf, xs)
	left, right := buf[:mid], buf[mid:]
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if right[j] < left[i] {
			xs[k] = right[j]
			j++
		} else {
			xs[k] = left[i]
			i++
		}
		k++
	}
	k += copy(xs[k:], left[i:])
	copy(xs[k:], right[j:])
}
