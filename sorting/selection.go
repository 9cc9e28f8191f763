package sorting

// Selection sorts xs in place by repeatedly swapping the minimum of the
// unsorted suffix to its front. Not stable.
func Selection(xs []float64) []float64 {
	for i := range xs {
		minIdx := i
		for j := i + 1; j < len(xs); j++ {
			if xs[minIdx] > xs[j] {
				minIdx = j
			}
		}
		xs[i], xs[minIdx] = xs[minIdx], xs[i]
	}
	return xs
}
