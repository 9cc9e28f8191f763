package search

import "slices"

// Linear returns the first index i with xs[i] == target.
func Linear(target float64, xs []float64) int {
	for i, v := range xs {
		if v == target {
			return i
		}
	}
	return NotFound
}

// Binary sorts xs ascending in place, then bisects it for target. The
// returned index refers to the sorted slice. With duplicates, any one of the
// equal positions may be returned.
func Binary(target float64, xs []float64) int {
	slices.Sort(xs)
	low, high := 0, len(xs)-1
	for low <= high {
		mid := int(uint(low+high) >> 1)
		switch {
		case xs[mid] == target:
			return mid
		case xs[mid] < target:
			low = mid + 1
		default:
			high = mid - 1
		}
	}
	return NotFound
}
