package sorting

// HeapResult is the two-sequence outcome of Heap: the untouched input and a
// sorted copy of it.
type HeapResult struct {
	Original []float64
	Sorted   []float64
}

// Heap heap-sorts a copy of xs. xs itself is not modified and is returned
// as Original.
func Heap(xs []float64) HeapResult {
	return HeapResult{
		Original: xs,
		Sorted:   HeapInto(make([]float64, 0, len(xs)), xs),
	}
}

// HeapInto appends xs to dst and heap-sorts the whole of dst in place,
// returning it. Values already present in dst take part in the sort.
func HeapInto(dst, xs []float64) []float64 {
	dst = append(dst, xs...)
	n := len(dst)
	for i := n/2 - 1; i >= 0; i-- {
		Heapify(dst, n, i)
	}
	for end := n - 1; end > 0; end-- {
		dst[0], dst[end] = dst[end], dst[0]
		Heapify(dst, end, 0)
	}
	return dst
}

// Heapify sifts xs[i] down within the first n elements until the subtree
// rooted at i satisfies the max-heap property.
func Heapify(xs []float64, n, i int) {
	for {
		largest := i
		l, r := 2*i+1, 2*i+2
		if l < n && xs[largest] < xs[l] {
			largest = l
		}
		if r < n && xs[largest] < xs[r] {
			largest = r
		}
		if largest == i {
			return
		}
		xs[i], xs[largest] = xs[largest], xs[i]
		i = largest
	}
}
