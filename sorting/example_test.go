package sorting_test

import (
	"errors"
	"fmt"

	"github.com/jonwraymond/toolalgo/sorting"
)

func ExampleQuick() {
	xs := []float64{5, 2, 9, 1, 5}
	sorting.Quick(xs)
	fmt.Println(xs)
	// Output: [1 2 5 5 9]
}

func ExampleHeap() {
	res := sorting.Heap([]float64{3, 1, 2})
	fmt.Println(res.Original, res.Sorted)
	// Output: [3 1 2] [1 2 3]
}

func ExampleCounting() {
	out, err := sorting.Counting([]float64{4, 2, 2, 8, 3, 3, 1})
	fmt.Println(out, err)
	// Output: [1 2 2 3 3 4 8] <nil>
}

func ExampleBucket_outOfDomain() {
	_, err := sorting.Bucket([]float64{0.3, 1})
	fmt.Println(errors.Is(err, sorting.ErrDomain))
	// Output: true
}
