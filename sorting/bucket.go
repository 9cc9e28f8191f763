package sorting

import "math"

// Bucket sorts xs in place, assuming every value lies in [0, 1). There is
// one bucket per input element; a value v lands in bucket floor(10·v), each
// bucket is insertion-sorted and the buckets are concatenated in order.
//
// A value outside [0, 1), or one whose bucket index is not below len(xs),
// yields a *DomainError and xs is left unchanged.
func Bucket(xs []float64) ([]float64, error) {
	n := len(xs)
	for i, v := range xs {
		if math.IsNaN(v) || v < 0 || v >= 1 {
			return xs, domainErr("bucket", i, v, "is outside [0, 1)")
		}
		if int(math.Floor(10*v)) >= n {
			return xs, domainErr("bucket", i, v, "maps past the last bucket")
		}
	}

	buckets := make([][]float64, n)
	for _, v := range xs {
		b := int(math.Floor(10 * v))
		buckets[b] = append(buckets[b], v)
	}
	k := 0
	for _, b := range buckets {
		k += copy(xs[k:], Insertion(b))
	}
	return xs, nil
}
