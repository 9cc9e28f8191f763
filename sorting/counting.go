package sorting

// MaxCountingRange bounds max-min+1 for Counting so the count table stays
// a reasonable size.
const MaxCountingRange = 1 << 24

// Counting sorts integer-valued xs in place. Each value is counted at
// offset value-min, the counts are turned into prefix sums, and values are
// placed into an output buffer walking the input from the end backward,
// which keeps equal values in their original order.
//
// Every value must be a finite integer and max-min+1 must not exceed
// MaxCountingRange; otherwise a *DomainError is returned and xs is unchanged.
func Counting(xs []float64) ([]float64, error) {
	if len(xs) == 0 {
		return xs, nil
	}
	for i, v := range xs {
		if !integral(v) {
			return xs, domainErr("counting", i, v, "is not an integer")
		}
	}
	lo, hi := bounds(xs)
	if hi-lo+1 > MaxCountingRange {
		return xs, domainErr("counting", 0, hi-lo+1, "exceeds the supported value range")
	}
	minVal := int64(lo)

	counts := make([]int, int64(hi)-minVal+1)
	for _, v := range xs {
		counts[int64(v)-minVal]++
	}
	for i := 1; i < len(counts); i++ {
		counts[i] += counts[i-1]
	}
	out := make([]float64, len(xs))
	for i := len(xs) - 1; i >= 0; i-- {
		slot := int64(xs[i]) - minVal
		out[counts[slot]-1] = xs[i]
		counts[slot]--
	}
	copy(xs, out)
	return xs, nil
}

// Radix sorts non-negative integer-valued xs in place with stable counting
// passes keyed on successive decimal digits, least significant first. Passes
// stop once max/place reaches zero.
//
// A negative, fractional or non-finite value yields a *DomainError and xs
// is left unchanged.
func Radix(xs []float64) ([]float64, error) {
	if len(xs) == 0 {
		return xs, nil
	}
	keys := make([]int64, len(xs))
	var maxKey int64
	for i, v := range xs {
		if !integral(v) {
			return xs, domainErr("radix", i, v, "is not an integer")
		}
		if v < 0 {
			return xs, domainErr("radix", i, v, "is negative")
		}
		keys[i] = int64(v)
		maxKey = max(maxKey, keys[i])
	}

	scratch := make([]int64, len(keys))
	for place := int64(1); maxKey/place > 0; place *= 10 {
		digitPass(keys, scratch, place)
	}
	for i, k := range keys {
		xs[i] = float64(k)
	}
	return xs, nil
}

// digitPass stably reorders keys by the decimal digit at place, using
// scratch as the output buffer before copying back.
func digitPass(keys, scratch []int64, place int64) {
	var counts [10]int
	for _, k := range keys {
		counts[(k/place)%10]++
	}
	for i := 1; i < len(counts); i++ {
		counts[i] += counts[i-1]
	}
	for i := len(keys) - 1; i >= 0; i-- {
		d := (keys[i] / place) % 10
		scratch[counts[d]-1] = keys[i]
		counts[d]--
	}
	copy(keys, scratch)
}
