package sorting_test

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/toolalgo/sorting"
)

type routine struct {
	name   string
	stable bool
	sort   func([]float64) ([]float64, error)
}

func infallible(f func([]float64) []float64) func([]float64) ([]float64, error) {
	return func(xs []float64) ([]float64, error) { return f(xs), nil }
}

// general lists the routines that accept any finite input.
var general = []routine{
	{name: "insertion", stable: true, sort: infallible(sorting.Insertion)},
	{name: "selection", sort: infallible(sorting.Selection)},
	{name: "merge", stable: true, sort: infallible(sorting.Merge)},
	{name: "quick", sort: infallible(sorting.Quick)},
	{name: "heap", sort: infallible(func(xs []float64) []float64 { return sorting.Heap(xs).Sorted })},
}

// integer lists the routines restricted to non-negative integers.
var integer = []routine{
	{name: "counting", stable: true, sort: sorting.Counting},
	{name: "radix", sort: sorting.Radix},
}

func randomInts(r *rand.Rand, n, limit int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(r.IntN(limit))
	}
	return xs
}

func requireSortedPermutation(t *testing.T, in, out []float64) {
	t.Helper()
	require.True(t, sorting.IsSorted(out), "output not sorted: %v", out)
	want := slices.Clone(in)
	slices.Sort(want)
	require.Equal(t, want, out, "output is not a permutation of the input")
}

func TestRoutines_SortedPermutation(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	inputs := [][]float64{
		{},
		{7},
		{2, 1},
		{5, 2, 9, 1, 5},
		{3, 3, 3, 3},
		{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
		randomInts(r, 200, 50),
		randomInts(r, 1000, 1_000_000),
	}
	for _, rt := range append(slices.Clone(general), integer...) {
		t.Run(rt.name, func(t *testing.T) {
			for _, in := range inputs {
				out, err := rt.sort(slices.Clone(in))
				require.NoError(t, err)
				requireSortedPermutation(t, in, out)
			}
		})
	}
}

func TestGeneralRoutines_NegativeAndFractional(t *testing.T) {
	in := []float64{2.5, -1, 0, -7.25, 3.125, 2.5, -0.5}
	for _, rt := range general {
		t.Run(rt.name, func(t *testing.T) {
			out, err := rt.sort(slices.Clone(in))
			require.NoError(t, err)
			requireSortedPermutation(t, in, out)
		})
	}
}

func TestRoutines_Idempotent(t *testing.T) {
	sorted := []float64{1, 2, 2, 3, 10, 11, 400}
	for _, rt := range append(slices.Clone(general), integer...) {
		t.Run(rt.name, func(t *testing.T) {
			out, err := rt.sort(slices.Clone(sorted))
			require.NoError(t, err)
			assert.Equal(t, sorted, out)
		})
	}
}

// Positive and negative zero compare equal but keep their sign bit, which
// makes relative order of equal values observable.
func TestStableRoutines_PreserveOrderOfEqualValues(t *testing.T) {
	negZero := math.Copysign(0, -1)
	in := []float64{1, 0, negZero, 2, negZero, 0, 1}
	wantSigns := []bool{false, true, true, false} // zeros in input order

	for _, rt := range append(slices.Clone(general), integer...) {
		if !rt.stable {
			continue
		}
		t.Run(rt.name, func(t *testing.T) {
			out, err := rt.sort(slices.Clone(in))
			require.NoError(t, err)
			var signs []bool
			for _, v := range out {
				if v == 0 {
					signs = append(signs, math.Signbit(v))
				}
			}
			assert.Equal(t, wantSigns, signs)
		})
	}
}

func TestInPlaceRoutines_MutateCaller(t *testing.T) {
	for _, rt := range []routine{general[0], general[1], general[2], general[3], integer[0], integer[1]} {
		t.Run(rt.name, func(t *testing.T) {
			xs := []float64{4, 2, 2, 8, 3, 3, 1}
			_, err := rt.sort(xs)
			require.NoError(t, err)
			assert.Equal(t, []float64{1, 2, 2, 3, 3, 4, 8}, xs)
		})
	}
}

func TestInsertion(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 5, 5, 9}, sorting.Insertion([]float64{5, 2, 9, 1, 5}))
}

func TestInsertionAdd(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		v    float64
		want []float64
	}{
		{name: "empty", in: nil, v: 4, want: []float64{4}},
		{name: "middle", in: []float64{9, 1, 5}, v: 3, want: []float64{1, 3, 5, 9}},
		{name: "duplicate", in: []float64{2, 2}, v: 2, want: []float64{2, 2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sorting.InsertionAdd(tt.in, tt.v))
		})
	}
}

func TestHeap_KeepsOriginal(t *testing.T) {
	in := []float64{3, 1, 2}
	res := sorting.Heap(in)
	assert.Equal(t, []float64{3, 1, 2}, res.Original)
	assert.Equal(t, []float64{1, 2, 3}, res.Sorted)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestHeap_Empty(t *testing.T) {
	res := sorting.Heap(nil)
	assert.Empty(t, res.Original)
	assert.Empty(t, res.Sorted)
}

func TestHeapInto_SortsExistingAndAppended(t *testing.T) {
	dst := []float64{10, -1}
	out := sorting.HeapInto(dst, []float64{3, 1, 2})
	assert.Equal(t, []float64{-1, 1, 2, 3, 10}, out)
}

func TestHeapify(t *testing.T) {
	xs := []float64{1, 9, 8, 4, 5}
	sorting.Heapify(xs, len(xs), 0)
	assert.Equal(t, 9.0, xs[0])
	assert.Equal(t, []float64{9, 5, 8, 4, 1}, xs)

	// Elements past n are ignored.
	ys := []float64{1, 2, 100}
	sorting.Heapify(ys, 2, 0)
	assert.Equal(t, []float64{2, 1, 100}, ys)
}

func TestQuick_Empty(t *testing.T) {
	assert.Empty(t, sorting.Quick([]float64{}))
}

func TestQuick_AdversarialInputDoesNotRecurse(t *testing.T) {
	// Already sorted input is Lomuto's worst case.
	xs := make([]float64, 5_000)
	for i := range xs {
		xs[i] = float64(i)
	}
	out := sorting.Quick(xs)
	assert.True(t, sorting.IsSorted(out))
}

func TestCounting(t *testing.T) {
	out, err := sorting.Counting([]float64{4, 2, 2, 8, 3, 3, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 2, 3, 3, 4, 8}, out)
}

func TestCounting_NegativeValues(t *testing.T) {
	out, err := sorting.Counting([]float64{0, -3, 5, -3, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, -3, 0, 2, 5}, out)
}

func TestRadix(t *testing.T) {
	out, err := sorting.Radix([]float64{170, 45, 75, 90, 802, 24, 2, 66})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 24, 45, 66, 75, 90, 170, 802}, out)
}

func TestRadix_AllZeros(t *testing.T) {
	out, err := sorting.Radix([]float64{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, out)
}

func TestBucket(t *testing.T) {
	in := []float64{0.42, 0.32, 0.33, 0.52, 0.37, 0.47, 0.51, 0.0, 0.05, 0.99}
	out, err := sorting.Bucket(slices.Clone(in))
	require.NoError(t, err)
	requireSortedPermutation(t, in, out)
}

func TestBucket_Empty(t *testing.T) {
	out, err := sorting.Bucket([]float64{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestIsSorted(t *testing.T) {
	assert.True(t, sorting.IsSorted(nil))
	assert.True(t, sorting.IsSorted([]float64{1, 1, 2}))
	assert.False(t, sorting.IsSorted([]float64{2, 1}))
}
