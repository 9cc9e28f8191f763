package sorting_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/toolalgo/sorting"
)

func TestDomainErrors(t *testing.T) {
	tests := []struct {
		name    string
		sort    func([]float64) ([]float64, error)
		in      []float64
		routine string
		index   int
	}{
		{name: "counting fraction", sort: sorting.Counting, in: []float64{1, 2.5}, routine: "counting", index: 1},
		{name: "counting NaN", sort: sorting.Counting, in: []float64{math.NaN()}, routine: "counting", index: 0},
		{name: "counting huge range", sort: sorting.Counting, in: []float64{0, sorting.MaxCountingRange}, routine: "counting", index: 0},
		{name: "radix negative", sort: sorting.Radix, in: []float64{3, -1}, routine: "radix", index: 1},
		{name: "radix fraction", sort: sorting.Radix, in: []float64{0.5}, routine: "radix", index: 0},
		{name: "radix infinity", sort: sorting.Radix, in: []float64{math.Inf(1)}, routine: "radix", index: 0},
		{name: "bucket one", sort: sorting.Bucket, in: []float64{0.1, 1.0}, routine: "bucket", index: 1},
		{name: "bucket negative", sort: sorting.Bucket, in: []float64{-0.1}, routine: "bucket", index: 0},
		{name: "bucket past last bucket", sort: sorting.Bucket, in: []float64{0.1, 0.25}, routine: "bucket", index: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := slices.Clone(tt.in)
			_, err := tt.sort(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, sorting.ErrDomain))

			var de *sorting.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.routine, de.Routine)
			assert.Equal(t, tt.index, de.Index)

			// Rejected input is left as it was (NaN never equals itself).
			for i := range tt.in {
				if !math.IsNaN(tt.in[i]) {
					assert.Equal(t, tt.in[i], in[i])
				}
			}
		})
	}
}

func TestDomainError_Message(t *testing.T) {
	_, err := sorting.Radix([]float64{-2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "radix sort")
	assert.Contains(t, err.Error(), "is negative")
}
