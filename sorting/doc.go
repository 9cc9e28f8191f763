// Package sorting implements the ascending sort routines served by toolalgo.
//
// Every routine takes a []float64 and returns it sorted ascending. Unless
// noted otherwise the caller's slice is reordered in place and the returned
// slice shares its backing array.
//
// # Routines
//
//   - Insertion, InsertionAdd: shift-and-insert, stable, O(n²).
//   - Heap, HeapInto: max-heap sort into a second sequence, O(n log n).
//   - Selection: minimum-of-suffix swap, not stable, O(n²).
//   - Merge: top-down merge sort, stable (left run wins ties), O(n log n).
//   - Quick: Lomuto partition around the last element, O(n log n) average.
//   - Counting: stable counting sort over a bounded integer range.
//   - Radix: least-significant-digit decimal radix sort of non-negative integers.
//   - Bucket: ten-per-unit bucket sort of values in [0, 1).
//
// # Domains
//
// Counting, Radix and Bucket only accept inputs inside their numeric domain.
// A violation is reported as a *DomainError (errors.Is(err, ErrDomain)) and
// the input slice is left untouched.
//
// Comparison-based routines accept any float64. NaN never compares less than
// anything, so a slice containing NaN is still permuted but the result is not
// guaranteed to be ordered.
//
// # Concurrency
//
// Routines hold no state between calls. Concurrent calls are safe as long as
// each call owns its slice.
package sorting
