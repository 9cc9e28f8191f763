// Package search finds a target value in a sequence of numbers.
//
// All routines return the index of the first match in their own traversal
// order, or NotFound (-1). An empty sequence always yields NotFound, and
// equality is exact: no tolerance is applied.
//
//   - Linear scans a flat slice front to back.
//   - Binary sorts the slice in place and bisects it. The caller's slice
//     is left sorted whether or not the target was found.
//   - DepthFirst and BreadthFirst walk a nested sequence built from
//     Element values. DepthFirst descends into a sub-sequence as soon as it
//     meets one; BreadthFirst checks every number of a sequence before
//     descending into that sequence's sub-sequences, in order.
//
// For nested walks the returned index is the position of the match inside
// the sequence that directly holds it, not a path from the root.
//
// Nested walks keep their pending sequences on an explicit stack, so nesting
// depth is limited by memory rather than by the goroutine stack.
package search

// NotFound is returned when the target is absent.
const NotFound = -1
