// Package interleave merges query and reference coordinates into one sorted
// sequence and records which sorted positions came from which set.
//
// The Gaussian Process solver builds a single Gram matrix over the merged
// coordinates and slices its query and reference blocks with the two index
// sets, so both sets must partition the merged positions exactly.
package interleave

import (
	"cmp"
	"slices"
)

// Merged is the result of Merge.
type Merged struct {
	// Coords holds every query and reference coordinate in ascending order.
	Coords []float64
	// QueryIdx and RefIdx are ascending positions into Coords. Together they
	// cover 0..len(Coords)-1 exactly once.
	QueryIdx []int
	RefIdx   []int
	// QuerySource[i] is the index in the query input of the point at
	// Coords[QueryIdx[i]]; RefSource does the same for the reference input.
	QuerySource []int
	RefSource   []int
}

// Len returns the total number of merged coordinates.
func (m Merged) Len() int {
	return len(m.Coords)
}

// Merge concatenates query then ref, stable-sorts by value and splits the
// sorted positions by origin.
//
// Ties keep input order: at equal values query points come before reference
// points, and points from the same set keep their relative order. Inputs are
// not modified. Coordinates must not be NaN.
//
// Example:
//
//	m := interleave.Merge([]float64{1, 2, 3, 4, 5}, []float64{0.5, 1, 1.5, 2, 2.5})
//	// m.QueryIdx == [1 4 7 8 9], m.RefIdx == [0 2 3 5 6]
func Merge(query, ref []float64) Merged {
	n := len(query) + len(ref)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	at := func(i int) float64 {
		if i < len(query) {
			return query[i]
		}

		return ref[i-len(query)]
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(at(a), at(b))
	})

	m := Merged{
		Coords:      make([]float64, n),
		QueryIdx:    make([]int, 0, len(query)),
		RefIdx:      make([]int, 0, len(ref)),
		QuerySource: make([]int, 0, len(query)),
		RefSource:   make([]int, 0, len(ref)),
	}
	for pos, src := range order {
		m.Coords[pos] = at(src)
		if src < len(query) {
			m.QueryIdx = append(m.QueryIdx, pos)
			m.QuerySource = append(m.QuerySource, src)
		} else {
			m.RefIdx = append(m.RefIdx, pos)
			m.RefSource = append(m.RefSource, src-len(query))
		}
	}

	return m
}

// Extract returns values[idx[0]], values[idx[1]], ... as a new slice.
func Extract(values []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = values[j]
	}

	return out
}
