package search

import (
	"fmt"
	"math"

	"github.com/arloliu/gpfield/errs"
)

// Range is one hyperparameter axis of the search grid.
type Range struct {
	Name   string
	Values []float64
}

// Grid returns the Cartesian product of the range values. Each combination
// lists one value per range in range order; the first range varies slowest.
func Grid(ranges []Range) [][]float64 {
	if len(ranges) == 0 {
		return nil
	}

	total := 1
	for _, r := range ranges {
		total *= len(r.Values)
	}

	combos := make([][]float64, total)
	for i := range combos {
		combo := make([]float64, len(ranges))
		rem := i
		for d := len(ranges) - 1; d >= 0; d-- {
			n := len(ranges[d].Values)
			combo[d] = ranges[d].Values[rem%n]
			rem /= n
		}
		combos[i] = combo
	}

	return combos
}

// Fold is one cross-validation split of the index range 0..n-1.
type Fold struct {
	// Test holds the held-out indices, contiguous and ascending.
	Test []int
	// Train holds every other index, ascending.
	Train []int
}

// KFold splits 0..n-1 into folds contiguous, unshuffled folds. The first
// n%folds folds hold one extra element.
//
// Returns errs.ErrInvalidConfig unless 2 <= folds <= n.
func KFold(n, folds int) ([]Fold, error) {
	if folds < 2 || folds > n {
		return nil, fmt.Errorf("%w: need 2 <= folds <= %d data points, got %d folds", errs.ErrInvalidConfig, n, folds)
	}

	out := make([]Fold, folds)
	start := 0
	for f := range folds {
		size := n / folds
		if f < n%folds {
			size++
		}

		fold := Fold{
			Test:  make([]int, 0, size),
			Train: make([]int, 0, n-size),
		}
		for i := range n {
			if i >= start && i < start+size {
				fold.Test = append(fold.Test, i)
			} else {
				fold.Train = append(fold.Train, i)
			}
		}
		out[f] = fold
		start += size
	}

	return out, nil
}

// Cost returns the number of fold evaluations a search over ranges performs:
// the number of combinations times folds.
func Cost(ranges []Range, folds int) int {
	if len(ranges) == 0 {
		return 0
	}

	combos := 1
	for _, r := range ranges {
		combos *= len(r.Values)
	}

	return combos * folds
}

// Arange returns start, start+step, ... up to but excluding stop, the way
// range specifications in search configs are written. It returns
// ceil((stop-start)/step) values computed as start + i*step.
//
// Returns errs.ErrInvalidConfig for a zero, negative or non-finite step, or
// when stop is not after start.
func Arange(start, stop, step float64) ([]float64, error) {
	for _, v := range []float64{start, stop, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: range bounds must be finite", errs.ErrInvalidConfig)
		}
	}
	if step <= 0 || stop <= start {
		return nil, fmt.Errorf("%w: need start < stop and step > 0, got start=%v stop=%v step=%v",
			errs.ErrInvalidConfig, start, stop, step)
	}

	n := int(math.Ceil((stop - start) / step))
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}

	return out, nil
}
