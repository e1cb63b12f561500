// Package smooth computes the centred moving average used as the prior mean
// of the Gaussian Process.
package smooth

import "gonum.org/v1/gonum/floats"

// MovingAverage returns the centred moving average of x over a window of w
// points, with zeros assumed beyond both ends.
//
//	out[i] = (1/w) * sum(x[j]) for j in [i+c-(w-1), i+c] ∩ [0, len(x))
//	c = (w-1)/2 (integer division)
//
// The output always has len(x) elements. For len(x) >= w it matches a
// "same"-mode convolution with a uniform kernel of width w. w must be >= 1.
func MovingAverage(x []float64, w int) []float64 {
	out := make([]float64, len(x))
	if w < 1 {
		return out
	}

	c := (w - 1) / 2
	scale := 1 / float64(w)
	for i := range x {
		lo := max(i+c-(w-1), 0)
		hi := min(i+c, len(x)-1)
		if lo > hi {
			continue
		}
		out[i] = floats.Sum(x[lo:hi+1]) * scale
	}

	return out
}
