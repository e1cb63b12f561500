package smooth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMovingAverage(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		w    int
		want []float64
	}{
		{
			// numpy.convolve([1..5], ones(3)/3, "same")
			name: "odd window",
			x:    []float64{1, 2, 3, 4, 5},
			w:    3,
			want: []float64{1, 2, 3, 4, 3},
		},
		{
			// numpy.convolve([0..9], ones(5)/5, "same")
			name: "default window",
			x:    []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
			w:    5,
			want: []float64{0.6, 1.2, 2, 3, 4, 5, 6, 7, 6, 4.8},
		},
		{
			// numpy.convolve([1..5], ones(4)/4, "same")
			name: "even window",
			x:    []float64{1, 2, 3, 4, 5},
			w:    4,
			want: []float64{0.75, 1.5, 2.5, 3.5, 3},
		},
		{
			name: "window of one is identity",
			x:    []float64{3, -1, 2},
			w:    1,
			want: []float64{3, -1, 2},
		},
		{
			name: "shorter than window keeps length",
			x:    []float64{2, 4},
			w:    5,
			want: []float64{1.2, 1.2},
		},
		{
			name: "empty",
			x:    nil,
			w:    5,
			want: []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MovingAverage(tt.x, tt.w)
			require.Len(t, got, len(tt.x))
			require.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}
}

func TestMovingAverageDoesNotModifyInput(t *testing.T) {
	x := []float64{1, 2, 3}
	_ = MovingAverage(x, 3)
	require.Equal(t, []float64{1, 2, 3}, x)
}
