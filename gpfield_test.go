package gpfield

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/gpfield/errs"
	"github.com/arloliu/gpfield/gp"
	"github.com/arloliu/gpfield/search"
)

func TestDefaultKernel(t *testing.T) {
	k := DefaultKernel()
	require.Equal(t, "rbf", k.Name())
	require.Equal(t, []string{"l", "sigma"}, k.ParamNames())
}

// TestOptimizeThenPredict runs the common path end to end.
func TestOptimizeThenPredict(t *testing.T) {
	data := make([]float64, 20)
	for i := range data {
		data[i] = math.Sin(float64(i) / 3)
	}

	res, err := Optimize(data, []search.Range{
		{Name: "sigma", Values: []float64{0.5, 1}},
		{Name: "l", Values: []float64{1, 2}},
	}, search.WithFolds(4))
	require.NoError(t, err)
	require.Equal(t, 4, res.Table.Len())
	require.Equal(t, 16, res.Evaluations)
	require.Contains(t, res.Best, "l")
	require.Contains(t, res.Best, "sigma")

	ref := make([]float64, len(data))
	for i := range ref {
		ref[i] = float64(i)
	}

	post, err := Predict([]float64{4.5, 10.5}, ref, data, res.Best, gp.WithTau(0.001))
	require.NoError(t, err)
	require.Equal(t, 2, post.Len())
	for _, v := range post.VarianceByInput() {
		require.GreaterOrEqual(t, v, -1e-12)
	}
}

func TestPredictInvalidParams(t *testing.T) {
	coords := []float64{0, 1, 2}

	_, err := Predict(coords, coords, coords, map[string]float64{"l": 1})
	require.ErrorIs(t, err, errs.ErrInvalidHyperparameter)

	_, err = Predict(coords, coords, coords, map[string]float64{"l": 1, "sigma": 0})
	require.ErrorIs(t, err, errs.ErrInvalidHyperparameter)
}
