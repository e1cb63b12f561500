package kernel

import (
	"sync"
	"testing"

	"github.com/arloliu/gpfield/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCache(t *testing.T) {
	_, err := NewCache(0)
	require.ErrorIs(t, err, errs.ErrInvalidConfig)

	c, err := NewCache(2)
	require.NoError(t, err)
	require.Zero(t, c.Len())
}

func TestCacheMatrix(t *testing.T) {
	c, err := NewCache(2)
	require.NoError(t, err)

	x := []float64{0, 1, 2, 3}
	p := Params{1, 1}

	m1, err := c.Matrix(RBF{}, x, p)
	require.NoError(t, err)
	m2, err := c.Matrix(RBF{}, []float64{0, 1, 2, 3}, Params{1, 1})
	require.NoError(t, err)
	require.Same(t, m1, m2, "identical requests must share one matrix")

	hits, misses := c.Stats()
	require.Equal(t, uint64(1), hits)
	require.Equal(t, uint64(1), misses)

	t.Run("different params miss", func(t *testing.T) {
		m3, err := c.Matrix(RBF{}, x, Params{2, 1})
		require.NoError(t, err)
		require.NotSame(t, m1, m3)
	})

	t.Run("different kernel misses", func(t *testing.T) {
		m4, err := c.Matrix(SquaredExponential{}, x, p)
		require.NoError(t, err)
		require.NotSame(t, m1, m4)
		require.Equal(t, 1.0, m4.At(0, 0))
	})

	t.Run("eviction keeps size bound", func(t *testing.T) {
		require.Equal(t, 2, c.Len())
	})

	t.Run("caller mutation does not poison key material", func(t *testing.T) {
		c2, err := NewCache(4)
		require.NoError(t, err)

		xs := []float64{0, 1}
		a, err := c2.Matrix(RBF{}, xs, p)
		require.NoError(t, err)
		xs[1] = 5
		b, err := c2.Matrix(RBF{}, xs, p)
		require.NoError(t, err)
		require.NotSame(t, a, b)
	})

	t.Run("purge", func(t *testing.T) {
		c.Purge()
		require.Zero(t, c.Len())
	})
}

func TestCacheSeparatesCustomKernels(t *testing.T) {
	c, err := NewCache(4)
	require.NoError(t, err)

	x := []float64{0, 1, 2}
	p := Params{1}
	flat, err := NewFunc("custom", []string{"a"}, func(_ float64, p Params) float64 { return p[0] }, nil)
	require.NoError(t, err)
	decay, err := NewFunc("custom", []string{"a"}, func(d float64, p Params) float64 { return p[0] / (1 + d) }, nil)
	require.NoError(t, err)

	g1, err := c.Matrix(flat, x, p)
	require.NoError(t, err)
	g2, err := c.Matrix(decay, x, p)
	require.NoError(t, err)

	require.Equal(t, 1.0, g1.At(0, 2))
	require.InDelta(t, 1.0/3, g2.At(0, 2), 1e-15)

	hits, misses := c.Stats()
	require.Zero(t, hits)
	require.Equal(t, uint64(2), misses)

	again, err := c.Matrix(flat, x, p)
	require.NoError(t, err)
	require.Same(t, g1, again)
}

func TestCacheErrorsAreNotCached(t *testing.T) {
	c, err := NewCache(2)
	require.NoError(t, err)

	_, err = c.Matrix(RBF{}, []float64{0, 1}, Params{-1, 1})
	require.ErrorIs(t, err, errs.ErrInvalidHyperparameter)
	require.Zero(t, c.Len())
}

func TestNilCache(t *testing.T) {
	var c *Cache

	m, err := c.Matrix(RBF{}, []float64{0, 1}, Params{1, 2})
	require.NoError(t, err)
	require.Equal(t, 2.0, m.At(0, 0))
	require.Zero(t, c.Len())

	hits, misses := c.Stats()
	require.Zero(t, hits)
	require.Zero(t, misses)
	require.NotPanics(t, c.Purge)
}

func TestCacheConcurrent(t *testing.T) {
	c, err := NewCache(4)
	require.NoError(t, err)

	x := []float64{0, 0.5, 1, 1.5, 2}
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := c.Matrix(RBF{}, x, Params{float64(i%3 + 1), 1})
			if assert.NoError(t, err) {
				assert.Equal(t, 1.0, m.At(2, 2))
			}
		}(i)
	}
	wg.Wait()

	hits, misses := c.Stats()
	require.Equal(t, uint64(16), hits+misses)
	require.LessOrEqual(t, c.Len(), 3)
}
