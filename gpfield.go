// Package gpfield fits one-dimensional Gaussian Process models to regularly
// sampled series, tunes their kernel hyperparameters by cross-validated grid
// search and advects particles through the velocity fields they produce.
//
// The library is organised in focused packages; this package adds
// convenience wrappers for the common path.
//
// # Core Features
//
//   - Conditional mean and covariance of query points given noisy
//     observations at reference points (package gp)
//   - Stationary kernels by name: RBF, squared exponential and rational
//     quadratic, plus user-defined kernels (package kernel)
//   - K-fold cross-validated grid search running combinations in parallel
//     (package search)
//   - Result tables with a compact, checksummed binary form and CSV export
//     (package table)
//   - Euler particle advection over gridded velocities (package advect)
//
// # Basic Usage
//
// Tuning the default kernel on a series:
//
//	res, err := gpfield.Optimize(data, []search.Range{
//		{Name: "l", Values: []float64{1, 2, 4, 8}},
//		{Name: "sigma", Values: []float64{0.1, 0.5, 1}},
//	}, search.WithFolds(5))
//	if err != nil {
//		return err
//	}
//
// Predicting with the winning hyperparameters:
//
//	post, err := gpfield.Predict(query, refCoords, refObs, res.Best)
//	if err != nil {
//		return err
//	}
//	mean, variance := post.MeanByInput(), post.VarianceByInput()
//
// Persisting the search:
//
//	blob, err := res.Table.Encode(table.WithCompression(format.CompressionZstd))
//
// # Package Structure
//
// For other kernels, cancellation, logging or caching use the gp, kernel and
// search packages directly.
package gpfield

import (
	"context"

	"github.com/arloliu/gpfield/gp"
	"github.com/arloliu/gpfield/kernel"
	"github.com/arloliu/gpfield/search"
)

// DefaultKernel returns the kernel used by Optimize and Predict: RBF with
// hyperparameters "l" and "sigma".
func DefaultKernel() kernel.Kernel {
	return kernel.RBF{}
}

// Optimize runs a cross-validated grid search over ranges with the default
// kernel.
//
// Parameters:
//   - data: Observed series; coordinates are the indices 0..len(data)-1
//   - ranges: Values for "l" and "sigma", in any order
//   - opts: Search options (see search.Option)
//
// Returns:
//   - *search.Result: Scores of every combination and the optimum
//   - error: See search.Optimize
//
// Example:
//
//	res, err := gpfield.Optimize(data, ranges,
//	    search.WithFolds(5),
//	    search.WithWorkers(4),
//	    search.WithSingularPolicy(search.Penalize),
//	)
func Optimize(data []float64, ranges []search.Range, opts ...search.Option) (*search.Result, error) {
	return search.Optimize(context.Background(), data, ranges, DefaultKernel(), opts...)
}

// Predict conditions the default kernel on ref/obs and returns the posterior
// at query.
//
// params maps hyperparameter names to values, so a search.Result.Best map
// can be passed as is.
//
// Returns errs.ErrInvalidHyperparameter when params does not name exactly
// "l" and "sigma" with positive values, or any error of gp.Conditional.
func Predict(query, ref, obs []float64, params map[string]float64, opts ...gp.Option) (*gp.Posterior, error) {
	k := DefaultKernel()
	p, err := kernel.ParamsFromMap(k, params)
	if err != nil {
		return nil, err
	}

	return gp.Conditional(query, ref, obs, k, p, opts...)
}
