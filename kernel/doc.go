// Package kernel provides the stationary covariance functions used by the
// Gaussian Process solver.
//
// A Kernel maps the distance between two 1-D coordinates to a covariance and
// builds the full Gram matrix over a coordinate set. Hyperparameters are
// passed positionally as Params in the order reported by ParamNames, which
// lets the grid search treat every kernel family the same way.
//
// # Families
//
//   - RBF: sigma * exp(-d²/(2l²)), params (l, sigma)
//   - SquaredExponential: sigma² * exp(-d²/l²), params (l, sigma)
//   - RationalQuadratic: sigma * (1 + d²/(2αl²))^(-α), params (l, sigma, alpha)
//   - Func: any caller supplied covariance of the distance
//
// RBF and SquaredExponential describe the same family with a different
// normalisation, so their tuned hyperparameters are not interchangeable.
//
// # Basic Usage
//
//	k, err := kernel.ByName("rbf")
//	if err != nil {
//		return err
//	}
//	gram, err := k.Matrix([]float64{0, 1, 2}, kernel.Params{1.0, 0.5})
//
// # Caching
//
// Building a Gram matrix costs O(N²) time and memory. Cache keeps recently
// built matrices keyed by kernel name, coordinates and hyperparameters so the
// folds of one grid-search combination share a single matrix:
//
//	cache, _ := kernel.NewCache(8)
//	gram, err := cache.Matrix(k, coords, params)
//
// Matrices returned by a Cache are shared and must not be modified.
package kernel
