// Package gp computes Gaussian Process conditional distributions over 1-D
// coordinates and scores held-out observations against them.
//
// # Model
//
// The prior mean is a centred moving average of the coordinates themselves,
// computed separately for the query and reference sets (window 5 by
// default). The prior covariance comes from a kernel.Kernel. Observations
// carry independent noise of variance tau (0.001 by default).
//
// # Basic Usage
//
//	post, err := gp.Conditional(query, ref, obs, kernel.RBF{}, kernel.Params{1.0, 0.5},
//		gp.WithTau(0.001),
//		gp.WithWindow(5),
//	)
//	if err != nil {
//		return err
//	}
//	mean := post.MeanByInput()
//	variance := post.VarianceByInput()
//
// # Cross-Validation Score
//
// Posterior.CVLogLikelihood scores held-out observations. The search package
// sums it over folds to rank hyperparameter combinations.
//
// # Numerical Failures
//
// The noisy reference block is factorised with Cholesky. A block that is not
// positive definite, or whose condition number exceeds the configured limit
// (1e12 by default), yields errs.ErrSingularMatrix instead of a meaningless
// result. The posterior covariance solved by CVLogLikelihood is held to the
// larger of that limit and 1/ε.
package gp
