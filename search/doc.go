// Package search tunes kernel hyperparameters by k-fold cross-validated grid
// search.
//
// Every combination of the range values is scored by holding out each
// contiguous fold of the data in turn, conditioning on the rest with
// gp.Conditional and summing gp.Posterior.CVLogLikelihood over folds. Scores
// land in a table.Table whose rows follow grid order, so the tuple to score
// association does not depend on which worker finished first.
//
// # Basic Usage
//
//	res, err := search.Optimize(ctx, data, []search.Range{
//		{Name: "l", Values: []float64{0.5, 1, 2}},
//		{Name: "sigma", Values: []float64{0.1, 1}},
//	}, kernel.RBF{},
//		search.WithFolds(5),
//		search.WithWorkers(runtime.NumCPU()),
//	)
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.Best["l"], res.Best["sigma"], res.BestScore)
//
// # Singular Matrices
//
// By default the first singular covariance aborts the search with a
// *FoldError. WithSingularPolicy(Penalize) instead gives the combination the
// worst score, records a Failure and keeps going.
//
// # Concurrency
//
// Combinations run on up to WithWorkers goroutines; folds within one
// combination run sequentially and share a single Gram matrix through a
// kernel.Cache.
package search
