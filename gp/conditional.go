package gp

import (
	"fmt"
	"math"

	"github.com/arloliu/gpfield/errs"
	"github.com/arloliu/gpfield/interleave"
	"github.com/arloliu/gpfield/internal/options"
	"github.com/arloliu/gpfield/internal/pool"
	"github.com/arloliu/gpfield/internal/smooth"
	"github.com/arloliu/gpfield/kernel"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Conditional computes the posterior mean and covariance of the signal at the
// query coordinates given observations at the reference coordinates.
//
// The query and reference coordinates are merged into one sorted sequence and
// a single Gram matrix is built over it; its blocks give
//
//	mean = mu1 + K12 · (K22 + tau·I)⁻¹ · (y2 - mu2)
//	cov  = K11 - K12 · (K22 + tau·I)⁻¹ · K21
//
// where mu1 and mu2 are centred moving averages of the sorted query and
// reference coordinates. (K22 + tau·I) is factorised with Cholesky; it is
// never inverted explicitly.
//
// Parameters:
//   - query: coordinates to predict at; at least one, all finite
//   - ref: coordinates with observations; at least one, all finite
//   - obs: observations, obs[i] measured at ref[i]
//   - k: covariance kernel
//   - p: kernel hyperparameters in k.ParamNames() order
//   - opts: WithTau, WithWindow, WithCache, WithConditionLimit
//
// Returns:
//   - *Posterior: results ordered by ascending query coordinate
//   - error: errs.ErrDimensionMismatch, errs.ErrEmptyInput, errs.ErrNonFinite,
//     errs.ErrInvalidConfig, errs.ErrInvalidHyperparameter or
//     errs.ErrSingularMatrix
func Conditional(query, ref, obs []float64, k kernel.Kernel, p kernel.Params, opts ...Option) (*Posterior, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if err := validateInputs(query, ref, obs); err != nil {
		return nil, err
	}
	if err := k.Validate(p); err != nil {
		return nil, err
	}

	merged := interleave.Merge(query, ref)
	gram, err := cfg.Cache.Matrix(k, merged.Coords, p)
	if err != nil {
		return nil, err
	}

	k11 := symBlock(gram, merged.QueryIdx, 0)
	k12 := block(gram, merged.QueryIdx, merged.RefIdx)
	k22n := symBlock(gram, merged.RefIdx, cfg.Tau)

	var chol mat.Cholesky
	if ok := chol.Factorize(k22n); !ok {
		return nil, fmt.Errorf("%w: noisy reference covariance is not positive definite", errs.ErrSingularMatrix)
	}
	if cond := chol.Cond(); math.IsNaN(cond) || cond > cfg.ConditionLimit {
		return nil, fmt.Errorf("%w: noisy reference covariance condition number %.3g exceeds %.3g",
			errs.ErrSingularMatrix, cond, cfg.ConditionLimit)
	}

	sortedQuery := interleave.Extract(merged.Coords, merged.QueryIdx)
	sortedRef := interleave.Extract(merged.Coords, merged.RefIdx)
	mu1 := smooth.MovingAverage(sortedQuery, cfg.Window)
	mu2 := smooth.MovingAverage(sortedRef, cfg.Window)

	resid, release := pool.GetFloat64Slice(len(ref))
	defer release()
	for i, src := range merged.RefSource {
		resid[i] = obs[src] - mu2[i]
	}

	var alpha mat.VecDense
	if err := chol.SolveVecTo(&alpha, mat.NewVecDense(len(resid), resid)); err != nil {
		return nil, fmt.Errorf("%w: solving for the posterior mean: %w", errs.ErrSingularMatrix, err)
	}

	var shift mat.VecDense
	shift.MulVec(k12, &alpha)
	mean := make([]float64, len(mu1))
	floats.AddTo(mean, mu1, shift.RawVector().Data)

	var gain mat.Dense
	if err := chol.SolveTo(&gain, k12.T()); err != nil {
		return nil, fmt.Errorf("%w: solving for the posterior covariance: %w", errs.ErrSingularMatrix, err)
	}
	var explained mat.Dense
	explained.Mul(k12, &gain)

	var cov mat.Dense
	cov.Sub(k11, &explained)

	return &Posterior{
		Coords:         sortedQuery,
		Source:         merged.QuerySource,
		Mean:           mean,
		Cov:            symmetrize(&cov),
		NoisyRefCov:    k22n,
		logDet:         chol.LogDet(),
		nRef:           len(ref),
		conditionLimit: cfg.ConditionLimit,
	}, nil
}

func validateInputs(query, ref, obs []float64) error {
	if len(ref) != len(obs) {
		return fmt.Errorf("%w: %d reference coordinates but %d observations",
			errs.ErrDimensionMismatch, len(ref), len(obs))
	}
	if len(query) == 0 {
		return fmt.Errorf("%w: no query coordinates", errs.ErrEmptyInput)
	}
	if len(ref) == 0 {
		return fmt.Errorf("%w: no reference coordinates", errs.ErrEmptyInput)
	}

	for _, in := range []struct {
		name   string
		values []float64
	}{
		{"query coordinate", query},
		{"reference coordinate", ref},
		{"observation", obs},
	} {
		if err := checkFinite(in.name, in.values); err != nil {
			return err
		}
	}

	return nil
}

func checkFinite(name string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s %d is %v", errs.ErrNonFinite, name, i, v)
		}
	}

	return nil
}
