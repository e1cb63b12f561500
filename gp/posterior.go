package gp

import (
	"fmt"
	"math"

	"github.com/arloliu/gpfield/errs"
	"github.com/arloliu/gpfield/internal/pool"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Posterior is the conditional distribution at the query coordinates.
//
// All per-point slices and the rows of Cov are ordered by ascending query
// coordinate. Source maps each position back to the caller's query order.
type Posterior struct {
	// Coords holds the query coordinates, sorted.
	Coords []float64
	// Source[i] is the index in the caller's query slice of Coords[i].
	Source []int
	// Mean is the posterior mean.
	Mean []float64
	// Cov is the posterior covariance.
	Cov *mat.SymDense
	// NoisyRefCov is the reference block with tau added to its diagonal.
	NoisyRefCov *mat.SymDense

	logDet         float64
	nRef           int
	conditionLimit float64
}

// Len returns the number of query points.
func (p *Posterior) Len() int {
	return len(p.Mean)
}

// Variance returns the diagonal of Cov in sorted order.
func (p *Posterior) Variance() []float64 {
	out := make([]float64, p.Len())
	for i := range out {
		out[i] = p.Cov.At(i, i)
	}

	return out
}

// MeanByInput returns Mean in the caller's original query order.
func (p *Posterior) MeanByInput() []float64 {
	out := make([]float64, p.Len())
	for i, src := range p.Source {
		out[src] = p.Mean[i]
	}

	return out
}

// VarianceByInput returns Variance in the caller's original query order.
func (p *Posterior) VarianceByInput() []float64 {
	out := make([]float64, p.Len())
	for i, src := range p.Source {
		out[src] = p.Cov.At(i, i)
	}

	return out
}

// LogDetNoisyRef returns ln|K22 + tau·I| taken from its Cholesky factor.
func (p *Posterior) LogDetNoisyRef() float64 {
	return p.logDet
}

// CVLogLikelihood scores held-out observations against the posterior.
//
// With n the reference count and k = len(yTest):
//
//	term1 = -( (n/k)/2 · ln(2π) + ½ · ln|K22 + tau·I| )
//	term2 = ½ · rᵀ · Cov⁻¹ · r,   r = yTest - Mean
//	score = term1 - term2
//
// The normalising exponent (n/k)/2 and the use of the reference block
// determinant in term1 are the established scoring convention of the grid
// search; they are not the textbook Gaussian log density.
//
// Parameters:
//   - yTest: held-out observations, yTest[i] measured at the caller's query[i]
//
// Returns:
//   - float64: the fold score, higher is better
//   - error: errs.ErrDimensionMismatch, errs.ErrNonFinite or errs.ErrSingularMatrix
func (p *Posterior) CVLogLikelihood(yTest []float64) (float64, error) {
	k := p.Len()
	if len(yTest) != k {
		return 0, fmt.Errorf("%w: %d held-out observations for %d query points",
			errs.ErrDimensionMismatch, len(yTest), k)
	}
	if err := checkFinite("held-out observation", yTest); err != nil {
		return 0, err
	}

	resid, release := pool.GetFloat64Slice(k)
	defer release()
	for i, src := range p.Source {
		resid[i] = yTest[src] - p.Mean[i]
	}

	weighted, err := p.solveCov(resid)
	if err != nil {
		return 0, err
	}

	d := float64(p.nRef) / float64(k)
	term1 := -(d/2*math.Log(2*math.Pi) + 0.5*p.logDet)
	term2 := 0.5 * floats.Dot(resid, weighted)

	return term1 - term2, nil
}

// maxPosteriorCondition is 1/ε for float64. Past it a solve with the
// posterior covariance carries no correct digits.
const maxPosteriorCondition = 1 / 2.220446049250313e-16

// posteriorConditionLimit is the condition number above which the posterior
// covariance counts as singular: the configured limit, raised to 1/ε.
// Smooth kernels routinely push the posterior past the reference block
// limit while the solve stays accurate.
func (p *Posterior) posteriorConditionLimit() float64 {
	return max(p.conditionLimit, maxPosteriorCondition)
}

// solveCov returns Cov⁻¹ r, trying Cholesky first and LU second. Both paths
// reject a covariance whose condition number exceeds
// posteriorConditionLimit.
func (p *Posterior) solveCov(r []float64) ([]float64, error) {
	rv := mat.NewVecDense(len(r), r)
	limit := p.posteriorConditionLimit()

	var chol mat.Cholesky
	if chol.Factorize(p.Cov) && chol.Cond() <= limit {
		var x mat.VecDense
		if err := chol.SolveVecTo(&x, rv); err == nil {
			return x.RawVector().Data, nil
		}
	}

	var lu mat.LU
	lu.Factorize(p.Cov)
	if cond := lu.Cond(); math.IsNaN(cond) || cond > limit {
		return nil, fmt.Errorf("%w: posterior covariance condition number %.3g exceeds %.3g",
			errs.ErrSingularMatrix, cond, limit)
	}

	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, rv); err != nil {
		return nil, fmt.Errorf("%w: posterior covariance: %w", errs.ErrSingularMatrix, err)
	}

	return x.RawVector().Data, nil
}
