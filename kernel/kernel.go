package kernel

import (
	"fmt"
	"math"

	"github.com/arloliu/gpfield/errs"
	"gonum.org/v1/gonum/mat"
)

// Params holds kernel hyperparameters in ParamNames order.
type Params []float64

// Kernel is a stationary covariance function over 1-D coordinates.
type Kernel interface {
	// Name returns the registry name, also used as the cache key prefix.
	Name() string
	// ParamNames returns the positional hyperparameter names.
	ParamNames() []string
	// Validate reports errs.ErrInvalidHyperparameter for a wrong parameter
	// count or out-of-domain values.
	Validate(p Params) error
	// Cov returns the covariance of two points separated by d.
	Cov(d float64, p Params) float64
	// Matrix builds the symmetric Gram matrix over x.
	Matrix(x []float64, p Params) (*mat.SymDense, error)
}

// gram fills the upper triangle of the Gram matrix over x using cov.
// The caller must have validated p.
func gram(x []float64, p Params, cov func(d float64, p Params) float64) *mat.SymDense {
	n := len(x)
	m := mat.NewSymDense(n, nil)
	for i := range n {
		for j := i; j < n; j++ {
			m.SetSym(i, j, cov(x[j]-x[i], p))
		}
	}

	return m
}

func buildMatrix(k Kernel, x []float64, p Params) (*mat.SymDense, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("%s gram matrix: %w", k.Name(), errs.ErrEmptyInput)
	}
	if err := k.Validate(p); err != nil {
		return nil, err
	}

	return gram(x, p, k.Cov), nil
}

// checkParams validates the count and requires every value to be finite and
// strictly positive.
func checkParams(name string, names []string, p Params) error {
	if len(p) != len(names) {
		return fmt.Errorf("%w: %s expects %d parameters %v, got %d",
			errs.ErrInvalidHyperparameter, name, len(names), names, len(p))
	}
	for i, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: %s parameter %s must be positive and finite, got %v",
				errs.ErrInvalidHyperparameter, name, names[i], v)
		}
	}

	return nil
}

// RBF is the radial basis function kernel sigma * exp(-d²/(2l²)).
// Its diagonal equals sigma.
type RBF struct{}

var _ Kernel = RBF{}

func (RBF) Name() string { return "rbf" }

func (RBF) ParamNames() []string { return []string{"l", "sigma"} }

func (k RBF) Validate(p Params) error {
	return checkParams(k.Name(), k.ParamNames(), p)
}

func (RBF) Cov(d float64, p Params) float64 {
	l, sigma := p[0], p[1]
	return sigma * math.Exp(-(d*d)/(2*l*l))
}

func (k RBF) Matrix(x []float64, p Params) (*mat.SymDense, error) {
	return buildMatrix(k, x, p)
}

// SquaredExponential is sigma² * exp(-d²/l²). Its diagonal equals sigma².
type SquaredExponential struct{}

var _ Kernel = SquaredExponential{}

func (SquaredExponential) Name() string { return "squared_exponential" }

func (SquaredExponential) ParamNames() []string { return []string{"l", "sigma"} }

func (k SquaredExponential) Validate(p Params) error {
	return checkParams(k.Name(), k.ParamNames(), p)
}

func (SquaredExponential) Cov(d float64, p Params) float64 {
	l, sigma := p[0], p[1]
	return sigma * sigma * math.Exp(-(d*d)/(l*l))
}

func (k SquaredExponential) Matrix(x []float64, p Params) (*mat.SymDense, error) {
	return buildMatrix(k, x, p)
}

// RationalQuadratic is sigma * (1 + d²/(2αl²))^(-α), a scale mixture of RBF
// kernels. It approaches RBF with the same l and sigma as alpha grows.
type RationalQuadratic struct{}

var _ Kernel = RationalQuadratic{}

func (RationalQuadratic) Name() string { return "rational_quadratic" }

func (RationalQuadratic) ParamNames() []string { return []string{"l", "sigma", "alpha"} }

func (k RationalQuadratic) Validate(p Params) error {
	return checkParams(k.Name(), k.ParamNames(), p)
}

func (RationalQuadratic) Cov(d float64, p Params) float64 {
	l, sigma, alpha := p[0], p[1], p[2]
	return sigma * math.Pow(1+(d*d)/(2*alpha*l*l), -alpha)
}

func (k RationalQuadratic) Matrix(x []float64, p Params) (*mat.SymDense, error) {
	return buildMatrix(k, x, p)
}
