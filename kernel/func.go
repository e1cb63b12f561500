package kernel

import (
	"fmt"
	"math"

	"github.com/arloliu/gpfield/errs"
	"gonum.org/v1/gonum/mat"
)

// Func adapts a caller supplied covariance function into a Kernel.
//
// The function must be symmetric in d and produce a positive semi-definite
// Gram matrix; Func cannot check either property.
type Func struct {
	name     string
	names    []string
	cov      func(d float64, p Params) float64
	validate func(p Params) error
}

var _ Kernel = (*Func)(nil)

// NewFunc creates a custom kernel.
//
// Parameters:
//   - name: kernel name used in logs and cache keys; must not be empty or
//     a built-in kernel name or alias
//   - paramNames: positional hyperparameter names; non-empty and unique
//   - cov: covariance as a function of the distance d
//   - validate: optional extra parameter check, run after the count and
//     finiteness checks; may be nil
//
// Returns:
//   - *Func: the kernel
//   - error: errs.ErrInvalidConfig if name, paramNames or cov are unusable
func NewFunc(name string, paramNames []string, cov func(d float64, p Params) float64, validate func(p Params) error) (*Func, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: kernel name must not be empty", errs.ErrInvalidConfig)
	}
	if isBuiltin(name) {
		return nil, fmt.Errorf("%w: kernel name %q is reserved for a built-in kernel", errs.ErrInvalidConfig, name)
	}
	if cov == nil {
		return nil, fmt.Errorf("%w: kernel %s has no covariance function", errs.ErrInvalidConfig, name)
	}

	seen := make(map[string]struct{}, len(paramNames))
	for _, n := range paramNames {
		if n == "" {
			return nil, fmt.Errorf("%w: kernel %s has an empty parameter name", errs.ErrInvalidConfig, name)
		}
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("%w: kernel %s has duplicate parameter %q", errs.ErrInvalidConfig, name, n)
		}
		seen[n] = struct{}{}
	}

	return &Func{
		name:     name,
		names:    append([]string(nil), paramNames...),
		cov:      cov,
		validate: validate,
	}, nil
}

func (f *Func) Name() string { return f.name }

func (f *Func) ParamNames() []string { return append([]string(nil), f.names...) }

// Validate checks the parameter count and finiteness, then runs the custom
// validator. Errors from the validator are wrapped with
// errs.ErrInvalidHyperparameter unless they already match it.
func (f *Func) Validate(p Params) error {
	if len(p) != len(f.names) {
		return fmt.Errorf("%w: %s expects %d parameters %v, got %d",
			errs.ErrInvalidHyperparameter, f.name, len(f.names), f.names, len(p))
	}
	for i, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s parameter %s must be finite, got %v",
				errs.ErrInvalidHyperparameter, f.name, f.names[i], v)
		}
	}
	if f.validate == nil {
		return nil
	}
	if err := f.validate(p); err != nil {
		return fmt.Errorf("%w: %s: %w", errs.ErrInvalidHyperparameter, f.name, err)
	}

	return nil
}

func (f *Func) Cov(d float64, p Params) float64 {
	return f.cov(d, p)
}

func (f *Func) Matrix(x []float64, p Params) (*mat.SymDense, error) {
	return buildMatrix(f, x, p)
}
