package gp

import (
	"fmt"
	"math"

	"github.com/arloliu/gpfield/errs"
	"github.com/arloliu/gpfield/internal/options"
	"github.com/arloliu/gpfield/kernel"
)

// Defaults used by Conditional.
const (
	DefaultTau            = 0.001
	DefaultWindow         = 5
	DefaultConditionLimit = 1e12
)

// Config holds the solver settings.
type Config struct {
	// Tau is the observation noise variance added to the reference block diagonal.
	Tau float64
	// Window is the moving-average width used for the prior mean.
	Window int
	// Cache, when set, supplies and stores Gram matrices.
	Cache *kernel.Cache
	// ConditionLimit is the largest accepted condition number of the noisy
	// reference block.
	ConditionLimit float64
}

func defaultConfig() Config {
	return Config{
		Tau:            DefaultTau,
		Window:         DefaultWindow,
		ConditionLimit: DefaultConditionLimit,
	}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithTau sets the observation noise variance. tau must be finite and >= 0.
func WithTau(tau float64) Option {
	return options.New(func(cfg *Config) error {
		if math.IsNaN(tau) || math.IsInf(tau, 0) || tau < 0 {
			return fmt.Errorf("%w: tau must be finite and non-negative, got %v", errs.ErrInvalidConfig, tau)
		}
		cfg.Tau = tau

		return nil
	})
}

// WithWindow sets the moving-average window. w must be >= 1.
func WithWindow(w int) Option {
	return options.New(func(cfg *Config) error {
		if w < 1 {
			return fmt.Errorf("%w: moving average window must be >= 1, got %d", errs.ErrInvalidConfig, w)
		}
		cfg.Window = w

		return nil
	})
}

// WithCache shares Gram matrices through c. A nil cache disables caching.
func WithCache(c *kernel.Cache) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Cache = c
	})
}

// WithConditionLimit sets the largest accepted condition number of the noisy
// reference covariance. Pass math.Inf(1) to only reject matrices that are not
// positive definite.
//
// The posterior covariance solved in Posterior.CVLogLikelihood is held to
// the larger of this limit and 1/ε (about 4.5e15).
func WithConditionLimit(limit float64) Option {
	return options.New(func(cfg *Config) error {
		if math.IsNaN(limit) || limit < 1 {
			return fmt.Errorf("%w: condition limit must be >= 1, got %v", errs.ErrInvalidConfig, limit)
		}
		cfg.ConditionLimit = limit

		return nil
	})
}
