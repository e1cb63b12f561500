package search

import (
	"fmt"
	"math"
	"strings"

	"github.com/arloliu/gpfield/errs"
	"github.com/arloliu/gpfield/gp"
	"github.com/arloliu/gpfield/internal/options"
	"github.com/arloliu/gpfield/table"
	"github.com/rs/zerolog"
)

// DefaultFolds is the number of cross-validation folds used by Optimize.
const DefaultFolds = 10

// autoCacheSize makes Optimize size the Gram matrix cache from the worker count.
const autoCacheSize = -1

// SingularPolicy decides what happens when a fold hits a singular covariance.
type SingularPolicy uint8

const (
	// FailFast aborts the search with a *FoldError.
	FailFast SingularPolicy = iota
	// Penalize gives the combination the worst possible score, records the
	// failure in Result.Failures and continues.
	Penalize
)

func (p SingularPolicy) String() string {
	switch p {
	case FailFast:
		return "fail_fast"
	case Penalize:
		return "penalize"
	default:
		return "unknown"
	}
}

// SingularPolicyFromString parses "fail_fast"/"fail" or "penalize",
// case-insensitively. The empty string selects FailFast.
func SingularPolicyFromString(s string) (SingularPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail_fast", "fail", "failfast":
		return FailFast, nil
	case "penalize", "penalise":
		return Penalize, nil
	default:
		return 0, fmt.Errorf("%w: unknown singular policy %q", errs.ErrInvalidConfig, s)
	}
}

// Config holds the grid search settings.
type Config struct {
	Tau        float64
	Folds      int
	Window     int
	Workers    int
	Objective  table.Objective
	OnSingular SingularPolicy
	// ConditionLimit is passed to gp.WithConditionLimit.
	ConditionLimit float64
	// CacheSize is the number of Gram matrices kept; 0 disables the cache.
	CacheSize int
	Logger    zerolog.Logger
	// Progress, when set, is called after every finished combination.
	Progress func(done, total int)
}

func defaultConfig() Config {
	return Config{
		Tau:            gp.DefaultTau,
		Folds:          DefaultFolds,
		Window:         gp.DefaultWindow,
		Workers:        1,
		Objective:      table.Maximize,
		OnSingular:     FailFast,
		ConditionLimit: gp.DefaultConditionLimit,
		CacheSize:      autoCacheSize,
		Logger:         zerolog.Nop(),
	}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithTau sets the observation noise variance passed to the solver.
func WithTau(tau float64) Option {
	return options.New(func(cfg *Config) error {
		if math.IsNaN(tau) || math.IsInf(tau, 0) || tau < 0 {
			return fmt.Errorf("%w: tau must be finite and non-negative, got %v", errs.ErrInvalidConfig, tau)
		}
		cfg.Tau = tau

		return nil
	})
}

// WithFolds sets the number of cross-validation folds. It must be at least 2
// and is checked against the data length when Optimize starts.
func WithFolds(folds int) Option {
	return options.New(func(cfg *Config) error {
		if folds < 2 {
			return fmt.Errorf("%w: folds must be >= 2, got %d", errs.ErrInvalidConfig, folds)
		}
		cfg.Folds = folds

		return nil
	})
}

// WithWindow sets the moving-average window of the prior mean.
func WithWindow(w int) Option {
	return options.New(func(cfg *Config) error {
		if w < 1 {
			return fmt.Errorf("%w: moving average window must be >= 1, got %d", errs.ErrInvalidConfig, w)
		}
		cfg.Window = w

		return nil
	})
}

// WithWorkers sets how many combinations are evaluated concurrently.
func WithWorkers(n int) Option {
	return options.New(func(cfg *Config) error {
		if n < 1 {
			return fmt.Errorf("%w: workers must be >= 1, got %d", errs.ErrInvalidConfig, n)
		}
		cfg.Workers = n

		return nil
	})
}

// WithObjective selects whether the best score is the highest or the lowest.
func WithObjective(obj table.Objective) Option {
	return options.New(func(cfg *Config) error {
		if obj != table.Maximize && obj != table.Minimize {
			return fmt.Errorf("%w: unknown objective %d", errs.ErrInvalidConfig, obj)
		}
		cfg.Objective = obj

		return nil
	})
}

// WithSingularPolicy selects how singular covariance matrices are handled.
func WithSingularPolicy(p SingularPolicy) Option {
	return options.New(func(cfg *Config) error {
		if p != FailFast && p != Penalize {
			return fmt.Errorf("%w: unknown singular policy %d", errs.ErrInvalidConfig, p)
		}
		cfg.OnSingular = p

		return nil
	})
}

// WithConditionLimit sets the largest accepted condition number of the noisy
// reference covariance of every fold; see gp.WithConditionLimit. Folds past
// it are singular and handled by the singular policy.
func WithConditionLimit(limit float64) Option {
	return options.New(func(cfg *Config) error {
		if math.IsNaN(limit) || limit < 1 {
			return fmt.Errorf("%w: condition limit must be >= 1, got %v", errs.ErrInvalidConfig, limit)
		}
		cfg.ConditionLimit = limit

		return nil
	})
}

// WithCacheSize sets the Gram matrix cache capacity. 0 disables caching; the
// default keeps two matrices per worker.
func WithCacheSize(n int) Option {
	return options.New(func(cfg *Config) error {
		if n < 0 {
			return fmt.Errorf("%w: cache size must be >= 0, got %d", errs.ErrInvalidConfig, n)
		}
		cfg.CacheSize = n

		return nil
	})
}

// WithLogger sets the logger. Per-combination scores are logged at debug
// level and the outcome at info level. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Logger = l
	})
}

// WithProgress registers a callback invoked after every finished combination
// with the number done so far and the total. Calls are serialised.
func WithProgress(fn func(done, total int)) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Progress = fn
	})
}
