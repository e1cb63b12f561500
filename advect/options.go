package advect

import (
	"fmt"
	"math"

	"github.com/arloliu/gpfield/errs"
	"github.com/arloliu/gpfield/internal/options"
)

const (
	// DefaultCellSize is the grid spacing in kilometres.
	DefaultCellSize = 3.0
	// DefaultTimeStep is the Euler step in hours.
	DefaultTimeStep = 3.0
)

// Config holds the simulation settings.
type Config struct {
	CellSize float64
	TimeStep float64
}

func defaultConfig() Config {
	return Config{
		CellSize: DefaultCellSize,
		TimeStep: DefaultTimeStep,
	}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithCellSize sets the grid spacing used to convert indices to distances.
func WithCellSize(km float64) Option {
	return options.New(func(cfg *Config) error {
		if !positive(km) {
			return fmt.Errorf("%w: cell size must be positive and finite, got %v", errs.ErrInvalidConfig, km)
		}
		cfg.CellSize = km

		return nil
	})
}

// WithTimeStep sets the Euler step length.
func WithTimeStep(hours float64) Option {
	return options.New(func(cfg *Config) error {
		if !positive(hours) {
			return fmt.Errorf("%w: time step must be positive and finite, got %v", errs.ErrInvalidConfig, hours)
		}
		cfg.TimeStep = hours

		return nil
	})
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
