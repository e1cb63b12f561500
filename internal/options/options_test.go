package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type solverConfig struct {
	Tau    float64
	Window int
	Calls  []string
}

func withTau(tau float64) Option[*solverConfig] {
	return New(func(c *solverConfig) error {
		if tau < 0 {
			return errors.New("tau must be non-negative")
		}
		c.Tau = tau
		c.Calls = append(c.Calls, "tau")

		return nil
	})
}

func withWindow(w int) Option[*solverConfig] {
	return NoError(func(c *solverConfig) {
		c.Window = w
		c.Calls = append(c.Calls, "window")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &solverConfig{}
		err := Apply(cfg, withWindow(3), withTau(0.5))

		require.NoError(t, err)
		require.Equal(t, 0.5, cfg.Tau)
		require.Equal(t, 3, cfg.Window)
		require.Equal(t, []string{"window", "tau"}, cfg.Calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &solverConfig{}
		err := Apply(cfg, withTau(-1), withWindow(7))

		require.Error(t, err)
		require.Contains(t, err.Error(), "non-negative")
		require.Zero(t, cfg.Window, "options after the failing one must not run")
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &solverConfig{}
		err := Apply(cfg, nil, withWindow(5), nil)

		require.NoError(t, err)
		require.Equal(t, 5, cfg.Window)
	})

	t.Run("no options leaves target untouched", func(t *testing.T) {
		cfg := &solverConfig{Tau: 1}
		require.NoError(t, Apply[*solverConfig](cfg))
		require.Equal(t, 1.0, cfg.Tau)
		require.Empty(t, cfg.Calls)
	})
}

func TestNoError(t *testing.T) {
	cfg := &solverConfig{}
	opt := NoError(func(c *solverConfig) { c.Window = 11 })

	require.NoError(t, opt.apply(cfg))
	require.Equal(t, 11, cfg.Window)
}
