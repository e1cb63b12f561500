// Package errs defines the sentinel errors shared by every gpfield package.
//
// Callers match error kinds with errors.Is; packages add context by wrapping
// these values with fmt.Errorf("...: %w", err).
package errs

import "errors"

// Input shape and value errors.
var (
	// ErrDimensionMismatch is returned when coordinate, observation or
	// parameter lengths disagree.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrEmptyInput is returned when a required coordinate or data sequence is empty.
	ErrEmptyInput = errors.New("empty input")
	// ErrNonFinite is returned when an input contains NaN or ±Inf.
	ErrNonFinite = errors.New("non-finite value")
)

// Configuration errors. These are reported before any computation starts.
var (
	// ErrInvalidConfig is returned for invalid scalar configuration such as a
	// negative tau, a zero window or more folds than data points.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidHyperparameter is returned when a kernel rejects a parameter vector.
	ErrInvalidHyperparameter = errors.New("invalid hyperparameter")
	// ErrUnknownKernel is returned when a kernel name is not registered.
	ErrUnknownKernel = errors.New("unknown kernel")
)

// Numerical errors.
var (
	// ErrSingularMatrix is returned when a covariance block is singular or
	// too ill-conditioned to factorise reliably.
	ErrSingularMatrix = errors.New("singular or ill-conditioned covariance matrix")
	// ErrNoFeasibleCombination is returned when no hyperparameter combination
	// produced a usable score.
	ErrNoFeasibleCombination = errors.New("no feasible hyperparameter combination")
)

// Result table errors.
var (
	ErrInvalidColumn      = errors.New("invalid column")
	ErrHashCollision      = errors.New("column name hash collision")
	ErrHashMismatch       = errors.New("column name hash mismatch")
	ErrInvalidHeaderSize  = errors.New("invalid table header size")
	ErrInvalidHeaderFlags = errors.New("invalid table header flags")
	ErrInvalidPayload     = errors.New("invalid table payload")
	ErrChecksumMismatch   = errors.New("table payload checksum mismatch")
)

// ErrOutOfBounds is returned when a position or index falls outside a grid.
var ErrOutOfBounds = errors.New("out of bounds")
