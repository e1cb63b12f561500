package advect

import (
	"fmt"
	"math"

	"github.com/arloliu/gpfield/errs"
)

// Field holds a two-component velocity per time step and grid cell.
type Field struct {
	steps int
	rows  int
	cols  int
	data  []float64 // [step][row][col][vx, vy]
}

// NewField allocates a zero velocity field of steps × rows × cols cells.
//
// Returns errs.ErrInvalidConfig unless every dimension is positive.
func NewField(steps, rows, cols int) (*Field, error) {
	if steps < 1 || rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: field dimensions must be positive, got %d×%d×%d",
			errs.ErrInvalidConfig, steps, rows, cols)
	}

	return &Field{
		steps: steps,
		rows:  rows,
		cols:  cols,
		data:  make([]float64, steps*rows*cols*2),
	}, nil
}

// Dims returns the number of time steps, rows and columns.
func (f *Field) Dims() (steps, rows, cols int) {
	return f.steps, f.rows, f.cols
}

// Set stores the velocity of one cell at time step t.
func (f *Field) Set(t, row, col int, vx, vy float64) error {
	off, err := f.offset(t, row, col)
	if err != nil {
		return err
	}
	if err := checkVelocity(vx, vy); err != nil {
		return err
	}

	f.data[off] = vx
	f.data[off+1] = vy

	return nil
}

// At returns the velocity of one cell at time step t.
func (f *Field) At(t, row, col int) (vx, vy float64, err error) {
	off, err := f.offset(t, row, col)
	if err != nil {
		return 0, 0, err
	}

	return f.data[off], f.data[off+1], nil
}

// SetSeries stores the velocity of one cell for every time step. vx and vy
// must each hold one value per step, as produced by a posterior mean over
// the time axis.
func (f *Field) SetSeries(row, col int, vx, vy []float64) error {
	if len(vx) != f.steps || len(vy) != f.steps {
		return fmt.Errorf("%w: series of %d and %d values for %d time steps",
			errs.ErrDimensionMismatch, len(vx), len(vy), f.steps)
	}
	if _, err := f.offset(0, row, col); err != nil {
		return err
	}
	for t := range f.steps {
		if err := checkVelocity(vx[t], vy[t]); err != nil {
			return fmt.Errorf("step %d: %w", t, err)
		}
	}

	for t := range f.steps {
		off, _ := f.offset(t, row, col)
		f.data[off] = vx[t]
		f.data[off+1] = vy[t]
	}

	return nil
}

func (f *Field) inGrid(row, col int) bool {
	return row >= 0 && row < f.rows && col >= 0 && col < f.cols
}

func (f *Field) offset(t, row, col int) (int, error) {
	if t < 0 || t >= f.steps || !f.inGrid(row, col) {
		return 0, fmt.Errorf("%w: cell (t=%d, row=%d, col=%d) outside %d×%d×%d field",
			errs.ErrOutOfBounds, t, row, col, f.steps, f.rows, f.cols)
	}

	return ((t*f.rows+row)*f.cols + col) * 2, nil
}

func checkVelocity(vx, vy float64) error {
	if math.IsNaN(vx) || math.IsInf(vx, 0) || math.IsNaN(vy) || math.IsInf(vy, 0) {
		return fmt.Errorf("%w: velocity (%v, %v)", errs.ErrNonFinite, vx, vy)
	}

	return nil
}
