package advect

import (
	"fmt"
	"math"

	"github.com/arloliu/gpfield/errs"
	"github.com/arloliu/gpfield/internal/options"
	"github.com/viterin/vek"
)

// Point is a position in grid-index units: X is the column, Y the row.
type Point struct {
	X, Y float64
}

// Velocity is a sampled cell velocity.
type Velocity struct {
	VX, VY float64
}

// History is the outcome of a simulation. Positions and Velocities hold
// steps+1 frames of one entry per particle; frame 0 is the start with zero
// velocity.
type History struct {
	// Positions are rounded to the nearest grid index.
	Positions [][]Point
	// Velocities are the values sampled at the start of each step.
	Velocities [][]Velocity
	// Exit is the first step at which a particle's nearest cell lay outside
	// the grid, or -1 when it stayed inside.
	Exit []int
}

// Trajectory returns the positions of particle i over every frame.
func (h *History) Trajectory(i int) []Point {
	out := make([]Point, len(h.Positions))
	for f, frame := range h.Positions {
		out[f] = frame[i]
	}

	return out
}

// Simulate advects start through f for steps Euler steps.
//
// Each step rounds every particle to its nearest cell, reads that cell's
// velocity at the current time step and moves the particle by velocity ×
// time step. Particles whose nearest cell leaves the grid freeze where they
// are.
//
// Parameters:
//   - start: Initial positions in grid-index units, each inside the grid
//   - f: Velocity field; it must hold at least steps time steps
//   - steps: Number of Euler steps
//   - opts: Cell size and time step options
//
// Returns:
//   - *History: steps+1 frames of positions and velocities
//   - error: errs.ErrInvalidConfig, errs.ErrOutOfBounds or errs.ErrNonFinite
func Simulate(start []Point, f *Field, steps int, opts ...Option) (*History, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if f == nil {
		return nil, fmt.Errorf("%w: nil velocity field", errs.ErrInvalidConfig)
	}
	if len(start) == 0 {
		return nil, fmt.Errorf("%w: %w: no particles", errs.ErrInvalidConfig, errs.ErrEmptyInput)
	}
	if steps < 0 || steps > f.steps {
		return nil, fmt.Errorf("%w: %d steps requested, field holds %d", errs.ErrInvalidConfig, steps, f.steps)
	}

	n := len(start)
	px := make([]float64, n)
	py := make([]float64, n)
	for i, p := range start {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return nil, fmt.Errorf("%w: particle %d starts at (%v, %v)", errs.ErrNonFinite, i, p.X, p.Y)
		}
		col, row := math.Round(p.X), math.Round(p.Y)
		if !f.inGrid(int(row), int(col)) {
			return nil, fmt.Errorf("%w: particle %d starts at (%v, %v) outside %d×%d grid",
				errs.ErrOutOfBounds, i, p.X, p.Y, f.rows, f.cols)
		}
		px[i], py[i] = p.X, p.Y
	}
	vek.MulNumber_Inplace(px, cfg.CellSize)
	vek.MulNumber_Inplace(py, cfg.CellSize)

	hist := &History{
		Positions:  make([][]Point, 0, steps+1),
		Velocities: make([][]Velocity, 0, steps+1),
		Exit:       make([]int, n),
	}
	for i := range hist.Exit {
		hist.Exit[i] = -1
	}

	vx := make([]float64, n)
	vy := make([]float64, n)
	hist.record(px, py, vx, vy, cfg.CellSize)

	for t := range steps {
		cx := nearest(px, cfg.CellSize)
		cy := nearest(py, cfg.CellSize)

		for i := range n {
			row, col := int(cy[i]), int(cx[i])
			if hist.Exit[i] < 0 && !f.inGrid(row, col) {
				hist.Exit[i] = t
			}
			if hist.Exit[i] >= 0 {
				vx[i], vy[i] = 0, 0
				continue
			}

			off := ((t*f.rows+row)*f.cols + col) * 2
			vx[i], vy[i] = f.data[off], f.data[off+1]
		}

		vek.Add_Inplace(px, vek.MulNumber(vx, cfg.TimeStep))
		vek.Add_Inplace(py, vek.MulNumber(vy, cfg.TimeStep))
		hist.record(px, py, vx, vy, cfg.CellSize)
	}

	return hist, nil
}

// nearest converts distances to the nearest grid index.
func nearest(pos []float64, cell float64) []float64 {
	idx := vek.DivNumber(pos, cell)
	vek.Round_Inplace(idx)

	return idx
}

func (h *History) record(px, py, vx, vy []float64, cell float64) {
	cx := nearest(px, cell)
	cy := nearest(py, cell)

	positions := make([]Point, len(px))
	velocities := make([]Velocity, len(px))
	for i := range px {
		positions[i] = Point{X: cx[i], Y: cy[i]}
		velocities[i] = Velocity{VX: vx[i], VY: vy[i]}
	}

	h.Positions = append(h.Positions, positions)
	h.Velocities = append(h.Velocities, velocities)
}
