// Package advect moves particles through a gridded, time-varying velocity
// field with explicit Euler steps.
//
// Positions are given in grid-index units, column first. Internally they are
// scaled by the cell size (3 km by default) and every step moves a particle
// by the velocity of its nearest cell times the time step (3 h by default),
// so velocities are expected in km/h.
//
// # Basic Usage
//
//	field, err := advect.NewField(steps, rows, cols)
//	if err != nil {
//		return err
//	}
//	for r := range rows {
//		for c := range cols {
//			_ = field.SetSeries(r, c, vx[r][c], vy[r][c])
//		}
//	}
//	hist, err := advect.Simulate([]advect.Point{{X: 10, Y: 4}}, field, steps)
//
// A particle whose nearest cell leaves the grid stops there with zero
// velocity; History.Exit reports the step at which that happened.
package advect
