// Package reconstruct computes left/right primitive states at cell
// interfaces for one sweep. The interface convention follows the
// integrator: after a call, wl[i] and wr[i] are the states on either
// side of the i-1/2 face. Interfaces il..iu+1 are filled. DonorCell
// needs cell data on il-1..iu+1; PLM needs il-2..iu+2 and also writes
// wr[il-1] and wl[iu+2].
package reconstruct

import (
	"fmt"
	"strings"

	"github.com/astroflux/gomhd/fluid"
)

// LRStates is the reconstruction contract consumed by the integrator.
// dtdx is dt over the sweep spacing; schemes that trace characteristics
// for the half step use it, others ignore it.
type LRStates func(eos fluid.EOS, w []fluid.Prim1D, bxc []float64,
	dt, dtdx float64, il, iu int, wl, wr []fluid.Prim1D)

var Names = map[string]LRStates{
	"plm":   PLM,
	"donor": DonorCell,
}

// New looks up a reconstruction by name.
func New(label string) LRStates {
	lr, ok := Names[strings.ToLower(label)]
	if !ok {
		panic(fmt.Errorf("unable to use reconstruction named %s", label))
	}
	return lr
}

// DonorCell is first-order: each interface state is the adjacent cell
// average.
func DonorCell(eos fluid.EOS, w []fluid.Prim1D, bxc []float64,
	dt, dtdx float64, il, iu int, wl, wr []fluid.Prim1D) {
	for i := il - 1; i <= iu; i++ {
		wl[i+1] = w[i]
	}
	for i := il; i <= iu+1; i++ {
		wr[i] = w[i]
	}
}

// PLM is piecewise-linear reconstruction with a monotonized-central
// limiter applied component-wise in primitive variables, followed by
// upwind tracing of the interface states over dt/2 using the extremal
// signal speeds. The limiting makes the scheme total-variation
// diminishing on each sweep.
func PLM(eos fluid.EOS, w []fluid.Prim1D, bxc []float64,
	dt, dtdx float64, il, iu int, wl, wr []fluid.Prim1D) {
	for i := il - 1; i <= iu+1; i++ {
		dwm := limitedSlope(w[i-1], w[i], w[i+1])

		// Interface values at the left and right edges of cell i.
		wlv := axpy(w[i], dwm, -0.5)
		wrv := axpy(w[i], dwm, +0.5)

		cf := eos.Cfast(eos.Prim1DToCons1D(w[i], bxc[i]), bxc[i])
		evMax := w[i].Vx + cf
		evMin := w[i].Vx - cf

		// Trace each edge upwind for dt/2.
		qx := 0.5 * dtdx * max(evMax, 0.0)
		wl[i+1] = axpy(wrv, sub(wrv, wlv), -qx)

		qx = -0.5 * dtdx * min(evMin, 0.0)
		wr[i] = axpy(wlv, sub(wrv, wlv), qx)
	}
}

// limitedSlope applies the MC limiter per component.
func limitedSlope(wm, w0, wp fluid.Prim1D) (dwm fluid.Prim1D) {
	dwm.D = mc(w0.D-wm.D, wp.D-w0.D)
	dwm.Vx = mc(w0.Vx-wm.Vx, wp.Vx-w0.Vx)
	dwm.Vy = mc(w0.Vy-wm.Vy, wp.Vy-w0.Vy)
	dwm.Vz = mc(w0.Vz-wm.Vz, wp.Vz-w0.Vz)
	dwm.P = mc(w0.P-wm.P, wp.P-w0.P)
	dwm.By = mc(w0.By-wm.By, wp.By-w0.By)
	dwm.Bz = mc(w0.Bz-wm.Bz, wp.Bz-w0.Bz)
	for n := 0; n < fluid.NScalars; n++ {
		dwm.R[n] = mc(w0.R[n]-wm.R[n], wp.R[n]-w0.R[n])
	}
	return
}

// mc is the monotonized-central slope: zero at extrema, otherwise the
// centered difference clipped to twice the smaller one-sided slope.
func mc(dl, dr float64) float64 {
	if dl*dr <= 0 {
		return 0
	}
	dc := 0.5 * (dl + dr)
	lim := 2.0 * min(abs(dl), abs(dr))
	if abs(dc) < lim {
		return dc
	}
	if dc > 0 {
		return lim
	}
	return -lim
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func sub(a, b fluid.Prim1D) (c fluid.Prim1D) {
	c.D = a.D - b.D
	c.Vx = a.Vx - b.Vx
	c.Vy = a.Vy - b.Vy
	c.Vz = a.Vz - b.Vz
	c.P = a.P - b.P
	c.By = a.By - b.By
	c.Bz = a.Bz - b.Bz
	for n := 0; n < fluid.NScalars; n++ {
		c.R[n] = a.R[n] - b.R[n]
	}
	return
}

// axpy returns a + s*d component-wise.
func axpy(a, d fluid.Prim1D, s float64) (c fluid.Prim1D) {
	c.D = a.D + s*d.D
	c.Vx = a.Vx + s*d.Vx
	c.Vy = a.Vy + s*d.Vy
	c.Vz = a.Vz + s*d.Vz
	c.P = a.P + s*d.P
	c.By = a.By + s*d.By
	c.Bz = a.Bz + s*d.Bz
	for n := 0; n < fluid.NScalars; n++ {
		c.R[n] = a.R[n] + s*d.R[n]
	}
	return
}
