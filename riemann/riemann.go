// Package riemann provides the numerical flux operators consumed by the
// CTU integrator. A Solver receives the face-normal field, the L/R
// conserved states in sweep order, and the H-correction wavespeed etah
// (zero when the correction is disabled); it returns the conservative
// flux through the face.
package riemann

import (
	"fmt"
	"strings"

	"github.com/astroflux/gomhd/fluid"
)

type Solver func(eos fluid.EOS, bxi float64, ul, ur fluid.Cons1D, etah float64) (fluid.Cons1D, error)

var Names = map[string]func(eos fluid.EOS) Solver{
	"hlle": NewHLLE,
	"roe":  NewRoe,
}

// New looks up a flux by name and validates it against the equation of
// state. Unknown names and unsupported combinations are configuration
// errors.
func New(label string, eos fluid.EOS) Solver {
	ctor, ok := Names[strings.ToLower(label)]
	if !ok {
		panic(fmt.Errorf("unable to use flux named %s", label))
	}
	if strings.ToLower(label) == "roe" && (eos.MHD || eos.Isothermal) {
		panic(fmt.Errorf("roe flux supports adiabatic hydrodynamics only"))
	}
	return ctor(eos)
}

// physFlux is the exact 1D flux of a conserved state, used for the L/R
// flux contributions in every solver.
func physFlux(eos fluid.EOS, u fluid.Cons1D, w fluid.Prim1D, bx float64) (f fluid.Cons1D) {
	f.D = u.Mx
	f.Mx = u.Mx*w.Vx + w.P
	f.My = u.My * w.Vx
	f.Mz = u.Mz * w.Vx
	if eos.MHD {
		pbx := 0.5 * (w.By*w.By + w.Bz*w.Bz - bx*bx)
		f.Mx += pbx
		f.My -= bx * w.By
		f.Mz -= bx * w.Bz
		f.By = w.By*w.Vx - bx*w.Vy
		f.Bz = w.Bz*w.Vx - bx*w.Vz
	}
	if !eos.Isothermal {
		f.E = (u.E + w.P) * w.Vx
		if eos.MHD {
			ptot := 0.5 * (bx*bx + w.By*w.By + w.Bz*w.Bz)
			f.E += ptot*w.Vx - bx*(bx*w.Vx+w.By*w.Vy+w.Bz*w.Vz)
		}
	}
	return
}

// upwindScalars fills the passive scalar fluxes from the sign of the
// mass flux.
func upwindScalars(f *fluid.Cons1D, wl, wr fluid.Prim1D) {
	for n := 0; n < fluid.NScalars; n++ {
		if f.D >= 0 {
			f.S[n] = f.D * wl.R[n]
		} else {
			f.S[n] = f.D * wr.R[n]
		}
	}
}

func checkStates(wl, wr fluid.Prim1D) error {
	if wl.D <= 0 || wr.D <= 0 {
		return fmt.Errorf("riemann: non-positive density (dl=%g dr=%g)", wl.D, wr.D)
	}
	if wl.P <= 0 || wr.P <= 0 {
		return fmt.Errorf("riemann: non-positive pressure (pl=%g pr=%g)", wl.P, wr.P)
	}
	return nil
}
