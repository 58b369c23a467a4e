package riemann

import (
	"math"

	"github.com/astroflux/gomhd/fluid"
)

// NewRoe builds the Roe flux for adiabatic hydrodynamics: Roe-averaged
// state, five wave strengths, characteristic dissipation. With the
// H-correction active every eigenvalue magnitude is floored at etah.
func NewRoe(eos fluid.EOS) Solver {
	gm1 := eos.Gamma1()
	return func(e fluid.EOS, bxi float64, ul, ur fluid.Cons1D, etah float64) (fluid.Cons1D, error) {
		wl := eos.Cons1DToPrim1D(ul, bxi)
		wr := eos.Cons1DToPrim1D(ur, bxi)
		if err := checkStates(wl, wr); err != nil {
			return fluid.Cons1D{}, err
		}

		hl := (ul.E + wl.P) / wl.D
		hr := (ur.E + wr.P) / wr.D

		// Roe averages
		rhols, rhors := math.Sqrt(wl.D), math.Sqrt(wr.D)
		rholsrs := rhols + rhors

		rho := rhols * rhors
		u := (rhols*wl.Vx + rhors*wr.Vx) / rholsrs
		v := (rhols*wl.Vy + rhors*wr.Vy) / rholsrs
		w := (rhols*wl.Vz + rhors*wr.Vz) / rholsrs
		h := (rhols*hl + rhors*hr) / rholsrs
		c2 := gm1 * (h - 0.5*(u*u+v*v+w*w))
		if c2 <= 0 {
			// Roe average outside the physical region; hand the face to
			// the HLLE flux rather than fail the step.
			return NewHLLE(eos)(e, bxi, ul, ur, etah)
		}
		c := math.Sqrt(c2)

		// Wave strengths
		dW1 := -0.5*(rho*(wr.Vx-wl.Vx))/c + 0.5*(wr.P-wl.P)/c2
		dW2 := (wr.D - wl.D) - (wr.P-wl.P)/c2
		dW3 := rho * (wr.Vy - wl.Vy)
		dW4 := rho * (wr.Vz - wl.Vz)
		dW5 := 0.5*(rho*(wr.Vx-wl.Vx))/c + 0.5*(wr.P-wl.P)/c2

		lm := max(math.Abs(u-c), etah)
		l0 := max(math.Abs(u), etah)
		lp := max(math.Abs(u+c), etah)

		dW1 *= lm
		dW2 *= l0
		dW3 *= l0
		dW4 *= l0
		dW5 *= lp

		fl := physFlux(eos, ul, wl, bxi)
		fr := physFlux(eos, ur, wr, bxi)

		var f fluid.Cons1D
		f.D = 0.5 * (fl.D + fr.D)
		f.Mx = 0.5 * (fl.Mx + fr.Mx)
		f.My = 0.5 * (fl.My + fr.My)
		f.Mz = 0.5 * (fl.Mz + fr.Mz)
		f.E = 0.5 * (fl.E + fr.E)

		f.D -= 0.5 * (dW1 + dW2 + dW5)
		f.Mx -= 0.5 * (dW1*(u-c) + dW2*u + dW5*(u+c))
		f.My -= 0.5 * (dW1*v + dW2*v + dW3 + dW5*v)
		f.Mz -= 0.5 * (dW1*w + dW2*w + dW4 + dW5*w)
		f.E -= 0.5 * (dW1*(h-u*c) + 0.5*dW2*(u*u+v*v+w*w) + dW3*v + dW4*w + dW5*(h+u*c))

		upwindScalars(&f, wl, wr)
		return f, nil
	}
}
