package riemann

import (
	"github.com/astroflux/gomhd/fluid"
)

// NewHLLE builds the HLLE flux. It is valid for both hydrodynamics and
// MHD and for either equation of state; the two-wave average makes it
// diffusive at contacts but positively conservative. The H-correction
// floors the magnitude of both bounding speeds at etah.
func NewHLLE(eos fluid.EOS) Solver {
	return func(e fluid.EOS, bxi float64, ul, ur fluid.Cons1D, etah float64) (fluid.Cons1D, error) {
		wl := eos.Cons1DToPrim1D(ul, bxi)
		wr := eos.Cons1DToPrim1D(ur, bxi)
		if err := checkStates(wl, wr); err != nil {
			return fluid.Cons1D{}, err
		}

		cfl := eos.Cfast(ul, bxi)
		cfr := eos.Cfast(ur, bxi)

		bm := min(min(wl.Vx-cfl, wr.Vx-cfr), 0.0)
		bp := max(max(wl.Vx+cfl, wr.Vx+cfr), 0.0)
		if etah > 0 {
			bm = min(bm, -etah)
			bp = max(bp, etah)
		}

		fl := physFlux(eos, ul, wl, bxi)
		fr := physFlux(eos, ur, wr, bxi)

		// Degenerate spread cannot occur with bm <= 0 <= bp unless both
		// are zero, in which case the state is static.
		if bp-bm < fluid.TinyNumber {
			upwindScalars(&fl, wl, wr)
			return fl, nil
		}

		q := 1.0 / (bp - bm)
		var f fluid.Cons1D
		f.D = q * (bp*fl.D - bm*fr.D + bp*bm*(ur.D-ul.D))
		f.Mx = q * (bp*fl.Mx - bm*fr.Mx + bp*bm*(ur.Mx-ul.Mx))
		f.My = q * (bp*fl.My - bm*fr.My + bp*bm*(ur.My-ul.My))
		f.Mz = q * (bp*fl.Mz - bm*fr.Mz + bp*bm*(ur.Mz-ul.Mz))
		if !eos.Isothermal {
			f.E = q * (bp*fl.E - bm*fr.E + bp*bm*(ur.E-ul.E))
		}
		if eos.MHD {
			f.By = q * (bp*fl.By - bm*fr.By + bp*bm*(ur.By-ul.By))
			f.Bz = q * (bp*fl.Bz - bm*fr.Bz + bp*bm*(ur.Bz-ul.Bz))
		}
		upwindScalars(&f, wl, wr)
		return f, nil
	}
}
