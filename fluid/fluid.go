package fluid

import "math"

// NScalars is the number of passive scalar species advected with the
// fluid. It is fixed at build time; every state vector and exchange
// buffer carries exactly this many entries.
const NScalars = 2

// TinyNumber guards divisions by quantities that are positive by
// construction but may underflow.
const TinyNumber = 1.0e-20

// Gas is the conserved state of one cell: density, momenta, total
// energy, and the cell-centered magnetic field. E is ignored for an
// isothermal equation of state; B?c are ignored for hydrodynamics.
type Gas struct {
	D          float64
	M1, M2, M3 float64
	E          float64
	B1c        float64
	B2c        float64
	B3c        float64
	S          [NScalars]float64
}

// Cons1D is a conserved state (or a conservative flux) in the rotated
// basis of one sweep: Mx is the momentum normal to the sweep faces,
// By/Bz are the transverse field components. The normal field Bx is not
// part of the vector; it is carried separately since CT owns it.
type Cons1D struct {
	D          float64
	Mx, My, Mz float64
	E          float64
	By, Bz     float64
	S          [NScalars]float64
}

// Prim1D is the primitive mirror of Cons1D. R holds scalar
// concentrations s/d.
type Prim1D struct {
	D          float64
	Vx, Vy, Vz float64
	P          float64
	By, Bz     float64
	R          [NScalars]float64
}

// EOS selects the equation of state and the MHD feature. With
// Isothermal set, Gamma is unused and P is always IsoCs^2 * d; without
// MHD the field components of every state are dead.
type EOS struct {
	Gamma      float64
	IsoCs      float64
	Isothermal bool
	MHD        bool
}

func (e EOS) Gamma1() float64 { return e.Gamma - 1.0 }

// Cons1DToPrim1D converts a sweep-ordered conserved state to primitives.
// bx is the face-normal field for the sweep. No positivity flooring is
// applied here; callers decide how a non-physical state is surfaced.
func (e EOS) Cons1DToPrim1D(u Cons1D, bx float64) (w Prim1D) {
	di := 1.0 / u.D
	w.D = u.D
	w.Vx = u.Mx * di
	w.Vy = u.My * di
	w.Vz = u.Mz * di
	if e.Isothermal {
		w.P = e.IsoCs * e.IsoCs * u.D
	} else {
		w.P = u.E - 0.5*(u.Mx*u.Mx+u.My*u.My+u.Mz*u.Mz)*di
		if e.MHD {
			w.P -= 0.5 * (bx*bx + u.By*u.By + u.Bz*u.Bz)
		}
		w.P *= e.Gamma1()
	}
	if e.MHD {
		w.By = u.By
		w.Bz = u.Bz
	}
	for n := 0; n < NScalars; n++ {
		w.R[n] = u.S[n] * di
	}
	return
}

// Prim1DToCons1D is the inverse of Cons1DToPrim1D.
func (e EOS) Prim1DToCons1D(w Prim1D, bx float64) (u Cons1D) {
	u.D = w.D
	u.Mx = w.D * w.Vx
	u.My = w.D * w.Vy
	u.Mz = w.D * w.Vz
	if !e.Isothermal {
		u.E = w.P/e.Gamma1() + 0.5*w.D*(w.Vx*w.Vx+w.Vy*w.Vy+w.Vz*w.Vz)
		if e.MHD {
			u.E += 0.5 * (bx*bx + w.By*w.By + w.Bz*w.Bz)
		}
	}
	if e.MHD {
		u.By = w.By
		u.Bz = w.Bz
	}
	for n := 0; n < NScalars; n++ {
		u.S[n] = w.R[n] * w.D
	}
	return
}

// Pressure returns the gas pressure of a cell-centered state.
func (e EOS) Pressure(q Gas) (p float64) {
	if e.Isothermal {
		return e.IsoCs * e.IsoCs * q.D
	}
	p = q.E - 0.5*(q.M1*q.M1+q.M2*q.M2+q.M3*q.M3)/q.D
	if e.MHD {
		p -= 0.5 * (q.B1c*q.B1c + q.B2c*q.B2c + q.B3c*q.B3c)
	}
	p *= e.Gamma1()
	return
}

// SoundSpeed2 is the adiabatic (or isothermal) sound speed squared.
func (e EOS) SoundSpeed2(d, p float64) float64 {
	if e.Isothermal {
		return e.IsoCs * e.IsoCs
	}
	return e.Gamma * p / d
}

// Cfast returns the fast magnetosonic speed normal to the face for a
// sweep-ordered conserved state; for hydrodynamics it reduces to the
// sound speed. Used by the H-correction and the CFL condition.
func (e EOS) Cfast(u Cons1D, bx float64) float64 {
	di := 1.0 / u.D
	var asq float64
	if e.Isothermal {
		asq = e.IsoCs * e.IsoCs
	} else {
		p := e.Cons1DToPrim1D(u, bx).P
		if p < TinyNumber {
			p = TinyNumber
		}
		asq = e.Gamma * p * di
	}
	if !e.MHD {
		return math.Sqrt(asq)
	}
	vaxsq := bx * bx * di
	ct2 := (u.By*u.By + u.Bz*u.Bz) * di
	qsq := vaxsq + ct2 + asq
	tmp := vaxsq + ct2 - asq
	cfsq := 0.5 * (qsq + math.Sqrt(tmp*tmp+4.0*asq*ct2))
	return math.Sqrt(cfsq)
}
