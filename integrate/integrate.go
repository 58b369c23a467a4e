// Package integrate advances the conserved fluid state of a Grid tile
// by one time step with the directionally unsplit corner transport
// upwind (CTU) scheme, using constrained transport for the face
// magnetic fields.
//
// References:
//
//	P. Colella, "Multidimensional upwind methods for hyperbolic
//	conservation laws", JCP 87, 171 (1990)
//
//	T. Gardiner & J.M. Stone, "An unsplit Godunov method for ideal MHD
//	via constrained transport", JCP 205, 509 (2005); and the 3D
//	extension, JCP 227, 4123 (2008)
//
//	R. Sanders, E. Morano & M.-C. Druguet, "Multidimensional
//	dissipation for upwind schemes", JCP 145, 511 (1998)
package integrate

import (
	"fmt"
	"math"

	"github.com/astroflux/gomhd/fluid"
	"github.com/astroflux/gomhd/grid"
	"github.com/astroflux/gomhd/reconstruct"
	"github.com/astroflux/gomhd/riemann"
)

// GravPotFn is the static gravitational potential callback. A nil
// function disables every gravity source term.
type GravPotFn func(x1, x2, x3 float64) float64

// Config carries the feature selection and the injected flux-kernel
// operators for one Integrator.
type Config struct {
	EOS         fluid.EOS
	HCorrection bool
	ShearingBox bool
	Omega       float64
	CourNo      float64

	GravPot  GravPotFn
	Flux     riemann.Solver
	LRStates reconstruct.LRStates
}

// BadStateError reports a non-physical state produced during a step,
// with the offending cell and the sweep that produced it. The caller
// may halve dt and retry.
type BadStateError struct {
	I, J, K  int
	Sweep    string
	Density  float64
	Pressure float64
	Err      error
}

func (e *BadStateError) Error() string {
	return fmt.Sprintf("bad state in %s sweep at (%d,%d,%d): d=%g p=%g: %v",
		e.Sweep, e.I, e.J, e.K, e.Density, e.Pressure, e.Err)
}

func (e *BadStateError) Unwrap() error { return e.Err }

// Integrator owns the scratch arrays of one Grid tile. All scratch is
// allocated once here; Step never allocates.
type Integrator struct {
	cfg Config

	// L/R states and fluxes at each face, full grid.
	ulX1, urX1 [][][]fluid.Cons1D
	ulX2, urX2 [][][]fluid.Cons1D
	ulX3, urX3 [][][]fluid.Cons1D
	x1Flux     [][][]fluid.Cons1D
	x2Flux     [][][]fluid.Cons1D
	x3Flux     [][][]fluid.Cons1D

	// Working copies of the interface fields, advanced by the
	// half-step CT update.
	b1Face, b2Face, b3Face [][][]float64

	// Edge and cell-centered EMFs.
	emf1, emf2, emf3       [][][]float64
	emf1cc, emf2cc, emf3cc [][][]float64

	// H-correction wavespeeds.
	eta1, eta2, eta3 [][][]float64

	// Density at the half step.
	dhalf [][][]float64

	// 1D sweep scratch.
	bxc, bxi []float64
	u1d      []fluid.Cons1D
	w        []fluid.Prim1D
	wl, wr   []fluid.Prim1D
}

// New allocates an Integrator for grids with g's shape. Scratch lives
// until the Integrator is garbage; no per-step allocation happens.
func New(g *grid.Grid, cfg Config) *Integrator {
	if cfg.Flux == nil || cfg.LRStates == nil {
		panic(fmt.Errorf("integrate: flux and reconstruction operators are required"))
	}
	if cfg.ShearingBox && !g.ThreeD() {
		panic(fmt.Errorf("integrate: shearing box requires a 3D grid"))
	}
	n1 := g.Nx1 + 2*grid.Nghost
	n2 := g.Nx2 + 2*grid.Nghost
	n3 := 1
	if g.ThreeD() {
		n3 = g.Nx3 + 2*grid.Nghost
	}
	nmax := n1
	if n2 > nmax {
		nmax = n2
	}
	if n3 > nmax {
		nmax = n3
	}

	itg := &Integrator{cfg: cfg}
	itg.ulX1 = grid.NewCons1DArray3(n3, n2, n1)
	itg.urX1 = grid.NewCons1DArray3(n3, n2, n1)
	itg.ulX2 = grid.NewCons1DArray3(n3, n2, n1)
	itg.urX2 = grid.NewCons1DArray3(n3, n2, n1)
	itg.x1Flux = grid.NewCons1DArray3(n3, n2, n1)
	itg.x2Flux = grid.NewCons1DArray3(n3, n2, n1)
	if g.ThreeD() {
		itg.ulX3 = grid.NewCons1DArray3(n3, n2, n1)
		itg.urX3 = grid.NewCons1DArray3(n3, n2, n1)
		itg.x3Flux = grid.NewCons1DArray3(n3, n2, n1)
	}

	if cfg.EOS.MHD {
		itg.b1Face = grid.NewArray3(n3, n2, n1)
		itg.b2Face = grid.NewArray3(n3, n2, n1)
		itg.emf3 = grid.NewArray3(n3, n2, n1)
		itg.emf3cc = grid.NewArray3(n3, n2, n1)
		if g.ThreeD() {
			itg.b3Face = grid.NewArray3(n3, n2, n1)
			itg.emf1 = grid.NewArray3(n3, n2, n1)
			itg.emf2 = grid.NewArray3(n3, n2, n1)
			itg.emf1cc = grid.NewArray3(n3, n2, n1)
			itg.emf2cc = grid.NewArray3(n3, n2, n1)
		}
	}
	if cfg.HCorrection {
		itg.eta1 = grid.NewArray3(n3, n2, n1)
		itg.eta2 = grid.NewArray3(n3, n2, n1)
		if g.ThreeD() {
			itg.eta3 = grid.NewArray3(n3, n2, n1)
		}
	}
	if cfg.EOS.MHD || cfg.ShearingBox || cfg.GravPot != nil {
		itg.dhalf = grid.NewArray3(n3, n2, n1)
	}

	itg.bxc = make([]float64, nmax)
	itg.bxi = make([]float64, nmax)
	itg.u1d = make([]fluid.Cons1D, nmax)
	itg.w = make([]fluid.Prim1D, nmax)
	itg.wl = make([]fluid.Prim1D, nmax)
	itg.wr = make([]fluid.Prim1D, nmax)
	return itg
}

// Step advances g from t to t+dt. On a non-physical intermediate state
// it returns a *BadStateError; every such return happens before the
// first write to g, so g still holds the state at t and the caller
// can halve dt and retry.
func (itg *Integrator) Step(g *grid.Grid) error {
	if g.ThreeD() {
		return itg.step3D(g)
	}
	return itg.step2D(g)
}

// NewDt returns the CFL-limited time step for one tile, the minimum
// over active cells of dx over the fastest signal speed per direction,
// scaled by the Courant number.
func NewDt(g *grid.Grid, cfg Config) float64 {
	eos := cfg.EOS
	maxDti := fluid.TinyNumber
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is; i <= g.Ie; i++ {
				q := g.U[k][j][i]
				di := 1.0 / q.D
				v1 := math.Abs(q.M1 * di)
				v2 := math.Abs(q.M2 * di)
				v3 := math.Abs(q.M3 * di)

				cf1 := eos.Cfast(fluid.Cons1D{D: q.D, Mx: q.M1, My: q.M2, Mz: q.M3,
					E: q.E, By: q.B2c, Bz: q.B3c, S: q.S}, q.B1c)
				cf2 := eos.Cfast(fluid.Cons1D{D: q.D, Mx: q.M2, My: q.M3, Mz: q.M1,
					E: q.E, By: q.B3c, Bz: q.B1c, S: q.S}, q.B2c)

				if dti := (v1 + cf1) / g.Dx1; dti > maxDti {
					maxDti = dti
				}
				if dti := (v2 + cf2) / g.Dx2; dti > maxDti {
					maxDti = dti
				}
				if g.ThreeD() {
					cf3 := eos.Cfast(fluid.Cons1D{D: q.D, Mx: q.M3, My: q.M1, Mz: q.M2,
						E: q.E, By: q.B1c, Bz: q.B2c, S: q.S}, q.B3c)
					if dti := (v3 + cf3) / g.Dx3; dti > maxDti {
						maxDti = dti
					}
				}
			}
		}
	}
	return cfg.CourNo / maxDti
}

// mdbLimit computes min_mod(-dbN, dbT) with the Gardiner & Stone
// (2007) convention used by the transverse MHD source terms: nonzero
// only when dbN and dbT have opposite signs.
func mdbLimit(dbN, dbT float64) float64 {
	if dbN > 0 && dbT < 0 {
		return max(dbT, -dbN)
	}
	if dbN < 0 && dbT > 0 {
		return min(dbT, -dbN)
	}
	return 0
}
