package integrate

import (
	"errors"

	"github.com/astroflux/gomhd/fluid"
	"github.com/astroflux/gomhd/grid"
)

var errNonPhysical = errors.New("non-physical primitive state")

// face reads a face-field scratch array that may be nil for
// hydrodynamic runs.
func face(a [][][]float64, k, j, i int) float64 {
	if a == nil {
		return 0
	}
	return a[k][j][i]
}

// step2D is the CTU integrator for Nx3 == 1. The step numbering below
// follows the scheme: longitudinal predictors (1-2), cell-centered EMF
// (3), half-step CT (4), transverse corrections (5-6), half-step
// density and EMFs (7), H-correction and final fluxes (8), full-step
// CT (9), gravity (10), conservative update (11), field sync (13).
func (itg *Integrator) step2D(g *grid.Grid) error {
	var (
		eos            = itg.cfg.EOS
		mhd            = eos.MHD
		iso            = eos.Isothermal
		grav           = itg.cfg.GravPot
		dtodx1, dtodx2 = g.Dt / g.Dx1, g.Dt / g.Dx2
		hdt            = 0.5 * g.Dt
		is, ie         = g.Is, g.Ie
		js, je         = g.Js, g.Je
		ks             = g.Ks
		il, iu         = is - 2, ie + 2
		jl, ju         = js - 2, je + 2
		U              = g.U
		qa             float64
	)

	// Step 1: x1 predictor. Load each row in sweep order
	// (Mx,My,Mz) = (M1,M2,M3), (By,Bz) = (B2c,B3c), reconstruct,
	// apply the half-dt MHD and gravity sources, and store fluxes.
	for j := jl; j <= ju; j++ {
		for i := is - grid.Nghost; i <= ie+grid.Nghost; i++ {
			q := U[ks][j][i]
			itg.u1d[i] = fluid.Cons1D{D: q.D, Mx: q.M1, My: q.M2, Mz: q.M3,
				E: q.E, By: q.B2c, Bz: q.B3c, S: q.S}
			if mhd {
				itg.bxc[i] = q.B1c
				itg.bxi[i] = g.B1i[ks][j][i]
				itg.b1Face[ks][j][i] = g.B1i[ks][j][i]
			}
		}

		for i := is - grid.Nghost; i <= ie+grid.Nghost; i++ {
			itg.w[i] = eos.Cons1DToPrim1D(itg.u1d[i], itg.bxc[i])
			if itg.w[i].D <= 0 || (!iso && itg.w[i].P <= 0) {
				return &BadStateError{I: i, J: j, K: ks, Sweep: "x1",
					Density: itg.w[i].D, Pressure: itg.w[i].P, Err: errNonPhysical}
			}
		}
		itg.cfg.LRStates(eos, itg.w, itg.bxc, g.Dt, dtodx1, is-1, ie+1, itg.wl, itg.wr)

		if mhd {
			for i := is - 1; i <= iu; i++ {
				src := (U[ks][j][i-1].M2 / U[ks][j][i-1].D) *
					(g.B1i[ks][j][i] - g.B1i[ks][j][i-1]) / g.Dx1
				itg.wl[i].By += hdt * src

				src = (U[ks][j][i].M2 / U[ks][j][i].D) *
					(g.B1i[ks][j][i+1] - g.B1i[ks][j][i]) / g.Dx1
				itg.wr[i].By += hdt * src
			}
		}

		if grav != nil {
			for i := is - 1; i <= iu; i++ {
				x1, x2, x3 := g.Pos(i, j, ks)
				phicr := grav(x1, x2, x3)
				phicl := grav(x1-g.Dx1, x2, x3)
				phifc := grav(x1-0.5*g.Dx1, x2, x3)

				itg.wl[i].Vx -= dtodx1 * (phifc - phicl)
				itg.wr[i].Vx -= dtodx1 * (phicr - phifc)
			}
		}

		for i := is - 1; i <= iu; i++ {
			itg.ulX1[ks][j][i] = eos.Prim1DToCons1D(itg.wl[i], itg.bxi[i])
			itg.urX1[ks][j][i] = eos.Prim1DToCons1D(itg.wr[i], itg.bxi[i])
		}
		for i := is - 1; i <= iu; i++ {
			f, err := itg.cfg.Flux(eos, face(itg.b1Face, ks, j, i),
				itg.ulX1[ks][j][i], itg.urX1[ks][j][i], 0)
			if err != nil {
				return &BadStateError{I: i, J: j, K: ks, Sweep: "x1",
					Density: itg.ulX1[ks][j][i].D, Err: err}
			}
			itg.x1Flux[ks][j][i] = f
		}
	}

	// Step 2: x2 predictor, sweep order (Mx,My,Mz) = (M2,M3,M1),
	// (By,Bz) = (B3c,B1c).
	for i := il; i <= iu; i++ {
		for j := js - grid.Nghost; j <= je+grid.Nghost; j++ {
			q := U[ks][j][i]
			itg.u1d[j] = fluid.Cons1D{D: q.D, Mx: q.M2, My: q.M3, Mz: q.M1,
				E: q.E, By: q.B3c, Bz: q.B1c, S: q.S}
			if mhd {
				itg.bxc[j] = q.B2c
				itg.bxi[j] = g.B2i[ks][j][i]
				itg.b2Face[ks][j][i] = g.B2i[ks][j][i]
			}
		}

		for j := js - grid.Nghost; j <= je+grid.Nghost; j++ {
			itg.w[j] = eos.Cons1DToPrim1D(itg.u1d[j], itg.bxc[j])
			if itg.w[j].D <= 0 || (!iso && itg.w[j].P <= 0) {
				return &BadStateError{I: i, J: j, K: ks, Sweep: "x2",
					Density: itg.w[j].D, Pressure: itg.w[j].P, Err: errNonPhysical}
			}
		}
		itg.cfg.LRStates(eos, itg.w, itg.bxc, g.Dt, dtodx2, js-1, je+1, itg.wl, itg.wr)

		if mhd {
			for j := js - 1; j <= ju; j++ {
				src := (U[ks][j-1][i].M1 / U[ks][j-1][i].D) *
					(g.B2i[ks][j][i] - g.B2i[ks][j-1][i]) / g.Dx2
				itg.wl[j].Bz += hdt * src

				src = (U[ks][j][i].M1 / U[ks][j][i].D) *
					(g.B2i[ks][j+1][i] - g.B2i[ks][j][i]) / g.Dx2
				itg.wr[j].Bz += hdt * src
			}
		}

		if grav != nil {
			for j := js - 1; j <= ju; j++ {
				x1, x2, x3 := g.Pos(i, j, ks)
				phicr := grav(x1, x2, x3)
				phicl := grav(x1, x2-g.Dx2, x3)
				phifc := grav(x1, x2-0.5*g.Dx2, x3)

				itg.wl[j].Vx -= dtodx2 * (phifc - phicl)
				itg.wr[j].Vx -= dtodx2 * (phicr - phifc)
			}
		}

		for j := js - 1; j <= ju; j++ {
			itg.ulX2[ks][j][i] = eos.Prim1DToCons1D(itg.wl[j], itg.bxi[j])
			itg.urX2[ks][j][i] = eos.Prim1DToCons1D(itg.wr[j], itg.bxi[j])
		}
	}

	for j := js - 1; j <= ju; j++ {
		for i := il; i <= iu; i++ {
			f, err := itg.cfg.Flux(eos, face(itg.b2Face, ks, j, i),
				itg.ulX2[ks][j][i], itg.urX2[ks][j][i], 0)
			if err != nil {
				return &BadStateError{I: i, J: j, K: ks, Sweep: "x2",
					Density: itg.ulX2[ks][j][i].D, Err: err}
			}
			itg.x2Flux[ks][j][i] = f
		}
	}

	// Step 3: cell-centered emf3 at t^n.
	if mhd {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				q := U[ks][j][i]
				itg.emf3cc[ks][j][i] = (q.B1c*q.M2 - q.B2c*q.M1) / q.D
			}
		}

		// Step 4: corner-integrate emf3 and advance the working face
		// fields by dt/2.
		itg.emf3Corner(g)

		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+1; i++ {
				itg.b1Face[ks][j][i] -= 0.5 * dtodx2 * (itg.emf3[ks][j+1][i] - itg.emf3[ks][j][i])
				itg.b2Face[ks][j][i] += 0.5 * dtodx1 * (itg.emf3[ks][j][i+1] - itg.emf3[ks][j][i])
			}
			itg.b1Face[ks][j][iu] -= 0.5 * dtodx2 * (itg.emf3[ks][j+1][iu] - itg.emf3[ks][j][iu])
		}
		for i := is - 1; i <= ie+1; i++ {
			itg.b2Face[ks][ju][i] += 0.5 * dtodx1 * (itg.emf3[ks][ju][i+1] - itg.emf3[ks][ju][i])
		}
	}

	// Step 5a: correct x1-face states with the transverse x2-flux
	// gradients; x2-sweep components map (x,y,z) -> (z,x,y).
	qa = 0.5 * dtodx2
	for j := js - 1; j <= je+1; j++ {
		for i := is - 1; i <= iu; i++ {
			ul, ur := &itg.ulX1[ks][j][i], &itg.urX1[ks][j][i]
			fm, fp := &itg.x2Flux[ks][j][i-1], &itg.x2Flux[ks][j+1][i-1]
			ul.D -= qa * (fp.D - fm.D)
			ul.Mx -= qa * (fp.Mz - fm.Mz)
			ul.My -= qa * (fp.Mx - fm.Mx)
			ul.Mz -= qa * (fp.My - fm.My)
			ul.E -= qa * (fp.E - fm.E)
			if mhd {
				ul.Bz -= qa * (fp.By - fm.By)
			}
			for n := 0; n < fluid.NScalars; n++ {
				ul.S[n] -= qa * (fp.S[n] - fm.S[n])
			}

			fm, fp = &itg.x2Flux[ks][j][i], &itg.x2Flux[ks][j+1][i]
			ur.D -= qa * (fp.D - fm.D)
			ur.Mx -= qa * (fp.Mz - fm.Mz)
			ur.My -= qa * (fp.Mx - fm.Mx)
			ur.Mz -= qa * (fp.My - fm.My)
			ur.E -= qa * (fp.E - fm.E)
			if mhd {
				ur.Bz -= qa * (fp.By - fm.By)
			}
			for n := 0; n < fluid.NScalars; n++ {
				ur.S[n] -= qa * (fp.S[n] - fm.S[n])
			}
		}
	}

	// Step 5b: MHD source terms from the normal field gradient.
	if mhd {
		qa = 0.5 * dtodx1
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= iu; i++ {
				dbx := g.B1i[ks][j][i] - g.B1i[ks][j][i-1]
				qm := U[ks][j][i-1]
				v3 := qm.M3 / qm.D
				ul := &itg.ulX1[ks][j][i]
				ul.Mx += qa * qm.B1c * dbx
				ul.My += qa * qm.B2c * dbx
				ul.Mz += qa * qm.B3c * dbx
				ul.Bz += qa * v3 * dbx
				if !iso {
					ul.E += qa * qm.B3c * v3 * dbx
				}

				dbx = g.B1i[ks][j][i+1] - g.B1i[ks][j][i]
				qp := U[ks][j][i]
				v3 = qp.M3 / qp.D
				ur := &itg.urX1[ks][j][i]
				ur.Mx += qa * qp.B1c * dbx
				ur.My += qa * qp.B2c * dbx
				ur.Mz += qa * qp.B3c * dbx
				ur.Bz += qa * v3 * dbx
				if !iso {
					ur.E += qa * qp.B3c * v3 * dbx
				}
			}
		}
	}

	// Step 5c: transverse gravity for the x1-face states. The energy
	// source is the flux-weighted potential difference across each
	// half of the cell.
	if grav != nil {
		qa = 0.5 * dtodx2
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= iu; i++ {
				x1, x2, x3 := g.Pos(i, j, ks)
				phic := grav(x1, x2, x3)
				phir := grav(x1, x2+0.5*g.Dx2, x3)
				phil := grav(x1, x2-0.5*g.Dx2, x3)

				itg.urX1[ks][j][i].My -= qa * (phir - phil) * U[ks][j][i].D
				if !iso {
					itg.urX1[ks][j][i].E -= qa * (itg.x2Flux[ks][j][i].D*(phic-phil) +
						itg.x2Flux[ks][j+1][i].D*(phir-phic))
				}

				phic = grav(x1-g.Dx1, x2, x3)
				phir = grav(x1-g.Dx1, x2+0.5*g.Dx2, x3)
				phil = grav(x1-g.Dx1, x2-0.5*g.Dx2, x3)

				itg.ulX1[ks][j][i].My -= qa * (phir - phil) * U[ks][j][i-1].D
				if !iso {
					itg.ulX1[ks][j][i].E -= qa * (itg.x2Flux[ks][j][i-1].D*(phic-phil) +
						itg.x2Flux[ks][j+1][i-1].D*(phir-phic))
				}
			}
		}
	}

	// Step 6a: correct x2-face states with x1-flux gradients;
	// x1-sweep components map (x,y,z) -> (y,z,x).
	qa = 0.5 * dtodx1
	for j := js - 1; j <= ju; j++ {
		for i := is - 1; i <= ie+1; i++ {
			ul, ur := &itg.ulX2[ks][j][i], &itg.urX2[ks][j][i]
			fm, fp := &itg.x1Flux[ks][j-1][i], &itg.x1Flux[ks][j-1][i+1]
			ul.D -= qa * (fp.D - fm.D)
			ul.Mx -= qa * (fp.My - fm.My)
			ul.My -= qa * (fp.Mz - fm.Mz)
			ul.Mz -= qa * (fp.Mx - fm.Mx)
			ul.E -= qa * (fp.E - fm.E)
			if mhd {
				ul.By -= qa * (fp.Bz - fm.Bz)
			}
			for n := 0; n < fluid.NScalars; n++ {
				ul.S[n] -= qa * (fp.S[n] - fm.S[n])
			}

			fm, fp = &itg.x1Flux[ks][j][i], &itg.x1Flux[ks][j][i+1]
			ur.D -= qa * (fp.D - fm.D)
			ur.Mx -= qa * (fp.My - fm.My)
			ur.My -= qa * (fp.Mz - fm.Mz)
			ur.Mz -= qa * (fp.Mx - fm.Mx)
			ur.E -= qa * (fp.E - fm.E)
			if mhd {
				ur.By -= qa * (fp.Bz - fm.Bz)
			}
			for n := 0; n < fluid.NScalars; n++ {
				ur.S[n] -= qa * (fp.S[n] - fm.S[n])
			}
		}
	}

	// Step 6b: MHD source terms for the x2-face states.
	if mhd {
		qa = 0.5 * dtodx2
		for j := js - 1; j <= ju; j++ {
			for i := is - 1; i <= ie+1; i++ {
				dby := g.B2i[ks][j][i] - g.B2i[ks][j-1][i]
				qm := U[ks][j-1][i]
				v3 := qm.M3 / qm.D
				ul := &itg.ulX2[ks][j][i]
				ul.Mz += qa * qm.B1c * dby
				ul.Mx += qa * qm.B2c * dby
				ul.My += qa * qm.B3c * dby
				ul.By += qa * v3 * dby
				if !iso {
					ul.E += qa * qm.B3c * v3 * dby
				}

				dby = g.B2i[ks][j+1][i] - g.B2i[ks][j][i]
				qp := U[ks][j][i]
				v3 = qp.M3 / qp.D
				ur := &itg.urX2[ks][j][i]
				ur.Mz += qa * qp.B1c * dby
				ur.Mx += qa * qp.B2c * dby
				ur.My += qa * qp.B3c * dby
				ur.By += qa * v3 * dby
				if !iso {
					ur.E += qa * qp.B3c * v3 * dby
				}
			}
		}
	}

	// Step 6c: transverse gravity for the x2-face states.
	if grav != nil {
		qa = 0.5 * dtodx1
		for j := js - 1; j <= ju; j++ {
			for i := is - 1; i <= ie+1; i++ {
				x1, x2, x3 := g.Pos(i, j, ks)
				phic := grav(x1, x2, x3)
				phir := grav(x1+0.5*g.Dx1, x2, x3)
				phil := grav(x1-0.5*g.Dx1, x2, x3)

				itg.urX2[ks][j][i].Mz -= qa * (phir - phil) * U[ks][j][i].D
				if !iso {
					itg.urX2[ks][j][i].E -= qa * (itg.x1Flux[ks][j][i].D*(phic-phil) +
						itg.x1Flux[ks][j][i+1].D*(phir-phic))
				}

				phic = grav(x1, x2-g.Dx2, x3)
				phir = grav(x1+0.5*g.Dx1, x2-g.Dx2, x3)
				phil = grav(x1-0.5*g.Dx1, x2-g.Dx2, x3)

				itg.ulX2[ks][j][i].Mz -= qa * (phir - phil) * U[ks][j-1][i].D
				if !iso {
					itg.ulX2[ks][j][i].E -= qa * (itg.x1Flux[ks][j-1][i].D*(phic-phil) +
						itg.x1Flux[ks][j-1][i+1].D*(phir-phic))
				}
			}
		}
	}

	// Step 7: half-step density, and cell-centered emf3 at t^{n+1/2}
	// from the half-advanced momenta and face fields.
	if itg.dhalf != nil {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+1; i++ {
				d := U[ks][j][i].D -
					0.5*dtodx1*(itg.x1Flux[ks][j][i+1].D-itg.x1Flux[ks][j][i].D) -
					0.5*dtodx2*(itg.x2Flux[ks][j+1][i].D-itg.x2Flux[ks][j][i].D)
				if d <= 0 {
					return &BadStateError{I: i, J: j, K: ks, Sweep: "half-step",
						Density: d, Err: errNonPhysical}
				}
				itg.dhalf[ks][j][i] = d
			}
		}
	}

	if mhd {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+1; i++ {
				x1, x2, x3 := g.Pos(i, j, ks)
				d := itg.dhalf[ks][j][i]

				m1 := U[ks][j][i].M1 -
					0.5*dtodx1*(itg.x1Flux[ks][j][i+1].Mx-itg.x1Flux[ks][j][i].Mx) -
					0.5*dtodx2*(itg.x2Flux[ks][j+1][i].Mz-itg.x2Flux[ks][j][i].Mz)
				if grav != nil {
					phir := grav(x1+0.5*g.Dx1, x2, x3)
					phil := grav(x1-0.5*g.Dx1, x2, x3)
					m1 -= 0.5 * dtodx1 * (phir - phil) * U[ks][j][i].D
				}

				m2 := U[ks][j][i].M2 -
					0.5*dtodx1*(itg.x1Flux[ks][j][i+1].My-itg.x1Flux[ks][j][i].My) -
					0.5*dtodx2*(itg.x2Flux[ks][j+1][i].Mx-itg.x2Flux[ks][j][i].Mx)
				if grav != nil {
					phir := grav(x1, x2+0.5*g.Dx2, x3)
					phil := grav(x1, x2-0.5*g.Dx2, x3)
					m2 -= 0.5 * dtodx2 * (phir - phil) * U[ks][j][i].D
				}

				b1c := 0.5 * (itg.b1Face[ks][j][i] + itg.b1Face[ks][j][i+1])
				b2c := 0.5 * (itg.b2Face[ks][j][i] + itg.b2Face[ks][j+1][i])

				itg.emf3cc[ks][j][i] = (b1c*m2 - b2c*m1) / d
			}
		}
	}

	// Step 8a: H-correction wavespeeds from the corrected states.
	if itg.cfg.HCorrection {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= iu; i++ {
				bx := face(itg.b1Face, ks, j, i)
				cfr := eos.Cfast(itg.urX1[ks][j][i], bx)
				cfl := eos.Cfast(itg.ulX1[ks][j][i], bx)
				ur := itg.urX1[ks][j][i].Mx / itg.urX1[ks][j][i].D
				ul := itg.ulX1[ks][j][i].Mx / itg.ulX1[ks][j][i].D
				itg.eta1[ks][j][i] = 0.5 * (abs(ur-ul) + abs(cfr-cfl))
			}
		}
		for j := js - 1; j <= ju; j++ {
			for i := is - 1; i <= ie+1; i++ {
				bx := face(itg.b2Face, ks, j, i)
				cfr := eos.Cfast(itg.urX2[ks][j][i], bx)
				cfl := eos.Cfast(itg.ulX2[ks][j][i], bx)
				ur := itg.urX2[ks][j][i].Mx / itg.urX2[ks][j][i].D
				ul := itg.ulX2[ks][j][i].Mx / itg.ulX2[ks][j][i].D
				itg.eta2[ks][j][i] = 0.5 * (abs(ur-ul) + abs(cfr-cfl))
			}
		}
	}

	// Step 8b: final x1-fluxes.
	for j := js - 1; j <= je+1; j++ {
		for i := is; i <= ie+1; i++ {
			etah := 0.0
			if itg.cfg.HCorrection {
				etah = max(itg.eta2[ks][j][i-1], itg.eta2[ks][j][i])
				etah = max(etah, itg.eta2[ks][j+1][i-1])
				etah = max(etah, itg.eta2[ks][j+1][i])
				etah = max(etah, itg.eta1[ks][j][i])
			}
			f, err := itg.cfg.Flux(eos, face(itg.b1Face, ks, j, i),
				itg.ulX1[ks][j][i], itg.urX1[ks][j][i], etah)
			if err != nil {
				return &BadStateError{I: i, J: j, K: ks, Sweep: "x1",
					Density: itg.ulX1[ks][j][i].D, Err: err}
			}
			itg.x1Flux[ks][j][i] = f
		}
	}

	// Step 8c: final x2-fluxes.
	for j := js; j <= je+1; j++ {
		for i := is - 1; i <= ie+1; i++ {
			etah := 0.0
			if itg.cfg.HCorrection {
				etah = max(itg.eta1[ks][j-1][i], itg.eta1[ks][j][i])
				etah = max(etah, itg.eta1[ks][j-1][i+1])
				etah = max(etah, itg.eta1[ks][j][i+1])
				etah = max(etah, itg.eta2[ks][j][i])
			}
			f, err := itg.cfg.Flux(eos, face(itg.b2Face, ks, j, i),
				itg.ulX2[ks][j][i], itg.urX2[ks][j][i], etah)
			if err != nil {
				return &BadStateError{I: i, J: j, K: ks, Sweep: "x2",
					Density: itg.ulX2[ks][j][i].D, Err: err}
			}
			itg.x2Flux[ks][j][i] = f
		}
	}

	// Step 9: corner-integrate emf3 at the half step and apply the
	// full-step CT update to the stored face fields.
	if mhd {
		itg.emf3Corner(g)

		for j := js; j <= je; j++ {
			for i := is; i <= ie; i++ {
				g.B1i[ks][j][i] -= dtodx2 * (itg.emf3[ks][j+1][i] - itg.emf3[ks][j][i])
				g.B2i[ks][j][i] += dtodx1 * (itg.emf3[ks][j][i+1] - itg.emf3[ks][j][i])
			}
			g.B1i[ks][j][ie+1] -= dtodx2 * (itg.emf3[ks][j+1][ie+1] - itg.emf3[ks][j][ie+1])
		}
		for i := is; i <= ie; i++ {
			g.B2i[ks][je+1][i] += dtodx1 * (itg.emf3[ks][je+1][i+1] - itg.emf3[ks][je+1][i])
		}
	}

	// Step 10: full-step gravity at second order using dhalf.
	if grav != nil {
		for j := js; j <= je; j++ {
			for i := is; i <= ie; i++ {
				x1, x2, x3 := g.Pos(i, j, ks)
				phic := grav(x1, x2, x3)
				phir := grav(x1+0.5*g.Dx1, x2, x3)
				phil := grav(x1-0.5*g.Dx1, x2, x3)

				U[ks][j][i].M1 -= dtodx1 * itg.dhalf[ks][j][i] * (phir - phil)
				if !iso {
					U[ks][j][i].E -= dtodx1 * (itg.x1Flux[ks][j][i].D*(phic-phil) +
						itg.x1Flux[ks][j][i+1].D*(phir-phic))
				}

				phir = grav(x1, x2+0.5*g.Dx2, x3)
				phil = grav(x1, x2-0.5*g.Dx2, x3)

				U[ks][j][i].M2 -= dtodx2 * itg.dhalf[ks][j][i] * (phir - phil)
				if !iso {
					U[ks][j][i].E -= dtodx2 * (itg.x2Flux[ks][j][i].D*(phic-phil) +
						itg.x2Flux[ks][j+1][i].D*(phir-phic))
				}
			}
		}
	}

	// Step 11: conservative update from both flux directions.
	for j := js; j <= je; j++ {
		for i := is; i <= ie; i++ {
			q := &U[ks][j][i]
			fm, fp := &itg.x1Flux[ks][j][i], &itg.x1Flux[ks][j][i+1]
			q.D -= dtodx1 * (fp.D - fm.D)
			q.M1 -= dtodx1 * (fp.Mx - fm.Mx)
			q.M2 -= dtodx1 * (fp.My - fm.My)
			q.M3 -= dtodx1 * (fp.Mz - fm.Mz)
			q.E -= dtodx1 * (fp.E - fm.E)
			if mhd {
				q.B2c -= dtodx1 * (fp.By - fm.By)
				q.B3c -= dtodx1 * (fp.Bz - fm.Bz)
			}
			for n := 0; n < fluid.NScalars; n++ {
				q.S[n] -= dtodx1 * (fp.S[n] - fm.S[n])
			}
		}
	}

	for j := js; j <= je; j++ {
		for i := is; i <= ie; i++ {
			q := &U[ks][j][i]
			fm, fp := &itg.x2Flux[ks][j][i], &itg.x2Flux[ks][j+1][i]
			q.D -= dtodx2 * (fp.D - fm.D)
			q.M1 -= dtodx2 * (fp.Mz - fm.Mz)
			q.M2 -= dtodx2 * (fp.Mx - fm.Mx)
			q.M3 -= dtodx2 * (fp.My - fm.My)
			q.E -= dtodx2 * (fp.E - fm.E)
			if mhd {
				q.B3c -= dtodx2 * (fp.By - fm.By)
				q.B1c -= dtodx2 * (fp.Bz - fm.Bz)
			}
			for n := 0; n < fluid.NScalars; n++ {
				q.S[n] -= dtodx2 * (fp.S[n] - fm.S[n])
			}
		}
	}

	// Step 13: sync the cell-centered field to the face average; the
	// 3-interface field tracks the cell center in 2D.
	if mhd {
		for j := js; j <= je; j++ {
			for i := is; i <= ie; i++ {
				U[ks][j][i].B1c = 0.5 * (g.B1i[ks][j][i] + g.B1i[ks][j][i+1])
				U[ks][j][i].B2c = 0.5 * (g.B2i[ks][j][i] + g.B2i[ks][j+1][i])
				g.B3i[ks][j][i] = U[ks][j][i].B3c
			}
		}
	}

	return nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
