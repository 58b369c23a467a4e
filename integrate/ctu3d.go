package integrate

import (
	"github.com/astroflux/gomhd/fluid"
	"github.com/astroflux/gomhd/grid"
)

// step3D is the 6-solve CTU integrator. Step numbering: longitudinal
// predictors (1-3), EMFs at t^n and half-step CT (4-5), transverse
// corrections per face pair (6-8), half-step density and EMFs (9),
// H-correction and final fluxes (10), full-step CT (11), gravity and
// shearing-box sources (12), conservative update (13), field sync (14).
func (itg *Integrator) step3D(g *grid.Grid) error {
	var (
		eos      = itg.cfg.EOS
		mhd      = eos.MHD
		iso      = eos.Isothermal
		grav     = itg.cfg.GravPot
		shearing = itg.cfg.ShearingBox
		omega    = itg.cfg.Omega

		dtodx1 = g.Dt / g.Dx1
		dtodx2 = g.Dt / g.Dx2
		dtodx3 = g.Dt / g.Dx3
		hdt    = 0.5 * g.Dt
		hdtdx1 = 0.5 * dtodx1
		hdtdx2 = 0.5 * dtodx2
		hdtdx3 = 0.5 * dtodx3

		is, ie = g.Is, g.Ie
		js, je = g.Js, g.Je
		ks, ke = g.Ks, g.Ke
		U      = g.U

		q1, q2, q3 float64
	)

	// Step 1: x1 predictor, sweep order (M1,M2,M3), (B2c,B3c).
	for k := ks - 2; k <= ke+2; k++ {
		for j := js - 2; j <= je+2; j++ {
			for i := is - grid.Nghost; i <= ie+grid.Nghost; i++ {
				q := U[k][j][i]
				itg.u1d[i] = fluid.Cons1D{D: q.D, Mx: q.M1, My: q.M2, Mz: q.M3,
					E: q.E, By: q.B2c, Bz: q.B3c, S: q.S}
				if mhd {
					itg.bxc[i] = q.B1c
					itg.bxi[i] = g.B1i[k][j][i]
					itg.b1Face[k][j][i] = g.B1i[k][j][i]
				}
			}

			for i := is - grid.Nghost; i <= ie+grid.Nghost; i++ {
				itg.w[i] = eos.Cons1DToPrim1D(itg.u1d[i], itg.bxc[i])
				if itg.w[i].D <= 0 || (!iso && itg.w[i].P <= 0) {
					return &BadStateError{I: i, J: j, K: k, Sweep: "x1",
						Density: itg.w[i].D, Pressure: itg.w[i].P, Err: errNonPhysical}
				}
			}
			itg.cfg.LRStates(eos, itg.w, itg.bxc, g.Dt, dtodx1, is-1, ie+1, itg.wl, itg.wr)

			// MHD source terms for dt/2, with the divergence split
			// limited between the transverse directions.
			if mhd {
				for i := is - 1; i <= ie+2; i++ {
					db1 := (g.B1i[k][j][i] - g.B1i[k][j][i-1]) / g.Dx1
					db2 := (g.B2i[k][j+1][i-1] - g.B2i[k][j][i-1]) / g.Dx2
					db3 := (g.B3i[k+1][j][i-1] - g.B3i[k][j][i-1]) / g.Dx3
					l2, l3 := splitDiv(db1, db2, db3)

					qm := U[k][j][i-1]
					itg.wl[i].By += hdt * (qm.M2 / qm.D) * l2
					itg.wl[i].Bz += hdt * (qm.M3 / qm.D) * l3

					db1 = (g.B1i[k][j][i+1] - g.B1i[k][j][i]) / g.Dx1
					db2 = (g.B2i[k][j+1][i] - g.B2i[k][j][i]) / g.Dx2
					db3 = (g.B3i[k+1][j][i] - g.B3i[k][j][i]) / g.Dx3
					l2, l3 = splitDiv(db1, db2, db3)

					qp := U[k][j][i]
					itg.wr[i].By += hdt * (qp.M2 / qp.D) * l2
					itg.wr[i].Bz += hdt * (qp.M3 / qp.D) * l3
				}
			}

			if grav != nil {
				for i := is - 1; i <= ie+2; i++ {
					x1, x2, x3 := g.Pos(i, j, k)
					phicr := grav(x1, x2, x3)
					phicl := grav(x1-g.Dx1, x2, x3)
					phifc := grav(x1-0.5*g.Dx1, x2, x3)

					itg.wl[i].Vx -= dtodx1 * (phifc - phicl)
					itg.wr[i].Vx -= dtodx1 * (phicr - phifc)
				}
			}

			// Coriolis terms for dt/2; the tidal potential arrives
			// through the enrolled gravity callback.
			if shearing {
				for i := is - 1; i <= ie+2; i++ {
					itg.wl[i].Vx += g.Dt * omega * itg.w[i-1].Vy
					itg.wl[i].Vy -= g.Dt * omega * itg.w[i-1].Vx

					itg.wr[i].Vx += g.Dt * omega * itg.w[i].Vy
					itg.wr[i].Vy -= g.Dt * omega * itg.w[i].Vx
				}
			}

			for i := is - 1; i <= ie+2; i++ {
				itg.ulX1[k][j][i] = eos.Prim1DToCons1D(itg.wl[i], itg.bxi[i])
				itg.urX1[k][j][i] = eos.Prim1DToCons1D(itg.wr[i], itg.bxi[i])
			}
			for i := is - 1; i <= ie+2; i++ {
				f, err := itg.cfg.Flux(eos, face(itg.b1Face, k, j, i),
					itg.ulX1[k][j][i], itg.urX1[k][j][i], 0)
				if err != nil {
					return &BadStateError{I: i, J: j, K: k, Sweep: "x1",
						Density: itg.ulX1[k][j][i].D, Err: err}
				}
				itg.x1Flux[k][j][i] = f
			}
		}
	}

	// Step 2: x2 predictor, sweep order (M2,M3,M1), (B3c,B1c).
	for k := ks - 2; k <= ke+2; k++ {
		for i := is - 2; i <= ie+2; i++ {
			for j := js - grid.Nghost; j <= je+grid.Nghost; j++ {
				q := U[k][j][i]
				itg.u1d[j] = fluid.Cons1D{D: q.D, Mx: q.M2, My: q.M3, Mz: q.M1,
					E: q.E, By: q.B3c, Bz: q.B1c, S: q.S}
				if mhd {
					itg.bxc[j] = q.B2c
					itg.bxi[j] = g.B2i[k][j][i]
					itg.b2Face[k][j][i] = g.B2i[k][j][i]
				}
			}

			for j := js - grid.Nghost; j <= je+grid.Nghost; j++ {
				itg.w[j] = eos.Cons1DToPrim1D(itg.u1d[j], itg.bxc[j])
				if itg.w[j].D <= 0 || (!iso && itg.w[j].P <= 0) {
					return &BadStateError{I: i, J: j, K: k, Sweep: "x2",
						Density: itg.w[j].D, Pressure: itg.w[j].P, Err: errNonPhysical}
				}
			}
			itg.cfg.LRStates(eos, itg.w, itg.bxc, g.Dt, dtodx2, js-1, je+1, itg.wl, itg.wr)

			if mhd {
				for j := js - 1; j <= je+2; j++ {
					db1 := (g.B1i[k][j-1][i+1] - g.B1i[k][j-1][i]) / g.Dx1
					db2 := (g.B2i[k][j][i] - g.B2i[k][j-1][i]) / g.Dx2
					db3 := (g.B3i[k+1][j-1][i] - g.B3i[k][j-1][i]) / g.Dx3
					l3, l1 := splitDiv(db2, db3, db1)

					qm := U[k][j-1][i]
					itg.wl[j].By += hdt * (qm.M3 / qm.D) * l3
					itg.wl[j].Bz += hdt * (qm.M1 / qm.D) * l1

					db1 = (g.B1i[k][j][i+1] - g.B1i[k][j][i]) / g.Dx1
					db2 = (g.B2i[k][j+1][i] - g.B2i[k][j][i]) / g.Dx2
					db3 = (g.B3i[k+1][j][i] - g.B3i[k][j][i]) / g.Dx3
					l3, l1 = splitDiv(db2, db3, db1)

					qp := U[k][j][i]
					itg.wr[j].By += hdt * (qp.M3 / qp.D) * l3
					itg.wr[j].Bz += hdt * (qp.M1 / qp.D) * l1
				}
			}

			if grav != nil {
				for j := js - 1; j <= je+2; j++ {
					x1, x2, x3 := g.Pos(i, j, k)
					phicr := grav(x1, x2, x3)
					phicl := grav(x1, x2-g.Dx2, x3)
					phifc := grav(x1, x2-0.5*g.Dx2, x3)

					itg.wl[j].Vx -= dtodx2 * (phifc - phicl)
					itg.wr[j].Vx -= dtodx2 * (phicr - phifc)
				}
			}

			for j := js - 1; j <= je+2; j++ {
				itg.ulX2[k][j][i] = eos.Prim1DToCons1D(itg.wl[j], itg.bxi[j])
				itg.urX2[k][j][i] = eos.Prim1DToCons1D(itg.wr[j], itg.bxi[j])
			}
		}
	}

	for k := ks - 2; k <= ke+2; k++ {
		for j := js - 1; j <= je+2; j++ {
			for i := is - 2; i <= ie+2; i++ {
				f, err := itg.cfg.Flux(eos, face(itg.b2Face, k, j, i),
					itg.ulX2[k][j][i], itg.urX2[k][j][i], 0)
				if err != nil {
					return &BadStateError{I: i, J: j, K: k, Sweep: "x2",
						Density: itg.ulX2[k][j][i].D, Err: err}
				}
				itg.x2Flux[k][j][i] = f
			}
		}
	}

	// Step 3: x3 predictor, sweep order (M3,M1,M2), (B1c,B2c).
	for j := js - 2; j <= je+2; j++ {
		for i := is - 2; i <= ie+2; i++ {
			for k := ks - grid.Nghost; k <= ke+grid.Nghost; k++ {
				q := U[k][j][i]
				itg.u1d[k] = fluid.Cons1D{D: q.D, Mx: q.M3, My: q.M1, Mz: q.M2,
					E: q.E, By: q.B1c, Bz: q.B2c, S: q.S}
				if mhd {
					itg.bxc[k] = q.B3c
					itg.bxi[k] = g.B3i[k][j][i]
					itg.b3Face[k][j][i] = g.B3i[k][j][i]
				}
			}

			for k := ks - grid.Nghost; k <= ke+grid.Nghost; k++ {
				itg.w[k] = eos.Cons1DToPrim1D(itg.u1d[k], itg.bxc[k])
				if itg.w[k].D <= 0 || (!iso && itg.w[k].P <= 0) {
					return &BadStateError{I: i, J: j, K: k, Sweep: "x3",
						Density: itg.w[k].D, Pressure: itg.w[k].P, Err: errNonPhysical}
				}
			}
			itg.cfg.LRStates(eos, itg.w, itg.bxc, g.Dt, dtodx3, ks-1, ke+1, itg.wl, itg.wr)

			if mhd {
				for k := ks - 1; k <= ke+2; k++ {
					db1 := (g.B1i[k-1][j][i+1] - g.B1i[k-1][j][i]) / g.Dx1
					db2 := (g.B2i[k-1][j+1][i] - g.B2i[k-1][j][i]) / g.Dx2
					db3 := (g.B3i[k][j][i] - g.B3i[k-1][j][i]) / g.Dx3
					l1, l2 := splitDiv(db3, db1, db2)

					qm := U[k-1][j][i]
					itg.wl[k].By += hdt * (qm.M1 / qm.D) * l1
					itg.wl[k].Bz += hdt * (qm.M2 / qm.D) * l2

					db1 = (g.B1i[k][j][i+1] - g.B1i[k][j][i]) / g.Dx1
					db2 = (g.B2i[k][j+1][i] - g.B2i[k][j][i]) / g.Dx2
					db3 = (g.B3i[k+1][j][i] - g.B3i[k][j][i]) / g.Dx3
					l1, l2 = splitDiv(db3, db1, db2)

					qp := U[k][j][i]
					itg.wr[k].By += hdt * (qp.M1 / qp.D) * l1
					itg.wr[k].Bz += hdt * (qp.M2 / qp.D) * l2
				}
			}

			if grav != nil {
				for k := ks - 1; k <= ke+2; k++ {
					x1, x2, x3 := g.Pos(i, j, k)
					phicr := grav(x1, x2, x3)
					phicl := grav(x1, x2, x3-g.Dx3)
					phifc := grav(x1, x2, x3-0.5*g.Dx3)

					itg.wl[k].Vx -= dtodx3 * (phifc - phicl)
					itg.wr[k].Vx -= dtodx3 * (phicr - phifc)
				}
			}

			for k := ks - 1; k <= ke+2; k++ {
				itg.ulX3[k][j][i] = eos.Prim1DToCons1D(itg.wl[k], itg.bxi[k])
				itg.urX3[k][j][i] = eos.Prim1DToCons1D(itg.wr[k], itg.bxi[k])
			}
		}
	}

	for k := ks - 1; k <= ke+2; k++ {
		for j := js - 2; j <= je+2; j++ {
			for i := is - 2; i <= ie+2; i++ {
				f, err := itg.cfg.Flux(eos, face(itg.b3Face, k, j, i),
					itg.ulX3[k][j][i], itg.urX3[k][j][i], 0)
				if err != nil {
					return &BadStateError{I: i, J: j, K: k, Sweep: "x3",
						Density: itg.ulX3[k][j][i].D, Err: err}
				}
				itg.x3Flux[k][j][i] = f
			}
		}
	}

	// Step 4: cell-centered EMFs at t^n, corner integration.
	if mhd {
		for k := ks - 2; k <= ke+2; k++ {
			for j := js - 2; j <= je+2; j++ {
				for i := is - 2; i <= ie+2; i++ {
					q := U[k][j][i]
					itg.emf1cc[k][j][i] = (q.B2c*q.M3 - q.B3c*q.M2) / q.D
					itg.emf2cc[k][j][i] = (q.B3c*q.M1 - q.B1c*q.M3) / q.D
					itg.emf3cc[k][j][i] = (q.B1c*q.M2 - q.B2c*q.M1) / q.D
				}
			}
		}
		itg.emf1Corner(g)
		itg.emf2Corner(g)
		itg.emf3Corner(g)

		// Step 5: half-step CT update of the working face fields.
		q1, q2, q3 = hdtdx1, hdtdx2, hdtdx3
		for k := ks - 1; k <= ke+1; k++ {
			for j := js - 1; j <= je+1; j++ {
				for i := is - 1; i <= ie+1; i++ {
					itg.b1Face[k][j][i] += q3*(itg.emf2[k+1][j][i]-itg.emf2[k][j][i]) -
						q2*(itg.emf3[k][j+1][i]-itg.emf3[k][j][i])
					itg.b2Face[k][j][i] += q1*(itg.emf3[k][j][i+1]-itg.emf3[k][j][i]) -
						q3*(itg.emf1[k+1][j][i]-itg.emf1[k][j][i])
					itg.b3Face[k][j][i] += q2*(itg.emf1[k][j+1][i]-itg.emf1[k][j][i]) -
						q1*(itg.emf2[k][j][i+1]-itg.emf2[k][j][i])
				}
				itg.b1Face[k][j][ie+2] += q3*(itg.emf2[k+1][j][ie+2]-itg.emf2[k][j][ie+2]) -
					q2*(itg.emf3[k][j+1][ie+2]-itg.emf3[k][j][ie+2])
			}
			for i := is - 1; i <= ie+1; i++ {
				itg.b2Face[k][je+2][i] += q1*(itg.emf3[k][je+2][i+1]-itg.emf3[k][je+2][i]) -
					q3*(itg.emf1[k+1][je+2][i]-itg.emf1[k][je+2][i])
			}
		}
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+1; i++ {
				itg.b3Face[ke+2][j][i] += q2*(itg.emf1[ke+2][j+1][i]-itg.emf1[ke+2][j][i]) -
					q1*(itg.emf2[ke+2][j][i+1]-itg.emf2[ke+2][j][i])
			}
		}
	}

	// Step 6: transverse corrections to the x1-face states.
	itg.correctX1Faces(g)
	if grav != nil {
		itg.gravX1Faces(g)
	}

	// Step 7: transverse corrections to the x2-face states.
	itg.correctX2Faces(g)
	if grav != nil {
		itg.gravX2Faces(g)
	}
	if shearing {
		for k := ks - 1; k <= ke+1; k++ {
			for j := js - 1; j <= je+2; j++ {
				for i := is - 1; i <= ie+1; i++ {
					itg.urX2[k][j][i].Mz += g.Dt * omega * U[k][j][i].M2
					itg.urX2[k][j][i].Mx -= g.Dt * omega * U[k][j][i].M1

					itg.ulX2[k][j][i].Mz += g.Dt * omega * U[k][j-1][i].M2
					itg.ulX2[k][j][i].Mx -= g.Dt * omega * U[k][j-1][i].M1
				}
			}
		}
	}

	// Step 8: transverse corrections to the x3-face states.
	itg.correctX3Faces(g)
	if grav != nil {
		itg.gravX3Faces(g)
	}
	if shearing {
		for k := ks - 1; k <= ke+2; k++ {
			for j := js - 1; j <= je+1; j++ {
				for i := is - 1; i <= ie+1; i++ {
					itg.urX3[k][j][i].My += g.Dt * omega * U[k][j][i].M2
					itg.urX3[k][j][i].Mz -= g.Dt * omega * U[k][j][i].M1

					itg.ulX3[k][j][i].My += g.Dt * omega * U[k-1][j][i].M2
					itg.ulX3[k][j][i].Mz -= g.Dt * omega * U[k-1][j][i].M1
				}
			}
		}
	}

	// Step 9: half-step density and cell-centered EMFs at t^{n+1/2}.
	if itg.dhalf != nil {
		for k := ks - 1; k <= ke+1; k++ {
			for j := js - 1; j <= je+1; j++ {
				for i := is - 1; i <= ie+1; i++ {
					d := U[k][j][i].D -
						hdtdx1*(itg.x1Flux[k][j][i+1].D-itg.x1Flux[k][j][i].D) -
						hdtdx2*(itg.x2Flux[k][j+1][i].D-itg.x2Flux[k][j][i].D) -
						hdtdx3*(itg.x3Flux[k+1][j][i].D-itg.x3Flux[k][j][i].D)
					if d <= 0 {
						return &BadStateError{I: i, J: j, K: k, Sweep: "half-step",
							Density: d, Err: errNonPhysical}
					}
					itg.dhalf[k][j][i] = d
				}
			}
		}
	}

	if mhd {
		for k := ks - 1; k <= ke+1; k++ {
			for j := js - 1; j <= je+1; j++ {
				for i := is - 1; i <= ie+1; i++ {
					x1, x2, x3 := g.Pos(i, j, k)
					d := itg.dhalf[k][j][i]

					m1 := U[k][j][i].M1 -
						hdtdx1*(itg.x1Flux[k][j][i+1].Mx-itg.x1Flux[k][j][i].Mx) -
						hdtdx2*(itg.x2Flux[k][j+1][i].Mz-itg.x2Flux[k][j][i].Mz) -
						hdtdx3*(itg.x3Flux[k+1][j][i].My-itg.x3Flux[k][j][i].My)
					if grav != nil {
						phir := grav(x1+0.5*g.Dx1, x2, x3)
						phil := grav(x1-0.5*g.Dx1, x2, x3)
						m1 -= hdtdx1 * (phir - phil) * U[k][j][i].D
					}

					m2 := U[k][j][i].M2 -
						hdtdx1*(itg.x1Flux[k][j][i+1].My-itg.x1Flux[k][j][i].My) -
						hdtdx2*(itg.x2Flux[k][j+1][i].Mx-itg.x2Flux[k][j][i].Mx) -
						hdtdx3*(itg.x3Flux[k+1][j][i].Mz-itg.x3Flux[k][j][i].Mz)
					if grav != nil {
						phir := grav(x1, x2+0.5*g.Dx2, x3)
						phil := grav(x1, x2-0.5*g.Dx2, x3)
						m2 -= hdtdx2 * (phir - phil) * U[k][j][i].D
					}

					m3 := U[k][j][i].M3 -
						hdtdx1*(itg.x1Flux[k][j][i+1].Mz-itg.x1Flux[k][j][i].Mz) -
						hdtdx2*(itg.x2Flux[k][j+1][i].My-itg.x2Flux[k][j][i].My) -
						hdtdx3*(itg.x3Flux[k+1][j][i].Mx-itg.x3Flux[k][j][i].Mx)
					if grav != nil {
						phir := grav(x1, x2, x3+0.5*g.Dx3)
						phil := grav(x1, x2, x3-0.5*g.Dx3)
						m3 -= hdtdx3 * (phir - phil) * U[k][j][i].D
					}

					if shearing {
						m1 += g.Dt * omega * U[k][j][i].M2
						m2 -= g.Dt * omega * U[k][j][i].M1
					}

					b1c := 0.5 * (itg.b1Face[k][j][i] + itg.b1Face[k][j][i+1])
					b2c := 0.5 * (itg.b2Face[k][j][i] + itg.b2Face[k][j+1][i])
					b3c := 0.5 * (itg.b3Face[k][j][i] + itg.b3Face[k+1][j][i])

					itg.emf1cc[k][j][i] = (b2c*m3 - b3c*m2) / d
					itg.emf2cc[k][j][i] = (b3c*m1 - b1c*m3) / d
					itg.emf3cc[k][j][i] = (b1c*m2 - b2c*m1) / d
				}
			}
		}
	}

	// Step 10: H-correction wavespeeds and final fluxes.
	if itg.cfg.HCorrection {
		itg.etaFaces3D(g)
	}

	for k := ks - 1; k <= ke+1; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is; i <= ie+1; i++ {
				etah := 0.0
				if itg.cfg.HCorrection {
					etah = max(itg.eta2[k][j][i-1], itg.eta2[k][j][i])
					etah = max(etah, itg.eta2[k][j+1][i-1])
					etah = max(etah, itg.eta2[k][j+1][i])
					etah = max(etah, itg.eta3[k][j][i-1])
					etah = max(etah, itg.eta3[k][j][i])
					etah = max(etah, itg.eta3[k+1][j][i-1])
					etah = max(etah, itg.eta3[k+1][j][i])
					etah = max(etah, itg.eta1[k][j][i])
				}
				f, err := itg.cfg.Flux(eos, face(itg.b1Face, k, j, i),
					itg.ulX1[k][j][i], itg.urX1[k][j][i], etah)
				if err != nil {
					return &BadStateError{I: i, J: j, K: k, Sweep: "x1",
						Density: itg.ulX1[k][j][i].D, Err: err}
				}
				itg.x1Flux[k][j][i] = f
			}
		}
	}

	for k := ks - 1; k <= ke+1; k++ {
		for j := js; j <= je+1; j++ {
			for i := is - 1; i <= ie+1; i++ {
				etah := 0.0
				if itg.cfg.HCorrection {
					etah = max(itg.eta1[k][j-1][i], itg.eta1[k][j][i])
					etah = max(etah, itg.eta1[k][j-1][i+1])
					etah = max(etah, itg.eta1[k][j][i+1])
					etah = max(etah, itg.eta3[k][j-1][i])
					etah = max(etah, itg.eta3[k][j][i])
					etah = max(etah, itg.eta3[k+1][j-1][i])
					etah = max(etah, itg.eta3[k+1][j][i])
					etah = max(etah, itg.eta2[k][j][i])
				}
				f, err := itg.cfg.Flux(eos, face(itg.b2Face, k, j, i),
					itg.ulX2[k][j][i], itg.urX2[k][j][i], etah)
				if err != nil {
					return &BadStateError{I: i, J: j, K: k, Sweep: "x2",
						Density: itg.ulX2[k][j][i].D, Err: err}
				}
				itg.x2Flux[k][j][i] = f
			}
		}
	}

	for k := ks; k <= ke+1; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+1; i++ {
				etah := 0.0
				if itg.cfg.HCorrection {
					etah = max(itg.eta1[k-1][j][i], itg.eta1[k][j][i])
					etah = max(etah, itg.eta1[k-1][j][i+1])
					etah = max(etah, itg.eta1[k][j][i+1])
					etah = max(etah, itg.eta2[k-1][j][i])
					etah = max(etah, itg.eta2[k][j][i])
					etah = max(etah, itg.eta2[k-1][j+1][i])
					etah = max(etah, itg.eta2[k][j+1][i])
					etah = max(etah, itg.eta3[k][j][i])
				}
				f, err := itg.cfg.Flux(eos, face(itg.b3Face, k, j, i),
					itg.ulX3[k][j][i], itg.urX3[k][j][i], etah)
				if err != nil {
					return &BadStateError{I: i, J: j, K: k, Sweep: "x3",
						Density: itg.ulX3[k][j][i].D, Err: err}
				}
				itg.x3Flux[k][j][i] = f
			}
		}
	}

	// Step 11: corner-integrate the half-step EMFs and apply the
	// full-step CT update to the stored face fields.
	if mhd {
		itg.emf1Corner(g)
		itg.emf2Corner(g)
		itg.emf3Corner(g)

		for k := ks; k <= ke; k++ {
			for j := js; j <= je; j++ {
				for i := is; i <= ie; i++ {
					g.B1i[k][j][i] += dtodx3*(itg.emf2[k+1][j][i]-itg.emf2[k][j][i]) -
						dtodx2*(itg.emf3[k][j+1][i]-itg.emf3[k][j][i])
					g.B2i[k][j][i] += dtodx1*(itg.emf3[k][j][i+1]-itg.emf3[k][j][i]) -
						dtodx3*(itg.emf1[k+1][j][i]-itg.emf1[k][j][i])
					g.B3i[k][j][i] += dtodx2*(itg.emf1[k][j+1][i]-itg.emf1[k][j][i]) -
						dtodx1*(itg.emf2[k][j][i+1]-itg.emf2[k][j][i])
				}
				g.B1i[k][j][ie+1] += dtodx3*(itg.emf2[k+1][j][ie+1]-itg.emf2[k][j][ie+1]) -
					dtodx2*(itg.emf3[k][j+1][ie+1]-itg.emf3[k][j][ie+1])
			}
			for i := is; i <= ie; i++ {
				g.B2i[k][je+1][i] += dtodx1*(itg.emf3[k][je+1][i+1]-itg.emf3[k][je+1][i]) -
					dtodx3*(itg.emf1[k+1][je+1][i]-itg.emf1[k][je+1][i])
			}
		}
		for j := js; j <= je; j++ {
			for i := is; i <= ie; i++ {
				g.B3i[ke+1][j][i] += dtodx2*(itg.emf1[ke+1][j+1][i]-itg.emf1[ke+1][j][i]) -
					dtodx1*(itg.emf2[ke+1][j][i+1]-itg.emf2[ke+1][j][i])
			}
		}
	}

	// Step 12: momentum and energy source terms at second order.
	if shearing {
		itg.shearingBoxSources(g)
	} else if grav != nil {
		for k := ks; k <= ke; k++ {
			for j := js; j <= je; j++ {
				for i := is; i <= ie; i++ {
					x1, x2, x3 := g.Pos(i, j, k)
					phic := grav(x1, x2, x3)

					phir := grav(x1+0.5*g.Dx1, x2, x3)
					phil := grav(x1-0.5*g.Dx1, x2, x3)
					U[k][j][i].M1 -= dtodx1 * (phir - phil) * itg.dhalf[k][j][i]
					if !iso {
						U[k][j][i].E -= dtodx1 * (itg.x1Flux[k][j][i].D*(phic-phil) +
							itg.x1Flux[k][j][i+1].D*(phir-phic))
					}

					phir = grav(x1, x2+0.5*g.Dx2, x3)
					phil = grav(x1, x2-0.5*g.Dx2, x3)
					U[k][j][i].M2 -= dtodx2 * (phir - phil) * itg.dhalf[k][j][i]
					if !iso {
						U[k][j][i].E -= dtodx2 * (itg.x2Flux[k][j][i].D*(phic-phil) +
							itg.x2Flux[k][j+1][i].D*(phir-phic))
					}

					phir = grav(x1, x2, x3+0.5*g.Dx3)
					phil = grav(x1, x2, x3-0.5*g.Dx3)
					U[k][j][i].M3 -= dtodx3 * (phir - phil) * itg.dhalf[k][j][i]
					if !iso {
						U[k][j][i].E -= dtodx3 * (itg.x3Flux[k][j][i].D*(phic-phil) +
							itg.x3Flux[k+1][j][i].D*(phir-phic))
					}
				}
			}
		}
	}

	// Step 13: conservative update from all three flux directions.
	for k := ks; k <= ke; k++ {
		for j := js; j <= je; j++ {
			for i := is; i <= ie; i++ {
				q := &U[k][j][i]
				fm, fp := &itg.x1Flux[k][j][i], &itg.x1Flux[k][j][i+1]
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

				fm, fp = &itg.x2Flux[k][j][i], &itg.x2Flux[k][j+1][i]
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

				fm, fp = &itg.x3Flux[k][j][i], &itg.x3Flux[k+1][j][i]
				q.D -= dtodx3 * (fp.D - fm.D)
				q.M1 -= dtodx3 * (fp.My - fm.My)
				q.M2 -= dtodx3 * (fp.Mz - fm.Mz)
				q.M3 -= dtodx3 * (fp.Mx - fm.Mx)
				q.E -= dtodx3 * (fp.E - fm.E)
				if mhd {
					q.B1c -= dtodx3 * (fp.By - fm.By)
					q.B2c -= dtodx3 * (fp.Bz - fm.Bz)
				}
				for n := 0; n < fluid.NScalars; n++ {
					q.S[n] -= dtodx3 * (fp.S[n] - fm.S[n])
				}
			}
		}
	}

	// Step 14: sync the cell-centered field to the face averages.
	if mhd {
		for k := ks; k <= ke; k++ {
			for j := js; j <= je; j++ {
				for i := is; i <= ie; i++ {
					U[k][j][i].B1c = 0.5 * (g.B1i[k][j][i] + g.B1i[k][j][i+1])
					U[k][j][i].B2c = 0.5 * (g.B2i[k][j][i] + g.B2i[k][j+1][i])
					U[k][j][i].B3c = 0.5 * (g.B3i[k][j][i] + g.B3i[k+1][j][i])
				}
			}
		}
	}

	return nil
}

// splitDiv distributes the normal field divergence dbN between the two
// transverse directions. Each share has the sign of dbN, is bounded by
// |dbN|, and is active only against an opposing transverse gradient.
func splitDiv(dbN, dbT1, dbT2 float64) (l1, l2 float64) {
	if dbN >= 0 {
		l1 = max(min(dbN, -dbT1), 0)
		l2 = max(min(dbN, -dbT2), 0)
	} else {
		l1 = min(max(dbN, -dbT1), 0)
		l2 = min(max(dbN, -dbT2), 0)
	}
	return
}
