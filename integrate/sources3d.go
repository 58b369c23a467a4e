package integrate

import "github.com/astroflux/gomhd/grid"

// Gravity corrections to the corrected L/R states (3D). The momentum
// source is -(rho) grad(Phi) over dt/2 in each transverse direction;
// the energy source averages the mass-flux-weighted potential
// differences across the two half-cells for second-order conservation.

func (itg *Integrator) gravX1Faces(g *grid.Grid) {
	var (
		grav   = itg.cfg.GravPot
		iso    = itg.cfg.EOS.Isothermal
		q2     = 0.5 * g.Dt / g.Dx2
		q3     = 0.5 * g.Dt / g.Dx3
		is, ie = g.Is, g.Ie
		js, je = g.Js, g.Je
		ks, ke = g.Ks, g.Ke
		U      = g.U
	)
	for k := ks - 1; k <= ke+1; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+2; i++ {
				x1, x2, x3 := g.Pos(i, j, k)

				phic := grav(x1, x2, x3)
				phir := grav(x1, x2+0.5*g.Dx2, x3)
				phil := grav(x1, x2-0.5*g.Dx2, x3)

				itg.urX1[k][j][i].My -= q2 * (phir - phil) * U[k][j][i].D
				if !iso {
					itg.urX1[k][j][i].E -= q2 * (itg.x2Flux[k][j][i].D*(phic-phil) +
						itg.x2Flux[k][j+1][i].D*(phir-phic))
				}

				phir = grav(x1, x2, x3+0.5*g.Dx3)
				phil = grav(x1, x2, x3-0.5*g.Dx3)

				itg.urX1[k][j][i].Mz -= q3 * (phir - phil) * U[k][j][i].D
				if !iso {
					itg.urX1[k][j][i].E -= q3 * (itg.x3Flux[k][j][i].D*(phic-phil) +
						itg.x3Flux[k+1][j][i].D*(phir-phic))
				}

				phic = grav(x1-g.Dx1, x2, x3)
				phir = grav(x1-g.Dx1, x2+0.5*g.Dx2, x3)
				phil = grav(x1-g.Dx1, x2-0.5*g.Dx2, x3)

				itg.ulX1[k][j][i].My -= q2 * (phir - phil) * U[k][j][i-1].D
				if !iso {
					itg.ulX1[k][j][i].E -= q2 * (itg.x2Flux[k][j][i-1].D*(phic-phil) +
						itg.x2Flux[k][j+1][i-1].D*(phir-phic))
				}

				phir = grav(x1-g.Dx1, x2, x3+0.5*g.Dx3)
				phil = grav(x1-g.Dx1, x2, x3-0.5*g.Dx3)

				itg.ulX1[k][j][i].Mz -= q3 * (phir - phil) * U[k][j][i-1].D
				if !iso {
					itg.ulX1[k][j][i].E -= q3 * (itg.x3Flux[k][j][i-1].D*(phic-phil) +
						itg.x3Flux[k+1][j][i-1].D*(phir-phic))
				}
			}
		}
	}
}

func (itg *Integrator) gravX2Faces(g *grid.Grid) {
	var (
		grav   = itg.cfg.GravPot
		iso    = itg.cfg.EOS.Isothermal
		q1     = 0.5 * g.Dt / g.Dx1
		q3     = 0.5 * g.Dt / g.Dx3
		is, ie = g.Is, g.Ie
		js, je = g.Js, g.Je
		ks, ke = g.Ks, g.Ke
		U      = g.U
	)
	for k := ks - 1; k <= ke+1; k++ {
		for j := js - 1; j <= je+2; j++ {
			for i := is - 1; i <= ie+1; i++ {
				x1, x2, x3 := g.Pos(i, j, k)

				phic := grav(x1, x2, x3)
				phir := grav(x1+0.5*g.Dx1, x2, x3)
				phil := grav(x1-0.5*g.Dx1, x2, x3)

				itg.urX2[k][j][i].Mz -= q1 * (phir - phil) * U[k][j][i].D
				if !iso {
					itg.urX2[k][j][i].E -= q1 * (itg.x1Flux[k][j][i].D*(phic-phil) +
						itg.x1Flux[k][j][i+1].D*(phir-phic))
				}

				phir = grav(x1, x2, x3+0.5*g.Dx3)
				phil = grav(x1, x2, x3-0.5*g.Dx3)

				itg.urX2[k][j][i].My -= q3 * (phir - phil) * U[k][j][i].D
				if !iso {
					itg.urX2[k][j][i].E -= q3 * (itg.x3Flux[k][j][i].D*(phic-phil) +
						itg.x3Flux[k+1][j][i].D*(phir-phic))
				}

				phic = grav(x1, x2-g.Dx2, x3)
				phir = grav(x1+0.5*g.Dx1, x2-g.Dx2, x3)
				phil = grav(x1-0.5*g.Dx1, x2-g.Dx2, x3)

				itg.ulX2[k][j][i].Mz -= q1 * (phir - phil) * U[k][j-1][i].D
				if !iso {
					itg.ulX2[k][j][i].E -= q1 * (itg.x1Flux[k][j-1][i].D*(phic-phil) +
						itg.x1Flux[k][j-1][i+1].D*(phir-phic))
				}

				phir = grav(x1, x2-g.Dx2, x3+0.5*g.Dx3)
				phil = grav(x1, x2-g.Dx2, x3-0.5*g.Dx3)

				itg.ulX2[k][j][i].My -= q3 * (phir - phil) * U[k][j-1][i].D
				if !iso {
					itg.ulX2[k][j][i].E -= q3 * (itg.x3Flux[k][j-1][i].D*(phic-phil) +
						itg.x3Flux[k+1][j-1][i].D*(phir-phic))
				}
			}
		}
	}
}

func (itg *Integrator) gravX3Faces(g *grid.Grid) {
	var (
		grav   = itg.cfg.GravPot
		iso    = itg.cfg.EOS.Isothermal
		q1     = 0.5 * g.Dt / g.Dx1
		q2     = 0.5 * g.Dt / g.Dx2
		is, ie = g.Is, g.Ie
		js, je = g.Js, g.Je
		ks, ke = g.Ks, g.Ke
		U      = g.U
	)
	for k := ks - 1; k <= ke+2; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+1; i++ {
				x1, x2, x3 := g.Pos(i, j, k)

				phic := grav(x1, x2, x3)
				phir := grav(x1+0.5*g.Dx1, x2, x3)
				phil := grav(x1-0.5*g.Dx1, x2, x3)

				itg.urX3[k][j][i].My -= q1 * (phir - phil) * U[k][j][i].D
				if !iso {
					itg.urX3[k][j][i].E -= q1 * (itg.x1Flux[k][j][i].D*(phic-phil) +
						itg.x1Flux[k][j][i+1].D*(phir-phic))
				}

				phir = grav(x1, x2+0.5*g.Dx2, x3)
				phil = grav(x1, x2-0.5*g.Dx2, x3)

				itg.urX3[k][j][i].Mz -= q2 * (phir - phil) * U[k][j][i].D
				if !iso {
					itg.urX3[k][j][i].E -= q2 * (itg.x2Flux[k][j][i].D*(phic-phil) +
						itg.x2Flux[k][j+1][i].D*(phir-phic))
				}

				phic = grav(x1, x2, x3-g.Dx3)
				phir = grav(x1+0.5*g.Dx1, x2, x3-g.Dx3)
				phil = grav(x1-0.5*g.Dx1, x2, x3-g.Dx3)

				itg.ulX3[k][j][i].My -= q1 * (phir - phil) * U[k-1][j][i].D
				if !iso {
					itg.ulX3[k][j][i].E -= q1 * (itg.x1Flux[k-1][j][i].D*(phic-phil) +
						itg.x1Flux[k-1][j][i+1].D*(phir-phic))
				}

				phir = grav(x1, x2+0.5*g.Dx2, x3-g.Dx3)
				phil = grav(x1, x2-0.5*g.Dx2, x3-g.Dx3)

				itg.ulX3[k][j][i].Mz -= q2 * (phir - phil) * U[k-1][j][i].D
				if !iso {
					itg.ulX3[k][j][i].E -= q2 * (itg.x2Flux[k-1][j][i].D*(phic-phil) +
						itg.x2Flux[k-1][j+1][i].D*(phir-phic))
				}
			}
		}
	}
}

// shearingBoxSources applies the Coriolis and tidal momentum sources at
// the end of the 3D step. The y-momentum fluctuation
// dM2 = M2 + 1.5 rho Omega x1 is advanced by dt/2 with forward Euler,
// then the Coriolis pair is closed with a Crank-Nicholson update.
func (itg *Integrator) shearingBoxSources(g *grid.Grid) {
	var (
		grav   = itg.cfg.GravPot
		iso    = itg.cfg.EOS.Isothermal
		omega  = itg.cfg.Omega
		dtodx1 = g.Dt / g.Dx1
		dtodx2 = g.Dt / g.Dx2
		dtodx3 = g.Dt / g.Dx3
		hdtdx1 = 0.5 * dtodx1
		hdtdx2 = 0.5 * dtodx2
		hdtdx3 = 0.5 * dtodx3
		omdt   = omega * g.Dt
		fact   = omdt / (1.0 + 0.25*omdt*omdt)
		is, ie = g.Is, g.Ie
		js, je = g.Js, g.Je
		ks, ke = g.Ks, g.Ke
		U      = g.U
	)

	for k := ks; k <= ke; k++ {
		for j := js; j <= je; j++ {
			for i := is; i <= ie; i++ {
				x1, x2, x3 := g.Pos(i, j, k)

				m1n := U[k][j][i].M1
				dM2n := U[k][j][i].M2 + U[k][j][i].D*1.5*omega*x1

				// Fluxes of the y-momentum fluctuation through the six
				// faces of the cell.
				flx1 := itg.x1Flux[k][j][i].My + 1.5*omega*(x1-0.5*g.Dx1)*itg.x1Flux[k][j][i].D
				frx1 := itg.x1Flux[k][j][i+1].My + 1.5*omega*(x1+0.5*g.Dx1)*itg.x1Flux[k][j][i+1].D
				flx2 := itg.x2Flux[k][j][i].Mx + 1.5*omega*x1*itg.x2Flux[k][j][i].D
				frx2 := itg.x2Flux[k][j+1][i].Mx + 1.5*omega*x1*itg.x2Flux[k][j+1][i].D
				flx3 := itg.x3Flux[k][j][i].Mz + 1.5*omega*x1*itg.x3Flux[k][j][i].D
				frx3 := itg.x3Flux[k+1][j][i].Mz + 1.5*omega*x1*itg.x3Flux[k+1][j][i].D

				m1e := m1n + hdtdx1*(itg.x1Flux[k][j][i].Mx-itg.x1Flux[k][j][i+1].Mx) +
					hdtdx2*(itg.x2Flux[k][j][i].Mz-itg.x2Flux[k][j+1][i].Mz) +
					hdtdx3*(itg.x3Flux[k][j][i].My-itg.x3Flux[k+1][j][i].My)

				dM2e := dM2n + hdtdx1*(flx1-frx1) + hdtdx2*(flx2-frx2) + hdtdx3*(flx3-frx3)

				U[k][j][i].M1 += (2.0*dM2e - 0.5*omdt*m1e) * fact
				U[k][j][i].M2 += -0.5*(m1e+omdt*dM2e)*fact -
					0.75*omega*(itg.x1Flux[k][j][i].D+itg.x1Flux[k][j][i+1].D)

				if grav == nil {
					continue
				}

				// Vertical gravity and the energy update for the
				// enrolled conservative potential.
				phic := grav(x1, x2, x3)

				phir := grav(x1+0.5*g.Dx1, x2, x3)
				phil := grav(x1-0.5*g.Dx1, x2, x3)
				if !iso {
					U[k][j][i].E += dtodx1 * (itg.x1Flux[k][j][i].D*(phil-phic) +
						itg.x1Flux[k][j][i+1].D*(phic-phir))
				}

				phir = grav(x1, x2+0.5*g.Dx2, x3)
				phil = grav(x1, x2-0.5*g.Dx2, x3)
				if !iso {
					U[k][j][i].E += dtodx2 * (itg.x2Flux[k][j][i].D*(phil-phic) +
						itg.x2Flux[k][j+1][i].D*(phic-phir))
				}

				phir = grav(x1, x2, x3+0.5*g.Dx3)
				phil = grav(x1, x2, x3-0.5*g.Dx3)
				U[k][j][i].M3 -= dtodx3 * (phir - phil) * itg.dhalf[k][j][i]
				if !iso {
					U[k][j][i].E += dtodx3 * (itg.x3Flux[k][j][i].D*(phil-phic) +
						itg.x3Flux[k+1][j][i].D*(phic-phir))
				}
			}
		}
	}
}
