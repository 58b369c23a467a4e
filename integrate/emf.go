package integrate

import "github.com/astroflux/gomhd/grid"

// Corner integration of the EMFs, the upwind CT method of Gardiner &
// Stone (2005). Each edge EMF is the four-point average of the
// adjacent face fluxes plus four upwind derivative corrections, where
// the upwind side is chosen by the sign of the mass flux on the
// orthogonal face and a vanishing mass flux selects the centered
// average. Sign conventions of the flux components:
//
//	x1Flux.By = -E3   x1Flux.Bz = +E2
//	x2Flux.By = -E1   x2Flux.Bz = +E3
//	x3Flux.By = -E2   x3Flux.Bz = +E1

// emf3Corner fills emf3 on the x3-aligned edges. In 2D the single k
// plane is processed; in 3D every plane the transverse corrections
// touch.
func (itg *Integrator) emf3Corner(g *grid.Grid) {
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	kl, ku := g.Ks, g.Ke
	if g.ThreeD() {
		kl, ku = g.Ks-2, g.Ke+2
	}

	x1F, x2F := itg.x1Flux, itg.x2Flux
	cc := itg.emf3cc

	for k := kl; k <= ku; k++ {
		for j := js - 1; j <= je+2; j++ {
			for i := is - 1; i <= ie+2; i++ {
				var de3L1, de3R1, de3L2, de3R2 float64

				if d := x1F[k][j-1][i].D; d > 0 {
					de3L2 = x2F[k][j][i-1].Bz - cc[k][j-1][i-1]
				} else if d < 0 {
					de3L2 = x2F[k][j][i].Bz - cc[k][j-1][i]
				} else {
					de3L2 = 0.5 * (x2F[k][j][i-1].Bz - cc[k][j-1][i-1] +
						x2F[k][j][i].Bz - cc[k][j-1][i])
				}

				if d := x1F[k][j][i].D; d > 0 {
					de3R2 = x2F[k][j][i-1].Bz - cc[k][j][i-1]
				} else if d < 0 {
					de3R2 = x2F[k][j][i].Bz - cc[k][j][i]
				} else {
					de3R2 = 0.5 * (x2F[k][j][i-1].Bz - cc[k][j][i-1] +
						x2F[k][j][i].Bz - cc[k][j][i])
				}

				if d := x2F[k][j][i-1].D; d > 0 {
					de3L1 = -x1F[k][j-1][i].By - cc[k][j-1][i-1]
				} else if d < 0 {
					de3L1 = -x1F[k][j][i].By - cc[k][j][i-1]
				} else {
					de3L1 = 0.5 * (-x1F[k][j-1][i].By - cc[k][j-1][i-1] -
						x1F[k][j][i].By - cc[k][j][i-1])
				}

				if d := x2F[k][j][i].D; d > 0 {
					de3R1 = -x1F[k][j-1][i].By - cc[k][j-1][i]
				} else if d < 0 {
					de3R1 = -x1F[k][j][i].By - cc[k][j][i]
				} else {
					de3R1 = 0.5 * (-x1F[k][j-1][i].By - cc[k][j-1][i] -
						x1F[k][j][i].By - cc[k][j][i])
				}

				itg.emf3[k][j][i] = 0.25 * (x2F[k][j][i-1].Bz + x2F[k][j][i].Bz -
					x1F[k][j-1][i].By - x1F[k][j][i].By +
					de3L1 + de3R1 + de3L2 + de3R2)
			}
		}
	}
}

// emf1Corner fills emf1 on the x1-aligned edges (3D only).
func (itg *Integrator) emf1Corner(g *grid.Grid) {
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke

	x2F, x3F := itg.x2Flux, itg.x3Flux
	cc := itg.emf1cc

	for k := ks - 1; k <= ke+2; k++ {
		for j := js - 1; j <= je+2; j++ {
			for i := is - 2; i <= ie+2; i++ {
				var de1L2, de1R2, de1L3, de1R3 float64

				if d := x2F[k-1][j][i].D; d > 0 {
					de1L3 = x3F[k][j-1][i].Bz - cc[k-1][j-1][i]
				} else if d < 0 {
					de1L3 = x3F[k][j][i].Bz - cc[k-1][j][i]
				} else {
					de1L3 = 0.5 * (x3F[k][j-1][i].Bz - cc[k-1][j-1][i] +
						x3F[k][j][i].Bz - cc[k-1][j][i])
				}

				if d := x2F[k][j][i].D; d > 0 {
					de1R3 = x3F[k][j-1][i].Bz - cc[k][j-1][i]
				} else if d < 0 {
					de1R3 = x3F[k][j][i].Bz - cc[k][j][i]
				} else {
					de1R3 = 0.5 * (x3F[k][j-1][i].Bz - cc[k][j-1][i] +
						x3F[k][j][i].Bz - cc[k][j][i])
				}

				if d := x3F[k][j-1][i].D; d > 0 {
					de1L2 = -x2F[k-1][j][i].By - cc[k-1][j-1][i]
				} else if d < 0 {
					de1L2 = -x2F[k][j][i].By - cc[k][j-1][i]
				} else {
					de1L2 = 0.5 * (-x2F[k-1][j][i].By - cc[k-1][j-1][i] -
						x2F[k][j][i].By - cc[k][j-1][i])
				}

				if d := x3F[k][j][i].D; d > 0 {
					de1R2 = -x2F[k-1][j][i].By - cc[k-1][j][i]
				} else if d < 0 {
					de1R2 = -x2F[k][j][i].By - cc[k][j][i]
				} else {
					de1R2 = 0.5 * (-x2F[k-1][j][i].By - cc[k-1][j][i] -
						x2F[k][j][i].By - cc[k][j][i])
				}

				itg.emf1[k][j][i] = 0.25 * (x3F[k][j][i].Bz + x3F[k][j-1][i].Bz -
					x2F[k][j][i].By - x2F[k-1][j][i].By +
					de1L2 + de1R2 + de1L3 + de1R3)
			}
		}
	}
}

// emf2Corner fills emf2 on the x2-aligned edges (3D only).
func (itg *Integrator) emf2Corner(g *grid.Grid) {
	is, ie := g.Is, g.Ie
	js, je := g.Js, g.Je
	ks, ke := g.Ks, g.Ke

	x1F, x3F := itg.x1Flux, itg.x3Flux
	cc := itg.emf2cc

	for k := ks - 1; k <= ke+2; k++ {
		for j := js - 2; j <= je+2; j++ {
			for i := is - 1; i <= ie+2; i++ {
				var de2L1, de2R1, de2L3, de2R3 float64

				if d := x1F[k-1][j][i].D; d > 0 {
					de2L3 = -x3F[k][j][i-1].By - cc[k-1][j][i-1]
				} else if d < 0 {
					de2L3 = -x3F[k][j][i].By - cc[k-1][j][i]
				} else {
					de2L3 = 0.5 * (-x3F[k][j][i-1].By - cc[k-1][j][i-1] -
						x3F[k][j][i].By - cc[k-1][j][i])
				}

				if d := x1F[k][j][i].D; d > 0 {
					de2R3 = -x3F[k][j][i-1].By - cc[k][j][i-1]
				} else if d < 0 {
					de2R3 = -x3F[k][j][i].By - cc[k][j][i]
				} else {
					de2R3 = 0.5 * (-x3F[k][j][i-1].By - cc[k][j][i-1] -
						x3F[k][j][i].By - cc[k][j][i])
				}

				if d := x3F[k][j][i-1].D; d > 0 {
					de2L1 = x1F[k-1][j][i].Bz - cc[k-1][j][i-1]
				} else if d < 0 {
					de2L1 = x1F[k][j][i].Bz - cc[k][j][i-1]
				} else {
					de2L1 = 0.5 * (x1F[k-1][j][i].Bz - cc[k-1][j][i-1] +
						x1F[k][j][i].Bz - cc[k][j][i-1])
				}

				if d := x3F[k][j][i].D; d > 0 {
					de2R1 = x1F[k-1][j][i].Bz - cc[k-1][j][i]
				} else if d < 0 {
					de2R1 = x1F[k][j][i].Bz - cc[k][j][i]
				} else {
					de2R1 = 0.5 * (x1F[k-1][j][i].Bz - cc[k-1][j][i] +
						x1F[k][j][i].Bz - cc[k][j][i])
				}

				itg.emf2[k][j][i] = 0.25 * (x1F[k][j][i].Bz + x1F[k-1][j][i].Bz -
					x3F[k][j][i].By - x3F[k][j][i-1].By +
					de2L1 + de2R1 + de2L3 + de2R3)
			}
		}
	}
}
