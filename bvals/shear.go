package bvals

import (
	"math"

	"github.com/astroflux/gomhd/fluid"
	"github.com/astroflux/gomhd/grid"
)

// Shearing-sheet remap. With shearing-box boundaries the x1 ghost
// zones arrive via the periodic exchange and must then be shifted in
// x2 by the time-dependent offset 1.5*Omega*Lx*t, the Galilean
// transformation between the two radial edges of the sheet. The hooks
// built here implement that shift with an integer-cell displacement
// plus linear interpolation, periodic over the tile's x2 extent, so
// they require the sheet to be undecomposed in x2.
//
// The interface field B1i at ie+1 is never touched by the outer hook:
// that face was advanced by the local CT update, the local tile is its
// owner, and recvOx1 deliberately skipped overwriting it.

// NewShearingSheet returns the (ix1, ox1) hooks for a sheet of radial
// extent lx and azimuthal extent ly rotating at omega.
func NewShearingSheet(omega, lx, ly float64) (ix1, ox1 ShearFun) {
	ix1 = func(g *grid.Grid) { remapX1Ghosts(g, omega, lx, ly, +1) }
	ox1 = func(g *grid.Grid) { remapX1Ghosts(g, omega, lx, ly, -1) }
	return
}

// remapX1Ghosts shifts the x1 ghost columns of one side by
// sign*1.5*Omega*Lx*t in x2.
func remapX1Ghosts(g *grid.Grid, omega, lx, ly float64, sign int) {
	deltay := math.Mod(1.5*omega*lx*g.Time, ly)
	if sign < 0 {
		deltay = ly - deltay
	}
	joff := int(deltay / g.Dx2)
	eps := deltay/g.Dx2 - float64(joff)

	var ilo, ihi int
	if sign > 0 {
		ilo, ihi = g.Is-grid.Nghost, g.Is-1
	} else {
		ilo, ihi = g.Ie+1, g.Ie+grid.Nghost
	}

	ny := g.Je - g.Js + 1
	colU := make([]fluid.Gas, ny)
	colB1 := make([]float64, ny)
	colB2 := make([]float64, ny)
	colB3 := make([]float64, ny)

	wrap := func(j int) int { return g.Js + ((j-g.Js)%ny+ny)%ny }

	for k := g.Ks; k <= g.Ke; k++ {
		for i := ilo; i <= ihi; i++ {
			for j := g.Js; j <= g.Je; j++ {
				jm := wrap(j + joff)
				jp := wrap(j + joff + 1)
				qm, qp := g.U[k][jm][i], g.U[k][jp][i]
				colU[j-g.Js] = lerpGas(qm, qp, eps)
				if g.MHD() {
					skipFace := sign < 0 && i == g.Ie+1
					if !skipFace {
						colB1[j-g.Js] = (1-eps)*g.B1i[k][jm][i] + eps*g.B1i[k][jp][i]
					} else {
						colB1[j-g.Js] = g.B1i[k][j][i]
					}
					colB2[j-g.Js] = (1-eps)*g.B2i[k][jm][i] + eps*g.B2i[k][jp][i]
					colB3[j-g.Js] = (1-eps)*g.B3i[k][jm][i] + eps*g.B3i[k][jp][i]
				}
			}
			for j := g.Js; j <= g.Je; j++ {
				g.U[k][j][i] = colU[j-g.Js]
				if g.MHD() {
					g.B1i[k][j][i] = colB1[j-g.Js]
					g.B2i[k][j][i] = colB2[j-g.Js]
					g.B3i[k][j][i] = colB3[j-g.Js]
				}
			}
		}
	}
}

func lerpGas(a, b fluid.Gas, eps float64) (c fluid.Gas) {
	w0 := 1 - eps
	c.D = w0*a.D + eps*b.D
	c.M1 = w0*a.M1 + eps*b.M1
	c.M2 = w0*a.M2 + eps*b.M2
	c.M3 = w0*a.M3 + eps*b.M3
	c.E = w0*a.E + eps*b.E
	c.B1c = w0*a.B1c + eps*b.B1c
	c.B2c = w0*a.B2c + eps*b.B2c
	c.B3c = w0*a.B3c + eps*b.B3c
	for n := 0; n < fluid.NScalars; n++ {
		c.S[n] = w0*a.S[n] + eps*b.S[n]
	}
	return
}
