package problems

import (
	"math"

	"github.com/astroflux/gomhd/config"
	"github.com/astroflux/gomhd/fluid"
	"github.com/astroflux/gomhd/grid"
)

// ShockCloud initializes the 3D shock-cloud interaction: a planar
// shock of Mach number M at x1 = x0 advancing into an ambient medium
// that carries a spherical cloud of density ratio drat and radius rad
// centered at the origin. Post-shock conditions follow the
// Rankine-Hugoniot jumps.
//
// Params: M (10), drat (10), rad (1.0), x0 (-2.0).
func ShockCloud(g *grid.Grid, ip *config.InputParameters) {
	var (
		mach = ip.Param("M", 10.0)
		drat = ip.Param("drat", 10.0)
		rad  = ip.Param("rad", 1.0)
		x0   = ip.Param("x0", -2.0)
		gm   = ip.Gamma
		gm1  = gm - 1.0

		// Ambient state with unit sound speed.
		d0 = 1.0
		p0 = 1.0 / gm
	)

	// Post-shock state from the jump conditions.
	jump1 := (gm + 1.0) / (gm1 + 2.0/(mach*mach))
	jump2 := (2.0*gm*mach*mach - gm1) / (gm + 1.0)
	dl := d0 * jump1
	pl := p0 * jump2
	vl := mach * (1.0 - 1.0/jump1) // ambient rest frame: cs0 = 1

	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is; i <= g.Ie; i++ {
				x1, x2, x3 := g.Pos(i, j, k)
				q := &g.U[k][j][i]
				*q = fluid.Gas{}
				if x1 < x0 {
					q.D = dl
					q.M1 = dl * vl
					q.E = pl/gm1 + 0.5*dl*vl*vl
					q.S[0] = 0
				} else {
					q.D = d0
					q.E = p0 / gm1
					r := math.Sqrt(x1*x1 + x2*x2 + x3*x3)
					if r < rad {
						q.D = d0 * drat
						// Tag cloud material with the first scalar.
						q.S[0] = q.D
					}
				}
			}
		}
	}
}

// CloudMass sums the cloud-tagged scalar inside the initial cloud
// radius; it should decrease monotonically as the shock strips the
// cloud.
func CloudMass(g *grid.Grid, rad float64) float64 {
	sum := 0.0
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is; i <= g.Ie; i++ {
				x1, x2, x3 := g.Pos(i, j, k)
				if x1*x1+x2*x2+x3*x3 < rad*rad {
					sum += g.U[k][j][i].S[0]
				}
			}
		}
	}
	return sum * g.Dx1 * g.Dx2 * g.Dx3
}
