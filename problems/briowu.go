package problems

import (
	"github.com/astroflux/gomhd/config"
	"github.com/astroflux/gomhd/fluid"
	"github.com/astroflux/gomhd/grid"
)

// BrioWu initializes the MHD shock tube of Brio & Wu along x1:
// (rho, p, By) = (1, 1, 1) left of x0 and (0.125, 0.1, -1) to the
// right, with Bx = 0.75 throughout. Run with gamma = 2.
func BrioWu(g *grid.Grid, ip *config.InputParameters) {
	x0 := ip.Param("x0", 0.5*(ip.X1Min+ip.X1Max))
	bx := ip.Param("bx", 0.75)
	gm1 := ip.Gamma - 1.0

	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je+1; j++ {
			for i := g.Is; i <= g.Ie+1; i++ {
				x1, _, _ := g.Pos(i, j, k)
				xc := x1 // cell center of (i,j,k); faces share the region split

				d, p, by := 1.0, 1.0, 1.0
				if xc >= x0 {
					d, p, by = 0.125, 0.1, -1.0
				}

				if i <= g.Ie && j <= g.Je {
					q := &g.U[k][j][i]
					*q = fluid.Gas{}
					q.D = d
					q.B1c = bx
					q.B2c = by
					q.E = p/gm1 + 0.5*(bx*bx+by*by)
				}
				g.B1i[k][j][i] = bx
				g.B2i[k][j][i] = by
				g.B3i[k][j][i] = 0
			}
		}
	}
}
