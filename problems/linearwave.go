package problems

import (
	"math"

	"github.com/astroflux/gomhd/config"
	"github.com/astroflux/gomhd/grid"
)

// LinearWave initializes a small-amplitude sound wave propagating in
// +x1 across a periodic domain: after one crossing time the solution
// returns to the initial state, which makes the L1 error against the
// initial data a direct convergence measure.
//
// Params: amp (1e-4), d0 (1.0).
func LinearWave(g *grid.Grid, ip *config.InputParameters) {
	amp := ip.Param("amp", 1.0e-4)
	d0 := ip.Param("d0", 1.0)
	cs := ip.IsoCsound
	if !ip.Isothermal {
		cs = math.Sqrt(ip.Gamma * ip.Param("p0", 1.0/ip.Gamma) / d0)
	}
	lx := ip.X1Max - ip.X1Min

	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is; i <= g.Ie; i++ {
				x1, _, _ := g.Pos(i, j, k)
				db := amp * math.Sin(2.0*math.Pi*(x1-ip.X1Min)/lx)
				q := &g.U[k][j][i]
				q.D = d0 * (1.0 + db)
				q.M1 = d0 * cs * db
				q.M2 = 0
				q.M3 = 0
				if !ip.Isothermal {
					p := ip.Param("p0", 1.0/ip.Gamma) * (1.0 + ip.Gamma*db)
					q.E = p/(ip.Gamma-1.0) + 0.5*q.M1*q.M1/q.D
				}
			}
		}
	}
}
