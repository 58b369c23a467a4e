package grid

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DivB returns the maximum absolute divergence of the face-centered
// magnetic field over all active cells. Constrained transport keeps
// this at round-off; anything larger indicates a broken update or a
// non-solenoidal initial condition.
func (g *Grid) DivB() float64 {
	if !g.MHD() {
		return 0
	}
	row := make([]float64, g.Ie-g.Is+1)
	divb := 0.0
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is; i <= g.Ie; i++ {
				db := (g.B1i[k][j][i+1] - g.B1i[k][j][i]) / g.Dx1
				db += (g.B2i[k][j+1][i] - g.B2i[k][j][i]) / g.Dx2
				if g.ThreeD() {
					db += (g.B3i[k+1][j][i] - g.B3i[k][j][i]) / g.Dx3
				}
				row[i-g.Is] = math.Abs(db)
			}
			if m := floats.Max(row); m > divb {
				divb = m
			}
		}
	}
	return divb
}

// MaxB returns the largest face-field magnitude over active cells,
// the natural scale for judging DivB.
func (g *Grid) MaxB() float64 {
	if !g.MHD() {
		return 0
	}
	m := 0.0
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is; i <= g.Ie; i++ {
				for _, b := range [3]float64{g.B1i[k][j][i], g.B2i[k][j][i], g.B3i[k][j][i]} {
					if a := math.Abs(b); a > m {
						m = a
					}
				}
			}
		}
	}
	return m
}

// TotalMass sums density over active cells.
func (g *Grid) TotalMass() float64 {
	row := make([]float64, g.Ie-g.Is+1)
	sum := 0.0
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is; i <= g.Ie; i++ {
				row[i-g.Is] = g.U[k][j][i].D
			}
			sum += floats.Sum(row)
		}
	}
	return sum
}

// TotalEnergy sums total energy over active cells. Meaningless for an
// isothermal run, where E is never updated.
func (g *Grid) TotalEnergy() float64 {
	row := make([]float64, g.Ie-g.Is+1)
	sum := 0.0
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is; i <= g.Ie; i++ {
				row[i-g.Is] = g.U[k][j][i].E
			}
			sum += floats.Sum(row)
		}
	}
	return sum
}
