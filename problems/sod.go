package problems

import (
	"math"

	"github.com/astroflux/gomhd/config"
	"github.com/astroflux/gomhd/fluid"
	"github.com/astroflux/gomhd/grid"
)

// Sod initializes the classic shock tube along x1:
// (rho, v, p) = (1, 0, 1) on the left of x0 and (0.125, 0, 0.1) on the
// right. gamma comes from the input file (1.4 for the standard case).
func Sod(g *grid.Grid, ip *config.InputParameters) {
	x0 := ip.Param("x0", 0.5*(ip.X1Min+ip.X1Max))
	gm1 := ip.Gamma - 1.0

	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is; i <= g.Ie; i++ {
				x1, _, _ := g.Pos(i, j, k)
				q := &g.U[k][j][i]
				*q = fluid.Gas{}
				if x1 < x0 {
					q.D = 1.0
					q.E = 1.0 / gm1
				} else {
					q.D = 0.125
					q.E = 0.1 / gm1
				}
			}
		}
	}
}

// SodExact evaluates the analytic Sod solution at time t: the sampled
// positions bracket the rarefaction head and tail, the contact, and
// the shock, with the states between them. Useful for checking the
// computed shock position.
func SodExact(t float64) (X, Rho, P, U, E []float64) {
	var (
		x1Min, x1Max    = 0.0, 1.0
		x0, rhoL, pL, _ = 0.5 * (x1Max + x1Min), 1.0, 1.0, 0.0
		rhoR, pR, uR    = 0.125, 0.1, 0.0
		gamma           = 1.4
		mu              = math.Sqrt((gamma - 1) / (gamma + 1))
		cL              = math.Sqrt(gamma * pL / rhoL)
		pPost           = fzero(sodFunc, math.Pi)
		vPost           = 2 * (math.Sqrt(gamma) / (gamma - 1)) * (1 - math.Pow(pPost, (gamma-1)/(2*gamma)))
		rhoPost         = rhoR * ((pPost/pR + mu*mu) / (1 + mu*mu*(pPost/pR)))
		vShock          = vPost * (rhoPost / rhoR) / (rhoPost/rhoR - 1)
		rhoMiddle       = rhoL * math.Pow(pPost/pL, 1/gamma)

		x1 = x0 - cL*t
		x3 = x0 + vPost*t
		x4 = x0 + vShock*t
		c2 = cL - 0.5*(gamma-1)*vPost
		x2 = x0 + t*(vPost-c2)
	)
	tol := 1.0e-8
	X = []float64{
		x1Min,
		x1 - tol, x1 + tol,
		x2 - tol, x2 + tol,
		x3 - tol, x3 + tol,
		x4 - tol, x4 + tol,
		x1Max,
	}
	Rho = make([]float64, len(X))
	P = make([]float64, len(X))
	U = make([]float64, len(X))
	E = make([]float64, len(X))
	for i, x := range X {
		switch {
		case x < x1:
			Rho[i] = rhoL
			P[i] = pL
			U[i] = 0
		case x1 <= x && x <= x2:
			c := mu*mu*((x0-x)/t) + (1-mu*mu)*cL
			Rho[i] = rhoL * math.Pow(c/cL, 2/(gamma-1))
			P[i] = pL * math.Pow(Rho[i]/rhoL, gamma)
			U[i] = (1 - mu*mu) * ((-(x0 - x) / t) + cL)
		case x2 <= x && x <= x3:
			Rho[i] = rhoMiddle
			P[i] = pPost
			U[i] = vPost
		case x3 <= x && x <= x4:
			Rho[i] = rhoPost
			P[i] = pPost
			U[i] = vPost
		case x4 < x:
			Rho[i] = rhoR
			P[i] = pR
			U[i] = uR
		}
		E[i] = P[i] / ((gamma - 1) * Rho[i])
	}
	return
}

// SodShockPosition returns the analytic shock location at time t.
func SodShockPosition(t float64) float64 {
	var (
		gamma   = 1.4
		mu      = math.Sqrt((gamma - 1) / (gamma + 1))
		rhoR    = 0.125
		pR      = 0.1
		pPost   = fzero(sodFunc, math.Pi)
		vPost   = 2 * (math.Sqrt(gamma) / (gamma - 1)) * (1 - math.Pow(pPost, (gamma-1)/(2*gamma)))
		rhoPost = rhoR * ((pPost/pR + mu*mu) / (1 + mu*mu*(pPost/pR)))
		vShock  = vPost * (rhoPost / rhoR) / (rhoPost/rhoR - 1)
	)
	return 0.5 + vShock*t
}

// fzero is a secant iteration on f starting from the given guess.
func fzero(f func(p float64) float64, start float64) float64 {
	var (
		tol = 1.0e-7
		res float64
	)
	startOld := start / 2
	res = f(startOld)
	for math.Abs(res) > tol {
		resNew := f(start)
		deriv := (start - startOld) / (resNew - res)
		startNew := math.Abs(start - 0.01*f(start)/deriv)
		startOld = start
		start = startNew
		res = resNew
	}
	return start
}

func sodFunc(p float64) float64 {
	var (
		rhoR, pR = 0.125, 0.1
		gamma    = 1.4
		mu2      = (gamma - 1) / (gamma + 1)
	)
	return (p-pR)*math.Sqrt((1-mu2)/(rhoR*(p+mu2*pR))) -
		2*(math.Sqrt(gamma)/(gamma-1))*(1-math.Pow(p, (gamma-1)/(2*gamma)))
}
