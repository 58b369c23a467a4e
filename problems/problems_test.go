package problems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroflux/gomhd/config"
	"github.com/astroflux/gomhd/grid"
)

func TestRegistry(t *testing.T) {
	assert.NotNil(t, New("sod"))
	assert.NotNil(t, New("FieldLoop"))
	assert.Panics(t, func() { New("kelvinhelmholtz9") })
}

func TestSodExactStructure(t *testing.T) {
	X, Rho, P, U, _ := SodExact(0.25)
	require.Len(t, Rho, len(X))

	// Left state ahead of the rarefaction, right state beyond the
	// shock.
	assert.InDelta(t, 1.0, Rho[0], 1e-12)
	assert.InDelta(t, 1.0, P[0], 1e-12)
	assert.InDelta(t, 0.125, Rho[len(Rho)-1], 1e-12)
	assert.InDelta(t, 0.1, P[len(P)-1], 1e-12)

	// The post-shock pressure solves the shock-tube closure.
	pPost := fzero(sodFunc, math.Pi)
	assert.Less(t, math.Abs(sodFunc(pPost)), 1e-6)
	assert.Greater(t, pPost, 0.1)
	assert.Less(t, pPost, 1.0)

	// Velocity is zero in both far states and positive between.
	assert.Zero(t, U[0])
	assert.Zero(t, U[len(U)-1])
	assert.Greater(t, U[len(U)/2], 0.0)

	// Shock position moves right of the contact.
	assert.Greater(t, SodShockPosition(0.25), 0.5)
	assert.Less(t, SodShockPosition(0.25), 1.0)
}

func TestFieldLoopSolenoidal(t *testing.T) {
	ip := &config.InputParameters{
		Gamma: 5.0 / 3.0, MHD: true,
		X1Min: -1, X1Max: 1, X2Min: -0.5, X2Max: 0.5,
	}
	g := grid.New(64, 32, 1, true)
	g.Dx1 = (ip.X1Max - ip.X1Min) / 64
	g.Dx2 = (ip.X2Max - ip.X2Min) / 32
	g.X1Min, g.X2Min = ip.X1Min, ip.X2Min
	FieldLoop(g, ip)

	require.Less(t, g.DivB(), 1e-12*g.MaxB())
	assert.Greater(t, LoopMagneticEnergy(g), 0.0)

	// Cell-centered fields start as face averages.
	for j := g.Js; j <= g.Je; j++ {
		for i := g.Is; i <= g.Ie; i++ {
			q := g.U[0][j][i]
			require.Equal(t, 0.5*(g.B1i[0][j][i]+g.B1i[0][j][i+1]), q.B1c)
		}
	}
}

func TestBrioWuStates(t *testing.T) {
	ip := &config.InputParameters{
		Gamma: 2.0, MHD: true,
		X1Min: 0, X1Max: 1, X2Min: 0, X2Max: 1,
	}
	g := grid.New(32, 4, 1, true)
	g.Dx1, g.Dx2 = 1.0/32, 1.0/4
	BrioWu(g, ip)

	left := g.U[0][g.Js][g.Is]
	right := g.U[0][g.Js][g.Ie]
	assert.InDelta(t, 1.0, left.D, 1e-12)
	assert.InDelta(t, 0.125, right.D, 1e-12)
	assert.InDelta(t, 1.0, left.B2c, 1e-12)
	assert.InDelta(t, -1.0, right.B2c, 1e-12)
	assert.InDelta(t, 0.75, left.B1c, 1e-12)
	assert.InDelta(t, 0.75, right.B1c, 1e-12)
}

func TestShockCloudSetup(t *testing.T) {
	ip := &config.InputParameters{
		Gamma: 5.0 / 3.0,
		X1Min: -3, X1Max: 7, X2Min: -2.5, X2Max: 2.5, X3Min: -2.5, X3Max: 2.5,
	}
	g := grid.New(40, 20, 20, false)
	g.Dx1, g.Dx2, g.Dx3 = 10.0/40, 5.0/20, 5.0/20
	g.X1Min, g.X2Min, g.X3Min = ip.X1Min, ip.X2Min, ip.X3Min
	ShockCloud(g, ip)

	// Post-shock density exceeds ambient; the cloud carries the
	// density ratio and the tracer scalar.
	foundCloud := false
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is; i <= g.Ie; i++ {
				q := g.U[k][j][i]
				require.Greater(t, q.D, 0.0)
				if q.S[0] > 0 {
					foundCloud = true
					assert.InDelta(t, 10.0, q.D, 1e-12)
				}
			}
		}
	}
	assert.True(t, foundCloud)
	assert.Greater(t, CloudMass(g, 1.0), 0.0)

	// Mach 10 jumps for gamma = 5/3: density ratio just under 4.
	left := g.U[g.Ks+10][g.Js+10][g.Is]
	assert.InDelta(t, 3.88, left.D, 0.05)
	assert.Greater(t, left.M1, 0.0)
}
