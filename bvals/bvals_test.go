package bvals_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroflux/gomhd/bvals"
	"github.com/astroflux/gomhd/fluid"
	"github.com/astroflux/gomhd/grid"
)

func adiabatic() fluid.EOS { return fluid.EOS{Gamma: 1.4} }

func mhdEOS() fluid.EOS { return fluid.EOS{Gamma: 1.4, MHD: true} }

// fill tags every active cell with a unique value.
func fill(g *grid.Grid) {
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is; i <= g.Ie; i++ {
				v := float64(k*10000 + j*100 + i)
				g.U[k][j][i] = fluid.Gas{D: 1 + v, M1: 2 * v, M2: 3 * v, M3: 4 * v, E: 5 + v}
			}
		}
	}
}

func flags(f int) bvals.Flags {
	return bvals.Flags{Ix1: f, Ox1: f, Ix2: f, Ox2: f, Ix3: f, Ox3: f}
}

func TestUnknownFlagFatal(t *testing.T) {
	g := grid.New(8, 8, 1, false)
	_, err := bvals.New(g, adiabatic(), bvals.Flags{Ix1: 3, Ox1: 2, Ix2: 2, Ox2: 2})
	require.Error(t, err)
}

func TestOutflowCopiesEdge(t *testing.T) {
	g := grid.New(8, 8, 1, false)
	fill(g)
	bv, err := bvals.New(g, adiabatic(), flags(bvals.Outflow))
	require.NoError(t, err)
	require.NoError(t, bv.Set(g))

	for j := g.Js; j <= g.Je; j++ {
		for i := 1; i <= grid.Nghost; i++ {
			assert.Equal(t, g.U[0][j][g.Is].D, g.U[0][j][g.Is-i].D)
			assert.Equal(t, g.U[0][j][g.Ie].D, g.U[0][j][g.Ie+i].D)
		}
	}
}

func TestReflectFlipsNormalMomentum(t *testing.T) {
	g := grid.New(8, 8, 1, false)
	fill(g)
	bv, err := bvals.New(g, adiabatic(), flags(bvals.ReflectZeroB))
	require.NoError(t, err)
	require.NoError(t, bv.Set(g))

	for j := g.Js; j <= g.Je; j++ {
		for i := 1; i <= grid.Nghost; i++ {
			in := g.U[0][j][g.Is+(i-1)]
			gh := g.U[0][j][g.Is-i]
			assert.Equal(t, in.D, gh.D)
			assert.Equal(t, -in.M1, gh.M1)
			assert.Equal(t, in.M2, gh.M2)
		}
	}
}

func TestReflectZeroBBoundaryFace(t *testing.T) {
	g := grid.New(8, 8, 1, true)
	fill(g)
	for j := 0; j < len(g.B1i[0]); j++ {
		for i := 0; i < len(g.B1i[0][j]); i++ {
			g.B1i[0][j][i] = 0.7
			g.B2i[0][j][i] = -0.4
		}
	}
	bv, err := bvals.New(g, mhdEOS(), flags(bvals.ReflectZeroB))
	require.NoError(t, err)
	require.NoError(t, bv.Set(g))

	for j := g.Js; j <= g.Je; j++ {
		assert.Zero(t, g.B1i[0][j][g.Is])
		assert.Zero(t, g.B1i[0][j][g.Ie+1])
	}
}

func TestPeriodicWraps(t *testing.T) {
	g := grid.New(8, 8, 1, false)
	fill(g)
	bv, err := bvals.New(g, adiabatic(), flags(bvals.Periodic))
	require.NoError(t, err)
	require.NoError(t, bv.Set(g))

	for j := g.Js; j <= g.Je; j++ {
		for i := 1; i <= grid.Nghost; i++ {
			assert.Equal(t, g.U[0][j][g.Ie-(i-1)].D, g.U[0][j][g.Is-i].D)
			assert.Equal(t, g.U[0][j][g.Is+(i-1)].D, g.U[0][j][g.Ie+i].D)
		}
	}
	// Corners wrap in both directions after the x2 pass.
	assert.Equal(t, g.U[0][g.Je][g.Ie].D, g.U[0][g.Js-1][g.Is-1].D)
}

func TestSetIdempotent(t *testing.T) {
	g := grid.New(8, 8, 1, true)
	fill(g)
	for j := 0; j < len(g.B1i[0]); j++ {
		for i := 0; i < len(g.B1i[0][j]); i++ {
			g.B1i[0][j][i] = 0.1 * float64(j+i)
			g.B2i[0][j][i] = 0.2 * float64(j-i)
		}
	}
	bv, err := bvals.New(g, mhdEOS(), flags(bvals.Periodic))
	require.NoError(t, err)
	require.NoError(t, bv.Set(g))

	snapU := make([]fluid.Gas, 0)
	snapB := make([]float64, 0)
	for j := 0; j < len(g.U[0]); j++ {
		for i := 0; i < len(g.U[0][j]); i++ {
			snapU = append(snapU, g.U[0][j][i])
			snapB = append(snapB, g.B1i[0][j][i], g.B2i[0][j][i])
		}
	}

	require.NoError(t, bv.Set(g))
	n := 0
	for j := 0; j < len(g.U[0]); j++ {
		for i := 0; i < len(g.U[0][j]); i++ {
			require.Equal(t, snapU[n], g.U[0][j][i], "cell (%d,%d)", j, i)
			require.Equal(t, snapB[2*n], g.B1i[0][j][i])
			require.Equal(t, snapB[2*n+1], g.B2i[0][j][i])
			n++
		}
	}
}

func TestUserBCOverride(t *testing.T) {
	g := grid.New(8, 8, 1, false)
	fill(g)
	called := false
	bv, err := bvals.New(g, adiabatic(), flags(bvals.Periodic),
		bvals.WithUserBC("ix1", func(g *grid.Grid) { called = true }))
	require.NoError(t, err)
	require.NoError(t, bv.Set(g))
	assert.True(t, called)
}
