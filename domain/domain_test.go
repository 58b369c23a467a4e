package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroflux/gomhd/bvals"
	"github.com/astroflux/gomhd/config"
)

func baseInput() *config.InputParameters {
	ip := &config.InputParameters{
		Nx1: 32, Nx2: 16, Nx3: 1,
		X1Min: 0, X1Max: 1, X2Min: 0, X2Max: 0.5,
		Gamma: 1.4,
		BCix1: bvals.Periodic, BCox1: bvals.Periodic,
		BCix2: bvals.Periodic, BCox2: bvals.Periodic,
	}
	if err := ip.Validate(); err != nil {
		panic(err)
	}
	return ip
}

func TestSplit1D(t *testing.T) {
	// 10 cells over 3 chunks: imbalance of at most one, full coverage.
	total := 0
	prevHi := 0
	for p := 0; p < 3; p++ {
		lo, hi := split1D(p, 3, 10)
		assert.Equal(t, prevHi, lo)
		assert.InDelta(t, 10.0/3.0, float64(hi-lo), 1.0)
		total += hi - lo
		prevHi = hi
	}
	assert.Equal(t, 10, total)
}

func TestDecompositionGeometry(t *testing.T) {
	ip := baseInput()
	ip.NGridX1, ip.NGridX2 = 2, 2
	dom, err := New(ip)
	require.NoError(t, err)
	require.Equal(t, 4, dom.NP())

	// Tile sizes tile the global volume.
	sum := 0
	for _, g := range dom.Grids {
		sum += g.Nx1 * g.Nx2
	}
	assert.Equal(t, 32*16, sum)

	// Tile (0,0): periodic wraparound neighbors on the low faces.
	g := dom.Grids[0]
	assert.Equal(t, 0, g.IProc)
	assert.Equal(t, 1, g.Rx1ID)
	assert.Equal(t, 1, g.Lx1ID) // wraps to the rightmost column
	assert.Equal(t, 2, g.Rx2ID)
	assert.Equal(t, 2, g.Lx2ID)

	// Spacings identical across tiles; origins offset.
	assert.Equal(t, dom.Grids[0].Dx1, dom.Grids[1].Dx1)
	assert.Greater(t, dom.Grids[1].X1Min, dom.Grids[0].X1Min)
}

func TestOutflowDecompositionHasPhysicalEdges(t *testing.T) {
	ip := baseInput()
	ip.BCix1, ip.BCox1 = bvals.Outflow, bvals.Outflow
	ip.NGridX1 = 2
	dom, err := New(ip)
	require.NoError(t, err)

	left, right := dom.Grids[0], dom.Grids[1]
	assert.Less(t, left.Lx1ID, 0)
	assert.Equal(t, 1, left.Rx1ID)
	assert.Equal(t, 0, right.Lx1ID)
	assert.Less(t, right.Rx1ID, 0)
}

func TestRejectsBadDecomposition(t *testing.T) {
	ip := baseInput()
	ip.NGridX3 = 2
	_, err := New(ip)
	assert.Error(t, err)

	ip = baseInput()
	ip.NGridX1 = 64
	_, err = New(ip)
	assert.Error(t, err)
}
