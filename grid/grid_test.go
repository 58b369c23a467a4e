package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExtents(t *testing.T) {
	g := New(8, 6, 1, true)
	assert.Equal(t, Nghost, g.Is)
	assert.Equal(t, Nghost+7, g.Ie)
	assert.Equal(t, Nghost, g.Js)
	assert.Equal(t, Nghost+5, g.Je)
	assert.Equal(t, 0, g.Ks)
	assert.Equal(t, 0, g.Ke)
	assert.False(t, g.ThreeD())
	assert.True(t, g.MHD())
	assert.Len(t, g.U, 1)
	assert.Len(t, g.U[0], 6+2*Nghost)
	assert.Len(t, g.U[0][0], 8+2*Nghost)

	g3 := New(4, 4, 4, false)
	assert.True(t, g3.ThreeD())
	assert.False(t, g3.MHD())
	assert.Nil(t, g3.B1i)
	assert.Equal(t, Nghost+3, g3.Ke)
}

func TestPos(t *testing.T) {
	g := New(4, 4, 1, false)
	g.Dx1, g.Dx2 = 0.25, 0.5
	g.X1Min, g.X2Min = 0.0, -1.0
	x1, x2, _ := g.Pos(g.Is, g.Js, g.Ks)
	assert.InDelta(t, 0.125, x1, 1e-14)
	assert.InDelta(t, -0.75, x2, 1e-14)
	x1, _, _ = g.Pos(g.Ie, g.Js, g.Ks)
	assert.InDelta(t, 1.0-0.125, x1, 1e-14)
}

func TestDivBZeroForSolenoidalField(t *testing.T) {
	// B = curl(Az zhat) on faces is divergence free by construction.
	g := New(8, 8, 1, true)
	g.Dx1, g.Dx2 = 1.0/8, 1.0/8
	az := func(i, j int) float64 {
		x := float64(i) * g.Dx1
		y := float64(j) * g.Dx2
		return x*x*y - y*x + 0.3*y*y
	}
	for j := 0; j < len(g.U[0]); j++ {
		for i := 0; i < len(g.U[0][j]); i++ {
			if j+1 < len(g.U[0]) {
				g.B1i[0][j][i] = (az(i, j+1) - az(i, j)) / g.Dx2
				g.B2i[0][j][i] = -(az(i+1, j) - az(i, j)) / g.Dx1
			}
		}
	}
	require.Less(t, g.DivB(), 1e-12*max(1.0, g.MaxB()))
}

func TestTotals(t *testing.T) {
	g := New(4, 4, 1, false)
	for j := g.Js; j <= g.Je; j++ {
		for i := g.Is; i <= g.Ie; i++ {
			g.U[0][j][i].D = 2.0
			g.U[0][j][i].E = 3.0
		}
	}
	// Ghost cells must not contribute.
	g.U[0][0][0].D = 100.0
	assert.InDelta(t, 32.0, g.TotalMass(), 1e-12)
	assert.InDelta(t, 48.0, g.TotalEnergy(), 1e-12)
}

func TestContiguousBacking(t *testing.T) {
	a := NewArray3(2, 3, 4)
	a[0][0][0] = 1
	a[1][2][3] = 2
	assert.Len(t, a, 2)
	assert.Len(t, a[1], 3)
	assert.Len(t, a[1][2], 4)
}
