package bvals_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/astroflux/gomhd/bvals"
	"github.com/astroflux/gomhd/config"
	"github.com/astroflux/gomhd/domain"
	"github.com/astroflux/gomhd/fluid"
	"github.com/astroflux/gomhd/grid"
)

// TestExchangeRoundTrip decomposes a doubly periodic 64x64 grid over
// 2x2 ranks, fills every rank from a global index function, exchanges
// once, and requires every ghost cell (corners included) to match the
// wrapped global value bit-exactly.
func TestExchangeRoundTrip(t *testing.T) {
	defer goleak.VerifyNone(t)

	const n = 64
	ip := &config.InputParameters{
		Nx1: n, Nx2: n, Nx3: 1,
		X1Min: 0, X1Max: 1, X2Min: 0, X2Max: 1,
		Gamma: 1.4, MHD: true,
		NGridX1: 2, NGridX2: 2,
		BCix1: bvals.Periodic, BCox1: bvals.Periodic,
		BCix2: bvals.Periodic, BCox2: bvals.Periodic,
	}
	require.NoError(t, ip.Validate())
	dom, err := domain.New(ip)
	require.NoError(t, err)
	require.Equal(t, 4, dom.NP())

	cell := func(gi, gj int) fluid.Gas {
		v := float64(gj*n + gi)
		return fluid.Gas{D: 1 + v, M1: 2 * v, M2: -v, M3: 0.5 * v, E: 10 + v,
			B1c: 0.1 * v, B2c: 0.2 * v, B3c: 0.3 * v}
	}
	faceVal := func(gi, gj int, which int) float64 {
		return float64(which*1000000 + gj*n + gi)
	}
	wrap := func(a int) int { return ((a % n) + n) % n }

	offsets := make([][2]int, dom.NP())
	for rank, g := range dom.Grids {
		offsets[rank] = [2]int{g.IProc * g.Nx1, g.JProc * g.Nx2}
		oi, oj := offsets[rank][0], offsets[rank][1]
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is; i <= g.Ie; i++ {
				gi, gj := oi+i-g.Is, oj+j-g.Js
				g.U[0][j][i] = cell(gi, gj)
				g.B1i[0][j][i] = faceVal(gi, gj, 1)
				g.B2i[0][j][i] = faceVal(gi, gj, 2)
				g.B3i[0][j][i] = faceVal(gi, gj, 3)
			}
			// The extra face at ie+1 belongs to the same tile.
			g.B1i[0][j][g.Ie+1] = faceVal(wrap(oi+g.Nx1), oj+j-g.Js, 1)
		}
		for i := g.Is; i <= g.Ie; i++ {
			g.B2i[0][g.Je+1][i] = faceVal(oi+i-g.Is, wrap(oj+g.Nx2), 2)
		}
	}

	eos := fluid.EOS{Gamma: 1.4, MHD: true}
	var eg errgroup.Group
	for rank, g := range dom.Grids {
		rank, g := rank, g
		eg.Go(func() error {
			bv, err := bvals.New(g, eos, bvals.Flags{
				Ix1: bvals.Periodic, Ox1: bvals.Periodic,
				Ix2: bvals.Periodic, Ox2: bvals.Periodic,
			}, bvals.WithComm(dom.Cluster.NewComm(rank)))
			if err != nil {
				return err
			}
			return bv.Set(g)
		})
	}
	require.NoError(t, eg.Wait())

	for rank, g := range dom.Grids {
		oi, oj := offsets[rank][0], offsets[rank][1]
		for j := g.Js - grid.Nghost; j <= g.Je+grid.Nghost; j++ {
			for i := g.Is - grid.Nghost; i <= g.Ie+grid.Nghost; i++ {
				gi, gj := wrap(oi+i-g.Is), wrap(oj+j-g.Js)
				want := cell(gi, gj)
				require.Equal(t, want, g.U[0][j][i],
					"rank %d cell (%d,%d)", rank, j, i)
			}
		}
		// Face fields in the x1 ghost columns within the exchanged rows.
		for j := g.Js; j <= g.Je; j++ {
			for i := g.Is - grid.Nghost; i < g.Is; i++ {
				gi, gj := wrap(oi+i-g.Is), wrap(oj+j-g.Js)
				require.Equal(t, faceVal(gi, gj, 1), g.B1i[0][j][i],
					"rank %d B1i (%d,%d)", rank, j, i)
			}
			for i := g.Ie + 1; i <= g.Ie+grid.Nghost; i++ {
				gi, gj := wrap(oi+i-g.Is), wrap(oj+j-g.Js)
				require.Equal(t, faceVal(gi, gj, 1), g.B1i[0][j][i],
					"rank %d B1i (%d,%d)", rank, j, i)
			}
		}
	}
}

func TestAllreduceMin(t *testing.T) {
	defer goleak.VerifyNone(t)

	cluster := bvals.NewCluster(4)
	vals := []float64{3.5, 0.25, 7.0, 1.5}
	results := make([]float64, 4)
	var eg errgroup.Group
	for rank := 0; rank < 4; rank++ {
		rank := rank
		eg.Go(func() error {
			c := cluster.NewComm(rank)
			results[rank] = c.AllreduceMin(vals[rank])
			return nil
		})
	}
	require.NoError(t, eg.Wait())
	for _, r := range results {
		assert.Equal(t, 0.25, r)
	}
}

func TestCommTagMismatch(t *testing.T) {
	cluster := bvals.NewCluster(2)
	c0 := cluster.NewComm(0)
	c1 := cluster.NewComm(1)

	rq := c1.Irecv(0, bvals.BoundaryCellsTag)
	c0.Send(1, 42, []float64{1, 2, 3}, 3)
	_, err := c1.Wait(rq)
	assert.Error(t, err)
}
