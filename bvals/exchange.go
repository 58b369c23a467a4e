package bvals

import (
	"fmt"

	"github.com/astroflux/gomhd/fluid"
	"github.com/astroflux/gomhd/grid"
)

// Neighbor exchange. Each face sends nghost layers of active cells and
// receives nghost layers of ghost cells, one cell at a time, components
// in the fixed order: d, M1, M2, M3; for MHD B1c, B2c, B3c, B1i, B2i,
// B3i; for a non-isothermal EOS E; then the passive scalars. The
// perpendicular ranges include the single extra face (+1) in the
// direction normal to shared faces and, for later directions, the full
// extended (+2*nghost) range already filled in earlier directions.

// pack serializes the cells in the given index box into sendBuf and
// returns the value count.
func (bv *Bvals) pack(g *grid.Grid, il, iu, jl, ju, kl, ku int) int {
	mhd := bv.eos.MHD
	iso := bv.eos.Isothermal
	pd := 0
	buf := bv.sendBuf
	for k := kl; k <= ku; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				q := &g.U[k][j][i]
				buf[pd] = q.D
				buf[pd+1] = q.M1
				buf[pd+2] = q.M2
				buf[pd+3] = q.M3
				pd += 4
				if mhd {
					buf[pd] = q.B1c
					buf[pd+1] = q.B2c
					buf[pd+2] = q.B3c
					buf[pd+3] = g.B1i[k][j][i]
					buf[pd+4] = g.B2i[k][j][i]
					buf[pd+5] = g.B3i[k][j][i]
					pd += 6
				}
				if !iso {
					buf[pd] = q.E
					pd++
				}
				for n := 0; n < fluid.NScalars; n++ {
					buf[pd] = q.S[n]
					pd++
				}
			}
		}
	}
	return pd
}

// unpack fills the cells in the given index box from data. With
// skipFirstB1i set, the interface field B1i on the first received
// column (i == il) is left untouched; under shearing-box boundaries
// that face belongs to the shearing remap.
func (bv *Bvals) unpack(g *grid.Grid, data []float64, il, iu, jl, ju, kl, ku int, skipFirstB1i bool) error {
	want := (iu - il + 1) * (ju - jl + 1) * (ku - kl + 1) * bv.nvarShare
	if len(data) != want {
		return fmt.Errorf("rank %d: exchange message has %d values, want %d",
			bv.comm.Rank(), len(data), want)
	}
	mhd := bv.eos.MHD
	iso := bv.eos.Isothermal
	pd := 0
	for k := kl; k <= ku; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				q := &g.U[k][j][i]
				q.D = data[pd]
				q.M1 = data[pd+1]
				q.M2 = data[pd+2]
				q.M3 = data[pd+3]
				pd += 4
				if mhd {
					q.B1c = data[pd]
					q.B2c = data[pd+1]
					q.B3c = data[pd+2]
					if !(skipFirstB1i && i == il) {
						g.B1i[k][j][i] = data[pd+3]
					}
					g.B2i[k][j][i] = data[pd+4]
					g.B3i[k][j][i] = data[pd+5]
					pd += 6
				}
				if !iso {
					q.E = data[pd]
					pd++
				}
				for n := 0; n < fluid.NScalars; n++ {
					q.S[n] = data[pd]
					pd++
				}
			}
		}
	}
	return nil
}

// Perpendicular ranges for x1-direction exchanges: active rows plus
// the shared face in each later direction.
func x1Ranges(g *grid.Grid) (jl, ju, kl, ku int) {
	jl, ju = g.Js, g.Je+1
	kl, ku = g.Ks, g.Ks
	if g.ThreeD() {
		ku = g.Ke + 1
	}
	return
}

func x2Ranges(g *grid.Grid) (il, iu, kl, ku int) {
	il, iu = g.Is-grid.Nghost, g.Ie+grid.Nghost
	kl, ku = g.Ks, g.Ks
	if g.ThreeD() {
		ku = g.Ke + 1
	}
	return
}

func x3Ranges(g *grid.Grid) (il, iu, jl, ju int) {
	il, iu = g.Is-grid.Nghost, g.Ie+grid.Nghost
	jl, ju = g.Js-grid.Nghost, g.Je+grid.Nghost
	return
}

func (bv *Bvals) sendIx1(g *grid.Grid) {
	jl, ju, kl, ku := x1Ranges(g)
	cnt := bv.pack(g, g.Is, g.Is+grid.Nghost-1, jl, ju, kl, ku)
	bv.comm.Send(g.Lx1ID, BoundaryCellsTag, bv.sendBuf, cnt)
}

func (bv *Bvals) sendOx1(g *grid.Grid) {
	jl, ju, kl, ku := x1Ranges(g)
	cnt := bv.pack(g, g.Ie-grid.Nghost+1, g.Ie, jl, ju, kl, ku)
	bv.comm.Send(g.Rx1ID, BoundaryCellsTag, bv.sendBuf, cnt)
}

func (bv *Bvals) recvIx1(g *grid.Grid, rq *Request) error {
	data, err := bv.comm.Wait(rq)
	if err != nil {
		return err
	}
	jl, ju, kl, ku := x1Ranges(g)
	return bv.unpack(g, data, g.Is-grid.Nghost, g.Is-1, jl, ju, kl, ku, false)
}

func (bv *Bvals) recvOx1(g *grid.Grid, rq *Request) error {
	data, err := bv.comm.Wait(rq)
	if err != nil {
		return err
	}
	jl, ju, kl, ku := x1Ranges(g)
	skip := bv.shearingBox && bv.eos.MHD
	return bv.unpack(g, data, g.Ie+1, g.Ie+grid.Nghost, jl, ju, kl, ku, skip)
}

func (bv *Bvals) sendIx2(g *grid.Grid) {
	il, iu, kl, ku := x2Ranges(g)
	cnt := bv.pack(g, il, iu, g.Js, g.Js+grid.Nghost-1, kl, ku)
	bv.comm.Send(g.Lx2ID, BoundaryCellsTag, bv.sendBuf, cnt)
}

func (bv *Bvals) sendOx2(g *grid.Grid) {
	il, iu, kl, ku := x2Ranges(g)
	cnt := bv.pack(g, il, iu, g.Je-grid.Nghost+1, g.Je, kl, ku)
	bv.comm.Send(g.Rx2ID, BoundaryCellsTag, bv.sendBuf, cnt)
}

func (bv *Bvals) recvIx2(g *grid.Grid, rq *Request) error {
	data, err := bv.comm.Wait(rq)
	if err != nil {
		return err
	}
	il, iu, kl, ku := x2Ranges(g)
	return bv.unpack(g, data, il, iu, g.Js-grid.Nghost, g.Js-1, kl, ku, false)
}

func (bv *Bvals) recvOx2(g *grid.Grid, rq *Request) error {
	data, err := bv.comm.Wait(rq)
	if err != nil {
		return err
	}
	il, iu, kl, ku := x2Ranges(g)
	return bv.unpack(g, data, il, iu, g.Je+1, g.Je+grid.Nghost, kl, ku, false)
}

func (bv *Bvals) sendIx3(g *grid.Grid) {
	il, iu, jl, ju := x3Ranges(g)
	cnt := bv.pack(g, il, iu, jl, ju, g.Ks, g.Ks+grid.Nghost-1)
	bv.comm.Send(g.Lx3ID, BoundaryCellsTag, bv.sendBuf, cnt)
}

func (bv *Bvals) sendOx3(g *grid.Grid) {
	il, iu, jl, ju := x3Ranges(g)
	cnt := bv.pack(g, il, iu, jl, ju, g.Ke-grid.Nghost+1, g.Ke)
	bv.comm.Send(g.Rx3ID, BoundaryCellsTag, bv.sendBuf, cnt)
}

func (bv *Bvals) recvIx3(g *grid.Grid, rq *Request) error {
	data, err := bv.comm.Wait(rq)
	if err != nil {
		return err
	}
	il, iu, jl, ju := x3Ranges(g)
	return bv.unpack(g, data, il, iu, jl, ju, g.Ks-grid.Nghost, g.Ks-1, false)
}

func (bv *Bvals) recvOx3(g *grid.Grid, rq *Request) error {
	data, err := bv.comm.Wait(rq)
	if err != nil {
		return err
	}
	il, iu, jl, ju := x3Ranges(g)
	return bv.unpack(g, data, il, iu, jl, ju, g.Ke+1, g.Ke+grid.Nghost, false)
}
