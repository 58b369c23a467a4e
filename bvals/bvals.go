// Package bvals fills the ghost-zone layers of a Grid tile before each
// integrator step. Each of the six faces carries either a physical
// boundary policy (reflecting with zero or nonzero normal field,
// outflow, periodic, or a user-enrolled function) or a neighbor
// exchange over the message fabric. Directions are always processed
// x1, then x2, then x3: a later direction's copy ranges include the
// ghost zones the earlier directions filled, which is what populates
// edge and corner cells correctly.
package bvals

import (
	"fmt"

	"github.com/astroflux/gomhd/fluid"
	"github.com/astroflux/gomhd/grid"
)

// Boundary condition flag values.
const (
	ReflectZeroB    = 1
	Outflow         = 2
	Periodic        = 4
	ReflectNonzeroB = 5
)

// Flags holds the six per-face boundary condition selections.
type Flags struct {
	Ix1, Ox1 int
	Ix2, Ox2 int
	Ix3, Ox3 int
}

// BCFun is a boundary condition applied to one face of a Grid.
type BCFun func(*grid.Grid)

// ShearFun is a shearing-sheet remap hook applied after the x2
// boundaries are in place.
type ShearFun func(*grid.Grid)

// Bvals is the per-tile boundary state: the resolved physical policies,
// the rank endpoint for neighbor exchange, and the staging buffers.
type Bvals struct {
	eos fluid.EOS

	applyIx1, applyOx1 BCFun
	applyIx2, applyOx2 BCFun
	applyIx3, applyOx3 BCFun

	comm *Comm

	shearingBox        bool
	ngridX1            int
	shearIx1, shearOx1 ShearFun

	sendBuf, recvBuf []float64
	nvarShare        int
}

// Option mutates a Bvals during New.
type Option func(*Bvals)

// WithComm attaches the rank endpoint used for neighbor exchange.
func WithComm(c *Comm) Option { return func(bv *Bvals) { bv.comm = c } }

// WithShearingBox enables the shearing-sheet hooks. ngridX1 is the
// number of tiles across x1; the hooks fire only on the two outermost
// tiles.
func WithShearingBox(ngridX1 int, ix1, ox1 ShearFun) Option {
	return func(bv *Bvals) {
		bv.shearingBox = true
		bv.ngridX1 = ngridX1
		bv.shearIx1 = ix1
		bv.shearOx1 = ox1
	}
}

// WithUserBC enrolls a problem-defined boundary function on one face.
// face is one of "ix1","ox1","ix2","ox2","ix3","ox3".
func WithUserBC(faceName string, fn BCFun) Option {
	return func(bv *Bvals) {
		switch faceName {
		case "ix1":
			bv.applyIx1 = fn
		case "ox1":
			bv.applyOx1 = fn
		case "ix2":
			bv.applyIx2 = fn
		case "ox2":
			bv.applyOx2 = fn
		case "ix3":
			bv.applyIx3 = fn
		case "ox3":
			bv.applyOx3 = fn
		default:
			panic(fmt.Errorf("bvals: unknown face %q", faceName))
		}
	}
}

// New resolves the flag set into boundary functions and sizes the
// exchange buffers. Unknown flags are fatal. User BCs enrolled through
// options override the flag for that face.
func New(g *grid.Grid, eos fluid.EOS, flags Flags, opts ...Option) (*Bvals, error) {
	bv := &Bvals{eos: eos}

	resolve := func(flag int, reflect0, outflow, periodic, reflect1 BCFun, name string) (BCFun, error) {
		switch flag {
		case ReflectZeroB:
			return reflect0, nil
		case Outflow:
			return outflow, nil
		case Periodic:
			return periodic, nil
		case ReflectNonzeroB:
			return reflect1, nil
		default:
			return nil, fmt.Errorf("bvals: %s = %d unknown", name, flag)
		}
	}

	var err error
	if bv.applyIx1, err = resolve(flags.Ix1,
		func(g *grid.Grid) { reflectIx1(g, true) },
		outflowIx1, periodicIx1,
		func(g *grid.Grid) { reflectIx1(g, false) }, "bc_ix1"); err != nil {
		return nil, err
	}
	if bv.applyOx1, err = resolve(flags.Ox1,
		func(g *grid.Grid) { reflectOx1(g, true) },
		outflowOx1, periodicOx1,
		func(g *grid.Grid) { reflectOx1(g, false) }, "bc_ox1"); err != nil {
		return nil, err
	}
	if bv.applyIx2, err = resolve(flags.Ix2,
		func(g *grid.Grid) { reflectIx2(g, true) },
		outflowIx2, periodicIx2,
		func(g *grid.Grid) { reflectIx2(g, false) }, "bc_ix2"); err != nil {
		return nil, err
	}
	if bv.applyOx2, err = resolve(flags.Ox2,
		func(g *grid.Grid) { reflectOx2(g, true) },
		outflowOx2, periodicOx2,
		func(g *grid.Grid) { reflectOx2(g, false) }, "bc_ox2"); err != nil {
		return nil, err
	}
	if g.ThreeD() {
		if bv.applyIx3, err = resolve(flags.Ix3,
			func(g *grid.Grid) { reflectIx3(g, true) },
			outflowIx3, periodicIx3,
			func(g *grid.Grid) { reflectIx3(g, false) }, "bc_ix3"); err != nil {
			return nil, err
		}
		if bv.applyOx3, err = resolve(flags.Ox3,
			func(g *grid.Grid) { reflectOx3(g, true) },
			outflowOx3, periodicOx3,
			func(g *grid.Grid) { reflectOx3(g, false) }, "bc_ox3"); err != nil {
			return nil, err
		}
	}

	for _, opt := range opts {
		opt(bv)
	}

	// Variables per cell in an exchange message: the conserved state
	// plus, for MHD, the three interface fields.
	bv.nvarShare = 4 + fluid.NScalars
	if !eos.Isothermal {
		bv.nvarShare++
	}
	if eos.MHD {
		bv.nvarShare += 6
	}

	// Size staging buffers from the largest per-face tile.
	cnt2 := g.Nx2 + 1
	cnt3 := 1
	if g.ThreeD() {
		cnt3 = g.Nx3 + 1
	}
	size := cnt2 * cnt3

	cnt1 := g.Nx1 + 2*grid.Nghost
	if n := cnt1 * cnt3; n > size {
		size = n
	}
	if g.ThreeD() {
		if n := cnt1 * (g.Nx2 + 2*grid.Nghost); n > size {
			size = n
		}
	}
	size *= grid.Nghost * bv.nvarShare
	bv.sendBuf = make([]float64, size)
	bv.recvBuf = make([]float64, size)

	return bv, nil
}

// Set fills all ghost zones of g. Directions run strictly x1, x2, x3;
// within a direction a receive is pre-posted before the opposite-face
// send, matching the exchange protocol.
func (bv *Bvals) Set(g *grid.Grid) error {
	// x1 direction
	switch {
	case bv.comm != nil && g.Rx1ID >= 0 && g.Lx1ID >= 0:
		rq := bv.comm.Irecv(g.Lx1ID, BoundaryCellsTag)
		bv.sendOx1(g)
		if err := bv.recvIx1(g, rq); err != nil {
			return err
		}
		rq = bv.comm.Irecv(g.Rx1ID, BoundaryCellsTag)
		bv.sendIx1(g)
		if err := bv.recvOx1(g, rq); err != nil {
			return err
		}
	case bv.comm != nil && g.Rx1ID >= 0 && g.Lx1ID < 0:
		rq := bv.comm.Irecv(g.Rx1ID, BoundaryCellsTag)
		bv.sendOx1(g)
		bv.applyIx1(g)
		if err := bv.recvOx1(g, rq); err != nil {
			return err
		}
	case bv.comm != nil && g.Rx1ID < 0 && g.Lx1ID >= 0:
		rq := bv.comm.Irecv(g.Lx1ID, BoundaryCellsTag)
		bv.sendIx1(g)
		bv.applyOx1(g)
		if err := bv.recvIx1(g, rq); err != nil {
			return err
		}
	default:
		bv.applyIx1(g)
		bv.applyOx1(g)
	}

	// x2 direction
	switch {
	case bv.comm != nil && g.Rx2ID >= 0 && g.Lx2ID >= 0:
		rq := bv.comm.Irecv(g.Lx2ID, BoundaryCellsTag)
		bv.sendOx2(g)
		if err := bv.recvIx2(g, rq); err != nil {
			return err
		}
		rq = bv.comm.Irecv(g.Rx2ID, BoundaryCellsTag)
		bv.sendIx2(g)
		if err := bv.recvOx2(g, rq); err != nil {
			return err
		}
	case bv.comm != nil && g.Rx2ID >= 0 && g.Lx2ID < 0:
		rq := bv.comm.Irecv(g.Rx2ID, BoundaryCellsTag)
		bv.sendOx2(g)
		bv.applyIx2(g)
		if err := bv.recvOx2(g, rq); err != nil {
			return err
		}
	case bv.comm != nil && g.Rx2ID < 0 && g.Lx2ID >= 0:
		rq := bv.comm.Irecv(g.Lx2ID, BoundaryCellsTag)
		bv.sendIx2(g)
		bv.applyOx2(g)
		if err := bv.recvIx2(g, rq); err != nil {
			return err
		}
	default:
		bv.applyIx2(g)
		bv.applyOx2(g)
	}

	// Shearing-sheet remap on the two outermost x1 tiles, after the
	// x2 boundaries are in place. The B1i face at ie+1 belongs to the
	// tile's own CT update: recvOx1 left it untouched and the ox1 hook
	// keeps it as well.
	if bv.shearingBox {
		if g.IProc == 0 && bv.shearIx1 != nil {
			bv.shearIx1(g)
		}
		if g.IProc == bv.ngridX1-1 && bv.shearOx1 != nil {
			bv.shearOx1(g)
		}
	}

	// x3 direction
	if !g.ThreeD() {
		return nil
	}
	switch {
	case bv.comm != nil && g.Rx3ID >= 0 && g.Lx3ID >= 0:
		rq := bv.comm.Irecv(g.Lx3ID, BoundaryCellsTag)
		bv.sendOx3(g)
		if err := bv.recvIx3(g, rq); err != nil {
			return err
		}
		rq = bv.comm.Irecv(g.Rx3ID, BoundaryCellsTag)
		bv.sendIx3(g)
		if err := bv.recvOx3(g, rq); err != nil {
			return err
		}
	case bv.comm != nil && g.Rx3ID >= 0 && g.Lx3ID < 0:
		rq := bv.comm.Irecv(g.Rx3ID, BoundaryCellsTag)
		bv.sendOx3(g)
		bv.applyIx3(g)
		if err := bv.recvOx3(g, rq); err != nil {
			return err
		}
	case bv.comm != nil && g.Rx3ID < 0 && g.Lx3ID >= 0:
		rq := bv.comm.Irecv(g.Lx3ID, BoundaryCellsTag)
		bv.sendIx3(g)
		bv.applyOx3(g)
		if err := bv.recvIx3(g, rq); err != nil {
			return err
		}
	default:
		bv.applyIx3(g)
		bv.applyOx3(g)
	}

	return nil
}
