package grid

import (
	"fmt"

	"github.com/astroflux/gomhd/fluid"
)

// Nghost is the depth of the ghost-cell layer on every face. Four
// layers cover the widest CTU stencil.
const Nghost = 4

// Grid is one tile of the structured Cartesian mesh, owned by a single
// rank. Index ranges Is..Ie (and J, K analogues) span active cells
// only; the arrays extend Nghost cells beyond them on each side of
// every direction with more than one zone.
//
// The face-centered field B1i[k][j][i] lives on the -x1 face of cell
// (i,j,k); the face arrays use the same allocation as U so the single
// extra face per direction is always addressable.
type Grid struct {
	Nx1, Nx2, Nx3 int
	Is, Ie        int
	Js, Je        int
	Ks, Ke        int

	Dx1, Dx2, Dx3       float64
	X1Min, X2Min, X3Min float64

	Time, Dt float64

	U             [][][]fluid.Gas
	B1i, B2i, B3i [][][]float64

	// Neighbor rank identifiers, one per face; a value < 0 marks a
	// physical boundary.
	Lx1ID, Rx1ID int
	Lx2ID, Rx2ID int
	Lx3ID, Rx3ID int

	// This tile's position in the decomposition, used by the shearing
	// sheet and by diagnostics that need global coordinates.
	IProc, JProc, KProc int
}

// New allocates a Grid with nx1 x nx2 x nx3 active zones. The face
// field arrays are only allocated when mhd is set. nx2 must exceed one
// (the integrator is 2D/3D); nx3 == 1 selects the 2D layout with no
// ghost layer in x3.
func New(nx1, nx2, nx3 int, mhd bool) *Grid {
	if nx1 <= 1 || nx2 <= 1 || nx3 < 1 {
		panic(fmt.Errorf("grid: bad extents (%d,%d,%d)", nx1, nx2, nx3))
	}
	g := &Grid{
		Nx1: nx1, Nx2: nx2, Nx3: nx3,
		Lx1ID: -1, Rx1ID: -1,
		Lx2ID: -1, Rx2ID: -1,
		Lx3ID: -1, Rx3ID: -1,
	}
	n1 := nx1 + 2*Nghost
	n2 := nx2 + 2*Nghost
	n3 := 1
	g.Is = Nghost
	g.Ie = Nghost + nx1 - 1
	g.Js = Nghost
	g.Je = Nghost + nx2 - 1
	if nx3 > 1 {
		n3 = nx3 + 2*Nghost
		g.Ks = Nghost
		g.Ke = Nghost + nx3 - 1
	}
	g.U = NewGasArray3(n3, n2, n1)
	if mhd {
		g.B1i = NewArray3(n3, n2, n1)
		g.B2i = NewArray3(n3, n2, n1)
		g.B3i = NewArray3(n3, n2, n1)
	}
	return g
}

// ThreeD reports whether the tile carries a third dimension.
func (g *Grid) ThreeD() bool { return g.Nx3 > 1 }

// MHD reports whether face fields were allocated.
func (g *Grid) MHD() bool { return g.B1i != nil }

// Pos returns the cell-center position of cell (i,j,k).
func (g *Grid) Pos(i, j, k int) (x1, x2, x3 float64) {
	x1 = g.X1Min + (float64(i-g.Is)+0.5)*g.Dx1
	x2 = g.X2Min + (float64(j-g.Js)+0.5)*g.Dx2
	x3 = g.X3Min + (float64(k-g.Ks)+0.5)*g.Dx3
	return
}

// NewArray3 allocates an n3 x n2 x n1 array over one contiguous
// backing slice.
func NewArray3(n3, n2, n1 int) [][][]float64 {
	backing := make([]float64, n3*n2*n1)
	a := make([][][]float64, n3)
	for k := 0; k < n3; k++ {
		a[k] = make([][]float64, n2)
		for j := 0; j < n2; j++ {
			a[k][j] = backing[(k*n2+j)*n1 : (k*n2+j+1)*n1 : (k*n2+j+1)*n1]
		}
	}
	return a
}

// NewGasArray3 is NewArray3 for cell states.
func NewGasArray3(n3, n2, n1 int) [][][]fluid.Gas {
	backing := make([]fluid.Gas, n3*n2*n1)
	a := make([][][]fluid.Gas, n3)
	for k := 0; k < n3; k++ {
		a[k] = make([][]fluid.Gas, n2)
		for j := 0; j < n2; j++ {
			a[k][j] = backing[(k*n2+j)*n1 : (k*n2+j+1)*n1 : (k*n2+j+1)*n1]
		}
	}
	return a
}

// NewCons1DArray3 allocates sweep-state storage with the same shape as
// the grid arrays; used by the integrator scratch arena.
func NewCons1DArray3(n3, n2, n1 int) [][][]fluid.Cons1D {
	backing := make([]fluid.Cons1D, n3*n2*n1)
	a := make([][][]fluid.Cons1D, n3)
	for k := 0; k < n3; k++ {
		a[k] = make([][]fluid.Cons1D, n2)
		for j := 0; j < n2; j++ {
			a[k][j] = backing[(k*n2+j)*n1 : (k*n2+j+1)*n1 : (k*n2+j+1)*n1]
		}
	}
	return a
}
