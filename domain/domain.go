// Package domain decomposes the global computational volume into Grid
// tiles, one per rank, wires the neighbor topology, and drives the
// per-step loop: boundary exchange, integrate, user hook, advance.
package domain

import (
	"fmt"

	"github.com/astroflux/gomhd/bvals"
	"github.com/astroflux/gomhd/config"
	"github.com/astroflux/gomhd/grid"
)

// Domain is one decomposed run: the tiles, the message fabric, and the
// decomposition geometry.
type Domain struct {
	NGridX1, NGridX2, NGridX3 int
	Lx1, Lx2, Lx3             float64

	Grids   []*grid.Grid
	Cluster *bvals.Cluster
}

// split1D divides n cells into np nearly equal chunks with a maximum
// imbalance of one; returns the [start, end) cell range of chunk p.
func split1D(p, np, n int) (lo, hi int) {
	base := n / np
	rem := n % np
	lo = p*base + min(p, rem)
	hi = lo + base
	if p < rem {
		hi++
	}
	return
}

// rankOf maps a tile coordinate to its rank id.
func (d *Domain) rankOf(ip, jp, kp int) int {
	return (kp*d.NGridX2+jp)*d.NGridX1 + ip
}

// New builds the tiles of a global Nx1 x Nx2 x Nx3 volume over the
// requested decomposition. Periodic flags wire wraparound neighbors so
// periodic faces of decomposed directions exchange instead of copying
// locally.
func New(ip *config.InputParameters) (*Domain, error) {
	ng1, ng2, ng3 := ip.NGridX1, ip.NGridX2, ip.NGridX3
	if ng1 < 1 || ng2 < 1 || ng3 < 1 {
		return nil, fmt.Errorf("domain: bad decomposition (%d,%d,%d)", ng1, ng2, ng3)
	}
	if ip.Nx1 < ng1 || ip.Nx2 < ng2 || (ip.Nx3 > 1 && ip.Nx3 < ng3) {
		return nil, fmt.Errorf("domain: more tiles than zones")
	}
	if ip.Nx3 == 1 && ng3 > 1 {
		return nil, fmt.Errorf("domain: cannot decompose x3 of a 2D run")
	}

	d := &Domain{
		NGridX1: ng1, NGridX2: ng2, NGridX3: ng3,
		Lx1: ip.X1Max - ip.X1Min,
		Lx2: ip.X2Max - ip.X2Min,
		Lx3: ip.X3Max - ip.X3Min,
	}
	np := ng1 * ng2 * ng3
	d.Grids = make([]*grid.Grid, np)
	d.Cluster = bvals.NewCluster(np)

	dx1 := d.Lx1 / float64(ip.Nx1)
	dx2 := d.Lx2 / float64(ip.Nx2)
	dx3 := 0.0
	if ip.Nx3 > 1 {
		dx3 = d.Lx3 / float64(ip.Nx3)
	}

	for kp := 0; kp < ng3; kp++ {
		klo, khi := split1D(kp, ng3, ip.Nx3)
		for jp := 0; jp < ng2; jp++ {
			jlo, jhi := split1D(jp, ng2, ip.Nx2)
			for ipr := 0; ipr < ng1; ipr++ {
				ilo, ihi := split1D(ipr, ng1, ip.Nx1)

				nx3 := 1
				if ip.Nx3 > 1 {
					nx3 = khi - klo
				}
				g := grid.New(ihi-ilo, jhi-jlo, nx3, ip.MHD)
				g.Dx1, g.Dx2, g.Dx3 = dx1, dx2, dx3
				g.X1Min = ip.X1Min + float64(ilo)*dx1
				g.X2Min = ip.X2Min + float64(jlo)*dx2
				g.X3Min = ip.X3Min + float64(klo)*dx3
				g.IProc, g.JProc, g.KProc = ipr, jp, kp

				// Interior neighbors, plus wraparound when the face is
				// periodic and the direction is decomposed.
				if ipr > 0 {
					g.Lx1ID = d.rankOf(ipr-1, jp, kp)
				} else if ip.BCix1 == bvals.Periodic && ng1 > 1 {
					g.Lx1ID = d.rankOf(ng1-1, jp, kp)
				}
				if ipr < ng1-1 {
					g.Rx1ID = d.rankOf(ipr+1, jp, kp)
				} else if ip.BCox1 == bvals.Periodic && ng1 > 1 {
					g.Rx1ID = d.rankOf(0, jp, kp)
				}
				if jp > 0 {
					g.Lx2ID = d.rankOf(ipr, jp-1, kp)
				} else if ip.BCix2 == bvals.Periodic && ng2 > 1 {
					g.Lx2ID = d.rankOf(ipr, ng2-1, kp)
				}
				if jp < ng2-1 {
					g.Rx2ID = d.rankOf(ipr, jp+1, kp)
				} else if ip.BCox2 == bvals.Periodic && ng2 > 1 {
					g.Rx2ID = d.rankOf(ipr, 0, kp)
				}
				if ip.Nx3 > 1 {
					if kp > 0 {
						g.Lx3ID = d.rankOf(ipr, jp, kp-1)
					} else if ip.BCix3 == bvals.Periodic && ng3 > 1 {
						g.Lx3ID = d.rankOf(ipr, jp, ng3-1)
					}
					if kp < ng3-1 {
						g.Rx3ID = d.rankOf(ipr, jp, kp+1)
					} else if ip.BCox3 == bvals.Periodic && ng3 > 1 {
						g.Rx3ID = d.rankOf(ipr, jp, 0)
					}
				}

				d.Grids[d.rankOf(ipr, jp, kp)] = g
			}
		}
	}
	return d, nil
}

// NP returns the rank count.
func (d *Domain) NP() int { return len(d.Grids) }
