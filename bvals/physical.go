package bvals

import "github.com/astroflux/gomhd/grid"

// Physical boundary policies. Conventions shared by all twelve
// functions:
//
//   - x1 faces copy only js..je and ks..ke; x2 faces copy the full
//     extended x1 range (is-nghost..ie+nghost) filled by the earlier
//     direction; x3 faces copy both extended ranges. This is what
//     makes the x1 -> x2 -> x3 ordering fill corners.
//   - The face-normal interface field at the outer boundary sits on
//     the inner edge of the ghost region, so outer-face copies of that
//     one array start at offset 2. Reflecting with B_normal = 0 zeroes
//     the on-boundary face first and mirrors antisymmetrically.

// Reflecting, inner x1. zeroB selects the B_normal = 0 variant.
func reflectIx1(g *grid.Grid, zeroB bool) {
	is := g.Is
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.U[k][j][is-i] = g.U[k][j][is+(i-1)]
				g.U[k][j][is-i].M1 = -g.U[k][j][is-i].M1
			}
		}
	}
	if !g.MHD() {
		return
	}
	qa := 1.0
	if zeroB {
		qa = -1.0
	}
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			if zeroB {
				g.B1i[k][j][is] = 0.0
			}
			for i := 1; i <= grid.Nghost; i++ {
				g.B1i[k][j][is-i] = qa * g.B1i[k][j][is+i]
				g.U[k][j][is-i].B1c = qa * g.U[k][j][is+(i-1)].B1c
			}
		}
	}
	ju := g.Je + 1
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= ju; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.B2i[k][j][is-i] = -qa * g.B2i[k][j][is+(i-1)]
				g.U[k][j][is-i].B2c = -qa * g.U[k][j][is+(i-1)].B2c
			}
		}
	}
	ku := g.Ke
	if g.ThreeD() {
		ku = g.Ke + 1
	}
	for k := g.Ks; k <= ku; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.B3i[k][j][is-i] = -qa * g.B3i[k][j][is+(i-1)]
				g.U[k][j][is-i].B3c = -qa * g.U[k][j][is+(i-1)].B3c
			}
		}
	}
}

// Reflecting, outer x1.
func reflectOx1(g *grid.Grid, zeroB bool) {
	ie := g.Ie
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.U[k][j][ie+i] = g.U[k][j][ie-(i-1)]
				g.U[k][j][ie+i].M1 = -g.U[k][j][ie+i].M1
			}
		}
	}
	if !g.MHD() {
		return
	}
	qa := 1.0
	if zeroB {
		qa = -1.0
	}
	// i = ie+1 is the boundary face itself; it is set only when the
	// normal field vanishes there.
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			if zeroB {
				g.B1i[k][j][ie+1] = 0.0
			}
			g.U[k][j][ie+1].B1c = qa * g.U[k][j][ie].B1c
			for i := 2; i <= grid.Nghost; i++ {
				g.B1i[k][j][ie+i] = qa * g.B1i[k][j][ie-(i-2)]
				g.U[k][j][ie+i].B1c = qa * g.U[k][j][ie-(i-1)].B1c
			}
		}
	}
	ju := g.Je + 1
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= ju; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.B2i[k][j][ie+i] = -qa * g.B2i[k][j][ie-(i-1)]
				g.U[k][j][ie+i].B2c = -qa * g.U[k][j][ie-(i-1)].B2c
			}
		}
	}
	ku := g.Ke
	if g.ThreeD() {
		ku = g.Ke + 1
	}
	for k := g.Ks; k <= ku; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.B3i[k][j][ie+i] = -qa * g.B3i[k][j][ie-(i-1)]
				g.U[k][j][ie+i].B3c = -qa * g.U[k][j][ie-(i-1)].B3c
			}
		}
	}
}

// Reflecting, inner x2.
func reflectIx2(g *grid.Grid, zeroB bool) {
	js := g.Js
	il, iu := g.Is-grid.Nghost, g.Ie+grid.Nghost
	for k := g.Ks; k <= g.Ke; k++ {
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.U[k][js-j][i] = g.U[k][js+(j-1)][i]
				g.U[k][js-j][i].M2 = -g.U[k][js-j][i].M2
			}
		}
	}
	if !g.MHD() {
		return
	}
	qa := 1.0
	if zeroB {
		qa = -1.0
	}
	for k := g.Ks; k <= g.Ke; k++ {
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.B1i[k][js-j][i] = -qa * g.B1i[k][js+(j-1)][i]
				g.U[k][js-j][i].B1c = -qa * g.U[k][js+(j-1)][i].B1c
			}
		}
	}
	for k := g.Ks; k <= g.Ke; k++ {
		if zeroB {
			for i := il; i <= iu; i++ {
				g.B2i[k][js][i] = 0.0
			}
		}
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.B2i[k][js-j][i] = qa * g.B2i[k][js+j][i]
				g.U[k][js-j][i].B2c = qa * g.U[k][js+(j-1)][i].B2c
			}
		}
	}
	ku := g.Ke
	if g.ThreeD() {
		ku = g.Ke + 1
	}
	for k := g.Ks; k <= ku; k++ {
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.B3i[k][js-j][i] = -qa * g.B3i[k][js+(j-1)][i]
				g.U[k][js-j][i].B3c = -qa * g.U[k][js+(j-1)][i].B3c
			}
		}
	}
}

// Reflecting, outer x2.
func reflectOx2(g *grid.Grid, zeroB bool) {
	je := g.Je
	il, iu := g.Is-grid.Nghost, g.Ie+grid.Nghost
	for k := g.Ks; k <= g.Ke; k++ {
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.U[k][je+j][i] = g.U[k][je-(j-1)][i]
				g.U[k][je+j][i].M2 = -g.U[k][je+j][i].M2
			}
		}
	}
	if !g.MHD() {
		return
	}
	qa := 1.0
	if zeroB {
		qa = -1.0
	}
	for k := g.Ks; k <= g.Ke; k++ {
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.B1i[k][je+j][i] = -qa * g.B1i[k][je-(j-1)][i]
				g.U[k][je+j][i].B1c = -qa * g.U[k][je-(j-1)][i].B1c
			}
		}
	}
	for k := g.Ks; k <= g.Ke; k++ {
		for i := il; i <= iu; i++ {
			if zeroB {
				g.B2i[k][je+1][i] = 0.0
			}
			g.U[k][je+1][i].B2c = qa * g.U[k][je][i].B2c
		}
		for j := 2; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.B2i[k][je+j][i] = qa * g.B2i[k][je-(j-2)][i]
				g.U[k][je+j][i].B2c = qa * g.U[k][je-(j-1)][i].B2c
			}
		}
	}
	ku := g.Ke
	if g.ThreeD() {
		ku = g.Ke + 1
	}
	for k := g.Ks; k <= ku; k++ {
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.B3i[k][je+j][i] = -qa * g.B3i[k][je-(j-1)][i]
				g.U[k][je+j][i].B3c = -qa * g.U[k][je-(j-1)][i].B3c
			}
		}
	}
}

// Reflecting, inner x3.
func reflectIx3(g *grid.Grid, zeroB bool) {
	ks := g.Ks
	il, iu := g.Is-grid.Nghost, g.Ie+grid.Nghost
	jl, ju := g.Js-grid.Nghost, g.Je+grid.Nghost
	for k := 1; k <= grid.Nghost; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				g.U[ks-k][j][i] = g.U[ks+(k-1)][j][i]
				g.U[ks-k][j][i].M3 = -g.U[ks-k][j][i].M3
			}
		}
	}
	if !g.MHD() {
		return
	}
	qa := 1.0
	if zeroB {
		qa = -1.0
	}
	for k := 1; k <= grid.Nghost; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				g.B1i[ks-k][j][i] = -qa * g.B1i[ks+(k-1)][j][i]
				g.U[ks-k][j][i].B1c = -qa * g.U[ks+(k-1)][j][i].B1c
				g.B2i[ks-k][j][i] = -qa * g.B2i[ks+(k-1)][j][i]
				g.U[ks-k][j][i].B2c = -qa * g.U[ks+(k-1)][j][i].B2c
			}
		}
	}
	if zeroB {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				g.B3i[ks][j][i] = 0.0
			}
		}
	}
	for k := 1; k <= grid.Nghost; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				g.B3i[ks-k][j][i] = qa * g.B3i[ks+k][j][i]
				g.U[ks-k][j][i].B3c = qa * g.U[ks+(k-1)][j][i].B3c
			}
		}
	}
}

// Reflecting, outer x3.
func reflectOx3(g *grid.Grid, zeroB bool) {
	ke := g.Ke
	il, iu := g.Is-grid.Nghost, g.Ie+grid.Nghost
	jl, ju := g.Js-grid.Nghost, g.Je+grid.Nghost
	for k := 1; k <= grid.Nghost; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				g.U[ke+k][j][i] = g.U[ke-(k-1)][j][i]
				g.U[ke+k][j][i].M3 = -g.U[ke+k][j][i].M3
			}
		}
	}
	if !g.MHD() {
		return
	}
	qa := 1.0
	if zeroB {
		qa = -1.0
	}
	for k := 1; k <= grid.Nghost; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				g.B1i[ke+k][j][i] = -qa * g.B1i[ke-(k-1)][j][i]
				g.U[ke+k][j][i].B1c = -qa * g.U[ke-(k-1)][j][i].B1c
				g.B2i[ke+k][j][i] = -qa * g.B2i[ke-(k-1)][j][i]
				g.U[ke+k][j][i].B2c = -qa * g.U[ke-(k-1)][j][i].B2c
			}
		}
	}
	for j := jl; j <= ju; j++ {
		for i := il; i <= iu; i++ {
			if zeroB {
				g.B3i[ke+1][j][i] = 0.0
			}
			g.U[ke+1][j][i].B3c = qa * g.U[ke][j][i].B3c
		}
	}
	for k := 2; k <= grid.Nghost; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				g.B3i[ke+k][j][i] = qa * g.B3i[ke-(k-2)][j][i]
				g.U[ke+k][j][i].B3c = qa * g.U[ke-(k-1)][j][i].B3c
			}
		}
	}
}

// Outflow, inner x1.
func outflowIx1(g *grid.Grid) {
	is := g.Is
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.U[k][j][is-i] = g.U[k][j][is]
			}
		}
	}
	if !g.MHD() {
		return
	}
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.B1i[k][j][is-i] = g.B1i[k][j][is]
			}
		}
	}
	ju := g.Je + 1
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= ju; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.B2i[k][j][is-i] = g.B2i[k][j][is]
			}
		}
	}
	ku := g.Ke
	if g.ThreeD() {
		ku = g.Ke + 1
	}
	for k := g.Ks; k <= ku; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.B3i[k][j][is-i] = g.B3i[k][j][is]
			}
		}
	}
}

// Outflow, outer x1. The face at ie+1 already holds interior data for
// B1i, so its copy starts at offset 2.
func outflowOx1(g *grid.Grid) {
	ie := g.Ie
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.U[k][j][ie+i] = g.U[k][j][ie]
			}
		}
	}
	if !g.MHD() {
		return
	}
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := 2; i <= grid.Nghost; i++ {
				g.B1i[k][j][ie+i] = g.B1i[k][j][ie]
			}
		}
	}
	ju := g.Je + 1
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= ju; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.B2i[k][j][ie+i] = g.B2i[k][j][ie]
			}
		}
	}
	ku := g.Ke
	if g.ThreeD() {
		ku = g.Ke + 1
	}
	for k := g.Ks; k <= ku; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.B3i[k][j][ie+i] = g.B3i[k][j][ie]
			}
		}
	}
}

// Outflow, inner x2.
func outflowIx2(g *grid.Grid) {
	js := g.Js
	il, iu := g.Is-grid.Nghost, g.Ie+grid.Nghost
	for k := g.Ks; k <= g.Ke; k++ {
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.U[k][js-j][i] = g.U[k][js][i]
			}
		}
	}
	if !g.MHD() {
		return
	}
	for k := g.Ks; k <= g.Ke; k++ {
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.B1i[k][js-j][i] = g.B1i[k][js][i]
				g.B2i[k][js-j][i] = g.B2i[k][js][i]
			}
		}
	}
	ku := g.Ke
	if g.ThreeD() {
		ku = g.Ke + 1
	}
	for k := g.Ks; k <= ku; k++ {
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.B3i[k][js-j][i] = g.B3i[k][js][i]
			}
		}
	}
}

// Outflow, outer x2.
func outflowOx2(g *grid.Grid) {
	je := g.Je
	il, iu := g.Is-grid.Nghost, g.Ie+grid.Nghost
	for k := g.Ks; k <= g.Ke; k++ {
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.U[k][je+j][i] = g.U[k][je][i]
			}
		}
	}
	if !g.MHD() {
		return
	}
	for k := g.Ks; k <= g.Ke; k++ {
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.B1i[k][je+j][i] = g.B1i[k][je][i]
			}
		}
	}
	for k := g.Ks; k <= g.Ke; k++ {
		for j := 2; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.B2i[k][je+j][i] = g.B2i[k][je][i]
			}
		}
	}
	ku := g.Ke
	if g.ThreeD() {
		ku = g.Ke + 1
	}
	for k := g.Ks; k <= ku; k++ {
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.B3i[k][je+j][i] = g.B3i[k][je][i]
			}
		}
	}
}

// Outflow, inner x3.
func outflowIx3(g *grid.Grid) {
	ks := g.Ks
	il, iu := g.Is-grid.Nghost, g.Ie+grid.Nghost
	jl, ju := g.Js-grid.Nghost, g.Je+grid.Nghost
	for k := 1; k <= grid.Nghost; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				g.U[ks-k][j][i] = g.U[ks][j][i]
			}
		}
	}
	if !g.MHD() {
		return
	}
	for k := 1; k <= grid.Nghost; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				g.B1i[ks-k][j][i] = g.B1i[ks][j][i]
				g.B2i[ks-k][j][i] = g.B2i[ks][j][i]
				g.B3i[ks-k][j][i] = g.B3i[ks][j][i]
			}
		}
	}
}

// Outflow, outer x3.
func outflowOx3(g *grid.Grid) {
	ke := g.Ke
	il, iu := g.Is-grid.Nghost, g.Ie+grid.Nghost
	jl, ju := g.Js-grid.Nghost, g.Je+grid.Nghost
	for k := 1; k <= grid.Nghost; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				g.U[ke+k][j][i] = g.U[ke][j][i]
			}
		}
	}
	if !g.MHD() {
		return
	}
	for k := 1; k <= grid.Nghost; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				g.B1i[ke+k][j][i] = g.B1i[ke][j][i]
				g.B2i[ke+k][j][i] = g.B2i[ke][j][i]
			}
		}
	}
	for k := 2; k <= grid.Nghost; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				g.B3i[ke+k][j][i] = g.B3i[ke][j][i]
			}
		}
	}
}

// Periodic, inner x1.
func periodicIx1(g *grid.Grid) {
	is, ie := g.Is, g.Ie
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.U[k][j][is-i] = g.U[k][j][ie-(i-1)]
			}
		}
	}
	if !g.MHD() {
		return
	}
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.B1i[k][j][is-i] = g.B1i[k][j][ie-(i-1)]
			}
		}
	}
	ju := g.Je + 1
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= ju; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.B2i[k][j][is-i] = g.B2i[k][j][ie-(i-1)]
			}
		}
	}
	ku := g.Ke
	if g.ThreeD() {
		ku = g.Ke + 1
	}
	for k := g.Ks; k <= ku; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.B3i[k][j][is-i] = g.B3i[k][j][ie-(i-1)]
			}
		}
	}
}

// Periodic, outer x1.
func periodicOx1(g *grid.Grid) {
	is, ie := g.Is, g.Ie
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.U[k][j][ie+i] = g.U[k][j][is+(i-1)]
			}
		}
	}
	if !g.MHD() {
		return
	}
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := 2; i <= grid.Nghost; i++ {
				g.B1i[k][j][ie+i] = g.B1i[k][j][is+(i-1)]
			}
		}
	}
	ju := g.Je + 1
	for k := g.Ks; k <= g.Ke; k++ {
		for j := g.Js; j <= ju; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.B2i[k][j][ie+i] = g.B2i[k][j][is+(i-1)]
			}
		}
	}
	ku := g.Ke
	if g.ThreeD() {
		ku = g.Ke + 1
	}
	for k := g.Ks; k <= ku; k++ {
		for j := g.Js; j <= g.Je; j++ {
			for i := 1; i <= grid.Nghost; i++ {
				g.B3i[k][j][ie+i] = g.B3i[k][j][is+(i-1)]
			}
		}
	}
}

// Periodic, inner x2.
func periodicIx2(g *grid.Grid) {
	js, je := g.Js, g.Je
	il, iu := g.Is-grid.Nghost, g.Ie+grid.Nghost
	for k := g.Ks; k <= g.Ke; k++ {
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.U[k][js-j][i] = g.U[k][je-(j-1)][i]
			}
		}
	}
	if !g.MHD() {
		return
	}
	for k := g.Ks; k <= g.Ke; k++ {
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.B1i[k][js-j][i] = g.B1i[k][je-(j-1)][i]
				g.B2i[k][js-j][i] = g.B2i[k][je-(j-1)][i]
			}
		}
	}
	ku := g.Ke
	if g.ThreeD() {
		ku = g.Ke + 1
	}
	for k := g.Ks; k <= ku; k++ {
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.B3i[k][js-j][i] = g.B3i[k][je-(j-1)][i]
			}
		}
	}
}

// Periodic, outer x2.
func periodicOx2(g *grid.Grid) {
	js, je := g.Js, g.Je
	il, iu := g.Is-grid.Nghost, g.Ie+grid.Nghost
	for k := g.Ks; k <= g.Ke; k++ {
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.U[k][je+j][i] = g.U[k][js+(j-1)][i]
			}
		}
	}
	if !g.MHD() {
		return
	}
	for k := g.Ks; k <= g.Ke; k++ {
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.B1i[k][je+j][i] = g.B1i[k][js+(j-1)][i]
			}
		}
	}
	for k := g.Ks; k <= g.Ke; k++ {
		for j := 2; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.B2i[k][je+j][i] = g.B2i[k][js+(j-1)][i]
			}
		}
	}
	ku := g.Ke
	if g.ThreeD() {
		ku = g.Ke + 1
	}
	for k := g.Ks; k <= ku; k++ {
		for j := 1; j <= grid.Nghost; j++ {
			for i := il; i <= iu; i++ {
				g.B3i[k][je+j][i] = g.B3i[k][js+(j-1)][i]
			}
		}
	}
}

// Periodic, inner x3.
func periodicIx3(g *grid.Grid) {
	ks, ke := g.Ks, g.Ke
	il, iu := g.Is-grid.Nghost, g.Ie+grid.Nghost
	jl, ju := g.Js-grid.Nghost, g.Je+grid.Nghost
	for k := 1; k <= grid.Nghost; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				g.U[ks-k][j][i] = g.U[ke-(k-1)][j][i]
			}
		}
	}
	if !g.MHD() {
		return
	}
	for k := 1; k <= grid.Nghost; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				g.B1i[ks-k][j][i] = g.B1i[ke-(k-1)][j][i]
				g.B2i[ks-k][j][i] = g.B2i[ke-(k-1)][j][i]
				g.B3i[ks-k][j][i] = g.B3i[ke-(k-1)][j][i]
			}
		}
	}
}

// Periodic, outer x3.
func periodicOx3(g *grid.Grid) {
	ks, ke := g.Ks, g.Ke
	il, iu := g.Is-grid.Nghost, g.Ie+grid.Nghost
	jl, ju := g.Js-grid.Nghost, g.Je+grid.Nghost
	for k := 1; k <= grid.Nghost; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				g.U[ke+k][j][i] = g.U[ks+(k-1)][j][i]
			}
		}
	}
	if !g.MHD() {
		return
	}
	for k := 1; k <= grid.Nghost; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				g.B1i[ke+k][j][i] = g.B1i[ks+(k-1)][j][i]
				g.B2i[ke+k][j][i] = g.B2i[ks+(k-1)][j][i]
			}
		}
	}
	for k := 2; k <= grid.Nghost; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				g.B3i[ke+k][j][i] = g.B3i[ks+(k-1)][j][i]
			}
		}
	}
}
