package integrate

import (
	"github.com/astroflux/gomhd/fluid"
	"github.com/astroflux/gomhd/grid"
)

// Transverse corrections for the 3D step. Each face pair receives the
// dt/2 flux gradients of the two orthogonal sweeps (with the
// direction-dependent component rotation), the EMF-average updates of
// its transverse field components, and the limited MHD source terms of
// Gardiner & Stone (2007).

// correctX1Faces applies x2- and x3-flux gradients and MHD sources to
// the x1-face states.
func (itg *Integrator) correctX1Faces(g *grid.Grid) {
	var (
		eos    = itg.cfg.EOS
		mhd    = eos.MHD
		iso    = eos.Isothermal
		hdt    = 0.5 * g.Dt
		q2     = 0.5 * g.Dt / g.Dx2
		q3     = 0.5 * g.Dt / g.Dx3
		is, ie = g.Is, g.Ie
		js, je = g.Js, g.Je
		ks, ke = g.Ks, g.Ke
		U      = g.U
	)

	for k := ks - 1; k <= ke+1; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+2; i++ {
				ul, ur := &itg.ulX1[k][j][i], &itg.urX1[k][j][i]

				// x2-flux gradients: (x,y,z) on the sweep -> (z,x,y).
				fm, fp := &itg.x2Flux[k][j][i-1], &itg.x2Flux[k][j+1][i-1]
				ul.D -= q2 * (fp.D - fm.D)
				ul.Mx -= q2 * (fp.Mz - fm.Mz)
				ul.My -= q2 * (fp.Mx - fm.Mx)
				ul.Mz -= q2 * (fp.My - fm.My)
				ul.E -= q2 * (fp.E - fm.E)
				if mhd {
					ul.Bz += q2 * 0.5 * ((itg.emf1[k][j+1][i-1] - itg.emf1[k][j][i-1]) +
						(itg.emf1[k+1][j+1][i-1] - itg.emf1[k+1][j][i-1]))
				}
				for n := 0; n < fluid.NScalars; n++ {
					ul.S[n] -= q2 * (fp.S[n] - fm.S[n])
				}

				fm, fp = &itg.x2Flux[k][j][i], &itg.x2Flux[k][j+1][i]
				ur.D -= q2 * (fp.D - fm.D)
				ur.Mx -= q2 * (fp.Mz - fm.Mz)
				ur.My -= q2 * (fp.Mx - fm.Mx)
				ur.Mz -= q2 * (fp.My - fm.My)
				ur.E -= q2 * (fp.E - fm.E)
				if mhd {
					ur.Bz += q2 * 0.5 * ((itg.emf1[k][j+1][i] - itg.emf1[k][j][i]) +
						(itg.emf1[k+1][j+1][i] - itg.emf1[k+1][j][i]))
				}
				for n := 0; n < fluid.NScalars; n++ {
					ur.S[n] -= q2 * (fp.S[n] - fm.S[n])
				}

				// x3-flux gradients: (x,y,z) -> (y,z,x).
				fm, fp = &itg.x3Flux[k][j][i-1], &itg.x3Flux[k+1][j][i-1]
				ul.D -= q3 * (fp.D - fm.D)
				ul.Mx -= q3 * (fp.My - fm.My)
				ul.My -= q3 * (fp.Mz - fm.Mz)
				ul.Mz -= q3 * (fp.Mx - fm.Mx)
				ul.E -= q3 * (fp.E - fm.E)
				if mhd {
					ul.By -= q3 * 0.5 * ((itg.emf1[k+1][j][i-1] - itg.emf1[k][j][i-1]) +
						(itg.emf1[k+1][j+1][i-1] - itg.emf1[k][j+1][i-1]))
				}
				for n := 0; n < fluid.NScalars; n++ {
					ul.S[n] -= q3 * (fp.S[n] - fm.S[n])
				}

				fm, fp = &itg.x3Flux[k][j][i], &itg.x3Flux[k+1][j][i]
				ur.D -= q3 * (fp.D - fm.D)
				ur.Mx -= q3 * (fp.My - fm.My)
				ur.My -= q3 * (fp.Mz - fm.Mz)
				ur.Mz -= q3 * (fp.Mx - fm.Mx)
				ur.E -= q3 * (fp.E - fm.E)
				if mhd {
					ur.By -= q3 * 0.5 * ((itg.emf1[k+1][j][i] - itg.emf1[k][j][i]) +
						(itg.emf1[k+1][j+1][i] - itg.emf1[k][j+1][i]))
				}
				for n := 0; n < fluid.NScalars; n++ {
					ur.S[n] -= q3 * (fp.S[n] - fm.S[n])
				}
			}
		}
	}

	if !mhd {
		return
	}
	for k := ks - 1; k <= ke+1; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+2; i++ {
				db1 := (g.B1i[k][j][i] - g.B1i[k][j][i-1]) / g.Dx1
				db2 := (g.B2i[k][j+1][i-1] - g.B2i[k][j][i-1]) / g.Dx2
				db3 := (g.B3i[k+1][j][i-1] - g.B3i[k][j][i-1]) / g.Dx3
				qm := U[k][j][i-1]
				v2 := qm.M2 / qm.D
				v3 := qm.M3 / qm.D
				mdb2 := mdbLimit(db1, db2)
				mdb3 := mdbLimit(db1, db3)

				ul := &itg.ulX1[k][j][i]
				ul.Mx += hdt * qm.B1c * db1
				ul.My += hdt * qm.B2c * db1
				ul.Mz += hdt * qm.B3c * db1
				ul.By += hdt * v2 * (-mdb3)
				ul.Bz += hdt * v3 * (-mdb2)
				if !iso {
					ul.E += hdt * (qm.B2c*v2*(-mdb3) + qm.B3c*v3*(-mdb2))
				}

				db1 = (g.B1i[k][j][i+1] - g.B1i[k][j][i]) / g.Dx1
				db2 = (g.B2i[k][j+1][i] - g.B2i[k][j][i]) / g.Dx2
				db3 = (g.B3i[k+1][j][i] - g.B3i[k][j][i]) / g.Dx3
				qp := U[k][j][i]
				v2 = qp.M2 / qp.D
				v3 = qp.M3 / qp.D
				mdb2 = mdbLimit(db1, db2)
				mdb3 = mdbLimit(db1, db3)

				ur := &itg.urX1[k][j][i]
				ur.Mx += hdt * qp.B1c * db1
				ur.My += hdt * qp.B2c * db1
				ur.Mz += hdt * qp.B3c * db1
				ur.By += hdt * v2 * (-mdb3)
				ur.Bz += hdt * v3 * (-mdb2)
				if !iso {
					ur.E += hdt * (qp.B2c*v2*(-mdb3) + qp.B3c*v3*(-mdb2))
				}
			}
		}
	}
}

// correctX2Faces applies x1- and x3-flux gradients and MHD sources to
// the x2-face states.
func (itg *Integrator) correctX2Faces(g *grid.Grid) {
	var (
		eos    = itg.cfg.EOS
		mhd    = eos.MHD
		iso    = eos.Isothermal
		hdt    = 0.5 * g.Dt
		q1     = 0.5 * g.Dt / g.Dx1
		q3     = 0.5 * g.Dt / g.Dx3
		is, ie = g.Is, g.Ie
		js, je = g.Js, g.Je
		ks, ke = g.Ks, g.Ke
		U      = g.U
	)

	for k := ks - 1; k <= ke+1; k++ {
		for j := js - 1; j <= je+2; j++ {
			for i := is - 1; i <= ie+1; i++ {
				ul, ur := &itg.ulX2[k][j][i], &itg.urX2[k][j][i]

				// x1-flux gradients: (x,y,z) -> (y,z,x).
				fm, fp := &itg.x1Flux[k][j-1][i], &itg.x1Flux[k][j-1][i+1]
				ul.D -= q1 * (fp.D - fm.D)
				ul.Mx -= q1 * (fp.My - fm.My)
				ul.My -= q1 * (fp.Mz - fm.Mz)
				ul.Mz -= q1 * (fp.Mx - fm.Mx)
				ul.E -= q1 * (fp.E - fm.E)
				if mhd {
					ul.By -= q1 * 0.5 * ((itg.emf2[k][j-1][i+1] - itg.emf2[k][j-1][i]) +
						(itg.emf2[k+1][j-1][i+1] - itg.emf2[k+1][j-1][i]))
				}
				for n := 0; n < fluid.NScalars; n++ {
					ul.S[n] -= q1 * (fp.S[n] - fm.S[n])
				}

				fm, fp = &itg.x1Flux[k][j][i], &itg.x1Flux[k][j][i+1]
				ur.D -= q1 * (fp.D - fm.D)
				ur.Mx -= q1 * (fp.My - fm.My)
				ur.My -= q1 * (fp.Mz - fm.Mz)
				ur.Mz -= q1 * (fp.Mx - fm.Mx)
				ur.E -= q1 * (fp.E - fm.E)
				if mhd {
					ur.By -= q1 * 0.5 * ((itg.emf2[k][j][i+1] - itg.emf2[k][j][i]) +
						(itg.emf2[k+1][j][i+1] - itg.emf2[k+1][j][i]))
				}
				for n := 0; n < fluid.NScalars; n++ {
					ur.S[n] -= q1 * (fp.S[n] - fm.S[n])
				}

				// x3-flux gradients: (x,y,z) -> (z,x,y).
				fm, fp = &itg.x3Flux[k][j-1][i], &itg.x3Flux[k+1][j-1][i]
				ul.D -= q3 * (fp.D - fm.D)
				ul.Mx -= q3 * (fp.Mz - fm.Mz)
				ul.My -= q3 * (fp.Mx - fm.Mx)
				ul.Mz -= q3 * (fp.My - fm.My)
				ul.E -= q3 * (fp.E - fm.E)
				if mhd {
					ul.Bz += q3 * 0.5 * ((itg.emf2[k+1][j-1][i] - itg.emf2[k][j-1][i]) +
						(itg.emf2[k+1][j-1][i+1] - itg.emf2[k][j-1][i+1]))
				}
				for n := 0; n < fluid.NScalars; n++ {
					ul.S[n] -= q3 * (fp.S[n] - fm.S[n])
				}

				fm, fp = &itg.x3Flux[k][j][i], &itg.x3Flux[k+1][j][i]
				ur.D -= q3 * (fp.D - fm.D)
				ur.Mx -= q3 * (fp.Mz - fm.Mz)
				ur.My -= q3 * (fp.Mx - fm.Mx)
				ur.Mz -= q3 * (fp.My - fm.My)
				ur.E -= q3 * (fp.E - fm.E)
				if mhd {
					ur.Bz += q3 * 0.5 * ((itg.emf2[k+1][j][i] - itg.emf2[k][j][i]) +
						(itg.emf2[k+1][j][i+1] - itg.emf2[k][j][i+1]))
				}
				for n := 0; n < fluid.NScalars; n++ {
					ur.S[n] -= q3 * (fp.S[n] - fm.S[n])
				}
			}
		}
	}

	if !mhd {
		return
	}
	for k := ks - 1; k <= ke+1; k++ {
		for j := js - 1; j <= je+2; j++ {
			for i := is - 1; i <= ie+1; i++ {
				db1 := (g.B1i[k][j-1][i+1] - g.B1i[k][j-1][i]) / g.Dx1
				db2 := (g.B2i[k][j][i] - g.B2i[k][j-1][i]) / g.Dx2
				db3 := (g.B3i[k+1][j-1][i] - g.B3i[k][j-1][i]) / g.Dx3
				qm := U[k][j-1][i]
				v1 := qm.M1 / qm.D
				v3 := qm.M3 / qm.D
				mdb1 := mdbLimit(db2, db1)
				mdb3 := mdbLimit(db2, db3)

				ul := &itg.ulX2[k][j][i]
				ul.Mz += hdt * qm.B1c * db2
				ul.Mx += hdt * qm.B2c * db2
				ul.My += hdt * qm.B3c * db2
				ul.By += hdt * v3 * (-mdb1)
				ul.Bz += hdt * v1 * (-mdb3)
				if !iso {
					ul.E += hdt * (qm.B3c*v3*(-mdb1) + qm.B1c*v1*(-mdb3))
				}

				db1 = (g.B1i[k][j][i+1] - g.B1i[k][j][i]) / g.Dx1
				db2 = (g.B2i[k][j+1][i] - g.B2i[k][j][i]) / g.Dx2
				db3 = (g.B3i[k+1][j][i] - g.B3i[k][j][i]) / g.Dx3
				qp := U[k][j][i]
				v1 = qp.M1 / qp.D
				v3 = qp.M3 / qp.D
				mdb1 = mdbLimit(db2, db1)
				mdb3 = mdbLimit(db2, db3)

				ur := &itg.urX2[k][j][i]
				ur.Mz += hdt * qp.B1c * db2
				ur.Mx += hdt * qp.B2c * db2
				ur.My += hdt * qp.B3c * db2
				ur.By += hdt * v3 * (-mdb1)
				ur.Bz += hdt * v1 * (-mdb3)
				if !iso {
					ur.E += hdt * (qp.B3c*v3*(-mdb1) + qp.B1c*v1*(-mdb3))
				}
			}
		}
	}
}

// correctX3Faces applies x1- and x2-flux gradients and MHD sources to
// the x3-face states.
func (itg *Integrator) correctX3Faces(g *grid.Grid) {
	var (
		eos    = itg.cfg.EOS
		mhd    = eos.MHD
		iso    = eos.Isothermal
		hdt    = 0.5 * g.Dt
		q1     = 0.5 * g.Dt / g.Dx1
		q2     = 0.5 * g.Dt / g.Dx2
		is, ie = g.Is, g.Ie
		js, je = g.Js, g.Je
		ks, ke = g.Ks, g.Ke
		U      = g.U
	)

	for k := ks - 1; k <= ke+2; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+1; i++ {
				ul, ur := &itg.ulX3[k][j][i], &itg.urX3[k][j][i]

				// x1-flux gradients: (x,y,z) -> (z,x,y).
				fm, fp := &itg.x1Flux[k-1][j][i], &itg.x1Flux[k-1][j][i+1]
				ul.D -= q1 * (fp.D - fm.D)
				ul.Mx -= q1 * (fp.Mz - fm.Mz)
				ul.My -= q1 * (fp.Mx - fm.Mx)
				ul.Mz -= q1 * (fp.My - fm.My)
				ul.E -= q1 * (fp.E - fm.E)
				if mhd {
					ul.Bz += q1 * 0.5 * ((itg.emf3[k-1][j][i+1] - itg.emf3[k-1][j][i]) +
						(itg.emf3[k-1][j+1][i+1] - itg.emf3[k-1][j+1][i]))
				}
				for n := 0; n < fluid.NScalars; n++ {
					ul.S[n] -= q1 * (fp.S[n] - fm.S[n])
				}

				fm, fp = &itg.x1Flux[k][j][i], &itg.x1Flux[k][j][i+1]
				ur.D -= q1 * (fp.D - fm.D)
				ur.Mx -= q1 * (fp.Mz - fm.Mz)
				ur.My -= q1 * (fp.Mx - fm.Mx)
				ur.Mz -= q1 * (fp.My - fm.My)
				ur.E -= q1 * (fp.E - fm.E)
				if mhd {
					ur.Bz += q1 * 0.5 * ((itg.emf3[k][j][i+1] - itg.emf3[k][j][i]) +
						(itg.emf3[k][j+1][i+1] - itg.emf3[k][j+1][i]))
				}
				for n := 0; n < fluid.NScalars; n++ {
					ur.S[n] -= q1 * (fp.S[n] - fm.S[n])
				}

				// x2-flux gradients: (x,y,z) -> (y,z,x).
				fm, fp = &itg.x2Flux[k-1][j][i], &itg.x2Flux[k-1][j+1][i]
				ul.D -= q2 * (fp.D - fm.D)
				ul.Mx -= q2 * (fp.My - fm.My)
				ul.My -= q2 * (fp.Mz - fm.Mz)
				ul.Mz -= q2 * (fp.Mx - fm.Mx)
				ul.E -= q2 * (fp.E - fm.E)
				if mhd {
					ul.By -= q2 * 0.5 * ((itg.emf3[k-1][j+1][i] - itg.emf3[k-1][j][i]) +
						(itg.emf3[k-1][j+1][i+1] - itg.emf3[k-1][j][i+1]))
				}
				for n := 0; n < fluid.NScalars; n++ {
					ul.S[n] -= q2 * (fp.S[n] - fm.S[n])
				}

				fm, fp = &itg.x2Flux[k][j][i], &itg.x2Flux[k][j+1][i]
				ur.D -= q2 * (fp.D - fm.D)
				ur.Mx -= q2 * (fp.My - fm.My)
				ur.My -= q2 * (fp.Mz - fm.Mz)
				ur.Mz -= q2 * (fp.Mx - fm.Mx)
				ur.E -= q2 * (fp.E - fm.E)
				if mhd {
					ur.By -= q2 * 0.5 * ((itg.emf3[k][j+1][i] - itg.emf3[k][j][i]) +
						(itg.emf3[k][j+1][i+1] - itg.emf3[k][j][i+1]))
				}
				for n := 0; n < fluid.NScalars; n++ {
					ur.S[n] -= q2 * (fp.S[n] - fm.S[n])
				}
			}
		}
	}

	if !mhd {
		return
	}
	for k := ks - 1; k <= ke+2; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+1; i++ {
				db1 := (g.B1i[k-1][j][i+1] - g.B1i[k-1][j][i]) / g.Dx1
				db2 := (g.B2i[k-1][j+1][i] - g.B2i[k-1][j][i]) / g.Dx2
				db3 := (g.B3i[k][j][i] - g.B3i[k-1][j][i]) / g.Dx3
				qm := U[k-1][j][i]
				v1 := qm.M1 / qm.D
				v2 := qm.M2 / qm.D
				mdb1 := mdbLimit(db3, db1)
				mdb2 := mdbLimit(db3, db2)

				ul := &itg.ulX3[k][j][i]
				ul.My += hdt * qm.B1c * db3
				ul.Mz += hdt * qm.B2c * db3
				ul.Mx += hdt * qm.B3c * db3
				ul.By += hdt * v1 * (-mdb2)
				ul.Bz += hdt * v2 * (-mdb1)
				if !iso {
					ul.E += hdt * (qm.B1c*v1*(-mdb2) + qm.B2c*v2*(-mdb1))
				}

				db1 = (g.B1i[k][j][i+1] - g.B1i[k][j][i]) / g.Dx1
				db2 = (g.B2i[k][j+1][i] - g.B2i[k][j][i]) / g.Dx2
				db3 = (g.B3i[k+1][j][i] - g.B3i[k][j][i]) / g.Dx3
				qp := U[k][j][i]
				v1 = qp.M1 / qp.D
				v2 = qp.M2 / qp.D
				mdb1 = mdbLimit(db3, db1)
				mdb2 = mdbLimit(db3, db2)

				ur := &itg.urX3[k][j][i]
				ur.My += hdt * qp.B1c * db3
				ur.Mz += hdt * qp.B2c * db3
				ur.Mx += hdt * qp.B3c * db3
				ur.By += hdt * v1 * (-mdb2)
				ur.Bz += hdt * v2 * (-mdb1)
				if !iso {
					ur.E += hdt * (qp.B1c*v1*(-mdb2) + qp.B2c*v2*(-mdb1))
				}
			}
		}
	}
}

// etaFaces3D fills the per-face H-correction wavespeeds from the
// corrected L/R states.
func (itg *Integrator) etaFaces3D(g *grid.Grid) {
	var (
		eos    = itg.cfg.EOS
		is, ie = g.Is, g.Ie
		js, je = g.Js, g.Je
		ks, ke = g.Ks, g.Ke
	)

	for k := ks - 1; k <= ke+1; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+2; i++ {
				bx := face(itg.b1Face, k, j, i)
				cfr := eos.Cfast(itg.urX1[k][j][i], bx)
				cfl := eos.Cfast(itg.ulX1[k][j][i], bx)
				ur := itg.urX1[k][j][i].Mx / itg.urX1[k][j][i].D
				ul := itg.ulX1[k][j][i].Mx / itg.ulX1[k][j][i].D
				itg.eta1[k][j][i] = 0.5 * (abs(ur-ul) + abs(cfr-cfl))
			}
		}
	}

	for k := ks - 1; k <= ke+1; k++ {
		for j := js - 1; j <= je+2; j++ {
			for i := is - 1; i <= ie+1; i++ {
				bx := face(itg.b2Face, k, j, i)
				cfr := eos.Cfast(itg.urX2[k][j][i], bx)
				cfl := eos.Cfast(itg.ulX2[k][j][i], bx)
				ur := itg.urX2[k][j][i].Mx / itg.urX2[k][j][i].D
				ul := itg.ulX2[k][j][i].Mx / itg.ulX2[k][j][i].D
				itg.eta2[k][j][i] = 0.5 * (abs(ur-ul) + abs(cfr-cfl))
			}
		}
	}

	for k := ks - 1; k <= ke+2; k++ {
		for j := js - 1; j <= je+1; j++ {
			for i := is - 1; i <= ie+1; i++ {
				bx := face(itg.b3Face, k, j, i)
				cfr := eos.Cfast(itg.urX3[k][j][i], bx)
				cfl := eos.Cfast(itg.ulX3[k][j][i], bx)
				ur := itg.urX3[k][j][i].Mx / itg.urX3[k][j][i].D
				ul := itg.ulX3[k][j][i].Mx / itg.ulX3[k][j][i].D
				itg.eta3[k][j][i] = 0.5 * (abs(ur-ul) + abs(cfr-cfl))
			}
		}
	}
}
