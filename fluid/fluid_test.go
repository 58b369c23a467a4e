package fluid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversionRoundTrip(t *testing.T) {
	eos := EOS{Gamma: 5.0 / 3.0, MHD: true}
	u := Cons1D{D: 1.3, Mx: 0.4, My: -0.2, Mz: 0.1, By: 0.5, Bz: -0.3}
	u.S[0] = 0.13
	bx := 0.7
	u.E = 2.0/(eos.Gamma-1.0) + 0.5*(u.Mx*u.Mx+u.My*u.My+u.Mz*u.Mz)/u.D +
		0.5*(bx*bx+u.By*u.By+u.Bz*u.Bz)

	w := eos.Cons1DToPrim1D(u, bx)
	assert.InDelta(t, 2.0, w.P, 1e-14)
	assert.InDelta(t, u.Mx/u.D, w.Vx, 1e-14)
	assert.InDelta(t, u.S[0]/u.D, w.R[0], 1e-14)

	u2 := eos.Prim1DToCons1D(w, bx)
	assert.InDelta(t, u.D, u2.D, 1e-14)
	assert.InDelta(t, u.Mx, u2.Mx, 1e-14)
	assert.InDelta(t, u.E, u2.E, 1e-13)
	assert.InDelta(t, u.By, u2.By, 1e-14)
	assert.InDelta(t, u.S[0], u2.S[0], 1e-14)
}

func TestIsothermalPressure(t *testing.T) {
	eos := EOS{IsoCs: 2.0, Isothermal: true}
	u := Cons1D{D: 3.0, Mx: 1.0}
	w := eos.Cons1DToPrim1D(u, 0)
	assert.InDelta(t, 12.0, w.P, 1e-14)

	// E never enters the isothermal state vector.
	u2 := eos.Prim1DToCons1D(w, 0)
	assert.Zero(t, u2.E)
}

func TestCfastHydroIsSoundSpeed(t *testing.T) {
	eos := EOS{Gamma: 1.4}
	d, p := 1.0, 1.0
	u := Cons1D{D: d, E: p / (eos.Gamma - 1.0)}
	cf := eos.Cfast(u, 0)
	require.InDelta(t, math.Sqrt(eos.Gamma*p/d), cf, 1e-12)
}

func TestCfastMHDBounds(t *testing.T) {
	eos := EOS{Gamma: 5.0 / 3.0, MHD: true}
	bx := 1.0
	u := Cons1D{D: 1.0, By: 0.5, Bz: 0.0}
	u.E = 1.0/(eos.Gamma-1.0) + 0.5*(bx*bx+u.By*u.By)
	cf := eos.Cfast(u, bx)

	// The fast speed is at least the Alfven speed and at least the
	// sound speed.
	va := math.Abs(bx) / math.Sqrt(u.D)
	cs := math.Sqrt(eos.Gamma * 1.0 / u.D)
	assert.GreaterOrEqual(t, cf, va-1e-12)
	assert.GreaterOrEqual(t, cf, cs-1e-12)
}
