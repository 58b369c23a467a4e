package reconstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroflux/gomhd/fluid"
)

func primRow(ds []float64) []fluid.Prim1D {
	w := make([]fluid.Prim1D, len(ds))
	for i, d := range ds {
		w[i] = fluid.Prim1D{D: d, P: 1.0}
	}
	return w
}

func TestPLMUniformStatePreserved(t *testing.T) {
	eos := fluid.EOS{Gamma: 1.4}
	n := 12
	w := primRow(make([]float64, n))
	for i := range w {
		w[i] = fluid.Prim1D{D: 2.0, Vx: 0.3, P: 1.5}
	}
	bxc := make([]float64, n)
	wl := make([]fluid.Prim1D, n)
	wr := make([]fluid.Prim1D, n)

	PLM(eos, w, bxc, 0.01, 0.1, 2, n-3, wl, wr)
	for i := 3; i <= n-3; i++ {
		assert.InDelta(t, 2.0, wl[i].D, 1e-14)
		assert.InDelta(t, 2.0, wr[i].D, 1e-14)
		assert.InDelta(t, 0.3, wl[i].Vx, 1e-14)
		assert.InDelta(t, 1.5, wr[i].P, 1e-14)
	}
}

func TestPLMInterfaceStatesBounded(t *testing.T) {
	// A monotone profile must produce interface states bounded by the
	// adjacent cell averages: the limiter admits no new extrema.
	eos := fluid.EOS{Gamma: 1.4}
	ds := []float64{1, 1, 1, 1, 2, 4, 8, 8, 8, 8, 8, 8}
	w := primRow(ds)
	bxc := make([]float64, len(ds))
	wl := make([]fluid.Prim1D, len(ds))
	wr := make([]fluid.Prim1D, len(ds))

	PLM(eos, w, bxc, 0, 0, 2, len(ds)-3, wl, wr)
	for i := 3; i <= len(ds)-3; i++ {
		lo := min(ds[i-1], ds[i])
		hi := max(ds[i-1], ds[i])
		require.GreaterOrEqual(t, wl[i].D, lo-1e-14, "wl at %d", i)
		require.LessOrEqual(t, wl[i].D, hi+1e-14, "wl at %d", i)
		require.GreaterOrEqual(t, wr[i].D, lo-1e-14, "wr at %d", i)
		require.LessOrEqual(t, wr[i].D, hi+1e-14, "wr at %d", i)
	}
}

func TestDonorCell(t *testing.T) {
	eos := fluid.EOS{Gamma: 1.4}
	ds := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	w := primRow(ds)
	bxc := make([]float64, len(ds))
	wl := make([]fluid.Prim1D, len(ds))
	wr := make([]fluid.Prim1D, len(ds))

	DonorCell(eos, w, bxc, 0, 0, 2, len(ds)-3, wl, wr)
	for i := 2; i <= len(ds)-2; i++ {
		assert.Equal(t, ds[i-1], wl[i].D)
	}
	for i := 2; i <= len(ds)-2; i++ {
		assert.Equal(t, ds[i], wr[i].D)
	}
}

func TestNewRegistry(t *testing.T) {
	assert.NotNil(t, New("plm"))
	assert.NotNil(t, New("PLM"))
	assert.Panics(t, func() { New("ppm9") })
}
