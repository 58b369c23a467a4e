package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/astroflux/gomhd/bvals"
	"github.com/astroflux/gomhd/config"
	"github.com/astroflux/gomhd/fluid"
	"github.com/astroflux/gomhd/grid"
	"github.com/astroflux/gomhd/integrate"
	"github.com/astroflux/gomhd/problems"
	"github.com/astroflux/gomhd/reconstruct"
	"github.com/astroflux/gomhd/riemann"
)

// TestRunnerConservesMassAcrossRanks runs a smooth periodic problem on
// a 2x2 decomposition and checks the global mass against a serial
// reference invariant.
func TestRunnerConservesMassAcrossRanks(t *testing.T) {
	defer goleak.VerifyNone(t)

	ip := &config.InputParameters{
		Nx1: 32, Nx2: 32, Nx3: 1,
		X1Min: 0, X1Max: 1, X2Min: 0, X2Max: 1,
		Isothermal: true, IsoCsound: 1.0,
		CFL:     0.4,
		NGridX1: 2, NGridX2: 2,
		BCix1: bvals.Periodic, BCox1: bvals.Periodic,
		BCix2: bvals.Periodic, BCox2: bvals.Periodic,
		Params: map[string]float64{"amp": 1e-2},
	}
	require.NoError(t, ip.Validate())

	eos := fluid.EOS{IsoCs: 1.0, Isothermal: true}
	cfg := integrate.Config{
		EOS: eos, CourNo: ip.CFL,
		Flux:     riemann.New("hlle", eos),
		LRStates: reconstruct.New("plm"),
	}

	dom, err := New(ip)
	require.NoError(t, err)
	problems.InitDomain(dom.Grids, ip, problems.LinearWave)

	mass0 := 0.0
	for _, g := range dom.Grids {
		mass0 += g.TotalMass() * g.Dx1 * g.Dx2
	}

	r := &Runner{
		Dom: dom, Cfg: cfg,
		Flags: bvals.Flags{
			Ix1: ip.BCix1, Ox1: ip.BCox1,
			Ix2: ip.BCix2, Ox2: ip.BCox2,
		},
		FinalTime: 0.1,
	}
	require.NoError(t, r.Run())

	mass1 := 0.0
	var tEnd float64
	for _, g := range dom.Grids {
		mass1 += g.TotalMass() * g.Dx1 * g.Dx2
		tEnd = g.Time
	}
	assert.InDelta(t, mass0, mass1, 1e-12*mass0)
	assert.InDelta(t, 0.1, tEnd, 1e-12, "all ranks advance to the final time")
}

// TestRunnerStopsOnMaxSteps bounds the loop by step count.
func TestRunnerStopsOnMaxSteps(t *testing.T) {
	defer goleak.VerifyNone(t)

	ip := &config.InputParameters{
		Nx1: 16, Nx2: 16, Nx3: 1,
		X1Min: 0, X1Max: 1, X2Min: 0, X2Max: 1,
		Isothermal: true, IsoCsound: 1.0,
		CFL:   0.4,
		BCix1: bvals.Periodic, BCox1: bvals.Periodic,
		BCix2: bvals.Periodic, BCox2: bvals.Periodic,
	}
	require.NoError(t, ip.Validate())

	eos := fluid.EOS{IsoCs: 1.0, Isothermal: true}
	cfg := integrate.Config{
		EOS: eos, CourNo: ip.CFL,
		Flux:     riemann.New("hlle", eos),
		LRStates: reconstruct.New("plm"),
	}
	dom, err := New(ip)
	require.NoError(t, err)
	problems.InitDomain(dom.Grids, ip, problems.LinearWave)

	steps := 0
	r := &Runner{
		Dom: dom, Cfg: cfg,
		Flags: bvals.Flags{
			Ix1: ip.BCix1, Ox1: ip.BCox1,
			Ix2: ip.BCix2, Ox2: ip.BCox2,
		},
		FinalTime: 100.0,
		MaxSteps:  3,
		UserWork:  func(_ *grid.Grid) { steps++ },
	}
	require.NoError(t, r.Run())
	assert.Equal(t, 3, steps)
}
