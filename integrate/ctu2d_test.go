package integrate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroflux/gomhd/bvals"
	"github.com/astroflux/gomhd/config"
	"github.com/astroflux/gomhd/fluid"
	"github.com/astroflux/gomhd/grid"
	"github.com/astroflux/gomhd/problems"
	"github.com/astroflux/gomhd/reconstruct"
	"github.com/astroflux/gomhd/riemann"
)

func hydroConfig(gamma float64) Config {
	eos := fluid.EOS{Gamma: gamma}
	return Config{
		EOS:      eos,
		CourNo:   0.4,
		Flux:     riemann.New("hlle", eos),
		LRStates: reconstruct.New("plm"),
	}
}

func mhdConfig(gamma float64) Config {
	eos := fluid.EOS{Gamma: gamma, MHD: true}
	return Config{
		EOS:      eos,
		CourNo:   0.4,
		Flux:     riemann.New("hlle", eos),
		LRStates: reconstruct.New("plm"),
	}
}

func newBvals(t *testing.T, g *grid.Grid, eos fluid.EOS, flags bvals.Flags) *bvals.Bvals {
	t.Helper()
	bv, err := bvals.New(g, eos, flags)
	require.NoError(t, err)
	return bv
}

func allPeriodic() bvals.Flags {
	return bvals.Flags{
		Ix1: bvals.Periodic, Ox1: bvals.Periodic,
		Ix2: bvals.Periodic, Ox2: bvals.Periodic,
		Ix3: bvals.Periodic, Ox3: bvals.Periodic,
	}
}

func stepN(t *testing.T, g *grid.Grid, itg *Integrator, bv *bvals.Bvals, cfg Config, n int) {
	t.Helper()
	for s := 0; s < n; s++ {
		g.Dt = NewDt(g, cfg)
		require.NoError(t, bv.Set(g))
		require.NoError(t, itg.Step(g))
		g.Time += g.Dt
	}
}

// smoothHydro2D fills a 16x16 tile with a smooth density and velocity
// perturbation.
func smoothHydro2D(g *grid.Grid, gamma float64) {
	for j := g.Js; j <= g.Je; j++ {
		for i := g.Is; i <= g.Ie; i++ {
			x1, x2, _ := g.Pos(i, j, g.Ks)
			q := &g.U[g.Ks][j][i]
			q.D = 1.0 + 0.2*math.Sin(2*math.Pi*x1)*math.Sin(2*math.Pi*x2)
			q.M1 = 0.1 * q.D * math.Cos(2*math.Pi*x2)
			q.M2 = -0.1 * q.D * math.Cos(2*math.Pi*x1)
			q.M3 = 0
			p := 1.0
			q.E = p/(gamma-1) + 0.5*(q.M1*q.M1+q.M2*q.M2)/q.D
			q.S[0] = 0.3 * q.D
		}
	}
}

func TestMassAndEnergyConservation2D(t *testing.T) {
	cfg := hydroConfig(1.4)
	g := grid.New(16, 16, 1, false)
	g.Dx1, g.Dx2 = 1.0/16, 1.0/16
	smoothHydro2D(g, 1.4)

	bv := newBvals(t, g, cfg.EOS, allPeriodic())
	itg := New(g, cfg)

	mass0 := g.TotalMass()
	e0 := g.TotalEnergy()
	stepN(t, g, itg, bv, cfg, 10)

	assert.InDelta(t, mass0, g.TotalMass(), 1e-12*mass0)
	assert.InDelta(t, e0, g.TotalEnergy(), 1e-11*e0)
}

func TestScalarConservation2D(t *testing.T) {
	cfg := hydroConfig(1.4)
	g := grid.New(16, 16, 1, false)
	g.Dx1, g.Dx2 = 1.0/16, 1.0/16
	smoothHydro2D(g, 1.4)

	s0 := 0.0
	for j := g.Js; j <= g.Je; j++ {
		for i := g.Is; i <= g.Ie; i++ {
			s0 += g.U[g.Ks][j][i].S[0]
		}
	}

	bv := newBvals(t, g, cfg.EOS, allPeriodic())
	itg := New(g, cfg)
	stepN(t, g, itg, bv, cfg, 10)

	s1 := 0.0
	for j := g.Js; j <= g.Je; j++ {
		for i := g.Is; i <= g.Ie; i++ {
			s1 += g.U[g.Ks][j][i].S[0]
		}
	}
	assert.InDelta(t, s0, s1, 1e-12*math.Abs(s0))
}

func fieldLoopInput() *config.InputParameters {
	return &config.InputParameters{
		Gamma: 5.0 / 3.0, MHD: true,
		X1Min: -1, X1Max: 1, X2Min: -0.5, X2Max: 0.5,
	}
}

func TestDivBPreserved2D(t *testing.T) {
	cfg := mhdConfig(5.0 / 3.0)
	g := grid.New(32, 16, 1, true)
	ip := fieldLoopInput()
	g.Dx1 = (ip.X1Max - ip.X1Min) / 32
	g.Dx2 = (ip.X2Max - ip.X2Min) / 16
	g.X1Min, g.X2Min = ip.X1Min, ip.X2Min
	problems.FieldLoop(g, ip)

	bv := newBvals(t, g, cfg.EOS, allPeriodic())
	itg := New(g, cfg)

	require.Less(t, g.DivB(), 1e-12*g.MaxB(), "initial field must be solenoidal")
	stepN(t, g, itg, bv, cfg, 8)
	assert.Less(t, g.DivB(), 1e-11*g.MaxB())
}

func TestCellFaceConsistency2D(t *testing.T) {
	cfg := mhdConfig(5.0 / 3.0)
	g := grid.New(32, 16, 1, true)
	ip := fieldLoopInput()
	g.Dx1 = (ip.X1Max - ip.X1Min) / 32
	g.Dx2 = (ip.X2Max - ip.X2Min) / 16
	g.X1Min, g.X2Min = ip.X1Min, ip.X2Min
	problems.FieldLoop(g, ip)

	bv := newBvals(t, g, cfg.EOS, allPeriodic())
	itg := New(g, cfg)
	stepN(t, g, itg, bv, cfg, 3)

	for j := g.Js; j <= g.Je; j++ {
		for i := g.Is; i <= g.Ie; i++ {
			q := g.U[g.Ks][j][i]
			require.Equal(t, 0.5*(g.B1i[g.Ks][j][i]+g.B1i[g.Ks][j][i+1]), q.B1c)
			require.Equal(t, 0.5*(g.B2i[g.Ks][j][i]+g.B2i[g.Ks][j+1][i]), q.B2c)
		}
	}
}

func TestMirrorSymmetryReflecting(t *testing.T) {
	cfg := hydroConfig(1.4)
	g := grid.New(32, 8, 1, false)
	g.Dx1, g.Dx2 = 1.0/32, 1.0/8
	for j := g.Js; j <= g.Je; j++ {
		for i := g.Is; i <= g.Ie; i++ {
			x1, _, _ := g.Pos(i, j, g.Ks)
			q := &g.U[g.Ks][j][i]
			q.D = 1.0 + math.Exp(-100*(x1-0.5)*(x1-0.5))
			p := 1.0 + q.D
			q.E = p / 0.4
		}
	}

	flags := allPeriodic()
	flags.Ix1, flags.Ox1 = bvals.ReflectZeroB, bvals.ReflectZeroB
	bv := newBvals(t, g, cfg.EOS, flags)
	itg := New(g, cfg)
	stepN(t, g, itg, bv, cfg, 5)

	for j := g.Js; j <= g.Je; j++ {
		for i := g.Is; i <= g.Ie; i++ {
			im := g.Is + g.Ie - i
			q, qm := g.U[g.Ks][j][i], g.U[g.Ks][j][im]
			require.InDelta(t, q.D, qm.D, 1e-12, "density mirror at i=%d", i)
			require.InDelta(t, q.M1, -qm.M1, 1e-12, "momentum mirror at i=%d", i)
		}
	}
}

func TestSodShockTube(t *testing.T) {
	cfg := hydroConfig(1.4)
	g := grid.New(400, 4, 1, false)
	g.Dx1, g.Dx2 = 1.0/400, 1.0/4
	ip := &config.InputParameters{Gamma: 1.4, X1Min: 0, X1Max: 1, X2Min: 0, X2Max: 1}
	problems.Sod(g, ip)

	flags := allPeriodic()
	flags.Ix1, flags.Ox1 = bvals.Outflow, bvals.Outflow
	bv := newBvals(t, g, cfg.EOS, flags)
	itg := New(g, cfg)

	tEnd := 0.25
	for g.Time < tEnd {
		g.Dt = NewDt(g, cfg)
		if g.Time+g.Dt > tEnd {
			g.Dt = tEnd - g.Time
		}
		require.NoError(t, bv.Set(g))
		require.NoError(t, itg.Step(g))
		g.Time += g.Dt
	}

	// Positivity over the whole tube.
	for i := g.Is; i <= g.Ie; i++ {
		q := g.U[g.Ks][g.Js][i]
		require.Greater(t, q.D, 0.0)
		require.Greater(t, cfg.EOS.Pressure(q), 0.0)
	}

	// The shock front: last cell with post-shock density.
	xShock := 0.0
	for i := g.Is; i <= g.Ie; i++ {
		if g.U[g.Ks][g.Js][i].D > 0.2 {
			x1, _, _ := g.Pos(i, g.Js, g.Ks)
			xShock = x1
		}
	}
	want := problems.SodShockPosition(tEnd)
	assert.InDelta(t, want, xShock, 0.02, "shock position")
}

func TestHCorrectionStaysMonotone(t *testing.T) {
	cfg := hydroConfig(1.4)
	cfg.HCorrection = true
	g := grid.New(128, 4, 1, false)
	g.Dx1, g.Dx2 = 1.0/128, 1.0/4
	ip := &config.InputParameters{Gamma: 1.4, X1Min: 0, X1Max: 1, X2Min: 0, X2Max: 1}
	problems.Sod(g, ip)

	flags := allPeriodic()
	flags.Ix1, flags.Ox1 = bvals.Outflow, bvals.Outflow
	bv := newBvals(t, g, cfg.EOS, flags)
	itg := New(g, cfg)

	for g.Time < 0.2 {
		g.Dt = NewDt(g, cfg)
		require.NoError(t, bv.Set(g))
		require.NoError(t, itg.Step(g))
		g.Time += g.Dt
	}
	for i := g.Is; i <= g.Ie; i++ {
		q := g.U[g.Ks][g.Js][i]
		require.Greater(t, q.D, 0.0)
		require.Less(t, q.D, 1.05)
	}
}

func TestBadStateSurfaced(t *testing.T) {
	cfg := hydroConfig(1.4)
	g := grid.New(16, 16, 1, false)
	g.Dx1, g.Dx2 = 1.0/16, 1.0/16
	smoothHydro2D(g, 1.4)
	g.U[g.Ks][g.Js+3][g.Is+5].D = -0.1

	bv := newBvals(t, g, cfg.EOS, allPeriodic())
	itg := New(g, cfg)
	g.Dt = 1e-3
	require.NoError(t, bv.Set(g))

	err := itg.Step(g)
	require.Error(t, err)
	var bad *BadStateError
	require.True(t, errors.As(err, &bad))
	assert.NotEmpty(t, bad.Sweep)
}

func TestNewDt(t *testing.T) {
	cfg := hydroConfig(1.4)
	g := grid.New(8, 8, 1, false)
	g.Dx1, g.Dx2 = 0.1, 0.1
	for j := g.Js; j <= g.Je; j++ {
		for i := g.Is; i <= g.Ie; i++ {
			g.U[g.Ks][j][i] = fluid.Gas{D: 1.0, E: 1.0 / 0.4}
		}
	}
	dt := NewDt(g, cfg)
	want := 0.4 * 0.1 / math.Sqrt(1.4)
	assert.InDelta(t, want, dt, 1e-12)
}

func TestLinearWaveConvergence(t *testing.T) {
	l1 := func(nx int) float64 {
		eos := fluid.EOS{IsoCs: 1.0, Isothermal: true}
		cfg := Config{
			EOS: eos, CourNo: 0.4,
			Flux:     riemann.New("hlle", eos),
			LRStates: reconstruct.New("plm"),
		}
		g := grid.New(nx, 4, 1, false)
		g.Dx1, g.Dx2 = 1.0/float64(nx), 1.0/4
		ip := &config.InputParameters{
			IsoCsound: 1.0, Isothermal: true,
			X1Min: 0, X1Max: 1, X2Min: 0, X2Max: 1,
			Params: map[string]float64{"amp": 1e-4},
		}
		problems.LinearWave(g, ip)

		init := make([]float64, nx)
		for i := g.Is; i <= g.Ie; i++ {
			init[i-g.Is] = g.U[g.Ks][g.Js][i].D
		}

		bv, err := bvals.New(g, eos, allPeriodic())
		require.NoError(t, err)
		itg := New(g, cfg)
		tEnd := 1.0 // one crossing at cs = 1
		for g.Time < tEnd {
			g.Dt = NewDt(g, cfg)
			if g.Time+g.Dt > tEnd {
				g.Dt = tEnd - g.Time
			}
			require.NoError(t, bv.Set(g))
			require.NoError(t, itg.Step(g))
			g.Time += g.Dt
		}

		sum := 0.0
		for i := g.Is; i <= g.Ie; i++ {
			sum += math.Abs(g.U[g.Ks][g.Js][i].D - init[i-g.Is])
		}
		return sum / float64(nx)
	}

	err16 := l1(16)
	err32 := l1(32)
	err64 := l1(64)

	order := orderOfAccuracy([]float64{1.0 / 16, 1.0 / 32, 1.0 / 64},
		[]float64{err16, err32, err64})
	assert.Greater(t, order, 1.3, "errors %g %g %g", err16, err32, err64)
	assert.Less(t, err64, 5e-5)
}
