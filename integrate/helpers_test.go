package integrate

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/astroflux/gomhd/fluid"
	"github.com/astroflux/gomhd/reconstruct"
	"github.com/astroflux/gomhd/riemann"
)

func cfgEOSIso() fluid.EOS {
	return fluid.EOS{IsoCs: 1.0, Isothermal: true, MHD: true}
}

func mustFlux(eos fluid.EOS) riemann.Solver { return riemann.New("hlle", eos) }

func mustLR() reconstruct.LRStates { return reconstruct.New("plm") }

// orderOfAccuracy fits log(error) against log(h); the slope is the
// observed convergence order.
func orderOfAccuracy(h, e []float64) float64 {
	logh := make([]float64, len(h))
	loge := make([]float64, len(e))
	for i := range h {
		logh[i] = math.Log(h[i])
		loge[i] = math.Log(e[i])
	}
	_, slope := stat.LinearRegression(logh, loge, nil, false)
	return slope
}
