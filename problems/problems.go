// Package problems holds the initial-condition generators selectable
// from the input file. Each generator fills the active zones (and, for
// MHD, the face fields including the single extra face per direction)
// of every tile; ghost zones are populated by the first boundary
// exchange.
package problems

import (
	"fmt"
	"strings"

	"github.com/astroflux/gomhd/config"
	"github.com/astroflux/gomhd/grid"
)

type InitFn func(g *grid.Grid, ip *config.InputParameters)

var Names = map[string]InitFn{
	"linearwave": LinearWave,
	"sod":        Sod,
	"briowu":     BrioWu,
	"fieldloop":  FieldLoop,
	"shockcloud": ShockCloud,
}

// New looks up a problem generator by name.
func New(label string) InitFn {
	fn, ok := Names[strings.ToLower(label)]
	if !ok {
		panic(fmt.Errorf("unable to use problem named %s", label))
	}
	return fn
}

// InitDomain applies the generator to every tile of a decomposed run.
func InitDomain(grids []*grid.Grid, ip *config.InputParameters, fn InitFn) {
	for _, g := range grids {
		fn(g, ip)
	}
}
