/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/astroflux/gomhd/bvals"
	"github.com/astroflux/gomhd/config"
	"github.com/astroflux/gomhd/domain"
	"github.com/astroflux/gomhd/fluid"
	"github.com/astroflux/gomhd/integrate"
	"github.com/astroflux/gomhd/problems"
	"github.com/astroflux/gomhd/reconstruct"
	"github.com/astroflux/gomhd/riemann"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation described by a YAML input file",
	Long: `
Reads the input parameters, decomposes the domain, initializes the
selected problem, and advances it to the final time.

gomhd run -I input.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		inputFile, _ := cmd.Flags().GetString("inputFile")
		prof, _ := cmd.Flags().GetBool("profile")
		if len(inputFile) == 0 {
			fmt.Println("must supply an input parameters file (-I, --inputFile)")
			exampleFile := `
########################################
Title: "Field Loop Advection"
Problem: fieldloop
MHD: true
CFL: 0.4
FinalTime: 2.0
Nx1: 256
Nx2: 128
X1Min: -1.0
X1Max: 1.0
X2Min: -0.5
X2Max: 0.5
bc_ix1: 4
bc_ox1: 4
bc_ix2: 4
bc_ox2: 4
########################################
`
			fmt.Printf("Example File:%s\n", exampleFile)
			os.Exit(1)
		}
		if prof {
			defer profile.Start(profile.CPUProfile).Stop()
		}

		data, err := os.ReadFile(inputFile)
		if err != nil {
			panic(err)
		}
		ip := &config.InputParameters{}
		if err = ip.Parse(data); err != nil {
			panic(err)
		}
		ip.Print()
		RunSim(ip)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("inputFile", "I", "", "YAML file of input parameters")
	runCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
}

// RunSim builds the domain from parsed input parameters and drives it
// to the final time.
func RunSim(ip *config.InputParameters) {
	eos := fluid.EOS{
		Gamma:      ip.Gamma,
		IsoCs:      ip.IsoCsound,
		Isothermal: ip.Isothermal,
		MHD:        ip.MHD,
	}
	cfg := integrate.Config{
		EOS:         eos,
		HCorrection: ip.HCorrection,
		ShearingBox: ip.ShearingBox,
		Omega:       ip.Omega,
		CourNo:      ip.CFL,
		Flux:        riemann.New(ip.FluxType, eos),
		LRStates:    reconstruct.New(ip.Reconstruction),
	}

	dom, err := domain.New(ip)
	if err != nil {
		panic(err)
	}
	problems.InitDomain(dom.Grids, ip, problems.New(ip.Problem))

	r := &domain.Runner{
		Dom: dom,
		Cfg: cfg,
		Flags: bvals.Flags{
			Ix1: ip.BCix1, Ox1: ip.BCox1,
			Ix2: ip.BCix2, Ox2: ip.BCox2,
			Ix3: ip.BCix3, Ox3: ip.BCox3,
		},
		FinalTime: ip.FinalTime,
		MaxSteps:  ip.MaxSteps,
		Log:       logrus.New(),
	}
	if ip.ShearingBox {
		ix1, ox1 := bvals.NewShearingSheet(ip.Omega, ip.X1Max-ip.X1Min, ip.X2Max-ip.X2Min)
		r.BvalsOpts = append(r.BvalsOpts,
			bvals.WithShearingBox(ip.NGridX1, ix1, ox1))
	}
	if err := r.Run(); err != nil {
		r.Log.Fatalf("run failed: %v", err)
	}

	for _, g := range dom.Grids {
		if g.MHD() {
			fmt.Printf("final max|div B| = %8.3e\n", g.DivB())
			break
		}
	}
}
