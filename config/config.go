// Package config holds the YAML input-parameter surface of the solver.
package config

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// InputParameters obtained from the YAML input file.
type InputParameters struct {
	Title     string  `json:"Title"`
	Problem   string  `json:"Problem"`
	CFL       float64 `json:"CFL"`
	FinalTime float64 `json:"FinalTime"`
	MaxSteps  int     `json:"MaxSteps"`

	Nx1 int `json:"Nx1"`
	Nx2 int `json:"Nx2"`
	Nx3 int `json:"Nx3"`

	X1Min float64 `json:"X1Min"`
	X1Max float64 `json:"X1Max"`
	X2Min float64 `json:"X2Min"`
	X2Max float64 `json:"X2Max"`
	X3Min float64 `json:"X3Min"`
	X3Max float64 `json:"X3Max"`

	Gamma      float64 `json:"Gamma"`
	IsoCsound  float64 `json:"IsoCsound"`
	Isothermal bool    `json:"Isothermal"`
	MHD        bool    `json:"MHD"`

	FluxType       string `json:"FluxType"`
	Reconstruction string `json:"Reconstruction"`
	HCorrection    bool   `json:"HCorrection"`

	ShearingBox bool    `json:"ShearingBox"`
	Omega       float64 `json:"Omega"`

	NGridX1 int `json:"NGridX1"`
	NGridX2 int `json:"NGridX2"`
	NGridX3 int `json:"NGridX3"`

	// Boundary condition flags: 1 = reflecting (B_normal = 0),
	// 2 = outflow, 4 = periodic, 5 = reflecting (B_normal != 0).
	BCix1 int `json:"bc_ix1"`
	BCox1 int `json:"bc_ox1"`
	BCix2 int `json:"bc_ix2"`
	BCox2 int `json:"bc_ox2"`
	BCix3 int `json:"bc_ix3"`
	BCox3 int `json:"bc_ox3"`

	// Problem-specific parameters, keyed by name.
	Params map[string]float64 `json:"Params"`
}

func (ip *InputParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	return ip.Validate()
}

// Validate applies the defaults and rejects unusable combinations.
func (ip *InputParameters) Validate() error {
	if ip.CFL <= 0 {
		ip.CFL = 0.4
	}
	if ip.Gamma == 0 {
		ip.Gamma = 5.0 / 3.0
	}
	if ip.IsoCsound == 0 {
		ip.IsoCsound = 1.0
	}
	if ip.FluxType == "" {
		ip.FluxType = "hlle"
	}
	if ip.Reconstruction == "" {
		ip.Reconstruction = "plm"
	}
	if ip.NGridX1 == 0 {
		ip.NGridX1 = 1
	}
	if ip.NGridX2 == 0 {
		ip.NGridX2 = 1
	}
	if ip.NGridX3 == 0 {
		ip.NGridX3 = 1
	}
	if ip.Nx3 == 0 {
		ip.Nx3 = 1
	}
	if ip.Nx1 <= 1 || ip.Nx2 <= 1 {
		return fmt.Errorf("config: need Nx1 > 1 and Nx2 > 1, have (%d,%d)", ip.Nx1, ip.Nx2)
	}
	for _, bc := range []struct {
		name string
		flag int
	}{
		{"bc_ix1", ip.BCix1}, {"bc_ox1", ip.BCox1},
		{"bc_ix2", ip.BCix2}, {"bc_ox2", ip.BCox2},
		{"bc_ix3", ip.BCix3}, {"bc_ox3", ip.BCox3},
	} {
		switch bc.flag {
		case 1, 2, 4, 5:
		case 0:
			if (bc.name == "bc_ix3" || bc.name == "bc_ox3") && ip.Nx3 == 1 {
				continue
			}
			return fmt.Errorf("config: %s is required", bc.name)
		default:
			return fmt.Errorf("config: %s = %d unknown", bc.name, bc.flag)
		}
	}
	if ip.ShearingBox && ip.Nx3 == 1 {
		return fmt.Errorf("config: shearing box requires Nx3 > 1")
	}
	return nil
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t\t= Problem\n", ip.Problem)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("[%s]\t\t\t= Flux Type\n", ip.FluxType)
	fmt.Printf("[%s]\t\t\t= Reconstruction\n", ip.Reconstruction)
	fmt.Printf("[%d x %d x %d]\t\t= Zones\n", ip.Nx1, ip.Nx2, ip.Nx3)
	fmt.Printf("[%d x %d x %d]\t\t= Decomposition\n", ip.NGridX1, ip.NGridX2, ip.NGridX3)
	fmt.Printf("BCs x1[%d,%d] x2[%d,%d] x3[%d,%d]\n",
		ip.BCix1, ip.BCox1, ip.BCix2, ip.BCox2, ip.BCix3, ip.BCox3)
	keys := make([]string, 0, len(ip.Params))
	for k := range ip.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Params[%s] = %v\n", key, ip.Params[key])
	}
}

// Param returns a problem parameter or its default.
func (ip *InputParameters) Param(name string, def float64) float64 {
	if v, ok := ip.Params[name]; ok {
		return v
	}
	return def
}
