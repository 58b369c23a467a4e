package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`
Title: "Brio-Wu"
Problem: briowu
MHD: true
Gamma: 2.0
CFL: 0.3
FinalTime: 0.1
Nx1: 400
Nx2: 4
X1Min: 0.0
X1Max: 1.0
X2Min: 0.0
X2Max: 0.01
bc_ix1: 2
bc_ox1: 2
bc_ix2: 4
bc_ox2: 4
Params:
  x0: 0.5
  bx: 0.75
`)
	ip := &InputParameters{}
	require.NoError(t, ip.Parse(data))
	assert.Equal(t, "briowu", ip.Problem)
	assert.Equal(t, 2.0, ip.Gamma)
	assert.Equal(t, 400, ip.Nx1)
	assert.Equal(t, 2, ip.BCix1)
	assert.Equal(t, 4, ip.BCox2)
	assert.Equal(t, 0.75, ip.Param("bx", 0))
	assert.Equal(t, 1.5, ip.Param("missing", 1.5))

	// Defaults applied during validation.
	assert.Equal(t, 1, ip.NGridX1)
	assert.Equal(t, "plm", ip.Reconstruction)
	assert.Equal(t, 1, ip.Nx3)
}

func TestUnknownBCRejected(t *testing.T) {
	ip := &InputParameters{
		Nx1: 8, Nx2: 8,
		BCix1: 3, BCox1: 2, BCix2: 4, BCox2: 4,
	}
	err := ip.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bc_ix1")
}

func TestMissingBCRejected(t *testing.T) {
	ip := &InputParameters{Nx1: 8, Nx2: 8, BCix1: 4, BCox1: 4, BCix2: 4}
	assert.Error(t, ip.Validate())
}

func TestShearingBoxNeeds3D(t *testing.T) {
	ip := &InputParameters{
		Nx1: 8, Nx2: 8, ShearingBox: true,
		BCix1: 4, BCox1: 4, BCix2: 4, BCox2: 4,
	}
	assert.Error(t, ip.Validate())
}
