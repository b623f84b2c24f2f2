package beam

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testFlexure() Flexure {
	return Flexure{
		Width:          300,
		Height:         500,
		EffectiveDepth: 440,
		CoverComp:      60,
		Fc:             30,
		Fy:             420,
		Phi:            0.9,
		RhoMin:         1.4 / 420,
		MaxArea:        0.04 * 300 * 500,
	}
}

func TestFlexureSingly(t *testing.T) {
	r := testFlexure().Design(204)

	assert.False(t, r.RequiresCompSteel)
	assert.True(t, r.IsAdequate)
	assert.InDelta(t, 352.275, r.Mu1Max, 1e-3)
	assert.InDelta(t, 1338.29, r.AsRequired, 1e-2)
	assert.Equal(t, r.AsRequired, r.AsTension)
	assert.Zero(t, r.AscRequired)
	assert.InDelta(t, 204, r.PhiMn, 1e-6)
	assert.False(t, r.MinimumGoverns)
}

func TestFlexureSignIgnored(t *testing.T) {
	assert.Equal(t, testFlexure().Design(204), testFlexure().Design(-204))
}

func TestFlexureMinimumSteel(t *testing.T) {
	r := testFlexure().Design(10)

	assert.True(t, r.MinimumGoverns)
	assert.InDelta(t, 440, r.AsMin, 1e-9)
	assert.Equal(t, r.AsMin, r.AsTension)
	assert.Less(t, r.AsRequired, r.AsMin)
}

func TestFlexureDoubly(t *testing.T) {
	r := testFlexure().Design(544)

	assert.True(t, r.RequiresCompSteel)
	assert.True(t, r.IsAdequate)
	assert.False(t, r.CompYielded)
	assert.InDelta(t, 381.82, r.FscStress, 1e-2)
	assert.InDelta(t, 544-352.275, r.Mu2, 1e-3)
	assert.InDelta(t, 3846.38, r.AsRequired, 1e-2)
	assert.InDelta(t, 1468.23, r.AscRequired, 1e-2)
	assert.InDelta(t, 544, r.PhiMn, 1e-6)
	assert.InDelta(t, 590.88, r.PhiMnMax, 1e-2)
}

func TestFlexureDesignBeyondMaximumSteel(t *testing.T) {
	r := testFlexure().Design(1224)

	assert.True(t, r.RequiresCompSteel)
	assert.False(t, r.IsAdequate)
	assert.Greater(t, r.AsTension+r.AscRequired, 6000.0)
	assert.Less(t, r.PhiMnMax, 1224.0)
}
