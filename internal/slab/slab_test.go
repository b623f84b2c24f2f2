package slab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/design"
	"github.com/alexiusacademia/gorcd/internal/validate"
)

func scenario() Input {
	return Input{
		Span:           5000,
		Thickness:      200,
		DeadLoad:       2,
		LiveLoad:       5,
		CoverThickness: 20,
		Support:        BothEnds,
		ConcreteGrade:  "C30",
		SteelGrade:     "420",
	}
}

func TestDesignScenarioACI(t *testing.T) {
	r, err := Design(code.ACI, scenario())
	require.NoError(t, err)

	assert.True(t, r.Pass)
	assert.Equal(t, design.Slab, r.Member)
	assert.Equal(t, "1.2D + 1.6L + 1.6H", r.Combination)
	assert.InDelta(t, (1.2*6.8+1.6*5)*25/11, r.Demand["moment"], 1e-9)
	assert.InDelta(t, (1.2*6.8+1.6*5)*5*0.5, r.Demand["shear"], 1e-9)
	assert.InDelta(t, 174, r.Geometry.EffectiveDepth, 1e-9)

	require.Len(t, r.Reinforcement, 2)
	assert.Equal(t, "10mm @ 125 mm", r.Reinforcement[0].String())
	assert.Equal(t, "12mm @ 300 mm", r.Reinforcement[1].String())
	assert.True(t, r.Reinforcement[0].PerMetre)

	assert.InDelta(t, 0.2000, r.Utilization["flexure"], 1e-4)
	assert.InDelta(t, 0.3325, r.Utilization["shear"], 1e-4)
	assert.InDelta(t, 0.8929, r.Utilization["thickness"], 1e-4)

	d, ok := r.Details.(*Details)
	require.True(t, ok)
	assert.InDelta(t, 4.8, d.SelfWeight, 1e-9)
	assert.InDelta(t, 1.0/11, d.Coefficients.Moment, 1e-12)
}

func TestDesignScenarioCSA(t *testing.T) {
	aci, err := Design(code.ACI, scenario())
	require.NoError(t, err)
	csa, err := Design(code.CSA, scenario())
	require.NoError(t, err)

	assert.True(t, csa.Pass)
	assert.Equal(t, "16mm @ 275 mm", csa.Reinforcement[0].String())
	assert.Equal(t, "12mm @ 275 mm", csa.Reinforcement[1].String())
	assert.Greater(t, csa.RequiredArea(), aci.RequiredArea())
	assert.True(t, csa.HasWarning(design.WarnCodeConservatism))
}

func TestCSANeverNeedsLessSteel(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Input)
	}{
		{"scenario", func(*Input) {}},
		{"simple", func(in *Input) { in.Support, in.Span, in.Thickness = Simple, 4000, 150 }},
		{"cantilever", func(in *Input) { in.Support, in.Span, in.Thickness = Cantilever, 1500, 150 }},
		{"self weight only", func(in *Input) { in.DeadLoad, in.LiveLoad = 0, 0 }},
		{"heavy", func(in *Input) { in.LiveLoad = 20 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := scenario()
			tt.edit(&in)
			aci, err := Design(code.ACI, in)
			require.NoError(t, err)
			csa, err := Design(code.CSA, in)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, csa.RequiredArea(), aci.RequiredArea())
		})
	}
}

func TestSelfWeightOnly(t *testing.T) {
	in := scenario()
	in.Support, in.Span, in.Thickness = Simple, 3000, 150
	in.DeadLoad, in.LiveLoad = 0, 0

	r, err := Design(code.ACI, in)
	require.NoError(t, err)
	assert.Equal(t, "1.4D", r.Combination)
	assert.InDelta(t, 1.4*3.6*9/8, r.Demand["moment"], 1e-9)
	assert.True(t, r.HasWarning(design.WarnMinimumSteel))
	assert.InDelta(t, 270, r.Requirements[0].Required, 1e-9)
}

func TestThinSlabFailsThickness(t *testing.T) {
	in := scenario()
	in.Support, in.Span, in.Thickness = Simple, 4000, 150

	r, err := Design(code.ACI, in)
	require.NoError(t, err)
	assert.False(t, r.Pass)
	assert.Equal(t, design.Overstress, r.FailureReason)
	assert.InDelta(t, 4.0/3, r.Utilization["thickness"], 1e-9)
}

func TestOverReinforcedFlexure(t *testing.T) {
	in := scenario()
	in.Support, in.Span, in.Thickness, in.LiveLoad = Simple, 6000, 150, 20

	r, err := Design(code.ACI, in)
	require.NoError(t, err)
	c, ok := r.Check("flexure")
	require.True(t, ok)
	assert.False(t, c.Pass)
	assert.Equal(t, design.ReinforcementRatio, c.Reason)
	assert.False(t, r.Pass)
}

func TestCoverRaised(t *testing.T) {
	in := scenario()
	in.CoverThickness = 10

	r, err := Design(code.ACI, in)
	require.NoError(t, err)
	assert.True(t, r.HasWarning(design.WarnCoverRaised))
	assert.InDelta(t, 20, r.Geometry.Cover, 1e-9)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Input)
		field string
	}{
		{"zero span", func(in *Input) { in.Span = 0 }, "span"},
		{"zero thickness", func(in *Input) { in.Thickness = 0 }, "thickness"},
		{"negative live", func(in *Input) { in.LiveLoad = -1 }, "liveLoad"},
		{"bad support", func(in *Input) { in.Support = "fixed" }, "support"},
		{"cover too deep", func(in *Input) { in.Thickness, in.CoverThickness = 100, 45 }, "coverThickness"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := scenario()
			tt.edit(&in)
			_, err := Design(code.ACI, in)
			var errs validate.Errors
			require.ErrorAs(t, err, &errs)
			assert.Equal(t, []string{tt.field}, errs.Fields())
		})
	}
}
