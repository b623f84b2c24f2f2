package beam

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
		Moment:         150,
		Shear:          120,
		Span:           6000,
		Width:          300,
		Height:         500,
		CoverThickness: 40,
		Support:        Simple,
		ConcreteGrade:  "C30",
		SteelGrade:     "420",
		LiveLoadRatio:  0.4,
	}
}

func details(t *testing.T, r *design.Result) *Details {
	t.Helper()
	d, ok := r.Details.(*Details)
	require.True(t, ok)
	return d
}

func TestSelectionLeavesAnalysisUntouched(t *testing.T) {
	p, err := code.Resolve(code.ACI)
	require.NoError(t, err)
	in := scenario()
	c := Calculator{}

	a := c.AnalyzeSection(in, p, c.CombineLoads(in, p))
	before, ok := a.Details.(*Details)
	require.True(t, ok)
	s := c.SelectReinforcement(in, p, a)

	assert.Zero(t, before.StrainT)
	after, ok := s.Details.(*Details)
	require.True(t, ok)
	assert.Greater(t, after.StrainT, 0.005)
	assert.Equal(t, before.Flexure, after.Flexure)
}

func TestDesignScenarioACI(t *testing.T) {
	r, err := Design(code.ACI, scenario())
	require.NoError(t, err)

	assert.True(t, r.Pass)
	assert.Equal(t, design.Beam, r.Member)
	assert.Equal(t, "1.2D + 1.6L + 1.6H", r.Combination)
	assert.InDelta(t, 204, r.Demand["moment"], 1e-9)
	assert.InDelta(t, 163.2, r.Demand["shear"], 1e-9)
	assert.InDelta(t, 440, r.Geometry.EffectiveDepth, 1e-9)

	require.Len(t, r.Reinforcement, 3)
	tension, hangers, stirrups := r.Reinforcement[0], r.Reinforcement[1], r.Reinforcement[2]
	assert.Equal(t, "bottom", tension.Zone)
	assert.Equal(t, "7-16mm in 2 rows", tension.String())
	require.Len(t, tension.Layout, 7)
	assert.InDelta(t, 58, tension.Layout[0].Y, 1e-9)
	assert.InDelta(t, 99, tension.Layout[6].Y, 1e-9)
	assert.Equal(t, "top", hangers.Zone)
	assert.Equal(t, "2-12mm", hangers.String())
	assert.InDelta(t, 500-56, hangers.Layout[0].Y, 1e-9)
	assert.Equal(t, "2-leg 10mm @ 200 mm", stirrups.String())

	assert.InDelta(t, 1407.42+226.2, r.ProvidedArea, 1e-6)
	assert.GreaterOrEqual(t, r.ProvidedArea, r.RequiredArea())
	assert.InDelta(t, 0.3452, r.Utilization["flexure"], 1e-4)
	assert.InDelta(t, 0.3626, r.Utilization["shear"], 1e-4)
	assert.InDelta(t, 0.75, r.Utilization["deflection"], 1e-9)

	layout, ok := r.Check("layout")
	require.True(t, ok)
	assert.True(t, layout.Pass)

	d := details(t, r)
	assert.Equal(t, "bottom", d.TensionFace)
	assert.InDelta(t, 94.69, d.Shear.VsRequired, 1e-2)
	assert.Greater(t, d.StrainT, 0.005)
	assert.True(t, r.HasWarning(design.WarnStirrups))
	assert.False(t, r.HasWarning(design.WarnDoublyReinforced))
	assert.False(t, r.HasWarning(design.WarnTransitionSection))
}

func TestDesignScenarioCSA(t *testing.T) {
	aci, err := Design(code.ACI, scenario())
	require.NoError(t, err)
	csa, err := Design(code.CSA, scenario())
	require.NoError(t, err)

	assert.True(t, csa.Pass)
	assert.Equal(t, "9-16mm in 2 rows", csa.Reinforcement[0].String())
	assert.Equal(t, "2-leg 10mm @ 150 mm", csa.Reinforcement[2].String())
	assert.Greater(t, csa.RequiredArea(), aci.RequiredArea())
	assert.Greater(t, csa.ProvidedArea, aci.ProvidedArea)
	assert.True(t, csa.HasWarning(design.WarnCodeConservatism))
}

func TestCSANeverNeedsLessSteel(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Input)
	}{
		{"scenario", func(*Input) {}},
		{"minimum steel", func(in *Input) { in.Moment, in.Shear, in.Span = 10, 5, 3000 }},
		{"hogging", func(in *Input) {
			in.Moment, in.Shear, in.Span, in.Width, in.Height, in.Support = -40, 30, 4000, 250, 400, BothEnds
		}},
		{"doubly", func(in *Input) { in.Moment, in.Width, in.Height = 600, 400, 600 }},
		{"all dead", func(in *Input) { in.LiveLoadRatio = 0 }},
		{"all live", func(in *Input) { in.LiveLoadRatio = 1 }},
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

func TestDoublyReinforced(t *testing.T) {
	in := scenario()
	in.Moment, in.Shear, in.Width, in.Height = 600, 150, 400, 600

	r, err := Design(code.ACI, in)
	require.NoError(t, err)

	assert.True(t, r.Pass)
	assert.True(t, r.HasWarning(design.WarnDoublyReinforced))
	assert.True(t, r.HasWarning(design.WarnTransitionSection))

	d := details(t, r)
	assert.True(t, d.Flexure.RequiresCompSteel)
	assert.Less(t, d.StrainT, 0.005)

	require.Len(t, r.Reinforcement, 3)
	assert.Equal(t, "11-25mm in 2 rows", r.Reinforcement[0].String())
	assert.Equal(t, "3-16mm", r.Reinforcement[1].String())
	assert.GreaterOrEqual(t, r.Reinforcement[1].Area, d.Flexure.AscRequired)
}

func TestHoggingMovesTensionToTop(t *testing.T) {
	in := scenario()
	in.Moment, in.Shear, in.Span, in.Width, in.Height, in.Support = -40, 30, 4000, 250, 400, BothEnds

	r, err := Design(code.ACI, in)
	require.NoError(t, err)

	assert.True(t, r.Pass)
	assert.InDelta(t, -54.4, r.Demand["moment"], 1e-9)
	assert.Equal(t, "top", r.Requirements[0].Zone)
	assert.Equal(t, "bottom", r.Requirements[1].Zone)

	tension := r.Reinforcement[0]
	assert.Equal(t, "4-12mm", tension.String())
	for _, p := range tension.Layout {
		assert.InDelta(t, 400-56, p.Y, 1e-9)
	}
	assert.InDelta(t, 56, r.Reinforcement[1].Layout[0].Y, 1e-9)
	assert.False(t, r.HasWarning(design.WarnStirrups))
}

func TestMinimumSteelGoverns(t *testing.T) {
	in := scenario()
	in.Moment = 10

	r, err := Design(code.ACI, in)
	require.NoError(t, err)

	assert.True(t, r.Pass)
	assert.True(t, r.HasWarning(design.WarnMinimumSteel))
	assert.InDelta(t, r.Requirements[0].Minimum, r.Requirements[0].Required, 1e-9)
}

func TestFlexureBeyondMaximumSteel(t *testing.T) {
	in := scenario()
	in.Moment, in.Shear = 900, 200

	r, err := Design(code.ACI, in)
	require.NoError(t, err)

	assert.False(t, r.Pass)
	assert.Equal(t, design.ReinforcementRatio, r.FailureReason)
	assert.Greater(t, r.Utilization["flexure"], 1.0)
	assert.True(t, r.HasWarning(design.WarnLayout))
}

func TestShearOverstress(t *testing.T) {
	in := scenario()
	in.Shear = 500

	r, err := Design(code.ACI, in)
	require.NoError(t, err)

	assert.False(t, r.Pass)
	assert.Equal(t, design.Overstress, r.FailureReason)
	shear, ok := r.Check("shear")
	require.True(t, ok)
	assert.False(t, shear.Pass)
	assert.Equal(t, design.Overstress, shear.Reason)
}

func TestDeflectionDepth(t *testing.T) {
	tests := []struct {
		support Support
		span    float64
		pass    bool
	}{
		{Simple, 8000, true},
		{Simple, 8500, false},
		{OneEnd, 9000, true},
		{BothEnds, 10000, true},
		{Cantilever, 4000, true},
		{Cantilever, 4500, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.support), func(t *testing.T) {
			in := scenario()
			in.Moment, in.Shear = 50, 40
			in.Support, in.Span = tt.support, tt.span
			r, err := Design(code.ACI, in)
			require.NoError(t, err)
			c, ok := r.Check("deflection")
			require.True(t, ok)
			assert.Equal(t, tt.pass, c.Pass)
			if !tt.pass {
				assert.Equal(t, design.Overstress, r.FailureReason)
			}
		})
	}
}

func TestCoverRaisedToMinimum(t *testing.T) {
	in := scenario()
	in.CoverThickness = 20

	r, err := Design(code.ACI, in)
	require.NoError(t, err)
	assert.True(t, r.HasWarning(design.WarnCoverRaised))
	assert.InDelta(t, 40, r.Geometry.Cover, 1e-9)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Input)
		field string
		kind  validate.Kind
	}{
		{"zero moment", func(in *Input) { in.Moment = 0 }, "moment", validate.KindMissing},
		{"zero width", func(in *Input) { in.Width = 0 }, "width", validate.KindMissing},
		{"negative height", func(in *Input) { in.Height = -500 }, "height", validate.KindSign},
		{"negative shear", func(in *Input) { in.Shear = -1 }, "shear", validate.KindSign},
		{"short span", func(in *Input) { in.Span = 100 }, "span", validate.KindRange},
		{"unknown support", func(in *Input) { in.Support = "fixed" }, "support", validate.KindNotAllowed},
		{"cover fills width", func(in *Input) { in.Width, in.CoverThickness = 160, 50 }, "coverThickness", validate.KindInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := scenario()
			tt.edit(&in)
			_, err := Design(code.ACI, in)
			var errs validate.Errors
			require.ErrorAs(t, err, &errs)
			require.Equal(t, []string{tt.field}, errs.Fields())
			assert.Equal(t, tt.kind, errs[0].Kind)
		})
	}
}

func TestSupportIsCaseInsensitive(t *testing.T) {
	in := scenario()
	in.Support = "Both-Ends"
	r, err := Design(code.ACI, in)
	require.NoError(t, err)
	d := details(t, r)
	assert.InDelta(t, 21, d.Deflection.Divisor, 1e-9)
}

func TestIdempotent(t *testing.T) {
	a, err := Design(code.CSA, scenario())
	require.NoError(t, err)
	b, err := Design(code.CSA, scenario())
	require.NoError(t, err)

	ja, err := a.JSON()
	require.NoError(t, err)
	jb, err := b.JSON()
	require.NoError(t, err)
	assert.Equal(t, string(ja), string(jb))
}
