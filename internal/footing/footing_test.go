package footing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/design"
	"github.com/alexiusacademia/gorcd/internal/validate"
)

func scenario() Input {
	return Input{
		AxialLoad:        1200,
		Moment:           100,
		ColumnWidth:      400,
		ColumnDepth:      500,
		FootingWidth:     2400,
		FootingLength:    2800,
		Thickness:        650,
		AllowableBearing: 250,
		CoverThickness:   75,
		ConcreteGrade:    "C25",
		SteelGrade:       "420",
		LiveLoadRatio:    0.4,
	}
}

func details(t *testing.T, r *design.Result) *Details {
	t.Helper()
	d, ok := r.Details.(*Details)
	require.True(t, ok)
	return d
}

func TestDesignScenarioACI(t *testing.T) {
	r, err := Design(code.ACI, scenario())
	require.NoError(t, err)

	assert.True(t, r.Pass)
	assert.Equal(t, design.Footing, r.Member)
	assert.InDelta(t, 1632, r.Demand["axial"], 1e-9)
	assert.InDelta(t, 559, r.Geometry.EffectiveDepth, 1e-9)

	d := details(t, r)
	assert.InDelta(t, 104.832, d.Bearing.SelfWeight, 1e-9)
	assert.InDelta(t, 226.059, d.Bearing.QMax, 1e-3)
	assert.False(t, d.Bearing.Partial)
	assert.InDelta(t, 286.224, d.Pressure, 1e-3)
	assert.InDelta(t, 4036, d.Punching.Perimeter, 1e-9)

	assert.InDelta(t, 0.9042, r.Utilization["bearing"], 1e-4)
	assert.InDelta(t, 0.5848, r.Utilization["punching"], 1e-4)
	assert.InDelta(t, 0.4747, r.Utilization["shear long"], 1e-4)
	assert.InDelta(t, 0.3542, r.Utilization["shear short"], 1e-4)

	require.Len(t, r.Reinforcement, 2)
	assert.Equal(t, "long", r.Reinforcement[0].Zone)
	assert.Equal(t, "14-16mm", r.Reinforcement[0].String())
	assert.Equal(t, "short", r.Reinforcement[1].Zone)
	assert.Equal(t, "17-16mm", r.Reinforcement[1].String())
	for _, g := range r.Reinforcement {
		assert.LessOrEqual(t, g.Spacing, 450.0)
	}
	assert.True(t, r.HasWarning(design.WarnMinimumSteel))
}

func TestDesignScenarioCSA(t *testing.T) {
	aci, err := Design(code.ACI, scenario())
	require.NoError(t, err)
	csa, err := Design(code.CSA, scenario())
	require.NoError(t, err)

	assert.True(t, csa.Pass)
	assert.Equal(t, "10-20mm", csa.Reinforcement[0].String())
	assert.Equal(t, "12-20mm", csa.Reinforcement[1].String())
	assert.InDelta(t, 0.7880, csa.Utilization["punching"], 1e-4)
	assert.Greater(t, csa.RequiredArea(), aci.RequiredArea())
}

func TestCSANeverNeedsLessSteel(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Input)
	}{
		{"scenario", func(*Input) {}},
		{"concentric", func(in *Input) { in.Moment = 0 }},
		{"square", func(in *Input) { in.FootingWidth, in.FootingLength, in.ColumnDepth = 2500, 2500, 400 }},
		{"heavy", func(in *Input) { in.AxialLoad, in.Thickness = 3000, 900 }},
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

func TestPartialContact(t *testing.T) {
	in := scenario()
	in.AxialLoad, in.Moment, in.LiveLoadRatio = 600, 300, 0
	in.ColumnWidth, in.ColumnDepth = 400, 400
	in.FootingWidth, in.FootingLength, in.Thickness, in.AllowableBearing = 2000, 2000, 500, 300

	r, err := Design(code.ACI, in)
	require.NoError(t, err)

	assert.True(t, r.HasWarning(design.WarnPartialContact))
	assert.False(t, r.Pass)
	assert.Equal(t, design.Overstress, r.FailureReason)
	assert.InDelta(t, 402.2069/300, r.Utilization["bearing"], 1e-4)
	assert.True(t, details(t, r).Bearing.Partial)
}

func TestOverturnedBase(t *testing.T) {
	in := scenario()
	in.AxialLoad, in.Moment = 200, 2000

	r, err := Design(code.ACI, in)
	require.NoError(t, err)

	assert.False(t, r.Pass)
	assert.Equal(t, design.Overstress, r.FailureReason)
	assert.Equal(t, design.MaxUtilization, r.Utilization["bearing"])
	_, err = r.JSON()
	assert.NoError(t, err)
}

func TestPunchingFailure(t *testing.T) {
	in := scenario()
	in.AxialLoad, in.Moment, in.AllowableBearing = 4000, 0, 1000
	in.Thickness = 400

	r, err := Design(code.ACI, in)
	require.NoError(t, err)
	c, ok := r.Check("punching")
	require.True(t, ok)
	assert.False(t, c.Pass)
	assert.Equal(t, design.Overstress, r.FailureReason)
}

func TestCoverRaised(t *testing.T) {
	in := scenario()
	in.CoverThickness = 50

	r, err := Design(code.ACI, in)
	require.NoError(t, err)
	assert.True(t, r.HasWarning(design.WarnCoverRaised))
	assert.InDelta(t, 75, r.Geometry.Cover, 1e-9)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Input)
		field string
		kind  validate.Kind
	}{
		{"zero axial", func(in *Input) { in.AxialLoad = 0 }, "axialLoad", validate.KindMissing},
		{"negative bearing", func(in *Input) { in.AllowableBearing = -100 }, "allowableBearing", validate.KindSign},
		{"column wider than footing", func(in *Input) { in.ColumnWidth, in.FootingWidth = 800, 700 }, "footingWidth", validate.KindInvalid},
		{"column deeper than footing", func(in *Input) { in.ColumnDepth, in.FootingLength = 1000, 900 }, "footingLength", validate.KindInvalid},
		{"thin footing", func(in *Input) { in.Thickness, in.CoverThickness = 300, 140 }, "coverThickness", validate.KindInvalid},
		{"nan moment", func(in *Input) { in.Moment = math.NaN() }, "moment", validate.KindNotFinite},
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
