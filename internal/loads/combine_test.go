package loads

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorcd/internal/code"
)

func profile(t *testing.T, id code.ID) code.Profile {
	t.Helper()
	p, err := code.Resolve(id)
	require.NoError(t, err)
	return p
}

func TestSplit(t *testing.T) {
	l := Split(Axial, 1000, 0.4)
	assert.InDelta(t, 600, l.Dead, 1e-9)
	assert.InDelta(t, 400, l.Live, 1e-9)
	assert.Zero(t, l.Earth)
}

func TestCombineGoverning(t *testing.T) {
	tests := []struct {
		name      string
		id        code.ID
		ratio     float64
		wantAxial float64
		wantCombo string
		sustained float64
	}{
		{"ACI all dead", code.ACI, 0, 2100, "1", 1},
		{"ACI mixed", code.ACI, 0.4, 1.2*900 + 1.6*600, "2", 1.2 * 900 / 2040},
		{"ACI all live", code.ACI, 1, 2400, "2", 0},
		{"CSA all dead", code.CSA, 0, 2100, "1", 1},
		{"CSA mixed", code.CSA, 0.4, 1.25*900 + 1.5*600, "2", 1.25 * 900 / 2025},
		{"CSA all live", code.CSA, 1, 2250, "2", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Combine([]Load{
				Split(Axial, 1500, tt.ratio),
				Split(MomentX, 80, tt.ratio),
			}, profile(t, tt.id), Axial)

			assert.InDelta(t, tt.wantAxial, d.Get(Axial), 1e-9)
			assert.Equal(t, tt.wantCombo, d.Combination.ID)
			assert.InDelta(t, tt.sustained, d.Sustained, 1e-9)
			assert.InDelta(t, tt.wantAxial*80/1500, d.Get(MomentX), 1e-9)
		})
	}
}

func TestCombineKeepsSign(t *testing.T) {
	d := Combine([]Load{
		Split(Axial, 1500, 0.5),
		Split(MomentX, -80, 0.5),
		Split(MomentY, 60, 0.5),
	}, profile(t, code.ACI), Axial)

	assert.Less(t, d.Get(MomentX), 0.0)
	assert.Greater(t, d.Get(MomentY), 0.0)
	assert.InDelta(t, -d.Get(MomentX)*60/80, d.Get(MomentY), 1e-9)
}

func TestCombineNegativePrimary(t *testing.T) {
	d := Combine([]Load{Split(Moment, -100, 0.5)}, profile(t, code.ACI), Moment)
	assert.InDelta(t, -(1.2*50 + 1.6*50), d.Get(Moment), 1e-9)
}

func TestCombineEarthPressure(t *testing.T) {
	loads := []Load{{Action: Moment, Earth: 100, Live: 20}}

	aci := Combine(loads, profile(t, code.ACI), Moment)
	assert.InDelta(t, 1.6*100+1.6*20, aci.Get(Moment), 1e-9)

	csa := Combine(loads, profile(t, code.CSA), Moment)
	assert.InDelta(t, 1.5*100+1.5*20, csa.Get(Moment), 1e-9)
	assert.Zero(t, csa.Sustained)
}

func TestCombineWithoutPrimary(t *testing.T) {
	d := Combine([]Load{Split(Shear, 10, 0)}, profile(t, code.ACI), Axial)
	assert.Equal(t, "2", d.Combination.ID)
	assert.InDelta(t, 12, d.Get(Shear), 1e-9)
	assert.Zero(t, d.Get(Axial))
}
