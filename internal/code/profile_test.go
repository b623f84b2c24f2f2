package code

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	aci, err := Resolve(ACI)
	require.NoError(t, err)
	assert.Equal(t, ACI, aci.ID)
	assert.Equal(t, 0.65, aci.Phi.CompressionTied)
	assert.Len(t, aci.Combinations(), 2)

	csa, err := Resolve(CSA)
	require.NoError(t, err)
	assert.Equal(t, "1.25D + 1.5L + 1.5H", csa.Combinations()[1].Description)
}

func TestResolveUnknownCode(t *testing.T) {
	_, err := Resolve(ID("EC2"))
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "building code", cfgErr.Kind)
	assert.Equal(t, "EC2", cfgErr.Value)
	assert.Equal(t, []string{"ACI", "CSA"}, cfgErr.Supported)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{"ACI", ACI, false},
		{" csa ", CSA, false},
		{"", "", true},
		{"NSCP", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				var cfgErr *ConfigurationError
				assert.ErrorAs(t, err, &cfgErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProfilesDifferWhereCodesDiffer(t *testing.T) {
	aci, _ := Resolve(ACI)
	csa, _ := Resolve(CSA)

	aciLive := aci.Combinations()[1]
	csaLive := csa.Combinations()[1]
	assert.NotEqual(t, aciLive.Dead, csaLive.Dead)
	assert.NotEqual(t, aciLive.Live, csaLive.Live)
	assert.NotEqual(t, aciLive.Earth, csaLive.Earth)

	assert.NotEqual(t, aci.Phi.CompressionSpiral, csa.Phi.CompressionSpiral)
	assert.NotEqual(t, aci.Phi.Flexure, csa.Phi.Flexure)
	assert.NotEqual(t, aci.Phi.Shear, csa.Phi.Shear)
	assert.NotEqual(t, aci.Phi.Stiffness, csa.Phi.Stiffness)
	assert.NotEqual(t, aci.MaterialFactor, csa.MaterialFactor)
	assert.NotEqual(t, aci.CompressionPhi(false), csa.CompressionPhi(false))
	assert.NotEqual(t, aci.ShrinkageRatio, csa.ShrinkageRatio)
	assert.NotEqual(t, aci.Name, csa.Name)
}

func TestEarthPressureFactors(t *testing.T) {
	aci, _ := Resolve(ACI)
	csa, _ := Resolve(CSA)

	deadOnly := aci.Combinations()[0]
	assert.Equal(t, "1.4D", deadOnly.Description)
	assert.Zero(t, deadOnly.Earth)
	assert.Equal(t, 1.6, aci.Combinations()[1].Earth)
	for _, lc := range csa.Combinations() {
		assert.Equal(t, 1.5, lc.Earth, lc.Description)
	}
}

func TestCSAEffectiveFactorsAreNotLarger(t *testing.T) {
	aci, _ := Resolve(ACI)
	csa, _ := Resolve(CSA)

	assert.Less(t, csa.CompressionPhi(false), aci.CompressionPhi(false))
	assert.Less(t, csa.CompressionPhi(true), aci.CompressionPhi(true))
	assert.Less(t, csa.FlexurePhi(), aci.FlexurePhi())
	assert.Less(t, csa.ShearPhi(), aci.ShearPhi())
	assert.Greater(t, csa.FlexuralRhoMin(30, 420), aci.FlexuralRhoMin(30, 420))
	assert.Greater(t, csa.MinThicknessFactor(420), aci.MinThicknessFactor(420))
}

func TestResolveReturnsIndependentCopies(t *testing.T) {
	first, _ := Resolve(ACI)
	combos := first.Combinations()
	combos[0].Dead = 99

	second, _ := Resolve(ACI)
	assert.Equal(t, 1.4, second.Combinations()[0].Dead)
	assert.Equal(t, 1.4, first.Combinations()[0].Dead)
}

func TestProfileJSONIncludesCombinations(t *testing.T) {
	p, _ := Resolve(CSA)
	data, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "CSA", decoded["id"])
	assert.Len(t, decoded["combinations"], 2)
}

func TestBeta1(t *testing.T) {
	assert.Equal(t, 0.85, Beta1(25))
	assert.InDelta(t, 0.8357, Beta1(30), 1e-4)
	assert.Equal(t, 0.65, Beta1(70))
}

func TestGrades(t *testing.T) {
	fc, ok := ConcreteStrength("c30")
	assert.True(t, ok)
	assert.Equal(t, 30.0, fc)

	_, ok = ConcreteStrength("C50")
	assert.False(t, ok)

	fy, ok := SteelYield("420")
	assert.True(t, ok)
	assert.Equal(t, 420.0, fy)

	_, ok = SteelYield("Grade60")
	assert.False(t, ok)

	assert.Equal(t, []string{"C25", "C30", "C35", "C40", "C45"}, ConcreteGrades())
	assert.Equal(t, []string{"400", "420", "500", "520"}, SteelGrades())
}

func TestRhoTensionControlled(t *testing.T) {
	rho := RhoTensionControlled(30, 420)
	assert.InDelta(t, 0.85*Beta1(30)*30.0/420*0.375, rho, 1e-12)
	assert.Less(t, rho, RhoBalanced(30, 420))
}
