package code

import (
	"encoding/json"
	"math"
	"strings"
)

// ID identifies a supported building code family.
type ID string

const (
	ACI ID = "ACI" // ACI 318-25 with ASCE 7-22 load combinations
	CSA ID = "CSA" // CSA A23.3-24 with NBCC 2020 load combinations
)

// ResistanceFactors holds the strength reduction factors per action.
type ResistanceFactors struct {
	CompressionTied   float64 `json:"compressionTied"`
	CompressionSpiral float64 `json:"compressionSpiral"`
	Flexure           float64 `json:"flexure"`
	Shear             float64 `json:"shear"`
	Stiffness         float64 `json:"stiffness"` // member stiffness factor in the moment magnifier
}

// Covers holds minimum clear cover per member type, in mm.
type Covers struct {
	Column  float64 `json:"column"`
	Beam    float64 `json:"beam"`
	Slab    float64 `json:"slab"`
	Footing float64 `json:"footing"`
	Wall    float64 `json:"wall"`
}

// Profile is the resolved parameter set of one building code. Values are
// fixed tables; a Profile is never modified after Resolve returns it.
type Profile struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`

	combinations []LoadCombination

	Phi ResistanceFactors `json:"phi"`

	// MaterialFactor reduces nominal material resistance before φ is applied.
	MaterialFactor float64 `json:"materialFactor"`

	// ModulusCoefficient k in Ec = k√f'c (MPa)
	ModulusCoefficient float64 `json:"modulusCoefficient"`

	MinCover Covers `json:"minCover"`

	ColumnRhoMin     float64 `json:"columnRhoMin"`
	ColumnRhoMax     float64 `json:"columnRhoMax"`
	SlendernessLimit float64 `json:"slendernessLimit"` // kℓu/r below which a column is short

	// ShrinkageRatio is the minimum steel ratio of gross area for slabs,
	// footings and walls.
	ShrinkageRatio float64 `json:"shrinkageRatio"`

	// MinThicknessSteelBase is the divisor in the (0.4 + fy/base) correction
	// of the span/depth tables.
	MinThicknessSteelBase float64 `json:"minThicknessSteelBase"`

	OverturningSafety float64 `json:"overturningSafety"`
	SlidingSafety     float64 `json:"slidingSafety"`
}

var profiles = map[ID]Profile{
	ACI: {
		ID:   ACI,
		Name: "ACI 318-25 / ASCE 7-22",
		combinations: []LoadCombination{
			{ID: "1", Description: "1.4D", Dead: 1.4},
			{ID: "2", Description: "1.2D + 1.6L + 1.6H", Dead: 1.2, Live: 1.6, Earth: 1.6},
		},
		Phi: ResistanceFactors{
			CompressionTied:   0.65,
			CompressionSpiral: 0.75,
			Flexure:           0.90,
			Shear:             0.75,
			Stiffness:         0.75,
		},
		MaterialFactor:        1.0,
		ModulusCoefficient:    4700,
		MinCover:              Covers{Column: 40, Beam: 40, Slab: 20, Footing: 75, Wall: 50},
		ColumnRhoMin:          0.01,
		ColumnRhoMax:          0.08,
		SlendernessLimit:      22,
		ShrinkageRatio:        0.0018,
		MinThicknessSteelBase: 700,
		OverturningSafety:     1.5,
		SlidingSafety:         1.5,
	},
	CSA: {
		ID:   CSA,
		Name: "CSA A23.3-24 / NBCC 2020",
		combinations: []LoadCombination{
			{ID: "1", Description: "1.4D + 1.5H", Dead: 1.4, Earth: 1.5},
			{ID: "2", Description: "1.25D + 1.5L + 1.5H", Dead: 1.25, Live: 1.5, Earth: 1.5},
		},
		Phi: ResistanceFactors{
			CompressionTied:   0.65,
			CompressionSpiral: 0.70,
			Flexure:           0.85,
			Shear:             0.65,
			Stiffness:         0.65,
		},
		MaterialFactor:        0.85,
		ModulusCoefficient:    4500,
		MinCover:              Covers{Column: 40, Beam: 40, Slab: 20, Footing: 75, Wall: 50},
		ColumnRhoMin:          0.01,
		ColumnRhoMax:          0.08,
		SlendernessLimit:      22,
		ShrinkageRatio:        0.002,
		MinThicknessSteelBase: 670,
		OverturningSafety:     1.5,
		SlidingSafety:         1.5,
	},
}

// Supported lists the building codes Resolve accepts.
func Supported() []ID {
	return []ID{ACI, CSA}
}

func supportedNames() []string {
	ids := Supported()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return names
}

// Parse converts a user supplied identifier ("aci", "CSA") into an ID.
func Parse(s string) (ID, error) {
	id := ID(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := profiles[id]; !ok {
		return "", &ConfigurationError{Kind: "building code", Value: s, Supported: supportedNames()}
	}
	return id, nil
}

// Resolve returns the profile of a building code.
func Resolve(id ID) (Profile, error) {
	p, ok := profiles[id]
	if !ok {
		return Profile{}, &ConfigurationError{Kind: "building code", Value: string(id), Supported: supportedNames()}
	}
	p.combinations = append([]LoadCombination(nil), p.combinations...)
	return p, nil
}

// Combinations returns a copy of the strength load combinations.
func (p Profile) Combinations() []LoadCombination {
	return append([]LoadCombination(nil), p.combinations...)
}

// CompressionPhi is the effective compression factor, including the
// material resistance reduction.
func (p Profile) CompressionPhi(spiral bool) float64 {
	if spiral {
		return p.Phi.CompressionSpiral * p.MaterialFactor
	}
	return p.Phi.CompressionTied * p.MaterialFactor
}

// FlexurePhi is the effective flexural resistance factor.
func (p Profile) FlexurePhi() float64 {
	return p.Phi.Flexure * p.MaterialFactor
}

// ShearPhi is the effective shear resistance factor.
func (p Profile) ShearPhi() float64 {
	return p.Phi.Shear * p.MaterialFactor
}

// Ec returns the concrete modulus of elasticity in MPa.
func (p Profile) Ec(fc float64) float64 {
	return p.ModulusCoefficient * math.Sqrt(fc)
}

// FlexuralRhoMin is the minimum tension steel ratio of a beam,
// max(0.25√f'c, 1.4)/fy with fy reduced by the material factor.
func (p Profile) FlexuralRhoMin(fc, fy float64) float64 {
	return math.Max(0.25*math.Sqrt(fc), 1.4) / (fy * p.MaterialFactor)
}

// MinThicknessFactor corrects the span/depth ratios for steel grade.
func (p Profile) MinThicknessFactor(fy float64) float64 {
	return 0.4 + fy/p.MinThicknessSteelBase
}

// MarshalJSON includes the load combinations alongside the exported fields.
func (p Profile) MarshalJSON() ([]byte, error) {
	type plain Profile
	return json.Marshal(struct {
		plain
		Combinations []LoadCombination `json:"combinations"`
	}{plain(p), p.combinations})
}
