// Package wall designs cantilever retaining walls: global stability of the
// wall on its base and the stem at its junction with the base.
package wall

import (
	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/design"
	"github.com/alexiusacademia/gorcd/internal/validate"
)

// Input describes a cantilever wall retaining level backfill, per metre run.
type Input struct {
	WallHeight       float64 `json:"wallHeight" yaml:"wallHeight"`             // mm, underside of base to top of stem
	StemThickness    float64 `json:"stemThickness" yaml:"stemThickness"`       // mm
	BaseThickness    float64 `json:"baseThickness" yaml:"baseThickness"`       // mm
	ToeLength        float64 `json:"toeLength" yaml:"toeLength"`               // mm, in front of the stem
	HeelLength       float64 `json:"heelLength" yaml:"heelLength"`             // mm, under the backfill
	SoilUnitWeight   float64 `json:"soilUnitWeight" yaml:"soilUnitWeight"`     // kN/m³
	FrictionAngle    float64 `json:"frictionAngle" yaml:"frictionAngle"`       // degrees
	Surcharge        float64 `json:"surcharge" yaml:"surcharge"`               // kPa, live
	BaseFriction     float64 `json:"baseFriction" yaml:"baseFriction"`         // μ between base and soil
	AllowableBearing float64 `json:"allowableBearing" yaml:"allowableBearing"` // kPa
	CoverThickness   float64 `json:"coverThickness" yaml:"coverThickness"`     // mm
	ConcreteGrade    string  `json:"concreteGrade" yaml:"concreteGrade"`
	SteelGrade       string  `json:"steelGrade" yaml:"steelGrade"`
}

// Member implements design.Input.
func (Input) Member() design.Member { return design.RetainingWall }

var rules = validate.Table{
	Numbers: []validate.Rule{
		{Field: "wallHeight", Unit: "mm", Sign: validate.Positive, Min: 1000, Max: 10000},
		{Field: "stemThickness", Unit: "mm", Sign: validate.Positive, Min: 150, Max: 1500},
		{Field: "baseThickness", Unit: "mm", Sign: validate.Positive, Min: 200, Max: 2000},
		{Field: "toeLength", Unit: "mm", Sign: validate.NonNegative, Max: 5000},
		{Field: "heelLength", Unit: "mm", Sign: validate.Positive, Max: 10000},
		{Field: "soilUnitWeight", Unit: "kN/m³", Sign: validate.Positive, Min: 12, Max: 25},
		{Field: "frictionAngle", Unit: "°", Sign: validate.Positive, Min: 15, Max: 50},
		{Field: "surcharge", Unit: "kPa", Sign: validate.NonNegative, Max: 100},
		{Field: "baseFriction", Sign: validate.Positive, Min: 0.2, Max: 1},
		{Field: "allowableBearing", Unit: "kPa", Sign: validate.Positive, Min: 25, Max: 2000},
		{Field: "coverThickness", Unit: "mm", Sign: validate.NonNegative, Max: 100},
	},
	Choices: []validate.Choice{
		{Field: "concreteGrade", Allowed: code.ConcreteGrades(), Fold: true},
		{Field: "steelGrade", Allowed: code.SteelGrades()},
	},
}

// Validate checks every field and returns validate.Errors when any fails.
func (in Input) Validate() error {
	errs := rules.Check(map[string]float64{
		"wallHeight":       in.WallHeight,
		"stemThickness":    in.StemThickness,
		"baseThickness":    in.BaseThickness,
		"toeLength":        in.ToeLength,
		"heelLength":       in.HeelLength,
		"soilUnitWeight":   in.SoilUnitWeight,
		"frictionAngle":    in.FrictionAngle,
		"surcharge":        in.Surcharge,
		"baseFriction":     in.BaseFriction,
		"allowableBearing": in.AllowableBearing,
		"coverThickness":   in.CoverThickness,
	}, map[string]string{
		"concreteGrade": in.ConcreteGrade,
		"steelGrade":    in.SteelGrade,
	})
	if !errs.Has("wallHeight") && !errs.Has("baseThickness") && in.WallHeight-in.BaseThickness < 500 {
		errs = append(errs, validate.Invalid("baseThickness", "leaves a stem shorter than 500 mm in a %.0f mm wall", in.WallHeight))
	}
	if !errs.Has("stemThickness") && !errs.Has("coverThickness") && in.StemThickness-in.CoverThickness-provisionalBar < 100 {
		errs = append(errs, validate.Invalid("coverThickness", "leaves less than 100 mm effective depth in a %.0f mm stem", in.StemThickness))
	}
	return errs.Err()
}

func (in Input) materials() (fc, fy float64) {
	fc, _ = code.ConcreteStrength(in.ConcreteGrade)
	fy, _ = code.SteelYield(in.SteelGrade)
	return fc, fy
}
