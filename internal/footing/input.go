// Package footing designs isolated rectangular spread footings under a
// single column carrying axial load and uniaxial moment.
package footing

import (
	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/design"
	"github.com/alexiusacademia/gorcd/internal/validate"
)

// Input holds the service column actions, footing geometry, soil capacity
// and materials. The moment acts along FootingLength; ColumnDepth is the
// column side parallel to it.
type Input struct {
	AxialLoad        float64 `json:"axialLoad" yaml:"axialLoad"`               // kN, service
	Moment           float64 `json:"moment" yaml:"moment"`                     // kN·m, service
	ColumnWidth      float64 `json:"columnWidth" yaml:"columnWidth"`           // mm, along FootingWidth
	ColumnDepth      float64 `json:"columnDepth" yaml:"columnDepth"`           // mm, along FootingLength
	FootingWidth     float64 `json:"footingWidth" yaml:"footingWidth"`         // mm, B
	FootingLength    float64 `json:"footingLength" yaml:"footingLength"`       // mm, L
	Thickness        float64 `json:"thickness" yaml:"thickness"`               // mm
	AllowableBearing float64 `json:"allowableBearing" yaml:"allowableBearing"` // kPa, service
	CoverThickness   float64 `json:"coverThickness" yaml:"coverThickness"`     // mm
	ConcreteGrade    string  `json:"concreteGrade" yaml:"concreteGrade"`
	SteelGrade       string  `json:"steelGrade" yaml:"steelGrade"`
	LiveLoadRatio    float64 `json:"liveLoadRatio,omitempty" yaml:"liveLoadRatio,omitempty"`
}

// Member implements design.Input.
func (Input) Member() design.Member { return design.Footing }

var rules = validate.Table{
	Numbers: []validate.Rule{
		{Field: "axialLoad", Unit: "kN", Sign: validate.Positive, Max: 50000},
		{Field: "moment", Unit: "kN·m", Sign: validate.Any, Min: -10000, Max: 10000},
		{Field: "columnWidth", Unit: "mm", Sign: validate.Positive, Min: 200, Max: 2000},
		{Field: "columnDepth", Unit: "mm", Sign: validate.Positive, Min: 200, Max: 2000},
		{Field: "footingWidth", Unit: "mm", Sign: validate.Positive, Min: 600, Max: 10000},
		{Field: "footingLength", Unit: "mm", Sign: validate.Positive, Min: 600, Max: 10000},
		{Field: "thickness", Unit: "mm", Sign: validate.Positive, Min: 250, Max: 2500},
		{Field: "allowableBearing", Unit: "kPa", Sign: validate.Positive, Min: 25, Max: 2000},
		{Field: "coverThickness", Unit: "mm", Sign: validate.NonNegative, Max: 150},
		{Field: "liveLoadRatio", Sign: validate.NonNegative, Max: 1},
	},
	Choices: []validate.Choice{
		{Field: "concreteGrade", Allowed: code.ConcreteGrades(), Fold: true},
		{Field: "steelGrade", Allowed: code.SteelGrades()},
	},
}

// Validate checks every field and returns validate.Errors when any fails.
func (in Input) Validate() error {
	errs := rules.Check(map[string]float64{
		"axialLoad":        in.AxialLoad,
		"moment":           in.Moment,
		"columnWidth":      in.ColumnWidth,
		"columnDepth":      in.ColumnDepth,
		"footingWidth":     in.FootingWidth,
		"footingLength":    in.FootingLength,
		"thickness":        in.Thickness,
		"allowableBearing": in.AllowableBearing,
		"coverThickness":   in.CoverThickness,
		"liveLoadRatio":    in.LiveLoadRatio,
	}, map[string]string{
		"concreteGrade": in.ConcreteGrade,
		"steelGrade":    in.SteelGrade,
	})
	if !errs.Has("footingWidth") && !errs.Has("columnWidth") && in.FootingWidth <= in.ColumnWidth {
		errs = append(errs, validate.Invalid("footingWidth", "must exceed the %.0f mm column width", in.ColumnWidth))
	}
	if !errs.Has("footingLength") && !errs.Has("columnDepth") && in.FootingLength <= in.ColumnDepth {
		errs = append(errs, validate.Invalid("footingLength", "must exceed the %.0f mm column depth", in.ColumnDepth))
	}
	if !errs.Has("thickness") && !errs.Has("coverThickness") && in.Thickness-in.CoverThickness-2*provisionalBar < 150 {
		errs = append(errs, validate.Invalid("coverThickness", "leaves less than 150 mm effective depth in a %.0f mm footing", in.Thickness))
	}
	return errs.Err()
}

func (in Input) materials() (fc, fy float64) {
	fc, _ = code.ConcreteStrength(in.ConcreteGrade)
	fy, _ = code.SteelYield(in.SteelGrade)
	return fc, fy
}
