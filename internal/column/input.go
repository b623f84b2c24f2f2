// Package column designs rectangular tied and spiral columns under axial
// load and biaxial bending.
package column

import (
	"strings"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/design"
	"github.com/alexiusacademia/gorcd/internal/validate"
)

// Type is the transverse reinforcement of a column.
type Type string

const (
	Tied   Type = "tied"
	Spiral Type = "spiral"
)

// Input holds the service loads, geometry and materials of a column.
// MomentX bends about the X axis (compression face along ColumnWidth);
// MomentY bends about the Y axis.
type Input struct {
	AxialLoad      float64 `json:"axialLoad" yaml:"axialLoad"`           // kN, service
	MomentX        float64 `json:"momentX" yaml:"momentX"`               // kN·m, service
	MomentY        float64 `json:"momentY" yaml:"momentY"`               // kN·m, service
	ColumnWidth    float64 `json:"columnWidth" yaml:"columnWidth"`       // mm, along X
	ColumnDepth    float64 `json:"columnDepth" yaml:"columnDepth"`       // mm, along Y
	ColumnHeight   float64 `json:"columnHeight" yaml:"columnHeight"`     // mm, unsupported length
	ConcreteGrade  string  `json:"concreteGrade" yaml:"concreteGrade"`   // C25..C45
	SteelGrade     string  `json:"steelGrade" yaml:"steelGrade"`         // 400..520
	CoverThickness float64 `json:"coverThickness" yaml:"coverThickness"` // mm, clear to ties
	ColumnType     Type    `json:"columnType" yaml:"columnType"`

	// LiveLoadRatio is the live share of the service loads (0 = all dead).
	LiveLoadRatio float64 `json:"liveLoadRatio,omitempty" yaml:"liveLoadRatio,omitempty"`

	// EffectiveLengthFactor k, 1.0 when zero.
	EffectiveLengthFactor float64 `json:"effectiveLengthFactor,omitempty" yaml:"effectiveLengthFactor,omitempty"`
}

// Member implements design.Input.
func (Input) Member() design.Member { return design.Column }

var rules = validate.Table{
	Numbers: []validate.Rule{
		{Field: "axialLoad", Unit: "kN", Sign: validate.Positive, Max: 50000},
		{Field: "momentX", Unit: "kN·m", Sign: validate.Any, Min: -10000, Max: 10000},
		{Field: "momentY", Unit: "kN·m", Sign: validate.Any, Min: -10000, Max: 10000},
		{Field: "columnWidth", Unit: "mm", Sign: validate.Positive, Min: 200, Max: 2000},
		{Field: "columnDepth", Unit: "mm", Sign: validate.Positive, Min: 200, Max: 2000},
		{Field: "columnHeight", Unit: "mm", Sign: validate.Positive, Min: 500, Max: 20000},
		{Field: "coverThickness", Unit: "mm", Sign: validate.NonNegative, Max: 100},
		{Field: "liveLoadRatio", Sign: validate.NonNegative, Max: 1},
		{Field: "effectiveLengthFactor", Sign: validate.Positive, Min: 0.5, Max: 2.5, Optional: true},
	},
	Choices: []validate.Choice{
		{Field: "concreteGrade", Allowed: code.ConcreteGrades(), Fold: true},
		{Field: "steelGrade", Allowed: code.SteelGrades()},
		{Field: "columnType", Allowed: []string{string(Tied), string(Spiral)}, Fold: true},
	},
}

// Validate checks every field and returns validate.Errors when any fails.
func (in Input) Validate() error {
	errs := rules.Check(map[string]float64{
		"axialLoad":             in.AxialLoad,
		"momentX":               in.MomentX,
		"momentY":               in.MomentY,
		"columnWidth":           in.ColumnWidth,
		"columnDepth":           in.ColumnDepth,
		"columnHeight":          in.ColumnHeight,
		"coverThickness":        in.CoverThickness,
		"liveLoadRatio":         in.LiveLoadRatio,
		"effectiveLengthFactor": in.EffectiveLengthFactor,
	}, map[string]string{
		"concreteGrade": in.ConcreteGrade,
		"steelGrade":    in.SteelGrade,
		"columnType":    string(in.ColumnType),
	})
	if !errs.Has("coverThickness") && !errs.Has("columnWidth") && !errs.Has("columnDepth") {
		if core := min(in.ColumnWidth, in.ColumnDepth) - 2*(in.CoverThickness+tieDiameter); core < 100 {
			errs = append(errs, validate.Invalid("coverThickness", "leaves a %.0f mm core; at least 100 mm is needed for longitudinal bars", core))
		}
	}
	return errs.Err()
}

func (in Input) spiral() bool {
	return strings.EqualFold(string(in.ColumnType), string(Spiral))
}

func (in Input) lengthFactor() float64 {
	if in.EffectiveLengthFactor == 0 {
		return 1
	}
	return in.EffectiveLengthFactor
}

func (in Input) materials() (fc, fy float64) {
	fc, _ = code.ConcreteStrength(in.ConcreteGrade)
	fy, _ = code.SteelYield(in.SteelGrade)
	return fc, fy
}
