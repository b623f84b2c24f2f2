// Package beam designs rectangular beams for flexure, shear and deflection.
package beam

import (
	"strings"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/design"
	"github.com/alexiusacademia/gorcd/internal/validate"
)

// Support describes the end conditions of a span.
type Support string

const (
	Simple     Support = "simple"
	OneEnd     Support = "one-end"   // one end continuous
	BothEnds   Support = "both-ends" // both ends continuous
	Cantilever Support = "cantilever"
)

// Supports lists the accepted support conditions.
func Supports() []string {
	return []string{string(Simple), string(OneEnd), string(BothEnds), string(Cantilever)}
}

// ParseSupport normalizes a support name; unknown names return false.
func ParseSupport(s string) (Support, bool) {
	for _, v := range Supports() {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return Support(v), true
		}
	}
	return "", false
}

// Input holds the service actions, geometry and materials of a beam.
// A negative moment puts the tension face at the top.
type Input struct {
	Moment         float64 `json:"moment" yaml:"moment"`                 // kN·m, service
	Shear          float64 `json:"shear" yaml:"shear"`                   // kN, service
	Span           float64 `json:"span" yaml:"span"`                     // mm
	Width          float64 `json:"width" yaml:"width"`                   // mm
	Height         float64 `json:"height" yaml:"height"`                 // mm
	CoverThickness float64 `json:"coverThickness" yaml:"coverThickness"` // mm, clear to stirrups
	Support        Support `json:"support" yaml:"support"`
	ConcreteGrade  string  `json:"concreteGrade" yaml:"concreteGrade"`
	SteelGrade     string  `json:"steelGrade" yaml:"steelGrade"`
	LiveLoadRatio  float64 `json:"liveLoadRatio,omitempty" yaml:"liveLoadRatio,omitempty"`
}

// Member implements design.Input.
func (Input) Member() design.Member { return design.Beam }

var rules = validate.Table{
	Numbers: []validate.Rule{
		{Field: "moment", Unit: "kN·m", Sign: validate.Any, Min: -5000, Max: 5000, Required: true},
		{Field: "shear", Unit: "kN", Sign: validate.NonNegative, Max: 5000},
		{Field: "span", Unit: "mm", Sign: validate.Positive, Min: 500, Max: 30000},
		{Field: "width", Unit: "mm", Sign: validate.Positive, Min: 150, Max: 1500},
		{Field: "height", Unit: "mm", Sign: validate.Positive, Min: 200, Max: 3000},
		{Field: "coverThickness", Unit: "mm", Sign: validate.NonNegative, Max: 100},
		{Field: "liveLoadRatio", Sign: validate.NonNegative, Max: 1},
	},
	Choices: []validate.Choice{
		{Field: "support", Allowed: Supports(), Fold: true},
		{Field: "concreteGrade", Allowed: code.ConcreteGrades(), Fold: true},
		{Field: "steelGrade", Allowed: code.SteelGrades()},
	},
}

// Validate checks every field and returns validate.Errors when any fails.
func (in Input) Validate() error {
	errs := rules.Check(map[string]float64{
		"moment":         in.Moment,
		"shear":          in.Shear,
		"span":           in.Span,
		"width":          in.Width,
		"height":         in.Height,
		"coverThickness": in.CoverThickness,
		"liveLoadRatio":  in.LiveLoadRatio,
	}, map[string]string{
		"support":       string(in.Support),
		"concreteGrade": in.ConcreteGrade,
		"steelGrade":    in.SteelGrade,
	})
	if !errs.Has("coverThickness") && !errs.Has("width") && !errs.Has("height") {
		if in.Width-2*(in.CoverThickness+stirrupDiameter) < 50 {
			errs = append(errs, validate.Invalid("coverThickness", "leaves less than 50 mm between stirrups in a %.0f mm wide beam", in.Width))
		} else if in.Height-2*(in.CoverThickness+stirrupDiameter+provisionalBar) < 50 {
			errs = append(errs, validate.Invalid("coverThickness", "leaves no lever arm in a %.0f mm deep beam", in.Height))
		}
	}
	return errs.Err()
}

func (in Input) support() Support {
	s, _ := ParseSupport(string(in.Support))
	return s
}

func (in Input) materials() (fc, fy float64) {
	fc, _ = code.ConcreteStrength(in.ConcreteGrade)
	fy, _ = code.SteelYield(in.SteelGrade)
	return fc, fy
}
