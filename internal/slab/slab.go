// Package slab designs one-way solid slabs on a one metre wide strip.
package slab

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/design"
	"github.com/alexiusacademia/gorcd/internal/loads"
	"github.com/alexiusacademia/gorcd/internal/rebar"
	"github.com/alexiusacademia/gorcd/internal/section"
	"github.com/alexiusacademia/gorcd/internal/validate"
)

const (
	strip             = 1000.0 // mm
	provisionalBar    = 12.0   // mm, bar size assumed for d
	distributionLimit = 5      // distribution bar spacing ≤ 5h
)

// Support describes the end conditions of the span.
type Support string

const (
	Simple     Support = "simple"
	OneEnd     Support = "one-end"
	BothEnds   Support = "both-ends"
	Cantilever Support = "cantilever"
)

// coefficients per support: Mu = cm·w·ℓ², Vu = cv·w·ℓ, hmin = ℓ/divisor
type coefficients struct {
	Moment  float64 `json:"moment"`
	Shear   float64 `json:"shear"`
	Divisor float64 `json:"divisor"`
}

var table = map[Support]coefficients{
	Simple:     {1.0 / 8, 0.5, 20},
	OneEnd:     {1.0 / 10, 0.575, 24},
	BothEnds:   {1.0 / 11, 0.5, 28},
	Cantilever: {1.0 / 2, 1.0, 10},
}

func supports() []string {
	return []string{string(Simple), string(OneEnd), string(BothEnds), string(Cantilever)}
}

// Input describes a one-way slab under uniform area loads.
type Input struct {
	Span           float64 `json:"span" yaml:"span"`                     // mm, clear span
	Thickness      float64 `json:"thickness" yaml:"thickness"`           // mm
	DeadLoad       float64 `json:"deadLoad" yaml:"deadLoad"`             // kPa, superimposed
	LiveLoad       float64 `json:"liveLoad" yaml:"liveLoad"`             // kPa
	CoverThickness float64 `json:"coverThickness" yaml:"coverThickness"` // mm
	Support        Support `json:"support" yaml:"support"`
	ConcreteGrade  string  `json:"concreteGrade" yaml:"concreteGrade"`
	SteelGrade     string  `json:"steelGrade" yaml:"steelGrade"`
}

// Member implements design.Input.
func (Input) Member() design.Member { return design.Slab }

var rules = validate.Table{
	Numbers: []validate.Rule{
		{Field: "span", Unit: "mm", Sign: validate.Positive, Min: 1000, Max: 12000},
		{Field: "thickness", Unit: "mm", Sign: validate.Positive, Min: 75, Max: 600},
		{Field: "deadLoad", Unit: "kPa", Sign: validate.NonNegative, Max: 100},
		{Field: "liveLoad", Unit: "kPa", Sign: validate.NonNegative, Max: 100},
		{Field: "coverThickness", Unit: "mm", Sign: validate.NonNegative, Max: 75},
	},
	Choices: []validate.Choice{
		{Field: "support", Allowed: supports(), Fold: true},
		{Field: "concreteGrade", Allowed: code.ConcreteGrades(), Fold: true},
		{Field: "steelGrade", Allowed: code.SteelGrades()},
	},
}

// Validate checks every field and returns validate.Errors when any fails.
func (in Input) Validate() error {
	errs := rules.Check(map[string]float64{
		"span":           in.Span,
		"thickness":      in.Thickness,
		"deadLoad":       in.DeadLoad,
		"liveLoad":       in.LiveLoad,
		"coverThickness": in.CoverThickness,
	}, map[string]string{
		"support":       string(in.Support),
		"concreteGrade": in.ConcreteGrade,
		"steelGrade":    in.SteelGrade,
	})
	if !errs.Has("thickness") && !errs.Has("coverThickness") && in.Thickness-in.CoverThickness-provisionalBar < in.Thickness/2 {
		errs = append(errs, validate.Invalid("coverThickness", "leaves less than half of the %.0f mm slab as effective depth", in.Thickness))
	}
	return errs.Err()
}

func (in Input) support() Support {
	for _, s := range supports() {
		if strings.EqualFold(strings.TrimSpace(string(in.Support)), s) {
			return Support(s)
		}
	}
	return Simple
}

// Details carries the slab-specific intermediate results.
type Details struct {
	Coefficients coefficients `json:"coefficients"`
	SelfWeight   float64      `json:"selfWeight"`   // kPa
	Phi          float64      `json:"phi"`          // flexure
	PhiVc        float64      `json:"phiVc"`        // kN/m
	MinimumDepth float64      `json:"minimumDepth"` // mm
}

// Calculator implements design.Calculator for one-way slabs.
type Calculator struct{}

// Design runs the slab pipeline.
func Design(id code.ID, in Input) (*design.Result, error) {
	return design.Run[Input](Calculator{}, id, in)
}

// Validate implements design.Calculator.
func (Calculator) Validate(in Input) error {
	return in.Validate()
}

func selfWeight(h float64) float64 {
	return code.ConcreteUnitWeight * h / 1e3
}

// CombineLoads implements design.Calculator. Self weight joins the dead load;
// actions are per metre width.
func (Calculator) CombineLoads(in Input, p code.Profile) loads.Demand {
	c := table[in.support()]
	l := in.Span / 1e3
	wd := in.DeadLoad + selfWeight(in.Thickness)
	wl := in.LiveLoad
	return loads.Combine([]loads.Load{
		{Action: loads.Moment, Dead: c.Moment * wd * l * l, Live: c.Moment * wl * l * l},
		{Action: loads.Shear, Dead: c.Shear * wd * l, Live: c.Shear * wl * l},
	}, p, loads.Moment)
}

type model struct {
	h, d   float64
	fc, fy float64
	cover  float64
	mu, vu float64
}

func newModel(in Input, p code.Profile, d loads.Demand, warnings *[]design.Warning) model {
	fc, _ := code.ConcreteStrength(in.ConcreteGrade)
	fy, _ := code.SteelYield(in.SteelGrade)
	m := model{
		h:     in.Thickness,
		fc:    fc,
		fy:    fy,
		cover: design.EffectiveCover(in.CoverThickness, p.MinCover.Slab, warnings),
		mu:    math.Abs(d.Get(loads.Moment)),
		vu:    math.Abs(d.Get(loads.Shear)),
	}
	m.d = m.h - m.cover - provisionalBar/2
	return m
}

// AnalyzeSection implements design.Calculator.
func (Calculator) AnalyzeSection(in Input, p code.Profile, d loads.Demand) design.Analysis {
	var warnings []design.Warning
	m := newModel(in, p, d, &warnings)
	c := table[in.support()]
	phi := p.FlexurePhi()

	asMin := p.ShrinkageRatio * strip * m.h
	asMax := code.RhoTensionControlled(m.fc, m.fy) * strip * m.d
	phiMnMax := section.SinglyCapacity(asMax, strip, m.d, m.fc, m.fy, phi)

	as, ok := section.RequiredSteel(m.mu, strip, m.d, m.fc, m.fy, phi)
	if !ok || as > asMax {
		as = asMax * m.mu / phiMnMax
	}
	required := math.Max(as, asMin)
	if as < asMin {
		warnings = append(warnings, design.Warning{
			Code:    design.WarnMinimumSteel,
			Message: fmt.Sprintf("shrinkage and temperature steel %.0f mm²/m governs over the %.0f mm²/m the moment needs", asMin, as),
		})
	}

	phiVc := p.ShearPhi() * 0.17 * math.Sqrt(m.fc) * strip * m.d / 1e3
	hMin := in.Span / c.Divisor * p.MinThicknessFactor(m.fy)

	checks := []design.Check{
		design.NewCheck("flexure", "kN·m/m", m.mu, phiMnMax, design.ReinforcementRatio),
		design.NewCheck("shear", "kN/m", m.vu, phiVc, design.Overstress),
		design.NewCheck("thickness", "mm", hMin, m.h, design.Overstress),
	}
	return design.Analysis{
		Demand: d,
		Geometry: design.Geometry{
			Width:          strip,
			Depth:          m.h,
			Length:         in.Span,
			Cover:          m.cover,
			EffectiveDepth: m.d,
			GrossArea:      strip * m.h,
		},
		Checks: checks,
		Utilization: map[string]float64{
			"flexure":   checks[0].Utilization,
			"shear":     checks[1].Utilization,
			"thickness": checks[2].Utilization,
		},
		Requirements: []design.Requirement{
			{Zone: "main", Required: required, Minimum: asMin, Maximum: asMax},
			{Zone: "distribution", Required: asMin, Minimum: asMin, Maximum: asMax},
		},
		Warnings: warnings,
		Details: &Details{
			Coefficients: c,
			SelfWeight:   selfWeight(m.h),
			Phi:          phi,
			PhiVc:        phiVc,
			MinimumDepth: hMin,
		},
	}
}

// SelectReinforcement implements design.Calculator.
func (Calculator) SelectReinforcement(in Input, p code.Profile, a design.Analysis) design.Selection {
	var discard []design.Warning
	m := newModel(in, p, a.Demand, &discard)
	main, dist := a.Requirements[0], a.Requirements[1]
	phi := p.FlexurePhi()

	var sel design.Selection
	pick := func(req design.Requirement, maxSpacing float64, sizes []rebar.Bar, accept func(rebar.Group) bool) (rebar.Group, bool) {
		g, st := rebar.Select(rebar.Mat{
			Zone:       req.Zone,
			Target:     req.Required,
			MaxSpacing: maxSpacing,
			Sizes:      sizes,
		}.Candidates(), req.Maximum, accept)
		c, w := design.SelectionCheck(req.Zone, g, st, req.Minimum, req.Maximum)
		sel.Checks = append(sel.Checks, c)
		if w != nil {
			sel.Warnings = append(sel.Warnings, *w)
		}
		return g, st != rebar.NoFit
	}

	g, ok := pick(main, rebar.MaxMatSpacing(m.h), rebar.Sizes(10, 25), func(g rebar.Group) bool {
		return section.SinglyCapacity(g.Area, strip, m.barDepth(g), m.fc, m.fy, phi) >= m.mu*(1-design.Tolerance)
	})
	if !ok {
		return sel
	}
	sel.Checks = append(sel.Checks, design.NewCheck("layout", "kN·m/m", m.mu,
		section.SinglyCapacity(g.Area, strip, m.barDepth(g), m.fc, m.fy, phi), design.ReinforcementRatio))
	sel.Groups = append(sel.Groups, g)

	if d, ok := pick(dist, math.Min(distributionLimit*m.h, 450), rebar.Sizes(10, 16), nil); ok {
		sel.Groups = append(sel.Groups, d)
	}
	return sel
}

func (m model) barDepth(g rebar.Group) float64 {
	return m.h - m.cover - float64(g.BarSize)/2
}
