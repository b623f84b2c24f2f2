package wall

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/design"
	"github.com/alexiusacademia/gorcd/internal/loads"
	"github.com/alexiusacademia/gorcd/internal/rebar"
	"github.com/alexiusacademia/gorcd/internal/section"
	"github.com/alexiusacademia/gorcd/internal/soil"
)

const (
	strip          = 1000.0 // mm
	provisionalBar = 16.0   // mm
)

// Stability is the service-load equilibrium of the wall about its toe, per
// metre run.
type Stability struct {
	Ka                float64 `json:"ka"`
	EarthThrust       float64 `json:"earthThrust"`       // kN, Ka·γ·H²/2
	SurchargeThrust   float64 `json:"surchargeThrust"`   // kN, Ka·q·H
	OverturningMoment float64 `json:"overturningMoment"` // kN·m
	ResistingMoment   float64 `json:"resistingMoment"`   // kN·m
	Weight            float64 `json:"weight"`            // kN, stem + base + soil over heel
	OverturningFactor float64 `json:"overturningFactor"`
	SlidingFactor     float64 `json:"slidingFactor"`
	Eccentricity      float64 `json:"eccentricity"` // m, from the base centre
	QMax              float64 `json:"qMax"`         // kPa
	QMin              float64 `json:"qMin"`         // kPa
	ContactRatio      float64 `json:"contactRatio"`
	BaseWidth         float64 `json:"baseWidth"`        // mm
	ResultantFromToe  float64 `json:"resultantFromToe"` // m
}

// Details carries the wall-specific intermediate results.
type Details struct {
	Stability  Stability `json:"stability"`
	StemHeight float64   `json:"stemHeight"` // mm
	Phi        float64   `json:"phi"`
	PhiVc      float64   `json:"phiVc"`    // kN/m
	PhiMnMax   float64   `json:"phiMnMax"` // kN·m/m
}

// Calculator implements design.Calculator for cantilever retaining walls.
type Calculator struct{}

// Design runs the retaining wall pipeline.
func Design(id code.ID, in Input) (*design.Result, error) {
	return design.Run[Input](Calculator{}, id, in)
}

// Validate implements design.Calculator.
func (Calculator) Validate(in Input) error {
	return in.Validate()
}

// CombineLoads implements design.Calculator. Backfill pressure is an earth
// load (H) and the surcharge a live load; the stem moment at the base
// governs.
func (Calculator) CombineLoads(in Input, p code.Profile) loads.Demand {
	ka := soil.RankineActive(in.FrictionAngle)
	hs := (in.WallHeight - in.BaseThickness) / 1e3
	g, q := in.SoilUnitWeight, in.Surcharge
	return loads.Combine([]loads.Load{
		{Action: loads.Moment, Earth: ka * g * hs * hs * hs / 6, Live: ka * q * hs * hs / 2},
		{Action: loads.Shear, Earth: ka * g * hs * hs / 2, Live: ka * q * hs},
	}, p, loads.Moment)
}

// stability takes moments about the toe. Surcharge over the heel is left
// out of the resisting side.
func stability(in Input) Stability {
	ka := soil.RankineActive(in.FrictionAngle)
	h := in.WallHeight / 1e3
	hs := (in.WallHeight - in.BaseThickness) / 1e3
	toe, ts, heel := in.ToeLength/1e3, in.StemThickness/1e3, in.HeelLength/1e3
	b := toe + ts + heel

	s := Stability{
		Ka:              ka,
		EarthThrust:     ka * in.SoilUnitWeight * h * h / 2,
		SurchargeThrust: ka * in.Surcharge * h,
		BaseWidth:       b * 1e3,
	}
	s.OverturningMoment = s.EarthThrust*h/3 + s.SurchargeThrust*h/2

	stem := code.ConcreteUnitWeight * ts * hs
	base := code.ConcreteUnitWeight * b * in.BaseThickness / 1e3
	backfill := in.SoilUnitWeight * heel * hs
	s.Weight = stem + base + backfill
	s.ResistingMoment = stem*(toe+ts/2) + base*b/2 + backfill*(toe+ts+heel/2)

	s.OverturningFactor = s.ResistingMoment / s.OverturningMoment
	s.SlidingFactor = in.BaseFriction * s.Weight / (s.EarthThrust + s.SurchargeThrust)

	s.ResultantFromToe = (s.ResistingMoment - s.OverturningMoment) / s.Weight
	s.Eccentricity = b/2 - s.ResultantFromToe
	s.QMax, s.QMin, s.ContactRatio = soil.BasePressure(s.Weight, s.Eccentricity, 1, b)
	return s
}

type model struct {
	t, d   float64
	fc, fy float64
	cover  float64
	mu, vu float64
}

func newModel(in Input, p code.Profile, d loads.Demand, warnings *[]design.Warning) model {
	fc, fy := in.materials()
	m := model{
		t:     in.StemThickness,
		fc:    fc,
		fy:    fy,
		cover: design.EffectiveCover(in.CoverThickness, p.MinCover.Wall, warnings),
		mu:    math.Abs(d.Get(loads.Moment)),
		vu:    math.Abs(d.Get(loads.Shear)),
	}
	m.d = m.t - m.cover - provisionalBar/2
	return m
}

// AnalyzeSection implements design.Calculator.
func (Calculator) AnalyzeSection(in Input, p code.Profile, d loads.Demand) design.Analysis {
	var warnings []design.Warning
	m := newModel(in, p, d, &warnings)
	st := stability(in)
	phi := p.FlexurePhi()

	bearing := design.NewCheck("bearing", "kPa", st.QMax, in.AllowableBearing, design.Overstress)
	switch {
	case st.ContactRatio == 0:
		bearing = design.WithUtilization("bearing", "kPa", 0, in.AllowableBearing, design.MaxUtilization, design.Overstress)
		warnings = append(warnings, design.Warning{
			Code:    design.WarnPartialContact,
			Message: "the resultant falls outside the base; the wall overturns",
		})
	case st.ContactRatio < 1:
		warnings = append(warnings, design.Warning{
			Code:    design.WarnPartialContact,
			Message: fmt.Sprintf("resultant at %.3f m from the toe lies outside the middle third; the heel lifts off (%.0f%% contact)", st.ResultantFromToe, 100*st.ContactRatio),
		})
	}

	asMin := p.ShrinkageRatio * strip * m.t
	asMax := code.RhoTensionControlled(m.fc, m.fy) * strip * m.d
	phiMnMax := section.SinglyCapacity(asMax, strip, m.d, m.fc, m.fy, phi)
	as, ok := section.RequiredSteel(m.mu, strip, m.d, m.fc, m.fy, phi)
	if !ok || as > asMax {
		as = asMax * m.mu / phiMnMax
	}
	if as < asMin {
		warnings = append(warnings, design.Warning{
			Code:    design.WarnMinimumSteel,
			Message: fmt.Sprintf("minimum stem steel %.0f mm²/m governs over the %.0f mm²/m the moment needs", asMin, as),
		})
	}
	phiVc := p.ShearPhi() * 0.17 * math.Sqrt(m.fc) * strip * m.d / 1e3

	checks := []design.Check{
		design.NewCheck("overturning", "", p.OverturningSafety, st.OverturningFactor, design.Overstress),
		design.NewCheck("sliding", "", p.SlidingSafety, st.SlidingFactor, design.Overstress),
		bearing,
		design.NewCheck("stem flexure", "kN·m/m", m.mu, phiMnMax, design.ReinforcementRatio),
		design.NewCheck("stem shear", "kN/m", m.vu, phiVc, design.Overstress),
	}
	util := make(map[string]float64, len(checks))
	for _, c := range checks {
		util[c.Name] = c.Utilization
	}

	return design.Analysis{
		Demand: d,
		Geometry: design.Geometry{
			Width:          strip,
			Depth:          m.t,
			Length:         in.WallHeight,
			Cover:          m.cover,
			EffectiveDepth: m.d,
			GrossArea:      strip * m.t,
		},
		Checks:      checks,
		Utilization: util,
		Requirements: []design.Requirement{
			{Zone: "stem", Required: math.Max(as, asMin), Minimum: asMin, Maximum: asMax},
			{Zone: "horizontal", Required: asMin, Minimum: asMin, Maximum: asMax},
		},
		Warnings: warnings,
		Details: &Details{
			Stability:  st,
			StemHeight: in.WallHeight - in.BaseThickness,
			Phi:        phi,
			PhiVc:      phiVc,
			PhiMnMax:   phiMnMax,
		},
	}
}

// SelectReinforcement implements design.Calculator. Vertical stem bars sit
// on the backfill face; horizontal bars take shrinkage and temperature.
func (Calculator) SelectReinforcement(in Input, p code.Profile, a design.Analysis) design.Selection {
	var discard []design.Warning
	m := newModel(in, p, a.Demand, &discard)
	phi := p.FlexurePhi()
	maxSpacing := rebar.MaxMatSpacing(m.t)

	var sel design.Selection
	add := func(req design.Requirement, sizes []rebar.Bar, accept func(rebar.Group) bool) (rebar.Group, bool) {
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
		if st == rebar.NoFit {
			return g, false
		}
		sel.Groups = append(sel.Groups, g)
		return g, true
	}

	capacity := func(g rebar.Group) float64 {
		return section.SinglyCapacity(g.Area, strip, m.t-m.cover-float64(g.BarSize)/2, m.fc, m.fy, phi)
	}
	stem, ok := add(a.Requirements[0], rebar.Sizes(12, 25), func(g rebar.Group) bool {
		return capacity(g) >= m.mu*(1-design.Tolerance)
	})
	if !ok {
		return sel
	}
	sel.Checks = append(sel.Checks, design.NewCheck("layout", "kN·m/m", m.mu, capacity(stem), design.ReinforcementRatio))
	add(a.Requirements[1], rebar.Sizes(10, 16), nil)
	return sel
}
