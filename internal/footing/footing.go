package footing

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
	provisionalBar = 16.0 // mm; d is taken to the contact of the two mats
	interiorAlpha  = 40.0 // αs for an interior column
	smallestBar    = 16
	largestBar     = 32
)

// Bearing is the service soil pressure distribution.
type Bearing struct {
	Load         float64 `json:"load"`         // kN, column plus footing weight
	SelfWeight   float64 `json:"selfWeight"`   // kN
	Eccentricity float64 `json:"eccentricity"` // m
	Kern         float64 `json:"kern"`         // m, L/6
	QMax         float64 `json:"qMax"`         // kPa
	QMin         float64 `json:"qMin"`         // kPa
	Partial      bool    `json:"partial"`
	ContactRatio float64 `json:"contactRatio"` // loaded share of L
}

// Punching is the two-way shear check at d/2 from the column faces.
type Punching struct {
	Perimeter float64 `json:"perimeter"` // bo (mm)
	Vu        float64 `json:"vu"`        // kN
	Vc        float64 `json:"vc"`        // MPa
	PhiVc     float64 `json:"phiVc"`     // kN
}

// Direction collects the one-way checks of bars spanning one direction.
type Direction struct {
	Zone     string  `json:"zone"`
	Span     float64 `json:"span"`     // footing dimension the bars run along (mm)
	Width    float64 `json:"width"`    // dimension the bars are spread across (mm)
	Column   float64 `json:"column"`   // column side parallel to Span (mm)
	Arm      float64 `json:"arm"`      // face to edge (mm)
	Vu       float64 `json:"vu"`       // kN at d from the face
	PhiVc    float64 `json:"phiVc"`    // kN
	Mu       float64 `json:"mu"`       // kN·m at the face
	PhiMnMax float64 `json:"phiMnMax"` // kN·m
}

// Details carries the footing-specific intermediate results.
type Details struct {
	Bearing    Bearing     `json:"bearing"`
	Pressure   float64     `json:"pressure"` // factored design pressure (kPa)
	Punching   Punching    `json:"punching"`
	Directions []Direction `json:"directions"`
}

// Calculator implements design.Calculator for spread footings.
type Calculator struct{}

// Design runs the footing pipeline.
func Design(id code.ID, in Input) (*design.Result, error) {
	return design.Run[Input](Calculator{}, id, in)
}

// Validate implements design.Calculator.
func (Calculator) Validate(in Input) error {
	return in.Validate()
}

// CombineLoads implements design.Calculator. The axial load governs.
func (Calculator) CombineLoads(in Input, p code.Profile) loads.Demand {
	r := in.LiveLoadRatio
	return loads.Combine([]loads.Load{
		loads.Split(loads.Axial, in.AxialLoad, r),
		loads.Split(loads.Moment, in.Moment, r),
	}, p, loads.Axial)
}

type model struct {
	b, l    float64 // footing (mm)
	cb, cl  float64 // column sides along b and l (mm)
	t, d    float64
	fc, fy  float64
	cover   float64
	qu      float64 // factored design pressure (kPa)
	pu      float64
	profile code.Profile
	bearing Bearing
}

func newModel(in Input, p code.Profile, d loads.Demand, warnings *[]design.Warning) model {
	fc, fy := in.materials()
	m := model{
		b:       in.FootingWidth,
		l:       in.FootingLength,
		cb:      in.ColumnWidth,
		cl:      in.ColumnDepth,
		t:       in.Thickness,
		fc:      fc,
		fy:      fy,
		cover:   design.EffectiveCover(in.CoverThickness, p.MinCover.Footing, warnings),
		pu:      math.Abs(d.Get(loads.Axial)),
		profile: p,
	}
	m.d = m.t - m.cover - provisionalBar
	bm, lm := m.b/1e3, m.l/1e3

	w := code.ConcreteUnitWeight * bm * lm * m.t / 1e3
	ps := in.AxialLoad + w
	m.bearing = Bearing{Load: ps, SelfWeight: w, Eccentricity: in.Moment / ps, Kern: lm / 6}
	m.bearing.QMax, m.bearing.QMin, m.bearing.ContactRatio = soil.BasePressure(ps, m.bearing.Eccentricity, bm, lm)
	m.bearing.Partial = m.bearing.ContactRatio < 1

	// Factored net pressure: the column load only, taken uniform at its peak.
	// An overturned base falls back to the concentric pressure.
	var contact float64
	m.qu, _, contact = soil.BasePressure(m.pu, d.Get(loads.Moment)/m.pu, bm, lm)
	if contact == 0 {
		m.qu = m.pu / (bm * lm)
	}
	return m
}

func (m model) punching() Punching {
	rootFc := math.Sqrt(m.fc)
	bo := 2*(m.cb+m.d) + 2*(m.cl+m.d)
	beta := math.Max(m.cb, m.cl) / math.Min(m.cb, m.cl)
	vc := math.Min(0.33, math.Min(0.17*(1+2/beta), 0.083*(interiorAlpha*m.d/bo+2))) * rootFc
	inside := (m.cb + m.d) * (m.cl + m.d) / 1e6
	return Punching{
		Perimeter: bo,
		Vu:        m.qu * math.Max(m.b*m.l/1e6-inside, 0),
		Vc:        vc,
		PhiVc:     m.profile.ShearPhi() * vc * bo * m.d / 1e3,
	}
}

// direction checks the bars running along span, spread across width.
func (m model) direction(zone string, span, width, column float64) Direction {
	phi := m.profile.FlexurePhi()
	dir := Direction{Zone: zone, Span: span, Width: width, Column: column}
	dir.Arm = (span - column) / 2
	dir.Vu = m.qu * width / 1e3 * math.Max(dir.Arm-m.d, 0) / 1e3
	dir.PhiVc = m.profile.ShearPhi() * 0.17 * math.Sqrt(m.fc) * width * m.d / 1e3
	dir.Mu = m.qu * width / 1e3 * math.Pow(dir.Arm/1e3, 2) / 2
	dir.PhiMnMax = section.SinglyCapacity(m.maxSteel(width), width, m.d, m.fc, m.fy, phi)
	return dir
}

func (m model) directions() []Direction {
	return []Direction{
		m.direction("long", m.l, m.b, m.cl),
		m.direction("short", m.b, m.l, m.cb),
	}
}

func (m model) maxSteel(width float64) float64 {
	return code.RhoTensionControlled(m.fc, m.fy) * width * m.d
}

// AnalyzeSection implements design.Calculator.
func (Calculator) AnalyzeSection(in Input, p code.Profile, d loads.Demand) design.Analysis {
	var warnings []design.Warning
	m := newModel(in, p, d, &warnings)
	phi := p.FlexurePhi()

	if m.bearing.Partial && m.bearing.ContactRatio > 0 {
		warnings = append(warnings, design.Warning{
			Code:    design.WarnPartialContact,
			Message: fmt.Sprintf("e = %.3f m lies outside the kern (L/6 = %.3f m); only %.0f%% of the base is in contact", math.Abs(m.bearing.Eccentricity), m.bearing.Kern, 100*m.bearing.ContactRatio),
		})
	}

	bearing := design.NewCheck("bearing", "kPa", m.bearing.QMax, in.AllowableBearing, design.Overstress)
	if m.bearing.ContactRatio == 0 {
		bearing = design.WithUtilization("bearing", "kPa", 0, in.AllowableBearing, design.MaxUtilization, design.Overstress)
		warnings = append(warnings, design.Warning{
			Code:    design.WarnPartialContact,
			Message: fmt.Sprintf("e = %.3f m reaches the footing edge; the base overturns", math.Abs(m.bearing.Eccentricity)),
		})
	}
	checks := []design.Check{bearing}
	punch := m.punching()
	checks = append(checks, design.NewCheck("punching", "kN", punch.Vu, punch.PhiVc, design.Overstress))

	dirs := m.directions()
	var reqs []design.Requirement
	for _, dir := range dirs {
		checks = append(checks,
			design.NewCheck("shear "+dir.Zone, "kN", dir.Vu, dir.PhiVc, design.Overstress),
			design.NewCheck("flexure "+dir.Zone, "kN·m", dir.Mu, dir.PhiMnMax, design.ReinforcementRatio),
		)
		maxArea := m.maxSteel(dir.Width)
		as, ok := section.RequiredSteel(dir.Mu, dir.Width, m.d, m.fc, m.fy, phi)
		if !ok || as > maxArea {
			as = maxArea * dir.Mu / dir.PhiMnMax
		}
		minArea := p.ShrinkageRatio * dir.Width * m.t
		if as < minArea {
			warnings = append(warnings, design.Warning{
				Code:    design.WarnMinimumSteel,
				Message: fmt.Sprintf("%s bars: minimum steel %.0f mm² governs over the %.0f mm² the moment needs", dir.Zone, minArea, as),
			})
		}
		reqs = append(reqs, design.Requirement{Zone: dir.Zone, Required: math.Max(as, minArea), Minimum: minArea, Maximum: maxArea})
	}

	util := make(map[string]float64, len(checks))
	for _, c := range checks {
		util[c.Name] = c.Utilization
	}
	return design.Analysis{
		Demand: d,
		Geometry: design.Geometry{
			Width:          m.b,
			Depth:          m.t,
			Length:         m.l,
			Cover:          m.cover,
			EffectiveDepth: m.d,
			GrossArea:      m.b * m.l,
		},
		Checks:       checks,
		Utilization:  util,
		Requirements: reqs,
		Warnings:     warnings,
		Details: &Details{
			Bearing:    m.bearing,
			Pressure:   m.qu,
			Punching:   punch,
			Directions: dirs,
		},
	}
}

// SelectReinforcement implements design.Calculator. Each mat is a row of
// bars across the footing at no more than min(3h, 450 mm).
func (Calculator) SelectReinforcement(in Input, p code.Profile, a design.Analysis) design.Selection {
	var discard []design.Warning
	m := newModel(in, p, a.Demand, &discard)
	phi := p.FlexurePhi()
	dirs := m.directions()

	var sel design.Selection
	for i, req := range a.Requirements {
		dir := dirs[i]
		g, st := rebar.Select(rebar.Row{
			Zone:       req.Zone,
			Width:      dir.Width,
			Edge:       m.cover,
			Y:          m.cover + provisionalBar/2,
			Target:     req.Required,
			MinBars:    2,
			MaxSpacing: rebar.MaxMatSpacing(m.t),
			Sizes:      rebar.Sizes(smallestBar, largestBar),
		}.Candidates(), req.Maximum, func(g rebar.Group) bool {
			return section.SinglyCapacity(g.Area, dir.Width, m.d, m.fc, m.fy, phi) >= dir.Mu*(1-design.Tolerance)
		})
		c, w := design.SelectionCheck(req.Zone, g, st, req.Minimum, req.Maximum)
		sel.Checks = append(sel.Checks, c)
		if w != nil {
			sel.Warnings = append(sel.Warnings, *w)
		}
		if st != rebar.NoFit {
			sel.Groups = append(sel.Groups, g)
		}
	}
	return sel
}
