package column

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/design"
	"github.com/alexiusacademia/gorcd/internal/loads"
	"github.com/alexiusacademia/gorcd/internal/rebar"
	"github.com/alexiusacademia/gorcd/internal/section"
)

const (
	tieDiameter     = 10.0 // mm
	provisionalBar  = 20.0 // mm, bar size assumed before selection
	interiorLayers  = 4    // layers between the two faces in the provisional section
	ratioStep       = 1e-4 // grid step of the provisional ratio scan
	radiusFactor    = 0.3  // r = 0.3h for rectangular sections
	minEccentricity = 15.0 // mm
	// M2,min = Pu(15 + 0.03h)
	minEccentricityFactor = 0.03
	lowAxialFactor        = 0.1 // Bresler is unreliable below 0.1 f'c Ag
	smallestBar           = 16
	largestBar            = 36
)

// Bresler holds the nominal capacities combined by the reciprocal load method.
type Bresler struct {
	Pnx float64 `json:"pnx"` // kN, bending about X
	Pny float64 `json:"pny"` // kN, bending about Y
	Po  float64 `json:"po"`  // kN, concentric
	Pi  float64 `json:"pi"`  // kN, biaxial
}

// Details carries the column-specific intermediate results.
type Details struct {
	Slenderness      []Slenderness `json:"slenderness"`
	ProvisionalRatio float64       `json:"provisionalRatio"`
	AxialRatio       float64       `json:"axialRatio"` // ratio the axial load alone needs
	Phi              float64       `json:"phi"`
	NominalMax       float64       `json:"nominalMax"` // Pn,max (kN)
	Bresler          Bresler       `json:"bresler"`
}

// Calculator implements design.Calculator for columns.
type Calculator struct{}

// Design runs the column pipeline.
func Design(id code.ID, in Input) (*design.Result, error) {
	return design.Run[Input](Calculator{}, id, in)
}

// Validate implements design.Calculator.
func (Calculator) Validate(in Input) error {
	return in.Validate()
}

// CombineLoads implements design.Calculator. The axial load governs the
// combination; moments follow it with their signs.
func (Calculator) CombineLoads(in Input, p code.Profile) loads.Demand {
	r := in.LiveLoadRatio
	return loads.Combine([]loads.Load{
		loads.Split(loads.Axial, in.AxialLoad, r),
		loads.Split(loads.MomentX, in.MomentX, r),
		loads.Split(loads.MomentY, in.MomentY, r),
	}, p, loads.Axial)
}

// model is the column under one profile and demand.
type model struct {
	b, h      float64 // ColumnWidth (X), ColumnDepth (Y)
	fc, fy    float64
	cover     float64
	edge      float64 // depth of the face layer in the provisional section
	klu       float64
	pu        float64
	mux, muy  float64
	sustained float64
	phi       float64
	alpha     float64 // Pn,max / Po
	spiral    bool
	profile   code.Profile
}

func newModel(in Input, p code.Profile, d loads.Demand, warnings *[]design.Warning) model {
	fc, fy := in.materials()
	m := model{
		b:         in.ColumnWidth,
		h:         in.ColumnDepth,
		fc:        fc,
		fy:        fy,
		cover:     design.EffectiveCover(in.CoverThickness, p.MinCover.Column, warnings),
		klu:       in.lengthFactor() * in.ColumnHeight,
		pu:        math.Abs(d.Get(loads.Axial)),
		mux:       d.Get(loads.MomentX),
		muy:       d.Get(loads.MomentY),
		sustained: d.Sustained,
		spiral:    in.spiral(),
		profile:   p,
		alpha:     0.80,
	}
	if m.spiral {
		m.alpha = 0.85
	}
	m.edge = m.cover + tieDiameter + provisionalBar/2
	m.phi = p.CompressionPhi(m.spiral)
	return m
}

func (m model) grossArea() float64 { return m.b * m.h }

// sections returns the section bent about X (depth h) and about Y (depth b).
func (m model) sections(layersX, layersY []section.Layer) (section.Section, section.Section) {
	return section.Section{Width: m.b, Depth: m.h, Fc: m.fc, Fy: m.fy, Layers: layersX},
		section.Section{Width: m.h, Depth: m.b, Fc: m.fc, Fy: m.fy, Layers: layersY}
}

func (m model) provisional(rho float64) (section.Section, section.Section) {
	ast := rho * m.grossArea()
	return m.sections(
		section.DistributedLayers(m.h, m.edge, ast, interiorLayers),
		section.DistributedLayers(m.b, m.edge, ast, interiorLayers),
	)
}

func (m model) actual(g rebar.Group) (section.Section, section.Section) {
	bar, _ := rebar.Lookup(g.BarSize)
	return m.sections(
		section.LayersFromBars(g.Layout, bar.Area, m.h, true),
		section.LayersFromBars(g.Layout, bar.Area, m.b, false),
	)
}

// state is the biaxial check of one reinforced section.
type state struct {
	slenderness []Slenderness
	stable      bool
	bresler     Bresler
	nominalMax  float64
	capacity    float64 // φ·min(Pi, Pn,max) (kN)
	utilization float64
}

func (m model) evaluate(secX, secY section.Section) state {
	sx := magnify("x", m.mux, m.pu, m.klu, secX, m.profile, m.sustained)
	sy := magnify("y", m.muy, m.pu, m.klu, secY, m.profile, m.sustained)
	st := state{
		slenderness: []Slenderness{sx, sy},
		stable:      sx.Stable && sy.Stable,
	}
	po := secX.AxialCapacity()
	st.nominalMax = m.alpha * po
	if !st.stable {
		st.bresler = Bresler{Po: po}
		st.utilization = design.MaxUtilization
		return st
	}

	ex := math.Abs(sx.DesignMoment) / m.pu * 1e3
	ey := math.Abs(sy.DesignMoment) / m.pu * 1e3
	pnx := secX.LoadAtEccentricity(ex)
	pny := secY.LoadAtEccentricity(ey)
	st.bresler = Bresler{Pnx: pnx, Pny: pny, Po: po, Pi: bresler(pnx, pny, po)}
	st.capacity = m.phi * math.Min(st.bresler.Pi, st.nominalMax)
	st.utilization = design.Ratio(m.pu, st.capacity)
	return st
}

func (st state) passes() bool {
	return st.stable && st.utilization <= 1+design.Tolerance
}

// axialRatio is the closed-form ratio at which φ·Pn,max equals Pu.
func (m model) axialRatio() float64 {
	return (m.pu*1e3/(m.phi*m.alpha*m.grossArea()) - code.StressBlock*m.fc) / (m.fy - code.StressBlock*m.fc)
}

func (m model) axialCapacity(rho float64) float64 {
	ag := m.grossArea()
	return m.phi * m.alpha * (code.StressBlock*m.fc*ag*(1-rho) + m.fy*rho*ag) / 1e3
}

// AnalyzeSection implements design.Calculator.
func (Calculator) AnalyzeSection(in Input, p code.Profile, d loads.Demand) design.Analysis {
	var warnings []design.Warning
	m := newModel(in, p, d, &warnings)
	rhoMin, rhoMax := p.ColumnRhoMin, p.ColumnRhoMax
	ag := m.grossArea()

	// Axial check: utilization is read at the ratio the axial load alone
	// needs, clamped to the permitted band.
	rhoAxial := m.axialRatio()
	var axialUtil float64
	switch {
	case rhoAxial <= rhoMin:
		axialUtil = design.Ratio(m.pu, m.axialCapacity(rhoMin))
	case rhoAxial <= rhoMax:
		axialUtil = 1
	default:
		axialUtil = design.Ratio(m.pu, m.axialCapacity(rhoMax))
	}

	// Biaxial check: first ratio on the grid whose section carries the demand.
	steps := int(math.Round((rhoMax - rhoMin) / ratioStep))
	rhoBiaxial := rhoMax
	for i := 0; i <= steps; i++ {
		rho := rhoMin + float64(i)*ratioStep
		if m.evaluate(m.provisional(rho)).passes() {
			rhoBiaxial = rho
			break
		}
	}

	rho := math.Max(math.Min(math.Max(rhoAxial, rhoMin), rhoMax), rhoBiaxial)
	st := m.evaluate(m.provisional(rho))

	checks := []design.Check{
		design.WithUtilization("axial", "kN", m.pu, m.axialCapacity(math.Min(math.Max(rhoAxial, rhoMin), rhoMax)), axialUtil, design.ReinforcementRatio),
		stabilityCheck(m, st),
		design.NewCheck("biaxial", "kN", m.pu, st.capacity, design.ReinforcementRatio),
	}
	if !st.stable {
		checks[2] = design.WithUtilization("biaxial", "kN", m.pu, 0, design.MaxUtilization, design.ReinforcementRatio)
	}

	for _, s := range st.slenderness {
		if s.Slender && s.Stable {
			warnings = append(warnings, design.Warning{
				Code: design.WarnMagnification,
				Message: fmt.Sprintf("kℓu/r = %.1f about %s exceeds %.0f; moment magnified by δ = %.3f (%.1f → %.1f kN·m)",
					s.Ratio, s.Axis, s.Limit, s.Magnifier, s.Moment, s.DesignMoment),
			})
		}
	}
	if m.pu < lowAxialFactor*m.fc*ag/1e3 {
		warnings = append(warnings, design.Warning{
			Code:    design.WarnLowAxial,
			Message: fmt.Sprintf("Pu = %.0f kN is below 0.1 f'c Ag; the reciprocal load method is unconservative there, check as a beam-column", m.pu),
		})
	}

	return design.Analysis{
		Demand: d,
		Geometry: design.Geometry{
			Width:          m.b,
			Depth:          m.h,
			Length:         in.ColumnHeight,
			Cover:          m.cover,
			EffectiveDepth: m.h - m.edge,
			GrossArea:      ag,
		},
		Checks: checks,
		Utilization: map[string]float64{
			"axial":   axialUtil,
			"biaxial": checks[2].Utilization,
		},
		Requirements: []design.Requirement{{
			Zone:     "perimeter",
			Required: rho * ag,
			Minimum:  rhoMin * ag,
			Maximum:  rhoMax * ag,
		}},
		Warnings: warnings,
		Details: &Details{
			Slenderness:      st.slenderness,
			ProvisionalRatio: rho,
			AxialRatio:       rhoAxial,
			Phi:              m.phi,
			NominalMax:       st.nominalMax,
			Bresler:          st.bresler,
		},
	}
}

func stabilityCheck(m model, st state) design.Check {
	var index, capacity float64
	for _, s := range st.slenderness {
		if s.Slender && s.StabilityIndex > index {
			index = s.StabilityIndex
			capacity = m.profile.Phi.Stiffness * s.CriticalLoad
		}
	}
	c := design.WithUtilization("stability", "kN", m.pu, capacity, index, design.Overstress)
	if !st.stable {
		c.Pass, c.Reason = false, design.Overstress
	}
	return c
}

// SelectReinforcement implements design.Calculator. Candidates are tried
// smallest first and the first whose actual bar arrangement carries the
// demand is kept.
func (Calculator) SelectReinforcement(in Input, p code.Profile, a design.Analysis) design.Selection {
	var discard []design.Warning
	m := newModel(in, p, a.Demand, &discard)
	req := a.Requirements[0]

	minBars := 4
	if m.spiral {
		minBars = 6
	}
	candidates := rebar.Perimeter{
		Width:   m.b,
		Depth:   m.h,
		Cover:   m.cover,
		Tie:     tieDiameter,
		Target:  req.Required,
		MinBars: minBars,
		Sizes:   rebar.Sizes(smallestBar, largestBar),
	}.Candidates()

	g, status := rebar.Select(candidates, req.Maximum, func(g rebar.Group) bool {
		return m.evaluate(m.actual(g)).passes()
	})

	var sel design.Selection
	ratio, warn := design.SelectionCheck("reinforcement", g, status, req.Minimum, req.Maximum)
	sel.Checks = append(sel.Checks, ratio)
	if warn != nil {
		sel.Warnings = append(sel.Warnings, *warn)
	}
	if status == rebar.NoFit {
		return sel
	}

	st := m.evaluate(m.actual(g))
	layout := design.NewCheck("layout", "kN", m.pu, st.capacity, design.ReinforcementRatio)
	if !st.stable {
		layout = design.WithUtilization("layout", "kN", m.pu, 0, design.MaxUtilization, design.ReinforcementRatio)
	}
	sel.Checks = append(sel.Checks, layout)
	sel.Groups = append(sel.Groups, g, m.transverse(g))
	return sel
}

// transverse returns ties spaced at min(16db, 48dt, least dimension), or a
// spiral pitched for ρs = 0.45(Ag/Ach - 1)f'c/fy.
func (m model) transverse(g rebar.Group) rebar.Group {
	tie, _ := rebar.Lookup(int(tieDiameter))
	if m.spiral {
		coreX, coreY := m.b-2*m.cover, m.h-2*m.cover
		ach := coreX * coreY
		rhoS := 0.45 * (m.grossArea()/ach - 1) * m.fc / m.fy
		pitch := tie.Area * 2 * (coreX + coreY) / (ach * rhoS)
		pitch = math.Floor(math.Min(math.Max(pitch, 35), 85)/5) * 5
		return rebar.Group{Zone: "spiral", BarSize: tie.Diameter, BarCount: 1, Spacing: pitch, Area: tie.Area, Transverse: true}
	}
	s := math.Min(math.Min(16*float64(g.BarSize), 48*tieDiameter), math.Min(m.b, m.h))
	s = math.Floor(s/5) * 5
	return rebar.Group{Zone: "ties", BarSize: tie.Diameter, BarCount: 1, Spacing: s, Area: tie.Area, Transverse: true}
}
