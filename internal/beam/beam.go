package beam

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
	stirrupDiameter = 10.0 // mm
	stirrupLegs     = 2
	provisionalBar  = 20.0 // mm, bar size assumed for d before selection
	maxSteelRatio   = 0.04 // (As + As') / bh
	maxStirrupYield = 420.0
	spacingStep     = 25.0 // mm
	smallestBar     = 12
	maxRows         = 2 // tension bars
	growBars        = 4 // counts tried per size past the minimum
	largestBar      = 36
)

// minimum depth divisors, h = ℓ/divisor for fy = 420 MPa
var depthDivisor = map[Support]float64{
	Simple:     16,
	OneEnd:     18.5,
	BothEnds:   21,
	Cantilever: 8,
}

// Shear holds the one-way shear design.
type Shear struct {
	Vc             float64 `json:"vc"`             // kN, nominal concrete
	VsRequired     float64 `json:"vsRequired"`     // kN
	VsMax          float64 `json:"vsMax"`          // kN
	Phi            float64 `json:"phi"`            //
	Spacing        float64 `json:"spacing"`        // mm
	MaxSpacing     float64 `json:"maxSpacing"`     // mm
	MinAvPerLength float64 `json:"minAvPerLength"` // mm²/mm
}

// Deflection holds the minimum depth check.
type Deflection struct {
	MinimumDepth float64 `json:"minimumDepth"` // mm
	Divisor      float64 `json:"divisor"`
	SteelFactor  float64 `json:"steelFactor"`
}

// Details carries the beam-specific intermediate results.
type Details struct {
	TensionFace string        `json:"tensionFace"` // "bottom" or "top"
	Flexure     FlexureResult `json:"flexure"`
	Shear       Shear         `json:"shear"`
	Deflection  Deflection    `json:"deflection"`
	StrainT     float64       `json:"strainT,omitempty"` // εt of the provided layout
}

// Calculator implements design.Calculator for beams.
type Calculator struct{}

// Design runs the beam pipeline.
func Design(id code.ID, in Input) (*design.Result, error) {
	return design.Run[Input](Calculator{}, id, in)
}

// Validate implements design.Calculator.
func (Calculator) Validate(in Input) error {
	return in.Validate()
}

// CombineLoads implements design.Calculator. The moment governs.
func (Calculator) CombineLoads(in Input, p code.Profile) loads.Demand {
	r := in.LiveLoadRatio
	return loads.Combine([]loads.Load{
		loads.Split(loads.Moment, in.Moment, r),
		loads.Split(loads.Shear, in.Shear, r),
	}, p, loads.Moment)
}

// model is the beam under one profile and demand.
type model struct {
	b, h    float64
	fc, fy  float64
	cover   float64
	d       float64 // to the tension bars
	dc      float64 // to the compression bars
	mu, vu  float64
	span    float64
	support Support
	profile code.Profile
}

func newModel(in Input, p code.Profile, d loads.Demand, warnings *[]design.Warning) model {
	fc, fy := in.materials()
	m := model{
		b:       in.Width,
		h:       in.Height,
		fc:      fc,
		fy:      fy,
		cover:   design.EffectiveCover(in.CoverThickness, p.MinCover.Beam, warnings),
		mu:      d.Get(loads.Moment),
		vu:      math.Abs(d.Get(loads.Shear)),
		span:    in.Span,
		support: in.support(),
		profile: p,
	}
	m.dc = m.cover + stirrupDiameter + provisionalBar/2
	m.d = m.h - m.dc
	return m
}

// tensionFace names the face in tension; hogging moments put it on top.
func (m model) tensionFace() string {
	if m.mu < 0 {
		return "top"
	}
	return "bottom"
}

func (m model) compressionFace() string {
	if m.mu < 0 {
		return "bottom"
	}
	return "top"
}

func (m model) flexure() Flexure {
	return Flexure{
		Width:          m.b,
		Height:         m.h,
		EffectiveDepth: m.d,
		CoverComp:      m.dc,
		Fc:             m.fc,
		Fy:             m.fy,
		Phi:            m.profile.FlexurePhi(),
		RhoMin:         m.profile.FlexuralRhoMin(m.fc, m.fy),
		MaxArea:        maxSteelRatio * m.b * m.h,
	}
}

func (m model) shear() Shear {
	bd := m.b * m.d
	rootFc := math.Sqrt(m.fc)
	fyt := math.Min(m.fy, maxStirrupYield)
	s := Shear{
		Vc:    0.17 * rootFc * bd / 1e3,
		VsMax: 0.66 * rootFc * bd / 1e3,
		Phi:   m.profile.ShearPhi(),
	}
	s.VsRequired = math.Max(m.vu/s.Phi-s.Vc, 0)

	s.MaxSpacing = math.Min(m.d/2, 600)
	if s.VsRequired > 0.33*rootFc*bd/1e3 {
		s.MaxSpacing = math.Min(m.d/4, 300)
	}
	s.MinAvPerLength = math.Max(0.062*rootFc, 0.35) * m.b / fyt

	av := stirrupLegs * math.Pi * stirrupDiameter * stirrupDiameter / 4
	spacing := math.Min(s.MaxSpacing, av/s.MinAvPerLength)
	if vs := math.Min(s.VsRequired, s.VsMax); vs > 0 {
		spacing = math.Min(spacing, av*fyt*m.d/(vs*1e3))
	}
	s.Spacing = math.Max(math.Floor(spacing/spacingStep)*spacingStep, spacingStep)
	return s
}

func (m model) deflection() Deflection {
	df := Deflection{
		Divisor:     depthDivisor[m.support],
		SteelFactor: m.profile.MinThicknessFactor(m.fy),
	}
	df.MinimumDepth = m.span / df.Divisor * df.SteelFactor
	return df
}

// AnalyzeSection implements design.Calculator.
func (Calculator) AnalyzeSection(in Input, p code.Profile, d loads.Demand) design.Analysis {
	var warnings []design.Warning
	m := newModel(in, p, d, &warnings)
	f := m.flexure()
	fr := f.Design(m.mu)
	sh := m.shear()
	df := m.deflection()
	mu := math.Abs(m.mu)

	checks := []design.Check{
		design.NewCheck("flexure", "kN·m", mu, fr.PhiMnMax, design.ReinforcementRatio),
		design.NewCheck("shear", "kN", m.vu, sh.Phi*(sh.Vc+sh.VsMax), design.Overstress),
		design.NewCheck("deflection", "mm", df.MinimumDepth, m.h, design.Overstress),
	}

	if fr.MinimumGoverns {
		warnings = append(warnings, design.Warning{
			Code:    design.WarnMinimumSteel,
			Message: fmt.Sprintf("minimum tension steel %.0f mm² governs over the %.0f mm² the moment needs", fr.AsMin, fr.AsRequired),
		})
	}
	if fr.RequiresCompSteel {
		msg := fmt.Sprintf("Mu = %.1f kN·m exceeds the tension-controlled singly capacity %.1f kN·m; compression steel %.0f mm² added", mu, fr.Mu1Max, fr.AscRequired)
		if fr.FscStress > 0 && !fr.CompYielded {
			msg += fmt.Sprintf(" (f's = %.0f MPa, not yielded)", fr.FscStress)
		}
		warnings = append(warnings, design.Warning{Code: design.WarnDoublyReinforced, Message: msg})
	}
	if sh.VsRequired > 0 {
		warnings = append(warnings, design.Warning{
			Code:    design.WarnStirrups,
			Message: fmt.Sprintf("Vu = %.1f kN exceeds φVc = %.1f kN; stirrups carry Vs = %.1f kN", m.vu, sh.Phi*sh.Vc, sh.VsRequired),
		})
	}

	maxArea := f.MaxArea
	return design.Analysis{
		Demand: d,
		Geometry: design.Geometry{
			Width:          m.b,
			Depth:          m.h,
			Length:         m.span,
			Cover:          m.cover,
			EffectiveDepth: m.d,
			GrossArea:      m.b * m.h,
		},
		Checks: checks,
		Utilization: map[string]float64{
			"flexure":    checks[0].Utilization,
			"shear":      checks[1].Utilization,
			"deflection": checks[2].Utilization,
		},
		Requirements: []design.Requirement{
			{Zone: m.tensionFace(), Required: fr.AsTension, Minimum: fr.AsMin, Maximum: maxArea},
			{Zone: m.compressionFace(), Required: fr.AscRequired, Minimum: 0, Maximum: maxArea},
		},
		Warnings: warnings,
		Details: &Details{
			TensionFace: m.tensionFace(),
			Flexure:     fr,
			Shear:       sh,
			Deflection:  df,
		},
	}
}

// SelectReinforcement implements design.Calculator. The compression row is
// fixed first (hangers when no compression steel is needed); tension bars are
// then tried smallest first until the strain-compatibility capacity of the
// whole layout covers Mu.
func (Calculator) SelectReinforcement(in Input, p code.Profile, a design.Analysis) design.Selection {
	var discard []design.Warning
	m := newModel(in, p, a.Demand, &discard)
	tension, compression := a.Requirements[0], a.Requirements[1]
	edge := m.cover + stirrupDiameter
	phi := p.FlexurePhi()
	mu := math.Abs(m.mu)

	var sel design.Selection
	comp, compStatus := rebar.Select(rebar.Row{
		Zone:    compression.Zone,
		Width:   m.b,
		Edge:    edge,
		Target:  compression.Required,
		MinBars: 2,
		Sizes:   rebar.Sizes(smallestBar, largestBar),
	}.Candidates(), compression.Maximum, nil)
	if compStatus != rebar.Selected {
		c, w := design.SelectionCheck("compression", comp, compStatus, 0, compression.Maximum)
		sel.Checks = append(sel.Checks, c)
		if w != nil {
			sel.Warnings = append(sel.Warnings, *w)
		}
		return sel
	}

	tens, status := rebar.Select(rebar.Row{
		Zone:    tension.Zone,
		Width:   m.b,
		Edge:    edge,
		Target:  tension.Required,
		MinBars: 2,
		MaxRows: maxRows,
		Grow:    growBars,
		Sizes:   rebar.Sizes(smallestBar, largestBar),
	}.Candidates(), tension.Maximum-comp.Area, func(g rebar.Group) bool {
		return phi*m.layout(g, comp).FlexuralCapacity().M >= mu*(1-design.Tolerance)
	})

	c, w := design.SelectionCheck("tension", tens, status, tension.Minimum, tension.Maximum)
	sel.Checks = append(sel.Checks, c)
	if w != nil {
		sel.Warnings = append(sel.Warnings, *w)
	}
	if status == rebar.NoFit {
		return sel
	}

	st := m.layout(tens, comp).FlexuralCapacity()
	sel.Checks = append(sel.Checks,
		design.RatioCheck("total steel", tens.Area+comp.Area, tension.Minimum, tension.Maximum),
		design.NewCheck("layout", "kN·m", mu, phi*st.M, design.ReinforcementRatio),
	)
	if st.EpsilonT < code.EpsilonTC {
		sel.Warnings = append(sel.Warnings, design.Warning{
			Code:    design.WarnTransitionSection,
			Message: fmt.Sprintf("provided layout reaches εt = %.4f < %.3f; section is not tension-controlled", st.EpsilonT, code.EpsilonTC),
		})
	}
	if dt, ok := a.Details.(*Details); ok {
		refined := *dt
		refined.StrainT = st.EpsilonT
		sel.Details = &refined
	}

	sh := m.shear()
	stirrup, _ := rebar.Lookup(int(stirrupDiameter))
	sel.Groups = append(sel.Groups,
		m.place(tens, true),
		m.place(comp, false),
		rebar.Group{
			Zone:       "stirrups",
			BarSize:    stirrup.Diameter,
			BarCount:   stirrupLegs,
			Spacing:    sh.Spacing,
			Area:       stirrupLegs * stirrup.Area,
			Transverse: true,
		},
	)
	return sel
}

// barDepth is the distance from a face to the centre of a row's first layer.
func (m model) barDepth(g rebar.Group) float64 {
	return m.cover + stirrupDiameter + float64(g.BarSize)/2
}

func perRow(g rebar.Group) int {
	rows := max(g.Rows, 1)
	return (g.BarCount + rows - 1) / rows
}

// layers splits a row group into its stacked layers, measured from the face
// the row sits against.
func (m model) layers(g rebar.Group) []section.Layer {
	bar, _ := rebar.Lookup(g.BarSize)
	n := perRow(g)
	var out []section.Layer
	for i, left := 0, g.BarCount; left > 0; i++ {
		k := min(n, left)
		out = append(out, section.Layer{
			Depth:       m.barDepth(g) + float64(i)*rebar.RowGap(float64(bar.Diameter)),
			Area:        float64(k) * bar.Area,
			Description: g.Zone,
		})
		left -= k
	}
	return out
}

// layout is the provided section measured from the compression face.
func (m model) layout(tens, comp rebar.Group) section.Section {
	s := section.Section{Width: m.b, Depth: m.h, Fc: m.fc, Fy: m.fy}
	s.Layers = append(s.Layers, m.layers(comp)...)
	for _, l := range m.layers(tens) {
		l.Depth = m.h - l.Depth
		s.Layers = append(s.Layers, l)
	}
	return s
}

// place sets the elevation of every bar, origin at the bottom face.
func (m model) place(g rebar.Group, tension bool) rebar.Group {
	top := (m.mu < 0) == tension
	ls := m.layers(g)
	n := perRow(g)
	pts := make([]section.Point, len(g.Layout))
	for i, pt := range g.Layout {
		y := ls[min(i/n, len(ls)-1)].Depth
		if top {
			y = m.h - y
		}
		pts[i] = section.Point{X: pt.X, Y: y}
	}
	g.Layout = pts
	return g
}
