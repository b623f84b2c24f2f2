package section

import (
	"math"

	"github.com/alexiusacademia/gorcd/internal/code"
)

const bisectionSteps = 80

// State holds the strain-compatibility solution for one neutral axis depth
type State struct {
	C     float64 // Neutral axis depth from the compression face (mm)
	A     float64 // Compression block depth (mm)
	Beta1 float64 // Stress block factor

	// Forces (kN), compression positive
	Cc float64 // Concrete compression force

	// Steel layer details
	SteelLayers []SteelLayerResult

	// Resultants about mid-depth
	P float64 // Nominal axial force (kN)
	M float64 // Nominal moment (kN-m)

	EpsilonT float64 // Maximum tensile strain (at the deepest layer)
}

// SteelLayerResult holds analysis results for each reinforcement layer
type SteelLayerResult struct {
	Depth      float64 // Position from the compression face (mm)
	Area       float64 // Steel area (mm²)
	Strain     float64 // Strain at this layer, compression positive
	Stress     float64 // Stress (MPa)
	Force      float64 // Force (kN), net of displaced concrete
	IsTension  bool    // True if in tension
	HasYielded bool    // True if steel has yielded
}

// At solves the section for a neutral axis depth c and reports every layer.
func (s Section) At(c float64) State {
	st := State{C: c, Beta1: code.Beta1(s.Fc)}
	st.A = math.Min(st.Beta1*c, s.Depth)
	st.Cc = code.StressBlock * s.Fc * st.A * s.Width / 1e3

	epsilonY := s.Fy / code.Es
	p := st.Cc
	m := st.Cc * (s.Depth/2 - st.A/2) / 1e3
	for _, layer := range s.Layers {
		strain, stress := s.layerStress(layer, c, st.A)
		force := layer.Area * stress / 1e3
		st.SteelLayers = append(st.SteelLayers, SteelLayerResult{
			Depth:      layer.Depth,
			Area:       layer.Area,
			Strain:     strain,
			Stress:     stress,
			Force:      force,
			IsTension:  strain < 0,
			HasYielded: math.Abs(strain) >= epsilonY,
		})
		p += force
		m += force * (s.Depth/2 - layer.Depth) / 1e3
		if strain < 0 {
			st.EpsilonT = math.Max(st.EpsilonT, -strain)
		}
	}
	st.P = p
	st.M = m
	return st
}

// forces is At without the per-layer bookkeeping, in N and N·mm.
func (s Section) forces(c float64) (p, m float64) {
	a := math.Min(code.Beta1(s.Fc)*c, s.Depth)
	cc := code.StressBlock * s.Fc * a * s.Width
	p = cc
	m = cc * (s.Depth/2 - a/2)
	for _, layer := range s.Layers {
		_, stress := s.layerStress(layer, c, a)
		f := layer.Area * stress
		p += f
		m += f * (s.Depth/2 - layer.Depth)
	}
	return p, m
}

// layerStress returns strain and net stress of a layer. Bars inside the
// compression block have the displaced concrete subtracted.
func (s Section) layerStress(layer Layer, c, a float64) (strain, stress float64) {
	strain = code.EpsilonCU * (c - layer.Depth) / c
	stress = math.Max(math.Min(strain*code.Es, s.Fy), -s.Fy)
	if strain > 0 && layer.Depth <= a {
		stress -= code.StressBlock * s.Fc
	}
	return strain, stress
}

// AxialCapacity returns the nominal concentric capacity Po (kN)
func (s Section) AxialCapacity() float64 {
	ast := s.SteelArea()
	return (code.StressBlock*s.Fc*(s.GrossArea()-ast) + s.Fy*ast) / 1e3
}

// LoadAtEccentricity returns the nominal axial capacity Pn (kN) acting at
// eccentricity e (mm) from mid-depth. The neutral axis is found by bisection
// on M - e·P.
func (s Section) LoadAtEccentricity(e float64) float64 {
	e = math.Abs(e)
	if e < 1e-9 {
		return s.AxialCapacity()
	}

	f := func(c float64) float64 {
		p, m := s.forces(c)
		return m - e*p
	}

	lo, hi := 1e-3*s.Depth, 20*s.Depth
	flo := f(lo)
	for i := 0; i < bisectionSteps; i++ {
		mid := (lo + hi) / 2
		fm := f(mid)
		if (fm > 0) == (flo > 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	p, _ := s.forces((lo + hi) / 2)
	return math.Max(p/1e3, 0)
}

// FlexuralCapacity solves for pure bending (P = 0) and returns the state.
func (s Section) FlexuralCapacity() State {
	lo, hi := 1e-3*s.Depth, s.Depth
	for i := 0; i < bisectionSteps; i++ {
		mid := (lo + hi) / 2
		if p, _ := s.forces(mid); p > 0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	return s.At((lo + hi) / 2)
}

// CurvePoint is one point on a nominal interaction diagram.
type CurvePoint struct {
	M float64 `json:"m"` // kN-m
	P float64 `json:"p"` // kN
}

// InteractionCurve samples the nominal P-M curve from pure tension to pure
// compression with n neutral axis positions.
func (s Section) InteractionCurve(n int) []CurvePoint {
	if n < 2 {
		n = 2
	}
	ast := s.SteelArea()
	points := []CurvePoint{{M: 0, P: -s.Fy * ast / 1e3}}
	lo, hi := 1e-3*s.Depth, 3*s.Depth
	ratio := math.Pow(hi/lo, 1/float64(n-1))
	c := lo
	for i := 0; i < n; i++ {
		p, m := s.forces(c)
		points = append(points, CurvePoint{M: m / 1e6, P: p / 1e3})
		c *= ratio
	}
	return append(points, CurvePoint{M: 0, P: s.AxialCapacity()})
}
