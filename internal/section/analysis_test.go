package section

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func column() Section {
	return Section{
		Width:  400,
		Depth:  400,
		Fc:     30,
		Fy:     420,
		Layers: DistributedLayers(400, 60, 6400, 4),
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, column().Validate())

	tests := []struct {
		name string
		edit func(*Section)
	}{
		{"zero width", func(s *Section) { s.Width = 0 }},
		{"zero fc", func(s *Section) { s.Fc = 0 }},
		{"zero fy", func(s *Section) { s.Fy = 0 }},
		{"layer outside", func(s *Section) { s.Layers[0].Depth = 450 }},
		{"negative area", func(s *Section) { s.Layers[0].Area = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := column()
			tt.edit(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalid)
		})
	}
}

func TestDistributedLayers(t *testing.T) {
	layers := DistributedLayers(400, 60, 6400, 4)
	require.Len(t, layers, 6)
	assert.InDelta(t, 6400, column().SteelArea(), 1e-9)
	assert.Equal(t, 60.0, layers[0].Depth)
	assert.Equal(t, 340.0, layers[5].Depth)
	assert.Equal(t, 1600.0, layers[0].Area)
	assert.Equal(t, 800.0, layers[1].Area)
	assert.InDelta(t, 116, layers[1].Depth, 1e-9)
}

func TestLayersFromBars(t *testing.T) {
	bars := []Point{{60, 60}, {340, 60}, {60, 340}, {340, 340}, {200, 60}, {200, 340}}
	layers := LayersFromBars(bars, 491, 400, true)
	require.Len(t, layers, 2)
	assert.Equal(t, 60.0, layers[0].Depth)
	assert.Equal(t, 3*491.0, layers[0].Area)

	layers = LayersFromBars(bars, 491, 400, false)
	require.Len(t, layers, 3)
	assert.Equal(t, 2*491.0, layers[1].Area)
}

func TestAxialCapacity(t *testing.T) {
	s := column()
	want := (0.85*30*(160000-6400) + 420*6400) / 1e3
	assert.InDelta(t, want, s.AxialCapacity(), 1e-6)
	assert.InDelta(t, want, s.LoadAtEccentricity(0), 1e-6)
}

func TestLoadAtEccentricityDecreases(t *testing.T) {
	s := column()
	prev := s.AxialCapacity()
	for _, e := range []float64{20, 50, 100, 200, 400, 1000} {
		pn := s.LoadAtEccentricity(e)
		assert.Less(t, pn, prev, "e=%v", e)
		assert.GreaterOrEqual(t, pn, 0.0)
		prev = pn
	}
}

func TestLoadAtEccentricityIsOnCurve(t *testing.T) {
	s := column()
	e := 150.0
	pn := s.LoadAtEccentricity(e)
	require.Greater(t, pn, 0.0)

	// the state carrying pn has M/P equal to e
	best, bestDiff := 0.0, math.Inf(1)
	for c := 10.0; c < 2000; c += 0.05 {
		p, _ := s.forces(c)
		if d := math.Abs(p/1e3 - pn); d < bestDiff {
			best, bestDiff = c, d
		}
	}
	p, m := s.forces(best)
	assert.InDelta(t, e, m/p, 1.0)
}

func TestFlexuralCapacitySinglyReinforced(t *testing.T) {
	s := Section{Width: 300, Depth: 500, Fc: 28, Fy: 420, Layers: []Layer{{Depth: 440, Area: 1500}}}
	st := s.FlexuralCapacity()

	a := 1500 * 420 / (0.85 * 28 * 300)
	want := 1500 * 420 * (440 - a/2) / 1e6
	assert.InDelta(t, want, st.M, 0.05)
	assert.InDelta(t, 0, st.P, 0.01)
	assert.InDelta(t, a, st.A, 0.01)
	require.Len(t, st.SteelLayers, 1)
	assert.True(t, st.SteelLayers[0].IsTension)
	assert.True(t, st.SteelLayers[0].HasYielded)
	assert.Greater(t, st.EpsilonT, 0.005)
}

func TestInteractionCurve(t *testing.T) {
	s := column()
	curve := s.InteractionCurve(40)
	require.Len(t, curve, 42)
	assert.InDelta(t, -420*6400/1e3, curve[0].P, 1e-9)
	assert.Equal(t, s.AxialCapacity(), curve[len(curve)-1].P)

	var peak float64
	for _, pt := range curve {
		if pt.M > peak {
			peak = pt.M
		}
	}
	assert.Greater(t, peak, 0.0)
}

func TestInertia(t *testing.T) {
	s := column()
	assert.InDelta(t, 400*400*400*400/12.0, s.GrossInertia(), 1e-3)
	assert.Greater(t, s.SteelInertia(), 0.0)
}
