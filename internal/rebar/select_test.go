package rebar

import (
	"math"
	"testing"

	"github.com/alexiusacademia/gorcd/internal/section"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	bars := Catalog()
	require.Len(t, bars, 8)
	for i := 1; i < len(bars); i++ {
		assert.Greater(t, bars[i].Area, bars[i-1].Area)
	}
	bars[0].Area = 0
	assert.Equal(t, 78.54, Catalog()[0].Area)

	b, ok := Lookup(25)
	assert.True(t, ok)
	assert.Equal(t, 490.87, b.Area)
	assert.Equal(t, "25mm", b.String())

	_, ok = Lookup(22)
	assert.False(t, ok)

	assert.Len(t, Sizes(16, 36), 6)
	assert.Len(t, Sizes(10, 12), 2)
}

func TestSpacingRules(t *testing.T) {
	assert.Equal(t, 40.0, ColumnClearSpacing(20))
	assert.Equal(t, 48.0, ColumnClearSpacing(32))
	assert.Equal(t, 25.0, FlexuralClearSpacing(16))
	assert.Equal(t, 28.0, FlexuralClearSpacing(28))
	assert.Equal(t, 450.0, MaxMatSpacing(200))
	assert.Equal(t, 360.0, MaxMatSpacing(120))
}

func column(target float64) Perimeter {
	return Perimeter{Width: 400, Depth: 400, Cover: 40, Tie: 10, Target: target, MinBars: 4, Sizes: Sizes(16, 36)}
}

func TestPerimeterCandidates(t *testing.T) {
	cands := column(6640).Candidates()
	require.NotEmpty(t, cands)

	first := cands[0]
	assert.Equal(t, 25, first.BarSize)
	assert.Equal(t, 14, first.BarCount)
	assert.InDelta(t, 14*490.87, first.Area, 1e-9)
	assert.Len(t, first.Layout, 14)

	for i, c := range cands {
		assert.GreaterOrEqual(t, c.Area, 6640.0)
		if i > 0 {
			assert.GreaterOrEqual(t, c.Area, cands[i-1].Area-1e-9)
		}
		assertColumnSpacing(t, c)
	}
}

func TestPerimeterPrefersEvenPitch(t *testing.T) {
	first := column(1600).Candidates()[0]
	assert.Equal(t, 16, first.BarSize)
	assert.Equal(t, 8, first.BarCount)

	// 3 bars on every face of a square section
	xs := map[float64]int{}
	for _, p := range first.Layout {
		xs[p.X]++
	}
	assert.Len(t, xs, 3)
}

func TestPerimeterLargeTarget(t *testing.T) {
	cands := column(9648).Candidates()
	require.Len(t, cands, 1)
	assert.Equal(t, 32, cands[0].BarSize)
	assert.Equal(t, 12, cands[0].BarCount)

	assert.Empty(t, column(20000).Candidates())
}

func assertColumnSpacing(t *testing.T, g Group) {
	t.Helper()
	db := float64(g.BarSize)
	for i, a := range g.Layout {
		for _, b := range g.Layout[i+1:] {
			dist := math.Hypot(a.X-b.X, a.Y-b.Y)
			assert.GreaterOrEqual(t, dist-db, ColumnClearSpacing(db)-1e-9)
		}
	}
}

func TestRowCandidates(t *testing.T) {
	r := Row{Zone: "bottom", Width: 300, Edge: 50, Y: 60, Target: 1500, MinBars: 2, Sizes: Sizes(12, 36)}
	cands := r.Candidates()
	require.NotEmpty(t, cands)

	first := cands[0]
	assert.Equal(t, "bottom", first.Zone)
	assert.Equal(t, 20, first.BarSize)
	assert.Equal(t, 5, first.BarCount)
	assert.InDelta(t, 45, first.Spacing, 1e-9)
	for _, p := range first.Layout {
		assert.Equal(t, 60.0, p.Y)
	}
}

func TestRowMaxSpacing(t *testing.T) {
	r := Row{Zone: "x", Width: 2000, Edge: 75, Target: 100, MinBars: 2, MaxSpacing: 300, Sizes: Sizes(12, 12)}
	cands := r.Candidates()
	require.Len(t, cands, 1)
	assert.LessOrEqual(t, cands[0].Spacing, 300.0)
	assert.Equal(t, 8, cands[0].BarCount)
}

func TestRowStacksSecondLayer(t *testing.T) {
	r := Row{Zone: "bottom", Width: 400, Edge: 50, Y: 62.5, Target: 4000, MinBars: 2, MaxRows: 2, Sizes: Sizes(25, 25)}
	cands := r.Candidates()
	require.Len(t, cands, 1)

	g := cands[0]
	assert.Equal(t, 9, g.BarCount)
	assert.Equal(t, 2, g.Rows)
	assert.InDelta(t, 68.75, g.Spacing, 1e-9)
	assert.InDelta(t, 9*490.87, g.Area, 1e-6)
	require.Len(t, g.Layout, 9)
	assert.Equal(t, section.Point{X: 62.5, Y: 62.5}, g.Layout[0])
	assert.Equal(t, section.Point{X: 62.5, Y: 112.5}, g.Layout[5])
	assert.Equal(t, "9-25mm in 2 rows", g.String())

	single := Row{Zone: "bottom", Width: 400, Edge: 50, Target: 4000, MinBars: 2, Sizes: Sizes(25, 25)}
	assert.Empty(t, single.Candidates())
}

func TestMatCandidates(t *testing.T) {
	m := Mat{Zone: "main", Target: 360, MaxSpacing: 450, Sizes: Sizes(10, 16)}
	cands := m.Candidates()
	require.Len(t, cands, 3)

	first := cands[0]
	assert.Equal(t, 12, first.BarSize)
	assert.Equal(t, 300.0, first.Spacing)
	assert.InDelta(t, 377.0, first.Area, 1e-9)
	assert.True(t, first.PerMetre)
	assert.Equal(t, "12mm @ 300 mm", first.String())

	for _, c := range cands {
		assert.GreaterOrEqual(t, c.Area, 360.0)
		assert.LessOrEqual(t, c.Spacing, 450.0)
	}
}

func TestSelect(t *testing.T) {
	cands := []Group{{Area: 100}, {Area: 200}, {Area: 300}}

	g, st := Select(cands, 250, nil)
	assert.Equal(t, Selected, st)
	assert.Equal(t, 100.0, g.Area)

	g, st = Select(cands, 250, func(g Group) bool { return g.Area > 150 })
	assert.Equal(t, Selected, st)
	assert.Equal(t, 200.0, g.Area)

	g, st = Select(cands, 250, func(Group) bool { return false })
	assert.Equal(t, Inadequate, st)
	assert.Equal(t, 200.0, g.Area)

	g, st = Select(cands, 50, nil)
	assert.Equal(t, ExceedsMax, st)
	assert.Equal(t, 100.0, g.Area)

	_, st = Select(nil, 50, nil)
	assert.Equal(t, NoFit, st)
}

func TestLongitudinalArea(t *testing.T) {
	groups := []Group{{Area: 1000}, {Area: 400}, {Area: 157, Transverse: true}}
	assert.Equal(t, 1400.0, LongitudinalArea(groups))
	assert.Equal(t, "2-leg 10mm @ 150 mm", Group{BarSize: 10, BarCount: 2, Spacing: 150, Transverse: true}.String())
	assert.Equal(t, "4-25mm", Group{BarSize: 25, BarCount: 4}.String())
	assert.Equal(t, "10mm ties @ 400 mm", Group{Zone: "ties", BarSize: 10, BarCount: 1, Spacing: 400, Transverse: true}.String())
}
