package rebar

import (
	"math"
	"sort"

	"github.com/alexiusacademia/gorcd/internal/section"
)

const areaTolerance = 1e-9

// Status is the outcome of a selection.
type Status string

const (
	Selected   Status = "selected"    // smallest adequate layout within the maximum
	ExceedsMax Status = "exceeds_max" // the smallest layout meeting the target is above the maximum
	NoFit      Status = "no_fit"      // no catalog layout fits the section
	Inadequate Status = "inadequate"  // no layout within the maximum passed the acceptance check
)

// Perimeter describes a column section with bars distributed on all faces.
// X runs along Width, Y along Depth, origin at the lower-left corner.
type Perimeter struct {
	Width, Depth float64 // mm
	Cover        float64 // clear cover to ties (mm)
	Tie          float64 // tie or spiral diameter (mm)
	Target       float64 // required area (mm²)
	MinBars      int
	Sizes        []Bar
}

// Candidates lists every perimeter layout whose area meets the target and
// whose bars keep the minimum clear spacing, smallest area first. Among equal
// areas, fewer bars and then the most even pitch on both faces come first.
func (p Perimeter) Candidates() []Group {
	type candidate struct {
		group     Group
		imbalance float64
	}
	var found []candidate
	for _, bar := range p.Sizes {
		db := float64(bar.Diameter)
		off := p.Cover + p.Tie + db/2
		spanX, spanY := p.Width-2*off, p.Depth-2*off
		if spanX <= 0 || spanY <= 0 {
			continue
		}
		minPitch := ColumnClearSpacing(db) + db
		maxX := int(math.Floor(spanX/minPitch)) + 1
		maxY := int(math.Floor(spanY/minPitch)) + 1
		for nx := 2; nx <= maxX; nx++ {
			for ny := 2; ny <= maxY; ny++ {
				count := 2*nx + 2*(ny-2)
				area := float64(count) * bar.Area
				if count < p.MinBars || area < p.Target-areaTolerance {
					continue
				}
				found = append(found, candidate{
					group: Group{
						Zone:     "perimeter",
						BarSize:  bar.Diameter,
						BarCount: count,
						Area:     area,
						Layout:   perimeterPoints(off, spanX, spanY, nx, ny),
					},
					imbalance: math.Abs(spanX/float64(nx-1) - spanY/float64(ny-1)),
				})
			}
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		a, b := found[i].group, found[j].group
		if math.Abs(a.Area-b.Area) > areaTolerance {
			return a.Area < b.Area
		}
		if a.BarCount != b.BarCount {
			return a.BarCount < b.BarCount
		}
		return found[i].imbalance < found[j].imbalance
	})

	out := make([]Group, len(found))
	for i, c := range found {
		out[i] = c.group
	}
	return out
}

func perimeterPoints(off, spanX, spanY float64, nx, ny int) []section.Point {
	var pts []section.Point
	top := off + spanY
	for i := 0; i < nx; i++ {
		x := off + float64(i)*spanX/float64(nx-1)
		pts = append(pts, section.Point{X: x, Y: off}, section.Point{X: x, Y: top})
	}
	for j := 1; j < ny-1; j++ {
		y := off + float64(j)*spanY/float64(ny-1)
		pts = append(pts, section.Point{X: off, Y: y}, section.Point{X: off + spanX, Y: y})
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Y != pts[j].Y {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})
	return pts
}

// Row describes parallel bars across a width, such as a beam face or a
// footing mat counted over the full footing width. Bars that do not fit in
// one layer may be stacked in up to MaxRows layers.
type Row struct {
	Zone       string
	Width      float64 // mm
	Edge       float64 // clear distance from the face to the bar surface (mm)
	Y          float64 // elevation of the first layer's bar centres (mm)
	Target     float64 // mm²
	MinBars    int
	MaxSpacing float64 // centre-to-centre limit (mm), zero for none
	MaxRows    int     // zero means a single layer
	Grow       int     // further counts listed per size beyond the fewest bars
	Sizes      []Bar
}

// Candidates lists, per bar size, the fewest bars meeting the target while
// keeping clear and maximum spacing (plus Grow larger counts), smallest area
// first. A count is stacked in a further layer only when it does not fit in
// fewer.
func (r Row) Candidates() []Group {
	var out []Group
	for _, bar := range r.Sizes {
		db := float64(bar.Diameter)
		off := r.Edge + db/2
		span := r.Width - 2*off
		if span <= 0 {
			continue
		}
		n := max(r.MinBars, 2, int(math.Ceil((r.Target-areaTolerance)/bar.Area)))
		last := 0
		for k := 0; k <= r.Grow; k++ {
			if g, ok := r.fit(bar, off, span, n+k); ok && g.BarCount > last {
				out = append(out, g)
				last = g.BarCount
			}
		}
	}
	sortGroups(out)
	return out
}

func (r Row) fit(bar Bar, off, span float64, n int) (Group, bool) {
	db := float64(bar.Diameter)
	for rows := 1; rows <= max(r.MaxRows, 1); rows++ {
		count := n
		if rows > 1 {
			// every layer holds at least two bars
			count = max(n, 2*rows)
		}
		perRow := (count + rows - 1) / rows
		for r.MaxSpacing > 0 && span/float64(perRow-1) > r.MaxSpacing {
			perRow++
			count = max(count, perRow)
		}
		pitch := span / float64(perRow-1)
		if pitch-db < FlexuralClearSpacing(db) {
			continue
		}
		return Group{
			Zone:     r.Zone,
			BarSize:  bar.Diameter,
			BarCount: count,
			Rows:     rows,
			Spacing:  pitch,
			Area:     float64(count) * bar.Area,
			Layout:   rowPoints(off, pitch, r.Y, RowGap(db), count, perRow),
		}, true
	}
	return Group{}, false
}

// RowGap is the centre-to-centre distance between stacked layers, one bar
// diameter plus the clear spacing.
func RowGap(db float64) float64 {
	return db + FlexuralClearSpacing(db)
}

func rowPoints(off, pitch, y, gap float64, count, perRow int) []section.Point {
	pts := make([]section.Point, count)
	for i := range pts {
		pts[i] = section.Point{X: off + float64(i%perRow)*pitch, Y: y + float64(i/perRow)*gap}
	}
	return pts
}

// Mat describes bars at a uniform spacing, area reported per metre width.
type Mat struct {
	Zone       string
	Target     float64 // mm²/m
	MaxSpacing float64 // mm
	Sizes      []Bar
}

// Candidates lists, per bar size, the widest spacing in 25 mm steps that
// meets the target, smallest area first.
func (m Mat) Candidates() []Group {
	var out []Group
	for _, bar := range m.Sizes {
		db := float64(bar.Diameter)
		s := m.MaxSpacing
		if m.Target > 0 {
			s = math.Min(s, bar.Area*1000/m.Target)
		}
		s = math.Floor(s/25) * 25
		if s-db < FlexuralClearSpacing(db) {
			continue
		}
		out = append(out, Group{
			Zone:     m.Zone,
			BarSize:  bar.Diameter,
			BarCount: int(math.Ceil(1000 / s)),
			Spacing:  s,
			Area:     bar.Area * 1000 / s,
			PerMetre: true,
		})
	}
	sortGroups(out)
	return out
}

func sortGroups(gs []Group) {
	sort.SliceStable(gs, func(i, j int) bool {
		if math.Abs(gs[i].Area-gs[j].Area) > areaTolerance {
			return gs[i].Area < gs[j].Area
		}
		return gs[i].BarCount < gs[j].BarCount
	})
}

// Select walks the candidates in order and returns the first one within
// maxArea that accept approves; a nil accept approves everything. When no
// candidate is approved the largest one within maxArea is returned, or the
// smallest overall when every candidate exceeds maxArea.
func Select(candidates []Group, maxArea float64, accept func(Group) bool) (Group, Status) {
	if len(candidates) == 0 {
		return Group{}, NoFit
	}
	last := -1
	for i, c := range candidates {
		if c.Area > maxArea+areaTolerance {
			break
		}
		last = i
		if accept == nil || accept(c) {
			return c, Selected
		}
	}
	if last >= 0 {
		return candidates[last], Inadequate
	}
	return candidates[0], ExceedsMax
}
