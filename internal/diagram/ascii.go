// Package diagram draws results: cross-section sketches and column
// interaction diagrams, as text or exported images.
package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/alexiusacademia/gorcd/internal/design"
	"github.com/alexiusacademia/gorcd/internal/section"
)

const (
	sketchWidth   = 32 // characters across the section
	sketchMinRows = 5
	sketchMaxRows = 20
	plotWidth     = 56
	plotHeight    = 20
)

// Interaction is a column interaction diagram about one axis.
type Interaction struct {
	Title   string
	Nominal []section.CurvePoint
	Phi     float64
	Cap     float64 // φPn,max (kN); no cap when zero
	Demand  section.CurvePoint
}

// Design returns the nominal curve reduced by φ and cut at the cap.
func (d Interaction) Design() []section.CurvePoint {
	out := make([]section.CurvePoint, len(d.Nominal))
	for i, pt := range d.Nominal {
		out[i] = section.CurvePoint{M: d.Phi * pt.M, P: d.Phi * pt.P}
		if d.Cap > 0 && out[i].P > d.Cap {
			out[i].P = d.Cap
		}
	}
	return out
}

// DrawSection sketches the cross-section of a result with the bars of
// every group that carries a layout. Characters are about twice as tall as
// they are wide, so rows are halved.
func DrawSection(r *design.Result) string {
	g := r.Geometry
	var sb strings.Builder
	if g.Width <= 0 || g.Depth <= 0 {
		return ""
	}

	rows := int(math.Round(sketchWidth * g.Depth / g.Width / 2))
	rows = min(max(rows, sketchMinRows), sketchMaxRows)

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", sketchWidth))
	}
	bars := 0
	for _, grp := range r.Reinforcement {
		if grp.Transverse {
			continue
		}
		for _, pt := range grp.Layout {
			col := int(math.Round(pt.X / g.Width * float64(sketchWidth-1)))
			row := rows - 1 - int(math.Round(pt.Y/g.Depth*float64(rows-1)))
			if col < 0 || col >= sketchWidth || row < 0 || row >= rows {
				continue
			}
			grid[row][col] = '●'
			bars++
		}
	}

	fmt.Fprintf(&sb, "  %s, %.0f × %.0f mm, cover %.0f mm\n", r.Member, g.Width, g.Depth, g.Cover)
	fmt.Fprintf(&sb, "  ┌%s┐\n", strings.Repeat("─", sketchWidth))
	for _, line := range grid {
		fmt.Fprintf(&sb, "  │%s│\n", string(line))
	}
	fmt.Fprintf(&sb, "  └%s┘\n", strings.Repeat("─", sketchWidth))
	for _, grp := range r.Reinforcement {
		unit := "mm²"
		if grp.PerMetre {
			unit = "mm²/m"
		}
		fmt.Fprintf(&sb, "  %-11s %s (%.0f %s)\n", grp.Zone+":", grp, grp.Area, unit)
	}
	if bars == 0 && len(r.Reinforcement) > 0 {
		sb.WriteString("  (bars spread along the strip; positions not drawn)\n")
	}
	return sb.String()
}

// DrawInteraction plots an interaction diagram as text: '·' nominal, '○'
// design strength and '✕' the demand.
func DrawInteraction(d Interaction) string {
	if len(d.Nominal) == 0 {
		return ""
	}
	reduced := d.Design()
	maxM, minP, maxP := math.Abs(d.Demand.M), math.Min(0, d.Demand.P), d.Demand.P
	for _, pt := range d.Nominal {
		maxM = math.Max(maxM, pt.M)
		minP = math.Min(minP, pt.P)
		maxP = math.Max(maxP, pt.P)
	}
	if maxM <= 0 || maxP <= minP {
		return ""
	}

	grid := make([][]rune, plotHeight)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", plotWidth))
	}
	put := func(pt section.CurvePoint, mark rune) {
		col := int(math.Round(pt.M / maxM * float64(plotWidth-1)))
		row := plotHeight - 1 - int(math.Round((pt.P-minP)/(maxP-minP)*float64(plotHeight-1)))
		if col >= 0 && col < plotWidth && row >= 0 && row < plotHeight {
			grid[row][col] = mark
		}
	}
	for _, pt := range d.Nominal {
		put(pt, '·')
	}
	for _, pt := range reduced {
		put(pt, '○')
	}
	put(section.CurvePoint{M: math.Abs(d.Demand.M), P: d.Demand.P}, '✕')

	var sb strings.Builder
	fmt.Fprintf(&sb, "  %s\n", d.Title)
	sb.WriteString("  P (kN)\n")
	for i, line := range grid {
		label := "        "
		switch i {
		case 0:
			label = fmt.Sprintf("%8.0f", maxP)
		case plotHeight - 1:
			label = fmt.Sprintf("%8.0f", minP)
		}
		fmt.Fprintf(&sb, "  %s ┤%s\n", label, string(line))
	}
	fmt.Fprintf(&sb, "  %8s └%s\n", "", strings.Repeat("─", plotWidth))
	fmt.Fprintf(&sb, "  %8s  0%*.0f  M (kN·m)\n", "", plotWidth-1, maxM)
	fmt.Fprintf(&sb, "  · nominal   ○ φ × nominal   ✕ Pu = %.0f kN, Mu = %.1f kN·m\n", d.Demand.P, math.Abs(d.Demand.M))
	return sb.String()
}

// DrawSummaryBox frames a title and lines in a double-line box.
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	width := utf8.RuneCountInString(title)
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}
	border := strings.Repeat("═", width+4)

	fmt.Fprintf(&sb, "  ╔%s╗\n", border)
	fmt.Fprintf(&sb, "  ║  %s  ║\n", pad(title, width))
	if len(lines) > 0 {
		fmt.Fprintf(&sb, "  ╠%s╣\n", border)
	}
	for _, line := range lines {
		fmt.Fprintf(&sb, "  ║  %s  ║\n", pad(line, width))
	}
	fmt.Fprintf(&sb, "  ╚%s╝\n", border)
	return sb.String()
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", width-utf8.RuneCountInString(s))
}
