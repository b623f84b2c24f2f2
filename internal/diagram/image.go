package diagram

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gorcd/internal/design"
	"github.com/alexiusacademia/gorcd/internal/rebar"
	"github.com/alexiusacademia/gorcd/internal/section"
)

var (
	steelColor   = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	nominalColor = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	designColor  = color.RGBA{R: 100, G: 149, B: 237, A: 255}
	demandColor  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// ExportSection draws the cross-section of a result with its bars and
// returns the file written.
func ExportSection(r *design.Result, filename string) (string, error) {
	g := r.Geometry
	if g.Width <= 0 || g.Depth <= 0 {
		return "", errors.New("result has no section geometry")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s section (%s)", r.Member, r.CodeName)
	p.X.Label.Text = "Width (mm)"
	p.Y.Label.Text = "Height (mm)"

	outline, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: 0}, {X: g.Width, Y: 0}, {X: g.Width, Y: g.Depth}, {X: 0, Y: g.Depth}, {X: 0, Y: 0},
	})
	if err != nil {
		return "", err
	}
	outline.LineStyle.Width = vg.Points(2)
	outline.LineStyle.Color = color.Black
	p.Add(outline)

	c := g.Cover
	coverLine, err := plotter.NewLine(plotter.XYs{
		{X: c, Y: c}, {X: g.Width - c, Y: c}, {X: g.Width - c, Y: g.Depth - c}, {X: c, Y: g.Depth - c}, {X: c, Y: c},
	})
	if err != nil {
		return "", err
	}
	coverLine.LineStyle.Color = color.Gray{Y: 128}
	coverLine.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(coverLine)

	var labels []string
	for _, grp := range r.Reinforcement {
		labels = append(labels, grp.Zone+": "+grp.String())
		if grp.Transverse || len(grp.Layout) == 0 {
			continue
		}
		if err := addBars(p, grp); err != nil {
			return "", err
		}
	}

	if len(labels) > 0 {
		l, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: g.Width * 1.05, Y: g.Depth / 2}},
			Labels: []string{strings.Join(labels, "\n")},
		})
		if err != nil {
			return "", err
		}
		p.Add(l)
	}
	p.X.Max = g.Width * 1.6

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

func addBars(p *plot.Plot, grp rebar.Group) error {
	pts := make(plotter.XYs, len(grp.Layout))
	for i, pt := range grp.Layout {
		pts[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	bars, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	bars.GlyphStyle.Color = steelColor
	bars.GlyphStyle.Radius = vg.Points(math.Max(2, float64(grp.BarSize)/5))
	bars.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(bars)
	return nil
}

// ExportInteraction draws the nominal and design interaction curves with
// the demand point and returns the file written.
func ExportInteraction(d Interaction, filename string) (string, error) {
	if len(d.Nominal) < 2 {
		return "", errors.New("interaction diagram needs at least two points")
	}

	p := plot.New()
	p.Title.Text = d.Title
	p.X.Label.Text = "M (kN·m)"
	p.Y.Label.Text = "P (kN)"

	curve := func(name string, pts []section.CurvePoint, clr color.Color, dashed bool) error {
		xys := make(plotter.XYs, len(pts))
		for i, pt := range pts {
			xys[i] = plotter.XY{X: pt.M, Y: pt.P}
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = clr
		if dashed {
			l.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		}
		p.Add(l)
		p.Legend.Add(name, l)
		return nil
	}
	if err := curve("nominal", d.Nominal, nominalColor, false); err != nil {
		return "", err
	}
	if err := curve("design (φ)", d.Design(), designColor, true); err != nil {
		return "", err
	}

	demand, err := plotter.NewScatter(plotter.XYs{{X: math.Abs(d.Demand.M), Y: d.Demand.P}})
	if err != nil {
		return "", err
	}
	demand.GlyphStyle.Color = demandColor
	demand.GlyphStyle.Radius = vg.Points(4)
	demand.GlyphStyle.Shape = draw.CrossGlyph{}
	p.Add(demand)
	p.Legend.Add("demand", demand)
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	return save(p, 6*vg.Inch, 8*vg.Inch, filename)
}

// save writes by extension; files without a known image extension get .png.
func save(p *plot.Plot, w, h vg.Length, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	if err := p.Save(w, h, filename); err != nil {
		return "", fmt.Errorf("save %s: %w", filename, err)
	}
	return filename, nil
}
