package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gorcd/internal/design"
	"github.com/alexiusacademia/gorcd/internal/diagram"
	"github.com/alexiusacademia/gorcd/internal/loads"
)

var actionUnits = map[loads.Action]string{
	loads.Axial:       "kN",
	loads.MomentX:     "kN·m",
	loads.MomentY:     "kN·m",
	loads.Moment:      "kN·m",
	loads.Shear:       "kN",
	loads.Pressure:    "kPa",
	loads.Overturning: "kN·m/m",
}

var memberTitles = map[design.Member]string{
	design.Column:        "COLUMN DESIGN",
	design.Beam:          "BEAM DESIGN",
	design.Slab:          "ONE-WAY SLAB DESIGN",
	design.Footing:       "ISOLATED FOOTING DESIGN",
	design.RetainingWall: "CANTILEVER RETAINING WALL DESIGN",
}

// writeReport prints a result the way a designer reads it: demand,
// checks, bars, warnings, verdict.
func writeReport(w io.Writer, r *design.Result) {
	heading(w, fmt.Sprintf("%s - %s", memberTitles[r.Member], r.CodeName))

	subheading(w, "FACTORED DEMAND")
	fmt.Fprintf(w, "  Governing combination: %s\n", r.Combination)
	actions := make([]string, 0, len(r.Demand))
	for a := range r.Demand {
		actions = append(actions, string(a))
	}
	sort.Strings(actions)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, a := range actions {
		fmt.Fprintf(tw, "  %s:\t%s %s\n", a, num(r.Demand[loads.Action(a)], 2), actionUnits[loads.Action(a)])
	}
	tw.Flush()
	fmt.Fprintln(w)

	subheading(w, "SECTION")
	g := r.Geometry
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Width:\t%s mm\n", num(g.Width, 0))
	fmt.Fprintf(tw, "  Depth:\t%s mm\n", num(g.Depth, 0))
	if g.Length > 0 {
		fmt.Fprintf(tw, "  Length:\t%s mm\n", num(g.Length, 0))
	}
	fmt.Fprintf(tw, "  Clear cover:\t%s mm\n", num(g.Cover, 0))
	if g.EffectiveDepth > 0 {
		fmt.Fprintf(tw, "  Effective depth:\t%s mm\n", num(g.EffectiveDepth, 0))
	}
	fmt.Fprintf(tw, "  Gross area:\t%s mm²\n", num(g.GrossArea, 0))
	tw.Flush()
	fmt.Fprintln(w)

	subheading(w, "CHECKS")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Check\tDemand\tCapacity\tUtilization\tStatus\n")
	fmt.Fprintf(tw, "  ─────\t──────\t────────\t───────────\t──────\n")
	for _, c := range r.Checks {
		status := "✓"
		if !c.Pass {
			status = "✗ " + string(c.Reason)
		}
		fmt.Fprintf(tw, "  %s\t%s %s\t%s %s\t%.3f\t%s\n",
			c.Name, num(c.Demand, 2), c.Unit, num(c.Capacity, 2), c.Unit, c.Utilization, status)
	}
	tw.Flush()
	fmt.Fprintln(w)

	subheading(w, "REINFORCEMENT")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Zone\tBars\tRequired\tProvided\n")
	fmt.Fprintf(tw, "  ────\t────\t────────\t────────\n")
	required := make(map[string]float64, len(r.Requirements))
	for _, req := range r.Requirements {
		required[req.Zone] = req.Required
	}
	for _, grp := range r.Reinforcement {
		unit := "mm²"
		if grp.PerMetre {
			unit = "mm²/m"
		}
		req := "-"
		if v, ok := required[grp.Zone]; ok {
			req = num(v, 0) + " " + unit
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s %s\n", grp.Zone, grp, req, num(grp.Area, 0), unit)
	}
	tw.Flush()
	if len(r.Reinforcement) == 0 {
		fmt.Fprintln(w, "  No constructible arrangement.")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		subheading(w, "WARNINGS")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  ⚠ %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	subheading(w, "DESIGN RESULT")
	if r.Pass {
		fmt.Fprint(w, diagram.DrawSummaryBox("DESIGN ADEQUATE", verdictLines(r)))
	} else {
		fmt.Fprint(w, diagram.DrawSummaryBox("DESIGN NOT ADEQUATE ("+string(r.FailureReason)+")", verdictLines(r)))
	}
	fmt.Fprintln(w)
}

func verdictLines(r *design.Result) []string {
	var lines []string
	for _, grp := range r.Reinforcement {
		lines = append(lines, fmt.Sprintf("%s: %s", grp.Zone, grp))
	}
	var failed []string
	for _, c := range r.Checks {
		if !c.Pass {
			failed = append(failed, c.Name)
		}
	}
	if len(failed) > 0 {
		lines = append(lines, "fails: "+strings.Join(failed, ", "))
	}
	return lines
}
