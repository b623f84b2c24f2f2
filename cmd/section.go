package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/diagram"
	"github.com/alexiusacademia/gorcd/internal/engine"
	"github.com/alexiusacademia/gorcd/internal/section"
)

func newSectionCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "Strain-compatibility analysis of a layered section",
		Long: `Analyze a rectangular section with arbitrary reinforcement layers
defined in a YAML or JSON file.

Example YAML file:
  width: 300
  depth: 500
  fc: 28
  fy: 420
  layers:
    - {depth: 60, area: 402, description: 2-16mm}
    - {depth: 435, area: 1473, description: 3-25mm}`,
	}
	cmd.AddCommand(newSectionAnalyzeCommand(opts))
	return cmd
}

// sectionAnalysis is the JSON payload of section analyze.
type sectionAnalysis struct {
	Section      section.Section      `json:"section"`
	Flexure      flexureState         `json:"flexure"`
	PhiFlexure   float64              `json:"phiFlexure"`
	DesignMoment float64              `json:"designMoment"` // kN·m
	AxialMax     float64              `json:"axialCapacity"`
	Curve        []section.CurvePoint `json:"curve,omitempty"`
	Plot         string               `json:"plot,omitempty"`
}

type flexureState struct {
	C        float64 `json:"c"`
	A        float64 `json:"a"`
	Beta1    float64 `json:"beta1"`
	EpsilonT float64 `json:"epsilonT"`
	Mn       float64 `json:"mn"`
}

func newSectionAnalyzeCommand(opts *rootOptions) *cobra.Command {
	var (
		file        string
		showDiagram bool
		plotFile    string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Flexural capacity and interaction curve of a section",
		Long: `Find the neutral axis of a section in pure bending by strain
compatibility and force equilibrium, and sample its P-M interaction curve.

Examples:
  gorcd section analyze -f t-beam.yaml
  gorcd section analyze -f pier.json --diagram --plot pier.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			format := opts.cfg.Format

			sec, err := loadSection(file)
			if err != nil {
				return fail(w, format, "cannot read "+file, err)
			}
			if err := sec.Validate(); err != nil {
				return fail(w, format, "section rejected", err)
			}
			p, err := code.Resolve(opts.cfg.CodeID())
			if err != nil {
				return fail(w, format, "section rejected", err)
			}

			st := sec.FlexuralCapacity()
			out := sectionAnalysis{
				Section: sec,
				Flexure: flexureState{
					C: st.C, A: st.A, Beta1: st.Beta1, EpsilonT: st.EpsilonT, Mn: st.M,
				},
				PhiFlexure:   p.FlexurePhi(),
				DesignMoment: p.FlexurePhi() * st.M,
				AxialMax:     sec.AxialCapacity(),
				Curve:        sec.InteractionCurve(curvePoints),
			}
			opts.logger.Debug("section analyzed", "c", st.C, "mn", st.M)

			d := diagram.Interaction{
				Title:   "Section interaction",
				Nominal: out.Curve,
				Phi:     p.CompressionPhi(false),
			}
			if plotFile != "" {
				saved, err := diagram.ExportInteraction(d, plotFile)
				if err != nil {
					return fail(w, format, "cannot export plot", err)
				}
				out.Plot = saved
			}

			if format == "json" {
				return writeJSON(w, response{Status: "ok", Data: out})
			}
			writeSection(w, p, sec, st, out)
			if showDiagram {
				subheading(w, "INTERACTION DIAGRAM")
				fmt.Fprintln(w, diagram.DrawInteraction(d))
			}
			if out.Plot != "" {
				fmt.Fprintf(w, "  Plot saved to: %s\n", out.Plot)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "section file (.yaml, .yml or .json)")
	cmd.MarkFlagRequired("file")
	cmd.Flags().BoolVarP(&showDiagram, "diagram", "d", false, "show the interaction diagram")
	cmd.Flags().StringVar(&plotFile, "plot", "", "export the interaction diagram (png, svg or pdf)")
	return cmd
}

func loadSection(path string) (section.Section, error) {
	var sec section.Section
	f, err := engine.FormatOf(path)
	if err != nil {
		return sec, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return sec, err
	}
	err = engine.Unmarshal(data, f, &sec)
	return sec, err
}

func writeSection(w io.Writer, p code.Profile, sec section.Section, st section.State, out sectionAnalysis) {
	heading(w, "SECTION ANALYSIS - "+p.Name)

	subheading(w, "SECTION")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Width:\t%s mm\n", num(sec.Width, 0))
	fmt.Fprintf(tw, "  Depth:\t%s mm\n", num(sec.Depth, 0))
	fmt.Fprintf(tw, "  f'c:\t%.1f MPa\n", sec.Fc)
	fmt.Fprintf(tw, "  fy:\t%.1f MPa\n", sec.Fy)
	fmt.Fprintf(tw, "  β₁:\t%.4f\n", st.Beta1)
	tw.Flush()
	fmt.Fprintln(w)

	subheading(w, "STEEL LAYER ANALYSIS")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Layer\tDepth (mm)\tArea (mm²)\tStrain\tStress (MPa)\tForce (kN)\tStatus\n")
	fmt.Fprintf(tw, "  ─────\t──────────\t──────────\t──────\t────────────\t──────────\t──────\n")
	for i, l := range st.SteelLayers {
		status := "Compression"
		if l.IsTension {
			status = "Tension"
		}
		if l.HasYielded {
			status += " (yields)"
		}
		fmt.Fprintf(tw, "  %d\t%.0f\t%.0f\t%.6f\t%.1f\t%.1f\t%s\n",
			i+1, l.Depth, l.Area, l.Strain, l.Stress, l.Force, status)
	}
	tw.Flush()
	fmt.Fprintln(w)

	subheading(w, "FLEXURAL CAPACITY")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Neutral axis (c):\t%.2f mm\n", st.C)
	fmt.Fprintf(tw, "  Stress block (a):\t%.2f mm\n", st.A)
	fmt.Fprintf(tw, "  εt:\t%.5f\n", st.EpsilonT)
	fmt.Fprintf(tw, "  Mn:\t%s kN·m\n", num(st.M, 2))
	fmt.Fprintf(tw, "  φ:\t%.2f\n", out.PhiFlexure)
	fmt.Fprintf(tw, "  φMn:\t%s kN·m\n", num(out.DesignMoment, 2))
	fmt.Fprintf(tw, "  Po:\t%s kN\n", num(out.AxialMax, 0))
	tw.Flush()
	fmt.Fprintln(w)
}
