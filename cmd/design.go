package cmd

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/column"
	"github.com/alexiusacademia/gorcd/internal/design"
	"github.com/alexiusacademia/gorcd/internal/diagram"
	"github.com/alexiusacademia/gorcd/internal/engine"
	"github.com/alexiusacademia/gorcd/internal/history"
	"github.com/alexiusacademia/gorcd/internal/loads"
	"github.com/alexiusacademia/gorcd/internal/section"
)

const curvePoints = 40

// designFlags are shared by every member command.
type designFlags struct {
	input   string
	save    bool
	diagram bool
	plot    string
}

func (f *designFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "read the member from a YAML or JSON file instead of flags")
	cmd.Flags().BoolVar(&f.save, "save", false, "record the design in the history database")
	cmd.Flags().BoolVarP(&f.diagram, "diagram", "d", false, "sketch the section (and P-M diagram for columns)")
	cmd.Flags().StringVar(&f.plot, "plot", "", "export the section to an image file (png, svg or pdf)")
}

// designOutput is the JSON payload of a member command.
type designOutput struct {
	ID     string         `json:"id,omitempty"`
	Input  design.Input   `json:"input"`
	Result *design.Result `json:"result"`
	Plots  []string       `json:"plots,omitempty"`
}

// runDesign designs in, or the member read from --input, and reports it.
// A design that does not pass returns an ExitError with ExitFailure.
func runDesign(cmd *cobra.Command, opts *rootOptions, in design.Input, df *designFlags) error {
	w := cmd.OutOrStdout()
	format := opts.cfg.Format
	log := opts.logger.With("member", in.Member(), "code", opts.cfg.Code)

	if df.input != "" {
		decoded, err := readInput(in.Member(), df.input)
		if err != nil {
			return fail(w, format, "cannot read "+df.input, err)
		}
		in = decoded
		log.Debug("input read", "file", df.input)
	}

	r, err := engine.Run(opts.cfg.CodeID(), in)
	if err != nil {
		return fail(w, format, "design rejected", err)
	}
	log.Debug("design complete", "pass", r.Pass, "combination", r.Combination)

	out := designOutput{Input: in, Result: r}

	if df.save {
		id, err := saveDesign(cmd.Context(), opts, in, r)
		if err != nil {
			return fail(w, format, "cannot save design", err)
		}
		out.ID = id
		log.Info("design saved", "id", id)
	}

	if df.plot != "" {
		plots, err := exportPlots(in, r, df.plot)
		if err != nil {
			return fail(w, format, "cannot export plot", err)
		}
		out.Plots = plots
	}

	if format == "json" {
		if err := writeJSON(w, response{Status: "ok", Data: out}); err != nil {
			return err
		}
	} else {
		writeReport(w, r)
		if df.diagram {
			writeDiagrams(w, in, r)
		}
		if out.ID != "" {
			fmt.Fprintf(w, "  Saved as %s\n\n", out.ID)
		}
		for _, p := range out.Plots {
			fmt.Fprintf(w, "  Plot saved to: %s\n", p)
		}
	}

	if !r.Pass {
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("design does not pass: %s", r.FailureReason)}
	}
	return nil
}

func readInput(m design.Member, path string) (design.Input, error) {
	f, err := engine.FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return engine.Decode(m, data, f)
}

func saveDesign(ctx context.Context, opts *rootOptions, in design.Input, r *design.Result) (string, error) {
	store, err := history.Open(opts.cfg.HistoryPath, history.WithLogger(opts.logger))
	if err != nil {
		return "", err
	}
	defer store.Close()
	rec, err := store.Save(ctx, in, r)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func writeDiagrams(w io.Writer, in design.Input, r *design.Result) {
	if sketch := diagram.DrawSection(r); sketch != "" {
		subheading(w, "SECTION SKETCH")
		fmt.Fprintln(w, sketch)
	}
	for _, d := range interactions(in, r) {
		subheading(w, strings.ToUpper(d.Title))
		fmt.Fprintln(w, diagram.DrawInteraction(d))
	}
}

// interactions returns the P-M diagrams of a column result, nil otherwise.
func interactions(in design.Input, r *design.Result) []diagram.Interaction {
	col, ok := in.(column.Input)
	if !ok {
		return nil
	}
	curves, err := column.InteractionCurves(col, r, curvePoints)
	if err != nil {
		return nil
	}
	pu := r.Demand[loads.Axial]
	return []diagram.Interaction{
		{
			Title:   "Interaction about X",
			Nominal: curves.X,
			Phi:     curves.Phi,
			Cap:     curves.Phi * curves.NominalMax,
			Demand:  section.CurvePoint{M: math.Abs(checkedMoment(r, "x", r.Demand[loads.MomentX])), P: pu},
		},
		{
			Title:   "Interaction about Y",
			Nominal: curves.Y,
			Phi:     curves.Phi,
			Cap:     curves.Phi * curves.NominalMax,
			Demand:  section.CurvePoint{M: math.Abs(checkedMoment(r, "y", r.Demand[loads.MomentY])), P: pu},
		},
	}
}

// checkedMoment is the moment the column check used about axis, falling
// back to the factored demand.
func checkedMoment(r *design.Result, axis string, factored float64) float64 {
	if d, ok := r.Details.(*column.Details); ok {
		if m, ok := d.DesignMoment(axis); ok {
			return m
		}
	}
	return factored
}

func exportPlots(in design.Input, r *design.Result, filename string) ([]string, error) {
	saved, err := diagram.ExportSection(r, filename)
	if err != nil {
		return nil, err
	}
	plots := []string{saved}

	ext := filepath.Ext(saved)
	base := strings.TrimSuffix(saved, ext)
	for i, d := range interactions(in, r) {
		axis := []string{"x", "y"}[i]
		p, err := diagram.ExportInteraction(d, fmt.Sprintf("%s-pm%s%s", base, axis, ext))
		if err != nil {
			return plots, err
		}
		plots = append(plots, p)
	}
	return plots, nil
}
