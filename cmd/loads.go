package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/loads"
	"github.com/alexiusacademia/gorcd/internal/validate"
)

// combinationValue is one row of the loads table.
type combinationValue struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
}

type loadsOutput struct {
	Code         code.ID            `json:"code"`
	CodeName     string             `json:"codeName"`
	Dead         float64            `json:"dead"`
	Live         float64            `json:"live"`
	Earth        float64            `json:"earth"`
	Combinations []combinationValue `json:"combinations"`
	Governing    string             `json:"governing"`
}

var loadRules = validate.Table{
	Numbers: []validate.Rule{
		{Field: "dead", Sign: validate.NonNegative},
		{Field: "live", Sign: validate.NonNegative},
		{Field: "earth", Sign: validate.NonNegative},
	},
}

func newLoadsCommand(opts *rootOptions) *cobra.Command {
	var dead, live, earth float64

	cmd := &cobra.Command{
		Use:   "loads",
		Short: "Factor a service action with the code load combinations",
		Long: `Apply every strength load combination of the selected code to a
service action split into dead (D), live (L) and lateral earth (H) parts,
and report the governing combination.

The action can be any force or moment; units are carried through.

Examples:
  gorcd loads --dead 100 --live 50
  gorcd loads --dead 40 --earth 25 --code CSA`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			format := opts.cfg.Format

			errs := loadRules.Check(map[string]float64{"dead": dead, "live": live, "earth": earth}, nil)
			if len(errs) == 0 && dead == 0 && live == 0 && earth == 0 {
				errs = append(errs, &validate.ValidationError{Field: "dead", Kind: validate.KindMissing, Message: "at least one of dead, live or earth is required"})
			}
			if err := errs.Err(); err != nil {
				return fail(w, format, "invalid loads", err)
			}

			p, err := code.Resolve(opts.cfg.CodeID())
			if err != nil {
				return fail(w, format, "invalid loads", err)
			}
			demand := loads.Combine([]loads.Load{{Action: loads.Moment, Dead: dead, Live: live, Earth: earth}}, p, loads.Moment)

			out := loadsOutput{
				Code: p.ID, CodeName: p.Name,
				Dead: dead, Live: live, Earth: earth,
				Governing: demand.Combination.ID,
			}
			for _, lc := range p.Combinations() {
				out.Combinations = append(out.Combinations, combinationValue{
					ID: lc.ID, Description: lc.Description, Value: lc.Apply(dead, live, earth),
				})
			}

			if format == "json" {
				return writeJSON(w, response{Status: "ok", Data: out})
			}

			heading(w, "FACTORED LOADS - "+p.Name)
			subheading(w, "SERVICE ACTIONS")
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "  Dead (D):\t%s\n", num(dead, 2))
			fmt.Fprintf(tw, "  Live (L):\t%s\n", num(live, 2))
			fmt.Fprintf(tw, "  Earth (H):\t%s\n", num(earth, 2))
			tw.Flush()
			fmt.Fprintln(w)

			subheading(w, "LOAD COMBINATIONS")
			tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "  Combo\tFormula\tFactored\t\n")
			fmt.Fprintf(tw, "  ─────\t───────\t────────\t\n")
			for _, c := range out.Combinations {
				mark := ""
				if c.ID == out.Governing {
					mark = "◄ GOVERNS"
				}
				fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", c.ID, c.Description, num(c.Value, 2), mark)
			}
			tw.Flush()
			fmt.Fprintln(w)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&dead, "dead", "D", 0, "dead load part (D)")
	cmd.Flags().Float64VarP(&live, "live", "L", 0, "live load part (L)")
	cmd.Flags().Float64VarP(&earth, "earth", "H", 0, "lateral earth pressure part (H)")
	return cmd
}
