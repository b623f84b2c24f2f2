package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/batch"
	"github.com/alexiusacademia/gorcd/internal/design"
)

type batchRow struct {
	Line          int    `json:"line"`
	Mark          string `json:"mark,omitempty"`
	Pass          bool   `json:"pass"`
	FailureReason string `json:"failureReason,omitempty"`
	Error         string `json:"error,omitempty"`
}

type batchOutput struct {
	Output string     `json:"output"`
	Passed int        `json:"passed"`
	Failed int        `json:"failed"`
	Errors int        `json:"errors"`
	Rows   []batchRow `json:"rows"`
}

func newBatchCommand(opts *rootOptions) *cobra.Command {
	var (
		memberName string
		sheet      string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "batch <schedule.xlsx>",
		Short: "Design every row of a member schedule workbook",
		Long: `Design every row of an Excel member schedule. The first row holds
the input field names (axialLoad, columnWidth, ...); an optional "mark"
column labels each member. Results are written to a "Results" sheet.

Examples:
  gorcd batch columns.xlsx --member column
  gorcd batch slabs.xlsx --member slab --code CSA -o slabs-designed.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			format := opts.cfg.Format

			member, err := design.ParseMember(memberName)
			if err != nil {
				return fail(w, format, "invalid member", err)
			}
			src := args[0]
			dst := output
			if dst == "" {
				dst = src
			}

			sum, err := batch.Run(cmd.Context(), src, dst, batch.Options{
				Member: member,
				Code:   opts.cfg.CodeID(),
				Sheet:  sheet,
				Logger: opts.logger,
			})
			if err != nil {
				return fail(w, format, "batch failed", err)
			}

			out := batchOutput{Output: dst, Passed: sum.Passed, Failed: sum.Failed, Errors: sum.Errors}
			for _, o := range sum.Outcomes {
				row := batchRow{Line: o.Line, Mark: o.Mark}
				switch {
				case o.Err != nil:
					row.Error = o.Err.Error()
				case o.Result != nil:
					row.Pass = o.Result.Pass
					row.FailureReason = string(o.Result.FailureReason)
				}
				out.Rows = append(out.Rows, row)
			}

			if format == "json" {
				if err := writeJSON(w, response{Status: "ok", Data: out}); err != nil {
					return err
				}
			} else {
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "ROW\tMARK\tRESULT")
				for _, row := range out.Rows {
					status := "PASS"
					switch {
					case row.Error != "":
						status = "ERROR " + row.Error
					case !row.Pass:
						status = "FAIL " + row.FailureReason
					}
					fmt.Fprintf(tw, "%d\t%s\t%s\n", row.Line, row.Mark, status)
				}
				tw.Flush()
				fmt.Fprintf(w, "\n%d passed, %d failed, %d rejected. Results written to %s\n",
					out.Passed, out.Failed, out.Errors, dst)
			}

			if out.Failed > 0 || out.Errors > 0 {
				return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d of %d members did not pass", out.Failed+out.Errors, len(out.Rows))}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&memberName, "member", "m", "", "member type of the schedule (column, beam, slab, footing, wall)")
	cmd.MarkFlagRequired("member")
	cmd.Flags().StringVar(&sheet, "sheet", "", "schedule sheet (default the first sheet)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the designed workbook here instead of in place")
	return cmd
}
