package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/code"
)

func newCodesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List the supported building codes and their factors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			profiles := make([]code.Profile, 0, len(code.Supported()))
			for _, id := range code.Supported() {
				p, err := code.Resolve(id)
				if err != nil {
					return fail(w, opts.cfg.Format, "cannot resolve "+string(id), err)
				}
				profiles = append(profiles, p)
			}

			if opts.cfg.Format == "json" {
				return writeJSON(w, response{Status: "ok", Data: profiles})
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tφ FLEXURE\tφ SHEAR\tφ TIED\tφ SPIRAL\tMATERIAL\tSHRINKAGE")
			for _, p := range profiles {
				fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.4f\n",
					p.ID, p.Name, p.Phi.Flexure, p.Phi.Shear, p.Phi.CompressionTied,
					p.Phi.CompressionSpiral, p.MaterialFactor, p.ShrinkageRatio)
			}
			tw.Flush()

			for _, p := range profiles {
				fmt.Fprintf(w, "\n%s combinations:\n", p.ID)
				for _, lc := range p.Combinations() {
					fmt.Fprintf(w, "  %s  %s\n", lc.ID, lc.Description)
				}
			}
			return nil
		},
	}
}
