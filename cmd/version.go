package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/version"
)

func newVersionCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of gorcd",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			info := version.Get()
			if opts.cfg.Format == "json" {
				return writeJSON(w, response{Status: "ok", Data: info})
			}
			fmt.Fprintln(w, info)
			fmt.Fprintln(w, "Reinforced Concrete Member Design Tool")
			fmt.Fprintln(w, "ACI 318-25 / ASCE 7-22 and CSA A23.3-24 / NBCC 2020")
			return nil
		},
	}
}
