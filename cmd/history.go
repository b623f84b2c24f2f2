package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/design"
	"github.com/alexiusacademia/gorcd/internal/history"
)

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse designs saved with --save",
	}
	cmd.AddCommand(newHistoryListCommand(opts), newHistoryShowCommand(opts))
	return cmd
}

func openHistory(opts *rootOptions) (*history.Store, error) {
	return history.Open(opts.cfg.HistoryPath, history.WithLogger(opts.logger))
}

func newHistoryListCommand(opts *rootOptions) *cobra.Command {
	var (
		memberName string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved designs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			format := opts.cfg.Format

			var member design.Member
			if memberName != "" {
				m, err := design.ParseMember(memberName)
				if err != nil {
					return fail(w, format, "invalid member", err)
				}
				member = m
			}

			store, err := openHistory(opts)
			if err != nil {
				return fail(w, format, "cannot open history", err)
			}
			defer store.Close()

			records, err := store.List(cmd.Context(), member, limit)
			if err != nil {
				return fail(w, format, "cannot list history", err)
			}

			if format == "json" {
				if records == nil {
					records = []history.Record{}
				}
				return writeJSON(w, response{Status: "ok", Data: records})
			}
			if len(records) == 0 {
				fmt.Fprintln(w, "No saved designs.")
				return nil
			}
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSAVED\tMEMBER\tCODE\tRESULT")
			for _, rec := range records {
				verdict := "PASS"
				if !rec.Pass {
					verdict = "FAIL"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					rec.ID, rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.Member, rec.Code, verdict)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&memberName, "member", "m", "", "only designs of this member type")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of designs")
	return cmd
}

func newHistoryShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved design by id or unique id prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			format := opts.cfg.Format

			store, err := openHistory(opts)
			if err != nil {
				return fail(w, format, "cannot open history", err)
			}
			defer store.Close()

			rec, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return fail(w, format, "cannot show "+args[0], err)
			}

			if format == "json" {
				return writeJSON(w, response{Status: "ok", Data: rec})
			}
			var r design.Result
			if err := json.Unmarshal(rec.Result, &r); err != nil {
				return fail(w, format, "corrupt record "+rec.ID, err)
			}
			fmt.Fprintf(w, "\n  Design %s saved %s\n", rec.ID, rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			writeReport(w, &r)
			return nil
		},
	}
}
