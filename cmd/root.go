package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/config"
	"github.com/alexiusacademia/gorcd/internal/diagram"
	"github.com/alexiusacademia/gorcd/internal/version"
)

// rootOptions holds the global flags and what PersistentPreRunE builds
// from them.
type rootOptions struct {
	configPath string
	codeName   string
	format     string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand builds the gorcd command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "gorcd",
		Short: "Reinforced Concrete Member Design Tool",
		Long: `gorcd - Go Reinforced Concrete Designer

A CLI tool for the strength design of reinforced concrete members
under ACI 318-25 / ASCE 7-22 or CSA A23.3-24 / NBCC 2020.

Members:
  - Columns (tied and spiral, biaxial bending, slenderness)
  - Beams (singly and doubly reinforced, shear, deflection)
  - One-way slabs
  - Isolated footings
  - Cantilever retaining walls

Settings are read from gorcd.yaml (or --config) and GORCD_* environment
variables; flags override both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w)
			fmt.Fprint(w, diagram.DrawSummaryBox("gorcd v"+version.Version, []string{
				"Go Reinforced Concrete Designer",
				fmt.Sprintf("%s ©  %s", version.Author, version.Year),
			}))
			fmt.Fprintln(w)
			fmt.Fprintln(w, "  Design columns, beams, slabs, footings and retaining walls")
			fmt.Fprintln(w, "  to ACI 318 or CSA A23.3.")
			fmt.Fprintln(w)
			fmt.Fprintln(w, "  Use 'gorcd --help' to see available commands.")
			fmt.Fprintln(w)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "config file (default ./"+config.DefaultFile+" when present)")
	f.StringVar(&opts.codeName, "code", "", "building code: ACI or CSA (default from config, else ACI)")
	f.StringVar(&opts.format, "format", "", "output format: text or json (default from config, else text)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")

	cmd.AddCommand(
		newColumnCommand(opts),
		newBeamCommand(opts),
		newSlabCommand(opts),
		newFootingCommand(opts),
		newWallCommand(opts),
		newSectionCommand(opts),
		newCodesCommand(opts),
		newLoadsCommand(opts),
		newHistoryCommand(opts),
		newBatchCommand(opts),
		newVersionCommand(opts),
	)
	return cmd
}

// load resolves the configuration, applies flag overrides and sets up the
// logger.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Read(o.configPath)
	if err != nil {
		return fail(cmd.OutOrStdout(), o.format, "invalid configuration", err)
	}
	if cmd.Flags().Changed("code") {
		cfg.Code = o.codeName
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = o.format
	}
	if err := cfg.Validate(); err != nil {
		return fail(cmd.OutOrStdout(), o.format, "invalid configuration", err)
	}
	o.cfg = cfg

	level := cfg.Level()
	if o.verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		o.logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), hopts))
	} else {
		o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), hopts))
	}
	o.logger.Debug("configuration loaded", "code", cfg.Code, "format", cfg.Format, "history", cfg.HistoryPath)
	return nil
}

// Execute runs the root command and exits with its exit code.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(ExitCode(err))
	}
}
