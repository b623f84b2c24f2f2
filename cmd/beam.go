package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/beam"
)

func newBeamCommand(opts *rootOptions) *cobra.Command {
	var (
		in      beam.Input
		support string
		df      designFlags
	)

	cmd := &cobra.Command{
		Use:   "beam",
		Short: "Design a rectangular beam for flexure, shear and deflection",
		Long: `Design tension (and, when needed, compression) reinforcement and
stirrups for a rectangular beam section.

A negative moment puts the tension face at the top. The support condition
sets the minimum depth for deflection control.

Examples:
  gorcd beam --moment 180 --shear 120 --span 6000 --width 300 --height 500
  gorcd beam --moment -95 --shear 80 --span 2500 --width 300 --height 450 --support cantilever
  gorcd beam -i beam.json --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Support = beam.Support(support)
			return runDesign(cmd, opts, in, &df)
		},
	}

	f := cmd.Flags()
	f.Float64VarP(&in.Moment, "moment", "M", 0, "service moment (kN·m), negative for top tension")
	f.Float64VarP(&in.Shear, "shear", "V", 0, "service shear (kN)")
	f.Float64VarP(&in.Span, "span", "L", 0, "span (mm)")
	f.Float64VarP(&in.Width, "width", "b", 0, "beam width (mm)")
	f.Float64Var(&in.Height, "height", 0, "overall height (mm)")
	f.Float64Var(&in.CoverThickness, "cover", 40, "clear cover to stirrups (mm)")
	f.StringVar(&support, "support", string(beam.Simple), "support: simple, one-end, both-ends or cantilever")
	f.StringVar(&in.ConcreteGrade, "concrete", "C30", "concrete grade (C25 to C45)")
	f.StringVar(&in.SteelGrade, "steel", "420", "steel grade (400, 420, 500 or 520)")
	f.Float64Var(&in.LiveLoadRatio, "live-ratio", 0, "live share of the service actions (0 to 1); at 0 everything is dead load and 1.4D governs")
	df.register(cmd)

	return cmd
}
