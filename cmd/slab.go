package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/slab"
)

func newSlabCommand(opts *rootOptions) *cobra.Command {
	var (
		in      slab.Input
		support string
		df      designFlags
	)

	cmd := &cobra.Command{
		Use:   "slab",
		Short: "Design a one-way solid slab",
		Long: `Design main and distribution reinforcement for a one-way slab, per
metre width, under uniform dead and live area loads. Self weight is added.

Examples:
  gorcd slab --span 4000 --thickness 175 --dead 1.5 --live 2.4
  gorcd slab --span 1800 --thickness 200 --dead 1 --live 4.8 --support cantilever --code CSA`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Support = slab.Support(support)
			return runDesign(cmd, opts, in, &df)
		},
	}

	f := cmd.Flags()
	f.Float64VarP(&in.Span, "span", "L", 0, "clear span (mm)")
	f.Float64VarP(&in.Thickness, "thickness", "t", 0, "slab thickness (mm)")
	f.Float64Var(&in.DeadLoad, "dead", 0, "superimposed dead load (kPa)")
	f.Float64Var(&in.LiveLoad, "live", 0, "live load (kPa)")
	f.Float64Var(&in.CoverThickness, "cover", 20, "clear cover (mm)")
	f.StringVar(&support, "support", string(slab.Simple), "support: simple, one-end, both-ends or cantilever")
	f.StringVar(&in.ConcreteGrade, "concrete", "C30", "concrete grade (C25 to C45)")
	f.StringVar(&in.SteelGrade, "steel", "420", "steel grade (400, 420, 500 or 520)")
	df.register(cmd)

	return cmd
}
