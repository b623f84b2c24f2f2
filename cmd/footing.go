package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/footing"
)

func newFootingCommand(opts *rootOptions) *cobra.Command {
	var (
		in footing.Input
		df designFlags
	)

	cmd := &cobra.Command{
		Use:     "footing",
		Aliases: []string{"foundation"},
		Short:   "Design an isolated spread footing",
		Long: `Check soil bearing, one-way and punching shear, and design the bottom
mats of an isolated rectangular footing under a single column.

The moment acts along the footing length.

Examples:
  gorcd footing --axial 1200 --moment 60 --column-width 400 --column-depth 400 \
      --footing-width 2400 --footing-length 2400 --thickness 600 --bearing 250`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesign(cmd, opts, in, &df)
		},
	}

	f := cmd.Flags()
	f.Float64VarP(&in.AxialLoad, "axial", "P", 0, "service column load (kN)")
	f.Float64VarP(&in.Moment, "moment", "M", 0, "service moment along the length (kN·m)")
	f.Float64Var(&in.ColumnWidth, "column-width", 0, "column side along the footing width (mm)")
	f.Float64Var(&in.ColumnDepth, "column-depth", 0, "column side along the footing length (mm)")
	f.Float64VarP(&in.FootingWidth, "footing-width", "B", 0, "footing width (mm)")
	f.Float64VarP(&in.FootingLength, "footing-length", "L", 0, "footing length (mm)")
	f.Float64VarP(&in.Thickness, "thickness", "t", 0, "footing thickness (mm)")
	f.Float64VarP(&in.AllowableBearing, "bearing", "q", 0, "allowable soil bearing (kPa)")
	f.Float64Var(&in.CoverThickness, "cover", 75, "clear cover (mm)")
	f.StringVar(&in.ConcreteGrade, "concrete", "C30", "concrete grade (C25 to C45)")
	f.StringVar(&in.SteelGrade, "steel", "420", "steel grade (400, 420, 500 or 520)")
	f.Float64Var(&in.LiveLoadRatio, "live-ratio", 0, "live share of the service actions (0 to 1); at 0 everything is dead load and 1.4D governs")
	df.register(cmd)

	return cmd
}
