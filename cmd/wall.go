package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/wall"
)

func newWallCommand(opts *rootOptions) *cobra.Command {
	var (
		in wall.Input
		df designFlags
	)

	cmd := &cobra.Command{
		Use:     "wall",
		Aliases: []string{"retaining-wall"},
		Short:   "Design a cantilever retaining wall",
		Long: `Check overturning, sliding and bearing of a cantilever retaining wall
retaining level backfill, and design the stem and base reinforcement.
Everything is per metre run of wall.

Examples:
  gorcd wall --height 4000 --stem 300 --base 400 --toe 800 --heel 1800 \
      --unit-weight 18 --friction-angle 30 --surcharge 10 --mu 0.6 --bearing 200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesign(cmd, opts, in, &df)
		},
	}

	f := cmd.Flags()
	f.Float64VarP(&in.WallHeight, "height", "H", 0, "underside of base to top of stem (mm)")
	f.Float64Var(&in.StemThickness, "stem", 0, "stem thickness (mm)")
	f.Float64Var(&in.BaseThickness, "base", 0, "base thickness (mm)")
	f.Float64Var(&in.ToeLength, "toe", 0, "toe length (mm)")
	f.Float64Var(&in.HeelLength, "heel", 0, "heel length (mm)")
	f.Float64Var(&in.SoilUnitWeight, "unit-weight", 18, "backfill unit weight (kN/m³)")
	f.Float64Var(&in.FrictionAngle, "friction-angle", 30, "backfill friction angle (degrees)")
	f.Float64Var(&in.Surcharge, "surcharge", 0, "live surcharge on the backfill (kPa)")
	f.Float64Var(&in.BaseFriction, "mu", 0.5, "base friction coefficient")
	f.Float64VarP(&in.AllowableBearing, "bearing", "q", 0, "allowable soil bearing (kPa)")
	f.Float64Var(&in.CoverThickness, "cover", 50, "clear cover (mm)")
	f.StringVar(&in.ConcreteGrade, "concrete", "C30", "concrete grade (C25 to C45)")
	f.StringVar(&in.SteelGrade, "steel", "420", "steel grade (400, 420, 500 or 520)")
	df.register(cmd)

	return cmd
}
