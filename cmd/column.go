package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/column"
)

func newColumnCommand(opts *rootOptions) *cobra.Command {
	var (
		in         column.Input
		columnType string
		df         designFlags
	)

	cmd := &cobra.Command{
		Use:   "column",
		Short: "Design a rectangular tied or spiral column",
		Long: `Design longitudinal and transverse reinforcement for a rectangular
column under axial load and biaxial bending.

Service loads are factored with the governing combination of the selected
code. Slender columns are handled with the moment magnifier, and biaxial
capacity with the reciprocal load method.

Examples:
  gorcd column --axial 1500 --mx 80 --my 60 --width 400 --depth 400 --height 3500
  gorcd column --axial 2500 --type spiral --width 500 --depth 500 --height 3000 --code CSA
  gorcd column -i column.yaml --diagram --save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.ColumnType = column.Type(columnType)
			return runDesign(cmd, opts, in, &df)
		},
	}

	f := cmd.Flags()
	f.Float64VarP(&in.AxialLoad, "axial", "P", 0, "service axial load (kN)")
	f.Float64Var(&in.MomentX, "mx", 0, "service moment about X (kN·m)")
	f.Float64Var(&in.MomentY, "my", 0, "service moment about Y (kN·m)")
	f.Float64VarP(&in.ColumnWidth, "width", "b", 0, "column width along X (mm)")
	f.Float64Var(&in.ColumnDepth, "depth", 0, "column depth along Y (mm)")
	f.Float64VarP(&in.ColumnHeight, "height", "H", 0, "unsupported height (mm)")
	f.StringVar(&in.ConcreteGrade, "concrete", "C30", "concrete grade (C25 to C45)")
	f.StringVar(&in.SteelGrade, "steel", "420", "steel grade (400, 420, 500 or 520)")
	f.Float64Var(&in.CoverThickness, "cover", 40, "clear cover to ties (mm)")
	f.StringVarP(&columnType, "type", "t", string(column.Tied), "column type: tied or spiral")
	f.Float64Var(&in.LiveLoadRatio, "live-ratio", 0, "live share of the service loads (0 to 1); at 0 everything is dead load and 1.4D governs")
	f.Float64VarP(&in.EffectiveLengthFactor, "length-factor", "k", 1, "effective length factor")
	df.register(cmd)

	return cmd
}
