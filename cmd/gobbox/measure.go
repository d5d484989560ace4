package main

import (
	"fmt"
	"log/slog"

	"github.com/philipparndt/gobbox/pkg/analysis"
	"github.com/philipparndt/gobbox/pkg/report"
	"github.com/philipparndt/gobbox/pkg/units"
	"github.com/spf13/cobra"
)

func newMeasureCmd(opts *globalOptions) *cobra.Command {
	var (
		minCorner []float64
		maxCorner []float64
		unit      string
		unitFrom  string
	)

	cmd := &cobra.Command{
		Use:   "measure --min x,y,z --max x,y,z",
		Short: "Measure a bounding box given by its corners",
		Long: `Compute dimensions, surface area and volume of the box spanned by two corners.
The unit label can be given directly or read from the length unit of a STEP file.`,
		Example: `  gobbox measure --min=-2,-3,-4 --max=2,3,4 --unit mm
  gobbox measure --min=0,0,0 --max=5,0,3 --unit-from part.step`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(minCorner) != 3 || len(maxCorner) != 3 {
				return fmt.Errorf("--min and --max need exactly three coordinates")
			}

			var declared units.FileUnits
			if unitFrom != "" {
				fu, err := units.ReadSTEPUnitsFile(unitFrom)
				if err != nil {
					return err
				}
				if fu.Length == "" {
					return fmt.Errorf("%s: %w", unitFrom, units.ErrNoLengthUnit)
				}
				slog.Debug("STEP units", "file", unitFrom, "length", fu.Length, "angle", fu.Angle)
				declared = fu
			}

			result, err := analysis.MeasureCorners(
				minCorner[0], minCorner[1], minCorner[2],
				maxCorner[0], maxCorner[1], maxCorner[2],
				opts.unit(unit, declared.Length),
			)
			if err != nil {
				return err
			}

			return opts.write(cmd, report.Document{Source: unitFrom, Measurement: result, AngleUnit: declared.Angle})
		},
	}

	cmd.Flags().Float64SliceVar(&minCorner, "min", nil, "minimum corner x,y,z")
	cmd.Flags().Float64SliceVar(&maxCorner, "max", nil, "maximum corner x,y,z")
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "unit label")
	cmd.Flags().StringVar(&unitFrom, "unit-from", "", "read the unit label from a STEP file")

	_ = cmd.MarkFlagRequired("min")
	_ = cmd.MarkFlagRequired("max")
	cmd.MarkFlagsMutuallyExclusive("unit", "unit-from")

	return cmd
}
