package main

import (
	"github.com/philipparndt/gobbox/internal/config"
	"github.com/philipparndt/gobbox/internal/logx"
	"github.com/philipparndt/gobbox/pkg/report"
	"github.com/philipparndt/gobbox/pkg/units"
	"github.com/philipparndt/gobbox/version"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags and the settings derived from them
type globalOptions struct {
	configPath  string
	format      string
	precision   int
	verbose     bool
	veryVerbose bool
	quiet       bool

	cfg   *config.Config
	units *units.Table
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "gobbox",
		Short: "Measure axis-aligned bounding boxes of 3D shapes",
		Long: `gobbox computes the axis-aligned bounding box of a shape and reports its
dimensions, surface area and volume together with the min/max corners and unit.
Boxes can be given as corner coordinates, read from STL, 3MF or OpenSCAD files,
or built with the sdfx geometry kernel.`,
		Version:           version.GetFullVersion(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.load,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultFile, "settings file")
	flags.StringVarP(&opts.format, "format", "f", "", "output format: text, json or yaml")
	flags.IntVar(&opts.precision, "precision", report.DefaultPrecision, "decimals in text output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log progress")
	flags.BoolVar(&opts.veryVerbose, "vv", false, "log debug details")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "log errors only")

	cmd.AddCommand(
		newMeasureCmd(opts),
		newFileCmd(opts),
		newShapeCmd(opts),
		newUnitsCmd(opts),
		newCompletionCmd(),
	)

	return cmd
}

// load sets up logging and merges the settings file with command line flags
func (o *globalOptions) load(cmd *cobra.Command, args []string) error {
	logx.Setup(cmd.ErrOrStderr(), logx.LevelFromFlags(o.veryVerbose, o.verbose, o.quiet))

	cfg, err := config.Load(o.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("format") {
		cfg.Format = o.format
	}
	if cmd.Flags().Changed("precision") {
		cfg.Precision = o.precision
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	o.cfg = cfg
	o.units = cfg.UnitTable()
	return nil
}

// unit picks the flag value, then the source's declared unit, then the configured default
func (o *globalOptions) unit(flag, declared string) string {
	switch {
	case flag != "":
		return flag
	case declared != "":
		return declared
	default:
		return o.cfg.Unit
	}
}

func (o *globalOptions) outputFormat() report.Format {
	format, err := report.ParseFormat(o.cfg.Format)
	if err != nil {
		return report.FormatText
	}
	return format
}

func (o *globalOptions) write(cmd *cobra.Command, doc report.Document) error {
	return report.Write(cmd.OutOrStdout(), doc, report.Options{
		Format:    o.outputFormat(),
		Precision: o.cfg.Precision,
		Units:     o.units,
	})
}
