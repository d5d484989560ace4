package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/philipparndt/gobbox/pkg/report"
	"github.com/spf13/cobra"
)

func newUnitsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List known length units and their symbols",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := opts.units.Units()

			if format := opts.outputFormat(); format != report.FormatText {
				return report.Encode(cmd.OutOrStdout(), list, format)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSYMBOL\tMETRES\tALIASES")
			for _, u := range list {
				metres := "-"
				if u.MetersPer > 0 {
					metres = fmt.Sprintf("%g", u.MetersPer)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.Name, u.Symbol, metres, strings.Join(u.Aliases, ", "))
			}
			return w.Flush()
		},
	}
}
