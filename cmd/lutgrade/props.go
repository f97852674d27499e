package main

import (
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/colorlut"
)

func newPropsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "props",
		Short: "List the filter properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := printer()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			p.Fprintln(tw, "NAME\tTYPE\tRANGE\tDEFAULT\tDESCRIPTION")
			for _, prop := range colorlut.Properties() {
				rng := "-"
				if prop.Kind == colorlut.KindFloat {
					rng = "any"
					if prop.Min != -math.MaxFloat64 || prop.Max != math.MaxFloat64 {
						rng = p.Sprintf("%v..%v", prop.Min, prop.Max)
					}
				}
				def := "-"
				if prop.Default != nil {
					def = p.Sprintf("%q", prop.Default)
					if prop.Kind == colorlut.KindFloat {
						def = p.Sprintf("%v", prop.Default)
					}
				}
				p.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", prop.Name, prop.Kind, rng, def, prop.Blurb)
			}
			return tw.Flush()
		},
	}
}
