package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"kakeibo/internal/core"
	"kakeibo/internal/screens"
)

const barWidth = 30

func newChartCommand(app *App) *cobra.Command {
	var through string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Show the cumulative balance by month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := app.ui.Graph

			month := g.CurrentMonth()
			if through != "" {
				m, err := core.ParseMonthKey(through)
				if err != nil {
					return report(cmd.ErrOrStderr(), err)
				}
				month = m
			}

			pts := g.Series(month)
			scale := 0.0
			for _, p := range pts {
				if v := p.Cumulative.Abs().InexactFloat64(); v > scale {
					scale = v
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			for _, p := range pts {
				fmt.Fprintf(tw, "%s\t%s\t %s\n", p.Label, p.Display, bar(p, scale))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&through, "through", "", "last month to show as YYYY-MM (default: current month)")

	return cmd
}

func bar(p screens.ChartPoint, scale float64) string {
	if scale == 0 {
		return ""
	}
	n := int(p.Cumulative.Abs().InexactFloat64() / scale * barWidth)
	mark := "#"
	if p.Cumulative.IsNegative() {
		mark = "-"
	}
	return strings.Repeat(mark, n)
}
