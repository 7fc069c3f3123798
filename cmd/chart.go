package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/inky/chart"
	"github.com/etnz/inky/renderer"
	"github.com/google/subcommands"
)

type chartCmd struct {
	svg    bool
	points bool
	blocks bool
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "print the price chart of an asset" }
func (*chartCmd) Usage() string {
	return `inky chart [-svg|-points|-blocks] <symbol>

Print the 30 values of the chart of an asset, one per line.
The chart only depends on the asset id and on the sign of its change.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.svg, "svg", false, "print the chart as an SVG image")
	f.BoolVar(&c.points, "points", false, "print the polyline points of the chart")
	f.BoolVar(&c.blocks, "blocks", false, "print the chart as a line of block characters")
}

func (c *chartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "chart requires exactly one asset symbol")
		return subcommands.ExitUsageError
	}
	_, catalog, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	a, ok := catalog.Lookup(f.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown asset %q\n", f.Arg(0))
		return subcommands.ExitFailure
	}
	series := a.Series()

	switch {
	case c.svg:
		fmt.Print(renderer.RenderSparkline(&renderer.Sparkline{Series: series, Positive: a.Positive()}))
	case c.points:
		fmt.Println(chart.Points(series))
	case c.blocks:
		fmt.Println(renderer.Blocks(series))
	default:
		for _, v := range series {
			fmt.Println(chart.Format(v))
		}
	}
	return subcommands.ExitSuccess
}
