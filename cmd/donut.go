package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/inky/chart"
	"github.com/etnz/inky/renderer"
	"github.com/google/subcommands"
)

type donutCmd struct {
	svg    bool
	size   float64
	stroke float64
}

func (*donutCmd) Name() string     { return "donut" }
func (*donutCmd) Synopsis() string { return "allocate the segments of a donut chart" }
func (*donutCmd) Usage() string {
	return `inky donut [-svg] [-size px] [-stroke px] <label=count>...

Print the segments of a donut chart, in the order of the arguments.
Example:

  inky donut crypto=2 stock=1 meme=1
`
}

func (c *donutCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.svg, "svg", false, "print the chart as an SVG image")
	f.Float64Var(&c.size, "size", chart.DefaultGeometry.Size, "size of the chart in pixels")
	f.Float64Var(&c.stroke, "stroke", chart.DefaultGeometry.StrokeWidth, "width of the ring in pixels")
}

func (c *donutCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "donut requires at least one label=count argument")
		return subcommands.ExitUsageError
	}
	entries, err := parseEntries(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	g := chart.Geometry{Size: c.size, StrokeWidth: c.stroke}
	d, ok := chart.NewDonut(g, entries)

	switch {
	case c.svg && !ok:
		fmt.Print(renderer.RenderNoData(g))
	case c.svg:
		fmt.Print(renderer.RenderDonut(&d))
	case !ok:
		fmt.Println("No data")
	default:
		printMarkdown(renderer.SegmentsMarkdown(&d))
	}
	return subcommands.ExitSuccess
}

func parseEntries(args []string) ([]chart.Entry, error) {
	entries := make([]chart.Entry, 0, len(args))
	for _, arg := range args {
		label, count, found := strings.Cut(arg, "=")
		if !found {
			return nil, fmt.Errorf("invalid entry %q: must be label=count", arg)
		}
		n, err := strconv.Atoi(count)
		if err != nil {
			return nil, fmt.Errorf("invalid count in %q: %w", arg, err)
		}
		entries = append(entries, chart.Entry{Label: label, Count: n})
	}
	return entries, nil
}
