package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/inky"
	"github.com/etnz/inky/renderer"
	"github.com/google/subcommands"
)

type replayCmd struct {
	seed    uint64
	ordered bool
}

func (*replayCmd) Name() string     { return "replay" }
func (*replayCmd) Synopsis() string { return "apply swipes to a deck and print the portfolio" }
func (*replayCmd) Usage() string {
	return `inky replay [-seed n] [-ordered] <action>...

Apply the actions in order on a new deck, then print the portfolio summary.
Actions are the ones of 'inky swipe': r, l, reset, drag=<dx>.
`
}

func (c *replayCmd) SetFlags(f *flag.FlagSet) {
	f.Uint64Var(&c.seed, "seed", 0, "shuffle seed, random when 0")
	f.BoolVar(&c.ordered, "ordered", false, "keep the catalog order")
}

func (c *replayCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, ok := replay(c.seed, c.ordered, f.Args())
	if !ok {
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderSummary(ptr(s.Summary())))
	return subcommands.ExitSuccess
}

// replay starts a session and applies actions, reporting errors on stderr.
func replay(seed uint64, ordered bool, actions []string) (*inky.Session, bool) {
	cfg, catalog, ok := setup()
	if !ok {
		return nil, false
	}
	if seed == 0 {
		seed = cfg.Seed
	}
	s := inky.Start(newDeck(catalog, seed, ordered))
	for _, action := range actions {
		if err := apply(s, dragArg(action)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return nil, false
		}
	}
	return s, true
}

// dragArg turns the "drag=<dx>" argument form into the "drag <dx>" action.
func dragArg(arg string) string {
	if dx, ok := strings.CutPrefix(arg, "drag="); ok {
		return "drag " + dx
	}
	return arg
}
