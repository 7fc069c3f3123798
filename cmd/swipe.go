package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/inky"
	"github.com/etnz/inky/renderer"
	"github.com/google/subcommands"
)

type swipeCmd struct {
	seed    uint64
	ordered bool
}

func (*swipeCmd) Name() string     { return "swipe" }
func (*swipeCmd) Synopsis() string { return "swipe through a deck interactively" }
func (*swipeCmd) Usage() string {
	return `inky swipe [-seed n] [-ordered]

Show the cards of a shuffled deck one by one. Type one action per line:

  r, right, buy    add the asset to the portfolio
  l, left, skip    skip the asset
  drag <dx>        release a card dragged by dx pixels
  reset            start over with the same deck
  q, quit          stop and show the portfolio
`
}

func (c *swipeCmd) SetFlags(f *flag.FlagSet) {
	f.Uint64Var(&c.seed, "seed", 0, "shuffle seed, random when 0")
	f.BoolVar(&c.ordered, "ordered", false, "keep the catalog order")
}

func (c *swipeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, catalog, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	seed := c.seed
	if seed == 0 {
		seed = cfg.Seed
	}
	s := inky.Start(newDeck(catalog, seed, c.ordered))

	in := bufio.NewScanner(os.Stdin)
	for {
		if a, ok := s.Current(); ok {
			n, total := s.Position()
			printMarkdown(renderer.RenderCard(renderer.NewCard(a, n, total)))
			fmt.Print("\n[l]eft, [r]ight or [q]uit> ")
		} else {
			printMarkdown(renderer.RenderSummary(ptr(s.Summary())))
			fmt.Print("\nreset or [q]uit> ")
		}
		if !in.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(in.Text())
		if line == "q" || line == "quit" {
			break
		}
		if err := apply(s, line); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	if s.State() != inky.Complete {
		printMarkdown(renderer.RenderSummary(ptr(s.Summary())))
	}
	return subcommands.ExitSuccess
}

// apply performs one action on the session: a swipe direction, "reset" or
// "drag <dx>". A drag below the threshold does nothing.
func apply(s *inky.Session, action string) error {
	fields := strings.Fields(action)
	switch {
	case len(fields) == 0:
		return nil
	case fields[0] == "reset":
		s.Reset()
		return nil
	case fields[0] == "drag":
		if len(fields) != 2 {
			return fmt.Errorf("usage: drag <dx>")
		}
		dx, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("invalid drag offset %q: %w", fields[1], err)
		}
		if d, ok := inky.DragDirection(dx); ok {
			s.Swipe(d)
		}
		return nil
	}
	d, err := inky.ParseDirection(action)
	if err != nil {
		return err
	}
	s.Swipe(d)
	return nil
}

func ptr[T any](v T) *T { return &v }
