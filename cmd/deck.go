package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type deckCmd struct {
	seed    uint64
	ordered bool
}

func (*deckCmd) Name() string     { return "deck" }
func (*deckCmd) Synopsis() string { return "print a shuffled deck" }
func (*deckCmd) Usage() string {
	return `inky deck [-seed n] [-ordered]

Print the cards of a shuffled deck, top card first.
The same seed always gives the same deck.
`
}

func (c *deckCmd) SetFlags(f *flag.FlagSet) {
	f.Uint64Var(&c.seed, "seed", 0, "shuffle seed, random when 0")
	f.BoolVar(&c.ordered, "ordered", false, "keep the catalog order")
}

func (c *deckCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, catalog, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	seed := c.seed
	if seed == 0 {
		seed = cfg.Seed
	}
	deck := newDeck(catalog, seed, c.ordered)
	for i, a := range deck.Cards() {
		fmt.Printf("%2d. %-6s %-16s %-6s %s\n", i+1, a.Symbol, a.Name, a.Category, a.Price)
	}
	return subcommands.ExitSuccess
}
