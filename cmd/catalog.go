package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/inky"
	"github.com/etnz/inky/renderer"
	"github.com/google/subcommands"
)

type catalogCmd struct {
	jsonl bool
}

func (*catalogCmd) Name() string     { return "catalog" }
func (*catalogCmd) Synopsis() string { return "list the assets of the catalog" }
func (*catalogCmd) Usage() string {
	return `inky catalog [-jsonl]

List the assets of the catalog as a markdown table, or in the JSONL
catalog format with -jsonl.
`
}

func (c *catalogCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.jsonl, "jsonl", false, "print the catalog in the JSONL format")
}

func (c *catalogCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, catalog, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	if c.jsonl {
		if err := inky.EncodeCatalog(os.Stdout, catalog); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding catalog: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.CatalogMarkdown(catalog.Assets()))
	return subcommands.ExitSuccess
}
