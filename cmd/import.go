package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/etnz/inky"
	"github.com/etnz/inky/quote"
	"github.com/google/subcommands"
)

type importCmd struct {
	file     string
	url      string
	output   string
	category string
	mapping  quote.Mapping
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "build a catalog from a JSON quote document" }
func (*importCmd) Usage() string {
	return `inky import (-file f | -url u) [-list path] [-symbol path] [-price path] ...

Read a JSON document of quotes, from a file or an HTTP GET, and print the
JSONL catalog of the quotes. Every path is a jsonpath expression: -list is
evaluated on the document, the other ones on each quote.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	m := quote.DefaultMapping
	f.StringVar(&c.file, "file", "", "JSON document to read")
	f.StringVar(&c.url, "url", "", "URL of the JSON document to fetch")
	f.StringVar(&c.output, "o", "", "write the catalog to this file instead of stdout")
	f.StringVar(&c.category, "category", string(m.DefaultCategory), "category of quotes without one")
	f.StringVar(&c.mapping.List, "list", m.List, "path to the list of quotes")
	f.StringVar(&c.mapping.ID, "id", m.ID, "path to the asset id, numbered from 1 when empty")
	f.StringVar(&c.mapping.Name, "name", m.Name, "path to the asset name")
	f.StringVar(&c.mapping.Symbol, "symbol", m.Symbol, "path to the ticker symbol")
	f.StringVar(&c.mapping.Category, "category-path", m.Category, "path to the asset category")
	f.StringVar(&c.mapping.Price, "price", m.Price, "path to the price")
	f.StringVar(&c.mapping.Change, "change", m.Change, "path to the daily change in percent")
	f.StringVar(&c.mapping.MarketCap, "market-cap", m.MarketCap, "path to the market capitalization")
	f.StringVar(&c.mapping.Volume, "volume", m.Volume, "path to the daily volume")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.file == "") == (c.url == "") {
		fmt.Fprintln(os.Stderr, "import requires exactly one of -file or -url")
		return subcommands.ExitUsageError
	}
	cat, err := inky.ParseCategory(c.category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	c.mapping.DefaultCategory = cat

	var doc any
	if c.file != "" {
		doc, err = quote.ReadFile(c.file)
	} else {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		doc, err = quote.Fetch(ctx, http.DefaultClient, c.url)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading quotes: %v\n", err)
		return subcommands.ExitFailure
	}
	catalog, err := c.mapping.Catalog(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error extracting assets: %v\n", err)
		return subcommands.ExitFailure
	}

	w := os.Stdout
	if c.output != "" {
		w, err = os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer w.Close()
	}
	if err := inky.EncodeCatalog(w, catalog); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing catalog: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.output != "" {
		fmt.Printf("Successfully imported %d assets into %s\n", catalog.Len(), c.output)
	}
	return subcommands.ExitSuccess
}
