// Package cmd implements the inky command line application: swipe through a
// deck of assets, chart them, and drive the device dashboard.
package cmd

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/inky"
	"github.com/etnz/inky/config"
	"github.com/etnz/inky/logging"
	"github.com/etnz/inky/mdm"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&catalogCmd{}, "assets")
	c.Register(&deckCmd{}, "assets")
	c.Register(&importCmd{}, "assets")

	c.Register(&swipeCmd{}, "discover")
	c.Register(&replayCmd{}, "discover")
	c.Register(&adviseCmd{}, "discover")

	c.Register(&chartCmd{}, "charts")
	c.Register(&donutCmd{}, "charts")

	c.Register(&dashboardCmd{}, "devices")
	c.Register(&operateCmd{}, "devices")

	c.Register(&serveCmd{}, "")
	c.Register(&topicCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile  = flag.String("config", "", "Path to the YAML configuration file (default inky.yaml when present)")
	catalogFile = flag.String("catalog", "", "Path to a JSONL asset catalog, the embedded catalog when empty")
	datasetFile = flag.String("dataset", "", "Path to a JSON device dataset, the embedded dataset when empty")
	logLevel    = flag.String("log-level", "", "Log level: panic, fatal, error, warn, info, debug or trace")
	logFile     = flag.String("log-file", "", "Write logs to this file instead of stderr")
)

// loadConfig reads the configuration and applies the global flags set on
// the command line on top of it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return cfg, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "catalog":
			cfg.Catalog = *catalogFile
		case "dataset":
			cfg.Dataset = *datasetFile
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-file":
			cfg.LogFile = *logFile
		}
	})
	return cfg, nil
}

// DecodeCatalog loads the catalog selected by the configuration.
func DecodeCatalog(cfg config.Config) (*inky.Catalog, error) {
	return inky.LoadCatalog(cfg.Catalog)
}

// DecodeDataset loads the device dataset selected by the configuration.
func DecodeDataset(cfg config.Config) (*mdm.Dataset, error) {
	if cfg.Dataset == "" {
		return mdm.DefaultDataset(), nil
	}
	return mdm.LoadDataset(cfg.Dataset)
}

func newLogger(cfg config.Config) (*logrus.Logger, error) {
	return logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, MaxAge: cfg.LogMaxAge})
}

// newDeck shuffles the catalog. A zero seed picks a random one, ordered
// keeps the catalog order.
func newDeck(c *inky.Catalog, seed uint64, ordered bool) *inky.Deck {
	switch {
	case ordered:
		return inky.DeckOf(c.Assets()...)
	case seed == 0:
		return inky.NewSeededDeck(c, rand.Uint64())
	}
	return inky.NewSeededDeck(c, seed)
}

// setup loads the configuration and the catalog, reporting errors on stderr.
func setup() (config.Config, *inky.Catalog, bool) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return cfg, nil, false
	}
	c, err := DecodeCatalog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return cfg, nil, false
	}
	return cfg, c, true
}

// printMarkdown renders md for the terminal, or prints it as is when the
// output is not a terminal.
func printMarkdown(md string) {
	if fi, err := os.Stdout.Stat(); err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
