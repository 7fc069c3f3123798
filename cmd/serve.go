package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/inky"
	"github.com/etnz/inky/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	listen string
	seed   uint64
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the swipe session and the dashboard over HTTP" }
func (*serveCmd) Usage() string {
	return `inky serve [-listen addr] [-seed n]

Serve one swipe session and the device dashboard as a JSON API, with a
websocket stream of the session on /ws. See 'inky topic server'.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.listen, "listen", "", "address to listen on, the configured one when empty")
	f.Uint64Var(&c.seed, "seed", 0, "shuffle seed, random when 0")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, cfg, ok := newAppState(0)
	if !ok {
		return subcommands.ExitFailure
	}
	catalog, err := DecodeCatalog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return subcommands.ExitFailure
	}
	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logs: %v\n", err)
		return subcommands.ExitFailure
	}
	addr := c.listen
	if addr == "" {
		addr = cfg.Listen
	}
	seed := c.seed
	if seed == 0 {
		seed = cfg.Seed
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(catalog, inky.Start(newDeck(catalog, seed, false)), app, log)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error serving on %s: %v\n", addr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
