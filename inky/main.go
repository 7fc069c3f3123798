// Command inky swipes through a deck of crypto and stock assets, charts
// them, and drives the device management dashboard.
//
// Unknown subcommands are looked up in the PATH as inky-<subcommand>
// executables.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/inky/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// answer shell completion requests, a no-op otherwise.
	cmd.Completion(commander).Complete("inky")

	flag.Parse()

	if sub := flag.Arg(0); sub != "" && !cmd.IsCommand(commander, sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
