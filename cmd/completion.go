package cmd

import (
	"flag"

	"github.com/etnz/inky/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors complete the value of flags known to take a file or a
// closed set of values. Other flags take anything.
var flagPredictors = map[string]complete.Predictor{
	"config":    predict.Files("*.yaml"),
	"catalog":   predict.Files("*.jsonl"),
	"dataset":   predict.Files("*.json"),
	"log-file":  predict.Files("*"),
	"file":      predict.Files("*.json"),
	"o":         predict.Files("*.jsonl"),
	"tab":       predict.Set{"overview", "devices", "financing", "applications", "policies", "analytics", "users", "settings"},
	"status":    predict.Set{"all", "online", "offline", "warning"},
	"category":  predict.Set{"crypto", "stock", "meme"},
	"log-level": predict.Set{"panic", "fatal", "error", "warn", "info", "debug", "trace"},
}

func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

// Completion returns the shell completion of the commander: its global
// flags and every registered subcommand with its own flags.
//
// Calling Complete on the result answers a completion request and exits
// when the COMP_LINE environment variable is set, and does nothing otherwise.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictFlags(flag.CommandLine),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		sub := &complete.Command{Flags: predictFlags(fs)}
		switch cmd.Name() {
		case "topic":
			topics, _ := docs.GetAllTopics()
			sub.Args = predict.Set(append(topics, "readme"))
		case "help":
			sub.Args = predict.Set(commandNames(c))
		}
		root.Sub[cmd.Name()] = sub
	})
	return root
}

// IsCommand reports whether name is a registered subcommand.
func IsCommand(c *subcommands.Commander, name string) bool {
	for _, n := range commandNames(c) {
		if n == name {
			return true
		}
	}
	return false
}

func commandNames(c *subcommands.Commander) []string {
	var names []string
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		names = append(names, cmd.Name())
	})
	return names
}
