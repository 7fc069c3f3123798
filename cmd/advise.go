package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/inky/advisor"
	"github.com/etnz/inky/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type adviseCmd struct {
	seed    uint64
	ordered bool
	model   string
}

func (*adviseCmd) Name() string     { return "advise" }
func (*adviseCmd) Synopsis() string { return "comment a portfolio with a generative model" }
func (*adviseCmd) Usage() string {
	return `inky advise [-seed n] [-ordered] [-model name] <action>...

Replay the actions like 'inky replay' and ask a Gemini model for a short
commentary on the resulting portfolio. The client reads its API key from
the GOOGLE_API_KEY or GEMINI_API_KEY environment variable.
`
}

func (c *adviseCmd) SetFlags(f *flag.FlagSet) {
	f.Uint64Var(&c.seed, "seed", 0, "shuffle seed, random when 0")
	f.BoolVar(&c.ordered, "ordered", false, "keep the catalog order")
	f.StringVar(&c.model, "model", "", "model name, the configured one when empty")
}

func (c *adviseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, ok := replay(c.seed, c.ordered, f.Args())
	if !ok {
		return subcommands.ExitFailure
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logs: %v\n", err)
		return subcommands.ExitFailure
	}
	model := c.model
	if model == "" {
		model = cfg.GenAIModel
	}

	sum := s.Summary()
	printMarkdown(renderer.RenderSummary(&sum))

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}
	comment, err := advisor.New(client, model, log).Comment(ctx, sum)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Advisor failed:", err)
		return subcommands.ExitFailure
	}
	printMarkdown("\n## Commentary\n\n" + comment + "\n")
	return subcommands.ExitSuccess
}
