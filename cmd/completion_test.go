package cmd

import (
	"flag"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommander() *subcommands.Commander {
	c := subcommands.NewCommander(flag.NewFlagSet("inky", flag.ContinueOnError), "inky")
	c.Register(c.HelpCommand(), "")
	Register(c)
	return c
}

func TestCompletion(t *testing.T) {
	c := newCommander()
	root := Completion(c)

	for _, name := range []string{"help", "catalog", "deck", "swipe", "replay", "chart", "donut", "dashboard", "operate", "serve", "import", "advise", "topic"} {
		assert.Contains(t, root.Sub, name)
	}

	deck := root.Sub["deck"]
	require.NotNil(t, deck)
	assert.Contains(t, deck.Flags, "seed")
	assert.Contains(t, deck.Flags, "ordered")

	dashboard := root.Sub["dashboard"]
	require.NotNil(t, dashboard)
	assert.ElementsMatch(t, []string{"all", "online", "offline", "warning"}, dashboard.Flags["status"].Predict(""))

	assert.Contains(t, root.Sub["topic"].Args.Predict(""), "swipe")
	assert.Contains(t, root.Sub["help"].Args.Predict(""), "serve")
}

func TestIsCommand(t *testing.T) {
	c := newCommander()
	assert.True(t, IsCommand(c, "swipe"))
	assert.True(t, IsCommand(c, "help"))
	assert.False(t, IsCommand(c, "hello"))
}
