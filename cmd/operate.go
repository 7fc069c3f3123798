package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
)

type operateCmd struct {
	device string
	delay  time.Duration
}

func (*operateCmd) Name() string     { return "operate" }
func (*operateCmd) Synopsis() string { return "execute operations on a device" }
func (*operateCmd) Usage() string {
	return `inky operate -device id <operation>...

Execute operations on a device and wait for them to complete.
'inky dashboard -operations' lists the available operations.
`
}

func (c *operateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.device, "device", "", "id of the target device")
	f.DurationVar(&c.delay, "delay", 0, "simulated execution time, the configured one when 0")
}

func (c *operateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.device == "" || f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "operate requires -device and at least one operation")
		return subcommands.ExitUsageError
	}
	app, _, ok := newAppState(c.delay)
	if !ok {
		return subcommands.ExitFailure
	}

	t, err := app.Submit(ctx, c.device, f.Args()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Executing %s on %s (task %s)\n", strings.Join(f.Args(), ", "), t.Device().Name, t.ID())

	r, err := t.Wait(ctx)
	if err == nil {
		err = r.Err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing operations: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Executed %d operations on device %s\n", len(r.Operations), r.DeviceID)
	return subcommands.ExitSuccess
}
