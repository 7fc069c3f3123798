package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/inky/config"
	"github.com/etnz/inky/mdm"
	"github.com/etnz/inky/renderer"
	"github.com/google/subcommands"
)

type dashboardCmd struct {
	tenant     string
	tab        string
	query      string
	status     string
	operations bool
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show a tab of the device dashboard" }
func (*dashboardCmd) Usage() string {
	return `inky dashboard [-tenant name] [-tab name] [-q query] [-status s] [-operations]

Show a tab of the device management dashboard for a tenant.
Tabs are overview, devices, financing, applications, policies, analytics,
users and settings. -q and -status filter the devices tab.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tenant, "tenant", mdm.AllTenants, "tenant name or id")
	f.StringVar(&c.tab, "tab", string(mdm.Overview), "dashboard tab")
	f.StringVar(&c.query, "q", "", "search devices by name, user or model")
	f.StringVar(&c.status, "status", "all", "device status: all, online, offline or warning")
	f.BoolVar(&c.operations, "operations", false, "list the device operations instead")
}

func (c *dashboardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, _, ok := newAppState(0)
	if !ok {
		return subcommands.ExitFailure
	}
	if c.operations {
		printMarkdown(renderer.OperationsMarkdown(app.Dataset().OperationsByCategory()))
		return subcommands.ExitSuccess
	}

	tab, err := mdm.ParseTab(c.tab)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	status, _, err := mdm.ParseDeviceStatus(c.status)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := app.SelectTenant(c.tenant); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	app.SetTab(tab)

	printMarkdown(renderer.DashboardMarkdown(&renderer.Dashboard{
		Data:   app.Dataset(),
		View:   app.View(),
		Filter: mdm.Filter{Query: c.query, Status: status},
	}))
	return subcommands.ExitSuccess
}

// newAppState loads the dataset and builds the dashboard state with a
// simulated executor. A zero delay uses the configured one.
func newAppState(delay time.Duration) (*mdm.AppState, config.Config, bool) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return nil, cfg, false
	}
	data, err := DecodeDataset(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return nil, cfg, false
	}
	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logs: %v\n", err)
		return nil, cfg, false
	}
	if delay == 0 {
		delay = cfg.OperationDelay
	}
	return mdm.NewAppState(data, mdm.NewSimulatedExecutor(delay, log), log), cfg, true
}
