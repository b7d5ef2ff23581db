package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/audit-atlas/pkg/adapters"
	"github.com/de-tools/audit-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/audit-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/audit-atlas/pkg/services/config"
	"github.com/de-tools/audit-atlas/pkg/services/directory"
	"github.com/de-tools/audit-atlas/pkg/store/memory/seed"
)

// CLI is the offline analysis surface: it loads the configured directory and
// seed working set and renders the same projections the web API serves.
type CLI struct {
	reporter *export.Reporter
	rootCmd  *cobra.Command
	cfgPath  string
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auditatlas",
		Short: "Audit finding and KPI analysis tool",
	}

	cmd.PersistentFlags().StringVarP(&cli.cfgPath, "config", "c", "config.yaml", "Path to the config file")

	cmd.AddCommand(commands.NewManagersCmd(cli.loadSnapshot, cli.reporter))
	cmd.AddCommand(commands.NewHeadsCmd(cli.loadSnapshot, cli.reporter))
	cmd.AddCommand(commands.NewSummaryCmd(cli.loadSnapshot, cli.reporter))
	cmd.AddCommand(commands.NewFindingsCmd(cli.loadSnapshot, cli.reporter))

	return cmd
}

func (cli *CLI) loadSnapshot(_ context.Context) (commands.Snapshot, error) {
	cfg, err := config.Load(cli.cfgPath)
	if err != nil {
		return commands.Snapshot{}, err
	}

	dir, err := directory.LoadFile(cfg.DirectoryPath)
	if err != nil {
		return commands.Snapshot{}, err
	}

	data, err := seed.LoadFile(cfg.SeedPath)
	if err != nil {
		return commands.Snapshot{}, err
	}
	if len(data.Findings) == 0 {
		fmt.Fprintln(os.Stderr, "warning: seed working set is empty")
	}

	return commands.Snapshot{
		Findings:    adapters.MapStoreFindingsToDomain(data.Findings),
		ActionPlans: adapters.MapStoreActionPlansToDomain(data.ActionPlans),
		Directory:   dir,
	}, nil
}
