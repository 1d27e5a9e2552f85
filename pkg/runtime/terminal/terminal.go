package terminal

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/de-tools/cost-advisor/pkg/runtime/terminal/commands"
	"github.com/de-tools/cost-advisor/pkg/services/account"
	"github.com/spf13/cobra"
)

const defaultTimeout = 5 * time.Minute

// CLI represents the command-line interface
type CLI struct {
	explorer account.Explorer
	globals  *commands.Globals
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Explorer account.Explorer
	Output   io.Writer
	// Profile and Region seed the flag defaults.
	Profile string
	Region  string
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		explorer: opts.Explorer,
		globals:  &commands.Globals{},
	}

	cli.rootCmd = cli.newRootCmd(opts)
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "advisor",
		Short:         "AWS cost optimization advisor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(opts.Output)

	flags := cmd.PersistentFlags()
	flags.StringVar(&cli.globals.Profile, "profile", opts.Profile, "AWS profile to run against")
	flags.StringVar(&cli.globals.Region, "region", opts.Region, "AWS region override")
	flags.StringVarP(&cli.globals.Output, "output", "o", "table", "Output format: table, json or yaml")
	flags.DurationVar(&cli.globals.Timeout, "timeout", defaultTimeout, "Overall command timeout")

	cmd.AddCommand(commands.NewRecommendCmd(cli.globals, cli.explorer))
	cmd.AddCommand(commands.NewResourcesCmd(cli.globals, cli.explorer))
	cmd.AddCommand(commands.NewCostCmd(cli.globals, cli.explorer))
	cmd.AddCommand(commands.NewProfilesCmd(cli.globals, cli.explorer))

	return cmd
}
