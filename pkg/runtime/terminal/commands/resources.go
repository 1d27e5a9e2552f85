package commands

import (
	"fmt"

	"github.com/de-tools/cost-advisor/pkg/services/account"
	"github.com/spf13/cobra"
)

type ResourcesCmd struct {
	globals  *Globals
	explorer account.Explorer
}

func NewResourcesCmd(globals *Globals, explorer account.Explorer) *cobra.Command {
	rc := &ResourcesCmd{globals: globals, explorer: explorer}
	return &cobra.Command{
		Use:   "resources",
		Short: "List resource types the advisor can inspect",
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}
}

func (rc *ResourcesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := rc.globals.context(cmd)
	defer cancel()

	cc, err := rc.explorer.ResolveContext(ctx, rc.globals.Profile, rc.globals.Region)
	if err != nil {
		return fmt.Errorf("failed to resolve profile: %w", err)
	}

	ctrl, err := rc.explorer.GetAdvisor(ctx, cc)
	if err != nil {
		return fmt.Errorf("failed to create advisor: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Supported resources:")
	for _, rt := range ctrl.GetSupportedResources() {
		fmt.Fprintln(cmd.OutOrStdout(), rt)
	}
	return nil
}
