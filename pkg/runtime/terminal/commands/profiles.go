package commands

import (
	"fmt"

	"github.com/de-tools/cost-advisor/pkg/adapters"
	"github.com/de-tools/cost-advisor/pkg/services/account"
	"github.com/spf13/cobra"
)

func NewProfilesCmd(globals *Globals, explorer account.Explorer) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List configured AWS profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reporter, err := globals.reporter(cmd)
			if err != nil {
				return err
			}

			profiles, err := explorer.ListProfiles(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list profiles: %w", err)
			}
			return reporter.Profiles(adapters.MapProfilesDomainToApi(profiles))
		},
	}
}
