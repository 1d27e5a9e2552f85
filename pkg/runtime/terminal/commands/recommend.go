package commands

import (
	"fmt"
	"slices"

	"github.com/de-tools/cost-advisor/pkg/adapters"
	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/account"
	"github.com/spf13/cobra"
)

type RecommendCmd struct {
	globals  *Globals
	explorer account.Explorer
}

func NewRecommendCmd(globals *Globals, explorer account.Explorer) *cobra.Command {
	rc := &RecommendCmd{globals: globals, explorer: explorer}
	return &cobra.Command{
		Use:   "recommend [resource_type]",
		Short: "Produce cost optimization recommendations",
		Long: "Produce cost optimization recommendations for one resource type, " +
			"or for every supported type when none is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: rc.run,
	}
}

func (rc *RecommendCmd) run(cmd *cobra.Command, args []string) error {
	reporter, err := rc.globals.reporter(cmd)
	if err != nil {
		return err
	}

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

	if len(args) == 0 {
		return reporter.Report(adapters.MapReportDomainToApi(ctrl.RecommendAll(ctx)))
	}

	resourceType := domain.ResourceType(args[0])
	supported := ctrl.GetSupportedResources()
	if !slices.Contains(supported, resourceType) {
		return fmt.Errorf("unsupported resource type %q. Supported types: %v", resourceType, supported)
	}

	recs, err := ctrl.Recommend(ctx, resourceType)
	if err != nil {
		return fmt.Errorf("failed to produce recommendations: %w", err)
	}

	return reporter.Recommendations(adapters.MapRecommendationsDomainToApi(recs))
}
