package account

import (
	"context"
	"fmt"
	"slices"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/advisor"
	"github.com/de-tools/cost-advisor/pkg/services/config"
	"github.com/de-tools/cost-advisor/pkg/services/cost"
	"github.com/de-tools/cost-advisor/pkg/services/cost/aws_ce"
	"github.com/rs/zerolog"
)

// Explorer resolves cloud contexts and hands out the services bound to them.
// Nothing it builds is cached: every call runs against fresh clients.
type Explorer interface {
	ListProfiles(ctx context.Context) ([]domain.ConfigProfile, error)
	ResolveContext(ctx context.Context, profile, region string) (domain.CloudContext, error)
	GetAdvisor(ctx context.Context, cc domain.CloudContext) (advisor.Controller, error)
	GetCostAggregator(ctx context.Context, platform string, cc domain.CloudContext) (*cost.Aggregator, error)
	ListCostPlatforms() []string
}

type accountExplorer struct {
	profiles config.Registry
	advisors advisor.Factory
	sources  cost.Registry
	defaults domain.CloudContext
	billing  config.BillingSettings
}

type Dependencies struct {
	Profiles config.Registry
	Advisors advisor.Factory
	Sources  cost.Registry
	Defaults domain.CloudContext
	Billing  config.BillingSettings
}

func NewExplorer(deps Dependencies) Explorer {
	return &accountExplorer{
		profiles: deps.Profiles,
		advisors: deps.Advisors,
		sources:  deps.Sources,
		defaults: deps.Defaults,
		billing:  deps.Billing,
	}
}

func (a *accountExplorer) ListProfiles(ctx context.Context) ([]domain.ConfigProfile, error) {
	return a.profiles.GetProfiles(ctx)
}

// ResolveContext returns the configured defaults when profile is empty.
// An explicit region always wins over the profile's own.
func (a *accountExplorer) ResolveContext(ctx context.Context, profile, region string) (domain.CloudContext, error) {
	cc := a.defaults
	if profile != "" && profile != a.defaults.Profile {
		p, err := a.profiles.GetProfile(ctx, profile)
		if err != nil {
			return domain.CloudContext{}, err
		}
		cc = p.CloudContext()
		if p.RoleARN != "" {
			cc.RoleARN = p.RoleARN
		}
	}
	if region != "" {
		cc = cc.WithRegion(region)
	}
	return cc, nil
}

func (a *accountExplorer) GetAdvisor(ctx context.Context, cc domain.CloudContext) (advisor.Controller, error) {
	zerolog.Ctx(ctx).Debug().
		Str("profile", cc.Profile).
		Str("region", cc.Region).
		Msg("building advisor")

	ctrl, err := a.advisors(ctx, cc)
	if err != nil {
		return nil, domain.NewFailure(domain.FailureUpstream, "aws config", err)
	}
	return ctrl, nil
}

// GetCostAggregator builds an aggregator over the named billing platform,
// falling back to the configured one. Non-AWS platforms read their
// connection file from the billing profile setting.
func (a *accountExplorer) GetCostAggregator(
	ctx context.Context,
	platform string,
	cc domain.CloudContext,
) (*cost.Aggregator, error) {
	if platform == "" {
		platform = a.billing.Platform
	}
	if !slices.Contains(a.sources.ListPlatforms(), platform) {
		return nil, &UnsupportedPlatformError{Platform: platform}
	}
	if platform != aws_ce.Platform && a.billing.Profile != "" {
		cc.Profile = a.billing.Profile
	}

	source, err := a.sources.Create(ctx, platform, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s billing source: %w", platform, err)
	}
	return cost.NewAggregator(source), nil
}

func (a *accountExplorer) ListCostPlatforms() []string {
	return a.sources.ListPlatforms()
}

type UnsupportedPlatformError struct {
	Platform string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported billing platform: %s", e.Platform)
}
