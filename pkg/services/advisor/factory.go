package advisor

import (
	"context"
	"time"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/advisor/analyzers"
	"github.com/de-tools/cost-advisor/pkg/services/pricing"
	"github.com/de-tools/cost-advisor/pkg/store/awsapi"
)

type Settings struct {
	Workers     int
	CallTimeout time.Duration
	Pricing     pricing.Settings
}

func DefaultSettings() Settings {
	return Settings{
		Workers:     8,
		CallTimeout: 10 * time.Second,
		Pricing:     pricing.DefaultSettings(),
	}
}

// Factory builds a Controller bound to one cloud context.
type Factory func(ctx context.Context, cc domain.CloudContext) (Controller, error)

// NewFactory returns a Factory that wires the AWS collaborators for each context.
// The price catalog rate limit is shared by every controller it builds.
func NewFactory(settings Settings) Factory {
	settings.Pricing = pricing.WithSharedLimiter(settings.Pricing)
	return func(ctx context.Context, cc domain.CloudContext) (Controller, error) {
		return NewAWSController(ctx, cc, settings)
	}
}

func NewAWSController(ctx context.Context, cc domain.CloudContext, settings Settings) (Controller, error) {
	cfg, err := awsapi.LoadConfig(ctx, cc, awsapi.WithCallTimeout(settings.CallTimeout))
	if err != nil {
		return nil, err
	}

	clients := awsapi.NewClients(cfg)
	inventory := clients.NewInventory()
	optimizer := awsapi.NewOptimizer(clients.Optimizer)
	metrics := awsapi.NewMetrics(clients.CloudWatch)

	if settings.Pricing.CallTimeout <= 0 {
		settings.Pricing.CallTimeout = settings.CallTimeout
	}
	resolver := pricing.NewResolver(clients.Pricing, settings.Pricing)

	opts := analyzers.Options{Region: cfg.Region, Workers: settings.Workers}
	return NewController(
		func() analyzers.PriceSource { return resolver.NewBatch() },
		analyzers.NewEC2Analyzer(inventory, optimizer, opts),
		analyzers.NewEBSAnalyzer(inventory, opts),
		analyzers.NewEIPAnalyzer(inventory, opts),
		analyzers.NewS3Analyzer(inventory, opts),
		analyzers.NewRDSAnalyzer(inventory, metrics, opts),
		analyzers.NewSnapshotAnalyzer(inventory, metrics, opts),
	)
}
