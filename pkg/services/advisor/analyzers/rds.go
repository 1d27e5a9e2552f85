package analyzers

import (
	"context"
	"strings"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/family"
	"github.com/de-tools/cost-advisor/pkg/services/pricing"
	"github.com/de-tools/cost-advisor/pkg/services/utilization"
	"github.com/de-tools/cost-advisor/pkg/store/awsapi"
	"github.com/rs/zerolog"
)

const storageMigrationFactor = 0.8

// Catalog engine names keyed by the engine reported by the database API.
var catalogEngines = map[string]string{
	"mysql":             "MySQL",
	"mariadb":           "MariaDB",
	"postgres":          "PostgreSQL",
	"aurora-mysql":      "Aurora MySQL",
	"aurora-postgresql": "Aurora PostgreSQL",
}

type rdsAnalyzer struct {
	inventory DatabaseLister
	metrics   MetricSource
	opts      Options
}

func NewRDSAnalyzer(inventory DatabaseLister, metrics MetricSource, opts Options) Analyzer {
	return &rdsAnalyzer{
		inventory: inventory,
		metrics:   metrics,
		opts:      opts,
	}
}

func (a *rdsAnalyzer) GetResourceType() domain.ResourceType {
	return domain.ResourceDatabase
}

func (a *rdsAnalyzer) Analyze(ctx context.Context, prices PriceSource) ([]domain.Recommendation, error) {
	instances, err := a.inventory.ListDBInstances(ctx)
	if err != nil {
		return nil, err
	}

	return buildAll(ctx, a.opts.workers(), instances,
		func(ctx context.Context, db domain.DBInstance) (domain.Recommendation, bool) {
			sample, err := a.metrics.Average(ctx, awsapi.DatabaseCPUQuery(db.Identifier))
			if err != nil {
				zerolog.Ctx(ctx).Warn().
					Err(err).
					Str("resource_id", db.Identifier).
					Str("resource_type", string(domain.ResourceDatabase)).
					Msg("cpu utilization unavailable")
				sample = domain.UnavailableSample(db.Identifier)
			}
			return BuildDatabaseRecommendation(ctx, db, sample, a.opts.Region, prices), true
		},
	), nil
}

// CatalogEngine converts a database engine name into the price list's naming.
func CatalogEngine(engine string) string {
	e := strings.ToLower(engine)
	if name, ok := catalogEngines[e]; ok {
		return name
	}
	switch {
	case strings.HasPrefix(e, "sqlserver"):
		return "SQL Server"
	case strings.HasPrefix(e, "oracle"):
		return "Oracle"
	}
	return engine
}

// BuildDatabaseRecommendation steps the instance class one size down or up
// according to CPU utilization and flags gp2 storage.
func BuildDatabaseRecommendation(
	ctx context.Context,
	db domain.DBInstance,
	sample domain.UtilizationSample,
	defaultRegion string,
	prices PriceSource,
) domain.Recommendation {
	region := defaultRegion
	if db.AvailabilityZone != "" {
		region = pricing.RegionFromZone(db.AvailabilityZone)
	}
	engine := CatalogEngine(db.Engine)

	out := domain.Recommendation{
		ResourceID:   db.Identifier,
		Name:         db.Identifier,
		ResourceType: domain.ResourceDatabase,
		Region:       region,
		State:        db.Status,
		CurrentType:  db.Class,
		CurrentPrice: prices.ResolveOrFallback(ctx, pricing.DatabaseQuery(db.Class, engine, region)),
		Details: domain.RecommendationDetails{
			Utilization: sample,
			Engine:      db.Engine,
			ClusterID:   db.ClusterIdentifier,
			StorageType: db.StorageType,
			SizeGB:      float64(db.AllocatedStorage),
		},
	}

	var step func(string) (string, bool)
	switch utilization.Classify(sample) {
	case utilization.Underutilized:
		out.Reasons = append(out.Reasons, domain.ReasonUnderutilized)
		step = family.SmallerOf
	case utilization.Overutilized:
		out.Reasons = append(out.Reasons, domain.ReasonOverutilized)
		step = family.LargerOf
	}

	if step != nil {
		if target, ok := step(db.Class); ok {
			out.RecommendedType = target
			out.RecommendedPrice = prices.ResolveOrFallback(ctx, pricing.DatabaseQuery(target, engine, region))
		}
	}

	if strings.EqualFold(db.StorageType, volumeTypeGp2) {
		out.Reasons = append(out.Reasons, domain.ReasonStorageOptimizable)
		out.Details.StorageMigrationPrice = out.CurrentPrice * storageMigrationFactor
	}

	if len(out.Reasons) == 0 {
		out.Reasons = []domain.Reason{domain.ReasonNoOpportunity}
	}

	if out.RecommendedType != "" && out.CurrentPrice > 0 && out.RecommendedPrice > 0 {
		out.EstimatedMonthlySavings = domain.Savings(out.CurrentPrice, out.RecommendedPrice, domain.HoursPerMonth)
	}
	return out
}
