package analyzers

import (
	"context"
	"errors"
	"strings"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/pricing"
	"github.com/rs/zerolog"
)

const unnamedInstance = "Unnamed"

type ec2Analyzer struct {
	inventory InstanceLister
	optimizer OptimizerSource
	opts      Options
}

func NewEC2Analyzer(inventory InstanceLister, optimizer OptimizerSource, opts Options) Analyzer {
	return &ec2Analyzer{
		inventory: inventory,
		optimizer: optimizer,
		opts:      opts,
	}
}

func (a *ec2Analyzer) GetResourceType() domain.ResourceType {
	return domain.ResourceCompute
}

func (a *ec2Analyzer) Analyze(ctx context.Context, prices PriceSource) ([]domain.Recommendation, error) {
	logger := zerolog.Ctx(ctx)

	recs, err := a.optimizer.ListInstanceRecommendations(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.ComputeInstance)
	instances, err := a.inventory.ListInstances(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("instance inventory unavailable, recommendations will lack names")
	}
	for _, inst := range instances {
		byID[inst.ID] = inst
	}

	return buildAll(ctx, a.opts.workers(), recs,
		func(ctx context.Context, rec domain.OptimizerRecommendation) (domain.Recommendation, bool) {
			return BuildComputeRecommendation(ctx, rec, byID, a.opts.Region, prices), true
		},
	), nil
}

// BuildComputeRecommendation joins an optimizer finding with the instance
// inventory and prices the current and the lowest-risk alternative type.
func BuildComputeRecommendation(
	ctx context.Context,
	rec domain.OptimizerRecommendation,
	inventory map[string]domain.ComputeInstance,
	defaultRegion string,
	prices PriceSource,
) domain.Recommendation {
	id := resourceIDFromARN(rec.ResourceARN)
	region := regionFromARN(rec.ResourceARN, defaultRegion)

	out := domain.Recommendation{
		ResourceID:   id,
		ResourceType: domain.ResourceCompute,
		Region:       region,
		Reasons:      []domain.Reason{reasonFromFinding(rec.Finding)},
	}

	inst, ok := inventory[id]
	if ok {
		out.CurrentType = inst.Type
		out.State = inst.State
		out.Name = unnamedInstance
		if name, found := domain.TagValue(inst.Tags, "Name"); found {
			out.Name = name
		}
	} else {
		zerolog.Ctx(ctx).Warn().
			Err(domain.NewFailure(domain.FailureUnknownFact, id, errors.New("instance not in inventory"))).
			Str("resource_id", id).
			Str("resource_type", string(domain.ResourceCompute)).
			Msg("optimizer recommendation without matching instance")
	}

	if out.CurrentType != "" {
		out.CurrentPrice = prices.ResolveOrFallback(ctx, pricing.ComputeQuery(out.CurrentType, region))
	}

	best, ok := lowestRisk(rec.Options)
	if !ok {
		out.RecommendedType = domain.NoRecommendation
		return out
	}

	out.RecommendedType = best.InstanceType
	out.RecommendedPrice = prices.ResolveOrFallback(ctx, pricing.ComputeQuery(best.InstanceType, region))
	if out.CurrentPrice > 0 && out.RecommendedPrice > 0 {
		out.EstimatedMonthlySavings = domain.Savings(out.CurrentPrice, out.RecommendedPrice, domain.HoursPerMonth)
	}
	return out
}

// lowestRisk picks the option with the smallest performance risk; ties keep the first.
func lowestRisk(options []domain.OptimizerOption) (domain.OptimizerOption, bool) {
	if len(options) == 0 {
		return domain.OptimizerOption{}, false
	}
	best := options[0]
	for _, opt := range options[1:] {
		if opt.PerformanceRisk < best.PerformanceRisk {
			best = opt
		}
	}
	return best, true
}

func reasonFromFinding(finding string) domain.Reason {
	normalized := strings.ToLower(strings.ReplaceAll(finding, "_", ""))
	switch normalized {
	case "overprovisioned":
		return domain.ReasonUnderutilized
	case "underprovisioned":
		return domain.ReasonOverutilized
	default:
		return domain.ReasonNoOpportunity
	}
}

func resourceIDFromARN(arn string) string {
	if i := strings.LastIndex(arn, "/"); i >= 0 {
		return arn[i+1:]
	}
	return arn
}

// regionFromARN reads the region field of arn:partition:service:region:account:resource.
func regionFromARN(arn, fallback string) string {
	parts := strings.SplitN(arn, ":", 6)
	if len(parts) == 6 && parts[0] == "arn" && parts[3] != "" {
		return parts[3]
	}
	return fallback
}
