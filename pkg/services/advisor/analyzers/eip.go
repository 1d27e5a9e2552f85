package analyzers

import (
	"context"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/pricing"
)

type eipAnalyzer struct {
	inventory AddressLister
	opts      Options
}

func NewEIPAnalyzer(inventory AddressLister, opts Options) Analyzer {
	return &eipAnalyzer{inventory: inventory, opts: opts}
}

func (a *eipAnalyzer) GetResourceType() domain.ResourceType {
	return domain.ResourceAddress
}

func (a *eipAnalyzer) Analyze(ctx context.Context, _ PriceSource) ([]domain.Recommendation, error) {
	addresses, err := a.inventory.ListAddresses(ctx)
	if err != nil {
		return nil, err
	}

	recs := make([]domain.Recommendation, 0, len(addresses))
	for _, addr := range addresses {
		recs = append(recs, BuildAddressRecommendation(addr, a.opts.Region))
	}
	return recs, nil
}

func BuildAddressRecommendation(addr domain.Address, region string) domain.Recommendation {
	id := addr.AllocationID
	if id == "" {
		id = addr.PublicIP
	}

	out := domain.Recommendation{
		ResourceID:   id,
		ResourceType: domain.ResourceAddress,
		Region:       region,
		CurrentType:  addr.Domain,
		Details: domain.RecommendationDetails{
			PublicIP:      addr.PublicIP,
			AssociationID: addr.AssociationID,
		},
	}
	if name, ok := domain.TagValue(addr.Tags, "Name"); ok {
		out.Name = name
	}

	if addr.AssociationID == "" {
		idle := pricing.AddressIdleMonthly()
		out.State = "unassociated"
		out.CurrentPrice = idle
		out.EstimatedMonthlySavings = idle
		out.Reasons = []domain.Reason{domain.ReasonUnassociated}
		return out
	}

	out.State = "associated"
	out.Reasons = []domain.Reason{domain.ReasonInUse}
	return out
}
