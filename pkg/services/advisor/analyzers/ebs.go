package analyzers

import (
	"context"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/pricing"
)

const (
	volumeTypeGp2 = "gp2"
	volumeTypeGp3 = "gp3"
	detached      = "Detached"
)

type ebsAnalyzer struct {
	inventory VolumeLister
	opts      Options
}

func NewEBSAnalyzer(inventory VolumeLister, opts Options) Analyzer {
	return &ebsAnalyzer{inventory: inventory, opts: opts}
}

func (a *ebsAnalyzer) GetResourceType() domain.ResourceType {
	return domain.ResourceVolume
}

func (a *ebsAnalyzer) Analyze(ctx context.Context, _ PriceSource) ([]domain.Recommendation, error) {
	volumes, err := a.inventory.ListVolumes(ctx)
	if err != nil {
		return nil, err
	}

	recs := make([]domain.Recommendation, 0, len(volumes))
	for _, v := range volumes {
		recs = append(recs, BuildVolumeRecommendation(v, a.opts.Region))
	}
	return recs, nil
}

func volumeMonthlyCost(volumeType string, sizeGB int32) float64 {
	return pricing.VolumeRate(volumeType) * float64(sizeGB)
}

// BuildVolumeRecommendation prices a volume per GB-month. Unattached volumes
// are flagged for removal before any type migration is considered.
func BuildVolumeRecommendation(v domain.Volume, region string) domain.Recommendation {
	if v.AvailabilityZone != "" {
		region = pricing.RegionFromZone(v.AvailabilityZone)
	}

	volumeType := v.Type
	if volumeType == "" {
		volumeType = volumeTypeGp2
	}
	monthlyCost := volumeMonthlyCost(volumeType, v.SizeGB)

	out := domain.Recommendation{
		ResourceID:   v.ID,
		ResourceType: domain.ResourceVolume,
		Region:       region,
		State:        v.State,
		CurrentType:  volumeType,
		CurrentPrice: monthlyCost,
		Details: domain.RecommendationDetails{
			SizeGB:          float64(v.SizeGB),
			AttachmentState: detached,
		},
	}
	if name, ok := domain.TagValue(v.Tags, "Name"); ok {
		out.Name = name
	}
	if v.Attached() {
		out.Details.AttachmentState = v.Attachments[0].State
	}

	switch {
	case !v.Attached():
		out.Reasons = []domain.Reason{domain.ReasonUnattached}
		out.EstimatedMonthlySavings = monthlyCost
	case volumeType == volumeTypeGp2:
		out.Reasons = []domain.Reason{domain.ReasonMigrateToGp3}
		out.RecommendedType = volumeTypeGp3
		out.RecommendedPrice = volumeMonthlyCost(volumeTypeGp3, v.SizeGB)
		out.EstimatedMonthlySavings = domain.Savings(monthlyCost, out.RecommendedPrice, 1)
	default:
		out.Reasons = []domain.Reason{domain.ReasonNoOpportunity}
	}
	return out
}
