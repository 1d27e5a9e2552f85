package analyzers

import (
	"context"
	"time"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/store/awsapi"
	"github.com/rs/zerolog"
)

type snapshotAnalyzer struct {
	inventory SnapshotLister
	metrics   MetricSource
	opts      Options
}

// NewSnapshotAnalyzer lists owned snapshots with their measured storage.
// It reports inventory only and never recommends a change.
func NewSnapshotAnalyzer(inventory SnapshotLister, metrics MetricSource, opts Options) Analyzer {
	return &snapshotAnalyzer{
		inventory: inventory,
		metrics:   metrics,
		opts:      opts,
	}
}

func (a *snapshotAnalyzer) GetResourceType() domain.ResourceType {
	return domain.ResourceSnapshot
}

func (a *snapshotAnalyzer) Analyze(ctx context.Context, _ PriceSource) ([]domain.Recommendation, error) {
	snapshots, err := a.inventory.ListSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	return buildAll(ctx, a.opts.workers(), snapshots,
		func(ctx context.Context, s domain.Snapshot) (domain.Recommendation, bool) {
			used, ok, err := a.metrics.Latest(ctx, awsapi.SnapshotStorageQuery(s.ID))
			if err != nil {
				zerolog.Ctx(ctx).Debug().
					Err(err).
					Str("resource_id", s.ID).
					Msg("snapshot storage metric unavailable")
			}
			var storageGB *float64
			if ok {
				gb := used / bytesPerGB
				storageGB = &gb
			}
			return BuildSnapshotRecord(s, storageGB, a.opts.Region), true
		},
	), nil
}

func BuildSnapshotRecord(s domain.Snapshot, storageUsedGB *float64, region string) domain.Recommendation {
	out := domain.Recommendation{
		ResourceID:   s.ID,
		ResourceType: domain.ResourceSnapshot,
		Region:       region,
		State:        s.State,
		CurrentType:  s.Tier,
		Reasons:      []domain.Reason{domain.ReasonNoOpportunity},
		Details: domain.RecommendationDetails{
			SizeGB:      float64(s.SizeGB),
			StorageUsed: storageUsedGB,
		},
	}
	if name, ok := domain.TagValue(s.Tags, "Name"); ok {
		out.Name = name
	}
	if !s.StartTime.IsZero() {
		out.Details.CreatedAt = s.StartTime.UTC().Format(time.RFC3339)
	}
	return out
}
