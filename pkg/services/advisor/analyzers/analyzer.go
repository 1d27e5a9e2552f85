package analyzers

import (
	"context"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/pricing"
	"github.com/de-tools/cost-advisor/pkg/store/awsapi"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 8

// Analyzer produces recommendations for one resource type.
type Analyzer interface {
	GetResourceType() domain.ResourceType
	Analyze(ctx context.Context, prices PriceSource) ([]domain.Recommendation, error)
}

// PriceSource resolves hourly prices. Implemented by *pricing.Batch.
type PriceSource interface {
	ResolveOrFallback(ctx context.Context, q pricing.Query) float64
}

type InstanceLister interface {
	ListInstances(ctx context.Context) ([]domain.ComputeInstance, error)
}

type OptimizerSource interface {
	ListInstanceRecommendations(ctx context.Context) ([]domain.OptimizerRecommendation, error)
}

type VolumeLister interface {
	ListVolumes(ctx context.Context) ([]domain.Volume, error)
}

type AddressLister interface {
	ListAddresses(ctx context.Context) ([]domain.Address, error)
}

type SnapshotLister interface {
	ListSnapshots(ctx context.Context) ([]domain.Snapshot, error)
}

type ObjectLister interface {
	ListObjects(ctx context.Context, bucket, region, token string, maxKeys int32) (domain.ObjectPage, error)
}

type BucketSource interface {
	ObjectLister
	ListBuckets(ctx context.Context) ([]domain.Bucket, error)
	BucketRegion(ctx context.Context, bucket string) (string, error)
}

type DatabaseLister interface {
	ListDBInstances(ctx context.Context) ([]domain.DBInstance, error)
}

type MetricSource interface {
	Average(ctx context.Context, q awsapi.MetricQuery) (domain.UtilizationSample, error)
	Latest(ctx context.Context, q awsapi.MetricQuery) (float64, bool, error)
}

type Options struct {
	Region  string
	Workers int
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return defaultWorkers
	}
	return o.Workers
}

// buildAll runs build for every item on a bounded pool and keeps input order.
// Items for which build reports false are dropped.
func buildAll[T any](
	ctx context.Context,
	workers int,
	items []T,
	build func(context.Context, T) (domain.Recommendation, bool),
) []domain.Recommendation {
	results := make([]domain.Recommendation, len(items))
	keep := make([]bool, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, item := range items {
		g.Go(func() error {
			results[i], keep[i] = build(gctx, item)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]domain.Recommendation, 0, len(items))
	for i, r := range results {
		if keep[i] {
			out = append(out, r)
		}
	}
	return out
}
