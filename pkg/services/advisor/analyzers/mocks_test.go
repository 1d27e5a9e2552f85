package analyzers

import (
	"context"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/pricing"
	"github.com/de-tools/cost-advisor/pkg/store/awsapi"
	"github.com/stretchr/testify/mock"
)

type mockPrices struct {
	mock.Mock
}

func (m *mockPrices) ResolveOrFallback(ctx context.Context, q pricing.Query) float64 {
	args := m.Called(ctx, q)
	return args.Get(0).(float64)
}

type mockInventory struct {
	mock.Mock
}

func (m *mockInventory) ListInstances(ctx context.Context) ([]domain.ComputeInstance, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ComputeInstance), args.Error(1)
}

func (m *mockInventory) ListVolumes(ctx context.Context) ([]domain.Volume, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Volume), args.Error(1)
}

func (m *mockInventory) ListAddresses(ctx context.Context) ([]domain.Address, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Address), args.Error(1)
}

func (m *mockInventory) ListSnapshots(ctx context.Context) ([]domain.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Snapshot), args.Error(1)
}

func (m *mockInventory) ListDBInstances(ctx context.Context) ([]domain.DBInstance, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.DBInstance), args.Error(1)
}

func (m *mockInventory) ListBuckets(ctx context.Context) ([]domain.Bucket, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Bucket), args.Error(1)
}

func (m *mockInventory) BucketRegion(ctx context.Context, bucket string) (string, error) {
	args := m.Called(ctx, bucket)
	return args.String(0), args.Error(1)
}

func (m *mockInventory) ListObjects(
	ctx context.Context,
	bucket, region, token string,
	maxKeys int32,
) (domain.ObjectPage, error) {
	args := m.Called(ctx, bucket, region, token, maxKeys)
	return args.Get(0).(domain.ObjectPage), args.Error(1)
}

type mockOptimizer struct {
	mock.Mock
}

func (m *mockOptimizer) ListInstanceRecommendations(ctx context.Context) ([]domain.OptimizerRecommendation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.OptimizerRecommendation), args.Error(1)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) Average(ctx context.Context, q awsapi.MetricQuery) (domain.UtilizationSample, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(domain.UtilizationSample), args.Error(1)
}

func (m *mockMetrics) Latest(ctx context.Context, q awsapi.MetricQuery) (float64, bool, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(float64), args.Bool(1), args.Error(2)
}

// pagedLister serves a fixed object set split into pages of pageSize.
type pagedLister struct {
	objects  []domain.Object
	pageSize int
	calls    int
}

func (p *pagedLister) ListObjects(_ context.Context, _, _, token string, _ int32) (domain.ObjectPage, error) {
	p.calls++
	start := 0
	if token != "" {
		for i := range p.objects {
			if p.objects[i].Key == token {
				start = i
				break
			}
		}
	}
	end := start + p.pageSize
	if end >= len(p.objects) {
		return domain.ObjectPage{Objects: p.objects[start:]}, nil
	}
	return domain.ObjectPage{Objects: p.objects[start:end], NextToken: p.objects[end].Key}, nil
}
