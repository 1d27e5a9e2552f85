package pricing

import (
	"context"
	"errors"
	"sync"
	"testing"

	awspricing "github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) GetProducts(
	ctx context.Context,
	params *awspricing.GetProductsInput,
	_ ...func(*awspricing.Options),
) (*awspricing.GetProductsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*awspricing.GetProductsOutput), args.Error(1)
}

const m5LargeOffer = `{
  "product": {"attributes": {"instanceType": "m5.large"}},
  "terms": {
    "OnDemand": {
      "ABC.JRTCKXETXF": {
        "priceDimensions": {
          "ABC.JRTCKXETXF.6YS6EN2CT7": {
            "unit": "Hrs",
            "pricePerUnit": {"USD": "0.0960000000"}
          }
        }
      }
    }
  }
}`

func filterValue(in *awspricing.GetProductsInput, field string) string {
	for _, f := range in.Filters {
		if *f.Field == field {
			return *f.Value
		}
	}
	return ""
}

func TestResolver_Lookup_ParsesFirstUSDPrice(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("GetProducts", mock.Anything, mock.MatchedBy(func(in *awspricing.GetProductsInput) bool {
		return *in.ServiceCode == "AmazonEC2" &&
			filterValue(in, "instanceType") == "m5.large" &&
			filterValue(in, "location") == "US East (N. Virginia)" &&
			filterValue(in, "operatingSystem") == "Linux" &&
			filterValue(in, "capacitystatus") == "Used"
	})).Return(&awspricing.GetProductsOutput{PriceList: []string{m5LargeOffer}}, nil)

	r := NewResolver(catalog, DefaultSettings())

	price, err := r.Lookup(context.Background(), ComputeQuery("m5.large", "us-east-1"))

	require.NoError(t, err)
	assert.InDelta(t, 0.096, price, 1e-9)
	catalog.AssertExpectations(t)
}

func TestResolver_Lookup_DatabaseFilters(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("GetProducts", mock.Anything, mock.MatchedBy(func(in *awspricing.GetProductsInput) bool {
		return *in.ServiceCode == "AmazonRDS" &&
			filterValue(in, "databaseEngine") == "PostgreSQL" &&
			filterValue(in, "deploymentOption") == "Single-AZ" &&
			filterValue(in, "location") == "EU (Ireland)"
	})).Return(&awspricing.GetProductsOutput{PriceList: []string{m5LargeOffer}}, nil)

	r := NewResolver(catalog, DefaultSettings())

	price, err := r.Lookup(context.Background(), DatabaseQuery("db.m5.large", "PostgreSQL", "eu-west-1"))

	require.NoError(t, err)
	assert.Greater(t, price, 0.0)
}

func TestResolver_Lookup_Failures(t *testing.T) {
	tests := []struct {
		name string
		out  *awspricing.GetProductsOutput
		err  error
	}{
		{"api error", nil, errors.New("throttled")},
		{"no offers", &awspricing.GetProductsOutput{}, nil},
		{"bad json", &awspricing.GetProductsOutput{PriceList: []string{"{not json"}}, nil},
		{"no usd", &awspricing.GetProductsOutput{PriceList: []string{`{"terms":{"OnDemand":{}}}`}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := new(mockCatalog)
			catalog.On("GetProducts", mock.Anything, mock.Anything).Return(tt.out, tt.err)
			r := NewResolver(catalog, DefaultSettings())

			price, err := r.Lookup(context.Background(), ComputeQuery("m5.large", "us-east-1"))

			assert.Error(t, err)
			assert.Equal(t, 0.0, price)
			reason, ok := domain.FailureReasonOf(err)
			assert.True(t, ok)
			assert.Equal(t, domain.FailureUnresolvablePrice, reason)
		})
	}
}

func TestBatch_Resolve_MemoizesWithinBatch(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("GetProducts", mock.Anything, mock.Anything).
		Return(&awspricing.GetProductsOutput{PriceList: []string{m5LargeOffer}}, nil).
		Once()

	r := NewResolver(catalog, DefaultSettings())
	batch := r.NewBatch()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.InDelta(t, 0.096, batch.Resolve(ctx, ComputeQuery("m5.large", "us-east-1")), 1e-9)
		}()
	}
	wg.Wait()

	catalog.AssertNumberOfCalls(t, "GetProducts", 1)
}

func TestBatch_Resolve_BatchesDoNotShareQuotes(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("GetProducts", mock.Anything, mock.Anything).
		Return(&awspricing.GetProductsOutput{PriceList: []string{m5LargeOffer}}, nil)

	r := NewResolver(catalog, DefaultSettings())
	ctx := context.Background()

	r.NewBatch().Resolve(ctx, ComputeQuery("m5.large", "us-east-1"))
	r.NewBatch().Resolve(ctx, ComputeQuery("m5.large", "us-east-1"))

	catalog.AssertNumberOfCalls(t, "GetProducts", 2)
}

func TestBatch_Resolve_CancelledCallerIsNotMemoized(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("GetProducts", mock.Anything, mock.Anything).
		Return(&awspricing.GetProductsOutput{PriceList: []string{m5LargeOffer}}, nil)

	batch := NewResolver(catalog, DefaultSettings()).NewBatch()
	q := ComputeQuery("m5.large", "us-east-1")

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Zero(t, batch.Resolve(cancelled, q))
	catalog.AssertNotCalled(t, "GetProducts", mock.Anything, mock.Anything)

	assert.InDelta(t, 0.096, batch.Resolve(context.Background(), q), 1e-9)
	catalog.AssertNumberOfCalls(t, "GetProducts", 1)
}

func TestBatch_Resolve_MemoizesUpstreamFailure(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("GetProducts", mock.Anything, mock.Anything).
		Return(nil, errors.New("throttled"))

	batch := NewResolver(catalog, DefaultSettings()).NewBatch()
	ctx := context.Background()
	q := ComputeQuery("m5.large", "us-east-1")

	assert.Zero(t, batch.Resolve(ctx, q))
	assert.Zero(t, batch.Resolve(ctx, q))
	catalog.AssertNumberOfCalls(t, "GetProducts", 1)
}

func TestWithSharedLimiter(t *testing.T) {
	settings := WithSharedLimiter(Settings{RequestsPerSecond: 2, Burst: 3})
	require.NotNil(t, settings.Limiter)
	assert.Equal(t, 3, settings.Limiter.Burst())

	a := NewResolver(new(mockCatalog), settings)
	b := NewResolver(new(mockCatalog), settings)
	assert.Same(t, a.limiter, b.limiter)

	assert.Same(t, settings.Limiter, WithSharedLimiter(settings).Limiter)
	assert.NotSame(t, NewResolver(new(mockCatalog), DefaultSettings()).limiter,
		NewResolver(new(mockCatalog), DefaultSettings()).limiter)
}

func TestBatch_ResolveOrFallback(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("GetProducts", mock.Anything, mock.Anything).Return(nil, errors.New("unreachable"))

	batch := NewResolver(catalog, DefaultSettings()).NewBatch()
	ctx := context.Background()

	assert.Equal(t, 0.0, batch.Resolve(ctx, ComputeQuery("t2.medium", "us-east-1")))
	assert.InDelta(t, 0.0464, batch.ResolveOrFallback(ctx, ComputeQuery("t2.medium", "us-east-1")), 1e-9)
	assert.InDelta(t, 0.068, batch.ResolveOrFallback(ctx, DatabaseQuery("db.t3.medium", "MySQL", "us-east-1")), 1e-9)
	assert.Equal(t, 0.0, batch.ResolveOrFallback(ctx, ComputeQuery("x9.mega", "us-east-1")))
}

func TestLocation(t *testing.T) {
	tests := map[string]string{
		"us-east-1":    "US East (N. Virginia)",
		"us-east-1a":   "US East (N. Virginia)",
		"us-west-1":    "US West (N. California)",
		"us-west-2b":   "US West (Oregon)",
		"eu-west-1":    "EU (Ireland)",
		"ap-south-1":   "Asia Pacific (Mumbai)",
		"me-central-1": "me-central-1",
	}
	for in, expected := range tests {
		assert.Equal(t, expected, Location(in), in)
	}
}

func TestRegionFromZone(t *testing.T) {
	assert.Equal(t, "us-east-1", RegionFromZone("us-east-1a"))
	assert.Equal(t, "us-east-1", RegionFromZone("us-east-1"))
	assert.Equal(t, "", RegionFromZone(""))
}

func TestStaticRates(t *testing.T) {
	assert.Equal(t, 0.10, VolumeRate("gp2"))
	assert.Equal(t, 0.08, VolumeRate("GP3"))
	assert.Equal(t, 0.10, VolumeRate("mystery"))
	assert.InDelta(t, 3.60, AddressIdleMonthly(), 1e-9)

	rate, ok := StorageClassRate("standard")
	assert.True(t, ok)
	assert.Equal(t, 0.023, rate)
}
