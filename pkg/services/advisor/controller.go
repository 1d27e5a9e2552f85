package advisor

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/advisor/analyzers"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Controller runs the analyzers registered for each resource type.
type Controller interface {
	Recommend(ctx context.Context, resourceType domain.ResourceType) ([]domain.Recommendation, error)
	RecommendAll(ctx context.Context) Report
	GetSupportedResources() []domain.ResourceType
}

// Report holds the outcome of one run over every resource type.
// A type is present in exactly one of Results or Errors.
type Report struct {
	BatchID string
	Results map[domain.ResourceType][]domain.Recommendation
	Errors  map[domain.ResourceType]error
}

// PriceSourceFactory returns a fresh price cache for one request.
type PriceSourceFactory func() analyzers.PriceSource

type controller struct {
	analyzers map[domain.ResourceType]analyzers.Analyzer
	prices    PriceSourceFactory
}

func NewController(prices PriceSourceFactory, list ...analyzers.Analyzer) (Controller, error) {
	if prices == nil {
		return nil, fmt.Errorf("price source factory cannot be nil")
	}

	c := &controller{
		analyzers: make(map[domain.ResourceType]analyzers.Analyzer),
		prices:    prices,
	}

	for _, a := range list {
		rt := a.GetResourceType()
		if _, exists := c.analyzers[rt]; exists {
			return nil, fmt.Errorf("duplicate analyzer for resource type: %s", rt)
		}
		c.analyzers[rt] = a
	}

	if len(c.analyzers) == 0 {
		return nil, fmt.Errorf("at least one analyzer must be provided")
	}

	return c, nil
}

func (c *controller) Recommend(
	ctx context.Context,
	resourceType domain.ResourceType,
) ([]domain.Recommendation, error) {
	an, err := c.getAnalyzer(resourceType)
	if err != nil {
		return nil, err
	}

	ctx = withBatch(ctx, uuid.NewString())
	return c.run(ctx, an, c.prices())
}

// RecommendAll runs every analyzer concurrently against one shared price cache.
// A failing type is reported in Errors and never cancels the others.
func (c *controller) RecommendAll(ctx context.Context) Report {
	batchID := uuid.NewString()
	ctx = withBatch(ctx, batchID)
	prices := c.prices()

	report := Report{
		BatchID: batchID,
		Results: make(map[domain.ResourceType][]domain.Recommendation),
		Errors:  make(map[domain.ResourceType]error),
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	for rt, an := range c.analyzers {
		g.Go(func() error {
			recs, err := c.run(ctx, an, prices)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Errors[rt] = err
				return nil
			}
			report.Results[rt] = recs
			return nil
		})
	}
	_ = g.Wait()

	return report
}

func (c *controller) GetSupportedResources() []domain.ResourceType {
	keys := make([]domain.ResourceType, 0, len(c.analyzers))
	for k := range c.analyzers {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (c *controller) run(
	ctx context.Context,
	an analyzers.Analyzer,
	prices analyzers.PriceSource,
) ([]domain.Recommendation, error) {
	rt := an.GetResourceType()
	logger := zerolog.Ctx(ctx).With().Str("resource_type", string(rt)).Logger()
	ctx = logger.WithContext(ctx)

	recs, err := an.Analyze(ctx, prices)
	if err != nil {
		logger.Error().Err(err).Msg("analyzer failed")
		return nil, fmt.Errorf("failed to analyze %s resources: %w", rt, err)
	}

	logger.Debug().Int("count", len(recs)).Msg("analyzer finished")
	return recs, nil
}

func (c *controller) getAnalyzer(resourceType domain.ResourceType) (analyzers.Analyzer, error) {
	an, ok := c.analyzers[resourceType]
	if !ok {
		return nil, &UnsupportedResourceError{ResourceType: resourceType}
	}
	return an, nil
}

// UnsupportedResourceError is returned for a resource type with no analyzer.
type UnsupportedResourceError struct {
	ResourceType domain.ResourceType
}

func (e *UnsupportedResourceError) Error() string {
	return fmt.Sprintf("unsupported resource type: %s", e.ResourceType)
}

func withBatch(ctx context.Context, batchID string) context.Context {
	logger := zerolog.Ctx(ctx).With().Str("batch_id", batchID).Logger()
	return logger.WithContext(ctx)
}
