package pricing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awspricing "github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

type Service string

const (
	ServiceCompute  Service = "AmazonEC2"
	ServiceDatabase Service = "AmazonRDS"
)

// CatalogAPI is the subset of the price list client the resolver needs.
type CatalogAPI interface {
	GetProducts(
		ctx context.Context,
		params *awspricing.GetProductsInput,
		optFns ...func(*awspricing.Options),
	) (*awspricing.GetProductsOutput, error)
}

type Query struct {
	Service      Service
	InstanceType string
	Region       string
	// Engine is the catalog engine name, only used for databases.
	Engine string
}

func ComputeQuery(instanceType, region string) Query {
	return Query{Service: ServiceCompute, InstanceType: instanceType, Region: region}
}

func DatabaseQuery(instanceClass, engine, region string) Query {
	return Query{Service: ServiceDatabase, InstanceType: instanceClass, Region: region, Engine: engine}
}

func (q Query) key() string {
	return fmt.Sprintf("%s|%s|%s|%s", q.Service, q.InstanceType, q.Region, q.Engine)
}

type Settings struct {
	RequestsPerSecond float64
	Burst             int
	CallTimeout       time.Duration
	// Limiter, when set, is shared by every resolver built from these settings.
	Limiter *rate.Limiter
}

func DefaultSettings() Settings {
	return Settings{
		RequestsPerSecond: 5,
		Burst:             5,
		CallTimeout:       10 * time.Second,
	}
}

// Resolver looks up on-demand prices in the public price list.
// It holds no cached quotes; those live in a Batch.
type Resolver struct {
	client  CatalogAPI
	limiter *rate.Limiter
	timeout time.Duration
}

func NewResolver(client CatalogAPI, settings Settings) *Resolver {
	if settings.RequestsPerSecond <= 0 {
		settings.RequestsPerSecond = DefaultSettings().RequestsPerSecond
	}
	if settings.Burst <= 0 {
		settings.Burst = 1
	}
	if settings.CallTimeout <= 0 {
		settings.CallTimeout = DefaultSettings().CallTimeout
	}
	limiter := settings.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Limit(settings.RequestsPerSecond), settings.Burst)
	}
	return &Resolver{
		client:  client,
		limiter: limiter,
		timeout: settings.CallTimeout,
	}
}

// WithSharedLimiter attaches one process-wide limiter so that resolvers built
// per request still respect a single catalog rate.
func WithSharedLimiter(settings Settings) Settings {
	if settings.Limiter != nil {
		return settings
	}
	rps, burst := settings.RequestsPerSecond, settings.Burst
	if rps <= 0 {
		rps = DefaultSettings().RequestsPerSecond
	}
	if burst <= 0 {
		burst = 1
	}
	settings.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return settings
}

// NewBatch starts a quote cache scoped to one request.
func (r *Resolver) NewBatch() *Batch {
	return &Batch{
		resolver: r,
		quotes:   make(map[string]float64),
	}
}

// Lookup queries the catalog for a single price without any caching.
func (r *Resolver) Lookup(ctx context.Context, q Query) (float64, error) {
	if q.InstanceType == "" {
		return 0, domain.NewFailure(domain.FailureUnknownFact, q.key(), errors.New("empty instance type"))
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return 0, domain.NewFailure(domain.FailureUnresolvablePrice, q.key(), err)
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.client.GetProducts(callCtx, &awspricing.GetProductsInput{
		ServiceCode:   aws.String(string(q.Service)),
		Filters:       filtersFor(q),
		FormatVersion: aws.String("aws_v1"),
		MaxResults:    aws.Int32(1),
	})
	if err != nil {
		return 0, domain.NewFailure(domain.FailureUnresolvablePrice, q.key(),
			fmt.Errorf("failed to get products: %w", err))
	}
	if len(out.PriceList) == 0 {
		return 0, domain.NewFailure(domain.FailureUnresolvablePrice, q.key(), errors.New("no matching offers"))
	}

	price, err := parseOnDemandUSD(out.PriceList[0])
	if err != nil {
		return 0, domain.NewFailure(domain.FailureUnresolvablePrice, q.key(), err)
	}
	return price, nil
}

func filtersFor(q Query) []types.Filter {
	location := Location(q.Region)

	switch q.Service {
	case ServiceDatabase:
		return []types.Filter{
			termMatch("instanceType", q.InstanceType),
			termMatch("databaseEngine", q.Engine),
			termMatch("location", location),
			termMatch("deploymentOption", "Single-AZ"),
		}
	default:
		return []types.Filter{
			termMatch("instanceType", q.InstanceType),
			termMatch("location", location),
			termMatch("operatingSystem", "Linux"),
			termMatch("tenancy", "Shared"),
			termMatch("preInstalledSw", "NA"),
			termMatch("capacitystatus", "Used"),
		}
	}
}

func termMatch(field, value string) types.Filter {
	return types.Filter{
		Field: aws.String(field),
		Type:  types.FilterTypeTermMatch,
		Value: aws.String(value),
	}
}

type offer struct {
	Terms struct {
		OnDemand map[string]offerTerm `json:"OnDemand"`
	} `json:"terms"`
}

type offerTerm struct {
	PriceDimensions map[string]priceDimension `json:"priceDimensions"`
}

type priceDimension struct {
	Unit         string            `json:"unit"`
	PricePerUnit map[string]string `json:"pricePerUnit"`
}

// parseOnDemandUSD returns the first USD price found under terms.OnDemand.
func parseOnDemandUSD(raw string) (float64, error) {
	var o offer
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		return 0, fmt.Errorf("failed to parse price list entry: %w", err)
	}

	for _, termKey := range sortedKeys(o.Terms.OnDemand) {
		dims := o.Terms.OnDemand[termKey].PriceDimensions
		for _, dimKey := range sortedKeys(dims) {
			usd, ok := dims[dimKey].PricePerUnit["USD"]
			if !ok {
				continue
			}
			price, err := strconv.ParseFloat(usd, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid USD price %q: %w", usd, err)
			}
			return price, nil
		}
	}
	return 0, errors.New("no on-demand USD price in offer")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Batch memoizes quotes for the lifetime of one request. It is safe for
// concurrent use; identical in-flight lookups share one catalog call.
type Batch struct {
	resolver *Resolver
	group    singleflight.Group

	mu     sync.RWMutex
	quotes map[string]float64
}

// Resolve returns the catalog price for q, or 0 when it cannot be resolved.
// Failures are logged and never returned.
func (b *Batch) Resolve(ctx context.Context, q Query) float64 {
	key := q.key()

	b.mu.RLock()
	price, ok := b.quotes[key]
	b.mu.RUnlock()
	if ok {
		return price
	}

	v, _, _ := b.group.Do(key, func() (interface{}, error) {
		b.mu.RLock()
		cached, ok := b.quotes[key]
		b.mu.RUnlock()
		if ok {
			return cached, nil
		}

		p, err := b.resolver.Lookup(ctx, q)
		if err != nil {
			zerolog.Ctx(ctx).Warn().
				Err(err).
				Str("service", string(q.Service)).
				Str("instance_type", q.InstanceType).
				Str("region", q.Region).
				Msg("failed to resolve price")
			if ctx.Err() != nil {
				// the caller gave up; a later caller may still get a quote
				return 0.0, nil
			}
			p = 0
		}

		b.mu.Lock()
		b.quotes[key] = p
		b.mu.Unlock()
		return p, nil
	})
	return v.(float64)
}

// ResolveOrFallback is Resolve with the static price table applied when the
// catalog yields nothing. Types missing from the table stay at 0.
func (b *Batch) ResolveOrFallback(ctx context.Context, q Query) float64 {
	if price := b.Resolve(ctx, q); price > 0 {
		return price
	}
	if price, ok := fallbackPrice(q); ok {
		zerolog.Ctx(ctx).Debug().
			Str("instance_type", q.InstanceType).
			Float64("price", price).
			Msg("using fallback price")
		return price
	}
	return 0
}
