package analyzers

import (
	"context"
	"fmt"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/pricing"
	"github.com/rs/zerolog"
)

const (
	classStandard           = "STANDARD"
	classIntelligentTiering = "INTELLIGENT_TIERING"
	classStandardIA         = "STANDARD_IA"

	// Size thresholds are in bytes.
	intelligentTieringThreshold = 1_000_000_000
	standardIAThreshold         = 100_000_000

	bytesPerGB = 1024 * 1024 * 1024
)

type s3Analyzer struct {
	source BucketSource
	opts   Options
}

func NewS3Analyzer(source BucketSource, opts Options) Analyzer {
	return &s3Analyzer{source: source, opts: opts}
}

func (a *s3Analyzer) GetResourceType() domain.ResourceType {
	return domain.ResourceBucket
}

func (a *s3Analyzer) Analyze(ctx context.Context, _ PriceSource) ([]domain.Recommendation, error) {
	buckets, err := a.source.ListBuckets(ctx)
	if err != nil {
		return nil, err
	}

	return buildAll(ctx, a.opts.workers(), buckets,
		func(ctx context.Context, b domain.Bucket) (domain.Recommendation, bool) {
			logger := zerolog.Ctx(ctx).With().
				Str("resource_id", b.Name).
				Str("resource_type", string(domain.ResourceBucket)).
				Logger()

			location, err := a.source.BucketRegion(ctx, b.Name)
			if err != nil {
				logger.Warn().Err(err).Msg("failed to resolve bucket region, assuming default")
			}

			region := NormalizeBucketRegion(location)
			rec, err := BuildBucketRecommendation(ctx, a.source, b, region)
			if err != nil {
				logger.Warn().Err(err).Str("region", region).Msg("failed to size bucket, assuming empty STANDARD")
				return bucketRecommendation(b, region, BucketUsage{StorageClass: classStandard}), true
			}
			return rec, true
		},
	), nil
}

// NormalizeBucketRegion maps legacy location constraints to region codes.
func NormalizeBucketRegion(location string) string {
	switch location {
	case "":
		return "us-east-1"
	case "EU":
		return "eu-west-1"
	default:
		return location
	}
}

// BucketUsage is the outcome of walking a bucket listing.
type BucketUsage struct {
	SizeBytes    int64
	StorageClass string
}

// MeasureBucket sums object sizes over every page. The storage class is taken
// from the first object only.
func MeasureBucket(ctx context.Context, lister ObjectLister, bucket, region string) (BucketUsage, error) {
	usage := BucketUsage{StorageClass: classStandard}
	token := ""
	first := true

	for {
		page, err := lister.ListObjects(ctx, bucket, region, token, 0)
		if err != nil {
			return BucketUsage{}, fmt.Errorf("failed to list objects of %s: %w", bucket, err)
		}

		for _, obj := range page.Objects {
			if first {
				first = false
				if obj.StorageClass != "" {
					usage.StorageClass = obj.StorageClass
				}
			}
			usage.SizeBytes += obj.Size
		}

		if page.NextToken == "" {
			return usage, nil
		}
		token = page.NextToken
	}
}

func BuildBucketRecommendation(
	ctx context.Context,
	lister ObjectLister,
	bucket domain.Bucket,
	region string,
) (domain.Recommendation, error) {
	usage, err := MeasureBucket(ctx, lister, bucket.Name, region)
	if err != nil {
		return domain.Recommendation{}, err
	}
	return bucketRecommendation(bucket, region, usage), nil
}

func bucketRecommendation(bucket domain.Bucket, region string, usage BucketUsage) domain.Recommendation {
	sizeGB := float64(usage.SizeBytes) / bytesPerGB
	rate, ok := pricing.StorageClassRate(usage.StorageClass)
	if !ok {
		rate, _ = pricing.StorageClassRate(classStandard)
	}

	out := domain.Recommendation{
		ResourceID:   bucket.Name,
		Name:         bucket.Name,
		ResourceType: domain.ResourceBucket,
		Region:       region,
		CurrentType:  usage.StorageClass,
		CurrentPrice: sizeGB * rate,
		Details: domain.RecommendationDetails{
			SizeBytes: usage.SizeBytes,
			SizeGB:    sizeGB,
		},
	}
	if !bucket.CreatedAt.IsZero() {
		out.Details.CreatedAt = bucket.CreatedAt.UTC().Format("2006-01-02")
	}

	target, reason := "", domain.ReasonNoOpportunity
	if usage.StorageClass == classStandard {
		switch {
		case usage.SizeBytes > intelligentTieringThreshold:
			target, reason = classIntelligentTiering, domain.ReasonIntelligentTiering
		case usage.SizeBytes > standardIAThreshold:
			target, reason = classStandardIA, domain.ReasonStandardIA
		}
	}
	out.Reasons = []domain.Reason{reason}

	if target != "" {
		targetRate, _ := pricing.StorageClassRate(target)
		out.RecommendedType = target
		out.RecommendedPrice = sizeGB * targetRate
		out.EstimatedMonthlySavings = domain.Savings(out.CurrentPrice, out.RecommendedPrice, 1)
	}
	return out
}
