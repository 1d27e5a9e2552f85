package adapters

import (
	"errors"
	"fmt"
	"testing"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/advisor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	tests := map[float64]string{
		0:        "0.00",
		3.6:      "3.60",
		36.5:     "36.50",
		12.34:    "12.34",
		1.005:    "1.01",
		70.08:    "70.08",
		1234.567: "1234.57",
	}
	for in, expected := range tests {
		assert.Equal(t, expected, FormatCurrency(in), fmt.Sprint(in))
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "12.34%", FormatPercent(domain.UtilizationSample{Percent: 12.344, Available: true}))
	assert.Equal(t, "0.00%", FormatPercent(domain.UtilizationSample{Available: true}))
	assert.Equal(t, "N/A", FormatPercent(domain.UnavailableSample("db-1")))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 Bytes", FormatBytes(512))
	assert.Equal(t, "1.50 KB", FormatBytes(1536))
	assert.Equal(t, "95.37 MB", FormatBytes(100_000_000))
	assert.Equal(t, "1.00 GB", FormatBytes(1<<30))
}

func TestJoinReasons(t *testing.T) {
	assert.Equal(t, "No major savings opportunity detected", JoinReasons(nil))
	assert.Equal(t,
		"Underutilized instance; Storage optimization available",
		JoinReasons([]domain.Reason{domain.ReasonUnderutilized, domain.ReasonStorageOptimizable}),
	)
}

func TestMapRecommendationDomainToApi(t *testing.T) {
	t.Run("address release", func(t *testing.T) {
		out := MapRecommendationDomainToApi(domain.Recommendation{
			ResourceID:              "eipalloc-1",
			ResourceType:            domain.ResourceAddress,
			CurrentPrice:            3.6,
			EstimatedMonthlySavings: 3.6,
			Reasons:                 []domain.Reason{domain.ReasonUnassociated},
			Details:                 domain.RecommendationDetails{PublicIP: "203.0.113.1"},
		})

		assert.Equal(t, "3.60", out.EstimatedMonthlySavings)
		assert.Contains(t, out.Reason, "release")
		assert.Equal(t, "None", out.AssociationID)
		assert.Nil(t, out.RecommendedType)
		assert.Equal(t, []string{"unassociated"}, out.ReasonCodes)
	})

	t.Run("address in use", func(t *testing.T) {
		out := MapRecommendationDomainToApi(domain.Recommendation{
			ResourceType: domain.ResourceAddress,
			Reasons:      []domain.Reason{domain.ReasonInUse},
			Details:      domain.RecommendationDetails{AssociationID: "eipassoc-1"},
		})

		assert.Equal(t, "0.00", out.EstimatedMonthlySavings)
		assert.Equal(t, "eipassoc-1", out.AssociationID)
	})

	t.Run("database", func(t *testing.T) {
		out := MapRecommendationDomainToApi(domain.Recommendation{
			ResourceType:    domain.ResourceDatabase,
			CurrentPrice:    0.17,
			RecommendedType: "db.t3.medium",
			Reasons:         []domain.Reason{domain.ReasonUnderutilized, domain.ReasonStorageOptimizable},
			Details: domain.RecommendationDetails{
				Utilization:           domain.UtilizationSample{Percent: 5, Available: true},
				StorageType:           "gp2",
				StorageMigrationPrice: 0.136,
			},
		})

		require.NotNil(t, out.RecommendedType)
		assert.Equal(t, "db.t3.medium", *out.RecommendedType)
		assert.Equal(t, "5.00%", out.Utilization)
		assert.Equal(t, "N/A", out.ClusterID)
		assert.Equal(t, "0.14", out.StorageMigrationPrice)
	})

	t.Run("compute without options keeps literal", func(t *testing.T) {
		out := MapRecommendationDomainToApi(domain.Recommendation{
			ResourceType:    domain.ResourceCompute,
			RecommendedType: domain.NoRecommendation,
		})

		require.NotNil(t, out.RecommendedType)
		assert.Equal(t, "No recommendation", *out.RecommendedType)
	})

	t.Run("bucket size", func(t *testing.T) {
		out := MapRecommendationDomainToApi(domain.Recommendation{
			ResourceType: domain.ResourceBucket,
			Details:      domain.RecommendationDetails{SizeBytes: 2048},
		})
		assert.Equal(t, "2.00 KB", out.Size)
	})

	t.Run("snapshot without metric", func(t *testing.T) {
		out := MapRecommendationDomainToApi(domain.Recommendation{
			ResourceType: domain.ResourceSnapshot,
			Details:      domain.RecommendationDetails{SizeGB: 8},
		})
		assert.Equal(t, "N/A", out.Name)
		assert.Equal(t, "N/A", out.StorageUsed)
		assert.Equal(t, "8.00 GB", out.Size)
	})
}

func TestMapReportDomainToApi(t *testing.T) {
	report := advisor.Report{
		BatchID: "b-1",
		Results: map[domain.ResourceType][]domain.Recommendation{
			domain.ResourceVolume: {{ResourceID: "vol-1", ResourceType: domain.ResourceVolume}},
		},
		Errors: map[domain.ResourceType]error{
			domain.ResourceCompute: domain.NewFailure(domain.FailureUpstream, "ec2", errors.New("denied")),
		},
	}

	out := MapReportDomainToApi(report)

	assert.Equal(t, "b-1", out.BatchID)
	assert.Len(t, out.Results["ebs"], 1)
	assert.Equal(t, "upstream_failure", out.Errors["ec2"].Reason)
}

func TestMapCostSummaryDomainToApi(t *testing.T) {
	period, err := domain.NewBillingPeriod(3, 2025)
	require.NoError(t, err)

	out := MapCostSummaryDomainToApi(domain.CostSummary{
		Period:         period,
		GrandTotal:     12.34,
		HighestService: domain.SpendEntry{Name: "Simple Storage Service", Amount: 12.34},
	})

	assert.Equal(t, "12.34", out.GrandTotal)
	assert.Equal(t, "Simple Storage Service", out.HighestServiceName)
	assert.Equal(t, "12.34", out.HighestServiceSpend)
	assert.Equal(t, "N/A", out.HighestRegionName)
	assert.Equal(t, "0.00", out.HighestRegionSpend)
}
