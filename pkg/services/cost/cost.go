package cost

import (
	"context"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
)

// Source returns amortized spend for a billing period.
type Source interface {
	// GetAmortizedCost returns one group per dimension value, or a single
	// ungrouped total when dimension is DimensionNone.
	GetAmortizedCost(
		ctx context.Context,
		period domain.BillingPeriod,
		dimension domain.CostDimension,
	) ([]domain.CostGroup, error)
}
