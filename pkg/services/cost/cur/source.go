package cur

import (
	"context"
	"fmt"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/cost"
	curstore "github.com/de-tools/cost-advisor/pkg/store/cur"
)

const currency = "USD"

var groupColumns = map[domain.CostDimension]string{
	domain.DimensionNone:    "",
	domain.DimensionService: curstore.ColumnProductName,
	domain.DimensionRegion:  curstore.ColumnRegion,
}

type source struct {
	store curstore.Store
}

// NewSource adapts a cost and usage report store to a billing Source.
func NewSource(store curstore.Store) cost.Source {
	return &source{store: store}
}

func (s *source) GetAmortizedCost(
	ctx context.Context,
	period domain.BillingPeriod,
	dimension domain.CostDimension,
) ([]domain.CostGroup, error) {
	column, ok := groupColumns[dimension]
	if !ok {
		return nil, fmt.Errorf("unsupported cost dimension: %s", dimension)
	}

	rows, err := s.store.GetAmortizedCost(ctx, period.Start, period.End, column)
	if err != nil {
		return nil, domain.NewFailure(domain.FailureUpstream, string(dimension), err)
	}

	groups := make([]domain.CostGroup, 0, len(rows))
	for _, r := range rows {
		groups = append(groups, domain.CostGroup{
			Key:    r.GroupKey,
			Amount: r.Amount,
			Unit:   currency,
		})
	}
	return groups, nil
}
