package azure

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/cost"
)

const (
	Platform = "azure"

	costColumn     = "totalCost"
	currencyColumn = "Currency"
)

var groupingColumns = map[domain.CostDimension]string{
	domain.DimensionService: "ServiceName",
	domain.DimensionRegion:  "ResourceLocation",
}

// QueryAPI is the part of the cost management query client the source uses.
type QueryAPI interface {
	Usage(
		ctx context.Context,
		scope string,
		parameters armcostmanagement.QueryDefinition,
		options *armcostmanagement.QueryClientUsageOptions,
	) (armcostmanagement.QueryClientUsageResponse, error)
}

type source struct {
	client QueryAPI
	scope  string
}

// SourceFactory reads the profile named by the context from the Azure CLI config.
func SourceFactory(_ context.Context, cc domain.CloudContext) (cost.Source, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadConfig(path, cc.Profile)
	if err != nil {
		return nil, err
	}

	cred, err := newCredential(cfg)
	if err != nil {
		return nil, err
	}

	factory, err := armcostmanagement.NewClientFactory(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cost management client: %w", err)
	}
	return NewSource(factory.NewQueryClient(), cfg.SubscriptionID), nil
}

func NewSource(client QueryAPI, subscriptionID string) cost.Source {
	return &source{
		client: client,
		scope:  fmt.Sprintf("/subscriptions/%s", subscriptionID),
	}
}

func (s *source) GetAmortizedCost(
	ctx context.Context,
	period domain.BillingPeriod,
	dimension domain.CostDimension,
) ([]domain.CostGroup, error) {
	exportType := armcostmanagement.ExportTypeAmortizedCost
	timeframe := armcostmanagement.TimeframeTypeCustom
	columnType := armcostmanagement.QueryColumnTypeDimension
	sum := armcostmanagement.FunctionTypeSum

	from := period.Start
	until := period.End.Add(-time.Second)

	params := armcostmanagement.QueryDefinition{
		Type:      &exportType,
		Timeframe: &timeframe,
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: &from,
			To:   &until,
		},
		Dataset: &armcostmanagement.QueryDataset{
			Aggregation: map[string]*armcostmanagement.QueryAggregation{
				costColumn: {
					Name:     to.Ptr("Cost"),
					Function: &sum,
				},
			},
		},
	}

	groupColumn := ""
	if dimension != domain.DimensionNone {
		name, ok := groupingColumns[dimension]
		if !ok {
			return nil, fmt.Errorf("unsupported cost dimension: %s", dimension)
		}
		groupColumn = name
		params.Dataset.Grouping = []*armcostmanagement.QueryGrouping{
			{
				Name: to.Ptr(name),
				Type: &columnType,
			},
		}
	}

	result, err := s.client.Usage(ctx, s.scope, params, nil)
	if err != nil {
		return nil, domain.NewFailure(domain.FailureUpstream, string(dimension),
			fmt.Errorf("failed to query costs: %w", err))
	}
	if result.Properties == nil {
		return nil, nil
	}

	return transformRows(result.Properties.Columns, result.Properties.Rows, groupColumn)
}

func transformRows(columns []*armcostmanagement.QueryColumn, rows [][]any, groupColumn string) ([]domain.CostGroup, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if c != nil && c.Name != nil {
			index[strings.ToLower(*c.Name)] = i
		}
	}

	costIdx, ok := index[strings.ToLower(costColumn)]
	if !ok {
		return nil, fmt.Errorf("cost column %q missing from query result", costColumn)
	}
	groupIdx := -1
	if groupColumn != "" {
		if groupIdx, ok = index[strings.ToLower(groupColumn)]; !ok {
			return nil, fmt.Errorf("grouping column %q missing from query result", groupColumn)
		}
	}
	currencyIdx, hasCurrency := index[strings.ToLower(currencyColumn)]

	groups := make([]domain.CostGroup, 0, len(rows))
	for _, row := range rows {
		if costIdx >= len(row) || groupIdx >= len(row) {
			continue
		}

		amount, err := toFloat(row[costIdx])
		if err != nil {
			return nil, err
		}

		g := domain.CostGroup{Amount: amount}
		if groupIdx >= 0 {
			g.Key = fmt.Sprintf("%v", row[groupIdx])
		}
		if hasCurrency && currencyIdx < len(row) {
			g.Unit = fmt.Sprintf("%v", row[currencyIdx])
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse cost %q: %w", n, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unexpected cost value type %T", v)
	}
}
