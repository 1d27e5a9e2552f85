package aws_ce

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/cost"
	"github.com/de-tools/cost-advisor/pkg/store/awsapi"
)

const (
	Platform = "aws"

	amortizedCost = "AmortizedCost"
	dateLayout    = "2006-01-02"
)

type CostExplorerAPI interface {
	GetCostAndUsage(
		ctx context.Context,
		params *costexplorer.GetCostAndUsageInput,
		optFns ...func(*costexplorer.Options),
	) (*costexplorer.GetCostAndUsageOutput, error)
}

type source struct {
	client CostExplorerAPI
}

func SourceFactory(ctx context.Context, cc domain.CloudContext) (cost.Source, error) {
	cfg, err := awsapi.LoadConfig(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	return NewSource(awsapi.NewClients(cfg).CostExplorer), nil
}

func NewSource(client CostExplorerAPI) cost.Source {
	return &source{client: client}
}

func (s *source) GetAmortizedCost(
	ctx context.Context,
	period domain.BillingPeriod,
	dimension domain.CostDimension,
) ([]domain.CostGroup, error) {
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &types.DateInterval{
			Start: aws.String(period.Start.Format(dateLayout)),
			End:   aws.String(period.End.Format(dateLayout)),
		},
		Granularity: types.GranularityMonthly,
		Metrics:     []string{amortizedCost},
	}
	if dimension != domain.DimensionNone {
		input.GroupBy = []types.GroupDefinition{
			{
				Type: types.GroupDefinitionTypeDimension,
				Key:  aws.String(string(dimension)),
			},
		}
	}

	var groups []domain.CostGroup
	for {
		result, err := s.client.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, domain.NewFailure(domain.FailureUpstream, string(dimension),
				fmt.Errorf("failed to get cost and usage: %w", err))
		}

		page, err := transformCostAndUsageResult(result)
		if err != nil {
			return nil, err
		}
		groups = append(groups, page...)

		if result.NextPageToken == nil || *result.NextPageToken == "" {
			return groups, nil
		}
		input.NextPageToken = result.NextPageToken
	}
}

func transformCostAndUsageResult(result *costexplorer.GetCostAndUsageOutput) ([]domain.CostGroup, error) {
	var groups []domain.CostGroup

	for _, resultByTime := range result.ResultsByTime {
		if len(resultByTime.Groups) == 0 {
			if metric, ok := resultByTime.Total[amortizedCost]; ok {
				g, err := toCostGroup("", metric)
				if err != nil {
					return nil, err
				}
				groups = append(groups, g)
			}
			continue
		}

		for _, group := range resultByTime.Groups {
			metric, ok := group.Metrics[amortizedCost]
			if !ok || len(group.Keys) == 0 {
				continue
			}
			g, err := toCostGroup(group.Keys[0], metric)
			if err != nil {
				return nil, err
			}
			groups = append(groups, g)
		}
	}

	return groups, nil
}

func toCostGroup(key string, metric types.MetricValue) (domain.CostGroup, error) {
	amount, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
	if err != nil {
		return domain.CostGroup{}, fmt.Errorf("failed to parse amount for %q: %w", key, err)
	}
	return domain.CostGroup{
		Key:    key,
		Amount: amount,
		Unit:   aws.ToString(metric.Unit),
	}, nil
}
