package awsapi

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/computeoptimizer"
	"github.com/aws/aws-sdk-go-v2/service/computeoptimizer/types"
	"github.com/de-tools/cost-advisor/pkg/models/domain"
)

type OptimizerAPI interface {
	GetEC2InstanceRecommendations(
		ctx context.Context,
		params *computeoptimizer.GetEC2InstanceRecommendationsInput,
		optFns ...func(*computeoptimizer.Options),
	) (*computeoptimizer.GetEC2InstanceRecommendationsOutput, error)
}

type Optimizer struct {
	client OptimizerAPI
}

func NewOptimizer(client OptimizerAPI) *Optimizer {
	return &Optimizer{client: client}
}

// ListInstanceRecommendations returns rightsizing options considering both the
// current architecture and Graviton.
func (o *Optimizer) ListInstanceRecommendations(ctx context.Context) ([]domain.OptimizerRecommendation, error) {
	var recs []domain.OptimizerRecommendation
	var nextToken *string

	for {
		out, err := o.client.GetEC2InstanceRecommendations(ctx, &computeoptimizer.GetEC2InstanceRecommendationsInput{
			NextToken: nextToken,
			RecommendationPreferences: &types.RecommendationPreferences{
				CpuVendorArchitectures: []types.CpuVendorArchitecture{
					types.CpuVendorArchitectureAwsArm64,
					types.CpuVendorArchitectureCurrent,
				},
			},
		})
		if err != nil {
			return nil, upstream("computeoptimizer:GetEC2InstanceRecommendations",
				fmt.Errorf("failed to get instance recommendations: %w", err))
		}

		for _, r := range out.InstanceRecommendations {
			rec := domain.OptimizerRecommendation{
				ResourceARN:         aws.ToString(r.InstanceArn),
				CurrentInstanceType: aws.ToString(r.CurrentInstanceType),
				Finding:             string(r.Finding),
			}
			for _, opt := range r.RecommendationOptions {
				rec.Options = append(rec.Options, domain.OptimizerOption{
					InstanceType:    aws.ToString(opt.InstanceType),
					PerformanceRisk: opt.PerformanceRisk,
				})
			}
			recs = append(recs, rec)
		}

		if out.NextToken == nil || *out.NextToken == "" {
			break
		}
		nextToken = out.NextToken
	}
	return recs, nil
}
