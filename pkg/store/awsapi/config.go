package awsapi

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/computeoptimizer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/de-tools/cost-advisor/pkg/models/domain"
)

const (
	DefaultRegion = "us-east-1" // Default region if not specified in the context or profile

	// The price list and billing APIs are only served from us-east-1.
	globalRegion = "us-east-1"
)

// WithCallTimeout bounds every SDK request made through the loaded config.
func WithCallTimeout(d time.Duration) func(*config.LoadOptions) error {
	return config.WithHTTPClient(awshttp.NewBuildableClient().WithTimeout(d))
}

// LoadConfig builds an SDK config for the given context. Static keys win over
// the shared profile; a role ARN is assumed on top of either.
func LoadConfig(
	ctx context.Context,
	cc domain.CloudContext,
	extra ...func(*config.LoadOptions) error,
) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithDefaultRegion(DefaultRegion),
	}
	opts = append(opts, extra...)
	if cc.Region != "" {
		opts = append(opts, config.WithRegion(cc.Region))
	}

	if cc.HasStaticCredentials() {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cc.AccessKeyID, cc.SecretAccessKey, cc.SessionToken),
		))
	} else if cc.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cc.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	if cc.RoleARN != "" {
		stsClient := sts.NewFromConfig(awsCfg)
		awsCfg.Credentials = aws.NewCredentialsCache(stscreds.NewAssumeRoleProvider(stsClient, cc.RoleARN))
	}

	// Test the credentials
	_, err = awsCfg.Credentials.Retrieve(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("invalid AWS credentials for profile %q: %w", cc.Profile, err)
	}

	return awsCfg, nil
}

// Clients bundles the service clients built from one config.
type Clients struct {
	Config       aws.Config
	EC2          *ec2.Client
	S3           *s3.Client
	RDS          *rds.Client
	CloudWatch   *cloudwatch.Client
	Optimizer    *computeoptimizer.Client
	Pricing      *pricing.Client
	CostExplorer *costexplorer.Client
}

func NewClients(cfg aws.Config) *Clients {
	return &Clients{
		Config:     cfg,
		EC2:        ec2.NewFromConfig(cfg),
		S3:         s3.NewFromConfig(cfg),
		RDS:        rds.NewFromConfig(cfg),
		CloudWatch: cloudwatch.NewFromConfig(cfg),
		Optimizer:  computeoptimizer.NewFromConfig(cfg),
		Pricing: pricing.NewFromConfig(cfg, func(o *pricing.Options) {
			o.Region = globalRegion
		}),
		CostExplorer: costexplorer.NewFromConfig(cfg, func(o *costexplorer.Options) {
			o.Region = globalRegion
		}),
	}
}

// S3ForRegion returns a client bound to the region a bucket lives in.
func (c *Clients) S3ForRegion(region string) S3API {
	if region == "" || region == c.Config.Region {
		return c.S3
	}
	return s3.NewFromConfig(c.Config, func(o *s3.Options) {
		o.Region = region
	})
}

// NewInventory wires an Inventory over these clients.
func (c *Clients) NewInventory() *Inventory {
	return NewInventory(c.EC2, c.S3, c.RDS, c.S3ForRegion)
}
