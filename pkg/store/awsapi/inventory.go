package awsapi

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/cost-advisor/pkg/models/domain"
)

type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
	DescribeAddresses(ctx context.Context, params *ec2.DescribeAddressesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error)
	DescribeSnapshots(ctx context.Context, params *ec2.DescribeSnapshotsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error)
}

type S3API interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	GetBucketLocation(ctx context.Context, params *s3.GetBucketLocationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type RDSAPI interface {
	DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
}

// Inventory reads resource facts for one account and region.
type Inventory struct {
	ec2         EC2API
	s3          S3API
	rds         RDSAPI
	s3ForRegion func(region string) S3API
}

func NewInventory(ec2Client EC2API, s3Client S3API, rdsClient RDSAPI, s3ForRegion func(string) S3API) *Inventory {
	if s3ForRegion == nil {
		s3ForRegion = func(string) S3API { return s3Client }
	}
	return &Inventory{
		ec2:         ec2Client,
		s3:          s3Client,
		rds:         rdsClient,
		s3ForRegion: s3ForRegion,
	}
}

func upstream(key string, err error) error {
	return domain.NewFailure(domain.FailureUpstream, key, err)
}

func (i *Inventory) ListInstances(ctx context.Context) ([]domain.ComputeInstance, error) {
	var instances []domain.ComputeInstance
	var nextToken *string

	for {
		out, err := i.ec2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{NextToken: nextToken})
		if err != nil {
			return nil, upstream("ec2:DescribeInstances", fmt.Errorf("failed to describe EC2 instances: %w", err))
		}

		for _, reservation := range out.Reservations {
			for _, inst := range reservation.Instances {
				instance := domain.ComputeInstance{
					ID:   aws.ToString(inst.InstanceId),
					Type: string(inst.InstanceType),
					Tags: mapEC2Tags(inst.Tags),
				}
				if inst.State != nil {
					instance.State = string(inst.State.Name)
				}
				if inst.Placement != nil {
					instance.AvailabilityZone = aws.ToString(inst.Placement.AvailabilityZone)
				}
				instances = append(instances, instance)
			}
		}

		if out.NextToken == nil || *out.NextToken == "" {
			break
		}
		nextToken = out.NextToken
	}
	return instances, nil
}

func (i *Inventory) ListVolumes(ctx context.Context) ([]domain.Volume, error) {
	var volumes []domain.Volume
	var nextToken *string

	for {
		out, err := i.ec2.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{NextToken: nextToken})
		if err != nil {
			return nil, upstream("ec2:DescribeVolumes", fmt.Errorf("failed to describe EBS volumes: %w", err))
		}

		for _, v := range out.Volumes {
			volume := domain.Volume{
				ID:               aws.ToString(v.VolumeId),
				Type:             string(v.VolumeType),
				SizeGB:           aws.ToInt32(v.Size),
				State:            string(v.State),
				AvailabilityZone: aws.ToString(v.AvailabilityZone),
				Tags:             mapEC2Tags(v.Tags),
			}
			for _, a := range v.Attachments {
				volume.Attachments = append(volume.Attachments, domain.VolumeAttachment{
					InstanceID: aws.ToString(a.InstanceId),
					State:      string(a.State),
				})
			}
			volumes = append(volumes, volume)
		}

		if out.NextToken == nil || *out.NextToken == "" {
			break
		}
		nextToken = out.NextToken
	}
	return volumes, nil
}

func (i *Inventory) ListAddresses(ctx context.Context) ([]domain.Address, error) {
	out, err := i.ec2.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{})
	if err != nil {
		return nil, upstream("ec2:DescribeAddresses", fmt.Errorf("failed to describe elastic IPs: %w", err))
	}

	addresses := make([]domain.Address, 0, len(out.Addresses))
	for _, a := range out.Addresses {
		addresses = append(addresses, domain.Address{
			PublicIP:      aws.ToString(a.PublicIp),
			AllocationID:  aws.ToString(a.AllocationId),
			AssociationID: aws.ToString(a.AssociationId),
			InstanceID:    aws.ToString(a.InstanceId),
			Domain:        string(a.Domain),
			Tags:          mapEC2Tags(a.Tags),
		})
	}
	return addresses, nil
}

func (i *Inventory) ListSnapshots(ctx context.Context) ([]domain.Snapshot, error) {
	var snapshots []domain.Snapshot
	var nextToken *string

	for {
		out, err := i.ec2.DescribeSnapshots(ctx, &ec2.DescribeSnapshotsInput{
			OwnerIds:  []string{"self"},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, upstream("ec2:DescribeSnapshots", fmt.Errorf("failed to describe snapshots: %w", err))
		}

		for _, s := range out.Snapshots {
			snapshots = append(snapshots, domain.Snapshot{
				ID:        aws.ToString(s.SnapshotId),
				VolumeID:  aws.ToString(s.VolumeId),
				SizeGB:    aws.ToInt32(s.VolumeSize),
				Tier:      string(s.StorageTier),
				State:     string(s.State),
				StartTime: aws.ToTime(s.StartTime),
				Tags:      mapEC2Tags(s.Tags),
			})
		}

		if out.NextToken == nil || *out.NextToken == "" {
			break
		}
		nextToken = out.NextToken
	}
	return snapshots, nil
}

func (i *Inventory) ListBuckets(ctx context.Context) ([]domain.Bucket, error) {
	out, err := i.s3.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, upstream("s3:ListBuckets", fmt.Errorf("failed to list buckets: %w", err))
	}

	buckets := make([]domain.Bucket, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		buckets = append(buckets, domain.Bucket{
			Name:      aws.ToString(b.Name),
			CreatedAt: aws.ToTime(b.CreationDate),
		})
	}
	return buckets, nil
}

// BucketRegion returns the raw location constraint; an empty value means us-east-1.
func (i *Inventory) BucketRegion(ctx context.Context, bucket string) (string, error) {
	out, err := i.s3.GetBucketLocation(ctx, &s3.GetBucketLocationInput{Bucket: aws.String(bucket)})
	if err != nil {
		return "", upstream(bucket, fmt.Errorf("failed to get bucket location: %w", err))
	}
	return string(out.LocationConstraint), nil
}

// ListObjects returns one page of a bucket listing. maxKeys <= 0 uses the service default.
func (i *Inventory) ListObjects(
	ctx context.Context,
	bucket, region, token string,
	maxKeys int32,
) (domain.ObjectPage, error) {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(bucket)}
	if token != "" {
		input.ContinuationToken = aws.String(token)
	}
	if maxKeys > 0 {
		input.MaxKeys = aws.Int32(maxKeys)
	}

	out, err := i.s3ForRegion(region).ListObjectsV2(ctx, input)
	if err != nil {
		return domain.ObjectPage{}, upstream(bucket, fmt.Errorf("failed to list objects: %w", err))
	}

	page := domain.ObjectPage{Objects: make([]domain.Object, 0, len(out.Contents))}
	for _, obj := range out.Contents {
		page.Objects = append(page.Objects, domain.Object{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			StorageClass: string(obj.StorageClass),
		})
	}
	if aws.ToBool(out.IsTruncated) {
		page.NextToken = aws.ToString(out.NextContinuationToken)
	}
	return page, nil
}

func (i *Inventory) ListDBInstances(ctx context.Context) ([]domain.DBInstance, error) {
	var instances []domain.DBInstance
	var marker *string

	for {
		out, err := i.rds.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{Marker: marker})
		if err != nil {
			return nil, upstream("rds:DescribeDBInstances", fmt.Errorf("failed to describe RDS instances: %w", err))
		}

		for _, db := range out.DBInstances {
			instances = append(instances, domain.DBInstance{
				Identifier:        aws.ToString(db.DBInstanceIdentifier),
				ClusterIdentifier: aws.ToString(db.DBClusterIdentifier),
				Engine:            aws.ToString(db.Engine),
				Class:             aws.ToString(db.DBInstanceClass),
				StorageType:       aws.ToString(db.StorageType),
				AvailabilityZone:  aws.ToString(db.AvailabilityZone),
				AllocatedStorage:  aws.ToInt32(db.AllocatedStorage),
				Status:            aws.ToString(db.DBInstanceStatus),
			})
		}

		if out.Marker == nil || *out.Marker == "" {
			break
		}
		marker = out.Marker
	}
	return instances, nil
}

func mapEC2Tags(tags []ec2types.Tag) []domain.Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]domain.Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, domain.Tag{Key: aws.ToString(t.Key), Value: aws.ToString(t.Value)})
	}
	return out
}
