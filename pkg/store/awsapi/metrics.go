package awsapi

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/de-tools/cost-advisor/pkg/models/domain"
)

type CloudWatchAPI interface {
	GetMetricStatistics(
		ctx context.Context,
		params *cloudwatch.GetMetricStatisticsInput,
		optFns ...func(*cloudwatch.Options),
	) (*cloudwatch.GetMetricStatisticsOutput, error)
}

// MetricQuery selects one metric series of one resource.
type MetricQuery struct {
	Namespace  string
	MetricName string
	Dimension  string
	ResourceID string
	Window     time.Duration
	Period     time.Duration
	Statistic  types.Statistic
}

func DatabaseCPUQuery(identifier string) MetricQuery {
	return MetricQuery{
		Namespace:  "AWS/RDS",
		MetricName: "CPUUtilization",
		Dimension:  "DBInstanceIdentifier",
		ResourceID: identifier,
		Window:     7 * 24 * time.Hour,
		Period:     24 * time.Hour,
		Statistic:  types.StatisticAverage,
	}
}

func SnapshotStorageQuery(snapshotID string) MetricQuery {
	return MetricQuery{
		Namespace:  "AWS/EBS",
		MetricName: "SnapshotStorageUsed",
		Dimension:  "SnapshotId",
		ResourceID: snapshotID,
		Window:     24 * time.Hour,
		Period:     time.Hour,
		Statistic:  types.StatisticAverage,
	}
}

type Metrics struct {
	client CloudWatchAPI
	now    func() time.Time
}

func NewMetrics(client CloudWatchAPI) *Metrics {
	return &Metrics{client: client, now: time.Now}
}

func (m *Metrics) datapoints(ctx context.Context, q MetricQuery) ([]types.Datapoint, error) {
	end := m.now()
	out, err := m.client.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String(q.Namespace),
		MetricName: aws.String(q.MetricName),
		Dimensions: []types.Dimension{{
			Name:  aws.String(q.Dimension),
			Value: aws.String(q.ResourceID),
		}},
		StartTime:  aws.Time(end.Add(-q.Window)),
		EndTime:    aws.Time(end),
		Period:     aws.Int32(int32(q.Period.Seconds())),
		Statistics: []types.Statistic{q.Statistic},
	})
	if err != nil {
		return nil, domain.NewFailure(domain.FailureUnavailableUtilization, q.ResourceID,
			fmt.Errorf("failed to get %s statistics: %w", q.MetricName, err))
	}
	return out.Datapoints, nil
}

// Average is the mean of the per-period averages. No datapoints yields an
// unavailable sample, not an error.
func (m *Metrics) Average(ctx context.Context, q MetricQuery) (domain.UtilizationSample, error) {
	points, err := m.datapoints(ctx, q)
	if err != nil {
		return domain.UnavailableSample(q.ResourceID), err
	}

	var sum float64
	var n int
	for _, p := range points {
		if p.Average == nil {
			continue
		}
		sum += *p.Average
		n++
	}
	if n == 0 {
		return domain.UnavailableSample(q.ResourceID), nil
	}

	return domain.UtilizationSample{
		ResourceID: q.ResourceID,
		Percent:    sum / float64(n),
		Available:  true,
	}, nil
}

// Latest returns the most recent datapoint's average, or false when there is none.
func (m *Metrics) Latest(ctx context.Context, q MetricQuery) (float64, bool, error) {
	points, err := m.datapoints(ctx, q)
	if err != nil {
		return 0, false, err
	}

	valid := make([]types.Datapoint, 0, len(points))
	for _, p := range points {
		if p.Average != nil && p.Timestamp != nil {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return 0, false, nil
	}

	sort.Slice(valid, func(i, j int) bool {
		return valid[i].Timestamp.After(*valid[j].Timestamp)
	})
	return *valid[0].Average, true, nil
}
