package domain

// ResourceType names a family of resources the advisor can inspect.
type ResourceType string

const (
	ResourceCompute  ResourceType = "ec2"
	ResourceVolume   ResourceType = "ebs"
	ResourceAddress  ResourceType = "eip"
	ResourceBucket   ResourceType = "s3"
	ResourceDatabase ResourceType = "rds"
	ResourceSnapshot ResourceType = "snapshots"
)

const (
	// HoursPerMonth converts hourly on-demand prices to a monthly figure.
	HoursPerMonth = 730.0

	// NoRecommendation is reported as the recommended type of compute
	// resources the optimizer has no options for.
	NoRecommendation = "No recommendation"
)

type Recommendation struct {
	ResourceID   string
	Name         string
	ResourceType ResourceType
	Region       string
	State        string

	CurrentType  string
	CurrentPrice float64

	// RecommendedType is empty when nothing is recommended.
	RecommendedType         string
	RecommendedPrice        float64
	EstimatedMonthlySavings float64

	Reasons []Reason
	Details RecommendationDetails
}

// RecommendationDetails carries the per-resource-type extras shown next to a recommendation.
type RecommendationDetails struct {
	Utilization           UtilizationSample
	Engine                string
	ClusterID             string
	StorageType           string
	StorageMigrationPrice float64
	SizeBytes             int64
	SizeGB                float64
	AttachmentState       string
	PublicIP              string
	AssociationID         string
	StorageUsed           *float64
	CreatedAt             string
}

// Savings is max(0, current-recommended) scaled by hours.
// Pass 1 for prices that are already monthly.
func Savings(current, recommended, hours float64) float64 {
	diff := current - recommended
	if diff <= 0 {
		return 0
	}
	return diff * hours
}

func (r Recommendation) HasReason(reason Reason) bool {
	for _, rr := range r.Reasons {
		if rr == reason {
			return true
		}
	}
	return false
}
