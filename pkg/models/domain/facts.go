package domain

import (
	"strings"
	"time"
)

type Tag struct {
	Key   string
	Value string
}

type ComputeInstance struct {
	ID               string
	Type             string
	State            string
	AvailabilityZone string
	Tags             []Tag
}

type Volume struct {
	ID               string
	Type             string
	SizeGB           int32
	State            string
	AvailabilityZone string
	Attachments      []VolumeAttachment
	Tags             []Tag
}

type VolumeAttachment struct {
	InstanceID string
	State      string
}

func (v Volume) Attached() bool {
	return len(v.Attachments) > 0
}

type Address struct {
	PublicIP      string
	AllocationID  string
	AssociationID string
	InstanceID    string
	Domain        string
	Tags          []Tag
}

type Bucket struct {
	Name      string
	CreatedAt time.Time
}

type Object struct {
	Key          string
	Size         int64
	StorageClass string
}

// ObjectPage is one page of a bucket listing. An empty NextToken ends the listing.
type ObjectPage struct {
	Objects   []Object
	NextToken string
}

type DBInstance struct {
	Identifier        string
	ClusterIdentifier string
	Engine            string
	Class             string
	StorageType       string
	AvailabilityZone  string
	AllocatedStorage  int32
	Status            string
}

type Snapshot struct {
	ID        string
	VolumeID  string
	SizeGB    int32
	Tier      string
	State     string
	StartTime time.Time
	Tags      []Tag
}

type OptimizerOption struct {
	InstanceType    string
	PerformanceRisk float64
}

type OptimizerRecommendation struct {
	ResourceARN         string
	CurrentInstanceType string
	Finding             string
	Options             []OptimizerOption
}

// TagValue returns the first tag matching key case-insensitively.
func TagValue(tags []Tag, key string) (string, bool) {
	for _, t := range tags {
		if strings.EqualFold(t.Key, key) {
			return t.Value, true
		}
	}
	return "", false
}
