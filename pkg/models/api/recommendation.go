package api

type Recommendation struct {
	ResourceID   string `json:"resource_id" yaml:"resource_id"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	ResourceType string `json:"resource_type" yaml:"resource_type"`
	Region       string `json:"region,omitempty" yaml:"region,omitempty"`
	State        string `json:"state,omitempty" yaml:"state,omitempty"`

	CurrentType             string  `json:"current_type,omitempty" yaml:"current_type,omitempty"`
	CurrentPrice            string  `json:"current_price" yaml:"current_price"`
	RecommendedType         *string `json:"recommended_type" yaml:"recommended_type"`
	RecommendedPrice        string  `json:"recommended_price" yaml:"recommended_price"`
	EstimatedMonthlySavings string  `json:"estimated_monthly_savings" yaml:"estimated_monthly_savings"`

	Reason      string   `json:"reason" yaml:"reason"`
	ReasonCodes []string `json:"reason_codes" yaml:"reason_codes"`

	Utilization           string `json:"utilization,omitempty" yaml:"utilization,omitempty"`
	Engine                string `json:"engine,omitempty" yaml:"engine,omitempty"`
	ClusterID             string `json:"cluster_id,omitempty" yaml:"cluster_id,omitempty"`
	StorageType           string `json:"storage_type,omitempty" yaml:"storage_type,omitempty"`
	StorageMigrationPrice string `json:"storage_migration_price,omitempty" yaml:"storage_migration_price,omitempty"`
	Size                  string `json:"size,omitempty" yaml:"size,omitempty"`
	AttachmentState       string `json:"attachment_state,omitempty" yaml:"attachment_state,omitempty"`
	PublicIP              string `json:"public_ip,omitempty" yaml:"public_ip,omitempty"`
	AssociationID         string `json:"association_id,omitempty" yaml:"association_id,omitempty"`
	StorageUsed           string `json:"storage_used,omitempty" yaml:"storage_used,omitempty"`
	CreatedAt             string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// RecommendationReport is the response for a run across all resource types.
type RecommendationReport struct {
	BatchID string                      `json:"batch_id" yaml:"batch_id"`
	Results map[string][]Recommendation `json:"results" yaml:"results"`
	Errors  map[string]ErrorResponse    `json:"errors,omitempty" yaml:"errors,omitempty"`
}

type ErrorResponse struct {
	Error  string `json:"error" yaml:"error"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}
