package api

type CostSummary struct {
	Month               int    `json:"month" yaml:"month"`
	Year                int    `json:"year" yaml:"year"`
	GrandTotal          string `json:"grand_total" yaml:"grand_total"`
	HighestServiceName  string `json:"highest_service_name" yaml:"highest_service_name"`
	HighestServiceSpend string `json:"highest_service_spend" yaml:"highest_service_spend"`
	HighestRegionName   string `json:"highest_region_name" yaml:"highest_region_name"`
	HighestRegionSpend  string `json:"highest_region_spend" yaml:"highest_region_spend"`
}

type Profile struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Region  string `json:"region,omitempty" yaml:"region,omitempty"`
	RoleARN string `json:"role_arn,omitempty" yaml:"role_arn,omitempty"`
}
