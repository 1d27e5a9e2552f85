package domain

// UtilizationSample is an averaged utilization percentage for one resource.
// Available is false when the metric source returned no datapoints.
type UtilizationSample struct {
	ResourceID string
	Percent    float64
	Available  bool
}

func UnavailableSample(resourceID string) UtilizationSample {
	return UtilizationSample{ResourceID: resourceID}
}
