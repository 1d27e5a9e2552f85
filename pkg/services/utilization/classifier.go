package utilization

import "github.com/de-tools/cost-advisor/pkg/models/domain"

type Classification int

const (
	Unknown Classification = iota
	Underutilized
	Normal
	Overutilized
)

const (
	LowThreshold  = 20.0
	HighThreshold = 80.0
)

func (c Classification) String() string {
	switch c {
	case Underutilized:
		return "underutilized"
	case Normal:
		return "normal"
	case Overutilized:
		return "overutilized"
	default:
		return "unknown"
	}
}

// Classify buckets a utilization sample. The thresholds themselves are Normal.
func Classify(sample domain.UtilizationSample) Classification {
	if !sample.Available {
		return Unknown
	}
	return ClassifyPercent(sample.Percent)
}

func ClassifyPercent(percent float64) Classification {
	switch {
	case percent < LowThreshold:
		return Underutilized
	case percent > HighThreshold:
		return Overutilized
	default:
		return Normal
	}
}
