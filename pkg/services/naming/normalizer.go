package naming

import "strings"

const (
	computeServiceName = "Elastic Compute Cloud"
	vendorPrefix       = "Amazon "
)

var computeServiceMarkers = []string{
	"Elastic Compute Cloud",
	"EC2 - Other",
	"EC2 Container",
}

var regionNames = map[string]string{
	"us-east-1":      "US East (N. Virginia)",
	"us-east-2":      "US East (Ohio)",
	"us-west-1":      "US West (N. California)",
	"us-west-2":      "US West (Oregon)",
	"ca-central-1":   "Canada (Central)",
	"eu-west-1":      "EU (Ireland)",
	"eu-west-2":      "EU (London)",
	"eu-central-1":   "EU (Frankfurt)",
	"ap-south-1":     "AP South (Mumbai)",
	"ap-southeast-1": "AP Southeast (Singapore)",
	"ap-southeast-2": "AP Southeast (Sydney)",
	"ap-northeast-1": "AP Northeast (Tokyo)",
	"sa-east-1":      "SA East (Sao Paulo)",
}

// NormalizeServiceName collapses the compute billing line items into a single
// service and strips the vendor prefix from everything else.
func NormalizeServiceName(raw string) string {
	for _, marker := range computeServiceMarkers {
		if strings.Contains(raw, marker) {
			return computeServiceName
		}
	}

	name := raw
	for strings.HasPrefix(name, vendorPrefix) {
		name = strings.TrimPrefix(name, vendorPrefix)
	}
	return name
}

// NormalizeRegionName maps a region code to its display name. Unknown input is returned as is.
func NormalizeRegionName(code string) string {
	if name, ok := regionNames[code]; ok {
		return name
	}
	return code
}
