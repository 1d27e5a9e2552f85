package pricing

import "strings"

type regionPrefix struct {
	prefix  string
	display string
}

// Checked in order, so more specific prefixes come first.
var locationPrefixes = []regionPrefix{
	{"us-east", "US East (N. Virginia)"},
	{"us-west-1", "US West (N. California)"},
	{"us-west-2", "US West (Oregon)"},
	{"eu-west", "EU (Ireland)"},
}

var exactLocations = map[string]string{
	"eu-central-1":   "EU (Frankfurt)",
	"ap-south-1":     "Asia Pacific (Mumbai)",
	"ap-southeast-1": "Asia Pacific (Singapore)",
	"ap-southeast-2": "Asia Pacific (Sydney)",
	"ap-northeast-1": "Asia Pacific (Tokyo)",
	"ca-central-1":   "Canada (Central)",
	"sa-east-1":      "South America (Sao Paulo)",
}

// Location translates a region code or availability zone into the catalog's
// location name. Unmapped input is passed through.
func Location(region string) string {
	if display, ok := exactLocations[region]; ok {
		return display
	}
	for _, p := range locationPrefixes {
		if strings.HasPrefix(region, p.prefix) {
			return p.display
		}
	}
	return region
}

// RegionFromZone turns an availability zone such as "us-east-1a" into its region.
func RegionFromZone(zone string) string {
	n := len(zone)
	if n < 2 {
		return zone
	}
	last, prev := zone[n-1], zone[n-2]
	if last >= 'a' && last <= 'z' && prev >= '0' && prev <= '9' {
		return zone[:n-1]
	}
	return zone
}
