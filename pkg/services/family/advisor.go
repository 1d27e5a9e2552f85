package family

import "strings"

var (
	burstableSizes = []string{"nano", "micro", "small", "medium", "large", "xlarge", "2xlarge"}
	standardSizes  = []string{"large", "xlarge", "2xlarge", "4xlarge", "8xlarge", "12xlarge", "16xlarge", "24xlarge"}
	dbBurstable    = []string{"micro", "small", "medium", "large", "xlarge", "2xlarge"}
)

// sizeChains lists the sizes of each family from smallest to largest.
// Families not listed here have no step recommendations.
var sizeChains = map[string][]string{
	"t2":  burstableSizes,
	"t3":  burstableSizes,
	"t3a": burstableSizes,
	"t4g": burstableSizes,
	"m5":  standardSizes,
	"m6i": standardSizes,
	"m6g": standardSizes,
	"c5":  standardSizes,
	"c6i": standardSizes,
	"r5":  standardSizes,
	"r6i": standardSizes,

	"db.t3":  dbBurstable,
	"db.t4g": dbBurstable,
	"db.m5":  standardSizes,
	"db.m6i": standardSizes,
	"db.m6g": standardSizes,
	"db.r5":  standardSizes,
	"db.r6i": standardSizes,
	"db.r6g": standardSizes,
}

// SmallerOf returns the next size down within the same family.
func SmallerOf(instanceType string) (string, bool) {
	return step(instanceType, -1)
}

// LargerOf returns the next size up within the same family.
func LargerOf(instanceType string) (string, bool) {
	return step(instanceType, 1)
}

func step(instanceType string, delta int) (string, bool) {
	family, size := parseInstanceType(instanceType)
	if family == "" {
		return "", false
	}

	chain, ok := sizeChains[family]
	if !ok {
		return "", false
	}

	for i, s := range chain {
		if s != size {
			continue
		}
		next := i + delta
		if next < 0 || next >= len(chain) {
			return "", false
		}
		return family + "." + chain[next], true
	}
	return "", false
}

// parseInstanceType splits "m5.large" into ("m5", "large") and
// "db.t3.medium" into ("db.t3", "medium").
func parseInstanceType(instanceType string) (family, size string) {
	prefix := ""
	trimmed := instanceType
	if strings.HasPrefix(instanceType, "db.") {
		prefix = "db."
		trimmed = strings.TrimPrefix(instanceType, "db.")
	}

	parts := strings.SplitN(trimmed, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", ""
	}
	return prefix + parts[0], parts[1]
}
