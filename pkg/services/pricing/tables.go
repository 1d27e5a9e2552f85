package pricing

import "strings"

// Hourly on-demand Linux prices used when the catalog cannot be reached.
var computeFallback = map[string]float64{
	"t2.micro":   0.0116,
	"t2.small":   0.023,
	"t2.medium":  0.0464,
	"t3.micro":   0.0104,
	"t3.small":   0.0208,
	"t3.medium":  0.0416,
	"t4g.medium": 0.0336,
	"m5.large":   0.096,
	"m5.xlarge":  0.192,
	"m5.2xlarge": 0.384,
	"c5.large":   0.085,
	"c5.xlarge":  0.17,
	"r5.large":   0.126,
	"r5.xlarge":  0.252,
	"r5.2xlarge": 0.504,
}

// Hourly single-AZ database prices used when the catalog cannot be reached.
var databaseFallback = map[string]float64{
	"db.t3.micro":   0.017,
	"db.t3.small":   0.034,
	"db.t3.medium":  0.068,
	"db.t3.large":   0.136,
	"db.m5.large":   0.171,
	"db.m5.xlarge":  0.342,
	"db.m5.2xlarge": 0.684,
	"db.r5.large":   0.226,
	"db.r5.xlarge":  0.452,
	"db.r5.2xlarge": 0.904,
}

// Per GB-month block storage rates.
var volumeRates = map[string]float64{
	"gp2":      0.10,
	"gp3":      0.08,
	"io1":      0.125,
	"io2":      0.125,
	"sc1":      0.025,
	"st1":      0.045,
	"standard": 0.05,
}

// Per GB-month object storage rates.
var storageClassRates = map[string]float64{
	"STANDARD":            0.023,
	"INTELLIGENT_TIERING": 0.0125,
	"STANDARD_IA":         0.0125,
}

const (
	defaultVolumeType = "gp2"

	// AddressIdleHourly is the charge for an Elastic IP that is not associated.
	AddressIdleHourly = 0.005
)

// VolumeRate returns the GB-month rate of a volume type; unknown types are priced as gp2.
func VolumeRate(volumeType string) float64 {
	if rate, ok := volumeRates[strings.ToLower(volumeType)]; ok {
		return rate
	}
	return volumeRates[defaultVolumeType]
}

func StorageClassRate(class string) (float64, bool) {
	rate, ok := storageClassRates[strings.ToUpper(class)]
	return rate, ok
}

// AddressIdleMonthly is the monthly charge of an idle Elastic IP over a 30 day month.
func AddressIdleMonthly() float64 {
	return AddressIdleHourly * 24 * 30
}

func fallbackPrice(q Query) (float64, bool) {
	table := computeFallback
	if q.Service == ServiceDatabase {
		table = databaseFallback
	}
	price, ok := table[q.InstanceType]
	return price, ok
}
