package adapters

import (
	"fmt"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/shopspring/decimal"
)

const notAvailable = "N/A"

// FormatCurrency renders an amount with exactly two decimal places.
func FormatCurrency(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatPercent renders a utilization sample as "12.34%", or "N/A" when absent.
func FormatPercent(sample domain.UtilizationSample) string {
	if !sample.Available {
		return notAvailable
	}
	return decimal.NewFromFloat(sample.Percent).StringFixed(2) + "%"
}

// FormatBytes picks the largest binary unit below the size.
func FormatBytes(size int64) string {
	const unit = 1024
	switch {
	case size < unit:
		return fmt.Sprintf("%d Bytes", size)
	case size < unit*unit:
		return fmt.Sprintf("%.2f KB", float64(size)/unit)
	case size < unit*unit*unit:
		return fmt.Sprintf("%.2f MB", float64(size)/(unit*unit))
	default:
		return fmt.Sprintf("%.2f GB", float64(size)/(unit*unit*unit))
	}
}

func FormatGB(gb float64) string {
	return decimal.NewFromFloat(gb).StringFixed(2) + " GB"
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
