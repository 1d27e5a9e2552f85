package domain

import (
	"fmt"
	"time"
)

// CostDimension selects how billing amounts are grouped.
type CostDimension string

const (
	DimensionNone    CostDimension = ""
	DimensionService CostDimension = "SERVICE"
	DimensionRegion  CostDimension = "REGION"
)

// BillingPeriod is a calendar month. Start is inclusive, End exclusive.
type BillingPeriod struct {
	Month int
	Year  int
	Start time.Time
	End   time.Time
}

func NewBillingPeriod(month, year int) (BillingPeriod, error) {
	if month < 1 || month > 12 {
		return BillingPeriod{}, fmt.Errorf("invalid month: %d", month)
	}
	if year < 1 {
		return BillingPeriod{}, fmt.Errorf("invalid year: %d", year)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return BillingPeriod{
		Month: month,
		Year:  year,
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}, nil
}

// CostGroup is one billing row. Key is empty for ungrouped totals.
type CostGroup struct {
	Key    string
	Amount float64
	Unit   string
}

type SpendEntry struct {
	Name   string
	Amount float64
}

type CostSummary struct {
	Period         BillingPeriod
	GrandTotal     float64
	HighestService SpendEntry
	HighestRegion  SpendEntry
}
