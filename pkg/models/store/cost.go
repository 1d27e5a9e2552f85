package store

// CostRow is one aggregated row of a cost and usage report query.
// GroupKey is empty for ungrouped totals.
type CostRow struct {
	GroupKey string
	Amount   float64
}
