package cost

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/naming"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// NotAvailable names a spend entry for which no billing rows were returned.
const NotAvailable = "N/A"

type Aggregator struct {
	source Source
}

func NewAggregator(source Source) *Aggregator {
	return &Aggregator{source: source}
}

// Summarize runs the total, per-service and per-region queries independently.
// A failed or empty query only leaves its own fields at their defaults; an
// error is returned when all three fail.
func (a *Aggregator) Summarize(ctx context.Context, period domain.BillingPeriod) (domain.CostSummary, error) {
	logger := zerolog.Ctx(ctx).With().
		Int("month", period.Month).
		Int("year", period.Year).
		Logger()

	summary := domain.CostSummary{
		Period:         period,
		HighestService: domain.SpendEntry{Name: NotAvailable},
		HighestRegion:  domain.SpendEntry{Name: NotAvailable},
	}

	var (
		g                       errgroup.Group
		totalErr, svcErr, rgErr error
	)

	g.Go(func() error {
		groups, err := a.source.GetAmortizedCost(ctx, period, domain.DimensionNone)
		if err != nil {
			totalErr = fmt.Errorf("failed to query total cost: %w", err)
			return nil
		}
		summary.GrandTotal = GrandTotal(groups)
		return nil
	})
	g.Go(func() error {
		groups, err := a.source.GetAmortizedCost(ctx, period, domain.DimensionService)
		if err != nil {
			svcErr = fmt.Errorf("failed to query cost by service: %w", err)
			return nil
		}
		if top, ok := HighestService(groups); ok {
			summary.HighestService = top
		}
		return nil
	})
	g.Go(func() error {
		groups, err := a.source.GetAmortizedCost(ctx, period, domain.DimensionRegion)
		if err != nil {
			rgErr = fmt.Errorf("failed to query cost by region: %w", err)
			return nil
		}
		if top, ok := HighestRegion(groups); ok {
			summary.HighestRegion = top
		}
		return nil
	})
	_ = g.Wait()

	for _, err := range []error{totalErr, svcErr, rgErr} {
		if err != nil {
			logger.Warn().Err(err).Msg("billing query failed")
		}
	}
	if totalErr != nil && svcErr != nil && rgErr != nil {
		return summary, errors.Join(totalErr, svcErr, rgErr)
	}
	return summary, nil
}

// GrandTotal sums the ungrouped amounts. Credits never push it below zero.
func GrandTotal(groups []domain.CostGroup) float64 {
	var total float64
	for _, g := range groups {
		total += g.Amount
	}
	return nonNegative(total)
}

// HighestService sums groups per normalized service name and returns the largest.
func HighestService(groups []domain.CostGroup) (domain.SpendEntry, bool) {
	order := make([]string, 0, len(groups))
	sums := make(map[string]float64, len(groups))
	for _, g := range groups {
		name := naming.NormalizeServiceName(g.Key)
		if _, seen := sums[name]; !seen {
			order = append(order, name)
		}
		sums[name] += g.Amount
	}

	entries := make([]domain.SpendEntry, 0, len(order))
	for _, name := range order {
		entries = append(entries, domain.SpendEntry{Name: name, Amount: sums[name]})
	}
	return highest(entries)
}

// HighestRegion returns the largest region group under its display name.
func HighestRegion(groups []domain.CostGroup) (domain.SpendEntry, bool) {
	entries := make([]domain.SpendEntry, 0, len(groups))
	for _, g := range groups {
		entries = append(entries, domain.SpendEntry{Name: g.Key, Amount: g.Amount})
	}

	top, ok := highest(entries)
	if ok {
		top.Name = naming.NormalizeRegionName(top.Name)
	}
	return top, ok
}

// highest keeps the first entry on ties.
func highest(entries []domain.SpendEntry) (domain.SpendEntry, bool) {
	if len(entries) == 0 {
		return domain.SpendEntry{}, false
	}
	top := entries[0]
	for _, e := range entries[1:] {
		if e.Amount > top.Amount {
			top = e
		}
	}
	top.Amount = nonNegative(top.Amount)
	return top, true
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
