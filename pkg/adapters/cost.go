package adapters

import (
	"github.com/de-tools/cost-advisor/pkg/models/api"
	"github.com/de-tools/cost-advisor/pkg/models/domain"
)

func MapCostSummaryDomainToApi(summary domain.CostSummary) api.CostSummary {
	return api.CostSummary{
		Month:               summary.Period.Month,
		Year:                summary.Period.Year,
		GrandTotal:          FormatCurrency(summary.GrandTotal),
		HighestServiceName:  orDefault(summary.HighestService.Name, notAvailable),
		HighestServiceSpend: FormatCurrency(summary.HighestService.Amount),
		HighestRegionName:   orDefault(summary.HighestRegion.Name, notAvailable),
		HighestRegionSpend:  FormatCurrency(summary.HighestRegion.Amount),
	}
}

func MapProfileDomainToApi(p domain.ConfigProfile) api.Profile {
	return api.Profile{
		Name:    p.Name,
		Type:    string(p.Type),
		Region:  p.Region,
		RoleARN: p.RoleARN,
	}
}

func MapProfilesDomainToApi(profiles []domain.ConfigProfile) []api.Profile {
	out := make([]api.Profile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, MapProfileDomainToApi(p))
	}
	return out
}
