package adapters

import (
	"errors"
	"strings"

	"github.com/de-tools/cost-advisor/pkg/models/api"
	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/de-tools/cost-advisor/pkg/services/advisor"
)

var reasonTexts = map[domain.Reason]string{
	domain.ReasonNoOpportunity:      "No major savings opportunity detected",
	domain.ReasonUnderutilized:      "Underutilized instance",
	domain.ReasonOverutilized:       "Overutilized instance",
	domain.ReasonStorageOptimizable: "Storage optimization available",
	domain.ReasonUnattached:         "Unattached EBS volume, can be deleted or snapshotted",
	domain.ReasonMigrateToGp3:       "Consider migrating from gp2 to gp3",
	domain.ReasonUnassociated:       "Unassociated Elastic IP, you can release it to save costs",
	domain.ReasonInUse:              "Elastic IP in use, no savings opportunity",
	domain.ReasonIntelligentTiering: "Consider moving to Intelligent-Tiering for cost savings",
	domain.ReasonStandardIA:         "Consider Standard-IA for infrequently accessed data",
}

func ReasonText(r domain.Reason) string {
	if text, ok := reasonTexts[r]; ok {
		return text
	}
	return r.Code()
}

// JoinReasons renders findings in order, separated by "; ".
func JoinReasons(reasons []domain.Reason) string {
	if len(reasons) == 0 {
		return ReasonText(domain.ReasonNoOpportunity)
	}
	texts := make([]string, 0, len(reasons))
	for _, r := range reasons {
		texts = append(texts, ReasonText(r))
	}
	return strings.Join(texts, "; ")
}

func MapRecommendationDomainToApi(rec domain.Recommendation) api.Recommendation {
	out := api.Recommendation{
		ResourceID:              rec.ResourceID,
		Name:                    rec.Name,
		ResourceType:            string(rec.ResourceType),
		Region:                  rec.Region,
		State:                   rec.State,
		CurrentType:             rec.CurrentType,
		CurrentPrice:            FormatCurrency(rec.CurrentPrice),
		RecommendedPrice:        FormatCurrency(rec.RecommendedPrice),
		EstimatedMonthlySavings: FormatCurrency(rec.EstimatedMonthlySavings),
		Reason:                  JoinReasons(rec.Reasons),
		ReasonCodes:             make([]string, 0, len(rec.Reasons)),
		CreatedAt:               rec.Details.CreatedAt,
	}
	for _, r := range rec.Reasons {
		out.ReasonCodes = append(out.ReasonCodes, r.Code())
	}
	if rec.RecommendedType != "" {
		recommended := rec.RecommendedType
		out.RecommendedType = &recommended
	}

	d := rec.Details
	switch rec.ResourceType {
	case domain.ResourceDatabase:
		out.Utilization = FormatPercent(d.Utilization)
		out.Engine = d.Engine
		out.ClusterID = orDefault(d.ClusterID, notAvailable)
		out.StorageType = d.StorageType
		if rec.HasReason(domain.ReasonStorageOptimizable) {
			out.StorageMigrationPrice = FormatCurrency(d.StorageMigrationPrice)
		}
		if d.SizeGB > 0 {
			out.Size = FormatGB(d.SizeGB)
		}
	case domain.ResourceVolume:
		out.Size = FormatGB(d.SizeGB)
		out.AttachmentState = d.AttachmentState
	case domain.ResourceAddress:
		out.PublicIP = d.PublicIP
		out.AssociationID = orDefault(d.AssociationID, "None")
	case domain.ResourceBucket:
		out.Size = FormatBytes(d.SizeBytes)
	case domain.ResourceSnapshot:
		out.Name = orDefault(rec.Name, notAvailable)
		out.Size = FormatGB(d.SizeGB)
		out.StorageUsed = notAvailable
		if d.StorageUsed != nil {
			out.StorageUsed = FormatGB(*d.StorageUsed)
		}
	}
	return out
}

func MapRecommendationsDomainToApi(recs []domain.Recommendation) []api.Recommendation {
	out := make([]api.Recommendation, 0, len(recs))
	for _, rec := range recs {
		out = append(out, MapRecommendationDomainToApi(rec))
	}
	return out
}

func MapErrorToApi(err error) api.ErrorResponse {
	resp := api.ErrorResponse{Error: err.Error()}
	if reason, ok := domain.FailureReasonOf(err); ok {
		resp.Reason = reason.String()
	}
	var unsupported *advisor.UnsupportedResourceError
	if errors.As(err, &unsupported) {
		resp.Reason = "unsupported_resource_type"
	}
	return resp
}

func MapReportDomainToApi(report advisor.Report) api.RecommendationReport {
	out := api.RecommendationReport{
		BatchID: report.BatchID,
		Results: make(map[string][]api.Recommendation, len(report.Results)),
	}
	for rt, recs := range report.Results {
		out.Results[string(rt)] = MapRecommendationsDomainToApi(recs)
	}
	if len(report.Errors) > 0 {
		out.Errors = make(map[string]api.ErrorResponse, len(report.Errors))
		for rt, err := range report.Errors {
			out.Errors[string(rt)] = MapErrorToApi(err)
		}
	}
	return out
}
