package domain

// Reason is a machine-readable finding attached to a recommendation.
// Human-readable text is produced by the adapters layer.
type Reason int

const (
	ReasonNoOpportunity Reason = iota
	ReasonUnderutilized
	ReasonOverutilized
	ReasonStorageOptimizable
	ReasonUnattached
	ReasonMigrateToGp3
	ReasonUnassociated
	ReasonInUse
	ReasonIntelligentTiering
	ReasonStandardIA
)

var reasonCodes = map[Reason]string{
	ReasonNoOpportunity:      "no_opportunity",
	ReasonUnderutilized:      "underutilized",
	ReasonOverutilized:       "overutilized",
	ReasonStorageOptimizable: "storage_optimizable",
	ReasonUnattached:         "unattached",
	ReasonMigrateToGp3:       "migrate_to_gp3",
	ReasonUnassociated:       "unassociated",
	ReasonInUse:              "in_use",
	ReasonIntelligentTiering: "intelligent_tiering",
	ReasonStandardIA:         "standard_ia",
}

// Code is the stable identifier used in logs and API payloads.
func (r Reason) Code() string {
	if code, ok := reasonCodes[r]; ok {
		return code
	}
	return "unknown"
}

func (r Reason) String() string {
	return r.Code()
}
