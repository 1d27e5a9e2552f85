package analyzers

import (
	"context"
	"testing"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBuildVolumeRecommendation(t *testing.T) {
	attached := []domain.VolumeAttachment{{InstanceID: "i-1", State: "attached"}}

	tests := []struct {
		name            string
		volume          domain.Volume
		reason          domain.Reason
		recommendedType string
		savings         float64
		attachment      string
	}{
		{
			name:       "unattached volume saves its full monthly cost",
			volume:     domain.Volume{ID: "vol-1", Type: "io1", SizeGB: 100},
			reason:     domain.ReasonUnattached,
			savings:    12.5,
			attachment: "Detached",
		},
		{
			name:       "unattached gp2 is flagged as unattached first",
			volume:     domain.Volume{ID: "vol-2", Type: "gp2", SizeGB: 50},
			reason:     domain.ReasonUnattached,
			savings:    5.0,
			attachment: "Detached",
		},
		{
			name:            "attached gp2 migrates to gp3",
			volume:          domain.Volume{ID: "vol-3", Type: "gp2", SizeGB: 100, Attachments: attached},
			reason:          domain.ReasonMigrateToGp3,
			recommendedType: "gp3",
			savings:         2.0,
			attachment:      "attached",
		},
		{
			name:       "attached gp3 has nothing to do",
			volume:     domain.Volume{ID: "vol-4", Type: "gp3", SizeGB: 100, Attachments: attached},
			reason:     domain.ReasonNoOpportunity,
			savings:    0,
			attachment: "attached",
		},
		{
			name:       "missing type is priced as gp2",
			volume:     domain.Volume{ID: "vol-5", SizeGB: 10},
			reason:     domain.ReasonUnattached,
			savings:    1.0,
			attachment: "Detached",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := BuildVolumeRecommendation(tt.volume, "us-east-1")

			assert.Equal(t, []domain.Reason{tt.reason}, out.Reasons)
			assert.Equal(t, tt.recommendedType, out.RecommendedType)
			assert.InDelta(t, tt.savings, out.EstimatedMonthlySavings, 1e-9)
			assert.Equal(t, tt.attachment, out.Details.AttachmentState)
		})
	}
}

func TestBuildVolumeRecommendation_UnattachedSavingsEqualMonthlyCost(t *testing.T) {
	for _, vt := range []string{"gp2", "gp3", "io1", "io2", "sc1", "st1", "standard"} {
		out := BuildVolumeRecommendation(domain.Volume{ID: "vol", Type: vt, SizeGB: 37}, "us-east-1")
		assert.Equal(t, out.CurrentPrice, out.EstimatedMonthlySavings, vt)
	}
}

func TestBuildVolumeRecommendation_Gp2SavingsMatchRateDifference(t *testing.T) {
	v := domain.Volume{
		ID:          "vol",
		Type:        "gp2",
		SizeGB:      250,
		Attachments: []domain.VolumeAttachment{{State: "attached"}},
	}

	out := BuildVolumeRecommendation(v, "us-east-1")

	assert.InDelta(t, 250*0.10-250*0.08, out.EstimatedMonthlySavings, 1e-9)
	assert.GreaterOrEqual(t, out.EstimatedMonthlySavings, 0.0)
}

func TestEBSAnalyzer_Analyze(t *testing.T) {
	inventory := new(mockInventory)
	inventory.On("ListVolumes", mock.Anything).Return([]domain.Volume{
		{ID: "vol-1", Type: "gp2", SizeGB: 10, AvailabilityZone: "eu-west-1b"},
	}, nil)

	recs, err := NewEBSAnalyzer(inventory, Options{Region: "us-east-1"}).Analyze(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "eu-west-1", recs[0].Region)
	inventory.AssertExpectations(t)
}
