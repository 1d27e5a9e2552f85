package analyzers

import (
	"context"
	"testing"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBuildAddressRecommendation(t *testing.T) {
	t.Run("unassociated address can be released", func(t *testing.T) {
		out := BuildAddressRecommendation(domain.Address{
			PublicIP:     "203.0.113.10",
			AllocationID: "eipalloc-1",
			Domain:       "vpc",
		}, "us-east-1")

		assert.Equal(t, "eipalloc-1", out.ResourceID)
		assert.Equal(t, []domain.Reason{domain.ReasonUnassociated}, out.Reasons)
		assert.InDelta(t, 3.60, out.EstimatedMonthlySavings, 1e-9)
		assert.InDelta(t, 3.60, out.CurrentPrice, 1e-9)
	})

	t.Run("associated address has no savings", func(t *testing.T) {
		out := BuildAddressRecommendation(domain.Address{
			PublicIP:      "203.0.113.11",
			AllocationID:  "eipalloc-2",
			AssociationID: "eipassoc-2",
		}, "us-east-1")

		assert.Equal(t, []domain.Reason{domain.ReasonInUse}, out.Reasons)
		assert.Equal(t, 0.0, out.EstimatedMonthlySavings)
		assert.Equal(t, "eipassoc-2", out.Details.AssociationID)
	})

	t.Run("classic address is keyed by ip", func(t *testing.T) {
		out := BuildAddressRecommendation(domain.Address{PublicIP: "203.0.113.12"}, "us-east-1")
		assert.Equal(t, "203.0.113.12", out.ResourceID)
	})
}

func TestEIPAnalyzer_Analyze(t *testing.T) {
	inventory := new(mockInventory)
	inventory.On("ListAddresses", mock.Anything).Return([]domain.Address{
		{AllocationID: "a"},
		{AllocationID: "b", AssociationID: "x"},
	}, nil)

	recs, err := NewEIPAnalyzer(inventory, Options{}).Analyze(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.True(t, recs[0].HasReason(domain.ReasonUnassociated))
	assert.True(t, recs[1].HasReason(domain.ReasonInUse))
}
