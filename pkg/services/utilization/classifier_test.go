package utilization

import (
	"testing"

	"github.com/de-tools/cost-advisor/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		sample   domain.UtilizationSample
		expected Classification
	}{
		{"just below low threshold", domain.UtilizationSample{Percent: 19.999, Available: true}, Underutilized},
		{"low threshold is normal", domain.UtilizationSample{Percent: 20.0, Available: true}, Normal},
		{"mid range", domain.UtilizationSample{Percent: 50, Available: true}, Normal},
		{"high threshold is normal", domain.UtilizationSample{Percent: 80.0, Available: true}, Normal},
		{"just above high threshold", domain.UtilizationSample{Percent: 80.001, Available: true}, Overutilized},
		{"zero is a real reading", domain.UtilizationSample{Percent: 0, Available: true}, Underutilized},
		{"unavailable", domain.UnavailableSample("db-1"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.sample))
		})
	}
}
