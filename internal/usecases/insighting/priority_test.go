package insighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
)

func TestPriorityScore(t *testing.T) {
	tests := []struct {
		name     string
		impact   domain.InsightLevel
		urgency  domain.InsightLevel
		effort   domain.InsightLevel
		expected float64
	}{
		{
			name:     "Máximo: impacto alto, urgência alta, esforço baixo",
			impact:   domain.InsightLevelHigh,
			urgency:  domain.InsightLevelHigh,
			effort:   domain.InsightLevelLow,
			expected: 9.0,
		},
		{
			name:     "Mínimo: impacto baixo, urgência baixa, esforço alto",
			impact:   domain.InsightLevelLow,
			urgency:  domain.InsightLevelLow,
			effort:   domain.InsightLevelHigh,
			expected: 0.33,
		},
		{
			name:     "Todos médios",
			impact:   domain.InsightLevelMedium,
			urgency:  domain.InsightLevelMedium,
			effort:   domain.InsightLevelMedium,
			expected: 2.0,
		},
		{
			name:     "Impacto alto com esforço médio",
			impact:   domain.InsightLevelHigh,
			urgency:  domain.InsightLevelHigh,
			effort:   domain.InsightLevelMedium,
			expected: 4.5,
		},
		{
			name:     "Nível desconhecido cai no peso médio",
			impact:   domain.InsightLevel("critical"),
			urgency:  domain.InsightLevelMedium,
			effort:   domain.InsightLevelMedium,
			expected: 2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PriorityScore(tt.impact, tt.urgency, tt.effort))
		})
	}
}
