package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInsightStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     InsightStatus
		to       InsightStatus
		expected bool
	}{
		{
			name:     "new pode virar picked_up",
			from:     InsightStatusNew,
			to:       InsightStatusPickedUp,
			expected: true,
		},
		{
			name:     "new pode virar ignored",
			from:     InsightStatusNew,
			to:       InsightStatusIgnored,
			expected: true,
		},
		{
			name:     "new pode virar resolved",
			from:     InsightStatusNew,
			to:       InsightStatusResolved,
			expected: true,
		},
		{
			name:     "picked_up pode virar resolved",
			from:     InsightStatusPickedUp,
			to:       InsightStatusResolved,
			expected: true,
		},
		{
			name:     "picked_up não pode voltar para new",
			from:     InsightStatusPickedUp,
			to:       InsightStatusNew,
			expected: false,
		},
		{
			name:     "picked_up não pode virar ignored",
			from:     InsightStatusPickedUp,
			to:       InsightStatusIgnored,
			expected: false,
		},
		{
			name:     "resolved é terminal",
			from:     InsightStatusResolved,
			to:       InsightStatusPickedUp,
			expected: false,
		},
		{
			name:     "ignored é terminal",
			from:     InsightStatusIgnored,
			to:       InsightStatusResolved,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestInsightStatus_IsValid(t *testing.T) {
	assert.True(t, InsightStatusNew.IsValid())
	assert.True(t, InsightStatusPickedUp.IsValid())
	assert.True(t, InsightStatusIgnored.IsValid())
	assert.True(t, InsightStatusResolved.IsValid())
	assert.False(t, InsightStatus("archived").IsValid())
	assert.False(t, InsightStatus("").IsValid())
}

func TestInsightFingerprint(t *testing.T) {
	date := time.Date(2026, 8, 14, 17, 42, 3, 0, time.UTC)

	t.Run("Escopo de conta usa o marcador account", func(t *testing.T) {
		fp := InsightFingerprint("cpa_increase_with_budget_limit", "", date)
		assert.Equal(t, "cpa_increase_with_budget_limit:account:2026-08-14", fp)
	})

	t.Run("Escopo de campanha usa o ID da campanha", func(t *testing.T) {
		fp := InsightFingerprint("budget_limited_high_performer", "cmp-981", date)
		assert.Equal(t, "budget_limited_high_performer:cmp-981:2026-08-14", fp)
	})

	t.Run("Duas execuções no mesmo dia colidem independentemente do horário", func(t *testing.T) {
		morning := time.Date(2026, 8, 14, 5, 0, 0, 0, time.UTC)
		evening := time.Date(2026, 8, 14, 23, 59, 59, 0, time.UTC)

		assert.Equal(t,
			InsightFingerprint("high_rank_loss", "", morning),
			InsightFingerprint("high_rank_loss", "", evening),
		)
	})

	t.Run("A data é truncada em UTC, não no fuso local", func(t *testing.T) {
		lisbon := time.FixedZone("WET+1", 1*60*60)
		// 00:30 do dia 15 em Lisboa ainda é dia 14 em UTC
		localMidnight := time.Date(2026, 8, 15, 0, 30, 0, 0, lisbon)

		fp := InsightFingerprint("high_rank_loss", "", localMidnight)
		assert.Equal(t, "high_rank_loss:account:2026-08-14", fp)
	})
}

func TestPeriodFilter_PreviousPeriod(t *testing.T) {
	start := time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)

	filter := &PeriodFilter{StartDate: &start, EndDate: &end}
	prevStart, prevEnd := filter.PreviousPeriod()

	// Janela de 7 dias: o período anterior são os 7 dias imediatamente antes
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), prevStart)
	assert.Equal(t, time.Date(2026, 8, 7, 0, 0, 0, 0, time.UTC), prevEnd)
}

func TestPeriodFilter_PreviousPeriodSingleDay(t *testing.T) {
	day := time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)

	filter := &PeriodFilter{StartDate: &day, EndDate: &day}
	prevStart, prevEnd := filter.PreviousPeriod()

	assert.Equal(t, time.Date(2026, 8, 13, 0, 0, 0, 0, time.UTC), prevStart)
	assert.Equal(t, prevStart, prevEnd)
}
