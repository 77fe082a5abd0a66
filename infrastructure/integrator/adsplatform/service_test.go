package adsplatform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adsdomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/adsplatform/domain"
	"github.com/vfg2006/marketing-ops-api/infrastructure/integrator/adsplatform/mocks"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestAdsIntegrator_BuildInsightData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	integrator := New(&config.Config{}, mockClient)

	client := &domain.Client{ID: "cl-001", ExternalID: "acc-1", Name: "Ótica Premium Lisboa", Currency: "EUR"}

	start := time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)
	prevStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	prevEnd := time.Date(2026, 8, 7, 0, 0, 0, 0, time.UTC)

	filters := &domain.PeriodFilter{StartDate: &start, EndDate: &end}

	// Período corrente
	mockClient.EXPECT().
		GetAccountMetrics("acc-1", start, end).
		Return(&adsdomain.AccountMetrics{
			ExternalID:                "acc-1",
			Conversions:               100,
			ConversionsValue:          5000,
			Cost:                      1000,
			ImpressionShareLostBudget: 18,
			ImpressionShareLostRank:   32,
		}, nil)

	mockClient.EXPECT().
		GetCampaignMetrics("acc-1", start, end).
		Return([]adsdomain.CampaignMetrics{
			{ID: "cmp-1", Name: "Search - Marca", Status: "enabled", Conversions: 60, Cost: 600},
			{ID: "cmp-2", Name: "Display - Nova", Status: "enabled", Conversions: 40, Cost: 400},
		}, nil)

	// Período de comparação
	mockClient.EXPECT().
		GetAccountMetrics("acc-1", prevStart, prevEnd).
		Return(&adsdomain.AccountMetrics{
			ExternalID:       "acc-1",
			Conversions:      80,
			ConversionsValue: 3200,
			Cost:             800,
		}, nil)

	mockClient.EXPECT().
		GetCampaignMetrics("acc-1", prevStart, prevEnd).
		Return([]adsdomain.CampaignMetrics{
			{ID: "cmp-1", Name: "Search - Marca", Status: "enabled", Conversions: 70, Cost: 650},
			// cmp-2 não existia no período anterior
		}, nil)

	data, err := integrator.BuildInsightData(client, filters)
	require.NoError(t, err)

	assert.Equal(t, "cl-001", data.ClientID)
	assert.Equal(t, "EUR", data.Currency)

	assert.Equal(t, 100.0, data.Conversions)
	assert.Equal(t, 80.0, data.PreviousConversions)
	assert.Equal(t, 10.0, data.CPA)          // 1000/100
	assert.Equal(t, 10.0, data.PreviousCPA)  // 800/80
	assert.Equal(t, 5.0, data.ROAS)          // 5000/1000
	assert.Equal(t, 4.0, data.PreviousROAS)  // 3200/800
	assert.Equal(t, 18.0, data.ImpressionShareLostBudget)
	assert.Equal(t, 32.0, data.ImpressionShareLostRank)

	require.Len(t, data.Campaigns, 2)

	// Campanha com histórico casa com o período anterior pelo ID
	assert.Equal(t, "cmp-1", data.Campaigns[0].ID)
	assert.Equal(t, 70.0, data.Campaigns[0].PreviousConversions)
	assert.Equal(t, 650.0, data.Campaigns[0].PreviousCost)

	// Campanha nova entra com base anterior zerada
	assert.Equal(t, "cmp-2", data.Campaigns[1].ID)
	assert.Equal(t, 0.0, data.Campaigns[1].PreviousConversions)
	assert.Equal(t, 0.0, data.Campaigns[1].PreviousCost)
}

func TestAdsIntegrator_BuildInsightDataValidatesDates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	integrator := New(&config.Config{}, mocks.NewMockClient(ctrl))
	client := &domain.Client{ID: "cl-001", ExternalID: "acc-1"}

	t.Run("Filtro nulo", func(t *testing.T) {
		_, err := integrator.BuildInsightData(client, nil)
		assert.Error(t, err)
	})

	t.Run("Datas ausentes", func(t *testing.T) {
		_, err := integrator.BuildInsightData(client, &domain.PeriodFilter{})
		assert.Error(t, err)
	})

	t.Run("Início posterior ao fim", func(t *testing.T) {
		_, err := integrator.BuildInsightData(client, &domain.PeriodFilter{
			StartDate: timePtr(time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)),
			EndDate:   timePtr(time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC)),
		})
		assert.Error(t, err)
	})
}

func TestAdsIntegrator_BuildInsightDataPropagatesClientError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	integrator := New(&config.Config{}, mockClient)
	client := &domain.Client{ID: "cl-001", ExternalID: "acc-1"}

	start := time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)

	// As duas janelas são buscadas em paralelo; as duas chamadas acontecem
	mockClient.EXPECT().
		GetAccountMetrics("acc-1", gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError).
		Times(2)

	_, err := integrator.BuildInsightData(client, &domain.PeriodFilter{StartDate: &start, EndDate: &end})
	assert.Error(t, err)
}

func TestBuildCampaignData(t *testing.T) {
	current := []adsdomain.CampaignMetrics{
		{ID: "cmp-1", Name: "A", Status: "enabled", Conversions: 10, Cost: 100, BudgetLimited: true, Budget: 20},
	}
	previous := []adsdomain.CampaignMetrics{
		{ID: "cmp-1", Name: "A", Status: "enabled", Conversions: 12, Cost: 90},
		{ID: "cmp-removida", Name: "X", Status: "removed", Conversions: 5, Cost: 50},
	}

	campaigns := buildCampaignData(current, previous)

	// Campanhas que só existem no período anterior não entram no snapshot
	require.Len(t, campaigns, 1)
	assert.Equal(t, domain.CampaignStatusEnabled, campaigns[0].Status)
	assert.Equal(t, 12.0, campaigns[0].PreviousConversions)
	assert.Equal(t, 90.0, campaigns[0].PreviousCost)
	assert.True(t, campaigns[0].BudgetLimited)
}
