package adsplatform

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	adsdomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/adsplatform/domain"
	"github.com/vfg2006/marketing-ops-api/infrastructure/integrator/adsplatform/adsclient"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/pkg/utils"
)

// AdsIntegrator agrega métricas da plataforma de anúncios em um InsightData:
// totais da conta e das campanhas para o período corrente e o período
// imediatamente anterior de mesma duração, com CPA e ROAS derivados.
type AdsIntegrator struct {
	cfg    *config.Config
	Client adsclient.Client
}

func New(cfg *config.Config, client adsclient.Client) *AdsIntegrator {
	return &AdsIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// periodMetrics reúne as métricas de conta e campanhas de uma janela
type periodMetrics struct {
	account   *adsdomain.AccountMetrics
	campaigns []adsdomain.CampaignMetrics
}

func (s *AdsIntegrator) BuildInsightData(client *domain.Client, filters *domain.PeriodFilter) (*domain.InsightData, error) {
	if filters == nil || filters.StartDate == nil || filters.EndDate == nil {
		return nil, errors.New("é necessário informar as datas de início e fim")
	}

	if filters.StartDate.After(*filters.EndDate) {
		return nil, errors.New("a data de início não pode ser posterior à data de fim")
	}

	prevStart, prevEnd := filters.PreviousPeriod()

	var (
		current  *periodMetrics
		previous *periodMetrics
		curErr   error
		prevErr  error
	)

	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		current, curErr = s.fetchPeriod(client.ExternalID, *filters.StartDate, *filters.EndDate)
	}()

	go func() {
		defer wg.Done()
		previous, prevErr = s.fetchPeriod(client.ExternalID, prevStart, prevEnd)
	}()

	wg.Wait()

	if curErr != nil {
		return nil, errors.Wrap(curErr, "erro ao buscar métricas do período corrente")
	}
	if prevErr != nil {
		return nil, errors.Wrap(prevErr, "erro ao buscar métricas do período de comparação")
	}

	data := &domain.InsightData{
		ClientID:   client.ID,
		ClientName: client.Name,
		Currency:   client.Currency,

		Conversions:         current.account.Conversions,
		PreviousConversions: previous.account.Conversions,
		Cost:                current.account.Cost,
		PreviousCost:        previous.account.Cost,

		// CPA = custo/conversões quando conversões > 0, senão 0
		CPA:         utils.SafeRatio(current.account.Cost, current.account.Conversions),
		PreviousCPA: utils.SafeRatio(previous.account.Cost, previous.account.Conversions),

		// ROAS = valor de conversões/custo quando custo > 0, senão 0
		ROAS:         utils.SafeRatio(current.account.ConversionsValue, current.account.Cost),
		PreviousROAS: utils.SafeRatio(previous.account.ConversionsValue, previous.account.Cost),

		ImpressionShareLostBudget: current.account.ImpressionShareLostBudget,
		ImpressionShareLostRank:   current.account.ImpressionShareLostRank,
	}

	data.Campaigns = buildCampaignData(current.campaigns, previous.campaigns)

	logrus.WithFields(logrus.Fields{
		"client_id":   client.ID,
		"external_id": client.ExternalID,
		"campaigns":   len(data.Campaigns),
		"start_date":  filters.StartDate.Format(time.DateOnly),
		"end_date":    filters.EndDate.Format(time.DateOnly),
	}).Debug("insights: insight data assembled from ads platform")

	return data, nil
}

func (s *AdsIntegrator) fetchPeriod(externalID string, start, end time.Time) (*periodMetrics, error) {
	account, err := s.Client.GetAccountMetrics(externalID, start, end)
	if err != nil {
		return nil, err
	}

	campaigns, err := s.Client.GetCampaignMetrics(externalID, start, end)
	if err != nil {
		return nil, err
	}

	return &periodMetrics{account: account, campaigns: campaigns}, nil
}

// buildCampaignData casa as campanhas do período corrente com as do período
// anterior pelo ID. Campanha sem histórico entra com os valores anteriores
// zerados, o que as regras interpretam como base zero.
func buildCampaignData(current, previous []adsdomain.CampaignMetrics) []domain.CampaignData {
	previousByID := make(map[string]adsdomain.CampaignMetrics, len(previous))
	for _, campaign := range previous {
		previousByID[campaign.ID] = campaign
	}

	campaigns := make([]domain.CampaignData, 0, len(current))
	for _, campaign := range current {
		data := domain.CampaignData{
			ID:                        campaign.ID,
			Name:                      campaign.Name,
			Type:                      campaign.Type,
			Status:                    domain.CampaignStatus(campaign.Status),
			Conversions:               campaign.Conversions,
			Cost:                      campaign.Cost,
			ImpressionShareLostBudget: campaign.ImpressionShareLostBudget,
			BudgetLimited:             campaign.BudgetLimited,
			Budget:                    campaign.Budget,
			RecommendedBudget:         campaign.RecommendedBudget,
		}

		if prev, ok := previousByID[campaign.ID]; ok {
			data.PreviousConversions = prev.Conversions
			data.PreviousCost = prev.Cost
		}

		campaigns = append(campaigns, data)
	}

	return campaigns
}
