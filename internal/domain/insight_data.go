package domain

import "time"

// CampaignStatus é o status da campanha na plataforma de anúncios
type CampaignStatus string

const (
	CampaignStatusEnabled CampaignStatus = "enabled"
	CampaignStatusPaused  CampaignStatus = "paused"
	CampaignStatusRemoved CampaignStatus = "removed"
)

// CampaignData contém as métricas agregadas de uma campanha para o período
// atual e o período de comparação. Transiente: construída a cada execução.
type CampaignData struct {
	ID                        string         `json:"id"`
	Name                      string         `json:"name"`
	Type                      string         `json:"type"`
	Status                    CampaignStatus `json:"status"`
	Conversions               float64        `json:"conversions"`
	PreviousConversions       float64        `json:"previous_conversions"`
	Cost                      float64        `json:"cost"`
	PreviousCost              float64        `json:"previous_cost"`
	ImpressionShareLostBudget float64        `json:"impression_share_lost_budget"`
	BudgetLimited             bool           `json:"budget_limited"`
	Budget                    float64        `json:"budget"`
	RecommendedBudget         *float64       `json:"recommended_budget,omitempty"`
}

// InsightData é o snapshot de métricas que alimenta uma execução do motor de
// insights: totais da conta nos dois períodos, razões derivadas (CPA, ROAS),
// perdas de parcela de impressões e a lista de campanhas.
type InsightData struct {
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
	Currency   string `json:"currency"`

	Conversions         float64 `json:"conversions"`
	PreviousConversions float64 `json:"previous_conversions"`
	Cost                float64 `json:"cost"`
	PreviousCost        float64 `json:"previous_cost"`
	CPA                 float64 `json:"cpa"`
	PreviousCPA         float64 `json:"previous_cpa"`
	ROAS                float64 `json:"roas"`
	PreviousROAS        float64 `json:"previous_roas"`

	ImpressionShareLostBudget float64 `json:"impression_share_lost_budget"`
	ImpressionShareLostRank   float64 `json:"impression_share_lost_rank"`

	Campaigns []CampaignData `json:"campaigns"`
}

// PeriodFilter delimita o período corrente da agregação. O período de
// comparação é derivado: janela imediatamente anterior, de mesma duração.
type PeriodFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// PreviousPeriod devolve a janela de comparação correspondente ao filtro
func (f *PeriodFilter) PreviousPeriod() (time.Time, time.Time) {
	days := int(f.EndDate.Sub(*f.StartDate).Hours()/24) + 1
	prevEnd := f.StartDate.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -(days - 1))
	return prevStart, prevEnd
}
