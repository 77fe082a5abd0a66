package domain

// AccountMetrics são os totais agregados da conta devolvidos pela API de
// métricas para uma janela de datas
type AccountMetrics struct {
	ExternalID                string  `json:"external_id"`
	Name                      string  `json:"name"`
	Conversions               float64 `json:"conversions"`
	ConversionsValue          float64 `json:"conversions_value"`
	Cost                      float64 `json:"cost"`
	ImpressionShareLostBudget float64 `json:"impression_share_lost_budget"`
	ImpressionShareLostRank   float64 `json:"impression_share_lost_rank"`
}

// CampaignMetrics são os totais agregados de uma campanha para a janela
type CampaignMetrics struct {
	ID                        string   `json:"id"`
	Name                      string   `json:"name"`
	Type                      string   `json:"type"`
	Status                    string   `json:"status"`
	Conversions               float64  `json:"conversions"`
	Cost                      float64  `json:"cost"`
	ImpressionShareLostBudget float64  `json:"impression_share_lost_budget"`
	BudgetLimited             bool     `json:"budget_limited"`
	Budget                    float64  `json:"budget"`
	RecommendedBudget         *float64 `json:"recommended_budget,omitempty"`
}
