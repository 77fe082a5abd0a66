package insighting

import (
	"fmt"
	"math"

	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/pkg/utils"
)

// IDs estáveis das regras. Fazem parte do fingerprint persistido, portanto
// renomear um ID invalida a deduplicação histórica.
const (
	RuleCPAIncreaseWithBudgetLimit = "cpa_increase_with_budget_limit"
	RuleHighRankLoss               = "high_rank_loss"
	RuleConversionDropStableSpend  = "conversion_drop_stable_spend"
	RuleHighSpendCampaignConvDrop  = "high_spend_campaign_conversion_drop"
	RuleBudgetLimitedHighPerformer = "budget_limited_high_performer"
	RuleZeroConversionSpend        = "zero_conversion_spend"
)

// Tipos de insight exibidos no painel
const (
	InsightTypeBudget      = "budget"
	InsightTypeRank        = "rank"
	InsightTypePerformance = "performance"
	InsightTypeWaste       = "waste"
)

// InsightRule é uma regra de avaliação pura: recebe o snapshot completo e
// devolve no máximo um resultado. Regras não dependem umas das outras.
type InsightRule struct {
	ID          string
	Name        string
	Description string
	Type        string
	Evaluate    func(data *domain.InsightData) *domain.InsightResult
}

// newRules monta o registro ordenado de regras com os limiares da
// configuração. O registro é imutável durante a vida do serviço.
func newRules(cfg config.InsightEngine) []InsightRule {
	return []InsightRule{
		{
			ID:          RuleCPAIncreaseWithBudgetLimit,
			Name:        "CPA em alta com orçamento limitado",
			Description: "CPA subiu em relação ao período anterior enquanto a conta perde impressões por orçamento",
			Type:        InsightTypeBudget,
			Evaluate:    evaluateCPAIncreaseWithBudgetLimit(cfg),
		},
		{
			ID:          RuleHighRankLoss,
			Name:        "Perda alta de impressões por rank",
			Description: "Parcela relevante de impressões perdida por classificação do anúncio",
			Type:        InsightTypeRank,
			Evaluate:    evaluateHighRankLoss(cfg),
		},
		{
			ID:          RuleConversionDropStableSpend,
			Name:        "Queda de conversões com investimento estável",
			Description: "Conversões caíram sem variação correspondente de custo",
			Type:        InsightTypePerformance,
			Evaluate:    evaluateConversionDropStableSpend(cfg),
		},
		{
			ID:          RuleHighSpendCampaignConvDrop,
			Name:        "Queda de conversões em campanha de alto investimento",
			Description: "Campanha com parcela relevante do custo da conta perdeu conversões",
			Type:        InsightTypePerformance,
			Evaluate:    evaluateHighSpendCampaignConvDrop(cfg),
		},
		{
			ID:          RuleBudgetLimitedHighPerformer,
			Name:        "Campanha eficiente limitada por orçamento",
			Description: "Campanha com CPA melhor que a média da conta está perdendo impressões por orçamento",
			Type:        InsightTypeBudget,
			Evaluate:    evaluateBudgetLimitedHighPerformer(cfg),
		},
		{
			ID:          RuleZeroConversionSpend,
			Name:        "Investimento sem conversões",
			Description: "Campanhas ativas gastando acima do mínimo sem nenhuma conversão",
			Type:        InsightTypeWaste,
			Evaluate:    evaluateZeroConversionSpend(cfg),
		},
	}
}

// evaluateCPAIncreaseWithBudgetLimit dispara quando o CPA subiu pelo menos o
// limiar configurado e a conta perde mais que o limiar de impressões por
// orçamento. Variação com base anterior zero é tratada como 0%.
func evaluateCPAIncreaseWithBudgetLimit(cfg config.InsightEngine) func(data *domain.InsightData) *domain.InsightResult {
	return func(data *domain.InsightData) *domain.InsightResult {
		cpaChange := utils.ChangePercent(data.CPA, data.PreviousCPA)

		if cpaChange < cfg.CPAIncreaseThreshold || data.ImpressionShareLostBudget <= cfg.BudgetLostShareThreshold {
			return nil
		}

		return &domain.InsightResult{
			RuleID:     RuleCPAIncreaseWithBudgetLimit,
			Type:       InsightTypeBudget,
			Scope:      domain.InsightScopeAccount,
			Impact:     domain.InsightLevelHigh,
			Confidence: domain.InsightLevelHigh,
			Effort:     domain.InsightLevelLow,
			Urgency:    domain.InsightLevelHigh,
			Summary:    fmt.Sprintf("CPA subiu %.0f%% com a conta limitada por orçamento", cpaChange),
			Explanation: fmt.Sprintf(
				"O CPA passou de %.2f para %.2f %s (+%.0f%%) enquanto a conta perde %.0f%% das impressões por orçamento. "+
					"O leilão está encarecendo justamente onde o orçamento corta a entrega.",
				data.PreviousCPA, data.CPA, data.Currency, cpaChange, data.ImpressionShareLostBudget,
			),
			Recommendation: "Revise a distribuição de orçamento entre campanhas ou aumente o orçamento das campanhas limitadas.",
			DataSnapshot: map[string]any{
				"cpa":                          data.CPA,
				"previous_cpa":                 data.PreviousCPA,
				"cpa_change_percent":           utils.RoundWithTwoDecimalPlace(cpaChange),
				"impression_share_lost_budget": data.ImpressionShareLostBudget,
			},
		}
	}
}

// evaluateHighRankLoss dispara quando a perda de impressões por rank excede o
// limiar. Acima do limiar alto o impacto sobe para high.
func evaluateHighRankLoss(cfg config.InsightEngine) func(data *domain.InsightData) *domain.InsightResult {
	return func(data *domain.InsightData) *domain.InsightResult {
		if data.ImpressionShareLostRank <= cfg.RankLostShareThreshold {
			return nil
		}

		impact := domain.InsightLevelMedium
		urgency := domain.InsightLevelMedium
		if data.ImpressionShareLostRank > cfg.RankLostShareHighThreshold {
			impact = domain.InsightLevelHigh
			urgency = domain.InsightLevelHigh
		}

		return &domain.InsightResult{
			RuleID:     RuleHighRankLoss,
			Type:       InsightTypeRank,
			Scope:      domain.InsightScopeAccount,
			Impact:     impact,
			Confidence: domain.InsightLevelHigh,
			Effort:     domain.InsightLevelMedium,
			Urgency:    urgency,
			Summary:    fmt.Sprintf("%.0f%% das impressões perdidas por rank", data.ImpressionShareLostRank),
			Explanation: fmt.Sprintf(
				"A conta deixa de aparecer em %.0f%% dos leilões por classificação do anúncio. "+
					"Isso aponta para lances baixos ou qualidade de anúncio abaixo da concorrência.",
				data.ImpressionShareLostRank,
			),
			Recommendation: "Avalie lances, índice de qualidade e relevância dos criativos nas campanhas principais.",
			DataSnapshot: map[string]any{
				"impression_share_lost_rank": data.ImpressionShareLostRank,
			},
		}
	}
}

// evaluateConversionDropStableSpend dispara quando as conversões caíram pelo
// menos o limiar e o custo variou dentro da tolerância em qualquer direção.
// Confiança media: o sinal causal é mais fraco que o das demais regras.
func evaluateConversionDropStableSpend(cfg config.InsightEngine) func(data *domain.InsightData) *domain.InsightResult {
	return func(data *domain.InsightData) *domain.InsightResult {
		conversionChange := utils.ChangePercent(data.Conversions, data.PreviousConversions)
		costChange := utils.ChangePercent(data.Cost, data.PreviousCost)

		if conversionChange > -cfg.ConversionDropThreshold || math.Abs(costChange) > cfg.StableCostTolerance {
			return nil
		}

		impact := domain.InsightLevelMedium
		if conversionChange <= -cfg.ConversionDropHighThreshold {
			impact = domain.InsightLevelHigh
		}

		return &domain.InsightResult{
			RuleID:     RuleConversionDropStableSpend,
			Type:       InsightTypePerformance,
			Scope:      domain.InsightScopeAccount,
			Impact:     impact,
			Confidence: domain.InsightLevelMedium,
			Effort:     domain.InsightLevelMedium,
			Urgency:    domain.InsightLevelHigh,
			Summary:    fmt.Sprintf("Conversões caíram %.0f%% com investimento estável", math.Abs(conversionChange)),
			Explanation: fmt.Sprintf(
				"As conversões passaram de %.0f para %.0f (%.0f%%) enquanto o custo variou apenas %.0f%%. "+
					"A queda não é explicada pelo investimento; pode haver problema de rastreamento, site ou concorrência.",
				data.PreviousConversions, data.Conversions, conversionChange, costChange,
			),
			Recommendation: "Verifique o rastreamento de conversões e mudanças recentes em páginas de destino antes de mexer em mídia.",
			DataSnapshot: map[string]any{
				"conversions":               data.Conversions,
				"previous_conversions":      data.PreviousConversions,
				"conversion_change_percent": utils.RoundWithTwoDecimalPlace(conversionChange),
				"cost_change_percent":       utils.RoundWithTwoDecimalPlace(costChange),
			},
		}
	}
}

// evaluateHighSpendCampaignConvDrop varre as campanhas e reporta a primeira
// com parcela de custo acima do limiar e queda de conversões acima do limiar.
// Escopo de campanha: no máximo um resultado por avaliação.
func evaluateHighSpendCampaignConvDrop(cfg config.InsightEngine) func(data *domain.InsightData) *domain.InsightResult {
	return func(data *domain.InsightData) *domain.InsightResult {
		if data.Cost <= 0 {
			return nil
		}

		for _, campaign := range data.Campaigns {
			costShare := campaign.Cost / data.Cost * 100
			conversionChange := utils.ChangePercent(campaign.Conversions, campaign.PreviousConversions)

			if costShare <= cfg.CampaignCostShareThreshold || conversionChange > -cfg.CampaignConvDropThreshold {
				continue
			}

			return &domain.InsightResult{
				RuleID:     RuleHighSpendCampaignConvDrop,
				Type:       InsightTypePerformance,
				Scope:      domain.InsightScopeCampaign,
				ScopeID:    campaign.ID,
				ScopeName:  campaign.Name,
				Impact:     domain.InsightLevelHigh,
				Confidence: domain.InsightLevelHigh,
				Effort:     domain.InsightLevelMedium,
				Urgency:    domain.InsightLevelHigh,
				Summary:    fmt.Sprintf("Campanha %s concentra %.0f%% do custo e perdeu %.0f%% das conversões", campaign.Name, costShare, math.Abs(conversionChange)),
				Explanation: fmt.Sprintf(
					"A campanha %s responde por %.0f%% do custo da conta e as conversões caíram de %.0f para %.0f (%.0f%%). "+
						"Uma campanha desse porte em queda arrasta o resultado da conta inteira.",
					campaign.Name, costShare, campaign.PreviousConversions, campaign.Conversions, conversionChange,
				),
				Recommendation: "Priorize a investigação desta campanha: segmentação, criativos e termos de busca do período.",
				DataSnapshot: map[string]any{
					"campaign_id":               campaign.ID,
					"cost_share_percent":        utils.RoundWithTwoDecimalPlace(costShare),
					"conversions":               campaign.Conversions,
					"previous_conversions":      campaign.PreviousConversions,
					"conversion_change_percent": utils.RoundWithTwoDecimalPlace(conversionChange),
				},
			}
		}

		return nil
	}
}

// evaluateBudgetLimitedHighPerformer procura campanhas limitadas por
// orçamento com CPA pelo menos o limiar percentual melhor que o CPA médio da
// conta e reporta a primeira encontrada. Esforço low: é um ajuste de
// orçamento, não uma reestruturação.
func evaluateBudgetLimitedHighPerformer(cfg config.InsightEngine) func(data *domain.InsightData) *domain.InsightResult {
	return func(data *domain.InsightData) *domain.InsightResult {
		if data.CPA <= 0 {
			return nil
		}

		cpaCeiling := data.CPA * (1 - cfg.CPAEfficiencyThreshold/100)

		for _, campaign := range data.Campaigns {
			if !campaign.BudgetLimited || campaign.Conversions <= 0 {
				continue
			}

			campaignCPA := utils.SafeRatio(campaign.Cost, campaign.Conversions)
			if campaignCPA > cpaCeiling {
				continue
			}

			recommendation := fmt.Sprintf(
				"Aumente o orçamento da campanha %s para capturar a demanda perdida.",
				campaign.Name,
			)
			snapshot := map[string]any{
				"campaign_id":                  campaign.ID,
				"campaign_cpa":                 utils.RoundWithTwoDecimalPlace(campaignCPA),
				"account_cpa":                  utils.RoundWithTwoDecimalPlace(data.CPA),
				"budget":                       campaign.Budget,
				"impression_share_lost_budget": campaign.ImpressionShareLostBudget,
			}

			if campaign.RecommendedBudget != nil {
				recommendation = fmt.Sprintf(
					"Aumente o orçamento da campanha %s de %.2f para %.2f %s, valor recomendado pela plataforma.",
					campaign.Name, campaign.Budget, *campaign.RecommendedBudget, data.Currency,
				)
				snapshot["recommended_budget"] = *campaign.RecommendedBudget
			}

			return &domain.InsightResult{
				RuleID:     RuleBudgetLimitedHighPerformer,
				Type:       InsightTypeBudget,
				Scope:      domain.InsightScopeCampaign,
				ScopeID:    campaign.ID,
				ScopeName:  campaign.Name,
				Impact:     domain.InsightLevelHigh,
				Confidence: domain.InsightLevelHigh,
				Effort:     domain.InsightLevelLow,
				Urgency:    domain.InsightLevelMedium,
				Summary:    fmt.Sprintf("Campanha %s converte barato e está limitada por orçamento", campaign.Name),
				Explanation: fmt.Sprintf(
					"A campanha %s tem CPA de %.2f %s contra %.2f %s da média da conta e está marcada como limitada por orçamento. "+
						"Há demanda eficiente sendo deixada na mesa.",
					campaign.Name, campaignCPA, data.Currency, data.CPA, data.Currency,
				),
				Recommendation: recommendation,
				DataSnapshot:   snapshot,
			}
		}

		return nil
	}
}

// evaluateZeroConversionSpend agrega todas as campanhas ativas com custo
// acima do mínimo e zero conversões em um único insight de escopo de conta.
func evaluateZeroConversionSpend(cfg config.InsightEngine) func(data *domain.InsightData) *domain.InsightResult {
	return func(data *domain.InsightData) *domain.InsightResult {
		var totalWaste float64
		wasted := make([]map[string]any, 0)

		for _, campaign := range data.Campaigns {
			if campaign.Status != domain.CampaignStatusEnabled {
				continue
			}
			if campaign.Conversions != 0 || campaign.Cost <= cfg.MinWastedSpend {
				continue
			}

			totalWaste += campaign.Cost
			wasted = append(wasted, map[string]any{
				"campaign_id":   campaign.ID,
				"campaign_name": campaign.Name,
				"cost":          campaign.Cost,
			})
		}

		if len(wasted) == 0 {
			return nil
		}

		impact := domain.InsightLevelMedium
		if totalWaste > cfg.HighWastedSpend {
			impact = domain.InsightLevelHigh
		}

		return &domain.InsightResult{
			RuleID:     RuleZeroConversionSpend,
			Type:       InsightTypeWaste,
			Scope:      domain.InsightScopeAccount,
			Impact:     impact,
			Confidence: domain.InsightLevelHigh,
			Effort:     domain.InsightLevelLow,
			Urgency:    domain.InsightLevelHigh,
			Summary:    fmt.Sprintf("%d campanha(s) gastaram %.2f %s sem nenhuma conversão", len(wasted), totalWaste, data.Currency),
			Explanation: fmt.Sprintf(
				"%d campanha(s) ativa(s) acumularam %.2f %s no período sem registrar conversões. "+
					"Investimento sem retorno mensurável deve ser pausado ou redirecionado.",
				len(wasted), totalWaste, data.Currency,
			),
			Recommendation: "Pause as campanhas sem conversão ou revise metas e rastreamento antes de continuar investindo.",
			DataSnapshot: map[string]any{
				"total_waste": utils.RoundWithTwoDecimalPlace(totalWaste),
				"campaigns":   wasted,
			},
		}
	}
}
