package insighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
)

func testEngineConfig() config.InsightEngine {
	return config.InsightEngine{
		CPAIncreaseThreshold:        25,
		BudgetLostShareThreshold:    15,
		RankLostShareThreshold:      30,
		RankLostShareHighThreshold:  50,
		ConversionDropThreshold:     20,
		ConversionDropHighThreshold: 40,
		StableCostTolerance:         10,
		CampaignCostShareThreshold:  20,
		CampaignConvDropThreshold:   30,
		CPAEfficiencyThreshold:      20,
		MinWastedSpend:              50,
		HighWastedSpend:             200,
		ExpirationDays:              7,
	}
}

func findRule(t *testing.T, ruleID string) InsightRule {
	t.Helper()

	for _, rule := range newRules(testEngineConfig()) {
		if rule.ID == ruleID {
			return rule
		}
	}

	t.Fatalf("regra não registrada: %s", ruleID)
	return InsightRule{}
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestRuleCPAIncreaseWithBudgetLimit(t *testing.T) {
	rule := findRule(t, RuleCPAIncreaseWithBudgetLimit)

	tests := []struct {
		name     string
		data     *domain.InsightData
		fires    bool
		validate func(t *testing.T, result *domain.InsightResult)
	}{
		{
			name: "CPA subiu 33% com 20% de impressões perdidas por orçamento - dispara",
			data: &domain.InsightData{
				ClientID:                  "cl-001",
				Currency:                  "EUR",
				CPA:                       10.0,
				PreviousCPA:               7.5,
				ImpressionShareLostBudget: 20,
			},
			fires: true,
			validate: func(t *testing.T, result *domain.InsightResult) {
				assert.Equal(t, domain.InsightScopeAccount, result.Scope)
				assert.Equal(t, domain.InsightLevelHigh, result.Impact)
				assert.Equal(t, domain.InsightLevelLow, result.Effort)
				assert.Equal(t, domain.InsightLevelHigh, result.Urgency)
				assert.Equal(t, 33.33, result.DataSnapshot["cpa_change_percent"])
				assert.Equal(t, 10.0, result.DataSnapshot["cpa"])
				assert.Equal(t, 7.5, result.DataSnapshot["previous_cpa"])
			},
		},
		{
			name: "CPA subiu 33% mas a perda por orçamento é de apenas 10% - não dispara",
			data: &domain.InsightData{
				CPA:                       10.0,
				PreviousCPA:               7.5,
				ImpressionShareLostBudget: 10,
			},
			fires: false,
		},
		{
			name: "CPA subiu apenas 20% - não dispara",
			data: &domain.InsightData{
				CPA:                       9.0,
				PreviousCPA:               7.5,
				ImpressionShareLostBudget: 20,
			},
			fires: false,
		},
		{
			name: "CPA anterior zero conta como variação 0 - não dispara",
			data: &domain.InsightData{
				CPA:                       10.0,
				PreviousCPA:               0,
				ImpressionShareLostBudget: 20,
			},
			fires: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := rule.Evaluate(tt.data)

			if !tt.fires {
				assert.Nil(t, result)
				return
			}

			require.NotNil(t, result)
			assert.Equal(t, RuleCPAIncreaseWithBudgetLimit, result.RuleID)
			if tt.validate != nil {
				tt.validate(t, result)
			}
		})
	}
}

func TestRuleHighRankLoss(t *testing.T) {
	rule := findRule(t, RuleHighRankLoss)

	tests := []struct {
		name           string
		lostRank       float64
		fires          bool
		expectedImpact domain.InsightLevel
	}{
		{
			name:           "Perda de 35% dispara com impacto médio",
			lostRank:       35,
			fires:          true,
			expectedImpact: domain.InsightLevelMedium,
		},
		{
			name:           "Perda de 55% dispara com impacto alto",
			lostRank:       55,
			fires:          true,
			expectedImpact: domain.InsightLevelHigh,
		},
		{
			name:     "Perda de exatamente 30% não dispara",
			lostRank: 30,
			fires:    false,
		},
		{
			name:     "Perda de 10% não dispara",
			lostRank: 10,
			fires:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := rule.Evaluate(&domain.InsightData{ImpressionShareLostRank: tt.lostRank})

			if !tt.fires {
				assert.Nil(t, result)
				return
			}

			require.NotNil(t, result)
			assert.Equal(t, tt.expectedImpact, result.Impact)
			assert.Equal(t, domain.InsightLevelHigh, result.Confidence)
			assert.Equal(t, tt.lostRank, result.DataSnapshot["impression_share_lost_rank"])
		})
	}
}

func TestRuleConversionDropStableSpend(t *testing.T) {
	rule := findRule(t, RuleConversionDropStableSpend)

	tests := []struct {
		name           string
		data           *domain.InsightData
		fires          bool
		expectedImpact domain.InsightLevel
	}{
		{
			name: "Queda de 20% com custo estável dispara com impacto médio",
			data: &domain.InsightData{
				Conversions:         80,
				PreviousConversions: 100,
				Cost:                1050,
				PreviousCost:        1000,
			},
			fires:          true,
			expectedImpact: domain.InsightLevelMedium,
		},
		{
			name: "Queda de 45% com custo estável dispara com impacto alto",
			data: &domain.InsightData{
				Conversions:         55,
				PreviousConversions: 100,
				Cost:                1000,
				PreviousCost:        1000,
			},
			fires:          true,
			expectedImpact: domain.InsightLevelHigh,
		},
		{
			name: "Queda de 30% mas o custo também caiu 15% - não dispara",
			data: &domain.InsightData{
				Conversions:         70,
				PreviousConversions: 100,
				Cost:                850,
				PreviousCost:        1000,
			},
			fires: false,
		},
		{
			name: "Queda de apenas 15% - não dispara",
			data: &domain.InsightData{
				Conversions:         85,
				PreviousConversions: 100,
				Cost:                1000,
				PreviousCost:        1000,
			},
			fires: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := rule.Evaluate(tt.data)

			if !tt.fires {
				assert.Nil(t, result)
				return
			}

			require.NotNil(t, result)
			assert.Equal(t, tt.expectedImpact, result.Impact)
			assert.Equal(t, domain.InsightLevelMedium, result.Confidence)
		})
	}
}

func TestRuleHighSpendCampaignConvDrop(t *testing.T) {
	rule := findRule(t, RuleHighSpendCampaignConvDrop)

	t.Run("Campanha com 30% do custo e queda de 30% de conversões dispara", func(t *testing.T) {
		data := &domain.InsightData{
			Cost: 1000,
			Campaigns: []domain.CampaignData{
				{
					ID:                  "cmp-1",
					Name:                "Search - Marca",
					Cost:                300,
					Conversions:         7,
					PreviousConversions: 10,
				},
			},
		}

		result := rule.Evaluate(data)
		require.NotNil(t, result)

		assert.Equal(t, domain.InsightScopeCampaign, result.Scope)
		assert.Equal(t, "cmp-1", result.ScopeID)
		assert.Equal(t, "Search - Marca", result.ScopeName)
		assert.Equal(t, 30.0, result.DataSnapshot["cost_share_percent"])
		assert.Equal(t, -30.0, result.DataSnapshot["conversion_change_percent"])
	})

	t.Run("Reporta a primeira campanha qualificada quando há mais de uma", func(t *testing.T) {
		data := &domain.InsightData{
			Cost: 1000,
			Campaigns: []domain.CampaignData{
				{ID: "cmp-1", Name: "A", Cost: 300, Conversions: 5, PreviousConversions: 10},
				{ID: "cmp-2", Name: "B", Cost: 250, Conversions: 4, PreviousConversions: 10},
			},
		}

		result := rule.Evaluate(data)
		require.NotNil(t, result)
		assert.Equal(t, "cmp-1", result.ScopeID)
	})

	t.Run("Campanha pequena não dispara mesmo com queda grande", func(t *testing.T) {
		data := &domain.InsightData{
			Cost: 1000,
			Campaigns: []domain.CampaignData{
				{ID: "cmp-1", Cost: 100, Conversions: 2, PreviousConversions: 10},
			},
		}

		assert.Nil(t, rule.Evaluate(data))
	})

	t.Run("Conta sem custo não dispara", func(t *testing.T) {
		data := &domain.InsightData{
			Cost: 0,
			Campaigns: []domain.CampaignData{
				{ID: "cmp-1", Cost: 0, Conversions: 2, PreviousConversions: 10},
			},
		}

		assert.Nil(t, rule.Evaluate(data))
	})
}

func TestRuleBudgetLimitedHighPerformer(t *testing.T) {
	rule := findRule(t, RuleBudgetLimitedHighPerformer)

	t.Run("Campanha limitada com CPA 30% melhor que a conta dispara", func(t *testing.T) {
		data := &domain.InsightData{
			Currency: "EUR",
			CPA:      10.0,
			Campaigns: []domain.CampaignData{
				{
					ID:            "cmp-9",
					Name:          "Shopping - Promoções",
					BudgetLimited: true,
					Conversions:   10,
					Cost:          70, // CPA 7.0, abaixo do teto de 8.0
					Budget:        50,
				},
			},
		}

		result := rule.Evaluate(data)
		require.NotNil(t, result)

		assert.Equal(t, domain.InsightScopeCampaign, result.Scope)
		assert.Equal(t, "cmp-9", result.ScopeID)
		assert.Equal(t, domain.InsightLevelLow, result.Effort)
		assert.Equal(t, 7.0, result.DataSnapshot["campaign_cpa"])
		assert.Equal(t, 10.0, result.DataSnapshot["account_cpa"])
		assert.NotContains(t, result.DataSnapshot, "recommended_budget")
	})

	t.Run("Orçamento recomendado pela plataforma entra na recomendação", func(t *testing.T) {
		data := &domain.InsightData{
			Currency: "EUR",
			CPA:      10.0,
			Campaigns: []domain.CampaignData{
				{
					ID:                "cmp-9",
					Name:              "Shopping - Promoções",
					BudgetLimited:     true,
					Conversions:       10,
					Cost:              70,
					Budget:            50,
					RecommendedBudget: floatPtr(85),
				},
			},
		}

		result := rule.Evaluate(data)
		require.NotNil(t, result)

		assert.Equal(t, 85.0, result.DataSnapshot["recommended_budget"])
		assert.Contains(t, result.Recommendation, "85.00")
	})

	t.Run("CPA da campanha acima do teto de eficiência não dispara", func(t *testing.T) {
		data := &domain.InsightData{
			CPA: 10.0,
			Campaigns: []domain.CampaignData{
				{ID: "cmp-9", BudgetLimited: true, Conversions: 10, Cost: 90}, // CPA 9.0 > 8.0
			},
		}

		assert.Nil(t, rule.Evaluate(data))
	})

	t.Run("Campanha sem limitação de orçamento não dispara", func(t *testing.T) {
		data := &domain.InsightData{
			CPA: 10.0,
			Campaigns: []domain.CampaignData{
				{ID: "cmp-9", BudgetLimited: false, Conversions: 10, Cost: 50},
			},
		}

		assert.Nil(t, rule.Evaluate(data))
	})

	t.Run("Campanha sem conversões não dispara", func(t *testing.T) {
		data := &domain.InsightData{
			CPA: 10.0,
			Campaigns: []domain.CampaignData{
				{ID: "cmp-9", BudgetLimited: true, Conversions: 0, Cost: 50},
			},
		}

		assert.Nil(t, rule.Evaluate(data))
	})
}

func TestRuleZeroConversionSpend(t *testing.T) {
	rule := findRule(t, RuleZeroConversionSpend)

	t.Run("Duas campanhas com 60 e 80 de custo somam 140 e impacto médio", func(t *testing.T) {
		data := &domain.InsightData{
			Currency: "EUR",
			Campaigns: []domain.CampaignData{
				{ID: "cmp-1", Name: "A", Status: domain.CampaignStatusEnabled, Conversions: 0, Cost: 60},
				{ID: "cmp-2", Name: "B", Status: domain.CampaignStatusEnabled, Conversions: 0, Cost: 80},
			},
		}

		result := rule.Evaluate(data)
		require.NotNil(t, result)

		assert.Equal(t, domain.InsightScopeAccount, result.Scope)
		assert.Equal(t, domain.InsightLevelMedium, result.Impact)
		assert.Equal(t, 140.0, result.DataSnapshot["total_waste"])

		wasted, ok := result.DataSnapshot["campaigns"].([]map[string]any)
		require.True(t, ok)
		assert.Len(t, wasted, 2)
	})

	t.Run("Desperdício total acima de 200 vira impacto alto", func(t *testing.T) {
		data := &domain.InsightData{
			Campaigns: []domain.CampaignData{
				{ID: "cmp-1", Status: domain.CampaignStatusEnabled, Conversions: 0, Cost: 150},
				{ID: "cmp-2", Status: domain.CampaignStatusEnabled, Conversions: 0, Cost: 120},
			},
		}

		result := rule.Evaluate(data)
		require.NotNil(t, result)
		assert.Equal(t, domain.InsightLevelHigh, result.Impact)
		assert.Equal(t, 270.0, result.DataSnapshot["total_waste"])
	})

	t.Run("Campanha pausada não conta como desperdício", func(t *testing.T) {
		data := &domain.InsightData{
			Campaigns: []domain.CampaignData{
				{ID: "cmp-1", Status: domain.CampaignStatusPaused, Conversions: 0, Cost: 300},
			},
		}

		assert.Nil(t, rule.Evaluate(data))
	})

	t.Run("Custo no limite mínimo não conta", func(t *testing.T) {
		data := &domain.InsightData{
			Campaigns: []domain.CampaignData{
				{ID: "cmp-1", Status: domain.CampaignStatusEnabled, Conversions: 0, Cost: 50},
			},
		}

		assert.Nil(t, rule.Evaluate(data))
	})

	t.Run("Campanha com conversões não conta", func(t *testing.T) {
		data := &domain.InsightData{
			Campaigns: []domain.CampaignData{
				{ID: "cmp-1", Status: domain.CampaignStatusEnabled, Conversions: 3, Cost: 500},
			},
		}

		assert.Nil(t, rule.Evaluate(data))
	})
}
