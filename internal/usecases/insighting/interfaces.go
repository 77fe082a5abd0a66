package insighting

import (
	"github.com/vfg2006/marketing-ops-api/internal/domain"
)

// MetricAggregator define a interface para montar o snapshot de métricas
// que alimenta o motor de insights
type MetricAggregator interface {
	// BuildInsightData agrega as métricas do período corrente e do período de
	// comparação para um cliente específico
	BuildInsightData(client *domain.Client, filters *domain.PeriodFilter) (*domain.InsightData, error)
}

// Insighter é a interface completa do motor de insights
type Insighter interface {
	// GenerateInsights avalia todas as regras registradas contra o snapshot
	GenerateInsights(data *domain.InsightData) []*domain.InsightResult

	// SaveInsights persiste os resultados com deduplicação por fingerprint
	SaveInsights(clientID string, results []*domain.InsightResult) (*domain.SaveInsightsSummary, error)

	// AutoResolveStaleInsights resolve os insights "new" cujas regras não
	// dispararam na execução corrente
	AutoResolveStaleInsights(clientID string, activeRuleIDs []string) (int64, error)

	// GetInsights lista os insights persistidos de um cliente
	GetInsights(clientID string, filter *domain.InsightFilter) ([]*domain.Insight, error)

	// UpdateInsightStatus aplica uma transição de triagem feita por um usuário
	UpdateInsightStatus(insightID string, status domain.InsightStatus, actor string) bool

	// RunGeneration executa o ciclo completo: agregar, avaliar, salvar e
	// auto-resolver para um cliente
	RunGeneration(clientID string, filters *domain.PeriodFilter) (*domain.GenerationSummary, error)
}
