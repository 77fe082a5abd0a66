package insighting

import (
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/pkg/utils"
)

// levelWeight converte um nível em peso inteiro: low=1, medium=2, high=3.
// Nível desconhecido cai em medium para não zerar nem inflar o score.
func levelWeight(level domain.InsightLevel) float64 {
	switch level {
	case domain.InsightLevelLow:
		return 1
	case domain.InsightLevelHigh:
		return 3
	default:
		return 2
	}
}

// PriorityScore calcula a pontuação de triagem de um insight:
// (impacto × urgência) / esforço, com pesos 1..3. O intervalo resultante é
// [0.33, 9.0]. Calculado uma única vez na inserção.
func PriorityScore(impact, urgency, effort domain.InsightLevel) float64 {
	score := (levelWeight(impact) * levelWeight(urgency)) / levelWeight(effort)
	return utils.RoundWithTwoDecimalPlace(score)
}
