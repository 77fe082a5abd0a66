package insighting

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-ops-api/infrastructure/repository"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/pkg/utils"
)

type service struct {
	cfg         *config.Config
	rules       []InsightRule
	insightRepo repository.InsightRepository
	clientRepo  repository.ClientRepository
	aggregator  MetricAggregator
}

func NewService(
	cfg *config.Config,
	insightRepo repository.InsightRepository,
	clientRepo repository.ClientRepository,
	aggregator MetricAggregator,
) Insighter {
	return &service{
		cfg:         cfg,
		rules:       newRules(cfg.InsightEngine),
		insightRepo: insightRepo,
		clientRepo:  clientRepo,
		aggregator:  aggregator,
	}
}

// GenerateInsights avalia cada regra registrada contra o snapshot, na ordem
// do registro. Uma regra que entra em pânico é registrada e pulada: as demais
// continuam avaliando normalmente.
func (s *service) GenerateInsights(data *domain.InsightData) []*domain.InsightResult {
	results := make([]*domain.InsightResult, 0)

	for _, rule := range s.rules {
		result := s.evaluateRule(rule, data)
		if result != nil {
			results = append(results, result)
		}
	}

	logrus.WithFields(logrus.Fields{
		"client_id": data.ClientID,
		"evaluated": len(s.rules),
		"fired":     len(results),
	}).Debug("insights: rules evaluated")

	return results
}

func (s *service) evaluateRule(rule InsightRule, data *domain.InsightData) (result *domain.InsightResult) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"rule_id":   rule.ID,
				"client_id": data.ClientID,
				"panic":     r,
			}).Error("insights: rule evaluation panicked, skipping rule")
			result = nil
		}
	}()

	return rule.Evaluate(data)
}

// SaveInsights persiste os resultados de uma avaliação com deduplicação por
// fingerprint. Duplicatas (pela consulta prévia ou pela constraint de
// unicidade em corrida) contam como Skipped; erros de persistência de um
// resultado são registrados e não interrompem os demais.
func (s *service) SaveInsights(clientID string, results []*domain.InsightResult) (*domain.SaveInsightsSummary, error) {
	if clientID == "" {
		return nil, ErrClientIDRequired
	}

	summary := &domain.SaveInsightsSummary{}
	now := time.Now().UTC()

	for _, result := range results {
		fingerprint := domain.InsightFingerprint(result.RuleID, result.ScopeID, now)

		existing, err := s.insightRepo.GetByFingerprint(clientID, fingerprint)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"client_id":   clientID,
				"fingerprint": fingerprint,
			}).WithError(err).Error("insights: error checking fingerprint, skipping result")
			continue
		}
		if existing != nil {
			summary.Skipped++
			continue
		}

		insight, err := s.buildInsight(clientID, result, fingerprint, now)
		if err != nil {
			logrus.WithField("client_id", clientID).
				WithError(err).Error("insights: error generating insight ID")
			continue
		}

		if err := s.insightRepo.Insert(insight); err != nil {
			if repository.IsUniqueViolation(err) {
				// Outra execução concorrente inseriu o mesmo fingerprint
				summary.Skipped++
				continue
			}
			logrus.WithFields(logrus.Fields{
				"client_id":   clientID,
				"fingerprint": fingerprint,
			}).WithError(err).Error("insights: error persisting insight")
			continue
		}

		summary.Created++
	}

	logrus.WithFields(logrus.Fields{
		"client_id": clientID,
		"created":   summary.Created,
		"skipped":   summary.Skipped,
	}).Info("insights: insights saved")

	return summary, nil
}

func (s *service) buildInsight(clientID string, result *domain.InsightResult, fingerprint string, now time.Time) (*domain.Insight, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	expirationDays := s.cfg.InsightEngine.ExpirationDays

	return &domain.Insight{
		ID:             id,
		ClientID:       clientID,
		RuleID:         result.RuleID,
		Type:           result.Type,
		Scope:          result.Scope,
		ScopeID:        result.ScopeID,
		ScopeName:      result.ScopeName,
		Impact:         result.Impact,
		Confidence:     result.Confidence,
		Effort:         result.Effort,
		Urgency:        result.Urgency,
		PriorityScore:  PriorityScore(result.Impact, result.Urgency, result.Effort),
		Summary:        result.Summary,
		Explanation:    result.Explanation,
		Recommendation: result.Recommendation,
		DataSnapshot:   result.DataSnapshot,
		Fingerprint:    fingerprint,
		Status:         domain.InsightStatusNew,
		DetectedAt:     now,
		ExpiresAt:      now.AddDate(0, 0, expirationDays),
	}, nil
}

// AutoResolveStaleInsights resolve os insights "new" do cliente cujas regras
// não dispararam na execução corrente. Insights em triagem (picked_up,
// ignored, resolved) nunca são tocados.
func (s *service) AutoResolveStaleInsights(clientID string, activeRuleIDs []string) (int64, error) {
	if clientID == "" {
		return 0, ErrClientIDRequired
	}

	resolved, err := s.insightRepo.ResolveStaleByRuleIDs(clientID, activeRuleIDs, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if resolved > 0 {
		logrus.WithFields(logrus.Fields{
			"client_id": clientID,
			"resolved":  resolved,
		}).Info("insights: stale insights auto-resolved")
	}

	return resolved, nil
}

func (s *service) GetInsights(clientID string, filter *domain.InsightFilter) ([]*domain.Insight, error) {
	if clientID == "" {
		return nil, ErrClientIDRequired
	}

	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	return s.insightRepo.List(clientID, filter)
}

// UpdateInsightStatus aplica uma transição de triagem. Retorna false quando o
// insight não existe, o status é desconhecido ou a transição viola a máquina
// de estados.
func (s *service) UpdateInsightStatus(insightID string, status domain.InsightStatus, actor string) bool {
	if !status.IsValid() {
		logrus.WithFields(logrus.Fields{
			"insight_id": insightID,
			"status":     status,
		}).Warn("insights: unknown status requested")
		return false
	}

	insight, err := s.insightRepo.GetByID(insightID)
	if err != nil {
		logrus.WithField("insight_id", insightID).
			WithError(err).Error("insights: error fetching insight for status update")
		return false
	}
	if insight == nil {
		return false
	}

	if !insight.Status.CanTransitionTo(status) {
		logrus.WithFields(logrus.Fields{
			"insight_id": insightID,
			"from":       insight.Status,
			"to":         status,
		}).Warn("insights: invalid status transition rejected")
		return false
	}

	now := time.Now().UTC()
	insight.Status = status

	switch status {
	case domain.InsightStatusPickedUp:
		insight.PickedUpAt = &now
		if actor != "" {
			insight.PickedUpBy = &actor
		}
	case domain.InsightStatusResolved:
		insight.ResolvedAt = &now
		if actor != "" {
			insight.ResolvedBy = &actor
		}
	}

	if err := s.insightRepo.UpdateStatus(insight); err != nil {
		logrus.WithField("insight_id", insightID).
			WithError(err).Error("insights: error persisting status update")
		return false
	}

	return true
}

// RunGeneration executa o ciclo completo para um cliente: agrega métricas,
// avalia as regras, persiste os resultados e auto-resolve os insights cujas
// regras pararam de disparar. Sem filtros, usa a janela padrão de lookback
// terminando ontem.
func (s *service) RunGeneration(clientID string, filters *domain.PeriodFilter) (*domain.GenerationSummary, error) {
	if clientID == "" {
		return nil, ErrClientIDRequired
	}

	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	if filters == nil || filters.StartDate == nil || filters.EndDate == nil ||
		filters.StartDate.IsZero() || filters.EndDate.IsZero() {
		filters = s.defaultPeriod()
	}

	data, err := s.aggregator.BuildInsightData(client, filters)
	if err != nil {
		logrus.WithField("client_id", clientID).
			WithError(err).Error("insights: error aggregating metrics")
		return nil, ErrAggregationFailed
	}

	results := s.GenerateInsights(data)

	saveSummary, err := s.SaveInsights(clientID, results)
	if err != nil {
		return nil, err
	}

	activeRuleIDs := make([]string, 0, len(results))
	for _, result := range results {
		activeRuleIDs = append(activeRuleIDs, result.RuleID)
	}

	resolved, err := s.AutoResolveStaleInsights(clientID, activeRuleIDs)
	if err != nil {
		// A geração em si funcionou; a auto-resolução fica para a próxima execução
		logrus.WithField("client_id", clientID).
			WithError(err).Error("insights: error auto-resolving stale insights")
	}

	return &domain.GenerationSummary{
		ClientID:  clientID,
		Evaluated: len(s.rules),
		Results:   results,
		Created:   saveSummary.Created,
		Skipped:   saveSummary.Skipped,
		Resolved:  resolved,
	}, nil
}

// defaultPeriod monta a janela padrão de análise: lookback em dias terminando
// ontem, para não comparar um dia corrente ainda incompleto.
func (s *service) defaultPeriod() *domain.PeriodFilter {
	end := utils.TruncateToDay(time.Now().UTC().AddDate(0, 0, -1))
	start := end.AddDate(0, 0, -(s.cfg.InsightGenerationSync.LookbackDays - 1))

	return &domain.PeriodFilter{
		StartDate: &start,
		EndDate:   &end,
	}
}
