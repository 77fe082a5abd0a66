package domain

import (
	"fmt"
	"time"
)

// InsightStatus representa o estado de um insight no fluxo de triagem
type InsightStatus string

const (
	InsightStatusNew      InsightStatus = "new"
	InsightStatusPickedUp InsightStatus = "picked_up"
	InsightStatusIgnored  InsightStatus = "ignored"
	InsightStatusResolved InsightStatus = "resolved"
)

// InsightLevel é o nível usado para impacto, confiança, esforço e urgência
type InsightLevel string

const (
	InsightLevelLow    InsightLevel = "low"
	InsightLevelMedium InsightLevel = "medium"
	InsightLevelHigh   InsightLevel = "high"
)

// InsightScope indica se o insight se refere à conta inteira ou a uma campanha
type InsightScope string

const (
	InsightScopeAccount  InsightScope = "account"
	InsightScopeCampaign InsightScope = "campaign"
)

// CanTransitionTo valida a máquina de estados de triagem:
// new -> picked_up | ignored | resolved, picked_up -> resolved.
// "resolved" e "ignored" são estados terminais.
func (s InsightStatus) CanTransitionTo(next InsightStatus) bool {
	switch s {
	case InsightStatusNew:
		return next == InsightStatusPickedUp || next == InsightStatusIgnored || next == InsightStatusResolved
	case InsightStatusPickedUp:
		return next == InsightStatusResolved
	default:
		return false
	}
}

// IsValid verifica se o status informado é um dos valores conhecidos
func (s InsightStatus) IsValid() bool {
	switch s {
	case InsightStatusNew, InsightStatusPickedUp, InsightStatusIgnored, InsightStatusResolved:
		return true
	}
	return false
}

// InsightResult é o resultado efêmero produzido por uma regra durante a avaliação.
// Ainda não possui identidade nem estado de persistência.
type InsightResult struct {
	RuleID         string         `json:"rule_id"`
	Type           string         `json:"type"`
	Scope          InsightScope   `json:"scope"`
	ScopeID        string         `json:"scope_id,omitempty"`
	ScopeName      string         `json:"scope_name,omitempty"`
	Impact         InsightLevel   `json:"impact"`
	Confidence     InsightLevel   `json:"confidence"`
	Effort         InsightLevel   `json:"effort"`
	Urgency        InsightLevel   `json:"urgency"`
	Summary        string         `json:"summary"`
	Explanation    string         `json:"explanation"`
	Recommendation string         `json:"recommendation"`
	DataSnapshot   map[string]any `json:"data_snapshot,omitempty"`
}

// Insight é o registro persistido no banco, com deduplicação por fingerprint
type Insight struct {
	ID             string         `json:"id"`
	ClientID       string         `json:"client_id"`
	RuleID         string         `json:"rule_id"`
	Type           string         `json:"type"`
	Scope          InsightScope   `json:"scope"`
	ScopeID        string         `json:"scope_id,omitempty"`
	ScopeName      string         `json:"scope_name,omitempty"`
	Impact         InsightLevel   `json:"impact"`
	Confidence     InsightLevel   `json:"confidence"`
	Effort         InsightLevel   `json:"effort"`
	Urgency        InsightLevel   `json:"urgency"`
	PriorityScore  float64        `json:"priority_score"`
	Summary        string         `json:"summary"`
	Explanation    string         `json:"explanation"`
	Recommendation string         `json:"recommendation"`
	DataSnapshot   map[string]any `json:"data_snapshot,omitempty"`
	Fingerprint    string         `json:"fingerprint"`
	Status         InsightStatus  `json:"status"`
	DetectedAt     time.Time      `json:"detected_at"`
	ExpiresAt      time.Time      `json:"expires_at"`
	PickedUpAt     *time.Time     `json:"picked_up_at,omitempty"`
	PickedUpBy     *string        `json:"picked_up_by,omitempty"`
	ResolvedAt     *time.Time     `json:"resolved_at,omitempty"`
	ResolvedBy     *string        `json:"resolved_by,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// InsightFingerprint monta a chave natural de deduplicação de um insight
// dentro de um dia-calendário: "{ruleId}:{scopeId|account}:{YYYY-MM-DD}".
// A data é truncada em UTC para que duas execuções no mesmo dia colidam.
func InsightFingerprint(ruleID, scopeID string, date time.Time) string {
	target := scopeID
	if target == "" {
		target = string(InsightScopeAccount)
	}
	return fmt.Sprintf("%s:%s:%s", ruleID, target, date.UTC().Format(time.DateOnly))
}

// InsightFilter define os filtros da listagem de insights
type InsightFilter struct {
	Statuses []InsightStatus
	Type     string
	Impact   InsightLevel
	Limit    int
}

// SaveInsightsSummary contém o resultado de uma gravação em lote
type SaveInsightsSummary struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// GenerationSummary é a resposta de uma execução completa de geração de insights
type GenerationSummary struct {
	ClientID  string           `json:"client_id"`
	Evaluated int              `json:"evaluated_rules"`
	Results   []*InsightResult `json:"results"`
	Created   int              `json:"created"`
	Skipped   int              `json:"skipped"`
	Resolved  int64            `json:"auto_resolved"`
}
