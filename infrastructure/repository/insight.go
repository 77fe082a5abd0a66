package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/marketing-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
)

const (
	insightsTable = "insights i"

	// Código de erro do Postgres para violação de constraint de unicidade
	uniqueViolationCode = "23505"
)

var insightColumns = []string{
	"i.id", "i.client_id", "i.rule_id", "i.type", "i.scope", "i.scope_id", "i.scope_name",
	"i.impact", "i.confidence", "i.effort", "i.urgency", "i.priority_score",
	"i.summary", "i.explanation", "i.recommendation", "i.data_snapshot",
	"i.fingerprint", "i.status", "i.detected_at", "i.expires_at",
	"i.picked_up_at", "i.picked_up_by", "i.resolved_at", "i.resolved_by",
	"i.created_at", "i.updated_at",
}

type InsightRepository interface {
	GetByFingerprint(clientID, fingerprint string) (*domain.Insight, error)
	GetByID(insightID string) (*domain.Insight, error)
	Insert(insight *domain.Insight) error
	List(clientID string, filter *domain.InsightFilter) ([]*domain.Insight, error)
	UpdateStatus(insight *domain.Insight) error
	ResolveStaleByRuleIDs(clientID string, activeRuleIDs []string, resolvedAt time.Time) (int64, error)
}

type insightRepository struct {
	conn *postgres.Connection
}

func NewInsightRepository(conn *postgres.Connection) InsightRepository {
	return &insightRepository{
		conn: conn,
	}
}

// IsUniqueViolation indica se o erro veio da constraint de unicidade
// (client_id, fingerprint). O motor trata esse caso como duplicata benigna.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	pqErr, ok := err.(*pq.Error)
	return ok && string(pqErr.Code) == uniqueViolationCode
}

func (r *insightRepository) GetByFingerprint(clientID, fingerprint string) (*domain.Insight, error) {
	query, args, err := squirrel.
		Select(insightColumns...).
		From(insightsTable).
		Where(squirrel.Eq{"i.client_id": clientID, "i.fingerprint": fingerprint}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	insight, err := r.scanInsight(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear insight: %w", err)
	}

	return insight, nil
}

func (r *insightRepository) GetByID(insightID string) (*domain.Insight, error) {
	query, args, err := squirrel.
		Select(insightColumns...).
		From(insightsTable).
		Where(squirrel.Eq{"i.id": insightID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	insight, err := r.scanInsight(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear insight: %w", err)
	}

	return insight, nil
}

func (r *insightRepository) Insert(insight *domain.Insight) error {
	var snapshotJSON []byte
	var err error

	if insight.DataSnapshot != nil {
		snapshotJSON, err = json.Marshal(insight.DataSnapshot)
		if err != nil {
			return fmt.Errorf("erro ao serializar data_snapshot para JSON: %w", err)
		}
	}

	query := squirrel.StatementBuilder.
		Insert("insights").
		Columns(
			"id", "client_id", "rule_id", "type", "scope", "scope_id", "scope_name",
			"impact", "confidence", "effort", "urgency", "priority_score",
			"summary", "explanation", "recommendation", "data_snapshot",
			"fingerprint", "status", "detected_at", "expires_at",
		).
		Values(
			insight.ID,
			insight.ClientID,
			insight.RuleID,
			insight.Type,
			insight.Scope,
			insight.ScopeID,
			insight.ScopeName,
			insight.Impact,
			insight.Confidence,
			insight.Effort,
			insight.Urgency,
			insight.PriorityScore,
			insight.Summary,
			insight.Explanation,
			insight.Recommendation,
			snapshotJSON,
			insight.Fingerprint,
			insight.Status,
			insight.DetectedAt,
			insight.ExpiresAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		// Violações de unicidade sobem sem embrulho para o motor identificar
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *insightRepository) List(clientID string, filter *domain.InsightFilter) ([]*domain.Insight, error) {
	queryBuilder := squirrel.
		Select(insightColumns...).
		From(insightsTable).
		Where(squirrel.Eq{"i.client_id": clientID}).
		OrderBy("i.priority_score DESC", "i.detected_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter != nil {
		if len(filter.Statuses) > 0 {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"i.status": filter.Statuses})
		}
		if filter.Type != "" {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"i.type": filter.Type})
		}
		if filter.Impact != "" {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"i.impact": filter.Impact})
		}
		if filter.Limit > 0 {
			queryBuilder = queryBuilder.Limit(uint64(filter.Limit))
		}
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	insights := make([]*domain.Insight, 0)
	for rows.Next() {
		insight, err := r.scanInsight(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear insights: %w", err)
		}
		insights = append(insights, insight)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return insights, nil
}

func (r *insightRepository) UpdateStatus(insight *domain.Insight) error {
	queryBuilder := squirrel.
		Update("insights").
		Set("status", insight.Status).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": insight.ID}).
		PlaceholderFormat(squirrel.Dollar)

	if insight.PickedUpAt != nil {
		queryBuilder = queryBuilder.Set("picked_up_at", *insight.PickedUpAt)
	}
	if insight.PickedUpBy != nil {
		queryBuilder = queryBuilder.Set("picked_up_by", *insight.PickedUpBy)
	}
	if insight.ResolvedAt != nil {
		queryBuilder = queryBuilder.Set("resolved_at", *insight.ResolvedAt)
	}
	if insight.ResolvedBy != nil {
		queryBuilder = queryBuilder.Set("resolved_by", *insight.ResolvedBy)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("insight não encontrado: %s", insight.ID)
	}

	return nil
}

// ResolveStaleByRuleIDs resolve em lote os insights "new" do cliente cujas
// regras não dispararam na execução corrente. Um único UPDATE, não um loop
// por linha. Lista vazia de regras ativas resolve todos os "new".
func (r *insightRepository) ResolveStaleByRuleIDs(clientID string, activeRuleIDs []string, resolvedAt time.Time) (int64, error) {
	queryBuilder := squirrel.
		Update("insights").
		Set("status", domain.InsightStatusResolved).
		Set("resolved_at", resolvedAt).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"client_id": clientID, "status": domain.InsightStatusNew}).
		PlaceholderFormat(squirrel.Dollar)

	if len(activeRuleIDs) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.NotEq{"rule_id": activeRuleIDs})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *insightRepository) scanInsight(row rowScanner) (*domain.Insight, error) {
	insight := &domain.Insight{}
	var snapshotJSON []byte

	err := row.Scan(
		&insight.ID,
		&insight.ClientID,
		&insight.RuleID,
		&insight.Type,
		&insight.Scope,
		&insight.ScopeID,
		&insight.ScopeName,
		&insight.Impact,
		&insight.Confidence,
		&insight.Effort,
		&insight.Urgency,
		&insight.PriorityScore,
		&insight.Summary,
		&insight.Explanation,
		&insight.Recommendation,
		&snapshotJSON,
		&insight.Fingerprint,
		&insight.Status,
		&insight.DetectedAt,
		&insight.ExpiresAt,
		&insight.PickedUpAt,
		&insight.PickedUpBy,
		&insight.ResolvedAt,
		&insight.ResolvedBy,
		&insight.CreatedAt,
		&insight.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if snapshotJSON != nil {
		snapshot := make(map[string]any)
		if err := json.Unmarshal(snapshotJSON, &snapshot); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de data_snapshot: %w", err)
		}
		insight.DataSnapshot = snapshot
	}

	return insight, nil
}
