package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/insighting"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-ops-api/pkg/log"
	"github.com/vfg2006/marketing-ops-api/pkg/utils"
)

// GenerateClientInsights executa o ciclo completo de geração de insights para
// um cliente sob demanda. Datas ausentes caem na janela padrão de lookback.
func GenerateClientInsights(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		logger.WithField("client_id", id).Info("insights: generating insights for client")

		filters, err := parsePeriodFilter(r)
		if err != nil {
			logger.WithFields(log.Fields{
				"client_id": id,
				"error":     err.Error(),
			}).Warn("insights: invalid date parameters")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Datas inválidas. Use o formato YYYY-MM-DD.", nil)
			return
		}

		summary, err := service.RunGeneration(id, filters)
		if err != nil {
			logger.WithFields(log.Fields{
				"client_id": id,
				"error":     err.Error(),
			}).Error("insights: failed to generate insights for client")

			switch {
			case errors.Is(err, insighting.ErrClientNotFound):
				apiErrors.WriteError(w, apiErrors.ErrClientNotFound, "Cliente não encontrado", nil)
			case errors.Is(err, insighting.ErrAggregationFailed):
				apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao buscar métricas na plataforma de anúncios", nil)
			default:
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar insights", nil)
			}
			return
		}

		logger.WithFields(log.Fields{
			"client_id":     id,
			"fired":         len(summary.Results),
			"created":       summary.Created,
			"skipped":       summary.Skipped,
			"auto_resolved": summary.Resolved,
		}).Info("insights: generation completed for client")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logger.WithFields(log.Fields{
				"client_id": id,
				"error":     err.Error(),
			}).Error("insights: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetClientInsights lista os insights persistidos de um cliente, ordenados por
// priority_score e detected_at decrescentes
func GetClientInsights(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		logger.WithField("client_id", id).Info("insights: fetching insights for client")

		filter, err := parseInsightFilter(r)
		if err != nil {
			logger.WithFields(log.Fields{
				"client_id": id,
				"error":     err.Error(),
			}).Warn("insights: invalid filter parameters")

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		insights, err := service.GetInsights(id, filter)
		if err != nil {
			logger.WithFields(log.Fields{
				"client_id": id,
				"error":     err.Error(),
			}).Error("insights: failed to list insights for client")

			if errors.Is(err, insighting.ErrClientNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrClientNotFound, "Cliente não encontrado", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar insights", nil)
			return
		}

		logger.WithFields(log.Fields{
			"client_id": id,
			"total":     len(insights),
		}).Info("insights: successfully listed insights for client")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(insights); err != nil {
			logger.WithFields(log.Fields{
				"client_id": id,
				"error":     err.Error(),
			}).Error("insights: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

type updateStatusRequest struct {
	Status domain.InsightStatus `json:"status"`
	Actor  string               `json:"actor"`
}

// UpdateInsightStatus aplica uma transição de triagem feita por um usuário
func UpdateInsightStatus(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithFields(log.Fields{
				"insight_id": id,
				"error":      err.Error(),
			}).Warn("insights: invalid status update body")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if req.Status == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "O campo status é obrigatório", nil)
			return
		}

		if !req.Status.IsValid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Status desconhecido. Valores aceitos: new, picked_up, ignored, resolved", nil)
			return
		}

		logger.WithFields(log.Fields{
			"insight_id": id,
			"status":     req.Status,
			"actor":      req.Actor,
		}).Info("insights: updating insight status")

		if ok := service.UpdateInsightStatus(id, req.Status, req.Actor); !ok {
			apiErrors.WriteError(
				w,
				apiErrors.ErrInvalidStatusTransition,
				"Insight não encontrado ou transição de status não permitida",
				nil,
			)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     id,
			"status": req.Status,
		})
	})
}

// parsePeriodFilter monta o filtro de período a partir da query string.
// Ambas as datas ausentes resultam em filtro nulo (janela padrão).
func parsePeriodFilter(r *http.Request) (*domain.PeriodFilter, error) {
	startStr := r.URL.Query().Get("start_date")
	endStr := r.URL.Query().Get("end_date")

	if startStr == "" && endStr == "" {
		return nil, nil
	}

	if startStr == "" || endStr == "" {
		return nil, errors.New("start_date e end_date devem ser informadas juntas")
	}

	startDate, err := utils.ParseDate(startStr)
	if err != nil {
		return nil, err
	}

	endDate, err := utils.ParseDate(endStr)
	if err != nil {
		return nil, err
	}

	return &domain.PeriodFilter{
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// parseInsightFilter monta o filtro de listagem a partir da query string
func parseInsightFilter(r *http.Request) (*domain.InsightFilter, error) {
	filter := &domain.InsightFilter{}

	for _, statusStr := range r.URL.Query()["status"] {
		status := domain.InsightStatus(statusStr)
		if !status.IsValid() {
			return nil, errors.New("status desconhecido: " + statusStr)
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	filter.Type = r.URL.Query().Get("type")

	if impactStr := r.URL.Query().Get("impact"); impactStr != "" {
		impact := domain.InsightLevel(impactStr)
		if impact != domain.InsightLevelLow && impact != domain.InsightLevelMedium && impact != domain.InsightLevelHigh {
			return nil, errors.New("impacto desconhecido: " + impactStr)
		}
		filter.Impact = impact
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := utils.ParsePositiveInt(limitStr)
		if err != nil {
			return nil, errors.New("limite inválido: " + limitStr)
		}
		filter.Limit = limit
	}

	return filter, nil
}
