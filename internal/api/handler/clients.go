package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/marketing-ops-api/infrastructure/repository"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-ops-api/pkg/log"
)

// ListClients lista os clientes cadastrados. Por padrão retorna apenas os
// ativos; use ?status=all para incluir inativos.
func ListClients(repo repository.ClientRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		statuses := []domain.ClientStatus{domain.ClientStatusActive}
		if r.URL.Query().Get("status") == "all" {
			statuses = nil
		}

		clients, err := repo.ListClients(statuses)
		if err != nil {
			logger.WithError(err).Error("clients: failed to list clients")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar clientes", nil)
			return
		}

		logger.WithField("total", len(clients)).Info("clients: successfully listed clients")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(clients); err != nil {
			logger.WithError(err).Error("clients: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
