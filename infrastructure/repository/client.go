package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/marketing-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
)

const (
	clientsTable = "clients c"
)

type ClientRepository interface {
	GetClientByID(clientID string) (*domain.Client, error)
	GetClientByExternalID(externalID string) (*domain.Client, error)
	ListClients(availableStatus []domain.ClientStatus) ([]*domain.Client, error)
}

type clientRepository struct {
	conn *postgres.Connection
}

func NewClientRepository(conn *postgres.Connection) ClientRepository {
	return &clientRepository{
		conn: conn,
	}
}

func (r *clientRepository) GetClientByID(clientID string) (*domain.Client, error) {
	return r.getClient(squirrel.Eq{"c.id": clientID})
}

func (r *clientRepository) GetClientByExternalID(externalID string) (*domain.Client, error) {
	return r.getClient(squirrel.Eq{"c.external_id": externalID})
}

func (r *clientRepository) getClient(whereClause map[string]interface{}) (*domain.Client, error) {
	query, args, err := squirrel.
		Select("c.id, c.external_id, c.name, c.currency, c.status, c.created_at, c.updated_at").
		From(clientsTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	client := &domain.Client{}
	err = row.Scan(
		&client.ID,
		&client.ExternalID,
		&client.Name,
		&client.Currency,
		&client.Status,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
	}

	return client, nil
}

func (r *clientRepository) ListClients(availableStatus []domain.ClientStatus) ([]*domain.Client, error) {
	queryBuilder := squirrel.
		Select("c.id, c.external_id, c.name, c.currency, c.status, c.created_at, c.updated_at").
		From(clientsTable).
		OrderBy("c.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(availableStatus) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"c.status": availableStatus})
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

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client := &domain.Client{}
		err := rows.Scan(
			&client.ID,
			&client.ExternalID,
			&client.Name,
			&client.Currency,
			&client.Status,
			&client.CreatedAt,
			&client.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
		}
		clients = append(clients, client)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return clients, nil
}
