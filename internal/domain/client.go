package domain

import "time"

// ClientStatus é o status de um cliente na agência
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

// Client representa um cliente da agência dono de uma conta de anúncios
type Client struct {
	ID         string       `json:"id"`
	ExternalID string       `json:"external_id"`
	Name       string       `json:"name"`
	Currency   string       `json:"currency"`
	Status     ClientStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
