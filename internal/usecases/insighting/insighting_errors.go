package insighting

import "errors"

// Erros específicos para o contexto de insights
var (
	ErrClientNotFound    = errors.New("client not found")
	ErrClientIDRequired  = errors.New("client ID is required")
	ErrAggregationFailed = errors.New("error aggregating metrics from ads platform")
)
