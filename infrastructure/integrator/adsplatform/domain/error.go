package domain

import "fmt"

// APIError é o corpo de erro retornado pela API da plataforma de anúncios
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ads platform error %d: %s", e.Code, e.Message)
}
