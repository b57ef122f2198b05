package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListResponse envoltorio de listados con el total de elementos.
type ListResponse[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}

// NewList construye la respuesta; nunca serializa data como null.
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Count: len(items), Data: items}
}
