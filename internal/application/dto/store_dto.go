package dto

import "time"

// CreateStoreRequest entrada para crear una tienda (solo admin). El código
// se genera en el servidor, nunca lo elige el cliente.
type CreateStoreRequest struct {
	Name string `json:"name" validate:"required,min=2,max=200"`
}

// UpdateStoreRequest entrada para renombrar una tienda. El código no se
// puede cambiar: es la credencial de login impresa/compartida.
type UpdateStoreRequest struct {
	Name string `json:"name" validate:"required,min=2,max=200"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
