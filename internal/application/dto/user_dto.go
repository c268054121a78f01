package dto

import "time"

// CreateUserRequest entrada para crear un usuario de personal (solo admin).
// El código se genera en el servidor, con unicidad por cuenta.
type CreateUserRequest struct {
	Name     string   `json:"name" validate:"required,min=2,max=200"`
	Role     string   `json:"role" validate:"required,oneof=admin staff"`
	StoreIDs []string `json:"store_ids" validate:"omitempty,dive,uuid"`
}

// UpdateUserRequest entrada para editar nombre y rol.
type UpdateUserRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=200"`
	Role *string `json:"role" validate:"omitempty,oneof=admin staff"`
}

// UpdateUserStoresRequest reemplaza los mappings usuario↔tienda.
type UpdateUserStoresRequest struct {
	StoreIDs []string `json:"store_ids" validate:"dive,uuid"`
}

// UserResponse salida de un usuario con sus tiendas asignadas.
type UserResponse struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Role      string    `json:"role"`
	StoreIDs  []string  `json:"store_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
