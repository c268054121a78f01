package entity

import "time"

// Store representa una tienda (punto de venta) de una cuenta.
// Code es la credencial de login de la tienda: 5 caracteres, único en
// TODA la tabla (el login resuelve la tienda solo por código).
type Store struct {
	ID        string
	AccountID string
	Name      string
	Code      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
