package entity

import "time"

// Account representa el tenant de negocio (multi-tenant). Una cuenta agrupa
// una o más tiendas y a todo el personal.
type Account struct {
	ID                string
	Name              string
	AdminEmail        string
	AdminPasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
