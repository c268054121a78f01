package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User representa un miembro del personal de una cuenta.
// Code es único solo dentro de su cuenta: dos cuentas distintas pueden
// tener el mismo código de usuario.
type User struct {
	ID        string
	AccountID string
	Name      string
	Code      string
	Role      string // admin, staff
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserStore es la relación N:M usuario↔tienda. Un usuario solo puede
// iniciar sesión en las tiendas donde tiene mapping.
type UserStore struct {
	UserID  string
	StoreID string
}
