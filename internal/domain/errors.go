package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Login con códigos cortos: se distingue qué etapa falló (tienda vs usuario).
	ErrInvalidStoreCode = errors.New("código de tienda inválido")
	ErrInvalidUserCode  = errors.New("código de usuario inválido para esta tienda")

	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrCrossAccountStore  = errors.New("la tienda pertenece a otra cuenta")
)
