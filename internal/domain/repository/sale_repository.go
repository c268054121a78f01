package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale (DIP).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	// ListRecent devuelve las últimas filas de venta de la tienda con el
	// nombre del producto resuelto, más recientes primero.
	ListRecent(ctx context.Context, storeID string, limit int) ([]*entity.Sale, error)
	// ListBetween devuelve las filas de venta en [from, to).
	ListBetween(ctx context.Context, storeID string, from, to time.Time) ([]*entity.Sale, error)
}

// PurchaseRepository define el puerto de persistencia para Purchase (DIP).
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	ListRecent(ctx context.Context, storeID string, limit int) ([]*entity.Purchase, error)
}

// ExpenseRepository define el puerto de persistencia para Expense (DIP).
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	ListRecent(ctx context.Context, storeID string, limit int) ([]*entity.Expense, error)
}
