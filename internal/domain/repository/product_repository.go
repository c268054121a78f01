package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
//
// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) para ajustar stock
// dentro de una transacción de venta o compra.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id string, quantity int) error
	ListByStore(ctx context.Context, storeID string) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, storeID string, limit int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
