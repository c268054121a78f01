package usecase

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// InventoryTxRunner ejecuta una función dentro de una transacción de BD,
// pasando repositorios atados a esa tx. Garantiza que el ajuste de stock y
// las filas de venta/compra se confirmen juntos o no se confirme nada.
type InventoryTxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error) error

	RunPurchase(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
	) error) error
}
