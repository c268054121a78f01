package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

const recentPurchasesLimit = 50

// PurchaseUseCase registra compras a proveedor: suma stock y actualiza el
// costo del producto con el costo de la compra.
type PurchaseUseCase struct {
	tx           InventoryTxRunner
	purchaseRepo repository.PurchaseRepository
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(tx InventoryTxRunner, purchaseRepo repository.PurchaseRepository) *PurchaseUseCase {
	return &PurchaseUseCase{tx: tx, purchaseRepo: purchaseRepo}
}

// RecordPurchase registra el carrito completo en una transacción: bloquea
// cada producto, incrementa stock y crea las filas de compra. A diferencia
// de la venta, el costo unitario sí lo indica quien registra; si viene en
// cero se usa el costo actual del producto.
func (uc *PurchaseUseCase) RecordPurchase(ctx context.Context, storeID string, in dto.RecordPurchaseRequest) ([]dto.PurchaseResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.Quantity < 1 || item.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	purchaseDate := time.Now()
	var rows []*entity.Purchase

	err := uc.tx.RunPurchase(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
	) error {
		rows = rows[:0]
		for _, item := range in.Items {
			product, err := productRepo.GetForUpdate(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil || product.StoreID != storeID {
				return domain.ErrNotFound
			}

			cost := item.CostPrice
			if cost.IsZero() {
				cost = product.CostPrice
			} else if !cost.Equal(product.CostPrice) {
				product.CostPrice = cost
				product.UpdatedAt = time.Now()
				if err := productRepo.Update(ctx, product); err != nil {
					return err
				}
			}
			if err := productRepo.UpdateStock(ctx, product.ID, product.StockQuantity+item.Quantity); err != nil {
				return err
			}

			qty := decimal.NewFromInt(int64(item.Quantity))
			purchase := &entity.Purchase{
				ID:           uuid.New().String(),
				StoreID:      storeID,
				ProductID:    product.ID,
				ProductName:  product.Name,
				Quantity:     item.Quantity,
				CostPrice:    cost,
				TotalAmount:  cost.Mul(qty),
				Supplier:     in.Supplier,
				Notes:        in.Notes,
				PurchaseDate: purchaseDate,
			}
			if err := purchaseRepo.Create(ctx, purchase); err != nil {
				return err
			}
			rows = append(rows, purchase)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.PurchaseResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, *toPurchaseResponse(p))
	}
	return out, nil
}

// ListRecent devuelve las últimas filas de compra de la tienda.
func (uc *PurchaseUseCase) ListRecent(ctx context.Context, storeID string) ([]dto.PurchaseResponse, error) {
	list, err := uc.purchaseRepo.ListRecent(ctx, storeID, recentPurchasesLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPurchaseResponse(p))
	}
	return out, nil
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	if p == nil {
		return nil
	}
	return &dto.PurchaseResponse{
		ID:           p.ID,
		ProductID:    p.ProductID,
		ProductName:  p.ProductName,
		Quantity:     p.Quantity,
		CostPrice:    p.CostPrice,
		TotalAmount:  p.TotalAmount,
		Supplier:     p.Supplier,
		Notes:        p.Notes,
		PurchaseDate: p.PurchaseDate,
	}
}
