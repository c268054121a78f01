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

const (
	recentOrdersLimit = 10
	// Filas a leer para armar las últimas órdenes: cada orden puede tener
	// varias filas, así que se lee de más y se corta tras agrupar.
	recentRowsFetch = 100
)

// SaleUseCase registra ventas y reconstruye "órdenes" a partir de las
// filas individuales.
//
// Una venta de N productos se persiste como N filas que comparten fecha,
// cliente y método de pago; no hay tabla de órdenes. RecentOrders y el
// recibo reagrupan las filas por esa tripleta (fecha redondeada al segundo).
type SaleUseCase struct {
	tx       InventoryTxRunner
	saleRepo repository.SaleRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(tx InventoryTxRunner, saleRepo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{tx: tx, saleRepo: saleRepo}
}

// RecordSale registra el carrito completo en una transacción: bloquea cada
// producto, verifica stock, lo descuenta y crea las filas de venta con el
// precio vigente del producto (el cliente nunca manda precios).
func (uc *SaleUseCase) RecordSale(ctx context.Context, storeID string, in dto.RecordSaleRequest) (*dto.OrderResponse, error) {
	if !entity.ValidPaymentMethod(in.PaymentMethod) || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
	}

	saleDate := time.Now()
	var rows []*entity.Sale

	err := uc.tx.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
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
			if product.StockQuantity < item.Quantity {
				return domain.ErrInsufficientStock
			}
			if err := productRepo.UpdateStock(ctx, product.ID, product.StockQuantity-item.Quantity); err != nil {
				return err
			}

			qty := decimal.NewFromInt(int64(item.Quantity))
			sale := &entity.Sale{
				ID:            uuid.New().String(),
				StoreID:       storeID,
				ProductID:     product.ID,
				ProductName:   product.Name,
				Quantity:      item.Quantity,
				SellingPrice:  product.SellingPrice,
				TotalAmount:   product.SellingPrice.Mul(qty),
				CustomerName:  in.CustomerName,
				PaymentMethod: in.PaymentMethod,
				SaleDate:      saleDate,
			}
			if err := saleRepo.Create(ctx, sale); err != nil {
				return err
			}
			rows = append(rows, sale)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	orders := groupOrders(rows, 1)
	return &orders[0], nil
}

// RecentOrders devuelve las últimas órdenes de la tienda, más recientes
// primero.
func (uc *SaleUseCase) RecentOrders(ctx context.Context, storeID string) ([]dto.OrderResponse, error) {
	rows, err := uc.saleRepo.ListRecent(ctx, storeID, recentRowsFetch)
	if err != nil {
		return nil, err
	}
	return groupOrders(rows, recentOrdersLimit), nil
}

// FindOrder localiza una orden por su tripleta identificadora (para el
// recibo). Devuelve (nil, nil) si ninguna fila coincide.
func (uc *SaleUseCase) FindOrder(ctx context.Context, storeID string, saleDate time.Time, customerName, paymentMethod string) (*dto.OrderResponse, error) {
	second := saleDate.Truncate(time.Second)
	rows, err := uc.saleRepo.ListBetween(ctx, storeID, second, second.Add(time.Second))
	if err != nil {
		return nil, err
	}

	matched := rows[:0:0]
	for _, r := range rows {
		if r.CustomerName == customerName && r.PaymentMethod == paymentMethod {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return nil, nil
	}
	orders := groupOrders(matched, 1)
	return &orders[0], nil
}

type orderKey struct {
	second   int64
	customer string
	payment  string
}

// groupOrders reagrupa filas de venta en órdenes por (fecha al segundo,
// cliente, método de pago), conservando el orden de llegada de las filas
// (más recientes primero cuando vienen de ListRecent). Corta en limit
// órdenes; limit <= 0 no corta.
func groupOrders(rows []*entity.Sale, limit int) []dto.OrderResponse {
	orders := make([]dto.OrderResponse, 0, limit)
	index := make(map[orderKey]int)

	for _, row := range rows {
		key := orderKey{
			second:   row.SaleDate.Truncate(time.Second).Unix(),
			customer: row.CustomerName,
			payment:  row.PaymentMethod,
		}
		i, ok := index[key]
		if !ok {
			if limit > 0 && len(orders) == limit {
				// Las filas vienen ordenadas: una clave nueva tras llenar el
				// cupo solo puede ser una orden más vieja.
				continue
			}
			orders = append(orders, dto.OrderResponse{
				SaleDate:      row.SaleDate.Truncate(time.Second),
				CustomerName:  row.CustomerName,
				PaymentMethod: row.PaymentMethod,
				Total:         decimal.Zero,
			})
			i = len(orders) - 1
			index[key] = i
		}
		orders[i].Items = append(orders[i].Items, dto.OrderItemResponse{
			ProductID:    row.ProductID,
			ProductName:  row.ProductName,
			Quantity:     row.Quantity,
			SellingPrice: row.SellingPrice,
			TotalAmount:  row.TotalAmount,
		})
		orders[i].Total = orders[i].Total.Add(row.TotalAmount)
	}
	return orders
}
