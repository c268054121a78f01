package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
//
// Las lecturas hacen JOIN con products para devolver el nombre del producto
// sin una segunda consulta.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una fila de venta.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, store_id, product_id, quantity, selling_price,
			total_amount, customer_name, payment_method, sale_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.StoreID, sale.ProductID, sale.Quantity, sale.SellingPrice,
		sale.TotalAmount, sale.CustomerName, sale.PaymentMethod, sale.SaleDate,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListRecent devuelve las últimas filas de venta de la tienda, más
// recientes primero.
func (r *SaleRepo) ListRecent(ctx context.Context, storeID string, limit int) ([]*entity.Sale, error) {
	query := saleSelect + `
		WHERE s.store_id = $1
		ORDER BY s.sale_date DESC
		LIMIT $2`
	return r.scanMany(ctx, query, storeID, limit)
}

// ListBetween devuelve las filas de venta en [from, to).
func (r *SaleRepo) ListBetween(ctx context.Context, storeID string, from, to time.Time) ([]*entity.Sale, error) {
	query := saleSelect + `
		WHERE s.store_id = $1 AND s.sale_date >= $2 AND s.sale_date < $3
		ORDER BY s.sale_date DESC`
	return r.scanMany(ctx, query, storeID, from, to)
}

const saleSelect = `
	SELECT s.id, s.store_id, s.product_id, p.name, s.quantity, s.selling_price,
		s.total_amount, s.customer_name, s.payment_method, s.sale_date
	FROM sales s
	JOIN products p ON p.id = s.product_id`

func (r *SaleRepo) scanMany(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	return scanSales(rows)
}

func scanSales(rows pgx.Rows) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.StoreID, &s.ProductID, &s.ProductName, &s.Quantity,
			&s.SellingPrice, &s.TotalAmount, &s.CustomerName, &s.PaymentMethod, &s.SaleDate,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
