package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ReportsRepository = (*ReportsRepo)(nil)

// ReportsRepo consultas read-only de agregados para reportes y dashboard.
type ReportsRepo struct {
	q Querier
}

// NewReportsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportsRepository(q Querier) *ReportsRepo {
	return &ReportsRepo{q: q}
}

// SumSales suma las ventas de la tienda en [from, to).
func (r *ReportsRepo) SumSales(ctx context.Context, storeID string, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM sales
		 WHERE store_id = $1 AND sale_date >= $2 AND sale_date < $3`,
		"sum sales", storeID, from, to)
}

// SumPurchases suma las compras de la tienda en [from, to).
func (r *ReportsRepo) SumPurchases(ctx context.Context, storeID string, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM purchases
		 WHERE store_id = $1 AND purchase_date >= $2 AND purchase_date < $3`,
		"sum purchases", storeID, from, to)
}

// SumExpenses suma los gastos de la tienda en [from, to).
func (r *ReportsRepo) SumExpenses(ctx context.Context, storeID string, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses
		 WHERE store_id = $1 AND expense_date >= $2 AND expense_date < $3`,
		"sum expenses", storeID, from, to)
}

// GetProductPerformance agrega cantidad vendida y número de ventas por
// producto en [from, to), ordenado por cantidad descendente.
func (r *ReportsRepo) GetProductPerformance(ctx context.Context, storeID string, from, to time.Time) ([]repository.ProductPerformance, error) {
	query := `
		SELECT s.product_id, p.name, SUM(s.quantity)::int, COUNT(*)::int
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE s.store_id = $1 AND s.sale_date >= $2 AND s.sale_date < $3
		GROUP BY s.product_id, p.name
		ORDER BY SUM(s.quantity) DESC`
	rows, err := r.q.Query(ctx, query, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("product performance: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductPerformance
	for rows.Next() {
		var p repository.ProductPerformance
		if err := rows.Scan(&p.ProductID, &p.Name, &p.TotalQuantity, &p.SalesCount); err != nil {
			return nil, fmt.Errorf("scan performance: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ReportsRepo) sum(ctx context.Context, query, op string, args ...any) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
