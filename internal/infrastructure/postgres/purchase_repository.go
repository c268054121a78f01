package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste una fila de compra.
func (r *PurchaseRepo) Create(ctx context.Context, purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, store_id, product_id, quantity, cost_price,
			total_amount, supplier, notes, purchase_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		purchase.ID, purchase.StoreID, purchase.ProductID, purchase.Quantity,
		purchase.CostPrice, purchase.TotalAmount, purchase.Supplier,
		purchase.Notes, purchase.PurchaseDate,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// ListRecent devuelve las últimas filas de compra de la tienda.
func (r *PurchaseRepo) ListRecent(ctx context.Context, storeID string, limit int) ([]*entity.Purchase, error) {
	query := `
		SELECT c.id, c.store_id, c.product_id, p.name, c.quantity, c.cost_price,
			c.total_amount, c.supplier, c.notes, c.purchase_date
		FROM purchases c
		JOIN products p ON p.id = c.product_id
		WHERE c.store_id = $1
		ORDER BY c.purchase_date DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, storeID, limit)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var c entity.Purchase
		if err := rows.Scan(
			&c.ID, &c.StoreID, &c.ProductID, &c.ProductName, &c.Quantity,
			&c.CostPrice, &c.TotalAmount, &c.Supplier, &c.Notes, &c.PurchaseDate,
		); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
