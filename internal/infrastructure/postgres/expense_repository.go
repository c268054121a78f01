package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación del puerto ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste un gasto.
func (r *ExpenseRepo) Create(ctx context.Context, expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, store_id, category, amount, description, expense_date)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		expense.ID, expense.StoreID, expense.Category, expense.Amount,
		expense.Description, expense.ExpenseDate,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// ListRecent devuelve los últimos gastos de la tienda.
func (r *ExpenseRepo) ListRecent(ctx context.Context, storeID string, limit int) ([]*entity.Expense, error) {
	query := `
		SELECT id, store_id, category, amount, description, expense_date
		FROM expenses
		WHERE store_id = $1
		ORDER BY expense_date DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, storeID, limit)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.StoreID, &e.Category, &e.Amount, &e.Description, &e.ExpenseDate); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
