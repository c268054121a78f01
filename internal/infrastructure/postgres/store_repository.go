package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
//
// La columna code tiene índice único global: el insert es la garantía final
// contra códigos repetidos, CodeExists solo evita la mayoría de colisiones.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una nueva tienda. Devuelve ErrDuplicate si el código ya existe.
func (r *StoreRepo) Create(ctx context.Context, store *entity.Store) error {
	query := `
		INSERT INTO stores (id, account_id, name, code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		store.ID, store.AccountID, store.Name, store.Code,
		store.CreatedAt, store.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	query := `
		SELECT id, account_id, name, code, created_at, updated_at
		FROM stores WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get store")
}

// GetByCode obtiene una tienda por su código de login (primera etapa).
func (r *StoreRepo) GetByCode(ctx context.Context, code string) (*entity.Store, error) {
	query := `
		SELECT id, account_id, name, code, created_at, updated_at
		FROM stores WHERE code = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, code), "get store by code")
}

// CodeExists verifica si un código de tienda ya está en uso.
func (r *StoreRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM stores WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("store code exists: %w", err)
	}
	return exists, nil
}

// Update actualiza el nombre de una tienda. El código nunca se modifica.
func (r *StoreRepo) Update(ctx context.Context, store *entity.Store) error {
	query := `UPDATE stores SET name = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, store.ID, store.Name, store.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	return nil
}

// ListByAccount lista las tiendas de una cuenta.
func (r *StoreRepo) ListByAccount(ctx context.Context, accountID string) ([]*entity.Store, error) {
	query := `
		SELECT id, account_id, name, code, created_at, updated_at
		FROM stores WHERE account_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.AccountID, &s.Name, &s.Code, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina una tienda por ID.
func (r *StoreRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	return nil
}

func (r *StoreRepo) scanOne(row pgx.Row, op string) (*entity.Store, error) {
	var s entity.Store
	err := row.Scan(&s.ID, &s.AccountID, &s.Name, &s.Code, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}
