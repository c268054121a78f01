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

var _ repository.UserRepository = (*UserRepo)(nil)
var _ repository.UserStoreRepository = (*UserStoreRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Devuelve ErrDuplicate si el código ya
// existe en la cuenta.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, account_id, name, code, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.AccountID, user.Name, user.Code, user.Role,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT id, account_id, name, code, role, created_at, updated_at
		FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get user")
}

// GetByCodeAndStore resuelve la segunda etapa del login: el usuario por
// código DENTRO de la cuenta de la tienda y con mapping a esa tienda.
func (r *UserRepo) GetByCodeAndStore(ctx context.Context, code, storeID string) (*entity.User, error) {
	query := `
		SELECT u.id, u.account_id, u.name, u.code, u.role, u.created_at, u.updated_at
		FROM users u
		JOIN stores s ON s.account_id = u.account_id
		JOIN user_stores us ON us.user_id = u.id AND us.store_id = s.id
		WHERE u.code = $1 AND s.id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, code, storeID), "get user by code")
}

// GetRole lee el rol actual del usuario. Una promoción o degradación hecha
// por el admin aplica en la siguiente petición, sin re-login.
func (r *UserRepo) GetRole(ctx context.Context, userID string) (string, error) {
	var role string
	err := r.q.QueryRow(ctx, `SELECT role FROM users WHERE id = $1`, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get user role: %w", err)
	}
	return role, nil
}

// CodeExists verifica si un código de usuario ya está en uso en la cuenta.
func (r *UserRepo) CodeExists(ctx context.Context, accountID, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE account_id = $1 AND code = $2)`,
		accountID, code,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("user code exists: %w", err)
	}
	return exists, nil
}

// Update actualiza nombre y rol de un usuario. El código nunca se modifica.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `UPDATE users SET name = $2, role = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, user.ID, user.Name, user.Role, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ListByAccount lista los usuarios de una cuenta.
func (r *UserRepo) ListByAccount(ctx context.Context, accountID string) ([]*entity.User, error) {
	query := `
		SELECT id, account_id, name, code, role, created_at, updated_at
		FROM users WHERE account_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.AccountID, &u.Name, &u.Code, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.AccountID, &u.Name, &u.Code, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// UserStoreRepo implementación de los mappings usuario↔tienda.
type UserStoreRepo struct {
	q Querier
}

// NewUserStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserStoreRepository(q Querier) *UserStoreRepo {
	return &UserStoreRepo{q: q}
}

// Create agrega un mapping usuario↔tienda (idempotente).
func (r *UserStoreRepo) Create(ctx context.Context, userID, storeID string) error {
	query := `
		INSERT INTO user_stores (user_id, store_id)
		VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.q.Exec(ctx, query, userID, storeID)
	if err != nil {
		return fmt.Errorf("insert user_store: %w", err)
	}
	return nil
}

// ListStoreIDs lista las tiendas asignadas a un usuario.
func (r *UserStoreRepo) ListStoreIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT store_id FROM user_stores WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user stores: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user store: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ReplaceForUser reemplaza todos los mappings de un usuario.
func (r *UserStoreRepo) ReplaceForUser(ctx context.Context, userID string, storeIDs []string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM user_stores WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear user stores: %w", err)
	}
	for _, storeID := range storeIDs {
		if err := r.Create(ctx, userID, storeID); err != nil {
			return err
		}
	}
	return nil
}
