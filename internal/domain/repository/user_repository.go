package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
//
// GetByCodeAndStore es la segunda etapa del login: busca el usuario por
// código DENTRO de la cuenta de la tienda Y con mapping en user_stores a
// esa tienda. Un código válido para otra tienda no sirve aquí.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByCodeAndStore(ctx context.Context, code, storeID string) (*entity.User, error)
	GetRole(ctx context.Context, userID string) (string, error)
	CodeExists(ctx context.Context, accountID, code string) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	ListByAccount(ctx context.Context, accountID string) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}

// UserStoreRepository maneja los mappings usuario↔tienda.
type UserStoreRepository interface {
	Create(ctx context.Context, userID, storeID string) error
	ListStoreIDs(ctx context.Context, userID string) ([]string, error)
	ReplaceForUser(ctx context.Context, userID string, storeIDs []string) error
}
