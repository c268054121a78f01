package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para Store (DIP).
//
// El código de tienda es único en toda la tabla: GetByCode resuelve la
// tienda sin conocer la cuenta, y CodeExists es el chequeo previo del
// generador de códigos (el índice único sigue siendo la garantía real).
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	GetByCode(ctx context.Context, code string) (*entity.Store, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, store *entity.Store) error
	ListByAccount(ctx context.Context, accountID string) ([]*entity.Store, error)
	Delete(ctx context.Context, id string) error
}
