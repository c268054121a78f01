package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (DIP).
// La implementación vive en infrastructure.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByAdminEmail(ctx context.Context, email string) (*entity.Account, error)
}
