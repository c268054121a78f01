package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/codes"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

const createCodeAttempts = 3

// StoreUseCase casos de uso CRUD para tiendas de una cuenta.
//
// Todas las operaciones reciben el accountID de la sesión: una tienda de
// otra cuenta se trata como inexistente, nunca como prohibida (no se filtra
// su existencia).
type StoreUseCase struct {
	repo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// Create crea una tienda con un código de login generado en el servidor.
// Ante colisión en el insert (carrera chequeo→insert) regenera y reintenta.
func (uc *StoreUseCase) Create(ctx context.Context, accountID string, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	gen := codes.NewGenerator(uc.repo.CodeExists)

	var store *entity.Store
	backoff := retry.WithMaxRetries(createCodeAttempts-1, retry.NewConstant(50*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		code, err := gen.Unique(ctx)
		if err != nil {
			return retryableCode(err)
		}
		now := time.Now()
		store = &entity.Store{
			ID:        uuid.New().String(),
			AccountID: accountID,
			Name:      in.Name,
			Code:      code,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return retryableCode(uc.repo.Create(ctx, store))
	})
	if err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// GetByID obtiene una tienda de la cuenta. Devuelve (nil, nil) si no existe
// o pertenece a otra cuenta.
func (uc *StoreUseCase) GetByID(ctx context.Context, accountID, id string) (*dto.StoreResponse, error) {
	store, err := uc.ownedStore(ctx, accountID, id)
	if err != nil || store == nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// Update renombra una tienda. El código no se toca: es la credencial de
// login ya impresa/compartida.
func (uc *StoreUseCase) Update(ctx context.Context, accountID, id string, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	store, err := uc.ownedStore(ctx, accountID, id)
	if err != nil || store == nil {
		return nil, err
	}
	store.Name = in.Name
	store.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// List lista las tiendas de la cuenta.
func (uc *StoreUseCase) List(ctx context.Context, accountID string) ([]dto.StoreResponse, error) {
	list, err := uc.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStoreResponse(s))
	}
	return items, nil
}

// Delete elimina una tienda de la cuenta. Devuelve ErrNotFound si no existe
// o pertenece a otra cuenta.
func (uc *StoreUseCase) Delete(ctx context.Context, accountID, id string) error {
	store, err := uc.ownedStore(ctx, accountID, id)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *StoreUseCase) ownedStore(ctx context.Context, accountID, id string) (*entity.Store, error) {
	store, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil || store.AccountID != accountID {
		return nil, nil
	}
	return store, nil
}

// retryableCode marca como reintentables las condiciones que un nuevo
// código puede resolver.
func retryableCode(err error) error {
	if err == nil {
		return nil
	}
	if isCodeCollision(err) {
		return retry.RetryableError(err)
	}
	return err
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	if s == nil {
		return nil
	}
	return &dto.StoreResponse{
		ID:        s.ID,
		AccountID: s.AccountID,
		Name:      s.Name,
		Code:      s.Code,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
