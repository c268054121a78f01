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

// UserUseCase casos de uso para el personal de una cuenta (solo admin).
//
// El código de usuario es único POR CUENTA, no global: dos cuentas pueden
// tener cada una un usuario "FGHIJ" sin conflicto.
type UserUseCase struct {
	userRepo      repository.UserRepository
	userStoreRepo repository.UserStoreRepository
	storeRepo     repository.StoreRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(
	userRepo repository.UserRepository,
	userStoreRepo repository.UserStoreRepository,
	storeRepo repository.StoreRepository,
) *UserUseCase {
	return &UserUseCase{
		userRepo:      userRepo,
		userStoreRepo: userStoreRepo,
		storeRepo:     storeRepo,
	}
}

// Create crea un usuario con código generado en el servidor y lo mapea a
// las tiendas indicadas (todas de la misma cuenta).
func (uc *UserUseCase) Create(ctx context.Context, accountID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Role != entity.RoleAdmin && in.Role != entity.RoleStaff {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkStoresOwned(ctx, accountID, in.StoreIDs); err != nil {
		return nil, err
	}

	gen := codes.NewGenerator(func(ctx context.Context, code string) (bool, error) {
		return uc.userRepo.CodeExists(ctx, accountID, code)
	})

	var user *entity.User
	backoff := retry.WithMaxRetries(createCodeAttempts-1, retry.NewConstant(50*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		code, err := gen.Unique(ctx)
		if err != nil {
			return retryableCode(err)
		}
		now := time.Now()
		user = &entity.User{
			ID:        uuid.New().String(),
			AccountID: accountID,
			Name:      in.Name,
			Code:      code,
			Role:      in.Role,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return retryableCode(uc.userRepo.Create(ctx, user))
	})
	if err != nil {
		return nil, err
	}

	for _, storeID := range in.StoreIDs {
		if err := uc.userStoreRepo.Create(ctx, user.ID, storeID); err != nil {
			return nil, err
		}
	}
	return uc.toUserResponse(ctx, user)
}

// GetByID obtiene un usuario de la cuenta con sus tiendas asignadas.
// Devuelve (nil, nil) si no existe o pertenece a otra cuenta.
func (uc *UserUseCase) GetByID(ctx context.Context, accountID, id string) (*dto.UserResponse, error) {
	user, err := uc.ownedUser(ctx, accountID, id)
	if err != nil || user == nil {
		return nil, err
	}
	return uc.toUserResponse(ctx, user)
}

// Update edita nombre y/o rol de un usuario de la cuenta.
func (uc *UserUseCase) Update(ctx context.Context, accountID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.ownedUser(ctx, accountID, id)
	if err != nil || user == nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		if *in.Role != entity.RoleAdmin && *in.Role != entity.RoleStaff {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return uc.toUserResponse(ctx, user)
}

// UpdateStores reemplaza los mappings usuario↔tienda. Todas las tiendas
// deben ser de la cuenta del usuario; una ajena aborta el reemplazo entero.
func (uc *UserUseCase) UpdateStores(ctx context.Context, accountID, id string, in dto.UpdateUserStoresRequest) (*dto.UserResponse, error) {
	user, err := uc.ownedUser(ctx, accountID, id)
	if err != nil || user == nil {
		return nil, err
	}
	if err := uc.checkStoresOwned(ctx, accountID, in.StoreIDs); err != nil {
		return nil, err
	}
	if err := uc.userStoreRepo.ReplaceForUser(ctx, id, in.StoreIDs); err != nil {
		return nil, err
	}
	return uc.toUserResponse(ctx, user)
}

// List lista los usuarios de la cuenta con sus tiendas asignadas.
func (uc *UserUseCase) List(ctx context.Context, accountID string) ([]dto.UserResponse, error) {
	list, err := uc.userRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		resp, err := uc.toUserResponse(ctx, u)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return items, nil
}

// Delete elimina un usuario de la cuenta.
func (uc *UserUseCase) Delete(ctx context.Context, accountID, id string) error {
	user, err := uc.ownedUser(ctx, accountID, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return uc.userRepo.Delete(ctx, id)
}

func (uc *UserUseCase) ownedUser(ctx context.Context, accountID, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.AccountID != accountID {
		return nil, nil
	}
	return user, nil
}

// checkStoresOwned verifica que cada tienda exista y sea de la cuenta.
func (uc *UserUseCase) checkStoresOwned(ctx context.Context, accountID string, storeIDs []string) error {
	for _, storeID := range storeIDs {
		store, err := uc.storeRepo.GetByID(ctx, storeID)
		if err != nil {
			return err
		}
		if store == nil || store.AccountID != accountID {
			return domain.ErrCrossAccountStore
		}
	}
	return nil
}

func (uc *UserUseCase) toUserResponse(ctx context.Context, u *entity.User) (*dto.UserResponse, error) {
	storeIDs, err := uc.userStoreRepo.ListStoreIDs(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &dto.UserResponse{
		ID:        u.ID,
		AccountID: u.AccountID,
		Name:      u.Name,
		Code:      u.Code,
		Role:      u.Role,
		StoreIDs:  storeIDs,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}, nil
}
