// Package auth implementa el registro de cuentas y el login por códigos
// cortos. El registro crea cuenta, primera tienda, usuario admin y su
// mapping en UNA transacción; el login resuelve tienda por código global y
// usuario por código dentro de esa tienda.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/codes"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/session"
)

// registerMaxAttempts acota el ciclo generar códigos → insertar. El chequeo
// previo del generador no es atómico con el insert, así que una violación
// del índice único se trata regenerando códigos y reintentando completo.
const registerMaxAttempts = 3

// SessionConfig configuración para emitir tokens de sesión.
type SessionConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// TxRunner es el puerto transaccional del registro: ejecuta fn con repos
// atados a una misma transacción.
type TxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		accounts repository.AccountRepository,
		stores repository.StoreRepository,
		users repository.UserRepository,
		userStores repository.UserStoreRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticación: registro, login y sesión.
type AuthUseCase struct {
	tx          TxRunner
	accountRepo repository.AccountRepository
	storeRepo   repository.StoreRepository
	userRepo    repository.UserRepository
	sessionCfg  SessionConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	tx TxRunner,
	accountRepo repository.AccountRepository,
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	sessionCfg SessionConfig,
) *AuthUseCase {
	return &AuthUseCase{
		tx:          tx,
		accountRepo: accountRepo,
		storeRepo:   storeRepo,
		userRepo:    userRepo,
		sessionCfg:  sessionCfg,
	}
}

// Register crea la cuenta, su primera tienda (con código global único), el
// usuario admin (con código único por cuenta) y el mapping usuario↔tienda,
// todo en una transacción. Ante violación del índice único de códigos o
// agotamiento del generador, regenera y reintenta hasta registerMaxAttempts
// veces; si se agotan, el error llega al llamador como condición 503.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	existing, err := uc.accountRepo.GetByAdminEmail(ctx, in.AdminEmail)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	storeCodeGen := codes.NewGenerator(uc.storeRepo.CodeExists)

	var out *dto.RegisterResponse
	backoff := retry.WithMaxRetries(registerMaxAttempts-1, retry.NewConstant(50*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		accountID := uuid.New().String()

		storeCode, err := storeCodeGen.Unique(ctx)
		if err != nil {
			return markRetryable(err)
		}
		userCode, err := codes.NewGenerator(func(ctx context.Context, code string) (bool, error) {
			return uc.userRepo.CodeExists(ctx, accountID, code)
		}).Unique(ctx)
		if err != nil {
			return markRetryable(err)
		}

		now := time.Now()
		account := &entity.Account{
			ID:                accountID,
			Name:              in.AccountName,
			AdminEmail:        in.AdminEmail,
			AdminPasswordHash: string(hash),
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		store := &entity.Store{
			ID:        uuid.New().String(),
			AccountID: accountID,
			Name:      in.StoreName,
			Code:      storeCode,
			CreatedAt: now,
			UpdatedAt: now,
		}
		admin := &entity.User{
			ID:        uuid.New().String(),
			AccountID: accountID,
			Name:      in.AdminName,
			Code:      userCode,
			Role:      entity.RoleAdmin,
			CreatedAt: now,
			UpdatedAt: now,
		}

		txErr := uc.tx.RunRegistration(ctx, func(
			accounts repository.AccountRepository,
			stores repository.StoreRepository,
			users repository.UserRepository,
			userStores repository.UserStoreRepository,
		) error {
			if err := accounts.Create(ctx, account); err != nil {
				return err
			}
			if err := stores.Create(ctx, store); err != nil {
				return err
			}
			if err := users.Create(ctx, admin); err != nil {
				return err
			}
			return userStores.Create(ctx, admin.ID, store.ID)
		})
		if txErr != nil {
			return markRetryable(txErr)
		}

		out = &dto.RegisterResponse{
			AccountID: accountID,
			StoreID:   store.ID,
			UserID:    admin.ID,
			StoreCode: storeCode,
			UserCode:  userCode,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// markRetryable marca como reintentables las condiciones que un nuevo par
// de códigos puede resolver: colisión en el insert (carrera entre el
// chequeo y el insert) y agotamiento del generador.
func markRetryable(err error) error {
	if errors.Is(err, domain.ErrDuplicate) || errors.Is(err, codes.ErrExhausted) {
		return retry.RetryableError(err)
	}
	return err
}

// Login resuelve los dos códigos en dos etapas: primero la tienda por
// código (único global), después el usuario por código DENTRO de esa
// tienda (cuenta + mapping user_stores). Un código de usuario válido para
// otra tienda no autentica aquí. Devuelve también el token de sesión
// firmado para la cookie.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, string, error) {
	storeCode := normalizeCode(in.StoreCode)
	userCode := normalizeCode(in.UserCode)
	if len(storeCode) != codes.Length || len(userCode) != codes.Length {
		return nil, "", domain.ErrInvalidInput
	}

	store, err := uc.storeRepo.GetByCode(ctx, storeCode)
	if err != nil {
		return nil, "", err
	}
	if store == nil {
		return nil, "", domain.ErrInvalidStoreCode
	}

	user, err := uc.userRepo.GetByCodeAndStore(ctx, userCode, store.ID)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", domain.ErrInvalidUserCode
	}

	token, err := session.Generate(uc.sessionCfg.Secret, session.Session{
		StoreID:   store.ID,
		UserID:    user.ID,
		AccountID: store.AccountID,
	}, uc.sessionCfg.Issuer, uc.sessionCfg.TTL)
	if err != nil {
		return nil, "", err
	}

	return &dto.LoginResponse{
		StoreID:   store.ID,
		UserID:    user.ID,
		AccountID: store.AccountID,
		UserName:  user.Name,
		Role:      user.Role,
	}, token, nil
}

// GetSession arma el estado de la sesión actual. El rol SIEMPRE se relee
// de la base (nunca del token): un cambio de rol aplica en la siguiente
// petición del usuario afectado sin re-login.
func (uc *AuthUseCase) GetSession(ctx context.Context, sess session.Session) (*dto.SessionResponse, error) {
	out := &dto.SessionResponse{
		StoreID:    sess.StoreID,
		UserID:     sess.UserID,
		AccountID:  sess.AccountID,
		IsLoggedIn: sess.IsLoggedIn(),
	}

	if sess.UserID != "" {
		role, err := uc.userRepo.GetRole(ctx, sess.UserID)
		if err != nil {
			return nil, err
		}
		out.Role = role
	}
	if sess.AccountID != "" {
		account, err := uc.accountRepo.GetByID(ctx, sess.AccountID)
		if err != nil {
			return nil, err
		}
		if account != nil {
			out.AccountName = account.Name
		}
	}
	if sess.StoreID != "" {
		store, err := uc.storeRepo.GetByID(ctx, sess.StoreID)
		if err != nil {
			return nil, err
		}
		if store != nil {
			out.StoreName = store.Name
		}
	}
	return out, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
