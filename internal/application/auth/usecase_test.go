package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/codes"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/session"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (sin DB) con la misma semántica de los repos reales:
// not-found devuelve (nil, nil), los códigos duplicados ErrDuplicate.
// ──────────────────────────────────────────────────────────────────────────────

type fakeState struct {
	accounts    map[string]*entity.Account
	stores      map[string]*entity.Store
	users       map[string]*entity.User
	userStores  map[string]map[string]bool // userID -> storeIDs
	storeErrs   []error                    // errores programados para stores.Create
	storeCreate int
}

func newFakeState() *fakeState {
	return &fakeState{
		accounts:   map[string]*entity.Account{},
		stores:     map[string]*entity.Store{},
		users:      map[string]*entity.User{},
		userStores: map[string]map[string]bool{},
	}
}

type fakeAccounts struct{ st *fakeState }

func (f *fakeAccounts) Create(_ context.Context, a *entity.Account) error {
	f.st.accounts[a.ID] = a
	return nil
}
func (f *fakeAccounts) GetByID(_ context.Context, id string) (*entity.Account, error) {
	return f.st.accounts[id], nil
}
func (f *fakeAccounts) GetByAdminEmail(_ context.Context, email string) (*entity.Account, error) {
	for _, a := range f.st.accounts {
		if a.AdminEmail == email {
			return a, nil
		}
	}
	return nil, nil
}

type fakeStores struct{ st *fakeState }

func (f *fakeStores) Create(_ context.Context, s *entity.Store) error {
	if f.st.storeCreate < len(f.st.storeErrs) {
		err := f.st.storeErrs[f.st.storeCreate]
		f.st.storeCreate++
		if err != nil {
			return err
		}
	} else {
		f.st.storeCreate++
	}
	for _, other := range f.st.stores {
		if other.Code == s.Code {
			return domain.ErrDuplicate
		}
	}
	f.st.stores[s.ID] = s
	return nil
}
func (f *fakeStores) GetByID(_ context.Context, id string) (*entity.Store, error) {
	return f.st.stores[id], nil
}
func (f *fakeStores) GetByCode(_ context.Context, code string) (*entity.Store, error) {
	for _, s := range f.st.stores {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, nil
}
func (f *fakeStores) CodeExists(ctx context.Context, code string) (bool, error) {
	s, _ := f.GetByCode(ctx, code)
	return s != nil, nil
}
func (f *fakeStores) Update(_ context.Context, s *entity.Store) error {
	f.st.stores[s.ID] = s
	return nil
}
func (f *fakeStores) ListByAccount(_ context.Context, accountID string) ([]*entity.Store, error) {
	var out []*entity.Store
	for _, s := range f.st.stores {
		if s.AccountID == accountID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeStores) Delete(_ context.Context, id string) error {
	delete(f.st.stores, id)
	return nil
}

type fakeUsers struct{ st *fakeState }

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	for _, other := range f.st.users {
		if other.AccountID == u.AccountID && other.Code == u.Code {
			return domain.ErrDuplicate
		}
	}
	f.st.users[u.ID] = u
	return nil
}
func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.st.users[id], nil
}
func (f *fakeUsers) GetByCodeAndStore(_ context.Context, code, storeID string) (*entity.User, error) {
	store := f.st.stores[storeID]
	if store == nil {
		return nil, nil
	}
	for _, u := range f.st.users {
		if u.AccountID == store.AccountID && u.Code == code && f.st.userStores[u.ID][storeID] {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUsers) GetRole(_ context.Context, userID string) (string, error) {
	if u := f.st.users[userID]; u != nil {
		return u.Role, nil
	}
	return "", nil
}
func (f *fakeUsers) CodeExists(_ context.Context, accountID, code string) (bool, error) {
	for _, u := range f.st.users {
		if u.AccountID == accountID && u.Code == code {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeUsers) Update(_ context.Context, u *entity.User) error {
	f.st.users[u.ID] = u
	return nil
}
func (f *fakeUsers) ListByAccount(_ context.Context, accountID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.st.users {
		if u.AccountID == accountID {
			out = append(out, u)
		}
	}
	return out, nil
}
func (f *fakeUsers) Delete(_ context.Context, id string) error {
	delete(f.st.users, id)
	return nil
}

type fakeUserStores struct{ st *fakeState }

func (f *fakeUserStores) Create(_ context.Context, userID, storeID string) error {
	if f.st.userStores[userID] == nil {
		f.st.userStores[userID] = map[string]bool{}
	}
	f.st.userStores[userID][storeID] = true
	return nil
}
func (f *fakeUserStores) ListStoreIDs(_ context.Context, userID string) ([]string, error) {
	var out []string
	for id := range f.st.userStores[userID] {
		out = append(out, id)
	}
	return out, nil
}
func (f *fakeUserStores) ReplaceForUser(_ context.Context, userID string, storeIDs []string) error {
	f.st.userStores[userID] = map[string]bool{}
	for _, id := range storeIDs {
		f.st.userStores[userID][id] = true
	}
	return nil
}

type fakeTx struct{ st *fakeState }

func (f *fakeTx) RunRegistration(ctx context.Context, fn func(
	repository.AccountRepository,
	repository.StoreRepository,
	repository.UserRepository,
	repository.UserStoreRepository,
) error) error {
	return fn(&fakeAccounts{f.st}, &fakeStores{f.st}, &fakeUsers{f.st}, &fakeUserStores{f.st})
}

const testSecret = "test-secret-key-for-unit-tests"

func newTestUseCase(st *fakeState) *AuthUseCase {
	return NewAuthUseCase(
		&fakeTx{st},
		&fakeAccounts{st},
		&fakeStores{st},
		&fakeUsers{st},
		SessionConfig{Secret: testSecret, Issuer: "pos-test", TTL: time.Hour},
	)
}

// seedLogin prepara una tienda ABCDE con un usuario FGHIJ mapeado.
func seedLogin(st *fakeState) (*entity.Store, *entity.User) {
	store := &entity.Store{ID: "st-1", AccountID: "ac-1", Name: "Principal", Code: "ABCDE"}
	user := &entity.User{ID: "us-1", AccountID: "ac-1", Name: "Ana", Code: "FGHIJ", Role: entity.RoleAdmin}
	st.stores[store.ID] = store
	st.users[user.ID] = user
	st.userStores[user.ID] = map[string]bool{store.ID: true}
	return store, user
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaCuentaTiendaAdminYMapping(t *testing.T) {
	st := newFakeState()
	uc := newTestUseCase(st)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		AccountName: "Acme",
		StoreName:   "Principal",
		AdminName:   "Ana",
		AdminEmail:  "ana@acme.test",
		Password:    "secreta1",
	})
	require.NoError(t, err)

	// Códigos de 5 caracteres del alfabeto sin ambiguos.
	require.Len(t, out.StoreCode, codes.Length)
	require.Len(t, out.UserCode, codes.Length)
	for _, c := range out.StoreCode + out.UserCode {
		assert.True(t, strings.ContainsRune(codes.Alphabet, c))
	}

	// Persistido: cuenta, tienda con el código, admin con el código y mapping.
	require.Contains(t, st.accounts, out.AccountID)
	assert.NotEqual(t, "secreta1", st.accounts[out.AccountID].AdminPasswordHash)

	store := st.stores[out.StoreID]
	require.NotNil(t, store)
	assert.Equal(t, out.StoreCode, store.Code)
	assert.Equal(t, out.AccountID, store.AccountID)

	admin := st.users[out.UserID]
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.Equal(t, out.UserCode, admin.Code)
	assert.True(t, st.userStores[out.UserID][out.StoreID], "el admin debe quedar mapeado a la tienda")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	st := newFakeState()
	st.accounts["ac-1"] = &entity.Account{ID: "ac-1", AdminEmail: "ana@acme.test"}
	uc := newTestUseCase(st)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		AccountName: "Acme", StoreName: "Principal", AdminName: "Ana",
		AdminEmail: "ana@acme.test", Password: "secreta1",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// Una violación del índice único en el insert (carrera chequeo→insert)
// regenera códigos y reintenta la transacción completa.
func TestRegister_ReintentaAnteColisionDeCodigo(t *testing.T) {
	st := newFakeState()
	st.storeErrs = []error{domain.ErrDuplicate} // primer insert colisiona
	uc := newTestUseCase(st)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		AccountName: "Acme", StoreName: "Principal", AdminName: "Ana",
		AdminEmail: "ana@acme.test", Password: "secreta1",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, st.storeCreate, "debe haber reintentado una vez")
	assert.Contains(t, st.stores, out.StoreID)
}

// Si todos los intentos colisionan, el error sale como ErrDuplicate para
// que el handler responda condición reintentable.
func TestRegister_ColisionPersistenteFallaFuerte(t *testing.T) {
	st := newFakeState()
	st.storeErrs = []error{domain.ErrDuplicate, domain.ErrDuplicate, domain.ErrDuplicate}
	uc := newTestUseCase(st)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		AccountName: "Acme", StoreName: "Principal", AdminName: "Ana",
		AdminEmail: "ana@acme.test", Password: "secreta1",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	st := newFakeState()
	store, user := seedLogin(st)
	uc := newTestUseCase(st)

	out, token, err := uc.Login(context.Background(), dto.LoginRequest{
		StoreCode: "ABCDE", UserCode: "FGHIJ",
	})
	require.NoError(t, err)
	assert.Equal(t, store.ID, out.StoreID)
	assert.Equal(t, user.ID, out.UserID)
	assert.Equal(t, store.AccountID, out.AccountID)

	// El token firmado transporta exactamente la identidad resuelta.
	sess, err := session.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, store.ID, sess.StoreID)
	assert.Equal(t, user.ID, sess.UserID)
	assert.Equal(t, store.AccountID, sess.AccountID)
	assert.True(t, sess.IsLoggedIn())
}

// Los códigos en minúsculas resuelven igual que en mayúsculas.
func TestLogin_NormalizaMayusculas(t *testing.T) {
	st := newFakeState()
	seedLogin(st)
	uc := newTestUseCase(st)

	_, _, err := uc.Login(context.Background(), dto.LoginRequest{
		StoreCode: "abcde", UserCode: "fghij",
	})
	assert.NoError(t, err)
}

func TestLogin_CodigoDeTiendaInvalido(t *testing.T) {
	st := newFakeState()
	seedLogin(st)
	uc := newTestUseCase(st)

	_, _, err := uc.Login(context.Background(), dto.LoginRequest{
		StoreCode: "XXXXX", UserCode: "FGHIJ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStoreCode)
}

// Un código de usuario válido para OTRA tienda no autentica en esta: el
// código de usuario solo vale en combinación con su tienda mapeada.
func TestLogin_CodigoDeUsuarioDeOtraTienda(t *testing.T) {
	st := newFakeState()
	seedLogin(st)
	// Otra cuenta con su propia tienda y un usuario ZZZZZ válido allí.
	other := &entity.Store{ID: "st-2", AccountID: "ac-2", Name: "Otra", Code: "QWERT"}
	stranger := &entity.User{ID: "us-2", AccountID: "ac-2", Name: "Beto", Code: "ZZZZZ", Role: entity.RoleStaff}
	st.stores[other.ID] = other
	st.users[stranger.ID] = stranger
	st.userStores[stranger.ID] = map[string]bool{other.ID: true}
	uc := newTestUseCase(st)

	_, _, err := uc.Login(context.Background(), dto.LoginRequest{
		StoreCode: "ABCDE", UserCode: "ZZZZZ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidUserCode)

	// Y en su propia tienda sí entra.
	_, _, err = uc.Login(context.Background(), dto.LoginRequest{
		StoreCode: "QWERT", UserCode: "ZZZZZ",
	})
	assert.NoError(t, err)
}

// Usuario de la misma cuenta pero sin mapping a la tienda: tampoco entra.
func TestLogin_UsuarioSinMappingALaTienda(t *testing.T) {
	st := newFakeState()
	store, _ := seedLogin(st)
	unmapped := &entity.User{ID: "us-3", AccountID: store.AccountID, Name: "Caro", Code: "KLMNP", Role: entity.RoleStaff}
	st.users[unmapped.ID] = unmapped // sin entrada en userStores
	uc := newTestUseCase(st)

	_, _, err := uc.Login(context.Background(), dto.LoginRequest{
		StoreCode: "ABCDE", UserCode: "KLMNP",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidUserCode)
}

func TestLogin_EntradaMalformada(t *testing.T) {
	st := newFakeState()
	seedLogin(st)
	uc := newTestUseCase(st)

	_, _, err := uc.Login(context.Background(), dto.LoginRequest{StoreCode: "ABC", UserCode: "FGHIJ"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetSession — frescura del rol
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSession_RolSiempreFresco(t *testing.T) {
	st := newFakeState()
	store, user := seedLogin(st)
	user.Role = entity.RoleStaff
	uc := newTestUseCase(st)

	sess := session.Session{StoreID: store.ID, UserID: user.ID, AccountID: store.AccountID}

	out, err := uc.GetSession(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, out.Role)
	assert.True(t, out.IsLoggedIn)

	// Un admin promueve al usuario a mitad de sesión: la SIGUIENTE
	// consulta ya ve el rol nuevo, sin re-login.
	user.Role = entity.RoleAdmin
	out, err = uc.GetSession(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)
}

func TestGetSession_Anonima(t *testing.T) {
	st := newFakeState()
	uc := newTestUseCase(st)

	out, err := uc.GetSession(context.Background(), session.Session{})
	require.NoError(t, err)
	assert.False(t, out.IsLoggedIn)
	assert.Empty(t, out.Role)
}
