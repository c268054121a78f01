package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/pos-api/internal/interfaces/http"
	"github.com/jhoicas/pos-api/pkg/session"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret    = "test-secret-key-for-unit-tests"
	testStoreID   = "00000000-0000-0000-0000-000000000001"
	testUserID    = "00000000-0000-0000-0000-000000000002"
	testAccountID = "00000000-0000-0000-0000-000000000003"
)

// fakeRoles responde GetRole desde un mapa, como lo haría la base.
type fakeRoles struct {
	roles map[string]string
	err   error
}

func (f *fakeRoles) GetRole(_ context.Context, userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.roles[userID], nil
}

// buildSessionApp construye una app Fiber con LoadSession global, una ruta
// protegida por RequireSession y otra por RequireAdmin.
func buildSessionApp(roles *fakeRoles) *fiber.App {
	app := fiber.New()
	app.Use(apphttp.LoadSession(testSecret))
	app.Get("/protected", apphttp.RequireSession(), func(c *fiber.Ctx) error {
		sess := apphttp.GetSession(c)
		return c.JSON(fiber.Map{
			"store_id":   sess.StoreID,
			"user_id":    sess.UserID,
			"account_id": sess.AccountID,
		})
	})
	app.Get("/admin", apphttp.RequireSession(), apphttp.RequireAdmin(roles), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

// sessionCookie genera una cookie de sesión firmada válida por una hora.
func sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()
	tok, err := session.Generate(testSecret, session.Session{
		StoreID:   testStoreID,
		UserID:    testUserID,
		AccountID: testAccountID,
	}, "pos-test", time.Hour)
	require.NoError(t, err, "debe generarse un token de sesión válido")
	return &http.Cookie{Name: session.CookieName, Value: tok}
}

// doGet lanza un GET con la cookie indicada (nil = sin cookie).
func doGet(t *testing.T, app *fiber.App, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireSession
// ──────────────────────────────────────────────────────────────────────────────

// Cookie válida → 200 y la sesión queda disponible en el handler.
func TestRequireSession_CookieValida(t *testing.T) {
	app := buildSessionApp(&fakeRoles{})
	resp := doGet(t, app, "/protected", sessionCookie(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testStoreID, body["store_id"])
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testAccountID, body["account_id"])
}

// Sin cookie → 401 SESSION_REQUIRED.
func TestRequireSession_SinCookie_Retorna401(t *testing.T) {
	app := buildSessionApp(&fakeRoles{})
	resp := doGet(t, app, "/protected", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "SESSION_REQUIRED")
}

// Cookie manipulada (firma rota) → sesión anónima → 401.
func TestRequireSession_CookieManipulada_Retorna401(t *testing.T) {
	app := buildSessionApp(&fakeRoles{})
	c := sessionCookie(t)
	c.Value = c.Value + "x"
	resp := doGet(t, app, "/protected", c)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"una cookie con firma inválida debe tratarse como anónima")
}

// Cookie expirada → 401.
func TestRequireSession_CookieExpirada_Retorna401(t *testing.T) {
	app := buildSessionApp(&fakeRoles{})
	tok, err := session.Generate(testSecret, session.Session{
		StoreID:   testStoreID,
		UserID:    testUserID,
		AccountID: testAccountID,
	}, "pos-test", -time.Minute)
	require.NoError(t, err)

	resp := doGet(t, app, "/protected", &http.Cookie{Name: session.CookieName, Value: tok})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Cookie firmada con otro secret → 401.
func TestRequireSession_SecretIncorrecto_Retorna401(t *testing.T) {
	app := buildSessionApp(&fakeRoles{})
	tok, err := session.Generate("otro-secret-completamente-distinto", session.Session{
		StoreID:   testStoreID,
		UserID:    testUserID,
		AccountID: testAccountID,
	}, "pos-test", time.Hour)
	require.NoError(t, err)

	resp := doGet(t, app, "/protected", &http.Cookie{Name: session.CookieName, Value: tok})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAdmin — el rol se relee de la base en cada petición
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAdmin_AdminAccede(t *testing.T) {
	roles := &fakeRoles{roles: map[string]string{testUserID: "admin"}}
	app := buildSessionApp(roles)
	resp := doGet(t, app, "/admin", sessionCookie(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_StaffBloqueado_Retorna403(t *testing.T) {
	roles := &fakeRoles{roles: map[string]string{testUserID: "staff"}}
	app := buildSessionApp(roles)
	resp := doGet(t, app, "/admin", sessionCookie(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ADMIN_REQUIRED")
}

// Un cambio de rol aplica en la siguiente petición sin reemitir la cookie.
func TestRequireAdmin_CambioDeRol_AplicaSinNuevaCookie(t *testing.T) {
	roles := &fakeRoles{roles: map[string]string{testUserID: "staff"}}
	app := buildSessionApp(roles)
	cookie := sessionCookie(t)

	resp := doGet(t, app, "/admin", cookie)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "staff no debe entrar")

	// El admin promueve al usuario; misma cookie, nueva petición.
	roles.roles[testUserID] = "admin"
	resp = doGet(t, app, "/admin", cookie)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"la promoción debe aplicar en la siguiente petición con la misma cookie")
}

// Usuario eliminado después de emitir la cookie → 401.
func TestRequireAdmin_UsuarioEliminado_Retorna401(t *testing.T) {
	roles := &fakeRoles{roles: map[string]string{}} // GetRole devuelve ""
	app := buildSessionApp(roles)
	resp := doGet(t, app, "/admin", sessionCookie(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Base caída al verificar el rol → 503, nunca un pase silencioso.
func TestRequireAdmin_ErrorDeBase_Retorna503(t *testing.T) {
	roles := &fakeRoles{err: errors.New("conexión rechazada")}
	app := buildSessionApp(roles)
	resp := doGet(t, app, "/admin", sessionCookie(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ROLE_LOOKUP_FAILED")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de cookies — emisión y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestSetSessionCookie_EmiteCookieHTTPOnly(t *testing.T) {
	app := fiber.New()
	app.Post("/login", func(c *fiber.Ctx) error {
		apphttp.SetSessionCookie(c, "token-firmado", time.Hour, false)
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, session.CookieName, c.Name)
	assert.Equal(t, "token-firmado", c.Value)
	assert.True(t, c.HttpOnly, "la cookie debe ser HttpOnly")
	assert.Equal(t, "/", c.Path)
	assert.Greater(t, c.MaxAge, 0)
}

func TestClearSessionCookie_ExpiraLaCookie(t *testing.T) {
	app := fiber.New()
	app.Post("/logout", func(c *fiber.Ctx) error {
		apphttp.ClearSessionCookie(c, false)
		return c.SendStatus(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, session.CookieName, c.Name)
	assert.Empty(t, c.Value)
	assert.True(t, c.Expires.Before(time.Now()), "la cookie debe quedar expirada")
}
