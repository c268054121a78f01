// Package http expone la API REST del punto de venta sobre Fiber.
package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/pkg/session"
)

// Locals key para la sesión en Fiber.
const LocalSession = "session"

// RoleLookup lee el rol ACTUAL del usuario en la base. El rol nunca viaja
// en la cookie: una degradación hecha por el admin aplica en la siguiente
// petición protegida.
type RoleLookup interface {
	GetRole(ctx context.Context, userID string) (string, error)
}

// LoadSession parsea la cookie de sesión firmada y deja la sesión en
// c.Locals. Nunca corta la petición: una cookie ausente, vencida o
// manipulada deja una sesión anónima.
func LoadSession(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(session.CookieName)
		if token != "" {
			if sess, err := session.Parse(secret, token); err == nil {
				c.Locals(LocalSession, sess)
			}
		}
		return c.Next()
	}
}

// RequireSession corta con 401 si no hay sesión completa (tienda + usuario).
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetSession(c).IsLoggedIn() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "SESSION_REQUIRED", Message: "inicia sesión para continuar",
			})
		}
		return c.Next()
	}
}

// RequireAdmin corta con 403 si el usuario de la sesión no es admin. El rol
// se relee de la base en cada petición.
func RequireAdmin(roles RoleLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := GetSession(c)
		if !sess.IsLoggedIn() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "SESSION_REQUIRED", Message: "inicia sesión para continuar",
			})
		}
		role, err := roles.GetRole(c.UserContext(), sess.UserID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code: "ROLE_LOOKUP_FAILED", Message: "no se pudo verificar el rol",
			})
		}
		if role == "" {
			// El usuario fue eliminado después de emitir la cookie.
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "SESSION_REQUIRED", Message: "inicia sesión para continuar",
			})
		}
		if role != entity.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "ADMIN_REQUIRED", Message: "requiere rol de administrador",
			})
		}
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después de LoadSession).
// Sin sesión devuelve el valor cero (anónima).
func GetSession(c *fiber.Ctx) session.Session {
	v := c.Locals(LocalSession)
	if v == nil {
		return session.Session{}
	}
	s, _ := v.(session.Session)
	return s
}

// SetSessionCookie emite la cookie de sesión firmada. HttpOnly siempre;
// Secure solo en producción para no romper el desarrollo local sin TLS.
func SetSessionCookie(c *fiber.Ctx, token string, ttl time.Duration, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookie borra la cookie de sesión (logout).
func ClearSessionCookie(c *fiber.Ctx, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
