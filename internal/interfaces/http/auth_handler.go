package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/codes"
)

// AuthHandler maneja registro, login, logout y consulta de sesión.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	limiter LoginLimiter
	ttl     time.Duration
	secure  bool
}

// NewAuthHandler construye el handler de auth. limiter puede ser nil
// (limitador deshabilitado).
func NewAuthHandler(uc *auth.AuthUseCase, limiter LoginLimiter, ttl time.Duration, secure bool) *AuthHandler {
	return &AuthHandler{uc: uc, limiter: limiter, ttl: ttl, secure: secure}
}

// Register godoc
// @Summary      Registrar cuenta con su primera tienda y usuario admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos de la cuenta"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.AccountName == "" || in.StoreName == "" || in.AdminName == "" || in.AdminEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "account_name, store_name, admin_name y admin_email son requeridos"})
	}
	if len(in.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 6 caracteres"})
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			// Colisión de códigos persistente tras reintentos; reintentable.
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CODE_COLLISION", Message: "no se pudo asignar un código, intenta de nuevo"})
		}
		if errors.Is(err, codes.ErrExhausted) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "CODES_EXHAUSTED", Message: "no se pudo generar un código libre, intenta de nuevo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión con código de tienda y código de usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "store_code y user_code"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, token, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStoreCode) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_STORE_CODE", Message: domain.ErrInvalidStoreCode.Error()})
		}
		if errors.Is(err, domain.ErrInvalidUserCode) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_USER_CODE", Message: domain.ErrInvalidUserCode.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "los códigos deben tener 5 caracteres"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	if h.limiter != nil {
		_ = h.limiter.Reset(c.UserContext(), c.IP())
	}
	SetSessionCookie(c, token, h.ttl, h.secure)
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	ClearSessionCookie(c, h.secure)
	return c.SendStatus(fiber.StatusNoContent)
}

// GetSession godoc
// @Summary      Estado de la sesión actual (rol leído de la base)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) GetSession(c *fiber.Ctx) error {
	out, err := h.uc.GetSession(c.UserContext(), GetSession(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
