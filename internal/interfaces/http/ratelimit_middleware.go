package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/infrastructure/ratelimit"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// LoginLimiter limita intentos de login por IP.
type LoginLimiter interface {
	Enforce(ctx context.Context, ip string) error
	Reset(ctx context.Context, ip string) error
}

// LoginRateLimit corta con 429 cuando la IP agotó su cupo de intentos.
// Con Redis caído la petición pasa: el login sigue protegido por los
// códigos; perder disponibilidad por el limitador sería peor.
func LoginRateLimit(limiter LoginLimiter, log *logger.Logger) fiber.Handler {
	if limiter == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return func(c *fiber.Ctx) error {
		err := limiter.Enforce(c.UserContext(), c.IP())
		if err != nil {
			if errors.Is(err, ratelimit.ErrRateLimited) {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
					Code: "RATE_LIMITED", Message: "demasiados intentos, espera un momento",
				})
			}
			log.Warn().Err(err).Str("ip", c.IP()).Msg("limitador de login no disponible")
		}
		return c.Next()
	}
}
