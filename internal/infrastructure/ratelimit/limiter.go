// Package ratelimit limita los intentos de login por IP con contadores en
// Redis (ventana fija).
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/pos-api/pkg/config"
)

var (
	// ErrRateLimited indica que la IP agotó su cupo de intentos en la ventana.
	ErrRateLimited = errors.New("demasiados intentos de login")
	// ErrUnavailable indica que Redis no respondió.
	ErrUnavailable = errors.New("redis no disponible")
)

// Limiter cuenta intentos de login por IP sobre Redis.
//
// Semántica de ventana fija: el primer intento fija el TTL de la clave;
// cuando la clave expira el contador arranca de cero.
type Limiter struct {
	redis  redis.UniversalClient
	max    int
	window time.Duration
}

// New construye el limitador con el cliente Redis dado.
func New(redisClient redis.UniversalClient, cfg config.RateLimitConfig) *Limiter {
	return &Limiter{
		redis:  redisClient,
		max:    cfg.MaxAttempts,
		window: time.Duration(cfg.WindowSeconds) * time.Second,
	}
}

// Enforce registra un intento de login de la IP y devuelve ErrRateLimited
// si superó el cupo de la ventana.
func (l *Limiter) Enforce(ctx context.Context, ip string) error {
	if ip == "" {
		return nil
	}
	key := loginKey(ip)

	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	// Ventana fija: solo el primer intento fija el TTL.
	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	if count > int64(l.max) {
		return ErrRateLimited
	}
	return nil
}

// Reset limpia el contador de la IP tras un login exitoso.
func (l *Limiter) Reset(ctx context.Context, ip string) error {
	if ip == "" {
		return nil
	}
	if err := l.redis.Del(ctx, loginKey(ip)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func loginKey(ip string) string {
	return "ratelimit:login:" + ip
}
