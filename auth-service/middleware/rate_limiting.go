package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"wanderquest-backend/shared/utils/apperrors"
)

// AttemptLimiter decides whether one more attempt for key is allowed
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// LoginRateLimitMiddleware limits login attempts per client IP. When the
// limiter store fails the request is let through.
func LoginRateLimitMiddleware(limiter AttemptLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		allowed, err := limiter.Allow(c.Request.Context(), clientIP)
		if err != nil {
			log.Error().Err(err).Str("ip", clientIP).Msg("Login rate limiter unavailable")
			c.Next()
			return
		}

		if !allowed {
			log.Warn().Str("ip", clientIP).Msg("Too many login attempts")
			apperrors.Respond(c, apperrors.TooManyRequests)
			return
		}

		c.Next()
	}
}
