package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/callboard/callboard-backend/internal/shared"
)

// SharedSecretMiddleware guards the bulk ingestion endpoint with a
// single static secret. The Authorization header may carry the secret
// raw or behind a "Bearer " prefix; CORS preflights pass through.
func SharedSecretMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodOptions {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return shared.Unauthorized("missing_token", "authorization header required")
			}

			if secret == "" {
				return shared.Unauthorized("secret_not_configured", "ingest secret not configured")
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				return shared.Unauthorized("invalid_secret", "invalid ingest secret")
			}

			return next(c)
		}
	}
}
