package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/callboard/callboard-backend/internal/shared"
)

type contextKey string

const claimsKey contextKey = "jwt_claims"

type Middleware struct {
	tokens   *TokenManager
	sessions *SessionRegistry
}

func NewMiddleware(tokens *TokenManager, sessions *SessionRegistry) *Middleware {
	return &Middleware{
		tokens:   tokens,
		sessions: sessions,
	}
}

func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return shared.Unauthorized("missing_token", "authorization header required")
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return shared.Unauthorized("invalid_token", "bearer token required")
		}

		claims, err := m.tokens.Validate(authHeader)
		if err != nil {
			if err == ErrExpiredToken {
				return shared.Unauthorized("token_expired", "token has expired")
			}
			return shared.Unauthorized("invalid_token", "invalid or malformed token")
		}

		if m.sessions != nil {
			if err := m.sessions.Validate(c.Request().Context(), claims.ID); err != nil {
				if err == shared.ErrSessionRevoked {
					return shared.Unauthorized("session_revoked", "session is no longer active")
				}
				return shared.InternalError("session_check_failed", "failed to verify session")
			}
		}

		ctx := context.WithValue(c.Request().Context(), claimsKey, claims)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

func GetClaims(c echo.Context) *Claims {
	claims, ok := c.Request().Context().Value(claimsKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}

func RequireAuth(c echo.Context) (uint, error) {
	claims := GetClaims(c)
	if claims == nil {
		return 0, shared.Unauthorized("auth_required", "authentication required")
	}
	return claims.UserID, nil
}

func RequireAdmin(c echo.Context) (*Claims, error) {
	claims := GetClaims(c)
	if claims == nil {
		return nil, shared.Unauthorized("auth_required", "authentication required")
	}
	if claims.Role != shared.RoleAdmin {
		return nil, shared.Forbidden("admin_required", "admin access required")
	}
	return claims, nil
}

func SetClaimsForTest(c echo.Context, claims *Claims) {
	ctx := context.WithValue(c.Request().Context(), claimsKey, claims)
	c.SetRequest(c.Request().WithContext(ctx))
}
