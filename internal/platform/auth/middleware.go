package auth

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/odontosys/odontosys/internal/platform/apperr"
)

// ClaimsKey is the echo context key under which verified claims live.
const ClaimsKey = "auth_claims"

// Middleware verifies the Bearer token on every request and stores the
// claims on the context. Requests without a valid token are rejected.
func Middleware(issuer *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return apperr.Unauthorized("missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return apperr.Unauthorized("malformed authorization header")
			}

			claims, err := issuer.Parse(parts[1])
			if err != nil {
				return apperr.Unauthorized("invalid or expired token")
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFromContext returns the verified claims, if the request carried any.
func ClaimsFromContext(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ClaimsKey).(*Claims)
	return claims, ok
}

// ActorFromContext returns the authenticated user's id. The second return
// is false when the request was not authenticated.
func ActorFromContext(c echo.Context) (uuid.UUID, bool) {
	claims, ok := ClaimsFromContext(c)
	if !ok || claims.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return claims.UserID, true
}

// RoleFromContext returns the authenticated user's role, or "".
func RoleFromContext(c echo.Context) string {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		return ""
	}
	return claims.Role
}
