package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/odontosys/odontosys/internal/platform/apperr"
)

// Roles recognized by the API.
const (
	RoleAdmin     = "admin"
	RoleFrontDesk = "front_desk"
	RoleDentist   = "dentist"
)

// ValidRole reports whether the role is one the API recognizes.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleFrontDesk, RoleDentist:
		return true
	}
	return false
}

// RequireRole rejects requests whose authenticated role is not in the
// allowed set. It must run after Middleware.
func RequireRole(allowed ...string) echo.MiddlewareFunc {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := RoleFromContext(c)
			if role == "" {
				return apperr.Unauthorized("authentication required")
			}
			if _, ok := allowedSet[role]; !ok {
				return apperr.Forbidden("role %q may not perform this operation", role)
			}
			return next(c)
		}
	}
}
