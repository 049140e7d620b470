package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/campusevents/event-platform/internal/core/domain"
)

// RoleFrom returns the role Auth stored on the context, or "" when absent.
func RoleFrom(c echo.Context) string {
	role, _ := c.Get(ContextRole).(string)
	return role
}

// RBAC lets the request through only when the caller's role is one of roles.
// It reads what Auth stored, so it must be mounted after it.
func RBAC(roles ...string) echo.MiddlewareFunc {
	permitted := make(map[string]bool, len(roles))
	for _, r := range roles {
		permitted[r] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !permitted[RoleFrom(c)] {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
