package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/panaderia/bread-orders/internal/core/domain"
)

// RBAC enforces role-based access control: 401 without a session, 403 when
// the session's role is not allowed.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := SessionFrom(c)
			if !ok {
				return domain.ErrUnauthorized
			}
			if _, ok := allowed[sess.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// RequireAdmin admits admin sessions only.
func RequireAdmin() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin)
}
