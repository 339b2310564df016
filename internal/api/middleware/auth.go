package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/panaderia/bread-orders/internal/core/domain"
)

// RequireAuth rejects requests without a valid session with 401.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := SessionFrom(c); !ok {
				return domain.ErrUnauthorized
			}
			return next(c)
		}
	}
}
