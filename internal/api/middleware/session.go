package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/panaderia/bread-orders/internal/core/domain"
	"github.com/panaderia/bread-orders/internal/core/ports"
)

// CookieName is the cookie carrying the session token.
const CookieName = "session"

const sessionKey = "session"

// Session resolves the session cookie and stores the session in the echo
// context. It never rejects a request; gates do that.
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err == nil && cookie.Value != "" {
				if sess, ok := auth.CurrentUser(c.Request().Context(), cookie.Value); ok {
					c.Set(sessionKey, sess)
				}
			}
			return next(c)
		}
	}
}

// SessionFrom returns the session resolved by the Session middleware.
func SessionFrom(c echo.Context) (*domain.Session, bool) {
	sess, ok := c.Get(sessionKey).(*domain.Session)
	return sess, ok && sess != nil
}
