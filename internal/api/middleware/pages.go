package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const (
	HomePage  = "/"
	LoginPage = "/login.html"
	AdminPage = "/admin.html"
)

// PageGateConfig configures PageGateWithConfig.
type PageGateConfig struct {
	// Skipper defines a function to skip the gate, e.g. for bundled docs.
	Skipper echomw.Skipper
}

// PageGateWithConfig guards HTML navigations. Anonymous visitors are sent to
// the login page, signed-in users skip the login page, and only admins reach
// the admin page. Other static assets pass through untouched.
func PageGateWithConfig(config PageGateConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = echomw.DefaultSkipper
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}
			req := c.Request()
			if req.Method != http.MethodGet && req.Method != http.MethodHead {
				return next(c)
			}
			path := req.URL.Path
			if !isPage(path) {
				return next(c)
			}

			sess, ok := SessionFrom(c)
			switch {
			case path == LoginPage:
				if ok {
					return c.Redirect(http.StatusFound, HomePage)
				}
			case !ok:
				return c.Redirect(http.StatusFound, LoginPage)
			case path == AdminPage && !sess.IsAdmin():
				return c.Redirect(http.StatusFound, HomePage)
			}
			return next(c)
		}
	}
}

func isPage(path string) bool {
	return path == HomePage || strings.HasSuffix(path, ".html")
}
