package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/panaderia/bread-orders/internal/api/metrics"
	"github.com/panaderia/bread-orders/internal/api/middleware"
	"github.com/panaderia/bread-orders/internal/core/domain"
	"github.com/panaderia/bread-orders/internal/core/ports"
)

// sessionCounter reports the size of the session table for the
// active-sessions gauge.
type sessionCounter interface {
	Len() int
}

type AuthHandler struct {
	authService  ports.AuthService
	sessions     sessionCounter
	cookieSecure bool
}

func NewAuthHandler(authService ports.AuthService, sessions sessionCounter, cookieSecure bool) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, cookieSecure: cookieSecure}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	OK   bool              `json:"ok"`
	User domain.PublicUser `json:"user"`
}

type meResponse struct {
	User *domain.PublicUser `json:"user"`
}

// Login verifies credentials and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	sess, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.observeSessions()

	c.SetCookie(h.cookie(sess.Token, 0))
	return c.JSON(http.StatusOK, loginResponse{
		OK:   true,
		User: domain.PublicUser{Username: sess.Username, Role: sess.Role},
	})
}

// Logout drops the current session, if any, and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  okResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.CookieName); err == nil {
		h.authService.Logout(c.Request().Context(), cookie.Value)
		h.observeSessions()
	}
	c.SetCookie(h.cookie("", -1))
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// Me reports the signed-in user, or null.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  meResponse
// @Router       /api/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusOK, meResponse{})
	}
	return c.JSON(http.StatusOK, meResponse{
		User: &domain.PublicUser{Username: sess.Username, Role: sess.Role},
	})
}

func (h *AuthHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) observeSessions() {
	if h.sessions != nil {
		metrics.ActiveSessions.Set(float64(h.sessions.Len()))
	}
}
