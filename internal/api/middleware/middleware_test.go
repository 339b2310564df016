package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/panaderia/bread-orders/internal/core/domain"
)

type stubAuth struct {
	sessions map[string]domain.Session
}

func (s *stubAuth) Login(context.Context, string, string) (*domain.Session, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuth) Logout(context.Context, string) {}

func (s *stubAuth) CurrentUser(_ context.Context, token string) (*domain.Session, bool) {
	sess, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	return &sess, true
}

var testAuth = &stubAuth{sessions: map[string]domain.Session{
	"admin-token": {Token: "admin-token", Username: "admin", Role: domain.RoleAdmin},
	"user-token":  {Token: "user-token", Username: "alice", Role: domain.RoleUser},
}}

// run pushes a request through Session followed by mw and reports whether the
// final handler was reached.
func run(t *testing.T, mw echo.MiddlewareFunc, method, path, token string) (*httptest.ResponseRecorder, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := Session(testAuth)(mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}))
	err := h(c)
	return rec, called, err
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

func TestSession_ResolvesCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "user-token"})
	c := e.NewContext(req, httptest.NewRecorder())

	h := Session(testAuth)(func(c echo.Context) error {
		sess, ok := SessionFrom(c)
		if !ok {
			t.Fatalf("session not resolved")
		}
		if sess.Username != "alice" || sess.Role != domain.RoleUser {
			t.Fatalf("unexpected session: %+v", sess)
		}
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestSession_StoresOnlyTheSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "admin-token"})
	c := e.NewContext(req, httptest.NewRecorder())

	h := Session(testAuth)(func(c echo.Context) error {
		if c.Get("username") != nil || c.Get("role") != nil {
			t.Fatalf("identity must be read through SessionFrom")
		}
		if sess, ok := SessionFrom(c); !ok || !sess.IsAdmin() {
			t.Fatalf("expected admin session, got %+v", sess)
		}
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestSession_UnknownTokenIsAnonymous(t *testing.T) {
	_, called, err := run(t, passthrough, http.MethodGet, "/api/me", "forged")
	if err != nil || !called {
		t.Fatalf("expected pass-through, err=%v called=%v", err, called)
	}
}

func TestRequireAuth(t *testing.T) {
	_, called, err := run(t, RequireAuth(), http.MethodPost, "/api/orders", "")
	if called {
		t.Fatalf("should not reach next")
	}
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	_, called, err = run(t, RequireAuth(), http.MethodPost, "/api/orders", "user-token")
	if err != nil || !called {
		t.Fatalf("expected access, err=%v", err)
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "anonymous", token: "", wantErr: domain.ErrUnauthorized},
		{name: "user", token: "user-token", wantErr: domain.ErrForbidden},
		{name: "admin", token: "admin-token", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, called, err := run(t, RequireAdmin(), http.MethodPost, "/api/items", tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if called != (tt.wantErr == nil) {
				t.Fatalf("unexpected called=%v", called)
			}
		})
	}
}

func TestRBAC_MultipleRoles(t *testing.T) {
	_, called, err := run(t, RBAC(domain.RoleAdmin, domain.RoleUser), http.MethodGet, "/", "user-token")
	if err != nil || !called {
		t.Fatalf("expected access, err=%v", err)
	}
}

func TestPageGate(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		token    string
		location string // empty: served
	}{
		{name: "anonymous home", path: "/", location: LoginPage},
		{name: "anonymous index", path: "/index.html", location: LoginPage},
		{name: "anonymous admin", path: AdminPage, location: LoginPage},
		{name: "anonymous login", path: LoginPage},
		{name: "anonymous asset", path: "/app.js"},
		{name: "anonymous manifest", path: "/manifest.json"},
		{name: "user home", path: "/", token: "user-token"},
		{name: "user login", path: LoginPage, token: "user-token", location: HomePage},
		{name: "user admin", path: AdminPage, token: "user-token", location: HomePage},
		{name: "admin admin", path: AdminPage, token: "admin-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, called, err := run(t, PageGateWithConfig(PageGateConfig{}), http.MethodGet, tt.path, tt.token)
			if err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if tt.location == "" {
				if !called || rec.Code != http.StatusOK {
					t.Fatalf("expected page to be served, got %d", rec.Code)
				}
				return
			}
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusFound {
				t.Fatalf("expected 302, got %d", rec.Code)
			}
			if got := rec.Header().Get(echo.HeaderLocation); got != tt.location {
				t.Fatalf("expected redirect to %s, got %s", tt.location, got)
			}
		})
	}
}

func TestPageGate_IgnoresNonGet(t *testing.T) {
	_, called, err := run(t, PageGateWithConfig(PageGateConfig{}), http.MethodPost, "/", "")
	if err != nil || !called {
		t.Fatalf("expected pass-through for POST, err=%v", err)
	}
}

func TestPageGate_Skipper(t *testing.T) {
	gate := PageGateWithConfig(PageGateConfig{
		Skipper: func(c echo.Context) bool { return c.Request().URL.Path == "/swagger/index.html" },
	})
	_, called, err := run(t, gate, http.MethodGet, "/swagger/index.html", "")
	if err != nil || !called {
		t.Fatalf("expected skipped path to pass, err=%v", err)
	}
}
