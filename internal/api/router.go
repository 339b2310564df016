package api

import (
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/panaderia/bread-orders/docs"
	"github.com/panaderia/bread-orders/internal/api/handler"
	"github.com/panaderia/bread-orders/internal/api/middleware"
	"github.com/panaderia/bread-orders/internal/core/ports"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Auth     ports.AuthService
	Orders   ports.OrderService
	Items    ports.ItemService
	Users    ports.UserService
	Sessions ports.SessionStore
	DataDir  handler.DataDir

	PublicDir    string
	CookieSecure bool
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORS())
	e.Use(middleware.Session(d.Auth))
	e.Use(middleware.PageGateWithConfig(middleware.PageGateConfig{Skipper: isDocs}))
	if d.PublicDir != "" {
		e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
			Skipper: isDocs,
			Root:    d.PublicDir,
			Index:   "index.html",
		}))
	}

	requireAuth := middleware.RequireAuth()
	requireAdmin := middleware.RequireAdmin()

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions, d.CookieSecure)
	orderHandler := handler.NewOrderHandler(d.Orders)
	itemHandler := handler.NewItemHandler(d.Items)
	userHandler := handler.NewUserHandler(d.Users, d.Sessions)

	// --- Auth routes ---
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/logout", authHandler.Logout)
	e.GET("/api/me", authHandler.Me)

	// --- Orders ---
	e.GET("/api/orders", orderHandler.List)
	e.POST("/api/orders", orderHandler.Create, requireAuth)
	e.PUT("/api/orders/:i", orderHandler.Replace, requireAuth)
	e.DELETE("/api/orders/:i", orderHandler.Delete, requireAuth)
	e.GET("/api/summary", orderHandler.Summary, requireAuth)

	// --- Catalog ---
	e.GET("/api/items", itemHandler.List)
	e.POST("/api/items", itemHandler.Create, requireAdmin)
	e.PUT("/api/items/:i", itemHandler.Rename, requireAdmin)

	// --- Accounts ---
	e.GET("/api/users", userHandler.List, requireAdmin)
	e.POST("/api/users", userHandler.Create, requireAdmin)
	e.PUT("/api/users/:username", userHandler.Update, requireAdmin)
	e.DELETE("/api/users/:username", userHandler.Delete, requireAdmin)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DataDir)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: is the data directory usable?

	// --- Operations ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func isDocs(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/swagger/")
}
