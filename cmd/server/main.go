package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/panaderia/bread-orders/internal/api"
	"github.com/panaderia/bread-orders/internal/api/metrics"
	"github.com/panaderia/bread-orders/internal/core/domain"
	"github.com/panaderia/bread-orders/internal/core/service"
	"github.com/panaderia/bread-orders/internal/infrastructure/config"
	"github.com/panaderia/bread-orders/internal/infrastructure/session"
	"github.com/panaderia/bread-orders/internal/infrastructure/storage/jsonfile"
	"github.com/panaderia/bread-orders/pkg/logger"
)

// @title        Bread Orders API
// @version      1.0
// @description  Shared bread order list with a session-cookie login.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "bread-orders",
	})

	store := jsonfile.New(cfg.DataDir, log)
	store.OnShadow(func(file string) {
		metrics.StorageShadowWritesTotal.WithLabelValues(file).Inc()
	})
	if err := store.EnsureDir(); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("prepare data directory")
	}

	orders := jsonfile.NewOrderRepository(store)
	items := jsonfile.NewItemRepository(store)
	users := jsonfile.NewUserRepository(store)

	sessions := session.NewMemoryStore()
	userService := service.NewUserService(users, sessions, cfg.Auth.PasswordIterations, log)

	if err := seed(ctx, cfg, orders, items, userService); err != nil {
		log.Fatal().Err(err).Msg("seed data")
	}

	e := api.NewRouter(api.Deps{
		Auth:         service.NewAuthService(users, sessions, log),
		Orders:       service.NewOrderService(orders, log),
		Items:        service.NewItemService(items, orders, log),
		Users:        userService,
		Sessions:     sessions,
		DataDir:      store,
		PublicDir:    cfg.PublicDir,
		CookieSecure: cfg.Auth.CookieSecure,
		Log:          log,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort("", cfg.Port),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("data_dir", cfg.DataDir).Str("public_dir", cfg.PublicDir).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()
	stop()
	log.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	sessions.Clear()
	metrics.ActiveSessions.Set(0)

	log.Info().Msg("shutdown complete")
}

// seed writes first-boot defaults for whichever data files are missing.
func seed(
	ctx context.Context,
	cfg *config.Config,
	orders *jsonfile.RecordStore[domain.Order],
	items *jsonfile.RecordStore[string],
	users *service.UserService,
) error {
	log := logger.Get()
	if ok, err := items.Seed(slices.Clone(domain.DefaultCatalog)); err != nil {
		return err
	} else if ok {
		log.Info().Strs("items", domain.DefaultCatalog).Msg("default catalog written")
	}
	if _, err := orders.Seed([]domain.Order{}); err != nil {
		return err
	}

	created, err := users.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		ev := log.Info()
		if cfg.Auth.AdminPassword == config.DefaultAdminPassword {
			ev = log.Warn()
		}
		ev.Str("username", cfg.Auth.AdminUsername).
			Bool("default_password", cfg.Auth.AdminPassword == config.DefaultAdminPassword).
			Msg("initial admin account created")
	}
	return nil
}
