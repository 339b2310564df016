package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=3000"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	DataDir   string `env:"DATA_DIR,   default=./data"`
	PublicDir string `env:"PUBLIC_DIR, default=./public"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Auth AuthConfig
}

type AuthConfig struct {
	AdminUsername      string `env:"ADMIN_USERNAME,      default=admin"`
	AdminPassword      string `env:"ADMIN_PASSWORD,      default=admin"`
	PasswordIterations int    `env:"PASSWORD_ITERATIONS, default=200000"`
	CookieSecure       bool   `env:"COOKIE_SECURE,       default=false"`
}

// DefaultAdminPassword is the seeded admin password when ADMIN_PASSWORD is unset.
const DefaultAdminPassword = "admin"

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith resolves the configuration from the given lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
