package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,         default=8080"`
	Env      string `env:"ENV,          default=development"`
	LogLevel string `env:"LOG_LEVEL,    default=info"`

	// APIBaseURL is the remote canteen backend all domain calls are
	// proxied to, including any path prefix (e.g. ".../api").
	APIBaseURL string `env:"API_BASE_URL, default=http://localhost:5000/api"`

	// CookieSecret signs the browser session cookie.
	CookieSecret string        `env:"COOKIE_SECRET"`
	SessionTTL   time.Duration `env:"SESSION_TTL,  default=24h"`

	Redis RedisConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.CookieSecret == "" {
		return nil, fmt.Errorf("load config: COOKIE_SECRET is required")
	}
	return &cfg, nil
}
