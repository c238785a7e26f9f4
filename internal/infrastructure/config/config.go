package config

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=5000"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Session   SessionConfig
	RateLimit RateLimitConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	WordPress WordPressConfig
	Review    ReviewConfig
}

type SessionConfig struct {
	// TTL defaults to 2h; development deployments override to 4h.
	TTL          time.Duration `env:"SESSION_TTL,           default=2h"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=true"`

	// CookieSameSite is resolved in Load: Strict everywhere except
	// development, which relaxes to Lax for cross-port local frontends.
	CookieSameSite http.SameSite
}

type RateLimitConfig struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS, default=120"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW,   default=1m"`
}

type MongoConfig struct {
	// URI empty selects the in-memory directory (development and tests).
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=rankitpro"`
}

type RedisConfig struct {
	// Addr empty selects in-memory sessions, rate limiting, and sync dedup.
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type WordPressConfig struct {
	// BaseURL empty disables syndication; Publish then reports the post as
	// published without a remote id.
	BaseURL     string `env:"WORDPRESS_BASE_URL"`
	Username    string `env:"WORDPRESS_USERNAME"`
	AppPassword string `env:"WORDPRESS_APP_PASSWORD"`
}

type ReviewConfig struct {
	Workers   int           `env:"REVIEW_WORKERS,    default=4"`
	ScanEvery time.Duration `env:"REVIEW_SCAN_EVERY, default=1m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg.Session.CookieSameSite = http.SameSiteStrictMode
	if cfg.Env == "development" {
		// Longer sessions and lax cookies for local iteration.
		if cfg.Session.TTL == 2*time.Hour {
			cfg.Session.TTL = 4 * time.Hour
		}
		cfg.Session.CookieSecure = false
		cfg.Session.CookieSameSite = http.SameSiteLaxMode
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = "dev-only-secret"
		}
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("load config: JWT_SECRET is required outside development")
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
