package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/comitanigiacomo/fiftytwo/internal/adapters/cache"
)

type Config struct {
	// Application
	AppEnv string
	Port   string

	// Database: pgx, postgres, sqlite or memory
	DBDriver     string
	DBConnection string

	// Redis is optional; an empty host disables caching and rate limiting
	Redis cache.Config

	// Security
	JWTSecret string
	JWTIssuer string
	JWTExpiry time.Duration
	DevLogin  bool

	// Rate limiting
	RateLimit       int
	RateLimitWindow time.Duration

	// Challenge
	TotalWeeks       int
	ReminderSchedule string

	// Observability
	SentryDSN string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		AppEnv: envString("APP_ENV", "development"),
		Port:   envString("PORT", "8080"),

		DBDriver: envString("DB_DRIVER", "pgx"),

		Redis: cache.Config{
			Host:     envString("REDIS_HOST", ""),
			Port:     envString("REDIS_PORT", "6379"),
			Password: envString("REDIS_PASSWORD", ""),
			DB:       envInt("REDIS_DB", 0),
		},

		JWTIssuer: envString("JWT_ISSUER", "fiftytwo-api"),
		JWTExpiry: envDuration("JWT_EXPIRY", 72*time.Hour),
		DevLogin:  envBool("DEV_LOGIN", false),

		RateLimit:       envInt("RATE_LIMIT", 100),
		RateLimitWindow: envDuration("RATE_LIMIT_WINDOW", time.Minute),

		TotalWeeks:       envInt("TOTAL_WEEKS", 52),
		ReminderSchedule: envString("REMINDER_SCHEDULE", "0 9 * * *"),

		SentryDSN: envString("SENTRY_DSN", ""),
	}

	cfg.DBConnection = envString("DB_CONNECTION", defaultConnection(cfg.DBDriver))

	// Dev mode signs tokens with a throwaway secret so the server can boot without setup.
	if cfg.IsDevelopment() {
		cfg.JWTSecret = envString("JWT_SECRET", "dev-secret-change-me")
	} else {
		cfg.JWTSecret = envRequired("JWT_SECRET")
	}

	return cfg
}

func defaultConnection(driver string) string {
	switch driver {
	case "sqlite":
		return "./data/fiftytwo.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_time_format=sqlite"
	case "memory":
		return ""
	default:
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			envString("DB_USER", "postgres"),
			envString("DB_PASSWORD", ""),
			envString("DB_HOST", "localhost"),
			envString("DB_PORT", "5432"),
			envString("DB_NAME", "fiftytwo"),
		)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsesSQL reports whether the configured driver needs a database connection.
func (c *Config) UsesSQL() bool {
	return c.DBDriver != "memory"
}
