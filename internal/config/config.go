// Package config loads the service configuration from the environment. A
// .env file in the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	DBDriver        string
	DatabaseURL     string
	JWTSecret       string
	GoogleClientID  string
	AuthRedirectURL string
	CookieDomain    string
	CookieSameSite  http.SameSite
	CORSOrigins     []string
	LogLevel        slog.Level
	ShutdownTimeout time.Duration

	// parse errors collected by FromEnv and reported by Validate
	parseErrs []error
}

// Load reads .env (a missing file is ignored) and the environment. Malformed
// values are reported by Validate, not here.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv(), nil
}

func FromEnv() *Config {
	cfg := &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", "0.0.0.0:8080"),
		DBDriver:        getEnv("DB_DRIVER", "postgres"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		GoogleClientID:  os.Getenv("GOOGLE_CLIENT_ID"),
		AuthRedirectURL: getEnv("AUTH_REDIRECT_URL", "/"),
		CookieDomain:    os.Getenv("COOKIE_DOMAIN"),
		CORSOrigins:     splitList(os.Getenv("CORS_ORIGINS")),
	}

	if cfg.DatabaseURL == "" && cfg.DBDriver == "postgres" {
		cfg.DatabaseURL = postgresURL()
	}

	sameSite, ok := parseSameSite(getEnv("COOKIE_SAMESITE", "lax"))
	if !ok {
		cfg.parseErrs = append(cfg.parseErrs, errors.New("COOKIE_SAMESITE must be lax, strict or none"))
	}
	cfg.CookieSameSite = sameSite

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		cfg.parseErrs = append(cfg.parseErrs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	timeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "30s"))
	if err != nil {
		cfg.parseErrs = append(cfg.parseErrs, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err))
	}
	cfg.ShutdownTimeout = timeout
	return cfg
}

// Validate returns every problem found, joined into one error.
func (c *Config) Validate() error {
	errs := append([]error(nil), c.parseErrs...)

	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("HTTP_ADDR must not be empty"))
	}
	if c.DBDriver != "postgres" && c.DBDriver != "sqlite" {
		errs = append(errs, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must not be negative"))
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func postgresURL() string {
	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		host,
		getEnv("POSTGRES_PORT", "5432"),
		os.Getenv("POSTGRES_DB"),
	)
}

func parseSameSite(value string) (http.SameSite, bool) {
	switch strings.ToLower(value) {
	case "lax":
		return http.SameSiteLaxMode, true
	case "strict":
		return http.SameSiteStrictMode, true
	case "none":
		return http.SameSiteNoneMode, true
	default:
		return http.SameSiteLaxMode, false
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
