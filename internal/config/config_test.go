package config

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_ADDR", "DB_DRIVER", "DATABASE_URL", "JWT_SECRET", "GOOGLE_CLIENT_ID",
		"AUTH_REDIRECT_URL", "COOKIE_DOMAIN", "COOKIE_SAMESITE", "CORS_ORIGINS",
		"LOG_LEVEL", "SHUTDOWN_TIMEOUT", "POSTGRES_HOST", "POSTGRES_PORT",
		"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "hub.db")
	t.Setenv("JWT_SECRET", "secret")

	cfg := FromEnv()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr)
	assert.Equal(t, "/", cfg.AuthRedirectURL)
	assert.Equal(t, http.SameSiteLaxMode, cfg.CookieSameSite)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestFromEnvAssemblesPostgresURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_USER", "hub")
	t.Setenv("POSTGRES_PASSWORD", "pw")
	t.Setenv("POSTGRES_DB", "hub")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("COOKIE_SAMESITE", "None")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := FromEnv()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://hub:pw@db:5432/hub?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, http.SameSiteNoneMode, cfg.CookieSameSite)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("COOKIE_SAMESITE", "sometimes")
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	err := FromEnv().Validate()
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{"DB_DRIVER", "DATABASE_URL", "JWT_SECRET", "COOKIE_SAMESITE", "LOG_LEVEL", "SHUTDOWN_TIMEOUT"} {
		assert.Contains(t, msg, want)
	}
}
