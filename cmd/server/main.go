// @title        Rising Hub API
// @version      1.0
// @description  Community hub API: Google sign-in, news posts and the news vote ledger.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/risinghub/hub/internal/adapters/handler/http"
	"github.com/risinghub/hub/internal/adapters/oauth/google"
	"github.com/risinghub/hub/internal/adapters/repository/sqlstore"
	"github.com/risinghub/hub/internal/config"
	"github.com/risinghub/hub/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	driver, err := sqlstore.ParseDriver(cfg.DBDriver)
	if err != nil {
		return err
	}

	store, err := sqlstore.Open(ctx, driver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	// Repositories
	userRepo := sqlstore.NewUserRepository(store)
	authRepo := sqlstore.NewAuthRepository(store)
	newsRepo := sqlstore.NewNewsRepository(store)
	voteRepo := sqlstore.NewVoteRepository(store)

	// Services
	authService := services.NewAuthService(userRepo, authRepo, google.NewVerifier(), services.AuthConfig{
		JWTSecret:      []byte(cfg.JWTSecret),
		GoogleClientID: cfg.GoogleClientID,
	})
	userService := services.NewUserService(userRepo)
	newsService := services.NewNewsService(newsRepo)
	voteService := services.NewVoteService(voteRepo, logger)

	handler := http.NewHandler(http.Handlers{
		Auth: http.NewAuthHandler(authService, cfg.AuthRedirectURL, cfg.CookieDomain, cfg.CookieSameSite),
		User: http.NewUserHandler(userService),
		News: http.NewNewsHandler(newsService),
		Vote: http.NewVoteHandler(voteService),
	}, http.RouterConfig{
		AuthService: authService,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})

	server := &stdhttp.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "db_driver", driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
