// Package server wires configuration, storage, the identity provider, and
// the HTTP API together and runs the process until it is signalled to stop.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkarchive/internal/logging"
	"linkarchive/internal/server/auth"
	"linkarchive/internal/server/config"
	"linkarchive/internal/server/httpapi"
	"linkarchive/internal/server/render"
	"linkarchive/internal/server/repositories/repomanager"
	"linkarchive/internal/server/repositories/users"
	"linkarchive/internal/server/services"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	repos      repomanager.RepositoryManager
	httpServer *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	repos, err := repomanager.NewSQLiteRepositoryManager(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	provider, err := buildProvider(cfg, repos.Users(), logger)
	if err != nil {
		return nil, err
	}

	renderer, err := render.New()
	if err != nil {
		return nil, err
	}

	handler := httpapi.NewHandler(logger, provider, services.NewLinkService(repos.Links()), renderer)
	httpServer := httpapi.NewServer(cfg.EndpointAddr, httpapi.NewRouter(handler, logger), logger)

	return &App{
		config:     cfg,
		logger:     logger,
		repos:      repos,
		httpServer: httpServer,
	}, nil
}

// buildProvider selects the identity provider once at startup; the handlers
// never branch on it again.
func buildProvider(cfg *config.Config, users users.Repository, logger logging.Logger) (auth.Provider, error) {
	switch cfg.AuthProvider {
	case "", "embedded":
		return auth.NewEmbeddedProvider([]byte(cfg.SecretKey), cfg.ServerName, cfg.TokenValidity, users, logger), nil
	case "delegated":
		if cfg.AuthServiceURL == "" {
			return nil, errors.New("delegated provider requires an auth service URL")
		}
		return auth.NewDelegatedProvider(cfg.AuthServiceURL, cfg.TokenValidity, users, logger), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.AuthProvider)
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "starting app", "provider", app.config.AuthProvider)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.httpServer.Start(ctx)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			app.logger.Error(ctx, "http server error", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err)
	}
	if err := app.repos.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err)
	}
}
