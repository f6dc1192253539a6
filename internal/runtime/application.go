// Package runtime wires configuration, storage, services and the HTTP
// server into one application lifecycle.
package runtime

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/souqhub/marketplace/internal/auth"
	"github.com/souqhub/marketplace/internal/config"
	"github.com/souqhub/marketplace/internal/httpapi"
	"github.com/souqhub/marketplace/internal/logging"
	"github.com/souqhub/marketplace/internal/services/catalog"
	"github.com/souqhub/marketplace/internal/services/listings"
	"github.com/souqhub/marketplace/internal/services/stores"
	"github.com/souqhub/marketplace/internal/services/users"
	"github.com/souqhub/marketplace/internal/storage/postgres"
)

// Application holds the wired dependencies and manages the server lifecycle.
type Application struct {
	cfg    *config.Config
	log    *logging.Logger
	db     *sql.DB
	server *http.Server
}

// NewApplication loads configuration, opens the database, runs migrations
// and builds the HTTP server.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logging.New("marketplace", cfg.Logging.Level, cfg.Logging.Format)

	db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := postgres.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	repo := postgres.New(db)
	authn := auth.NewService(repo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.BcryptCost)
	handler := httpapi.NewHandler(
		log,
		authn,
		users.NewService(repo),
		stores.NewService(repo),
		catalog.NewService(repo, repo, repo),
		listings.NewService(repo, repo, repo),
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler.Router(cfg.CORS.AllowedOrigins),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Application{cfg: cfg, log: log, db: db, server: server}, nil
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the server fails.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.log.Info().Str("addr", a.server.Addr).Msg("http server listening")
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown drains in-flight requests and closes the database.
func (a *Application) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := a.db.Close(); err != nil {
		a.log.WithError(err).Warn().Msg("error closing database")
	}
	return nil
}
