// Package app wires configuration, logging, persistence, services and the
// HTTP server into a runnable application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/daybookapp/daybook-server/internal/adapter/postgres"
	catalogrepo "github.com/daybookapp/daybook-server/internal/adapter/postgres/catalog"
	entryrepo "github.com/daybookapp/daybook-server/internal/adapter/postgres/entry"
	folderrepo "github.com/daybookapp/daybook-server/internal/adapter/postgres/folder"
	todorepo "github.com/daybookapp/daybook-server/internal/adapter/postgres/todo"
	userrepo "github.com/daybookapp/daybook-server/internal/adapter/postgres/user"
	"github.com/daybookapp/daybook-server/internal/config"
	"github.com/daybookapp/daybook-server/internal/service/auth"
	"github.com/daybookapp/daybook-server/internal/service/journal"
	"github.com/daybookapp/daybook-server/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to the
// database, builds services and handlers, and serves HTTP until ctx is
// cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	folders := folderrepo.New(pool, txm)
	catalogs := catalogrepo.New(pool)
	entries := entryrepo.New(pool)
	todos := todorepo.New(pool)

	journalSvc := journal.NewService(logger, entries, folders, catalogs, todos, txm)
	authSvc := auth.NewService(logger, users, folders, entries, todos, catalogs, txm, cfg.Auth)

	router := rest.NewRouter(rest.Handlers{
		Auth:    rest.NewAuthHandler(authSvc, logger),
		Entries: rest.NewEntryHandler(journalSvc, logger),
		Folders: rest.NewFolderHandler(journalSvc, logger),
		Catalog: rest.NewCatalogHandler(journalSvc, logger),
		Todos:   rest.NewTodoHandler(journalSvc, logger),
		Health:  rest.NewHealthHandler(pool, BuildVersion()),
	}, logger)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}
