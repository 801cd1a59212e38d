package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/avolkov/stash-api/internal/config"
	"github.com/avolkov/stash-api/internal/platform/postgres"
	"github.com/avolkov/stash-api/internal/service"
)

// application holds the wired-up dependencies of the server.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	db          *sql.DB
	userService service.UserService
	itemService service.ItemService
}

// newApplication connects to the database, applies migrations, and wires
// the store adapters, services and handlers together.
func newApplication(cfg *config.Config, log *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg.Database.URL, log)
	if err != nil {
		return nil, err
	}

	if err := postgres.RunMigrations(context.Background(), db, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	userStore := postgres.NewUserStore(db, log)
	itemStore := postgres.NewItemStore(db, log)

	return &application{
		config:      cfg,
		logger:      log,
		db:          db,
		userService: service.NewUserService(userStore, log),
		itemService: service.NewItemService(itemStore, log),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
