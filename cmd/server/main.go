// Package main implements the entry point for the stash API server, a
// small CRUD service managing users and the items they own.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/avolkov/stash-api/internal/config"
	"github.com/avolkov/stash-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// run loads configuration, sets up logging and the database, wires the
// application together and serves HTTP until shutdown.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(logger.Config{
		Level: cfg.Server.LogLevel,
		File:  cfg.Server.LogFile,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
