// Package bootstrap handles application initialization and lifecycle
// management for the audit service.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonesrussell/seo-audit/internal/logger"
)

const version = "dev"

// Start initializes and runs the audit service until interrupted.
func Start() error {
	// Phase 1: Load config and create logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg, version)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Phase 2: Setup database
	db, err := SetupDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Failed to close database", logger.Error(closeErr))
		}
	}()

	// Phase 3: Setup event publisher (optional)
	publisher := SetupEventPublisher(cfg, log)

	// Phase 4: Build services and HTTP server
	deps, err := SetupServices(cfg, db, publisher, log)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}
	server := SetupHTTPServer(cfg, deps, log)

	// Phase 5: Start the crawl watcher
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if deps.Watcher != nil {
		deps.Watcher.Start(ctx)
		defer deps.Watcher.Stop()
	}

	log.Info("Starting HTTP server",
		logger.String("host", cfg.Server.Host),
		logger.Int("port", cfg.Server.Port),
	)

	errChan := make(chan error, 1)
	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			errChan <- serveErr
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case runErr := <-errChan:
		log.Error("Server error", logger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	case sig := <-quit:
		log.Info("Shutting down", logger.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer shutdownCancel()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		return fmt.Errorf("shutdown error: %w", shutdownErr)
	}

	log.Info("Server exited")
	return nil
}
