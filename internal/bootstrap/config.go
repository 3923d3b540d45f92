package bootstrap

import (
	"flag"
	"fmt"

	"github.com/jonesrussell/seo-audit/internal/config"
	"github.com/jonesrussell/seo-audit/internal/logger"
)

// LoadConfig loads configuration from the -config flag path plus the
// environment.
func LoadConfig() (*config.Config, error) {
	configPath := flag.String("config", "config.yml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// CreateLogger creates a logger instance from configuration.
func CreateLogger(cfg *config.Config, version string) (logger.Logger, error) {
	log, err := logger.New(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(
		logger.String("service", "seo-audit"),
		logger.String("version", version),
	), nil
}
