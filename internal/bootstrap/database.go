package bootstrap

import (
	"fmt"

	"github.com/jonesrussell/seo-audit/internal/config"
	"github.com/jonesrussell/seo-audit/internal/database"
	"github.com/jonesrussell/seo-audit/internal/logger"
)

// SetupDatabase creates a database connection and applies the schema.
func SetupDatabase(cfg *config.Config, log logger.Logger) (*database.DB, error) {
	db, err := database.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("database connection: %w", err)
	}
	return db, nil
}
