// Package database manages the PostgreSQL connection pool and schema.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" //nolint:blankimports // PostgreSQL driver

	"github.com/jonesrussell/seo-audit/internal/config"
	"github.com/jonesrussell/seo-audit/internal/logger"
)

const pingTimeout = 5 * time.Second

const schema = `
CREATE TABLE IF NOT EXISTS audit_projects (
	id           UUID PRIMARY KEY,
	domain       TEXT NOT NULL UNIQUE,
	status       TEXT NOT NULL DEFAULT 'pending',
	task_id      TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	completed_at TIMESTAMPTZ,
	audit_data   JSONB
);
CREATE INDEX IF NOT EXISTS idx_audit_projects_task_id ON audit_projects (task_id);
CREATE INDEX IF NOT EXISTS idx_audit_projects_status ON audit_projects (status);
`

type DB struct {
	db     *sql.DB
	logger logger.Logger
}

func New(cfg *config.Config, log logger.Logger) (*DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	if _, schemaErr := db.ExecContext(ctx, schema); schemaErr != nil {
		return nil, fmt.Errorf("ensure schema: %w", schemaErr)
	}

	log.Info("Database connection established",
		logger.String("host", cfg.Database.Host),
		logger.Int("port", cfg.Database.Port),
		logger.String("dbname", cfg.Database.DBName),
	)

	return &DB{
		db:     db,
		logger: log,
	}, nil
}

func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

func (d *DB) DB() *sql.DB {
	return d.db
}
