// Package repository persists audit projects. Audit results live in a single
// JSONB blob column written whole on every update.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/seo-audit/internal/logger"
	"github.com/jonesrussell/seo-audit/internal/models"
)

// ErrNotFound is returned when no project matches the lookup.
var ErrNotFound = errors.New("audit project not found")

type AuditRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewAuditRepository(db *sql.DB, log logger.Logger) *AuditRepository {
	return &AuditRepository{
		db:     db,
		logger: log,
	}
}

// Upsert inserts the project or, when the domain already exists, replaces its
// status, task id, and blob. A fresh audit for a known domain reuses the row,
// so the persisted id is read back: on conflict the row keeps its original id,
// not the one generated here.
func (r *AuditRepository) Upsert(ctx context.Context, project *models.AuditProject) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}

	dataJSON, err := json.Marshal(project.Data)
	if err != nil {
		return fmt.Errorf("marshal audit data: %w", err)
	}

	query := `
		INSERT INTO audit_projects (id, domain, status, task_id, created_at, completed_at, audit_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (domain) DO UPDATE SET
			status = EXCLUDED.status,
			task_id = EXCLUDED.task_id,
			created_at = EXCLUDED.created_at,
			completed_at = EXCLUDED.completed_at,
			audit_data = EXCLUDED.audit_data
		RETURNING id
	`

	row := r.db.QueryRowContext(ctx,
		query,
		project.ID,
		project.Domain,
		project.Status,
		project.TaskID,
		project.CreatedAt,
		project.CompletedAt,
		dataJSON,
	)
	if err := row.Scan(&project.ID); err != nil {
		return fmt.Errorf("upsert audit project: %w", err)
	}

	return nil
}

// Save replaces the mutable columns of an existing project by id. The blob
// is written whole; concurrent writers are last-write-wins.
func (r *AuditRepository) Save(ctx context.Context, project *models.AuditProject) error {
	dataJSON, err := json.Marshal(project.Data)
	if err != nil {
		return fmt.Errorf("marshal audit data: %w", err)
	}

	query := `
		UPDATE audit_projects
		SET status = $2, task_id = $3, completed_at = $4, audit_data = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx,
		query,
		project.ID,
		project.Status,
		project.TaskID,
		project.CompletedAt,
		dataJSON,
	)
	if err != nil {
		return fmt.Errorf("update audit project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return ErrNotFound
	}

	return nil
}

const projectColumns = `id, domain, status, task_id, created_at, completed_at, audit_data`

func (r *AuditRepository) GetByID(ctx context.Context, id string) (*models.AuditProject, error) {
	query := `SELECT ` + projectColumns + ` FROM audit_projects WHERE id = $1`
	return r.scanProject(r.db.QueryRowContext(ctx, query, id))
}

func (r *AuditRepository) GetByDomain(ctx context.Context, domain string) (*models.AuditProject, error) {
	query := `SELECT ` + projectColumns + ` FROM audit_projects WHERE domain = $1`
	return r.scanProject(r.db.QueryRowContext(ctx, query, domain))
}

func (r *AuditRepository) GetByTaskID(ctx context.Context, taskID string) (*models.AuditProject, error) {
	query := `SELECT ` + projectColumns + ` FROM audit_projects WHERE task_id = $1`
	return r.scanProject(r.db.QueryRowContext(ctx, query, taskID))
}

// List returns all projects without their blobs, newest first.
func (r *AuditRepository) List(ctx context.Context) ([]models.AuditProject, error) {
	query := `
		SELECT id, domain, status, task_id, created_at, completed_at
		FROM audit_projects
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list audit projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	projects := make([]models.AuditProject, 0)
	for rows.Next() {
		var p models.AuditProject
		var completedAt sql.NullTime
		if scanErr := rows.Scan(&p.ID, &p.Domain, &p.Status, &p.TaskID, &p.CreatedAt, &completedAt); scanErr != nil {
			return nil, fmt.Errorf("scan audit project: %w", scanErr)
		}
		if completedAt.Valid {
			t := completedAt.Time
			p.CompletedAt = &t
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit projects: %w", err)
	}

	return projects, nil
}

// ListPending returns projects still waiting on crawl results.
func (r *AuditRepository) ListPending(ctx context.Context) ([]models.AuditProject, error) {
	query := `
		SELECT id, domain, status, task_id, created_at, completed_at
		FROM audit_projects
		WHERE status = $1 AND task_id <> ''
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	projects := make([]models.AuditProject, 0)
	for rows.Next() {
		var p models.AuditProject
		var completedAt sql.NullTime
		if scanErr := rows.Scan(&p.ID, &p.Domain, &p.Status, &p.TaskID, &p.CreatedAt, &completedAt); scanErr != nil {
			return nil, fmt.Errorf("scan pending project: %w", scanErr)
		}
		if completedAt.Valid {
			t := completedAt.Time
			p.CompletedAt = &t
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending projects: %w", err)
	}

	return projects, nil
}

func (r *AuditRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM audit_projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete audit project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *AuditRepository) scanProject(row *sql.Row) (*models.AuditProject, error) {
	var p models.AuditProject
	var completedAt sql.NullTime
	var dataJSON []byte

	err := row.Scan(&p.ID, &p.Domain, &p.Status, &p.TaskID, &p.CreatedAt, &completedAt, &dataJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan audit project: %w", err)
	}

	if completedAt.Valid {
		t := completedAt.Time
		p.CompletedAt = &t
	}

	p.Data = r.decodeBlob(p.ID, dataJSON)

	return &p, nil
}

// decodeBlob tolerates blobs written as a JSON-encoded string instead of an
// object by an earlier writer. A blob that decodes to neither is treated as
// absent rather than failing the read.
func (r *AuditRepository) decodeBlob(id string, raw []byte) *models.AuditData {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		raw = []byte(inner)
	}

	var data models.AuditData
	if err := json.Unmarshal(raw, &data); err != nil {
		r.logger.Warn("Unreadable audit blob, treating as empty",
			logger.String("project_id", id),
			logger.Error(err),
		)
		return nil
	}

	return &data
}
