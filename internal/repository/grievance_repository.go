package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/grievance-desk/internal/models"
)

// GrievanceRepository manages persistence for grievances.
type GrievanceRepository struct {
	db *sqlx.DB
}

// NewGrievanceRepository constructs a new repository.
func NewGrievanceRepository(db *sqlx.DB) *GrievanceRepository {
	return &GrievanceRepository{db: db}
}

const grievanceColumns = `g.id, g.employee_id, g.title, g.description, g.category, g.priority, g.department, g.status, g.resolution, g.resolved_at, g.created_at, g.updated_at, e.full_name AS employee_name`

// Create inserts a new grievance.
func (r *GrievanceRepository) Create(ctx context.Context, g *models.Grievance) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now
	const query = `INSERT INTO grievances (id, employee_id, title, description, category, priority, department, status, created_at, updated_at)
VALUES (:id, :employee_id, :title, :description, :category, :priority, :department, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, g); err != nil {
		return fmt.Errorf("create grievance: %w", err)
	}
	return nil
}

// FindByID loads a grievance with the author's name joined in.
func (r *GrievanceRepository) FindByID(ctx context.Context, id string) (*models.Grievance, error) {
	query := fmt.Sprintf(`SELECT %s FROM grievances g JOIN employees e ON e.id = g.employee_id WHERE g.id = $1 LIMIT 1`, grievanceColumns)
	var g models.Grievance
	if err := r.db.GetContext(ctx, &g, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find grievance by id: %w", err)
	}
	return &g, nil
}

// ListAll returns every grievance ordered most recent first. Visibility,
// search and filters are applied by the service on this snapshot so the
// access decision lives in exactly one place.
func (r *GrievanceRepository) ListAll(ctx context.Context) ([]models.Grievance, error) {
	query := fmt.Sprintf(`SELECT %s FROM grievances g JOIN employees e ON e.id = g.employee_id ORDER BY g.created_at DESC`, grievanceColumns)
	var grievances []models.Grievance
	if err := r.db.SelectContext(ctx, &grievances, query); err != nil {
		return nil, fmt.Errorf("list grievances: %w", err)
	}
	return grievances, nil
}

// UpdateStatus commits a lifecycle transition in a single statement: status,
// resolution and resolved_at land together or not at all.
func (r *GrievanceRepository) UpdateStatus(ctx context.Context, id string, status models.GrievanceStatus, resolution *string, resolvedAt *time.Time, updatedAt time.Time) error {
	const query = `UPDATE grievances SET status = $2, resolution = $3, resolved_at = $4, updated_at = $5 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, resolution, resolvedAt, updatedAt)
	if err != nil {
		return fmt.Errorf("update grievance status: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
