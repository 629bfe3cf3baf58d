package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/grievance-desk/internal/models"
)

// CommentRepository manages persistence for grievance comment threads.
// Threads are append-only: there are deliberately no update or delete
// statements here.
type CommentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository constructs a new repository.
func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create appends a comment to its grievance thread.
func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO grievance_comments (id, grievance_id, user_id, author_name, author_role, comment, created_at)
VALUES (:id, :grievance_id, :user_id, :author_name, :author_role, :comment, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// ListByGrievance returns the full thread ordered oldest first. The id
// tiebreak keeps the ordering deterministic for comments sharing a
// timestamp.
func (r *CommentRepository) ListByGrievance(ctx context.Context, grievanceID string) ([]models.Comment, error) {
	const query = `SELECT id, grievance_id, user_id, author_name, author_role, comment, created_at FROM grievance_comments WHERE grievance_id = $1 ORDER BY created_at ASC, id ASC`
	var comments []models.Comment
	if err := r.db.SelectContext(ctx, &comments, query, grievanceID); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
