package models

import "time"

// Comment belongs to exactly one grievance. Comments are append-only: they
// are never edited or deleted once posted. Author name and role are
// snapshotted at post time so the thread stays readable even if the account
// later changes. Column names match the existing grievance_comments table.
type Comment struct {
	ID          string    `db:"id" json:"id"`
	GrievanceID string    `db:"grievance_id" json:"grievance_id"`
	UserID      string    `db:"user_id" json:"user_id"`
	AuthorName  string    `db:"author_name" json:"author_name"`
	AuthorRole  Role      `db:"author_role" json:"author_role"`
	Comment     string    `db:"comment" json:"comment"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
