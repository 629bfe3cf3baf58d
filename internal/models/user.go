package models

import "time"

// Role classifies an account for access-control decisions.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
)

// Privileged reports whether the role grants full grievance visibility and
// lifecycle-transition rights. Admin and HR are the only privileged roles;
// everything else is restricted to its own records.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleHR
}

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleAdmin, RoleHR:
		return true
	}
	return false
}

// Employee represents an account stored in the employees table.
type Employee struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         Role       `db:"role" json:"role"`
	Department   string     `db:"department" json:"department"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Principal is the authenticated actor performing an operation. It is resolved
// once per request from the access token and passed explicitly into every
// service call; nothing below the handler layer reads ambient auth state.
type Principal struct {
	ID         string `json:"id"`
	Role       Role   `json:"role"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
}

// Privileged reports whether the principal holds a privileged role.
func (p Principal) Privileged() bool {
	return p.Role.Privileged()
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
