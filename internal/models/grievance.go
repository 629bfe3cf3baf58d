package models

import "time"

// GrievanceStatus is the workflow state of a grievance.
type GrievanceStatus string

const (
	StatusSubmitted     GrievanceStatus = "submitted"
	StatusUnderReview   GrievanceStatus = "under_review"
	StatusInvestigating GrievanceStatus = "investigating"
	StatusResolved      GrievanceStatus = "resolved"
	StatusClosed        GrievanceStatus = "closed"
)

// Valid reports whether the status is a known lifecycle state.
func (s GrievanceStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusInvestigating, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// RequiresResolution reports whether entering the status must carry
// resolution text.
func (s GrievanceStatus) RequiresResolution() bool {
	return s == StatusResolved || s == StatusClosed
}

// GrievanceCategory classifies the subject of a grievance.
type GrievanceCategory string

const (
	CategoryHarassment      GrievanceCategory = "harassment"
	CategoryDiscrimination  GrievanceCategory = "discrimination"
	CategoryWorkplaceSafety GrievanceCategory = "workplace_safety"
	CategoryCompensation    GrievanceCategory = "compensation"
	CategoryWorkload        GrievanceCategory = "workload"
	CategoryManagement      GrievanceCategory = "management"
	CategoryOther           GrievanceCategory = "other"
)

// Valid reports whether the category is a known value.
func (c GrievanceCategory) Valid() bool {
	switch c {
	case CategoryHarassment, CategoryDiscrimination, CategoryWorkplaceSafety,
		CategoryCompensation, CategoryWorkload, CategoryManagement, CategoryOther:
		return true
	}
	return false
}

// GrievancePriority is the urgency assigned by the filing employee.
type GrievancePriority string

const (
	PriorityLow      GrievancePriority = "low"
	PriorityMedium   GrievancePriority = "medium"
	PriorityHigh     GrievancePriority = "high"
	PriorityCritical GrievancePriority = "critical"
)

// Valid reports whether the priority is a known value.
func (p GrievancePriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Grievance is a filed employee complaint and its workflow state. Column
// names match the existing grievances table and must not change.
type Grievance struct {
	ID          string            `db:"id" json:"id"`
	EmployeeID  string            `db:"employee_id" json:"employee_id"`
	Title       string            `db:"title" json:"title"`
	Description string            `db:"description" json:"description"`
	Category    GrievanceCategory `db:"category" json:"category"`
	Priority    GrievancePriority `db:"priority" json:"priority"`
	Department  string            `db:"department" json:"department"`
	Status      GrievanceStatus   `db:"status" json:"status"`
	Resolution  *string           `db:"resolution" json:"resolution,omitempty"`
	ResolvedAt  *time.Time        `db:"resolved_at" json:"resolved_at,omitempty"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`

	// EmployeeName is joined from the employees table at read time.
	EmployeeName string `db:"employee_name" json:"employee_name,omitempty"`
}

// FilterAll is the sentinel disabling a status or priority filter.
const FilterAll = "all"

// GrievanceQuery captures listing criteria applied after the visibility
// filter. An empty value or FilterAll leaves the corresponding dimension
// unfiltered.
type GrievanceQuery struct {
	Search   string
	Status   string
	Priority string
}
