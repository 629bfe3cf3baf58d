package models

// AggregateStats is a derived, recomputable summary over a visible grievance
// set. It is never persisted; dimensions with zero occurrences are simply
// absent from the maps.
type AggregateStats struct {
	Total             int                       `json:"total"`
	ByStatus          map[GrievanceStatus]int   `json:"by_status"`
	ByCategory        map[GrievanceCategory]int `json:"by_category"`
	ByPriority        map[GrievancePriority]int `json:"by_priority"`
	ByDepartment      map[string]int            `json:"by_department"`
	AvgResolutionDays float64                   `json:"avg_resolution_days"`
}
