package service

import (
	"strings"

	"github.com/noah-isme/grievance-desk/internal/models"
)

// ApplyQuery narrows a grievance snapshot down to what one principal should
// see for the given criteria. It is a pure function: no store access, no
// mutation of the input, and the created_at-descending order established by
// the repository is preserved through every step.
//
// The visibility filter runs first and unconditionally; search and the
// status/priority filters only ever narrow the visible set.
func ApplyQuery(p models.Principal, grievances []models.Grievance, q models.GrievanceQuery) []models.Grievance {
	result := FilterVisible(p, grievances)

	if search := strings.TrimSpace(q.Search); search != "" {
		needle := strings.ToLower(search)
		filtered := result[:0:0]
		for _, g := range result {
			if strings.Contains(strings.ToLower(g.Title), needle) ||
				strings.Contains(strings.ToLower(g.Description), needle) {
				filtered = append(filtered, g)
			}
		}
		result = filtered
	}

	if q.Status != "" && q.Status != models.FilterAll {
		filtered := result[:0:0]
		for _, g := range result {
			if g.Status == models.GrievanceStatus(q.Status) {
				filtered = append(filtered, g)
			}
		}
		result = filtered
	}

	if q.Priority != "" && q.Priority != models.FilterAll {
		filtered := result[:0:0]
		for _, g := range result {
			if g.Priority == models.GrievancePriority(q.Priority) {
				filtered = append(filtered, g)
			}
		}
		result = filtered
	}

	return result
}
