package service

import "github.com/noah-isme/grievance-desk/internal/models"

// CanView is the sole access-control gate for grievance records. A
// privileged principal sees every grievance; a restricted principal sees
// only grievances it filed. Visibility is all-or-nothing per record: there
// is no partial-field redaction anywhere in the system.
func CanView(p models.Principal, g models.Grievance) bool {
	if p.Privileged() {
		return true
	}
	return g.EmployeeID == p.ID
}

// FilterVisible returns the subset of grievances the principal may see,
// preserving input order. The input slice is never mutated and the result is
// always a fresh slice.
func FilterVisible(p models.Principal, grievances []models.Grievance) []models.Grievance {
	visible := make([]models.Grievance, 0, len(grievances))
	for _, g := range grievances {
		if CanView(p, g) {
			visible = append(visible, g)
		}
	}
	return visible
}
