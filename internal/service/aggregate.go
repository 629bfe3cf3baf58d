package service

import "github.com/noah-isme/grievance-desk/internal/models"

const hoursPerDay = 24

// Aggregate computes the statistical summary of a grievance set. It is a
// pure function of its input: deterministic, order-independent and free of
// store access. Callers are responsible for passing an already
// visibility-filtered set.
//
// Dimensions that never occur stay absent from the maps rather than being
// zero-filled; consumers iterate only present keys.
func Aggregate(grievances []models.Grievance) models.AggregateStats {
	stats := models.AggregateStats{
		Total:        len(grievances),
		ByStatus:     make(map[models.GrievanceStatus]int),
		ByCategory:   make(map[models.GrievanceCategory]int),
		ByPriority:   make(map[models.GrievancePriority]int),
		ByDepartment: make(map[string]int),
	}

	var totalResolutionDays float64
	var resolvedCount int

	for _, g := range grievances {
		stats.ByStatus[g.Status]++
		stats.ByCategory[g.Category]++
		stats.ByPriority[g.Priority]++
		stats.ByDepartment[g.Department]++

		if g.ResolvedAt != nil {
			totalResolutionDays += g.ResolvedAt.Sub(g.CreatedAt).Hours() / hoursPerDay
			resolvedCount++
		}
	}

	if resolvedCount > 0 {
		stats.AvgResolutionDays = totalResolutionDays / float64(resolvedCount)
	}

	return stats
}

// StatusShare returns the percentage of the total held by one status,
// derived on demand from the counts. A zero total yields 0, not NaN.
func StatusShare(stats models.AggregateStats, status models.GrievanceStatus) float64 {
	if stats.Total == 0 {
		return 0
	}
	return float64(stats.ByStatus[status]) / float64(stats.Total) * 100
}
