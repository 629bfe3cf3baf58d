package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/grievance-desk/internal/models"
)

func TestAggregate_CountsSumToTotal(t *testing.T) {
	grievances := []models.Grievance{
		{Status: models.StatusSubmitted, Category: models.CategoryWorkload, Priority: models.PriorityLow, Department: "Engineering"},
		{Status: models.StatusSubmitted, Category: models.CategoryManagement, Priority: models.PriorityHigh, Department: "Engineering"},
		{Status: models.StatusResolved, Category: models.CategoryWorkload, Priority: models.PriorityLow, Department: "Sales"},
	}

	stats := Aggregate(grievances)

	assert.Equal(t, 3, stats.Total)

	byStatus := 0
	for _, n := range stats.ByStatus {
		byStatus += n
	}
	assert.Equal(t, stats.Total, byStatus)

	byCategory := 0
	for _, n := range stats.ByCategory {
		byCategory += n
	}
	assert.Equal(t, stats.Total, byCategory)

	byDepartment := 0
	for _, n := range stats.ByDepartment {
		byDepartment += n
	}
	assert.Equal(t, stats.Total, byDepartment)

	assert.Equal(t, 2, stats.ByStatus[models.StatusSubmitted])
	assert.Equal(t, 2, stats.ByDepartment["Engineering"])
}

func TestAggregate_AbsentDimensionsStayAbsent(t *testing.T) {
	stats := Aggregate([]models.Grievance{
		{Status: models.StatusSubmitted, Category: models.CategoryOther, Priority: models.PriorityMedium, Department: "HR"},
	})

	_, present := stats.ByStatus[models.StatusClosed]
	assert.False(t, present)
	_, present = stats.ByCategory[models.CategoryHarassment]
	assert.False(t, present)
}

func TestAggregate_AvgResolutionDays(t *testing.T) {
	filed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	twoDays := filed.Add(48 * time.Hour)
	fourDays := filed.Add(96 * time.Hour)

	grievances := []models.Grievance{
		{Status: models.StatusResolved, CreatedAt: filed, ResolvedAt: &twoDays},
		{Status: models.StatusResolved, CreatedAt: filed, ResolvedAt: &fourDays},
		{Status: models.StatusSubmitted, CreatedAt: filed},
	}

	stats := Aggregate(grievances)

	assert.InDelta(t, 3.0, stats.AvgResolutionDays, 0.0001)
}

func TestAggregate_NoResolvedYieldsZeroAverage(t *testing.T) {
	stats := Aggregate([]models.Grievance{
		{Status: models.StatusSubmitted, CreatedAt: time.Now()},
		{Status: models.StatusInvestigating, CreatedAt: time.Now()},
	})

	assert.Zero(t, stats.AvgResolutionDays)
}

func TestAggregate_EmptyInput(t *testing.T) {
	stats := Aggregate(nil)

	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.ByStatus)
	assert.Zero(t, stats.AvgResolutionDays)
}

func TestAggregate_OrderIndependent(t *testing.T) {
	a := []models.Grievance{
		{Status: models.StatusSubmitted, Category: models.CategoryWorkload, Priority: models.PriorityLow, Department: "Ops"},
		{Status: models.StatusClosed, Category: models.CategoryOther, Priority: models.PriorityHigh, Department: "HR"},
	}
	b := []models.Grievance{a[1], a[0]}

	assert.Equal(t, Aggregate(a), Aggregate(b))
}

func TestStatusShare(t *testing.T) {
	stats := Aggregate([]models.Grievance{
		{Status: models.StatusResolved},
		{Status: models.StatusResolved},
		{Status: models.StatusSubmitted},
		{Status: models.StatusClosed},
	})

	assert.InDelta(t, 50.0, StatusShare(stats, models.StatusResolved), 0.0001)
	assert.InDelta(t, 25.0, StatusShare(stats, models.StatusSubmitted), 0.0001)
	assert.Zero(t, StatusShare(stats, models.StatusInvestigating))
}

func TestStatusShare_ZeroTotal(t *testing.T) {
	assert.Zero(t, StatusShare(models.AggregateStats{}, models.StatusResolved))
}
